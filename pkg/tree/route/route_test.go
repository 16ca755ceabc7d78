package route

import (
	"testing"

	"github.com/matzehuels/treeviz/pkg/geom"
	"github.com/matzehuels/treeviz/pkg/tree"
)

var positions = map[string]geom.Point{
	"A": {X: 450, Y: 80},
	"B": {X: 300, Y: 200},
	"C": {X: 600, Y: 200},
}

func TestRoute(t *testing.T) {
	edges := []tree.Edge{
		{From: "A", To: "B", Branch: tree.True},
		{From: "A", To: "C", Branch: tree.False},
	}
	curves := Route(edges, positions)
	if len(curves) != 2 {
		t.Fatalf("curves = %d, want 2", len(curves))
	}

	tests := []struct {
		curve Curve
		want  Curve
	}{
		{curves[0], Curve{
			From: "A", To: "B", Branch: tree.True,
			Start: geom.Pt(450, 80), C1: geom.Pt(450, 140), C2: geom.Pt(300, 140), End: geom.Pt(300, 200),
			Style: Affirmative, Label: "True", LabelPos: geom.Pt(375, 140),
		}},
		{curves[1], Curve{
			From: "A", To: "C", Branch: tree.False,
			Start: geom.Pt(450, 80), C1: geom.Pt(450, 140), C2: geom.Pt(600, 140), End: geom.Pt(600, 200),
			Style: Negative, Label: "False", LabelPos: geom.Pt(525, 140),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.want.To, func(t *testing.T) {
			if tt.curve != tt.want {
				t.Errorf("got %+v\nwant %+v", tt.curve, tt.want)
			}
		})
	}
}

func TestRouteSkipsDanglingEdges(t *testing.T) {
	edges := []tree.Edge{
		{From: "A", To: "B", Branch: tree.True},
		{From: "A", To: "ghost", Branch: tree.False},
		{From: "ghost", To: "C", Branch: tree.False},
		{From: "A", To: "C", Branch: tree.False},
	}
	curves := Route(edges, positions)
	if len(curves) != 2 {
		t.Fatalf("curves = %d, want 2", len(curves))
	}
	if curves[0].To != "B" || curves[1].To != "C" {
		t.Errorf("edge order not preserved: %s, %s", curves[0].To, curves[1].To)
	}
}

func TestRouteEmpty(t *testing.T) {
	if got := Route(nil, positions); len(got) != 0 {
		t.Errorf("Route(nil) = %v", got)
	}
	if got := Route([]tree.Edge{{From: "A", To: "B"}}, nil); len(got) != 0 {
		t.Errorf("Route without positions = %v", got)
	}
}

func TestLabelOnCurve(t *testing.T) {
	c := Edge(tree.Edge{From: "p", To: "q"}, geom.Pt(10, 0), geom.Pt(90, 120))
	if c.LabelPos != c.Bezier().At(0.5) {
		t.Errorf("label %+v not at curve midpoint %+v", c.LabelPos, c.Bezier().At(0.5))
	}
	if c.LabelPos != geom.Midpoint(c.Start, c.End) {
		t.Errorf("label %+v not at chord midpoint", c.LabelPos)
	}
}

func TestStyleFor(t *testing.T) {
	if StyleFor(tree.True) != Affirmative {
		t.Error("true branch should be affirmative")
	}
	if StyleFor(tree.False) != Negative {
		t.Error("false branch should be negative")
	}
}
