package sink

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"

	apperr "github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/render/theme"
	"github.com/matzehuels/treeviz/pkg/tree"
)

func TestToDOT(t *testing.T) {
	dot := ToDOT(abcTree(), theme.Default())

	checks := []string{
		"digraph tree",
		"ordering=out",
		`"A" [label=<<b>X&lt;=5</b><br/>samples = 10>, fillcolor="#1e3a8a", color="#3b82f6"]`,
		`"B" [label=<<b>class 0</b>>, fillcolor="#065f46", color="#10b981"]`,
		`{ rank=same; "B"; "C"; }`,
		`"A" -> "B" [label="True", color="#10b98199", fontcolor="#10b981"]`,
		`"A" -> "C" [label="False", color="#ef444499", fontcolor="#ef4444"]`,
	}
	for _, want := range checks {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s\n%s", want, dot)
		}
	}
}

func TestToDOTDropsDanglingEdges(t *testing.T) {
	tr := abcTree()
	tr.Edges = append(tr.Edges, tree.Edge{From: "A", To: "ghost"})
	if strings.Contains(ToDOT(tr, theme.Default()), "ghost") {
		t.Error("dangling edge should not be emitted")
	}
}

func TestDotID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"A", `"A"`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
		{"ctl\x01", "\"ctl\x01\""},
		{"nb\u00a0sp", "\"nb\u00a0sp\""},
		{"ünï", `"ünï"`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := dotID(tt.in); got != tt.want {
				t.Errorf("dotID(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestToDOTControlCharacterIDs(t *testing.T) {
	tr := &tree.Tree{
		Nodes: []tree.Node{
			{ID: "r\x01", Depth: 0, Label: "root"},
			{ID: "c", Depth: 1, Label: "leaf", IsLeaf: true},
		},
		Edges: []tree.Edge{{From: "r\x01", To: "c", Branch: tree.True}},
	}
	dot := ToDOT(tr, theme.Default())
	if strings.Contains(dot, `\x01`) {
		t.Errorf("Go escape leaked into DOT:\n%s", dot)
	}
	if !strings.Contains(dot, "\"r\x01\" -> \"c\"") {
		t.Errorf("edge id not quoted literally:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(nil, theme.Default())
	if !strings.Contains(dot, "No tree structure available") {
		t.Errorf("empty tree should emit placeholder:\n%s", dot)
	}
}

func TestRenderGraphviz(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	ctx := context.Background()
	dot := ToDOT(abcTree(), theme.Default())

	svg, err := RenderGraphviz(ctx, dot, GraphvizSVG)
	if err != nil {
		t.Fatalf("RenderGraphviz(svg): %v", err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(svg), []byte("<")) || !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("output is not SVG: %.80s", svg)
	}

	img, err := RenderGraphviz(ctx, dot, GraphvizPNG)
	if err != nil {
		t.Fatalf("RenderGraphviz(png): %v", err)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(img)); err != nil {
		t.Errorf("output is not PNG: %v", err)
	}
}

func TestRenderGraphvizErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := RenderGraphviz(ctx, "digraph {}", "gif"); !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
		t.Errorf("unknown format error = %v", err)
	}
	out, err := RenderGraphviz(ctx, "digraph {}", GraphvizDOT)
	if err != nil || string(out) != "digraph {}" {
		t.Errorf("dot passthrough = %q, %v", out, err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.HasPrefix(got, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}
}
