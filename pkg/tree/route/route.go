// Package route turns tree edges into styled cubic S-curves.
//
// Every curve leaves its parent vertically and enters its child vertically:
// both control points sit on the horizontal line halfway between the two
// endpoints, one above the parent and one above the child. Style and label
// are a pure function of the edge's branch, so the same edges always route
// the same way.
//
// Edges whose endpoints have no position are skipped without error.
package route

import (
	"github.com/matzehuels/treeviz/pkg/geom"
	"github.com/matzehuels/treeviz/pkg/tree"
)

// Style distinguishes the two sides of a split.
type Style string

const (
	// Affirmative marks the branch taken when the split condition holds.
	Affirmative Style = "affirmative"
	// Negative marks the branch taken when it does not.
	Negative Style = "negative"
)

// StyleFor returns the curve style for a branch.
func StyleFor(b tree.Branch) Style {
	if b {
		return Affirmative
	}
	return Negative
}

// Curve is one routed edge.
type Curve struct {
	From   string      `json:"from"`
	To     string      `json:"to"`
	Branch tree.Branch `json:"branch"`

	Start geom.Point `json:"start"`
	C1    geom.Point `json:"c1"`
	C2    geom.Point `json:"c2"`
	End   geom.Point `json:"end"`

	Style    Style      `json:"style"`
	Label    string     `json:"label"`
	LabelPos geom.Point `json:"label_pos"`
}

// Bezier returns the curve's geometry.
func (c Curve) Bezier() geom.Cubic {
	return geom.Cubic{P0: c.Start, P1: c.C1, P2: c.C2, P3: c.End}
}

// Edge routes a single edge between two known positions.
func Edge(e tree.Edge, from, to geom.Point) Curve {
	midY := (from.Y + to.Y) / 2
	c := Curve{
		From:   e.From,
		To:     e.To,
		Branch: e.Branch,
		Start:  from,
		C1:     geom.Point{X: from.X, Y: midY},
		C2:     geom.Point{X: to.X, Y: midY},
		End:    to,
		Style:  StyleFor(e.Branch),
		Label:  e.Branch.Label(),
	}
	c.LabelPos = c.Bezier().Midpoint()
	return c
}

// Route returns one curve per edge whose endpoints both appear in positions,
// in edge order.
func Route(edges []tree.Edge, positions map[string]geom.Point) []Curve {
	curves := make([]Curve, 0, len(edges))
	for _, e := range edges {
		from, ok := positions[e.From]
		if !ok {
			continue
		}
		to, ok := positions[e.To]
		if !ok {
			continue
		}
		curves = append(curves, Edge(e, from, to))
	}
	return curves
}
