package render

import (
	"github.com/matzehuels/treeviz/pkg/geom"
	"github.com/matzehuels/treeviz/pkg/tree/route"
)

// Kind identifies a command's concrete type on the wire.
type Kind string

const (
	KindBox       Kind = "box"
	KindText      Kind = "text"
	KindCurve     Kind = "curve"
	KindEdgeLabel Kind = "edge_label"
)

// NodeStyle selects how a node box is painted.
type NodeStyle string

const (
	Decision NodeStyle = "decision"
	Leaf     NodeStyle = "leaf"
)

// Emphasis selects the weight of a text line.
type Emphasis string

const (
	Normal Emphasis = "normal"
	Bold   Emphasis = "bold"
)

// Command is a single drawing instruction. The set of implementations is
// closed: [Box], [TextLine], [Curve] and [EdgeLabel].
type Command interface {
	Kind() Kind
	command()
}

// Box is a node rectangle centred on Center.
type Box struct {
	Center geom.Point `json:"center"`
	Size   geom.Size  `json:"size"`
	Style  NodeStyle  `json:"style"`
}

// Rect returns the box outline.
func (b Box) Rect() geom.Rect { return geom.RectAround(b.Center, b.Size) }

// TextLine is one centred line of a node label.
type TextLine struct {
	Position geom.Point `json:"position"`
	Text     string     `json:"text"`
	Emphasis Emphasis   `json:"emphasis"`
}

// Curve is a cubic Bezier edge.
type Curve struct {
	Start geom.Point  `json:"start"`
	C1    geom.Point  `json:"c1"`
	C2    geom.Point  `json:"c2"`
	End   geom.Point  `json:"end"`
	Style route.Style `json:"style"`
}

// Bezier returns the curve's geometry.
func (c Curve) Bezier() geom.Cubic {
	return geom.Cubic{P0: c.Start, P1: c.C1, P2: c.C2, P3: c.End}
}

// EdgeLabel is the branch label drawn on an edge.
type EdgeLabel struct {
	Position geom.Point  `json:"position"`
	Text     string      `json:"text"`
	Style    route.Style `json:"style"`
}

func (Box) Kind() Kind       { return KindBox }
func (TextLine) Kind() Kind  { return KindText }
func (Curve) Kind() Kind     { return KindCurve }
func (EdgeLabel) Kind() Kind { return KindEdgeLabel }

func (Box) command()       {}
func (TextLine) command()  {}
func (Curve) command()     {}
func (EdgeLabel) command() {}

// Count returns how many commands in cmds are of kind k.
func Count(cmds []Command, k Kind) int {
	n := 0
	for _, c := range cmds {
		if c.Kind() == k {
			n++
		}
	}
	return n
}
