package render

import (
	"github.com/matzehuels/treeviz/pkg/geom"
	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/tree/route"
)

// Node box and label metrics.
const (
	BoxWidth   = 140.0
	BoxHeight  = 70.0
	TextOffset = -20.0 // first line, relative to the box centre
	LineHeight = 18.0
)

// BoxSize is the size of every node box.
var BoxSize = geom.Size{W: BoxWidth, H: BoxHeight}

// StyleFor returns the box style for a node.
func StyleFor(n tree.Node) NodeStyle {
	if n.IsLeaf {
		return Leaf
	}
	return Decision
}

// Render emits the drawing commands for t. Curves and their labels come
// first, then each positioned node's box followed by its label lines.
// Nodes missing from positions are skipped.
func Render(t *tree.Tree, positions map[string]geom.Point, curves []route.Curve) []Command {
	cmds := make([]Command, 0, 2*len(curves)+3*nodeCount(t))

	for _, c := range curves {
		cmds = append(cmds,
			Curve{Start: c.Start, C1: c.C1, C2: c.C2, End: c.End, Style: c.Style},
			EdgeLabel{Position: c.LabelPos, Text: c.Label, Style: c.Style},
		)
	}

	if t == nil {
		return cmds
	}
	for _, n := range t.Nodes {
		p, ok := positions[n.ID]
		if !ok {
			continue
		}
		cmds = append(cmds, Box{Center: p, Size: BoxSize, Style: StyleFor(n)})
		cmds = appendLines(cmds, p, n.Lines())
	}
	return cmds
}

func appendLines(cmds []Command, center geom.Point, lines []string) []Command {
	for i, line := range lines {
		emphasis := Normal
		if i == 0 {
			emphasis = Bold
		}
		cmds = append(cmds, TextLine{
			Position: geom.Point{X: center.X, Y: center.Y + TextOffset + float64(i)*LineHeight},
			Text:     line,
			Emphasis: emphasis,
		})
	}
	return cmds
}

func nodeCount(t *tree.Tree) int {
	if t == nil {
		return 0
	}
	return len(t.Nodes)
}
