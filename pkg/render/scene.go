package render

import (
	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/tree/layout"
	"github.com/matzehuels/treeviz/pkg/tree/route"
)

// EmptyMessage is shown in place of a diagram when there is no tree.
const EmptyMessage = "No tree structure available"

// Scene is a fully rendered tree: the canvas and the commands to paint on it.
type Scene struct {
	Canvas   layout.Canvas
	Commands []Command

	// Empty is set when the input had no nodes. Commands is then nil and
	// Message explains why.
	Empty   bool
	Message string
}

// EmptyScene returns the scene produced for a missing or node-less tree.
func EmptyScene() Scene {
	return Scene{
		Canvas:  layout.Canvas{Width: layout.DefaultMinWidth, Height: layout.DefaultMinHeight},
		Empty:   true,
		Message: EmptyMessage,
	}
}

// NewScene assembles a scene from the outputs of the layout and route stages.
func NewScene(t *tree.Tree, l layout.Result, curves []route.Curve) Scene {
	if t.IsEmpty() {
		return EmptyScene()
	}
	return Scene{
		Canvas:   l.Canvas,
		Commands: Render(t, l.Positions, curves),
	}
}

// Boxes returns the scene's node boxes in paint order.
func (s Scene) Boxes() []Box {
	var out []Box
	for _, c := range s.Commands {
		if b, ok := c.(Box); ok {
			out = append(out, b)
		}
	}
	return out
}

// Curves returns the scene's edge curves in paint order.
func (s Scene) Curves() []Curve {
	var out []Curve
	for _, c := range s.Commands {
		if cv, ok := c.(Curve); ok {
			out = append(out, cv)
		}
	}
	return out
}
