package sink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/render/sink"
	"github.com/matzehuels/treeviz/pkg/render/theme"
	"github.com/matzehuels/treeviz/pkg/tree"
)

func ExampleRenderSVG() {
	svg := sink.RenderSVG(render.EmptyScene(), sink.WithBackground("none"))
	fmt.Println(strings.Contains(string(svg), "No tree structure available"))
	// Output: true
}

func ExampleToDOT() {
	t := &tree.Tree{
		Nodes: []tree.Node{
			{ID: "root", Label: "x <= 2"},
			{ID: "yes", Depth: 1, Label: "class 0", IsLeaf: true},
		},
		Edges: []tree.Edge{{From: "root", To: "yes", Branch: tree.True}},
	}
	dot := sink.ToDOT(t, theme.Default())
	fmt.Println(strings.Contains(dot, `"root" -> "yes" [label="True"`))
	// Output: true
}
