package sink

import (
	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/tree/layout"
	"github.com/matzehuels/treeviz/pkg/tree/route"
)

func abcTree() *tree.Tree {
	return &tree.Tree{
		Nodes: []tree.Node{
			{ID: "A", Depth: 0, Label: "X<=5\nsamples = 10"},
			{ID: "B", Depth: 1, Label: "class 0", IsLeaf: true},
			{ID: "C", Depth: 1, Label: "class <1>", IsLeaf: true},
		},
		Edges: []tree.Edge{
			{From: "A", To: "B", Branch: tree.True},
			{From: "A", To: "C", Branch: tree.False},
		},
	}
}

func abcScene() render.Scene {
	t := abcTree()
	l := layout.Compute(t, 900)
	return render.NewScene(t, l, route.Route(t.Edges, l.Positions))
}
