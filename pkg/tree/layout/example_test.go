package layout_test

import (
	"fmt"

	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/tree/layout"
)

func ExampleCompute() {
	t := &tree.Tree{
		Nodes: []tree.Node{
			{ID: "A", Depth: 0, Label: "X<=5"},
			{ID: "B", Depth: 1, Label: "class 0", IsLeaf: true},
			{ID: "C", Depth: 1, Label: "class 1", IsLeaf: true},
		},
	}

	res := layout.Compute(t, 900)
	for _, n := range t.Nodes {
		p := res.Positions[n.ID]
		fmt.Printf("%s: (%.0f, %.0f)\n", n.ID, p.X, p.Y)
	}
	fmt.Printf("canvas: %.0fx%.0f\n", res.Canvas.Width, res.Canvas.Height)
	// Output:
	// A: (450, 80)
	// B: (300, 200)
	// C: (600, 200)
	// canvas: 1200x600
}

func ExampleNewEngine() {
	e := layout.NewEngine(layout.WithTopMargin(40), layout.WithLevelSpacing(100))
	fmt.Println(e.Y(0), e.Y(2))
	// Output: 40 240
}
