package pipeline

import (
	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/tree/layout"
	"github.com/matzehuels/treeviz/pkg/tree/route"
)

// Build lays out t, routes its edges and returns the drawing commands.
//
// A nil engine uses the default constants. An empty or nil tree yields
// [render.EmptyScene]. Build never fails: layout tolerates every input
// problem that [tree.Diagnose] reports.
func Build(t *tree.Tree, width float64, engine *layout.Engine) render.Scene {
	if t.IsEmpty() {
		return render.EmptyScene()
	}
	if engine == nil {
		engine = layout.NewEngine()
	}
	l := engine.Compute(t, width)
	curves := route.Route(t.Edges, l.Positions)
	return render.NewScene(t, l, curves)
}
