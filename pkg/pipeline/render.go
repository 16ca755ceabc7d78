package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/render/sink"
	"github.com/matzehuels/treeviz/pkg/tree"
)

// Render encodes the scene in every format listed in opts.
// The tree is needed for DOT output and the graphviz engine, which lay
// out from the tree rather than the scene.
func Render(ctx context.Context, t *tree.Tree, scene render.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, t, scene, format, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat encodes the scene in a single format.
func RenderFormat(ctx context.Context, t *tree.Tree, scene render.Scene, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		return sink.RenderJSON(scene)
	case FormatDOT:
		return []byte(sink.ToDOT(t, opts.ResolvedTheme())), nil
	}
	if opts.Engine == EngineGraphviz {
		return renderGraphviz(ctx, t, format, opts)
	}
	return renderNative(ctx, scene, format, opts)
}

func renderNative(ctx context.Context, scene render.Scene, format string, opts Options) ([]byte, error) {
	th := opts.ResolvedTheme()
	svgOpts := []sink.SVGOption{sink.WithTheme(th)}
	if opts.Legend {
		svgOpts = append(svgOpts, sink.WithLegend())
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(scene, svgOpts...), nil
	case FormatPDF:
		return sink.RenderPDF(ctx, scene, svgOpts...)
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithPNGTheme(th), sink.WithScale(scaleOrDefault(opts.Scale))}
		if opts.Legend {
			pngOpts = append(pngOpts, sink.WithPNGLegend())
		}
		return sink.RenderPNG(scene, pngOpts...)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

// renderGraphviz draws with Graphviz's own layout. The legend is not
// available here.
func renderGraphviz(ctx context.Context, t *tree.Tree, format string, opts Options) ([]byte, error) {
	dot := sink.ToDOT(t, opts.ResolvedTheme())

	switch format {
	case FormatSVG:
		return sink.RenderGraphviz(ctx, dot, sink.GraphvizSVG)
	case FormatPNG:
		return sink.RenderGraphviz(ctx, dot, sink.GraphvizPNG)
	case FormatPDF:
		svg, err := sink.RenderGraphviz(ctx, dot, sink.GraphvizSVG)
		if err != nil {
			return nil, err
		}
		return sink.ToPDF(ctx, svg)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func scaleOrDefault(s float64) float64 {
	if s <= 0 {
		return DefaultScale
	}
	return s
}
