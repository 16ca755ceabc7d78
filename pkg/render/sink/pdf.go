package sink

import (
	"context"

	"github.com/matzehuels/treeviz/pkg/render"
)

// RenderPDF renders the scene as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, s render.Scene, opts ...SVGOption) ([]byte, error) {
	return ToPDF(ctx, RenderSVG(s, opts...))
}
