// Package sink paints rendered tree scenes into output formats.
//
// # Overview
//
// A [render.Scene] is a renderer-agnostic command list. This package turns it
// into bytes:
//
//   - [RenderSVG]: standalone SVG document, written directly
//   - [RenderPNG]: native raster output via golang.org/x/image, no external tools
//   - [RenderPDF]: SVG converted with rsvg-convert (see [ToPDF])
//   - [RenderJSON]: the scene itself as tagged JSON commands
//
// The Graphviz engine is an alternative to the native layout: [ToDOT]
// describes the tree in DOT and [RenderGraphviz] lets Graphviz place and
// draw it.
//
// # Themes and Legend
//
// Colours and metrics come from a [theme.Theme] ([theme.Default] unless
// [WithTheme] or [WithPNGTheme] is given). [WithLegend] appends a strip below
// the diagram explaining node and branch colours.
//
// # Empty Scenes
//
// An empty scene renders as a canvas carrying the "No tree structure
// available" placeholder, so every format has something to show.
//
// # External Tools
//
// PDF output and rsvg-based PNG conversion require librsvg:
//
//	brew install librsvg      # macOS
//	apt install librsvg2-bin  # Linux
package sink
