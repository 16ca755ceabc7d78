package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/render/theme"
)

const nodeInteractionCSS = `
    .tree-node rect { transition: stroke-width 0.2s ease; }
    .tree-node:hover rect { stroke-width: 4; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme      theme.Theme
	legend     bool
	background *string
}

// WithTheme selects the palette.
func WithTheme(t theme.Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithLegend draws the colour legend below the diagram.
func WithLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// WithBackground overrides the theme background. An empty string or "none"
// leaves the background transparent.
func WithBackground(hex string) SVGOption {
	return func(r *svgRenderer) { r.background = &hex }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: theme.Default()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r svgRenderer) backgroundColor() string {
	if r.background != nil {
		if *r.background == "none" {
			return ""
		}
		return *r.background
	}
	return r.theme.Background
}

// RenderSVG writes s as a standalone SVG document.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	width, height := s.Canvas.Width, s.Canvas.Height
	totalHeight := height
	if r.legend {
		totalHeight += LegendHeight
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" font-family="%s">`+"\n",
		num(width), num(totalHeight), num(width), num(totalHeight), escapeXML(r.theme.FontFamily))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", nodeInteractionCSS)

	if bg := r.backgroundColor(); bg != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
			num(width), num(totalHeight), escapeXML(bg))
	}

	if s.Empty {
		renderPlaceholder(&buf, r.theme, width, height, s.Message)
	} else {
		renderCommands(&buf, r.theme, s.Commands)
	}

	if r.legend {
		renderSVGLegend(&buf, r.theme, legendLayout(r.theme, width, height))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderCommands(buf *bytes.Buffer, th theme.Theme, cmds []render.Command) {
	inGroup := false
	closeGroup := func() {
		if inGroup {
			buf.WriteString("  </g>\n")
			inGroup = false
		}
	}

	for _, c := range cmds {
		switch c := c.(type) {
		case render.Curve:
			closeGroup()
			fmt.Fprintf(buf, `  <path d="M %s %s C %s %s, %s %s, %s %s" stroke="%s" stroke-width="%s" fill="none" opacity="%s"/>`+"\n",
				num(c.Start.X), num(c.Start.Y), num(c.C1.X), num(c.C1.Y),
				num(c.C2.X), num(c.C2.Y), num(c.End.X), num(c.End.Y),
				th.Edge(c.Style), num(th.StrokeWidth), num(th.EdgeOpacity))
		case render.EdgeLabel:
			closeGroup()
			fmt.Fprintf(buf, `  <text x="%s" y="%s" fill="%s" font-size="%s" font-weight="bold">%s</text>`+"\n",
				num(c.Position.X), num(c.Position.Y), th.Edge(c.Style), num(th.FontSize), escapeXML(c.Text))
		case render.Box:
			closeGroup()
			buf.WriteString("  <g class=\"tree-node\">\n")
			inGroup = true
			rect := c.Rect()
			p := th.Node(c.Style)
			fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
				num(rect.Min.X), num(rect.Min.Y), num(rect.Size.W), num(rect.Size.H),
				num(th.CornerRadius), p.Fill, p.Stroke, num(th.StrokeWidth))
		case render.TextLine:
			indent := "  "
			if inGroup {
				indent = "    "
			}
			fmt.Fprintf(buf, `%s<text x="%s" y="%s" text-anchor="middle" fill="%s" font-size="%s" font-weight="%s">%s</text>`+"\n",
				indent, num(c.Position.X), num(c.Position.Y), th.Text, num(th.FontSize),
				fontWeight(c.Emphasis), escapeXML(c.Text))
		}
	}
	closeGroup()
}

func renderPlaceholder(buf *bytes.Buffer, th theme.Theme, width, height float64, msg string) {
	if msg == "" {
		msg = render.EmptyMessage
	}
	fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="middle" fill="%s" font-size="%s">%s</text>`+"\n",
		num(width/2), num(height/2), th.LegendText, num(th.FontSize*1.5), escapeXML(msg))
}

func renderSVGLegend(buf *bytes.Buffer, th theme.Theme, items []legendItem) {
	buf.WriteString("  <g class=\"legend\">\n")
	for _, it := range items {
		switch it.Swatch {
		case swatchBox:
			fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" rx="3" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
				num(it.X), num(it.Y-legendBoxSize/2), num(legendBoxSize), num(legendBoxSize), it.Fill, it.Stroke)
		case swatchLine:
			fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2"/>`+"\n",
				num(it.X), num(it.Y), num(it.X+legendLineWidth), num(it.Y), it.Stroke)
		}
		fmt.Fprintf(buf, `    <text x="%s" y="%s" dominant-baseline="middle" fill="%s" font-size="%s">%s</text>`+"\n",
			num(it.TextX()), num(it.Y), th.LegendText, num(th.FontSize), escapeXML(it.Label))
	}
	buf.WriteString("  </g>\n")
}

func fontWeight(e render.Emphasis) string {
	if e == render.Bold {
		return "bold"
	}
	return "normal"
}

// num formats a coordinate with the shortest exact representation.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
