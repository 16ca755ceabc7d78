package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	apperr "github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/render/theme"
	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/tree/route"
)

// ToDOT describes t as a Graphviz digraph styled with th. Nodes of equal
// depth share a rank and keep declaration order; edges that reference
// unknown nodes are dropped, as in the native pipeline.
func ToDOT(t *tree.Tree, th theme.Theme) string {
	var buf bytes.Buffer
	buf.WriteString("digraph tree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", dotColor(th.Background))
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=%s, fontcolor=%q, penwidth=%s, width=1.94, height=0.97];\n",
		num(th.FontSize), th.Text, num(th.StrokeWidth))
	fmt.Fprintf(&buf, "  edge [fontname=\"Helvetica\", fontsize=%s, penwidth=%s, arrowhead=none];\n",
		num(th.FontSize), num(th.StrokeWidth))
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if t.IsEmpty() {
		fmt.Fprintf(&buf, "  empty [label=%q, shape=plaintext, style=\"\", fontcolor=%q];\n", render.EmptyMessage, th.LegendText)
		buf.WriteString("}\n")
		return buf.String()
	}

	known := make(map[string]bool, len(t.Nodes))
	for _, n := range t.Nodes {
		known[n.ID] = true
		p := th.Node(render.StyleFor(n))
		fmt.Fprintf(&buf, "  %s [label=%s, fillcolor=%q, color=%q];\n",
			dotID(n.ID), dotLabel(n.Lines()), p.Fill, p.Stroke)
	}

	buf.WriteString("\n")
	levels := t.Levels()
	depths := make([]int, 0, len(levels))
	for d := range levels {
		depths = append(depths, d)
	}
	sort.Ints(depths)
	for _, d := range depths {
		ids := make([]string, 0, len(levels[d]))
		for _, n := range levels[d] {
			ids = append(ids, dotID(n.ID))
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
	}

	buf.WriteString("\n")
	alpha := fmt.Sprintf("%02x", int(th.EdgeOpacity*255+0.5))
	for _, e := range t.Edges {
		if !known[e.From] || !known[e.To] {
			continue
		}
		col := th.Edge(route.StyleFor(e.Branch))
		fmt.Fprintf(&buf, "  %s -> %s [label=%q, color=%q, fontcolor=%q];\n",
			dotID(e.From), dotID(e.To), e.Branch.Label(), dotColor(col)+alpha, col)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotID quotes an id as a DOT string. DOT only recognises escaped quotes
// and backslashes; every other byte is taken literally.
func dotID(id string) string {
	var b strings.Builder
	b.Grow(len(id) + 2)
	b.WriteByte('"')
	for _, r := range id {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// dotLabel joins label lines with centred line breaks, first line bold.
func dotLabel(lines []string) string {
	var b strings.Builder
	b.WriteString("<")
	for i, l := range lines {
		if i > 0 {
			b.WriteString("<br/>")
		}
		if i == 0 {
			b.WriteString("<b>" + escapeXML(l) + "</b>")
		} else {
			b.WriteString(escapeXML(l))
		}
	}
	b.WriteString(">")
	return b.String()
}

func dotColor(hex string) string {
	if hex == "" || hex == "none" {
		return "transparent"
	}
	return hex
}

// GraphvizFormat is an output format supported by [RenderGraphviz].
type GraphvizFormat string

const (
	GraphvizSVG GraphvizFormat = "svg"
	GraphvizPNG GraphvizFormat = "png"
	GraphvizDOT GraphvizFormat = "dot"
)

// RenderGraphviz lays out and draws a DOT graph with the embedded Graphviz
// engine. SVG output gets a normalised viewBox.
func RenderGraphviz(ctx context.Context, dot string, format GraphvizFormat) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case GraphvizSVG:
		gvFormat = graphviz.SVG
	case GraphvizPNG:
		gvFormat = graphviz.PNG
	case GraphvizDOT:
		return []byte(dot), nil
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "graphviz cannot render %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeExport, err, "graphviz render")
	}
	if format == GraphvizSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
