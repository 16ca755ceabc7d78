package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/treeviz/pkg/fonts"
	"github.com/matzehuels/treeviz/pkg/geom"
	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/render/theme"
)

// MaxPNGPixels bounds the final image size.
const MaxPNGPixels = 64 << 20

// MaxSupersamplePixels bounds the working canvas, which is the output
// multiplied by the square of the supersampling factor.
const MaxSupersamplePixels = 128 << 20

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	theme  theme.Theme
	scale  float64
	legend bool
}

// WithPNGTheme selects the palette.
func WithPNGTheme(t theme.Theme) PNGOption { return func(r *pngRenderer) { r.theme = t } }

// WithScale sets the output scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithPNGLegend draws the colour legend below the diagram.
func WithPNGLegend() PNGOption { return func(r *pngRenderer) { r.legend = true } }

// canvas is a supersampled drawing surface. All drawing methods take scene
// coordinates and multiply by k.
type canvas struct {
	img     *image.RGBA
	k       float64
	regular font.Face
	bold    font.Face
}

// RenderPNG rasterises the scene without external tools. Shapes are drawn
// on a supersampled canvas and downsampled with Catmull-Rom filtering.
func RenderPNG(s render.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{theme: theme.Default(), scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, fmt.Errorf("invalid png scale %v", r.scale)
	}

	width, height := s.Canvas.Width, s.Canvas.Height
	totalHeight := height
	if r.legend {
		totalHeight += LegendHeight
	}

	outW := int(math.Ceil(width * r.scale))
	outH := int(math.Ceil(totalHeight * r.scale))
	if outW <= 0 || outH <= 0 {
		return nil, fmt.Errorf("empty png canvas %dx%d", outW, outH)
	}
	if outW*outH > MaxPNGPixels {
		return nil, fmt.Errorf("png too large: %dx%d (reduce scale or width)", outW, outH)
	}

	ss := supersample(outW, outH, r.scale)
	c, err := newCanvas(outW*ss, outH*ss, r.scale*float64(ss), r.theme.FontSize)
	if err != nil {
		return nil, err
	}
	defer c.close()

	c.fill(theme.RGBA(r.theme.Background))
	if s.Empty {
		msg := s.Message
		if msg == "" {
			msg = render.EmptyMessage
		}
		c.text(c.regular, geom.Pt(width/2, height/2), msg, theme.RGBA(r.theme.LegendText), true)
	} else {
		c.commands(r.theme, s.Commands)
	}
	if r.legend {
		c.legend(r.theme, legendLayout(r.theme, width, height))
	}

	out := c.img
	if ss > 1 {
		out = image.NewRGBA(image.Rect(0, 0, outW, outH))
		draw.CatmullRom.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// supersample picks the supersampling factor: roughly 4x the scene
// resolution, fewer passes when the output scale already provides the
// detail, and never more than the working canvas budget allows.
func supersample(outW, outH int, scale float64) int {
	ss := max(1, int(math.Ceil(4/scale)))
	for ss > 1 && outW*ss*outH*ss > MaxSupersamplePixels {
		ss--
	}
	return ss
}

func newCanvas(w, h int, k, fontSize float64) (*canvas, error) {
	regular, err := fonts.Face(fonts.Regular, fontSize*k)
	if err != nil {
		return nil, err
	}
	bold, err := fonts.Face(fonts.Bold, fontSize*k)
	if err != nil {
		regular.Close()
		return nil, err
	}
	return &canvas{
		img:     image.NewRGBA(image.Rect(0, 0, w, h)),
		k:       k,
		regular: regular,
		bold:    bold,
	}, nil
}

func (c *canvas) close() {
	c.regular.Close()
	c.bold.Close()
}

func (c *canvas) fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) commands(th theme.Theme, cmds []render.Command) {
	textCol := theme.RGBA(th.Text)
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case render.Curve:
			c.stroke(cmd.Bezier().Flatten(48), th.StrokeWidth, withOpacity(theme.RGBA(th.Edge(cmd.Style)), th.EdgeOpacity))
		case render.EdgeLabel:
			c.text(c.bold, cmd.Position, cmd.Text, theme.RGBA(th.Edge(cmd.Style)), false)
		case render.Box:
			p := th.Node(cmd.Style)
			c.roundRect(cmd.Rect(), th.CornerRadius, th.StrokeWidth, theme.RGBA(p.Fill), theme.RGBA(p.Stroke))
		case render.TextLine:
			face := c.regular
			if cmd.Emphasis == render.Bold {
				face = c.bold
			}
			c.text(face, cmd.Position, cmd.Text, textCol, true)
		}
	}
}

func (c *canvas) legend(th theme.Theme, items []legendItem) {
	textCol := theme.RGBA(th.LegendText)
	for _, it := range items {
		switch it.Swatch {
		case swatchBox:
			r := geom.Rect{Min: geom.Pt(it.X, it.Y-legendBoxSize/2), Size: geom.Size{W: legendBoxSize, H: legendBoxSize}}
			c.roundRect(r, 3, 2, theme.RGBA(it.Fill), theme.RGBA(it.Stroke))
		case swatchLine:
			c.stroke([]geom.Point{geom.Pt(it.X, it.Y), geom.Pt(it.X+legendLineWidth, it.Y)}, 2, theme.RGBA(it.Stroke))
		}
		// SVG centres legend labels on Y; approximate with a baseline shift.
		c.text(c.regular, geom.Pt(it.TextX(), it.Y+th.FontSize*0.35), it.Label, textCol, false)
	}
}

// roundRect fills and strokes r. The stroke straddles the outline like SVG.
func (c *canvas) roundRect(r geom.Rect, radius, strokeWidth float64, fill, stroke color.Color) {
	k := c.k
	x0, y0 := r.Min.X*k, r.Min.Y*k
	x1, y1 := x0+r.Size.W*k, y0+r.Size.H*k
	rad := math.Min(radius*k, math.Min(r.Size.W, r.Size.H)*k/2)
	half := strokeWidth * k / 2

	b := image.Rect(int(x0-half)-1, int(y0-half)-1, int(x1+half)+2, int(y1+half)+2).Intersect(c.img.Bounds())
	cx, cy := (x0+x1)/2, (y0+y1)/2
	hw, hh := (x1-x0)/2, (y1-y0)/2

	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			d := roundRectDist(float64(px)+0.5-cx, float64(py)+0.5-cy, hw, hh, rad)
			switch {
			case half > 0 && math.Abs(d) <= half:
				c.img.Set(px, py, stroke)
			case d < 0:
				c.img.Set(px, py, fill)
			}
		}
	}
}

// roundRectDist is the signed distance from (x, y) to a rounded rectangle
// centred on the origin; negative inside.
func roundRectDist(x, y, hw, hh, r float64) float64 {
	qx := math.Abs(x) - hw + r
	qy := math.Abs(y) - hh + r
	outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0))
	inside := math.Min(math.Max(qx, qy), 0)
	return outside + inside - r
}

// stroke draws a polyline of the given width. Coverage is collected in a
// mask first so overlapping segments do not compound translucency.
func (c *canvas) stroke(pts []geom.Point, width float64, col color.Color) {
	if len(pts) == 0 {
		return
	}
	k := c.k
	half := math.Max(width*k/2, 0.5)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X*k), math.Max(maxX, p.X*k)
		minY, maxY = math.Min(minY, p.Y*k), math.Max(maxY, p.Y*k)
	}
	b := image.Rect(int(minX-half)-1, int(minY-half)-1, int(maxX+half)+2, int(maxY+half)+2).Intersect(c.img.Bounds())
	if b.Empty() {
		return
	}
	mask := image.NewAlpha(b)

	stamp := func(x, y float64) {
		for py := int(y - half); py <= int(y+half)+1; py++ {
			for px := int(x - half); px <= int(x+half)+1; px++ {
				if !(image.Point{X: px, Y: py}).In(b) {
					continue
				}
				if math.Hypot(float64(px)+0.5-x, float64(py)+0.5-y) <= half {
					mask.SetAlpha(px, py, color.Alpha{A: 0xff})
				}
			}
		}
	}

	prev := pts[0].Scale(k)
	stamp(prev.X, prev.Y)
	for _, p := range pts[1:] {
		cur := p.Scale(k)
		steps := int(math.Ceil(prev.Dist(cur) / math.Max(half/2, 0.5)))
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps)
			stamp(prev.X+(cur.X-prev.X)*t, prev.Y+(cur.Y-prev.Y)*t)
		}
		prev = cur
	}

	draw.DrawMask(c.img, b, image.NewUniform(col), image.Point{}, mask, b.Min, draw.Over)
}

// text draws s with its baseline at p. When centred, p is the horizontal
// middle of the string, matching SVG text-anchor="middle".
func (c *canvas) text(face font.Face, p geom.Point, s string, col color.Color, centred bool) {
	x := p.X * c.k
	if centred {
		x -= float64(font.MeasureString(face, s)) / 64 / 2
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(p.Y * c.k * 64)},
	}
	d.DrawString(s)
}

func withOpacity(c color.RGBA, opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(float64(c.A) * opacity))}
}
