package sink

import (
	"github.com/matzehuels/treeviz/pkg/render/theme"
)

// LegendHeight is the strip added below the canvas when a legend is drawn.
const LegendHeight = 56.0

const (
	legendBoxSize   = 16.0
	legendLineWidth = 32.0
	legendGap       = 8.0  // swatch to label
	legendSpacing   = 24.0 // between entries
)

type swatch int

const (
	swatchBox swatch = iota
	swatchLine
)

type legendItem struct {
	Label  string
	Swatch swatch
	Fill   string
	Stroke string

	// X is the left edge of the swatch; Y is the vertical centre of the row.
	X, Y float64
}

func (it legendItem) swatchWidth() float64 {
	if it.Swatch == swatchBox {
		return legendBoxSize
	}
	return legendLineWidth
}

// TextX is where the label starts.
func (it legendItem) TextX() float64 { return it.X + it.swatchWidth() + legendGap }

// legendLayout centres the four legend entries horizontally below a canvas
// of the given size. Label widths are estimated from the font size.
func legendLayout(th theme.Theme, width, canvasHeight float64) []legendItem {
	items := []legendItem{
		{Label: "Decision Node", Swatch: swatchBox, Fill: th.Decision.Fill, Stroke: th.Decision.Stroke},
		{Label: "Leaf Node (Class)", Swatch: swatchBox, Fill: th.Leaf.Fill, Stroke: th.Leaf.Stroke},
		{Label: "True", Swatch: swatchLine, Fill: th.Affirmative, Stroke: th.Affirmative},
		{Label: "False", Swatch: swatchLine, Fill: th.Negative, Stroke: th.Negative},
	}

	total := 0.0
	for i, it := range items {
		total += it.swatchWidth() + legendGap + estimateTextWidth(it.Label, th.FontSize)
		if i > 0 {
			total += legendSpacing
		}
	}

	x := (width - total) / 2
	y := canvasHeight + LegendHeight/2
	for i := range items {
		items[i].X = x
		items[i].Y = y
		x = items[i].TextX() + estimateTextWidth(items[i].Label, th.FontSize) + legendSpacing
	}
	return items
}

func estimateTextWidth(s string, fontSize float64) float64 {
	return float64(len([]rune(s))) * fontSize * 0.6
}
