package layout

import (
	"math"

	"github.com/matzehuels/treeviz/pkg/geom"
	"github.com/matzehuels/treeviz/pkg/tree"
)

// Defaults used by [NewEngine] and the package-level [Compute].
const (
	DefaultTopMargin         = 80.0
	DefaultLevelSpacing      = 120.0
	DefaultCanvasLevelHeight = 150.0
	DefaultMinHeight         = 600.0
	DefaultMinWidth          = 1200.0
)

// Canvas is the drawing surface size chosen for a tree.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Result holds the positions computed for one tree.
type Result struct {
	// Positions maps node id to the centre of its box.
	Positions map[string]geom.Point `json:"positions"`
	Canvas    Canvas                `json:"canvas"`
}

// Position returns the centre of the node with the given id.
func (r Result) Position(id string) (geom.Point, bool) {
	p, ok := r.Positions[id]
	return p, ok
}

// Engine computes layouts. An Engine is immutable after construction and
// safe for concurrent use.
type Engine struct {
	topMargin         float64
	levelSpacing      float64
	canvasLevelHeight float64
	minHeight         float64
	minWidth          float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithTopMargin sets the y coordinate of depth 0.
func WithTopMargin(v float64) Option { return func(e *Engine) { e.topMargin = v } }

// WithLevelSpacing sets the vertical distance between consecutive depths.
func WithLevelSpacing(v float64) Option { return func(e *Engine) { e.levelSpacing = v } }

// WithCanvasLevelHeight sets how much canvas height each level reserves.
func WithCanvasLevelHeight(v float64) Option { return func(e *Engine) { e.canvasLevelHeight = v } }

// WithMinHeight sets the canvas height floor.
func WithMinHeight(v float64) Option { return func(e *Engine) { e.minHeight = v } }

// WithMinWidth sets the canvas width floor. It is also the width used when
// the caller does not know the available width.
func WithMinWidth(v float64) Option { return func(e *Engine) { e.minWidth = v } }

// NewEngine returns an Engine with the defaults overridden by opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		topMargin:         DefaultTopMargin,
		levelSpacing:      DefaultLevelSpacing,
		canvasLevelHeight: DefaultCanvasLevelHeight,
		minHeight:         DefaultMinHeight,
		minWidth:          DefaultMinWidth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Params are the settings an Engine was built with. Two engines with equal
// Params produce identical layouts.
type Params struct {
	TopMargin         float64 `json:"top_margin"`
	LevelSpacing      float64 `json:"level_spacing"`
	CanvasLevelHeight float64 `json:"canvas_level_height"`
	MinHeight         float64 `json:"min_height"`
	MinWidth          float64 `json:"min_width"`
}

// Params reports the engine's settings. A nil Engine reports the defaults.
func (e *Engine) Params() Params {
	if e == nil {
		e = defaultEngine
	}
	return Params{
		TopMargin:         e.topMargin,
		LevelSpacing:      e.levelSpacing,
		CanvasLevelHeight: e.canvasLevelHeight,
		MinHeight:         e.minHeight,
		MinWidth:          e.minWidth,
	}
}

var defaultEngine = NewEngine()

// Compute lays out t with the default engine.
func Compute(t *tree.Tree, availableWidth float64) Result {
	return defaultEngine.Compute(t, availableWidth)
}

// Compute assigns a centre point to every node of t and sizes the canvas.
//
// An availableWidth of zero or less (or NaN) means the width is unknown; the
// engine then lays out against its minimum width. A nil or empty tree yields
// an empty position map and the minimum canvas.
func (e *Engine) Compute(t *tree.Tree, availableWidth float64) Result {
	width := e.Width(availableWidth)
	res := Result{
		Positions: make(map[string]geom.Point),
		Canvas: Canvas{
			Width:  math.Max(width, e.minWidth),
			Height: e.minHeight,
		},
	}
	if t.IsEmpty() {
		return res
	}

	counts := make(map[int]int)
	for _, n := range t.Nodes {
		counts[n.Depth]++
	}

	slots := make(map[int]int, len(counts))
	for _, n := range t.Nodes {
		slots[n.Depth]++
		step := width / float64(counts[n.Depth]+1)
		res.Positions[n.ID] = geom.Point{
			X: step * float64(slots[n.Depth]),
			Y: e.Y(n.Depth),
		}
	}

	res.Canvas.Height = e.CanvasHeight(t.MaxDepth())
	return res
}

// Width resolves the width actually used for slot placement.
func (e *Engine) Width(availableWidth float64) float64 {
	if availableWidth <= 0 || math.IsNaN(availableWidth) {
		return e.minWidth
	}
	return availableWidth
}

// Y returns the centre y of nodes at the given depth.
func (e *Engine) Y(depth int) float64 {
	return e.topMargin + float64(depth)*e.levelSpacing
}

// CanvasHeight returns the canvas height for a tree whose deepest node sits
// at maxDepth.
func (e *Engine) CanvasHeight(maxDepth int) float64 {
	return math.Max(e.minHeight, float64(maxDepth+1)*e.canvasLevelHeight)
}
