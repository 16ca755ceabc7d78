// Package pipeline provides the complete tree drawing pipeline for treeviz.
//
// This package chains the pure layout → route → render stages and adds the
// I/O shell around them: option validation, caching, format export, logging
// and observability hooks. The CLI and the HTTP server both go through it,
// so a tree renders the same way from either entry point.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: lay out the tree, route its edges and emit drawing commands
//     (a [render.Scene]). Pure and deterministic; see [Build].
//  2. Render: encode the scene in the requested formats (SVG, PNG, PDF,
//     JSON, DOT), either natively or through Graphviz.
//
// Both stages are cached by [Runner]: scenes by tree content hash, width and
// layout parameters, artifacts by scene hash and output options.
//
// # Usage
//
// Build a scene directly:
//
//	scene := pipeline.Build(t, 1200, nil)
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, t, pipeline.Options{
//	    Width:   1200,
//	    Formats: []string{"svg", "png"},
//	    Legend:  true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeviz/pkg/cache"
	apperr "github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/render/theme"
	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/tree/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the layout width used when the caller does not know
	// how wide the drawing surface is.
	DefaultWidth = layout.DefaultMinWidth

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// MaxScale bounds the PNG resolution multiplier.
	MaxScale = 8.0
)

// Engine names.
const (
	EngineNative   = "native"
	EngineGraphviz = "graphviz"
)

// DefaultEngine is the default layout engine.
const DefaultEngine = EngineNative

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidEngines is the set of supported layout engines.
var ValidEngines = map[string]bool{
	EngineNative:   true,
	EngineGraphviz: true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the tree pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Width  float64 `json:"width,omitempty"`
	Engine string  `json:"engine,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Legend  bool     `json:"legend,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Theme  *theme.Theme   `json:"-"` // nil means theme.Default()
	Layout *layout.Engine `json:"-"` // nil means the default engine
	Logger *log.Logger    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the input tree.
	Tree *tree.Tree

	// TreeHash is the content hash of the tree.
	TreeHash string

	// Scene is the rendered command list (or the empty sentinel).
	Scene render.Scene

	// Issues lists structural problems found in the tree. They never stop
	// the pipeline.
	Issues []tree.Issue

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	CommandCount int
	BuildTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperr.New(apperr.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that an engine name is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return apperr.New(apperr.ErrCodeInvalidEngine,
			"invalid engine: %q (must be one of: native, graphviz)", engine)
	}
	return nil
}

// ValidateScale checks a PNG scale factor.
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || scale <= 0 || scale > MaxScale {
		return apperr.New(apperr.ErrCodeInvalidInput, "scale must be in (0, %g]", float64(MaxScale))
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every field without touching defaults.
func (o *Options) Validate() error {
	if err := apperr.ValidateWidth(o.Width); err != nil {
		return err
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.Theme != nil {
		return o.Theme.Validate()
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and checks every field.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ResolvedTheme returns the theme to paint with.
func (o *Options) ResolvedTheme() theme.Theme {
	if o.Theme != nil {
		return *o.Theme
	}
	return theme.Default()
}

// SceneKeyOpts returns cache key options for scene building.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		Width:  o.Width,
		Engine: o.Engine,
		Layout: cache.HashJSON(o.Layout.Params()),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Engine: o.Engine,
		Theme:  cache.HashJSON(o.ResolvedTheme()),
		Legend: o.Legend,
		Scale:  o.Scale,
	}
}

// String summarises the options for log lines.
func (o Options) String() string {
	return fmt.Sprintf("width=%g engine=%s formats=%v legend=%t", o.Width, o.Engine, o.Formats, o.Legend)
}
