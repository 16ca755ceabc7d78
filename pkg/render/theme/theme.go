// Package theme holds the colour palette used to paint tree scenes.
//
// The default palette draws decision nodes in blue, leaves in green, true
// branches green and false branches red on a dark background. Themes can be
// loaded from TOML files; any key left out keeps its default:
//
//	background = "#ffffff"
//	text = "#111827"
//	edge_opacity = 0.8
//
//	[decision]
//	fill = "#dbeafe"
//	stroke = "#1d4ed8"
//
//	[leaf]
//	fill = "#d1fae5"
//	stroke = "#047857"
package theme

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	apperr "github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/tree/route"
)

// Paint is a fill and stroke pair.
type Paint struct {
	Fill   string `toml:"fill" json:"fill"`
	Stroke string `toml:"stroke" json:"stroke"`
}

// Theme is a complete palette plus the few metrics renderers need.
type Theme struct {
	Name string `toml:"name" json:"name"`

	Background string `toml:"background" json:"background"`
	Text       string `toml:"text" json:"text"`
	LegendText string `toml:"legend_text" json:"legend_text"`

	Decision Paint `toml:"decision" json:"decision"`
	Leaf     Paint `toml:"leaf" json:"leaf"`

	Affirmative string `toml:"affirmative" json:"affirmative"`
	Negative    string `toml:"negative" json:"negative"`

	FontFamily   string  `toml:"font_family" json:"font_family"`
	FontSize     float64 `toml:"font_size" json:"font_size"`
	CornerRadius float64 `toml:"corner_radius" json:"corner_radius"`
	StrokeWidth  float64 `toml:"stroke_width" json:"stroke_width"`
	EdgeOpacity  float64 `toml:"edge_opacity" json:"edge_opacity"`
}

// Default returns the built-in dark palette.
func Default() Theme {
	return Theme{
		Name:         "default",
		Background:   "#111827",
		Text:         "#ffffff",
		LegendText:   "#d1d5db",
		Decision:     Paint{Fill: "#1e3a8a", Stroke: "#3b82f6"},
		Leaf:         Paint{Fill: "#065f46", Stroke: "#10b981"},
		Affirmative:  "#10b981",
		Negative:     "#ef4444",
		FontFamily:   "Arial, sans-serif",
		FontSize:     12,
		CornerRadius: 10,
		StrokeWidth:  2,
		EdgeOpacity:  0.6,
	}
}

// Node returns the paint for a node style.
func (t Theme) Node(s render.NodeStyle) Paint {
	if s == render.Leaf {
		return t.Leaf
	}
	return t.Decision
}

// Edge returns the colour for an edge style.
func (t Theme) Edge(s route.Style) string {
	if s == route.Affirmative {
		return t.Affirmative
	}
	return t.Negative
}

// Validate checks that every colour parses and metrics are positive.
func (t Theme) Validate() error {
	colors := map[string]string{
		"background":      t.Background,
		"text":            t.Text,
		"legend_text":     t.LegendText,
		"decision.fill":   t.Decision.Fill,
		"decision.stroke": t.Decision.Stroke,
		"leaf.fill":       t.Leaf.Fill,
		"leaf.stroke":     t.Leaf.Stroke,
		"affirmative":     t.Affirmative,
		"negative":        t.Negative,
	}
	for key, v := range colors {
		if _, err := Color(v); err != nil {
			return apperr.Wrap(apperr.ErrCodeInvalidTheme, err, "%s", key)
		}
	}
	if t.FontSize <= 0 {
		return apperr.New(apperr.ErrCodeInvalidTheme, "font_size must be positive")
	}
	if t.StrokeWidth < 0 || t.CornerRadius < 0 {
		return apperr.New(apperr.ErrCodeInvalidTheme, "stroke_width and corner_radius cannot be negative")
	}
	if t.EdgeOpacity < 0 || t.EdgeOpacity > 1 {
		return apperr.New(apperr.ErrCodeInvalidTheme, "edge_opacity must be between 0 and 1")
	}
	return nil
}

// Decode reads a TOML theme from r on top of the default palette.
func Decode(r io.Reader) (Theme, error) {
	t := Default()
	if _, err := toml.NewDecoder(r).Decode(&t); err != nil {
		return Theme{}, apperr.Wrap(apperr.ErrCodeInvalidTheme, err, "decode theme")
	}
	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// Load reads a TOML theme file. An empty path returns [Default].
func Load(path string) (Theme, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Theme{}, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "theme %s", path)
	}
	if err != nil {
		return Theme{}, fmt.Errorf("open theme: %w", err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return Theme{}, err
	}
	if t.Name == "" || t.Name == "default" {
		t.Name = strings.TrimSuffix(filepath.Base(path), ".toml")
	}
	return t, nil
}

// Color parses "#rgb", "#rrggbb" or "#rrggbbaa".
func Color(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", hex)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// RGBA is like [Color] but returns opaque black for invalid input.
// Themes that passed [Theme.Validate] never hit the fallback.
func RGBA(hex string) color.RGBA {
	c, err := Color(hex)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}
