// Package fonts provides the font faces used to rasterise trees.
//
// The Go font family is compiled into the binary (golang.org/x/image/font/gofont),
// so PNG output does not depend on fonts installed on the host. Parsed fonts
// are cached after first use; faces are cheap to create per render.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Weight selects a font of the family.
type Weight int

const (
	Regular Weight = iota
	Bold
)

func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "regular"
}

var ttfs = [...][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
}

// Cache for parsed fonts (computed once on first access).
var (
	parsed   [len(ttfs)]*opentype.Font
	parseErr [len(ttfs)]error
	once     [len(ttfs)]sync.Once
)

// TTF returns the raw TrueType data for w.
func TTF(w Weight) []byte {
	if w < 0 || int(w) >= len(ttfs) {
		return nil
	}
	return ttfs[w]
}

func load(w Weight) (*opentype.Font, error) {
	if w < 0 || int(w) >= len(ttfs) {
		return nil, fmt.Errorf("unknown font weight %d", w)
	}
	once[w].Do(func() {
		parsed[w], parseErr[w] = opentype.Parse(ttfs[w])
	})
	if parseErr[w] != nil {
		return nil, fmt.Errorf("parse %s font: %w", w, parseErr[w])
	}
	return parsed[w], nil
}

// Face returns a face of the given weight at size pixels (72 DPI, unhinted).
// The caller must Close it.
func Face(w Weight, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}
	f, err := load(w)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("%s font face: %w", w, err)
	}
	return face, nil
}
