package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxWidth bounds the drawing width accepted from callers.
const MaxWidth = 100_000

// ValidateWidth checks a requested drawing width.
// Zero means "unknown" and is accepted; layout substitutes its default.
func ValidateWidth(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidWidth, "width must be a finite number")
	}
	if w < 0 {
		return New(ErrCodeInvalidWidth, "width cannot be negative: %g", w)
	}
	if w > MaxWidth {
		return New(ErrCodeInvalidWidth, "width too large (max %d)", MaxWidth)
	}
	return nil
}

// ValidateOutputPath validates a file path that output will be written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path names a directory: %s", path)
	}

	return nil
}
