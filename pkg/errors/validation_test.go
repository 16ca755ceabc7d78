package errors

import (
	"math"
	"testing"
)

func TestValidateWidth(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero means unknown", 0, false},
		{"typical", 1200, false},
		{"narrow", 320, false},
		{"max", MaxWidth, false},

		{"negative", -1, true},
		{"too wide", MaxWidth + 1, true},
		{"NaN", math.NaN(), true},
		{"infinite", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWidth(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWidth(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidWidth) {
				t.Errorf("ValidateWidth(%v) code = %s, want %s", tt.input, GetCode(err), ErrCodeInvalidWidth)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "tree.svg", false},
		{"nested", "out/diagrams/tree.png", false},
		{"absolute", "/tmp/tree.pdf", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 501)), true},
		{"null byte", "tree\x00.svg", true},
		{"control char", "tree\x01.svg", true},
		{"directory", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidEngine,
		ErrCodeInvalidTheme,
		ErrCodeInvalidWidth,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeExport,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
