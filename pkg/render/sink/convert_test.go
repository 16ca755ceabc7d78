package sink

import (
	"bytes"
	"context"
	"testing"

	apperr "github.com/matzehuels/treeviz/pkg/errors"
)

func TestRenderPDF(t *testing.T) {
	ctx := context.Background()
	pdf, err := RenderPDF(ctx, abcScene())
	if !HasRSVG() {
		if !apperr.Is(err, apperr.ErrCodeUnsupported) {
			t.Errorf("without rsvg-convert: error = %v, want %s", err, apperr.ErrCodeUnsupported)
		}
		t.Skip("rsvg-convert not installed")
	}
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output is not a PDF: %.8q", pdf)
	}
}

func TestToPNG(t *testing.T) {
	if !HasRSVG() {
		t.Skip("rsvg-convert not installed")
	}
	out, err := ToPNG(context.Background(), RenderSVG(abcScene()), 1)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
