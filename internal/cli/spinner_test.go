package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer lets the test read what the spinner goroutine wrote.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	var out syncBuffer
	s := startSpinner(context.Background(), &out, "Rendering svg...")
	time.Sleep(3 * spinnerInterval)
	s.stop()

	got := out.String()
	if !strings.Contains(got, "Rendering svg...") {
		t.Errorf("spinner never drew its message: %q", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("spinner line not cleared: %q", got)
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	s := startSpinner(ctx, &out, "waiting")
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after context cancellation")
	}
	s.stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), &syncBuffer{}, "idle")
	s.stop()
	s.stop()
	s.fail("again")
}

func TestSpinnerFail(t *testing.T) {
	var out syncBuffer
	s := startSpinner(context.Background(), &out, "Rendering png...")
	s.fail("Render failed")

	if !strings.Contains(out.String(), "Render failed") {
		t.Errorf("fail message missing: %q", out.String())
	}
}
