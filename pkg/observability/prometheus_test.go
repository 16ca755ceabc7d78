package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := NewPrometheusHooks(reg)
	if err != nil {
		t.Fatalf("NewPrometheusHooks: %v", err)
	}
	ctx := context.Background()

	h.OnLayoutStart(ctx, "native", 7)
	h.OnLayoutComplete(ctx, "native", time.Millisecond, nil)
	h.OnLayoutComplete(ctx, "graphviz", time.Millisecond, errors.New("boom"))
	h.OnRenderStart(ctx, []string{"svg", "png", "svg"})
	h.OnRenderComplete(ctx, []string{"svg", "png"}, time.Millisecond, nil)
	h.OnCacheHit(ctx, "scene")
	h.OnCacheMiss(ctx, "artifact")
	h.OnCacheSet(ctx, "artifact", 1024)
	h.OnResponse(ctx, "POST", "/v1/scenes", 200, time.Millisecond)
	h.OnResponse(ctx, "POST", "/v1/scenes", 400, time.Millisecond)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"layout ok", h.stageTotal.WithLabelValues("layout", "ok"), 1},
		{"layout error", h.stageTotal.WithLabelValues("layout", "error"), 1},
		{"render ok", h.stageTotal.WithLabelValues("render", "ok"), 1},
		{"svg renders", h.renderFormats.WithLabelValues("svg"), 2},
		{"scene hits", h.cacheEvents.WithLabelValues("scene", "hit"), 1},
		{"artifact misses", h.cacheEvents.WithLabelValues("artifact", "miss"), 1},
		{"cache bytes", h.cacheBytes.WithLabelValues("artifact"), 1024},
		{"http 200", h.httpRequests.WithLabelValues("POST", "/v1/scenes", "200"), 1},
		{"http 400", h.httpRequests.WithLabelValues("POST", "/v1/scenes", "400"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if n := testutil.CollectAndCount(h.treeNodes); n != 1 {
		t.Errorf("tree node histogram series = %d, want 1", n)
	}
}

func TestPrometheusHooksDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusHooks(reg); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPrometheusHooks(reg); err == nil {
		t.Error("registering twice on one registry should fail")
	}
}

func TestPrometheusHooksRegisterAll(t *testing.T) {
	defer Reset()
	h, err := NewPrometheusHooks(prometheus.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	h.RegisterAll()
	if Pipeline() != PipelineHooks(h) || Cache() != CacheHooks(h) || HTTP() != HTTPHooks(h) {
		t.Error("RegisterAll should install h for every hook type")
	}
}
