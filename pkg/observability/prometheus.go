package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks records pipeline, cache and HTTP events as Prometheus
// metrics. Register it with [SetPipelineHooks], [SetCacheHooks] and
// [SetHTTPHooks] (or [RegisterAll]).
type PrometheusHooks struct {
	stageDuration *prometheus.HistogramVec
	stageTotal    *prometheus.CounterVec
	treeNodes     prometheus.Histogram
	renderFormats *prometheus.CounterVec
	cacheEvents   *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) (*PrometheusHooks, error) {
	h := &PrometheusHooks{
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "treeviz_stage_duration_seconds",
				Help:    "Duration of pipeline stages",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"stage", "engine"},
		),
		stageTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treeviz_stage_total",
				Help: "Pipeline stage executions by outcome",
			},
			[]string{"stage", "outcome"},
		),
		treeNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "treeviz_tree_nodes",
				Help:    "Number of nodes in laid-out trees",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		renderFormats: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treeviz_render_formats_total",
				Help: "Artifacts rendered by format",
			},
			[]string{"format"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treeviz_cache_events_total",
				Help: "Cache lookups and writes",
			},
			[]string{"type", "event"},
		),
		cacheBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treeviz_cache_written_bytes_total",
				Help: "Bytes written to the cache",
			},
			[]string{"type"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treeviz_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "treeviz_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	for _, c := range h.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *PrometheusHooks) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		h.stageDuration, h.stageTotal, h.treeNodes, h.renderFormats,
		h.cacheEvents, h.cacheBytes, h.httpRequests, h.httpDuration,
	}
}

// RegisterAll installs h as the global pipeline, cache and HTTP hooks.
func (h *PrometheusHooks) RegisterAll() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *PrometheusHooks) OnLayoutStart(_ context.Context, _ string, nodeCount int) {
	h.treeNodes.Observe(float64(nodeCount))
}

func (h *PrometheusHooks) OnLayoutComplete(_ context.Context, engine string, d time.Duration, err error) {
	h.stageDuration.WithLabelValues("layout", engine).Observe(d.Seconds())
	h.stageTotal.WithLabelValues("layout", outcome(err)).Inc()
}

func (h *PrometheusHooks) OnRenderStart(_ context.Context, formats []string) {
	for _, f := range formats {
		h.renderFormats.WithLabelValues(f).Inc()
	}
}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	h.stageDuration.WithLabelValues("render", "").Observe(d.Seconds())
	h.stageTotal.WithLabelValues("render", outcome(err)).Inc()
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnError(context.Context, string, string, error) {}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
