package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements every hook interface with Prometheus metrics.
type PrometheusHooks struct {
	RefreshTotal    *prometheus.CounterVec
	StageDuration   *prometheus.HistogramVec
	GraphNodes      prometheus.Gauge
	GraphEdges      prometheus.Gauge
	SkippedSegments prometheus.Counter
	CacheRequests   *prometheus.CounterVec
	CacheBytes      prometheus.Counter
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// NewPrometheusHooks creates the metrics and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		RefreshTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tubemap_refresh_total",
				Help: "Total number of map refreshes, by outcome",
			},
			[]string{"status"},
		),
		StageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tubemap_stage_duration_seconds",
				Help:    "Duration of refresh stages in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"stage"},
		),
		GraphNodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "tubemap_graph_nodes",
			Help: "Stations in the most recently built graph",
		}),
		GraphEdges: f.NewGauge(prometheus.GaugeOpts{
			Name: "tubemap_graph_edges",
			Help: "Segments in the most recently built graph",
		}),
		SkippedSegments: f.NewCounter(prometheus.CounterOpts{
			Name: "tubemap_skipped_segments_total",
			Help: "Segments left out of a graph because an endpoint had no position",
		}),
		CacheRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tubemap_cache_requests_total",
				Help: "Cache lookups and writes, by key type and result",
			},
			[]string{"key_type", "result"},
		),
		CacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "tubemap_cache_written_bytes_total",
			Help: "Bytes written to the artifact cache",
		}),
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tubemap_http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tubemap_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (h *PrometheusHooks) OnRefreshStart(context.Context, []string) {}

func (h *PrometheusHooks) OnFilterComplete(_ context.Context, _, _ int, d time.Duration) {
	h.StageDuration.WithLabelValues("filter").Observe(d.Seconds())
}

func (h *PrometheusHooks) OnBuildComplete(_ context.Context, nodes, edges, skipped int, d time.Duration) {
	h.StageDuration.WithLabelValues("build").Observe(d.Seconds())
	h.GraphNodes.Set(float64(nodes))
	h.GraphEdges.Set(float64(edges))
	h.SkippedSegments.Add(float64(skipped))
}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, _ error) {
	h.StageDuration.WithLabelValues("render").Observe(d.Seconds())
}

func (h *PrometheusHooks) OnRefreshComplete(_ context.Context, d time.Duration, err error) {
	h.StageDuration.WithLabelValues("refresh").Observe(d.Seconds())
	h.RefreshTotal.WithLabelValues(status(err)).Inc()
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.CacheRequests.WithLabelValues(keyType, "set").Inc()
	h.CacheBytes.Add(float64(size))
}

func (h *PrometheusHooks) OnRequest(_ context.Context, method, route string, code int, d time.Duration) {
	h.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
