// Package prom implements the observability hooks with Prometheus
// collectors registered on the default registry.
//
//	prom.Register()
//	http.Handle("/metrics", promhttp.Handler())
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/flowboard/pkg/observability"
)

const namespace = "flowboard"

var (
	// renderDuration measures artifact rendering.
	// Labels: viz, format, status (ok, error)
	renderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "render",
		Name:      "duration_seconds",
		Help:      "Artifact render latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"viz", "format", "status"})

	// renderBytes tracks artifact sizes.
	// Labels: viz, format
	renderBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "render",
		Name:      "artifact_bytes",
		Help:      "Size of rendered artifacts in bytes",
		Buckets:   prometheus.ExponentialBuckets(512, 4, 8),
	}, []string{"viz", "format"})

	// cacheLookups counts artifact cache lookups.
	// Labels: format, result (hit, miss)
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Artifact cache lookups by result",
	}, []string{"format", "result"})

	// cacheWrites counts bytes written to the artifact cache.
	// Labels: format
	cacheWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "written_bytes_total",
		Help:      "Bytes written to the artifact cache",
	}, []string{"format"})

	// commands counts editor events.
	// Labels: kind, changed (true, false)
	commands = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "editor",
		Name:      "events_total",
		Help:      "Editor events applied to sessions",
	}, []string{"kind", "changed"})

	// httpDuration measures served requests.
	// Labels: method, route, status
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Hooks implements every observability hook interface.
type Hooks struct{}

var (
	_ observability.RenderHooks  = Hooks{}
	_ observability.CacheHooks   = Hooks{}
	_ observability.CommandHooks = Hooks{}
	_ observability.HTTPHooks    = Hooks{}
)

// Register installs Hooks for every hook set.
func Register() {
	h := Hooks{}
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
	observability.SetCommandHooks(h)
	observability.SetHTTPHooks(h)
}

func (Hooks) OnRenderStart(context.Context, string, string) {}

func (Hooks) OnRenderComplete(_ context.Context, viz, format string, size int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	renderDuration.WithLabelValues(viz, format, status).Observe(d.Seconds())
	if err == nil {
		renderBytes.WithLabelValues(viz, format).Observe(float64(size))
	}
}

func (Hooks) OnCacheHit(_ context.Context, format string) {
	cacheLookups.WithLabelValues(format, "hit").Inc()
}

func (Hooks) OnCacheMiss(_ context.Context, format string) {
	cacheLookups.WithLabelValues(format, "miss").Inc()
}

func (Hooks) OnCacheSet(_ context.Context, format string, size int) {
	cacheWrites.WithLabelValues(format).Add(float64(size))
}

func (Hooks) OnCommand(_ context.Context, kind string, changed bool) {
	commands.WithLabelValues(kind, strconv.FormatBool(changed)).Inc()
}

func (Hooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
