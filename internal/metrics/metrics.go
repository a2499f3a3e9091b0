// Package metrics exposes Prometheus collectors for the backend core.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors. Each instance carries its own
// registry so independent servers (and tests) never collide on
// registration.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	FsOpsTotal   *prometheus.CounterVec
	FsOpDuration *prometheus.HistogramVec

	SearchesTotal  prometheus.Counter
	SearchResults  prometheus.Histogram
	SnapshotWrites prometheus.Counter
	SnapshotBytes  prometheus.Gauge
}

// New creates a registry and registers all collectors on it.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vfs_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vfs_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		FsOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vfs_fs_operations_total",
				Help: "Total number of filesystem operations",
			},
			[]string{"backend", "op", "status"},
		),
		FsOpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vfs_fs_operation_duration_seconds",
				Help:    "Filesystem operation duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"backend", "op"},
		),
		SearchesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vfs_searches_total",
				Help: "Total number of search queries",
			},
		),
		SearchResults: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vfs_search_results",
				Help:    "Number of matches per search query",
				Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
			},
		),
		SnapshotWrites: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vfs_snapshot_writes_total",
				Help: "Total number of snapshot writes",
			},
		),
		SnapshotBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "vfs_snapshot_bytes",
				Help: "Size of the last written snapshot in bytes",
			},
		),
	}
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordFsOp records one filesystem contract operation.
func (m *Metrics) RecordFsOp(backend, op, status string, duration time.Duration) {
	m.FsOpsTotal.WithLabelValues(backend, op, status).Inc()
	m.FsOpDuration.WithLabelValues(backend, op).Observe(duration.Seconds())
}

// RecordSearch records one search query and its result count.
func (m *Metrics) RecordSearch(results int) {
	m.SearchesTotal.Inc()
	m.SearchResults.Observe(float64(results))
}
