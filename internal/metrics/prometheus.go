package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder exposes application metrics through its own registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	notes        *prometheus.CounterVec
	secretAccess *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheus creates a recorder with a fresh registry under namespace.
// Each instance owns its registry, so tests can create as many as they like.
func NewPrometheus(namespace string) *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	notes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notes_total",
			Help:      "Total number of note mutations by operation",
		},
		[]string{"operation"},
	)

	secretAccess := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "secret_access_total",
			Help:      "Total number of secret resolutions by outcome",
		},
		[]string{"status"},
	)

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	registry.MustRegister(
		notes,
		secretAccess,
		httpRequests,
		httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &PrometheusRecorder{
		registry:     registry,
		notes:        notes,
		secretAccess: secretAccess,
		httpRequests: httpRequests,
		httpDuration: httpDuration,
	}
}

// Registry returns the underlying registry.
func (p *PrometheusRecorder) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// IncNoteCreated increments the created counter.
func (p *PrometheusRecorder) IncNoteCreated() {
	p.notes.WithLabelValues("create").Inc()
}

// IncNoteUpdated increments the updated counter.
func (p *PrometheusRecorder) IncNoteUpdated() {
	p.notes.WithLabelValues("update").Inc()
}

// IncNoteDeleted increments the deleted counter.
func (p *PrometheusRecorder) IncNoteDeleted() {
	p.notes.WithLabelValues("delete").Inc()
}

// IncSecretAccess counts a secret resolution.
func (p *PrometheusRecorder) IncSecretAccess(status string) {
	p.secretAccess.WithLabelValues(status).Inc()
}

// ObserveHTTPRequest records request count and latency.
func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
