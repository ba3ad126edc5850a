package handler

import (
	"fmt"
	"net/http"

	"github.com/notesapi/notesapi/internal/metrics"
)

// MetricsHandler exposes metrics in Prometheus exposition format.
// A registry-backed exporter is preferred; a Snapshotter is rendered by hand.
type MetricsHandler struct {
	exporter    http.Handler
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a MetricsHandler serving a Prometheus registry.
func NewMetricsHandler(exporter http.Handler) *MetricsHandler {
	return &MetricsHandler{exporter: exporter}
}

// NewSnapshotMetricsHandler creates a MetricsHandler over in-memory counters.
func NewSnapshotMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics handles GET /metrics.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.exporter != nil {
		h.exporter.ServeHTTP(w, r)
		return
	}
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "notes_notes_total{operation=\"create\"} %d\n", snap.NotesCreated)
	writeMetric(w, "notes_notes_total{operation=\"update\"} %d\n", snap.NotesUpdated)
	writeMetric(w, "notes_notes_total{operation=\"delete\"} %d\n", snap.NotesDeleted)

	writeMetric(w, "notes_secret_access_total{status=\"success\"} %d\n", snap.SecretAccessSuccess)
	writeMetric(w, "notes_secret_access_total{status=\"error\"} %d\n", snap.SecretAccessErrors)

	writeMetric(w, "notes_http_requests_total %d\n", snap.HTTPRequests)
	writeMetric(w, "notes_http_server_errors_total %d\n", snap.HTTPServerErrors)
	writeMetric(w, "notes_http_request_duration_seconds_sum %.6f\n", float64(snap.HTTPDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
