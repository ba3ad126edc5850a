// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus or keep them in memory.
type Recorder interface {
	// Note lifecycle metrics
	IncNoteCreated()
	IncNoteUpdated()
	IncNoteDeleted()

	// Secret resolution, status: "success" or "error"
	IncSecretAccess(status string)

	// HTTP metrics; route is the chi route pattern, not the raw path.
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

// Secret access status labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)
