package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	NotesCreated        uint64
	NotesUpdated        uint64
	NotesDeleted        uint64
	SecretAccessSuccess uint64
	SecretAccessErrors  uint64
	HTTPRequests        uint64
	HTTPServerErrors    uint64
	HTTPDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	notesCreated        uint64
	notesUpdated        uint64
	notesDeleted        uint64
	secretAccessSuccess uint64
	secretAccessErrors  uint64
	httpRequests        uint64
	httpServerErrors    uint64
	httpDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		NotesCreated:        atomic.LoadUint64(&m.notesCreated),
		NotesUpdated:        atomic.LoadUint64(&m.notesUpdated),
		NotesDeleted:        atomic.LoadUint64(&m.notesDeleted),
		SecretAccessSuccess: atomic.LoadUint64(&m.secretAccessSuccess),
		SecretAccessErrors:  atomic.LoadUint64(&m.secretAccessErrors),
		HTTPRequests:        atomic.LoadUint64(&m.httpRequests),
		HTTPServerErrors:    atomic.LoadUint64(&m.httpServerErrors),
		HTTPDurationTotalNs: atomic.LoadInt64(&m.httpDurationTotalNs),
	}
}

// IncNoteCreated increments note created counter.
func (m *InMemoryRecorder) IncNoteCreated() {
	atomic.AddUint64(&m.notesCreated, 1)
}

// IncNoteUpdated increments note updated counter.
func (m *InMemoryRecorder) IncNoteUpdated() {
	atomic.AddUint64(&m.notesUpdated, 1)
}

// IncNoteDeleted increments note deleted counter.
func (m *InMemoryRecorder) IncNoteDeleted() {
	atomic.AddUint64(&m.notesDeleted, 1)
}

// IncSecretAccess increments the success or error counter.
func (m *InMemoryRecorder) IncSecretAccess(status string) {
	if status == StatusSuccess {
		atomic.AddUint64(&m.secretAccessSuccess, 1)
		return
	}
	atomic.AddUint64(&m.secretAccessErrors, 1)
}

// ObserveHTTPRequest records a served request.
func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	atomic.AddUint64(&m.httpRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&m.httpServerErrors, 1)
	}
	atomic.AddInt64(&m.httpDurationTotalNs, duration.Nanoseconds())
}
