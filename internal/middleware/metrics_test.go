package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) IncNoteCreated()               {}
func (m *mockRecorder) IncNoteUpdated()               {}
func (m *mockRecorder) IncNoteDeleted()               {}
func (m *mockRecorder) IncSecretAccess(status string) {}

func (m *mockRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.Called(method, route, status)
}

func TestMetrics_RoutePattern(t *testing.T) {
	recorder := new(mockRecorder)
	recorder.On("ObserveHTTPRequest", http.MethodGet, "/notes/{id}", http.StatusOK).Once()

	r := chi.NewRouter()
	r.Use(Metrics(recorder))
	r.Get("/notes/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/notes/01HXABC", nil))

	recorder.AssertExpectations(t)
}

func TestMetrics_UnmatchedRoute(t *testing.T) {
	recorder := new(mockRecorder)
	recorder.On("ObserveHTTPRequest", http.MethodGet, "unmatched", http.StatusNotFound).Once()

	handler := Metrics(recorder)(http.NotFoundHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	recorder.AssertExpectations(t)
	assert.Len(t, recorder.Calls, 1)
}
