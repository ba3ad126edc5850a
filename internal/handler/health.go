package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/notesapi/notesapi/internal/diagnostics"
	"github.com/notesapi/notesapi/internal/handler/dto"
	"github.com/notesapi/notesapi/internal/model"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthProber runs the diagnostic health probe.
type HealthProber interface {
	Health(ctx context.Context) diagnostics.HealthResult
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	prober  HealthProber
	store   HealthChecker
	secrets HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for secrets when the secret backend cannot be pinged.
func NewHealthHandler(prober HealthProber, store, secrets HealthChecker) *HealthHandler {
	return &HealthHandler{
		prober:  prober,
		store:   store,
		secrets: secrets,
	}
}

// Health resolves a secret and pings the note store.
// It always answers 200; a failed probe flips the status to "unhealthy".
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	result := h.prober.Health(r.Context())

	response := dto.HealthResponse{
		Status:        "healthy",
		Service:       diagnostics.ServiceName,
		DocumentStore: connection(result.StoreConnected),
		SecretManager: connection(result.SecretsReached),
		Timestamp:     model.FormatTimestamp(result.CheckedAt),
	}

	switch result.Condition {
	case diagnostics.Healthy:
		response.Environment = result.Environment
	case diagnostics.Degraded:
		response.Status = "unhealthy"
		response.Error = result.Reason
	}

	writeJSON(w, http.StatusOK, response)
}

// Healthz is a liveness probe endpoint.
// It returns 200 if the server is running.
// No dependency checks - this is for Kubernetes liveness probes.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.ProbeResponse{Status: "ok"})
}

// Readyz is a readiness probe endpoint.
// It checks all dependencies and returns 200 only if all are healthy.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			checks["note_store"] = "error"
			healthy = false
		} else {
			checks["note_store"] = "ok"
		}
	} else {
		checks["note_store"] = "not configured"
		healthy = false
	}

	if h.secrets != nil {
		if err := h.secrets.Ping(ctx); err != nil {
			checks["secret_store"] = "error"
			healthy = false
		} else {
			checks["secret_store"] = "ok"
		}
	} else {
		checks["secret_store"] = "not checked"
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, dto.ProbeResponse{
		Status: status,
		Checks: checks,
	})
}

func connection(ok bool) string {
	if ok {
		return dto.Connected
	}
	return dto.Disconnected
}
