package handler

import (
	"context"
	"net/http"

	"github.com/notesapi/notesapi/internal/diagnostics"
	"github.com/notesapi/notesapi/internal/handler/dto"
)

// ConfigProber takes a configuration snapshot.
type ConfigProber interface {
	Config(ctx context.Context) diagnostics.ConfigResult
}

// AdminHandler provides admin-only endpoints for debugging and operations.
type AdminHandler struct {
	prober ConfigProber
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(prober ConfigProber) *AdminHandler {
	return &AdminHandler{prober: prober}
}

// Config handles GET /admin/config.
// A failed snapshot is still a 200, carrying an error field instead of the values.
func (h *AdminHandler) Config(w http.ResponseWriter, r *http.Request) {
	result := h.prober.Config(r.Context())

	if result.Condition == diagnostics.Degraded {
		writeJSON(w, http.StatusOK, dto.ConfigErrorResponse{
			Error:   result.Reason,
			Status:  "configuration_error",
			Service: diagnostics.ServiceName,
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.ConfigResponse{
		Service:             diagnostics.ServiceName,
		Version:             diagnostics.Version,
		ProjectID:           result.ProjectID,
		Environment:         result.Environment,
		DatabaseConfigured:  result.DatabaseConfigured,
		JWTConfigured:       result.JWTConfigured,
		DocumentStoreStatus: connection(result.StoreConnected),
		SecretManagerStatus: dto.Connected,
	})
}
