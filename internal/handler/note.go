package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/notesapi/notesapi/internal/handler/dto"
	"github.com/notesapi/notesapi/internal/middleware"
	"github.com/notesapi/notesapi/internal/model"
	"github.com/notesapi/notesapi/internal/service"
)

// UserIDHeader carries the caller identity on note creation.
const UserIDHeader = "X-User-Id"

// NoteService is the subset of service.NoteService used by NoteHandler.
type NoteService interface {
	CreateNote(ctx context.Context, input service.CreateNoteInput) (string, error)
	GetNote(ctx context.Context, id string) (*model.Note, error)
	ListNotes(ctx context.Context) ([]*model.Note, error)
	UpdateNote(ctx context.Context, id string, fields model.NoteFields) error
	DeleteNote(ctx context.Context, id string) error
}

// NoteHandler handles HTTP requests for note operations.
type NoteHandler struct {
	svc    NoteService
	logger *zap.Logger
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(svc NoteService, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /notes.
// The identity header is checked before the body is read.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid := r.Header.Get(UserIDHeader)
	if uid == "" {
		writeDetail(w, http.StatusBadRequest, UserIDHeader+" header is missing")
		return
	}

	var req dto.NoteRequest
	if !decodeNoteRequest(w, r, &req) {
		return
	}

	id, err := h.svc.CreateNote(r.Context(), service.CreateNoteInput{
		UID:     uid,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("note_created",
		zap.String("note_id", id),
		zap.String("uid", uid),
	)

	writeJSON(w, http.StatusOK, dto.MutationResponse{Status: dto.StatusSuccess, ID: id})
}

// List handles GET /notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.ListNotes(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNoteListResponse(notes))
}

// Get handles GET /notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	note, err := h.svc.GetNote(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNoteResponse(note))
}

// Update handles PUT /notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// A missing note is 404 whatever the body holds.
		if _, getErr := h.svc.GetNote(r.Context(), id); getErr != nil {
			h.handleServiceError(w, r, getErr)
			return
		}
		writeBodyError(w, err)
		return
	}

	if err := h.svc.UpdateNote(r.Context(), id, req.Fields()); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("note_updated", zap.String("note_id", id))

	writeJSON(w, http.StatusOK, dto.MutationResponse{Status: dto.StatusUpdated, ID: id})
}

// Delete handles DELETE /notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.DeleteNote(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("note_deleted", zap.String("note_id", id))

	writeJSON(w, http.StatusOK, dto.MutationResponse{Status: dto.StatusDeleted, ID: id})
}

// handleServiceError maps service errors to HTTP responses.
// Anything unanticipated is logged in full and answered with the fallback body.
func (h *NoteHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		writeDetail(w, http.StatusNotFound, "Note not found")
	case errors.Is(err, service.ErrValidation):
		writeDetail(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal_error",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeInternalError(w)
	}
}

// decodeNoteRequest reads the JSON body into req, answering on failure.
func decodeNoteRequest(w http.ResponseWriter, r *http.Request, req *dto.NoteRequest) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeBodyError(w, err)
		return false
	}
	return true
}

// writeBodyError answers 413 when the body limit tripped and 400 for anything
// else unreadable.
func writeBodyError(w http.ResponseWriter, err error) {
	if middleware.IsBodyTooLarge(err) {
		middleware.WriteBodyTooLarge(w)
		return
	}
	writeDetail(w, http.StatusBadRequest, "Invalid request body")
}
