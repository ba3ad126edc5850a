// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/notesapi/notesapi/internal/model"

// NoteRequest is the body of POST /notes and PUT /notes/{id}.
// Absent fields decode as nil and are stored as null.
type NoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Fields converts the request into the store write payload.
func (r NoteRequest) Fields() model.NoteFields {
	return model.NoteFields{Title: r.Title, Content: r.Content}
}

// NoteResponse represents a note in API responses.
// Timestamps are pre-rendered strings.
type NoteResponse struct {
	ID        string  `json:"id"`
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	UID       string  `json:"uid"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

// ToNoteResponse converts a model.Note to NoteResponse.
func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		UID:       note.UID,
		CreatedAt: model.FormatTimestamp(note.CreatedAt),
		UpdatedAt: model.FormatOptionalTimestamp(note.UpdatedAt),
	}
}

// ToNoteListResponse converts notes preserving order. Never returns nil.
func ToNoteListResponse(notes []*model.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, note := range notes {
		out = append(out, ToNoteResponse(note))
	}
	return out
}

// Mutation statuses.
const (
	StatusSuccess = "success"
	StatusUpdated = "updated"
	StatusDeleted = "deleted"
)

// MutationResponse acknowledges a create, update or delete.
type MutationResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}
