// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/notesapi/notesapi/internal/metrics"
	"github.com/notesapi/notesapi/internal/model"
	"github.com/notesapi/notesapi/internal/repository"
)

// Service errors.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNoteNotFound = errors.New("note not found")
)

// ValidationError describes missing or malformed caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets callers match any ValidationError with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NoteService handles note business logic.
type NoteService struct {
	store    repository.NoteStore
	metrics  metrics.Recorder
	validate *validator.Validate
}

// NewNoteService creates a new NoteService.
func NewNoteService(store repository.NoteStore, recorder metrics.Recorder) *NoteService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &NoteService{
		store:    store,
		metrics:  recorder,
		validate: validator.New(),
	}
}

// CreateNoteInput defines input for creating a note.
type CreateNoteInput struct {
	UID     string `validate:"required"`
	Title   *string
	Content *string
}

// ValidateCreate checks the input without touching the store.
func (s *NoteService) ValidateCreate(input CreateNoteInput) error {
	if err := s.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{
				Field:   strings.ToLower(fieldErrs[0].Field()),
				Message: formatFieldError(fieldErrs[0]),
			}
		}
		return fmt.Errorf("validate note input: %w", err)
	}
	return nil
}

// CreateNote stores a new note and returns its id.
func (s *NoteService) CreateNote(ctx context.Context, input CreateNoteInput) (string, error) {
	if err := s.ValidateCreate(input); err != nil {
		return "", err
	}

	id, err := s.store.Create(ctx, input.UID, model.NoteFields{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return "", err
	}

	s.metrics.IncNoteCreated()
	return id, nil
}

// GetNote retrieves a note by ID.
func (s *NoteService) GetNote(ctx context.Context, id string) (*model.Note, error) {
	note, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return note, nil
}

// ListNotes returns every note, newest first.
func (s *NoteService) ListNotes(ctx context.Context) ([]*model.Note, error) {
	return s.store.List(ctx)
}

// UpdateNote overwrites a note's title and content.
func (s *NoteService) UpdateNote(ctx context.Context, id string, fields model.NoteFields) error {
	if err := s.store.Update(ctx, id, fields); err != nil {
		return mapStoreError(err)
	}

	s.metrics.IncNoteUpdated()
	return nil
}

// DeleteNote removes a note.
func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}

	s.metrics.IncNoteDeleted()
	return nil
}

// Ping reports whether the note store is reachable.
func (s *NoteService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func mapStoreError(err error) error {
	if errors.Is(err, repository.ErrNoteNotFound) {
		return ErrNoteNotFound
	}
	return err
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
