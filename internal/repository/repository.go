// Package repository provides the note store adapters.
//
// Every backend maps each operation to one or two store-native calls and
// assigns ids and creation timestamps at write time. Update and Delete read
// the record first and report ErrNoteNotFound when it is absent.
package repository

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"

	"github.com/notesapi/notesapi/internal/model"
)

// Common errors for note store operations.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrStoreRead    = errors.New("note store read failed")
	ErrStoreWrite   = errors.New("note store write failed")
)

// NoteStore is the persistence contract for notes.
type NoteStore interface {
	// Create inserts a note and returns its store-assigned id.
	Create(ctx context.Context, uid string, fields model.NoteFields) (string, error)
	// Get returns ErrNoteNotFound when no note has the given id.
	Get(ctx context.Context, id string) (*model.Note, error)
	// List returns every note, newest first. An empty store yields an empty slice.
	List(ctx context.Context) ([]*model.Note, error)
	// Update overwrites title and content and refreshes updated_at.
	Update(ctx context.Context, id string, fields model.NoteFields) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// newNoteID returns a lexically sortable, never-reused note id.
func newNoteID() string {
	return ulid.Make().String()
}
