// Package model defines domain entities for the application.
package model

import "time"

// Note is a stored text record owned by the caller identity that created it.
// It is never serialized directly; responses go through handler/dto, which
// renders the timestamps as strings.
type Note struct {
	ID        string
	Title     *string
	Content   *string
	UID       string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// NoteFields holds the caller-writable fields of a note.
// Updates overwrite both fields wholesale; a nil field is stored as null.
type NoteFields struct {
	Title   *string
	Content *string
}

