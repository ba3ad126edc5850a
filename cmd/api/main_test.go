package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"no credentials", "redis://localhost:6379/0", "redis://localhost:6379/0"},
		{"user and password", "postgres://notes:hunter2@db:5432/notes", "postgres://notes@db:5432/notes"},
		{"password only", "redis://:hunter2@cache:6379", "redis://redacted@cache:6379"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, redactURL(tt.raw))
		})
	}
}

func TestSanitizeError(t *testing.T) {
	dsn := "postgres://notes:hunter2@db:5432/notes"
	err := errors.New("connect " + dsn + " failed: password=hunter2 rejected")

	got := sanitizeError(err, dsn, "")

	assert.NotContains(t, got, "hunter2")
	assert.Contains(t, got, "postgres://notes@db:5432/notes")
	assert.Contains(t, got, "password=redacted")
	assert.Equal(t, "", sanitizeError(nil, dsn))
}
