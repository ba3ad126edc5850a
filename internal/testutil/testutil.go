// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/notesapi/notesapi/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetNotesSchema drops and recreates the notes table from the migration files.
func ResetNotesSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	for _, name := range []string{"000001_notes.down.sql", "000001_notes.up.sql"} {
		sql, err := os.ReadFile(filepath.Join(root, "migrations", name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// NoteFields builds a write payload with both fields set.
func NoteFields(title, content string) model.NoteFields {
	return model.NoteFields{Title: Ptr(title), Content: Ptr(content)}
}

// NewTestNote creates a stored-looking note with sensible defaults.
func NewTestNote(t testing.TB, id string) *model.Note {
	t.Helper()
	return &model.Note{
		ID:        id,
		Title:     Ptr("title " + id),
		Content:   Ptr("content " + id),
		UID:       "test-user",
		CreatedAt: time.Now().UTC(),
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// ============================================================================
// Fake secret backend
// ============================================================================

// SecretBackend is an in-memory secret store keyed by project and name.
// Versions are appended; the last one is the latest.
type SecretBackend struct {
	mu       sync.Mutex
	versions map[string][]string
	// Err, when set, is returned by every lookup.
	Err error
}

// NewSecretBackend returns an empty SecretBackend.
func NewSecretBackend() *SecretBackend {
	return &SecretBackend{versions: make(map[string][]string)}
}

// Add appends a version of the named secret.
func (b *SecretBackend) Add(project, name, value string) *SecretBackend {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := project + "/" + name
	b.versions[key] = append(b.versions[key], value)
	return b
}

// AccessLatest returns the latest version of the named secret.
func (b *SecretBackend) AccessLatest(_ context.Context, project, name string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return "", b.Err
	}
	versions := b.versions[project+"/"+name]
	if len(versions) == 0 {
		return "", fmt.Errorf("secret %s/%s not found", project, name)
	}
	return versions[len(versions)-1], nil
}
