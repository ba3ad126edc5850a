package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/notesapi/notesapi/internal/model"
)

// sqliteNow is evaluated by SQLite so timestamps are assigned by the store.
// The fixed-width millisecond format keeps text ordering chronological.
const sqliteNow = `strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`

// SQLiteStore stores notes in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the SQLite database at path.
// The schema is created automatically; parent directories are created too.
func NewSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection serializes writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			title TEXT,
			content TEXT,
			uid TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_notes_created_at
			ON notes(created_at DESC, id DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Ping checks database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Create inserts a new note.
func (s *SQLiteStore) Create(ctx context.Context, uid string, fields model.NoteFields) (string, error) {
	id := newNoteID()

	query := `INSERT INTO notes (id, title, content, uid, created_at) VALUES (?, ?, ?, ?, ` + sqliteNow + `)`
	if _, err := s.db.ExecContext(ctx, query, id, fields.Title, fields.Content, uid); err != nil {
		return "", fmt.Errorf("%w: create note: %w", ErrStoreWrite, err)
	}

	return id, nil
}

// Get retrieves a note by its ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Note, error) {
	query := `
		SELECT id, title, content, uid, created_at, updated_at
		FROM notes
		WHERE id = ?
	`

	note, err := scanSQLiteNote(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get note %s: %w", ErrStoreRead, id, err)
	}

	return note, nil
}

// List retrieves all notes, most recent first.
func (s *SQLiteStore) List(ctx context.Context) ([]*model.Note, error) {
	query := `
		SELECT id, title, content, uid, created_at, updated_at
		FROM notes
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list notes: %w", ErrStoreRead, err)
	}
	defer func() { _ = rows.Close() }()

	notes := make([]*model.Note, 0)
	for rows.Next() {
		note, err := scanSQLiteNote(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan note: %w", ErrStoreRead, err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate notes: %w", ErrStoreRead, err)
	}

	return notes, nil
}

// Update overwrites a note's title and content.
func (s *SQLiteStore) Update(ctx context.Context, id string, fields model.NoteFields) error {
	if err := s.requireExists(ctx, id); err != nil {
		return err
	}

	query := `UPDATE notes SET title = ?, content = ?, updated_at = ` + sqliteNow + ` WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, fields.Title, fields.Content, id)
	if err != nil {
		return fmt.Errorf("%w: update note %s: %w", ErrStoreWrite, id, err)
	}

	return checkAffected(result, id)
}

// Delete removes a note.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if err := s.requireExists(ctx, id); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: delete note %s: %w", ErrStoreWrite, id, err)
	}

	return checkAffected(result, id)
}

func (s *SQLiteStore) requireExists(ctx context.Context, id string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM notes WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%w: check note %s: %w", ErrStoreRead, id, err)
	}
	if !exists {
		return ErrNoteNotFound
	}
	return nil
}

func checkAffected(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for note %s: %w", ErrStoreWrite, id, err)
	}
	if n == 0 {
		return ErrNoteNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteNote(row rowScanner) (*model.Note, error) {
	var (
		note      model.Note
		title     sql.NullString
		content   sql.NullString
		createdAt string
		updatedAt sql.NullString
	)

	if err := row.Scan(&note.ID, &title, &content, &note.UID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if title.Valid {
		note.Title = &title.String
	}
	if content.Valid {
		note.Content = &content.String
	}

	parsed, err := model.ParseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	note.CreatedAt = parsed

	if updatedAt.Valid {
		parsed, err := model.ParseTimestamp(updatedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at %q: %w", updatedAt.String, err)
		}
		note.UpdatedAt = &parsed
	}

	return &note, nil
}

var _ NoteStore = (*SQLiteStore)(nil)
