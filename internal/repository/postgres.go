package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notesapi/notesapi/internal/model"
)

// PostgresStore stores notes in a PostgreSQL table.
// Timestamps come from the database clock.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer adding methods to PostgresStore.
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

// Create inserts a new note; created_at is assigned by the column default.
func (s *PostgresStore) Create(ctx context.Context, uid string, fields model.NoteFields) (string, error) {
	id := newNoteID()

	query := `
		INSERT INTO notes (id, title, content, uid)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := s.pool.Exec(ctx, query, id, fields.Title, fields.Content, uid); err != nil {
		return "", fmt.Errorf("%w: create note: %w", ErrStoreWrite, err)
	}

	return id, nil
}

// Get retrieves a note by its ID.
func (s *PostgresStore) Get(ctx context.Context, id string) (*model.Note, error) {
	query := `
		SELECT id, title, content, uid, created_at, updated_at
		FROM notes
		WHERE id = $1
	`

	note, err := scanNote(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("%w: get note %s: %w", ErrStoreRead, id, err)
	}

	return note, nil
}

// List retrieves all notes, most recent first.
func (s *PostgresStore) List(ctx context.Context) ([]*model.Note, error) {
	query := `
		SELECT id, title, content, uid, created_at, updated_at
		FROM notes
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list notes: %w", ErrStoreRead, err)
	}
	defer rows.Close()

	notes := make([]*model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
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
func (s *PostgresStore) Update(ctx context.Context, id string, fields model.NoteFields) error {
	if err := s.requireExists(ctx, id); err != nil {
		return err
	}

	query := `
		UPDATE notes
		SET title = $2, content = $3, updated_at = clock_timestamp()
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query, id, fields.Title, fields.Content)
	if err != nil {
		return fmt.Errorf("%w: update note %s: %w", ErrStoreWrite, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// Delete removes a note.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if err := s.requireExists(ctx, id); err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: delete note %s: %w", ErrStoreWrite, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func (s *PostgresStore) requireExists(ctx context.Context, id string) error {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM notes WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%w: check note %s: %w", ErrStoreRead, id, err)
	}
	if !exists {
		return ErrNoteNotFound
	}
	return nil
}

// scanNote scans a single row into a Note model.
// pgx.Rows satisfies pgx.Row, so this serves both QueryRow and Query.
func scanNote(row pgx.Row) (*model.Note, error) {
	var note model.Note
	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.UID,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

var _ NoteStore = (*PostgresStore)(nil)
