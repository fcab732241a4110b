package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// Ensure NoteStore implements store.NoteStore
var _ store.NoteStore = (*NoteStore)(nil)

// NoteStore implements store.NoteStore on PostgreSQL.
type NoteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewNoteStore creates a PostgreSQL-backed note store.
func NewNoteStore(db store.DBTX, logger *slog.Logger) *NoteStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteStore{
		db:     db,
		logger: logger.With(slog.String("component", "note_store")),
	}
}

const noteColumns = `id, title, content, summary, tags, folder_id,
	word_count, created_at, updated_at`

// Create implements store.NoteStore.Create.
func (s *NoteStore) Create(ctx context.Context, note *domain.Note) error {
	if note == nil {
		return store.NewStoreError("note", "create", "note cannot be nil", store.ErrInvalidEntity)
	}
	if err := note.Validate(); err != nil {
		return store.NewStoreError("note", "create", "invalid note", store.ErrInvalidEntity)
	}

	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		note.ID, note.Title, note.Content, note.Summary, tags, note.FolderID,
		note.WordCount, note.CreatedAt, note.UpdatedAt)
	return mapError(err, store.ErrNoteNotFound)
}

func scanNote(row interface{ Scan(...any) error }) (*domain.Note, error) {
	var note domain.Note
	var tags []byte
	err := row.Scan(&note.ID, &note.Title, &note.Content, &note.Summary, &tags,
		&note.FolderID, &note.WordCount, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &note.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
	}
	return &note, nil
}

// GetByID implements store.NoteStore.GetByID.
func (s *NoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)

	note, err := scanNote(row)
	if err != nil {
		return nil, mapError(err, store.ErrNoteNotFound)
	}
	return note, nil
}

// List implements store.NoteStore.List, in creation order.
func (s *NoteStore) List(ctx context.Context) ([]*domain.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+noteColumns+` FROM notes ORDER BY created_at, id`)
	if err != nil {
		return nil, mapError(err, store.ErrNoteNotFound)
	}
	defer func() { _ = rows.Close() }()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, mapError(err, store.ErrNoteNotFound)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, store.ErrNoteNotFound)
	}
	return notes, nil
}

// Update implements store.NoteStore.Update. Content changes recompute the
// stored word count; every update refreshes updated_at.
func (s *NoteStore) Update(ctx context.Context, id uuid.UUID, update store.NoteUpdate) error {
	note, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return store.ErrUpdateFailed
		}
		note.Title = *update.Title
	}
	if update.Content != nil {
		note.UpdateContent(*update.Content)
	}
	if update.Summary != nil {
		note.Summary = *update.Summary
	}
	if update.Tags != nil {
		note.Tags = *update.Tags
	}
	if update.FolderID != nil {
		note.FolderID = update.FolderID
	}
	if err := note.Validate(); err != nil {
		return store.ErrUpdateFailed
	}

	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE notes SET
			title = $2, content = $3, summary = $4, tags = $5,
			folder_id = $6, word_count = $7, updated_at = now()
		WHERE id = $1`,
		id, note.Title, note.Content, note.Summary, tags,
		note.FolderID, note.WordCount)
	if err != nil {
		return mapError(err, store.ErrNoteNotFound)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err, store.ErrNoteNotFound)
	}
	if affected == 0 {
		return store.ErrNoteNotFound
	}
	return nil
}

// Delete implements store.NoteStore.Delete. Linked flashcards are removed by
// the schema's ON DELETE CASCADE; callers that need the removed count use
// FlashcardStore.DeleteByNoteID first.
func (s *NoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return mapError(err, store.ErrNoteNotFound)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err, store.ErrNoteNotFound)
	}
	if affected == 0 {
		return store.ErrNoteNotFound
	}
	return nil
}
