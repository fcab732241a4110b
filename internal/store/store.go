// Package store defines the persistence interfaces the services and session
// engines depend on. Implementations live under internal/platform: an
// in-memory store for single-process use and tests, and a pgx-backed store
// for durable deployments.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
)

// FlashcardUpdate describes a partial update to a flashcard. Nil fields are
// left untouched. Difficulty is deliberately absent: it is immutable after
// creation.
type FlashcardUpdate struct {
	Question     *string
	Answer       *string
	NextReview   *time.Time
	ReviewCount  *int
	CorrectCount *int
}

// FlashcardStore defines the interface for flashcard persistence.
// List order is creation order; the due-set selector and the quiz sampler
// both rely on that order being stable.
type FlashcardStore interface {
	// Create saves a new flashcard to the store.
	// Returns ErrInvalidEntity wrapping the validation failure if the card
	// is invalid, or ErrDuplicate if the ID already exists.
	Create(ctx context.Context, card *domain.Flashcard) error

	// GetByID retrieves a flashcard by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// List returns all flashcards in creation order.
	List(ctx context.Context) ([]*domain.Flashcard, error)

	// Update applies the non-nil fields of update to an existing card.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, id uuid.UUID, update FlashcardUpdate) error

	// Delete removes a flashcard from the store by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByNoteID removes every flashcard derived from the given note and
	// returns how many were removed. Deleting zero cards is not an error.
	DeleteByNoteID(ctx context.Context, noteID uuid.UUID) (int, error)
}

// NoteUpdate describes a partial update to a note. Nil fields are left
// untouched.
type NoteUpdate struct {
	Title    *string
	Content  *string
	Summary  *string
	Tags     *[]string
	FolderID *uuid.UUID
}

// NoteStore defines the interface for note persistence.
type NoteStore interface {
	// Create saves a new note to the store.
	Create(ctx context.Context, note *domain.Note) error

	// GetByID retrieves a note by its unique ID.
	// Returns ErrNoteNotFound if the note does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// List returns all notes in creation order.
	List(ctx context.Context) ([]*domain.Note, error)

	// Update applies the non-nil fields of update to an existing note.
	// Returns ErrNoteNotFound if the note does not exist.
	Update(ctx context.Context, id uuid.UUID, update NoteUpdate) error

	// Delete removes a note from the store by its ID. Cascade deletion of
	// the note's flashcards is the note service's responsibility, not the
	// store's.
	Delete(ctx context.Context, id uuid.UUID) error
}

// SessionStore defines the interface for the append-only session log.
// Sessions are never updated or deleted.
type SessionStore interface {
	// Append adds a completed session record to the log.
	// Returns ErrInvalidEntity wrapping the validation failure if the
	// session is invalid.
	Append(ctx context.Context, session *domain.StudySession) error

	// ListRecent returns up to limit sessions, most recently completed
	// first. A non-positive limit returns an empty slice.
	ListRecent(ctx context.Context, limit int) ([]*domain.StudySession, error)
}
