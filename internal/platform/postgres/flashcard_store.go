package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// Ensure FlashcardStore implements store.FlashcardStore
var _ store.FlashcardStore = (*FlashcardStore)(nil)

// FlashcardStore implements store.FlashcardStore on PostgreSQL.
type FlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewFlashcardStore creates a PostgreSQL-backed flashcard store. The
// database handle is initialized and managed by the caller.
func NewFlashcardStore(db store.DBTX, logger *slog.Logger) *FlashcardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

const flashcardColumns = `id, question, answer, difficulty, note_id,
	next_review, review_count, correct_count, created_at`

// Create implements store.FlashcardStore.Create.
func (s *FlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	if card == nil {
		return store.NewStoreError("flashcard", "create", "card cannot be nil", store.ErrInvalidEntity)
	}
	if err := card.Validate(); err != nil {
		return store.NewStoreError("flashcard", "create", "invalid card", store.ErrInvalidEntity)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO flashcards (`+flashcardColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		card.ID, card.Question, card.Answer, string(card.Difficulty), card.NoteID,
		card.NextReview, card.ReviewCount, card.CorrectCount, card.CreatedAt)
	return mapError(err, store.ErrCardNotFound)
}

func scanFlashcard(row interface{ Scan(...any) error }) (*domain.Flashcard, error) {
	var card domain.Flashcard
	var difficulty string
	err := row.Scan(&card.ID, &card.Question, &card.Answer, &difficulty, &card.NoteID,
		&card.NextReview, &card.ReviewCount, &card.CorrectCount, &card.CreatedAt)
	if err != nil {
		return nil, err
	}
	card.Difficulty = domain.Difficulty(difficulty)
	return &card, nil
}

// GetByID implements store.FlashcardStore.GetByID.
func (s *FlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+flashcardColumns+` FROM flashcards WHERE id = $1`, id)

	card, err := scanFlashcard(row)
	if err != nil {
		return nil, mapError(err, store.ErrCardNotFound)
	}
	return card, nil
}

// List implements store.FlashcardStore.List, in creation order.
func (s *FlashcardStore) List(ctx context.Context) ([]*domain.Flashcard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+flashcardColumns+` FROM flashcards ORDER BY created_at, id`)
	if err != nil {
		return nil, mapError(err, store.ErrCardNotFound)
	}
	defer func() { _ = rows.Close() }()

	cards := make([]*domain.Flashcard, 0)
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, mapError(err, store.ErrCardNotFound)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, store.ErrCardNotFound)
	}
	return cards, nil
}

// Update implements store.FlashcardStore.Update. Only the fields set in the
// update are touched; COALESCE keeps the stored value otherwise.
func (s *FlashcardStore) Update(ctx context.Context, id uuid.UUID, update store.FlashcardUpdate) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE flashcards SET
			question = COALESCE($2, question),
			answer = COALESCE($3, answer),
			next_review = COALESCE($4, next_review),
			review_count = COALESCE($5, review_count),
			correct_count = COALESCE($6, correct_count)
		WHERE id = $1
			AND COALESCE($5, review_count) >= COALESCE($6, correct_count)
			AND COALESCE($5, review_count) >= 0
			AND COALESCE($6, correct_count) >= 0
			AND COALESCE($2, question) <> ''
			AND COALESCE($3, answer) <> ''`,
		id, update.Question, update.Answer, update.NextReview,
		update.ReviewCount, update.CorrectCount)
	if err != nil {
		return mapError(err, store.ErrCardNotFound)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err, store.ErrCardNotFound)
	}
	if affected == 0 {
		// Distinguish a missing row from an update that failed invariants.
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return store.ErrUpdateFailed
	}
	return nil
}

// Delete implements store.FlashcardStore.Delete.
func (s *FlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = $1`, id)
	if err != nil {
		return mapError(err, store.ErrCardNotFound)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err, store.ErrCardNotFound)
	}
	if affected == 0 {
		return store.ErrCardNotFound
	}
	return nil
}

// DeleteByNoteID implements store.FlashcardStore.DeleteByNoteID, returning
// how many cards were removed. A note with no linked cards is a no-op.
func (s *FlashcardStore) DeleteByNoteID(ctx context.Context, noteID uuid.UUID) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM flashcards WHERE note_id = $1`, noteID)
	if err != nil {
		return 0, mapError(err, store.ErrCardNotFound)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, mapError(err, store.ErrCardNotFound)
	}
	return int(affected), nil
}
