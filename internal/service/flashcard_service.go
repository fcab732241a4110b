package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/clock"
	"github.com/SaagarParikh1/NeuroNotes/internal/service/study"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// FlashcardService implements flashcard management use cases.
type FlashcardService struct {
	cards  store.FlashcardStore
	clock  clock.Clock
	logger *slog.Logger
}

// NewFlashcardService creates a FlashcardService with the given dependencies.
func NewFlashcardService(
	cards store.FlashcardStore,
	clk clock.Clock,
	logger *slog.Logger,
) *FlashcardService {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardService{
		cards:  cards,
		clock:  clk,
		logger: logger.With(slog.String("component", "flashcard_service")),
	}
}

// CreateCard creates a flashcard that is immediately due for review.
// Difficulty is fixed at creation; it is part of the card's scheduling
// identity and cannot be edited later.
func (s *FlashcardService) CreateCard(
	ctx context.Context,
	question, answer string,
	difficulty domain.Difficulty,
	noteID *uuid.UUID,
) (*domain.Flashcard, error) {
	card, err := domain.NewFlashcard(question, answer, difficulty, noteID)
	if err != nil {
		return nil, NewServiceError("create_card", "invalid flashcard", err)
	}

	if err := s.cards.Create(ctx, card); err != nil {
		return nil, NewServiceError("create_card", "failed to save flashcard", err)
	}

	s.logger.InfoContext(ctx, "flashcard created",
		slog.String("card_id", card.ID.String()),
		slog.String("difficulty", string(card.Difficulty)))
	return card, nil
}

// GetCard retrieves a single flashcard by ID.
func (s *FlashcardService) GetCard(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_card", "failed to load flashcard", err)
	}
	return card, nil
}

// ListCards returns every flashcard in creation order.
func (s *FlashcardService) ListCards(ctx context.Context) ([]*domain.Flashcard, error) {
	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_cards", "failed to load flashcards", err)
	}
	return cards, nil
}

// ListDueCards returns the cards currently due for review.
func (s *FlashcardService) ListDueCards(ctx context.Context) ([]*domain.Flashcard, error) {
	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_due_cards", "failed to load flashcards", err)
	}
	return study.SelectDue(cards, s.clock.Now()), nil
}

// UpdateCard edits a card's question and/or answer. Scheduling state and
// difficulty are not editable through this path.
func (s *FlashcardService) UpdateCard(
	ctx context.Context,
	id uuid.UUID,
	question, answer *string,
) (*domain.Flashcard, error) {
	update := store.FlashcardUpdate{Question: question, Answer: answer}
	if err := s.cards.Update(ctx, id, update); err != nil {
		return nil, NewServiceError("update_card", "failed to update flashcard", err)
	}

	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("update_card", "failed to reload flashcard", err)
	}
	return card, nil
}

// DeleteCard removes a flashcard. Past session log entries referencing it
// are left untouched.
func (s *FlashcardService) DeleteCard(ctx context.Context, id uuid.UUID) error {
	if err := s.cards.Delete(ctx, id); err != nil {
		return NewServiceError("delete_card", "failed to delete flashcard", err)
	}
	s.logger.InfoContext(ctx, "flashcard deleted", slog.String("card_id", id.String()))
	return nil
}

// DueCounts summarizes the review backlog for dashboards.
type DueCounts struct {
	Total int `json:"total"`
	Due   int `json:"due"`
}

// CountDue reports how many cards exist and how many of them are due at the
// given moment. A zero time means now.
func (s *FlashcardService) CountDue(ctx context.Context, at time.Time) (DueCounts, error) {
	if at.IsZero() {
		at = s.clock.Now()
	}
	cards, err := s.cards.List(ctx)
	if err != nil {
		return DueCounts{}, NewServiceError("count_due", "failed to load flashcards", err)
	}
	return DueCounts{
		Total: len(cards),
		Due:   len(study.SelectDue(cards, at)),
	}, nil
}
