package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// Verify interface compliance at compile time
var _ store.FlashcardStore = (*FlashcardStore)(nil)

// FlashcardStore is an in-memory implementation of store.FlashcardStore.
// List order is creation order.
type FlashcardStore struct {
	mu    sync.RWMutex
	cards map[uuid.UUID]*domain.Flashcard
	order []uuid.UUID
}

// NewFlashcardStore creates an empty in-memory flashcard store.
func NewFlashcardStore() *FlashcardStore {
	return &FlashcardStore{
		cards: make(map[uuid.UUID]*domain.Flashcard),
	}
}

// Create implements store.FlashcardStore.Create.
func (s *FlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	if card == nil {
		return store.NewStoreError("flashcard", "create", "card cannot be nil", store.ErrInvalidEntity)
	}
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cards[card.ID]; exists {
		return fmt.Errorf("%w: flashcard %s", store.ErrDuplicate, card.ID)
	}

	c := *card
	s.cards[card.ID] = &c
	s.order = append(s.order, card.ID)
	return nil
}

// GetByID implements store.FlashcardStore.GetByID.
func (s *FlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	card, ok := s.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}

	c := *card
	return &c, nil
}

// List implements store.FlashcardStore.List.
func (s *FlashcardStore) List(ctx context.Context) ([]*domain.Flashcard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]*domain.Flashcard, 0, len(s.order))
	for _, id := range s.order {
		c := *s.cards[id]
		cards = append(cards, &c)
	}
	return cards, nil
}

// Update implements store.FlashcardStore.Update. Only the non-nil fields of
// update are applied.
func (s *FlashcardStore) Update(
	ctx context.Context,
	id uuid.UUID,
	update store.FlashcardUpdate,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[id]
	if !ok {
		return store.ErrCardNotFound
	}

	updated := *card
	if update.Question != nil {
		updated.Question = *update.Question
	}
	if update.Answer != nil {
		updated.Answer = *update.Answer
	}
	if update.NextReview != nil {
		updated.NextReview = *update.NextReview
	}
	if update.ReviewCount != nil {
		updated.ReviewCount = *update.ReviewCount
	}
	if update.CorrectCount != nil {
		updated.CorrectCount = *update.CorrectCount
	}

	if err := updated.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrUpdateFailed, err)
	}

	s.cards[id] = &updated
	return nil
}

// Delete implements store.FlashcardStore.Delete.
func (s *FlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[id]; !ok {
		return store.ErrCardNotFound
	}

	delete(s.cards, id)
	s.removeFromOrder(id)
	return nil
}

// DeleteByNoteID implements store.FlashcardStore.DeleteByNoteID.
func (s *FlashcardStore) DeleteByNoteID(ctx context.Context, noteID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, card := range s.cards {
		if card.NoteID != nil && *card.NoteID == noteID {
			delete(s.cards, id)
			s.removeFromOrder(id)
			removed++
		}
	}
	return removed, nil
}

// removeFromOrder drops id from the creation-order slice.
// Callers must hold the write lock.
func (s *FlashcardStore) removeFromOrder(id uuid.UUID) {
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
