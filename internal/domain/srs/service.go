package srs

import (
	"errors"
	"time"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
)

// Common errors
var (
	ErrNilCard = errors.New("flashcard cannot be nil")
)

// Service defines the interface for spaced repetition scheduling operations.
// The study engine depends on this interface rather than the calculation
// itself so tests can substitute a deterministic scheduler.
type Service interface {
	// Schedule computes a card's updated counters and next due time from a
	// pass/fail grade. It is deterministic given the card, the grade and now.
	Schedule(card *domain.Flashcard, wasCorrect bool, now time.Time) (Review, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// Schedule implements the Service interface.
func (s *defaultService) Schedule(
	card *domain.Flashcard,
	wasCorrect bool,
	now time.Time,
) (Review, error) {
	if card == nil {
		return Review{}, ErrNilCard
	}
	if !card.Difficulty.Valid() {
		return Review{}, domain.ErrInvalidDifficulty
	}

	return calculateReview(card, wasCorrect, now, s.params), nil
}
