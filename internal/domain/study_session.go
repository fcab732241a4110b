package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for StudySession
var (
	ErrSessionIDEmpty       = errors.New("study session ID cannot be empty")
	ErrSessionNoCards       = errors.New("study session must include at least one card")
	ErrSessionDuplicateCard = errors.New("study session cannot include the same card twice")
	ErrSessionScoreRange    = errors.New("study session score must be between 0 and 100")
	ErrSessionCorrectRange  = errors.New("correct count cannot exceed number of cards")
)

// StudySession records one completed pass through either the study engine or
// the quiz engine. Sessions are immutable once created and the session log
// is append-only.
type StudySession struct {
	ID           uuid.UUID     `json:"id"`
	FlashcardIDs []uuid.UUID   `json:"flashcard_ids"`
	Score        int           `json:"score"`
	Duration     time.Duration `json:"duration"`
	CompletedAt  time.Time     `json:"completed_at"`
}

// NewStudySession creates a session record for the given cards and outcome.
// The score is the correct fraction as a rounded integer percentage.
// Callers must not attempt to record an empty session; a zero-card pass is a
// terminal engine state, not a result.
func NewStudySession(
	flashcardIDs []uuid.UUID,
	correct int,
	duration time.Duration,
	completedAt time.Time,
) (*StudySession, error) {
	total := len(flashcardIDs)
	if total == 0 {
		return nil, ErrSessionNoCards
	}
	if correct < 0 || correct > total {
		return nil, ErrSessionCorrectRange
	}

	// Copy so later mutation of the caller's slice cannot alter the
	// recorded session.
	ids := make([]uuid.UUID, total)
	copy(ids, flashcardIDs)

	session := &StudySession{
		ID:           uuid.New(),
		FlashcardIDs: ids,
		Score:        ScorePercent(correct, total),
		Duration:     duration,
		CompletedAt:  completedAt,
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the StudySession has valid data.
// Returns an error if any field fails validation.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if len(s.FlashcardIDs) == 0 {
		return ErrSessionNoCards
	}

	seen := make(map[uuid.UUID]struct{}, len(s.FlashcardIDs))
	for _, id := range s.FlashcardIDs {
		if _, ok := seen[id]; ok {
			return ErrSessionDuplicateCard
		}
		seen[id] = struct{}{}
	}

	if s.Score < 0 || s.Score > 100 {
		return ErrSessionScoreRange
	}

	return nil
}

// ScorePercent converts a correct/total pair into a rounded integer
// percentage. total must be positive.
func ScorePercent(correct, total int) int {
	return int(math.Round(100 * float64(correct) / float64(total)))
}
