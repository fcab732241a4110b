package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Difficulty classifies how hard a flashcard is to recall. It is set when
// the card is created and never changes afterwards; the spaced repetition
// scheduler uses it to pick the interval growth rate.
type Difficulty string

// Possible difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyFilter selects which cards a quiz draws from. It extends
// Difficulty with a "mixed" value meaning no filtering.
type DifficultyFilter string

// Possible difficulty filter values
const (
	FilterEasy   DifficultyFilter = "easy"
	FilterMedium DifficultyFilter = "medium"
	FilterHard   DifficultyFilter = "hard"
	FilterMixed  DifficultyFilter = "mixed"
)

// Flashcard-specific validation errors
var (
	// ErrCardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrCardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrCardQuestionEmpty is returned when a flashcard's question is empty.
	ErrCardQuestionEmpty = errors.New("flashcard question cannot be empty")

	// ErrCardAnswerEmpty is returned when a flashcard's answer is empty.
	ErrCardAnswerEmpty = errors.New("flashcard answer cannot be empty")

	// ErrCardCountsInvalid is returned when a flashcard's counters are
	// negative or the correct count exceeds the review count.
	ErrCardCountsInvalid = errors.New("flashcard counters are inconsistent")
)

// Flashcard represents one question/answer pair eligible for spaced review.
//
// NoteID is a weak back-reference to the note the card was derived from:
// deleting that note removes the card through the service layer, but a card
// whose note has already vanished must still load and review normally.
type Flashcard struct {
	ID           uuid.UUID  `json:"id"`
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	Difficulty   Difficulty `json:"difficulty"`
	NoteID       *uuid.UUID `json:"note_id,omitempty"`
	NextReview   time.Time  `json:"next_review"`
	ReviewCount  int        `json:"review_count"`
	CorrectCount int        `json:"correct_count"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewFlashcard creates a new Flashcard with zeroed review counters and an
// immediate next-review time, so the card is due as soon as it exists.
// noteID may be nil for cards created without a source note.
// Returns an error if validation fails.
func NewFlashcard(
	question, answer string,
	difficulty Difficulty,
	noteID *uuid.UUID,
) (*Flashcard, error) {
	now := time.Now().UTC()
	card := &Flashcard{
		ID:           uuid.New(),
		Question:     question,
		Answer:       answer,
		Difficulty:   difficulty,
		NoteID:       noteID,
		NextReview:   now,
		ReviewCount:  0,
		CorrectCount: 0,
		CreatedAt:    now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.Question == "" {
		return ErrCardQuestionEmpty
	}

	if c.Answer == "" {
		return ErrCardAnswerEmpty
	}

	if !c.Difficulty.Valid() {
		return ErrInvalidDifficulty
	}

	if c.ReviewCount < 0 || c.CorrectCount < 0 || c.CorrectCount > c.ReviewCount {
		return ErrCardCountsInvalid
	}

	return nil
}

// IsDue reports whether the card is due for review at the given time.
func (c *Flashcard) IsDue(now time.Time) bool {
	return !c.NextReview.After(now)
}

// Valid reports whether the difficulty is one of the defined values.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Valid reports whether the filter is one of the defined values.
func (f DifficultyFilter) Valid() bool {
	switch f {
	case FilterEasy, FilterMedium, FilterHard, FilterMixed:
		return true
	default:
		return false
	}
}

// Matches reports whether a card with the given difficulty passes the filter.
// The mixed filter matches everything.
func (f DifficultyFilter) Matches(d Difficulty) bool {
	return f == FilterMixed || Difficulty(f) == d
}
