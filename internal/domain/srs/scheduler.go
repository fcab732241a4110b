package srs

import (
	"time"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
)

// Review holds the scheduler's output for a single graded attempt: the
// card's updated counters and its next due time. The write-back to the
// flashcard store is a separate, explicit step owned by the study engine.
type Review struct {
	ReviewCount  int
	CorrectCount int
	NextReview   time.Time
}

// calculateIntervalDays determines how many days from now the card should
// next be reviewed.
//
// An incorrect answer always resets the interval to params.WrongIntervalDays
// regardless of difficulty, so the card comes back quickly. A correct answer
// grows the interval linearly with the updated correct count, scaled by the
// difficulty multiplier and floored at params.MinIntervalDays. The medium
// multiplier produces fractional days on odd correct counts; those fractions
// are kept rather than rounded.
func calculateIntervalDays(
	difficulty domain.Difficulty,
	newCorrectCount int,
	wasCorrect bool,
	params *Params,
) float64 {
	if !wasCorrect {
		return params.WrongIntervalDays
	}

	interval := float64(newCorrectCount) * params.DifficultyMultiplier[difficulty]
	if interval < params.MinIntervalDays {
		interval = params.MinIntervalDays
	}
	return interval
}

// calculateNextReview converts an interval in days into the card's next due
// timestamp. Fractional days survive the conversion to a duration.
func calculateNextReview(intervalDays float64, now time.Time) time.Time {
	return now.Add(time.Duration(intervalDays * float64(24*time.Hour)))
}

// calculateReview computes the full scheduling result for one graded
// attempt. It is a pure function of the card, the outcome and the clock
// reading; it never mutates the card it is given.
func calculateReview(
	card *domain.Flashcard,
	wasCorrect bool,
	now time.Time,
	params *Params,
) Review {
	review := Review{
		ReviewCount:  card.ReviewCount + 1,
		CorrectCount: card.CorrectCount,
	}
	if wasCorrect {
		review.CorrectCount++
	}

	intervalDays := calculateIntervalDays(card.Difficulty, review.CorrectCount, wasCorrect, params)
	review.NextReview = calculateNextReview(intervalDays, now)

	return review
}
