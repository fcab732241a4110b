// Package study implements the spaced-repetition study flow: selecting the
// cards that are due and driving a sequential review session over them.
package study

import (
	"time"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
)

// DefaultCatchUpLimit is how many cards a session falls back to when nothing
// is due, so a caught-up user can still keep practicing.
const DefaultCatchUpLimit = 10

// SelectDue returns every card whose next review time is at or before now,
// preserving the input order. It is a pure function: empty input yields an
// empty result, never an error.
func SelectDue(cards []*domain.Flashcard, now time.Time) []*domain.Flashcard {
	due := make([]*domain.Flashcard, 0, len(cards))
	for _, card := range cards {
		if card.IsDue(now) {
			due = append(due, card)
		}
	}
	return due
}

// ResolveStudySet picks the cards a study session will cover: the due set
// when it is non-empty, otherwise the first catchUpLimit cards of the
// repository as a catch-up batch. An empty repository resolves to an empty
// set, which the engine reports as the nothing-to-study terminal state.
func ResolveStudySet(
	cards []*domain.Flashcard,
	now time.Time,
	catchUpLimit int,
) []*domain.Flashcard {
	if due := SelectDue(cards, now); len(due) > 0 {
		return due
	}

	if catchUpLimit <= 0 {
		catchUpLimit = DefaultCatchUpLimit
	}
	if catchUpLimit > len(cards) {
		catchUpLimit = len(cards)
	}
	return cards[:catchUpLimit]
}
