// Package generation defines the boundary between the application core and
// external AI/LLM services used to summarize notes and suggest flashcards.
package generation

import (
	"context"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
)

// Generator produces AI-derived content from a note. Implementations live
// under internal/platform and talk to an external model service.
type Generator interface {
	// Summarize returns a short prose summary of the note's content.
	Summarize(ctx context.Context, note *domain.Note) (string, error)

	// SuggestCards proposes flashcards covering the note's key facts. The
	// returned cards are linked to the note but not yet persisted; the
	// caller decides which to keep.
	SuggestCards(ctx context.Context, note *domain.Note) ([]*domain.Flashcard, error)
}
