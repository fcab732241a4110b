package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/generation"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// NoteService implements note management and the AI assistance use cases.
// The generator may be nil when no LLM is configured; the AI operations then
// fail with ErrGenerationUnavailable while everything else keeps working.
type NoteService struct {
	notes     store.NoteStore
	cards     store.FlashcardStore
	generator generation.Generator
	logger    *slog.Logger
}

// NewNoteService creates a NoteService with the given dependencies.
func NewNoteService(
	notes store.NoteStore,
	cards store.FlashcardStore,
	generator generation.Generator,
	logger *slog.Logger,
) *NoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteService{
		notes:     notes,
		cards:     cards,
		generator: generator,
		logger:    logger.With(slog.String("component", "note_service")),
	}
}

// CreateNote creates a note.
func (s *NoteService) CreateNote(
	ctx context.Context,
	title, content string,
	tags []string,
	folderID *uuid.UUID,
) (*domain.Note, error) {
	note, err := domain.NewNote(title, content, tags, folderID)
	if err != nil {
		return nil, NewServiceError("create_note", "invalid note", err)
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, NewServiceError("create_note", "failed to save note", err)
	}

	s.logger.InfoContext(ctx, "note created",
		slog.String("note_id", note.ID.String()),
		slog.Int("word_count", note.WordCount))
	return note, nil
}

// GetNote retrieves a single note by ID.
func (s *NoteService) GetNote(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_note", "failed to load note", err)
	}
	return note, nil
}

// ListNotes returns every note in creation order.
func (s *NoteService) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_notes", "failed to load notes", err)
	}
	return notes, nil
}

// UpdateNote applies a partial update and returns the updated note.
func (s *NoteService) UpdateNote(
	ctx context.Context,
	id uuid.UUID,
	update store.NoteUpdate,
) (*domain.Note, error) {
	if err := s.notes.Update(ctx, id, update); err != nil {
		return nil, NewServiceError("update_note", "failed to update note", err)
	}

	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("update_note", "failed to reload note", err)
	}
	return note, nil
}

// DeleteNote removes a note along with every flashcard linked to it.
func (s *NoteService) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if _, err := s.notes.GetByID(ctx, id); err != nil {
		return NewServiceError("delete_note", "failed to load note", err)
	}

	removed, err := s.cards.DeleteByNoteID(ctx, id)
	if err != nil {
		return NewServiceError("delete_note", "failed to delete linked flashcards", err)
	}
	if err := s.notes.Delete(ctx, id); err != nil {
		return NewServiceError("delete_note", "failed to delete note", err)
	}

	s.logger.InfoContext(ctx, "note deleted",
		slog.String("note_id", id.String()),
		slog.Int("cards_removed", removed))
	return nil
}

// SummarizeNote asks the generator for a summary, stores it on the note, and
// returns the updated note.
func (s *NoteService) SummarizeNote(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	if s.generator == nil {
		return nil, NewServiceError("summarize_note", "no generator configured", ErrGenerationUnavailable)
	}

	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("summarize_note", "failed to load note", err)
	}

	summary, err := s.generator.Summarize(ctx, note)
	if err != nil {
		return nil, NewServiceError("summarize_note", "failed to generate summary", err)
	}

	return s.UpdateNote(ctx, id, store.NoteUpdate{Summary: &summary})
}

// GenerateCards asks the generator for flashcard suggestions covering the
// note and persists them. The new cards are immediately due.
func (s *NoteService) GenerateCards(ctx context.Context, id uuid.UUID) ([]*domain.Flashcard, error) {
	if s.generator == nil {
		return nil, NewServiceError("generate_cards", "no generator configured", ErrGenerationUnavailable)
	}

	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("generate_cards", "failed to load note", err)
	}

	suggestions, err := s.generator.SuggestCards(ctx, note)
	if err != nil {
		return nil, NewServiceError("generate_cards", "failed to generate cards", err)
	}

	for _, card := range suggestions {
		if err := s.cards.Create(ctx, card); err != nil {
			return nil, NewServiceError("generate_cards", "failed to save generated card", err)
		}
	}

	s.logger.InfoContext(ctx, "flashcards generated from note",
		slog.String("note_id", id.String()),
		slog.Int("count", len(suggestions)))
	return suggestions, nil
}
