package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// Verify interface compliance at compile time
var _ store.NoteStore = (*NoteStore)(nil)

// NoteStore is an in-memory implementation of store.NoteStore.
type NoteStore struct {
	mu    sync.RWMutex
	notes map[uuid.UUID]*domain.Note
	order []uuid.UUID
}

// NewNoteStore creates an empty in-memory note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{
		notes: make(map[uuid.UUID]*domain.Note),
	}
}

// Create implements store.NoteStore.Create.
func (s *NoteStore) Create(ctx context.Context, note *domain.Note) error {
	if note == nil {
		return store.NewStoreError("note", "create", "note cannot be nil", store.ErrInvalidEntity)
	}
	if err := note.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notes[note.ID]; exists {
		return fmt.Errorf("%w: note %s", store.ErrDuplicate, note.ID)
	}

	n := copyNote(note)
	s.notes[note.ID] = n
	s.order = append(s.order, note.ID)
	return nil
}

// GetByID implements store.NoteStore.GetByID.
func (s *NoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return nil, store.ErrNoteNotFound
	}
	return copyNote(note), nil
}

// List implements store.NoteStore.List.
func (s *NoteStore) List(ctx context.Context) ([]*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]*domain.Note, 0, len(s.order))
	for _, id := range s.order {
		notes = append(notes, copyNote(s.notes[id]))
	}
	return notes, nil
}

// Update implements store.NoteStore.Update. Only the non-nil fields of
// update are applied. Content updates recompute the word count through the
// domain entity.
func (s *NoteStore) Update(ctx context.Context, id uuid.UUID, update store.NoteUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok {
		return store.ErrNoteNotFound
	}

	updated := copyNote(note)
	if update.Title != nil {
		updated.Title = *update.Title
	}
	if update.Content != nil {
		updated.UpdateContent(*update.Content)
	}
	if update.Summary != nil {
		updated.Summary = *update.Summary
	}
	if update.Tags != nil {
		updated.Tags = append([]string(nil), (*update.Tags)...)
	}
	if update.FolderID != nil {
		folderID := *update.FolderID
		updated.FolderID = &folderID
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrUpdateFailed, err)
	}

	s.notes[id] = updated
	return nil
}

// Delete implements store.NoteStore.Delete.
func (s *NoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return store.ErrNoteNotFound
	}

	delete(s.notes, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// copyNote deep-copies a note so callers cannot alias stored state.
func copyNote(note *domain.Note) *domain.Note {
	n := *note
	n.Tags = append([]string(nil), note.Tags...)
	if note.FolderID != nil {
		folderID := *note.FolderID
		n.FolderID = &folderID
	}
	return &n
}
