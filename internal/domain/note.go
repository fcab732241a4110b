package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Note
var (
	ErrNoteIDEmpty    = errors.New("note ID cannot be empty")
	ErrNoteTitleEmpty = errors.New("note title cannot be empty")
)

// Note represents a free-form text entry. Flashcards may be derived from a
// note and keep a weak reference back to it; the note itself carries no
// scheduling state.
type Note struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Summary   string     `json:"summary,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	FolderID  *uuid.UUID `json:"folder_id,omitempty"`
	WordCount int        `json:"word_count"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewNote creates a new Note with the given title and content.
// The word count is derived from the content.
// Returns an error if validation fails.
func NewNote(title, content string, tags []string, folderID *uuid.UUID) (*Note, error) {
	now := time.Now().UTC()
	note := &Note{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Tags:      tags,
		FolderID:  folderID,
		WordCount: countWords(content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	return note, nil
}

// Validate checks if the Note has valid data.
// Returns an error if any field fails validation.
func (n *Note) Validate() error {
	if n.ID == uuid.Nil {
		return ErrNoteIDEmpty
	}

	if strings.TrimSpace(n.Title) == "" {
		return ErrNoteTitleEmpty
	}

	return nil
}

// UpdateContent replaces the note's content, recomputing the word count and
// bumping the updated timestamp.
func (n *Note) UpdateContent(content string) {
	n.Content = content
	n.WordCount = countWords(content)
	n.UpdatedAt = time.Now().UTC()
}

// countWords returns the number of whitespace-separated words in s.
func countWords(s string) int {
	return len(strings.Fields(s))
}
