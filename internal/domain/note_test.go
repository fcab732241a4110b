package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewNote(t *testing.T) {
	t.Parallel() // Enable parallel execution
	folderID := uuid.New()

	note, err := NewNote("Goroutines", "Lightweight threads managed by the Go runtime",
		[]string{"go", "concurrency"}, &folderID)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if note.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if note.WordCount != 7 {
		t.Errorf("Expected word count 7, got %d", note.WordCount)
	}

	if note.CreatedAt.IsZero() || note.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Test empty title
	_, err = NewNote("", "content", nil, nil)
	if err != ErrNoteTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrNoteTitleEmpty, err)
	}

	// Whitespace-only titles are empty too
	_, err = NewNote("   ", "content", nil, nil)
	if err != ErrNoteTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrNoteTitleEmpty, err)
	}
}

func TestNoteUpdateContent(t *testing.T) {
	t.Parallel()
	note, err := NewNote("title", "one two three", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	createdAt := note.CreatedAt
	note.UpdateContent("one two three four five")

	if note.WordCount != 5 {
		t.Errorf("Expected word count 5 after update, got %d", note.WordCount)
	}

	if note.UpdatedAt.Before(createdAt) {
		t.Error("Expected UpdatedAt to move forward")
	}

	note.UpdateContent("")
	if note.WordCount != 0 {
		t.Errorf("Expected word count 0 for empty content, got %d", note.WordCount)
	}
}
