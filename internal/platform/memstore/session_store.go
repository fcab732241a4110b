package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// Verify interface compliance at compile time
var _ store.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of store.SessionStore.
// The log is append-only; records are kept in append order.
type SessionStore struct {
	mu       sync.RWMutex
	sessions []*domain.StudySession
}

// NewSessionStore creates an empty in-memory session log.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Append implements store.SessionStore.Append.
func (s *SessionStore) Append(ctx context.Context, session *domain.StudySession) error {
	if session == nil {
		return store.NewStoreError("session", "append", "session cannot be nil", store.ErrInvalidEntity)
	}
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	copied.FlashcardIDs = append([]uuid.UUID(nil), session.FlashcardIDs...)
	s.sessions = append(s.sessions, &copied)
	return nil
}

// ListRecent implements store.SessionStore.ListRecent, returning up to limit
// sessions most recently appended first.
func (s *SessionStore) ListRecent(ctx context.Context, limit int) ([]*domain.StudySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		return []*domain.StudySession{}, nil
	}
	if limit > len(s.sessions) {
		limit = len(s.sessions)
	}

	recent := make([]*domain.StudySession, 0, limit)
	for i := len(s.sessions) - 1; i >= len(s.sessions)-limit; i-- {
		copied := *s.sessions[i]
		copied.FlashcardIDs = append([]uuid.UUID(nil), s.sessions[i].FlashcardIDs...)
		recent = append(recent, &copied)
	}
	return recent, nil
}
