package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// Ensure SessionStore implements store.SessionStore
var _ store.SessionStore = (*SessionStore)(nil)

// SessionStore implements the append-only session log on PostgreSQL.
type SessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSessionStore creates a PostgreSQL-backed session log.
func NewSessionStore(db store.DBTX, logger *slog.Logger) *SessionStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Append implements store.SessionStore.Append.
func (s *SessionStore) Append(ctx context.Context, session *domain.StudySession) error {
	if session == nil {
		return store.NewStoreError("session", "append", "session cannot be nil", store.ErrInvalidEntity)
	}
	if err := session.Validate(); err != nil {
		return store.NewStoreError("session", "append", "invalid session", store.ErrInvalidEntity)
	}

	ids, err := json.Marshal(session.FlashcardIDs)
	if err != nil {
		return fmt.Errorf("failed to encode flashcard IDs: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO study_sessions (id, flashcard_ids, score, duration_ms, completed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		session.ID, ids, session.Score, session.Duration.Milliseconds(), session.CompletedAt)
	return mapError(err, store.ErrSessionNotFound)
}

// ListRecent implements store.SessionStore.ListRecent, most recently
// completed first.
func (s *SessionStore) ListRecent(ctx context.Context, limit int) ([]*domain.StudySession, error) {
	if limit <= 0 {
		return []*domain.StudySession{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, flashcard_ids, score, duration_ms, completed_at
		FROM study_sessions
		ORDER BY completed_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, mapError(err, store.ErrSessionNotFound)
	}
	defer func() { _ = rows.Close() }()

	sessions := make([]*domain.StudySession, 0, limit)
	for rows.Next() {
		var session domain.StudySession
		var ids []byte
		var durationMs int64
		if err := rows.Scan(&session.ID, &ids, &session.Score, &durationMs,
			&session.CompletedAt); err != nil {
			return nil, mapError(err, store.ErrSessionNotFound)
		}
		if err := json.Unmarshal(ids, &session.FlashcardIDs); err != nil {
			return nil, fmt.Errorf("failed to decode flashcard IDs: %w", err)
		}
		session.Duration = time.Duration(durationMs) * time.Millisecond
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, store.ErrSessionNotFound)
	}
	return sessions, nil
}
