package service

import (
	"context"
	"log/slog"
	"math"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// statsWindow bounds how much history the aggregate stats consider.
const statsWindow = 1000

// SessionService exposes the study history recorded by the study and quiz
// engines. The log itself is append-only; this service only reads it.
type SessionService struct {
	sessions store.SessionStore
	logger   *slog.Logger
}

// NewSessionService creates a SessionService with the given dependencies.
func NewSessionService(sessions store.SessionStore, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "session_service")),
	}
}

// RecentSessions returns up to limit sessions, most recent first.
func (s *SessionService) RecentSessions(ctx context.Context, limit int) ([]*domain.StudySession, error) {
	sessions, err := s.sessions.ListRecent(ctx, limit)
	if err != nil {
		return nil, NewServiceError("recent_sessions", "failed to load session history", err)
	}
	return sessions, nil
}

// Stats aggregates the session log for dashboards.
type Stats struct {
	TotalSessions int `json:"total_sessions"`
	AverageScore  int `json:"average_score"`
	CardsStudied  int `json:"cards_studied"`
}

// Stats computes aggregates over the most recent statsWindow sessions.
func (s *SessionService) Stats(ctx context.Context) (Stats, error) {
	sessions, err := s.sessions.ListRecent(ctx, statsWindow)
	if err != nil {
		return Stats{}, NewServiceError("session_stats", "failed to load session history", err)
	}

	stats := Stats{TotalSessions: len(sessions)}
	if len(sessions) == 0 {
		return stats, nil
	}

	scoreSum := 0
	for _, session := range sessions {
		scoreSum += session.Score
		stats.CardsStudied += len(session.FlashcardIDs)
	}
	stats.AverageScore = int(math.Round(float64(scoreSum) / float64(len(sessions))))
	return stats, nil
}
