package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/memstore"
	"github.com/SaagarParikh1/NeuroNotes/internal/service"
)

func appendSession(t *testing.T, sessions *memstore.SessionStore, cards, correct int, at time.Time) *domain.StudySession {
	t.Helper()
	ids := make([]uuid.UUID, cards)
	for i := range ids {
		ids[i] = uuid.New()
	}
	session, err := domain.NewStudySession(ids, correct, time.Minute, at)
	require.NoError(t, err)
	require.NoError(t, sessions.Append(context.Background(), session))
	return session
}

func TestSessionServiceRecentSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sessions := memstore.NewSessionStore()
	svc := service.NewSessionService(sessions, nil)

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	appendSession(t, sessions, 4, 2, base)
	latest := appendSession(t, sessions, 4, 4, base.Add(time.Hour))

	recent, err := svc.RecentSessions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, latest.ID, recent[0].ID)
}

func TestSessionServiceStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sessions := memstore.NewSessionStore()
	svc := service.NewSessionService(sessions, nil)

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	// Scores 100, 50 and 50.
	appendSession(t, sessions, 4, 4, base)
	appendSession(t, sessions, 4, 2, base.Add(time.Hour))
	appendSession(t, sessions, 2, 1, base.Add(2*time.Hour))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalSessions)
	assert.Equal(t, 67, stats.AverageScore, "mean of 100, 50, 50 rounds to 67")
	assert.Equal(t, 10, stats.CardsStudied)
}

func TestSessionServiceStatsEmptyLog(t *testing.T) {
	t.Parallel()
	svc := service.NewSessionService(memstore.NewSessionStore(), nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, service.Stats{}, stats)
}
