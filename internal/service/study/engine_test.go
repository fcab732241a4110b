package study_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/domain/srs"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/clock"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/memstore"
	"github.com/SaagarParikh1/NeuroNotes/internal/service/study"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

type engineFixture struct {
	cards    *memstore.FlashcardStore
	sessions *memstore.SessionStore
	clock    *clock.SteppedClock
	engine   *study.Engine
}

func newEngineFixture(t *testing.T, questions ...string) *engineFixture {
	t.Helper()
	ctx := context.Background()

	cards := memstore.NewFlashcardStore()
	sessions := memstore.NewSessionStore()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clk := clock.Stepped(start)

	for _, q := range questions {
		card, err := domain.NewFlashcard(q, "answer to "+q, domain.DifficultyMedium, nil)
		require.NoError(t, err)
		card.NextReview = start
		require.NoError(t, cards.Create(ctx, card))
	}

	engine, err := study.NewEngine(
		cards, sessions, srs.NewDefaultService(), clk, nil, study.Config{})
	require.NoError(t, err)

	return &engineFixture{cards: cards, sessions: sessions, clock: clk, engine: engine}
}

func (f *engineFixture) grade(t *testing.T, wasCorrect bool) {
	t.Helper()
	require.NoError(t, f.engine.RevealAnswer())
	require.NoError(t, f.engine.Grade(context.Background(), wasCorrect))
}

func TestEngineFullSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t, "q1", "q2", "q3")

	require.NoError(t, f.engine.Start(ctx))
	snap := f.engine.Snapshot()
	require.Equal(t, study.StateAwaitingAnswer, snap.State)
	assert.Equal(t, 3, snap.TotalCards)
	assert.Equal(t, "q1", snap.Question)
	assert.Empty(t, snap.Answer, "answer hidden until revealed")

	require.NoError(t, f.engine.RevealAnswer())
	snap = f.engine.Snapshot()
	assert.Equal(t, study.StateAwaitingGrade, snap.State)
	assert.Equal(t, "answer to q1", snap.Answer)

	f.clock.Advance(30 * time.Second)
	require.NoError(t, f.engine.Grade(ctx, true))
	f.grade(t, true)
	f.grade(t, false)

	snap = f.engine.Snapshot()
	require.Equal(t, study.StateComplete, snap.State)
	require.NotNil(t, snap.Session)
	assert.Equal(t, 67, snap.Session.Score, "2 of 3 rounds to 67")
	assert.Equal(t, 30*time.Second, snap.Session.Duration)
	assert.Len(t, snap.Session.FlashcardIDs, 3)

	recent, err := f.sessions.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, snap.Session.ID, recent[0].ID)
}

func TestEngineWritesScheduleBackPerGrade(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t, "q1", "q2")

	require.NoError(t, f.engine.Start(ctx))
	cardID := f.engine.Snapshot().CardID

	f.grade(t, true)

	// The first card's schedule is persisted before the session ends.
	card, err := f.cards.GetByID(ctx, cardID)
	require.NoError(t, err)
	assert.Equal(t, 1, card.ReviewCount)
	assert.Equal(t, 1, card.CorrectCount)
	assert.True(t, card.NextReview.After(f.clock.Now()),
		"correct answer pushes the next review into the future")
}

func TestEngineStateOrdering(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t, "q1")

	// Nothing works before Start.
	assert.ErrorIs(t, f.engine.RevealAnswer(), study.ErrNotStarted)
	assert.ErrorIs(t, f.engine.Grade(ctx, true), study.ErrNotStarted)

	require.NoError(t, f.engine.Start(ctx))
	assert.ErrorIs(t, f.engine.Start(ctx), study.ErrAlreadyStarted)

	// Grading requires a revealed answer.
	assert.ErrorIs(t, f.engine.Grade(ctx, true), study.ErrNotAwaitingGrade)

	require.NoError(t, f.engine.RevealAnswer())
	assert.ErrorIs(t, f.engine.RevealAnswer(), study.ErrNotAwaitingAnswer)

	require.NoError(t, f.engine.Grade(ctx, true))
	assert.ErrorIs(t, f.engine.RevealAnswer(), study.ErrSessionFinished)
	assert.ErrorIs(t, f.engine.Grade(ctx, true), study.ErrSessionFinished)
}

func TestEngineNoCardsAvailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)

	require.NoError(t, f.engine.Start(ctx))
	snap := f.engine.Snapshot()
	assert.Equal(t, study.StateNoCards, snap.State)
	assert.Zero(t, snap.TotalCards)

	// An empty session never reaches the log.
	recent, err := f.sessions.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	assert.ErrorIs(t, f.engine.RevealAnswer(), study.ErrSessionFinished)
}

func TestEngineAbandonKeepsAppliedGrades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t, "q1", "q2", "q3", "q4", "q5")

	require.NoError(t, f.engine.Start(ctx))
	firstID := f.engine.Snapshot().CardID
	f.grade(t, true)
	f.grade(t, false)

	f.engine.Abandon()
	snap := f.engine.Snapshot()
	assert.Equal(t, study.StateAbandoned, snap.State)
	assert.ErrorIs(t, f.engine.RevealAnswer(), study.ErrSessionFinished)

	// No record was written for the abandoned session.
	recent, err := f.sessions.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	// But grades applied before abandoning stay applied.
	card, err := f.cards.GetByID(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, 1, card.ReviewCount)
}

func TestEngineSetIsSnapshotAtStart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t, "q1")

	require.NoError(t, f.engine.Start(ctx))

	// A card created after Start does not join the running session.
	late, err := domain.NewFlashcard("late", "answer", domain.DifficultyEasy, nil)
	require.NoError(t, err)
	late.NextReview = f.clock.Now()
	require.NoError(t, f.cards.Create(ctx, late))

	f.grade(t, true)
	snap := f.engine.Snapshot()
	assert.Equal(t, study.StateComplete, snap.State)
	assert.Equal(t, 1, snap.TotalCards)
}

func TestEngineCatchUpWhenNothingDue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t, "q1", "q2")

	// Push every card into the future so the due set is empty.
	future := f.clock.Now().Add(72 * time.Hour)
	cards, err := f.cards.List(ctx)
	require.NoError(t, err)
	for _, card := range cards {
		nr := future
		require.NoError(t, f.cards.Update(ctx, card.ID,
			store.FlashcardUpdate{NextReview: &nr}))
	}

	require.NoError(t, f.engine.Start(ctx))
	snap := f.engine.Snapshot()
	assert.Equal(t, study.StateAwaitingAnswer, snap.State)
	assert.Equal(t, 2, snap.TotalCards, "catch-up batch covers existing cards")
}

// flakySessionStore fails the first n Append calls, then behaves normally.
type flakySessionStore struct {
	*memstore.SessionStore
	failures int
}

func (s *flakySessionStore) Append(ctx context.Context, session *domain.StudySession) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("session log unavailable")
	}
	return s.SessionStore.Append(ctx, session)
}

func TestEngineRetriesOnlyRecordAfterAppendFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cards := memstore.NewFlashcardStore()
	sessions := &flakySessionStore{SessionStore: memstore.NewSessionStore(), failures: 1}
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clk := clock.Stepped(start)

	card, err := domain.NewFlashcard("q1", "a1", domain.DifficultyMedium, nil)
	require.NoError(t, err)
	card.NextReview = start
	require.NoError(t, cards.Create(ctx, card))

	engine, err := study.NewEngine(
		cards, sessions, srs.NewDefaultService(), clk, nil, study.Config{})
	require.NoError(t, err)

	require.NoError(t, engine.Start(ctx))
	require.NoError(t, engine.RevealAnswer())
	require.Error(t, engine.Grade(ctx, true), "append failure surfaces to the caller")

	// The grade itself was committed before the append was attempted.
	got, err := cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReviewCount)
	assert.Equal(t, 1, got.CorrectCount)

	// A retried grade re-attempts only the record. The card schedule is not
	// touched again and the counters stay sane.
	require.NoError(t, engine.Grade(ctx, true))
	snap := engine.Snapshot()
	require.Equal(t, study.StateComplete, snap.State)
	require.NotNil(t, snap.Session)
	assert.Equal(t, 100, snap.Session.Score)
	assert.Equal(t, 1, snap.Correct)
	assert.Zero(t, snap.Incorrect)

	got, err = cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReviewCount, "retry must not reschedule the card")
	assert.Equal(t, 1, got.CorrectCount)

	recent, err := sessions.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestManagerHandles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cards := memstore.NewFlashcardStore()
	sessions := memstore.NewSessionStore()
	card, err := domain.NewFlashcard("q", "a", domain.DifficultyHard, nil)
	require.NoError(t, err)
	require.NoError(t, cards.Create(ctx, card))

	manager := study.NewManager(
		cards, sessions, srs.NewDefaultService(), clock.New(), nil, study.Config{})

	handle, engine, err := manager.Start(ctx)
	require.NoError(t, err)
	require.NotNil(t, engine)

	got, err := manager.Get(handle)
	require.NoError(t, err)
	assert.Same(t, engine, got)

	require.NoError(t, manager.Release(handle))
	assert.Equal(t, study.StateAbandoned, engine.Snapshot().State)

	_, err = manager.Get(handle)
	assert.ErrorIs(t, err, study.ErrEngineNotFound)
	assert.ErrorIs(t, manager.Release(handle), study.ErrEngineNotFound)
}
