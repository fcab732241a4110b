package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/domain/srs"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/clock"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// State identifies where a study session engine is in its lifecycle.
type State string

const (
	// StateIdle is the state before Start has been called.
	StateIdle State = "IDLE"

	// StateAwaitingAnswer means the current card's question is shown and the
	// engine is waiting for the answer to be revealed.
	StateAwaitingAnswer State = "AWAITING_ANSWER"

	// StateAwaitingGrade means the answer is revealed and the engine is
	// waiting for a correct/incorrect self-grade.
	StateAwaitingGrade State = "AWAITING_GRADE"

	// StateComplete is the terminal state after the last card was graded.
	// A completed session has been recorded in the session log.
	StateComplete State = "COMPLETE"

	// StateNoCards is the terminal state entered when the study set resolves
	// to nothing. No session record is ever written from this state.
	StateNoCards State = "NO_CARDS_AVAILABLE"

	// StateAbandoned is the terminal state after Abandon. No session record
	// is written, but grades applied before abandoning stay applied.
	StateAbandoned State = "ABANDONED"
)

// Engine lifecycle errors. Handlers map these onto 409 responses.
var (
	ErrAlreadyStarted    = errors.New("study session already started")
	ErrNotStarted        = errors.New("study session not started")
	ErrNotAwaitingAnswer = errors.New("study session is not awaiting an answer reveal")
	ErrNotAwaitingGrade  = errors.New("study session is not awaiting a grade")
	ErrSessionFinished   = errors.New("study session already finished")
)

// Config tunes engine behavior.
type Config struct {
	// CatchUpLimit caps the fallback batch used when no cards are due.
	// Zero means DefaultCatchUpLimit.
	CatchUpLimit int
}

// Snapshot is a point-in-time view of an engine, safe to hand out while the
// engine keeps running.
type Snapshot struct {
	State        State
	CurrentIndex int
	TotalCards   int
	Correct      int
	Incorrect    int

	// Current card, populated while the session is in progress. Answer is
	// only set once it has been revealed.
	CardID     uuid.UUID
	Question   string
	Answer     string
	Difficulty domain.Difficulty

	// Session is the recorded log entry, set only in StateComplete.
	Session *domain.StudySession
}

// Engine drives one study session: a snapshot of cards reviewed in order,
// each graded correct or incorrect, with scheduling updates written back to
// the card store as they happen. All methods are safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	cards    store.FlashcardStore
	sessions store.SessionStore
	srs      srs.Service
	clock    clock.Clock
	logger   *slog.Logger
	cfg      Config

	state     State
	set       []*domain.Flashcard
	index     int
	correct   int
	incorrect int
	startedAt time.Time
	session   *domain.StudySession
}

// NewEngine creates an idle engine. Call Start to resolve the study set and
// begin the session.
func NewEngine(
	cards store.FlashcardStore,
	sessions store.SessionStore,
	srsService srs.Service,
	clk clock.Clock,
	logger *slog.Logger,
	cfg Config,
) (*Engine, error) {
	if cards == nil {
		return nil, fmt.Errorf("flashcard store cannot be nil")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store cannot be nil")
	}
	if srsService == nil {
		return nil, fmt.Errorf("srs service cannot be nil")
	}
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		cards:    cards,
		sessions: sessions,
		srs:      srsService,
		clock:    clk,
		logger:   logger.With(slog.String("component", "study_engine")),
		cfg:      cfg,
		state:    StateIdle,
	}, nil
}

// Start resolves the study set and moves the engine to the first card. The
// set is a snapshot: cards created or rescheduled after Start do not join the
// running session. When nothing resolves, the engine lands in StateNoCards
// and Start still returns nil; inspect Snapshot for the outcome.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateIdle {
		return ErrAlreadyStarted
	}

	all, err := e.cards.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load flashcards: %w", err)
	}

	now := e.clock.Now()
	e.set = ResolveStudySet(all, now, e.cfg.CatchUpLimit)
	e.startedAt = now

	if len(e.set) == 0 {
		e.state = StateNoCards
		e.logger.InfoContext(ctx, "no cards available to study")
		return nil
	}

	e.state = StateAwaitingAnswer
	e.logger.InfoContext(ctx, "study session started",
		slog.Int("card_count", len(e.set)))
	return nil
}

// RevealAnswer flips the current card over, moving AwaitingAnswer to
// AwaitingGrade.
func (e *Engine) RevealAnswer() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateAwaitingAnswer:
		e.state = StateAwaitingGrade
		return nil
	case StateIdle:
		return ErrNotStarted
	case StateAwaitingGrade:
		return ErrNotAwaitingAnswer
	default:
		return ErrSessionFinished
	}
}

// Grade records a self-assessment for the current card, writes the updated
// review schedule back to the card store, and advances to the next card.
// Grading the final card completes the session and appends it to the session
// log. If the write-back fails the engine stays in AwaitingGrade so the
// grade can be retried. If the write-back succeeded but the session record
// could not be appended, the grade is already committed; a retried Grade
// re-attempts only the append and never reschedules a card twice.
func (e *Engine) Grade(ctx context.Context, wasCorrect bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateAwaitingGrade:
		if e.correct+e.incorrect == len(e.set) {
			// Every card is graded; only the session record is
			// outstanding from a failed completion attempt.
			return e.completeLocked(ctx, e.clock.Now())
		}
	case StateIdle:
		return ErrNotStarted
	case StateAwaitingAnswer:
		return ErrNotAwaitingGrade
	default:
		return ErrSessionFinished
	}

	card := e.set[e.index]
	now := e.clock.Now()

	review, err := e.srs.Schedule(card, wasCorrect, now)
	if err != nil {
		return fmt.Errorf("failed to schedule next review: %w", err)
	}

	update := store.FlashcardUpdate{
		NextReview:   &review.NextReview,
		ReviewCount:  &review.ReviewCount,
		CorrectCount: &review.CorrectCount,
	}
	if err := e.cards.Update(ctx, card.ID, update); err != nil {
		return fmt.Errorf("failed to save review for card %s: %w", card.ID, err)
	}

	// Keep the snapshot consistent with what was persisted.
	card.ReviewCount = review.ReviewCount
	card.CorrectCount = review.CorrectCount
	card.NextReview = review.NextReview

	if wasCorrect {
		e.correct++
	} else {
		e.incorrect++
	}

	e.logger.DebugContext(ctx, "card graded",
		slog.String("card_id", card.ID.String()),
		slog.Bool("correct", wasCorrect),
		slog.Int("position", e.index+1),
		slog.Int("total", len(e.set)))

	if e.index+1 < len(e.set) {
		e.index++
		e.state = StateAwaitingAnswer
		return nil
	}

	return e.completeLocked(ctx, now)
}

// completeLocked records the finished session. Caller holds e.mu.
func (e *Engine) completeLocked(ctx context.Context, now time.Time) error {
	ids := make([]uuid.UUID, len(e.set))
	for i, card := range e.set {
		ids[i] = card.ID
	}

	session, err := domain.NewStudySession(ids, e.correct, now.Sub(e.startedAt), now)
	if err != nil {
		return fmt.Errorf("failed to build session record: %w", err)
	}

	if err := e.sessions.Append(ctx, session); err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}

	e.session = session
	e.state = StateComplete
	e.logger.InfoContext(ctx, "study session complete",
		slog.Int("score", session.Score),
		slog.Int("cards", len(ids)),
		slog.Duration("duration", session.Duration))
	return nil
}

// Abandon discards the session without writing a log record. Grades already
// applied to cards are not rolled back. Abandoning a finished engine is a
// no-op.
func (e *Engine) Abandon() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateComplete, StateNoCards, StateAbandoned:
		return
	}
	e.state = StateAbandoned
}

// Snapshot returns a consistent view of the engine's current progress.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		State:        e.state,
		CurrentIndex: e.index,
		TotalCards:   len(e.set),
		Correct:      e.correct,
		Incorrect:    e.incorrect,
		Session:      e.session,
	}

	if e.state == StateAwaitingAnswer || e.state == StateAwaitingGrade {
		card := e.set[e.index]
		snap.CardID = card.ID
		snap.Question = card.Question
		snap.Difficulty = card.Difficulty
		if e.state == StateAwaitingGrade {
			snap.Answer = card.Answer
		}
	}
	return snap
}
