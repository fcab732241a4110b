// Package quiz implements the timed multiple-choice quiz flow. A quiz is
// built from a sampled set of flashcards, presents generated answer options,
// and grades itself against a wall-clock time limit. Quizzes never feed back
// into review scheduling; only the session log records the outcome.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/clock"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// OptionCount is the target number of answer choices per question, the
// correct answer included. Fewer cards means fewer options; choices are
// never padded with duplicates.
const OptionCount = 4

// State identifies where a quiz engine is in its lifecycle.
type State string

const (
	// StateIdle is the state before Start has been called.
	StateIdle State = "IDLE"

	// StateInProgress means questions are being presented and answered.
	StateInProgress State = "IN_PROGRESS"

	// StateComplete is the terminal state after finishing, whether by
	// answering the last question, calling Finish early, or the timer
	// expiring.
	StateComplete State = "COMPLETE"

	// StateNoQuestions is the terminal state entered when the configured
	// filter matches no cards. No session record is written from it.
	StateNoQuestions State = "NO_QUESTIONS_AVAILABLE"

	// StateAbandoned is the terminal state after Abandon. No session record
	// is written.
	StateAbandoned State = "ABANDONED"
)

// Quiz lifecycle errors. Handlers map these onto 409 responses.
var (
	ErrAlreadyStarted  = errors.New("quiz already started")
	ErrNotStarted      = errors.New("quiz not started")
	ErrQuizFinished    = errors.New("quiz already finished")
	ErrNoSelection     = errors.New("current question has no selected option")
	ErrUnknownOption   = errors.New("option is not one of the question's choices")
	ErrAtFirstQuestion = errors.New("already at the first question")
)

// Config describes how a quiz is assembled.
type Config struct {
	// QuestionCount is the requested number of questions. The quiz holds
	// min(QuestionCount, matching cards) questions.
	QuestionCount int `validate:"required,min=1"`

	// Difficulty filters which cards may appear. The mixed filter admits
	// every card.
	Difficulty domain.DifficultyFilter `validate:"required"`

	// TimeLimit is the wall-clock budget for the whole quiz.
	TimeLimit time.Duration `validate:"required,min=1s"`

	// ShowHints is carried through to the presentation layer untouched.
	ShowHints bool
}

// Validate checks that the configuration can produce a quiz.
func (c Config) Validate() error {
	if c.QuestionCount < 1 {
		return fmt.Errorf("question count must be at least 1, got %d", c.QuestionCount)
	}
	if !c.Difficulty.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDifficultyFilter, c.Difficulty)
	}
	if c.TimeLimit <= 0 {
		return fmt.Errorf("time limit must be positive, got %s", c.TimeLimit)
	}
	return nil
}

// question is one quiz entry with its pre-generated choices.
type question struct {
	cardID     uuid.UUID
	prompt     string
	answer     string
	difficulty domain.Difficulty
	options    []string
	selected   string
	answered   bool
}

// QuestionView is the externally visible shape of a question. The correct
// answer is only exposed after the quiz completes.
type QuestionView struct {
	CardID     uuid.UUID
	Prompt     string
	Difficulty domain.Difficulty
	Options    []string
	Selected   string
	Answered   bool

	// Answer and Correct are populated only on completed quizzes.
	Answer  string
	Correct bool
}

// Snapshot is a point-in-time view of a quiz engine.
type Snapshot struct {
	State        State
	CurrentIndex int
	Total        int
	Remaining    time.Duration
	ShowHints    bool
	Question     *QuestionView

	// Results holds the full graded question list, set only in
	// StateComplete. Session is the recorded log entry.
	Results []QuestionView
	Session *domain.StudySession
}

// Engine drives one quiz. All methods are safe for concurrent use; the
// expiry timer and user requests race for the same completion path and
// exactly one of them wins.
type Engine struct {
	mu sync.Mutex

	cards    store.FlashcardStore
	sessions store.SessionStore
	clock    clock.Clock
	rng      *rand.Rand
	logger   *slog.Logger
	cfg      Config

	state     State
	questions []question
	index     int
	startedAt time.Time
	deadline  time.Time
	timer     *time.Timer
	session   *domain.StudySession

	// baseCtx carries the request-scoped values from Start into the timer
	// expiry path, which has no caller to supply a context.
	baseCtx context.Context
}

// NewEngine creates an idle quiz engine. The RNG drives card sampling and
// option shuffling; passing a seeded source makes the quiz deterministic for
// tests. A nil rng falls back to a time-seeded one.
func NewEngine(
	cards store.FlashcardStore,
	sessions store.SessionStore,
	clk clock.Clock,
	rng *rand.Rand,
	logger *slog.Logger,
	cfg Config,
) (*Engine, error) {
	if cards == nil {
		return nil, fmt.Errorf("flashcard store cannot be nil")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid quiz config: %w", err)
	}
	if clk == nil {
		clk = clock.New()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		cards:    cards,
		sessions: sessions,
		clock:    clk,
		rng:      rng,
		logger:   logger.With(slog.String("component", "quiz_engine")),
		cfg:      cfg,
		state:    StateIdle,
		baseCtx:  context.Background(),
	}, nil
}

// Start samples the question set, generates options, and arms the expiry
// timer. When the filter matches no cards the engine lands in
// StateNoQuestions and Start still returns nil.
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

	matching := make([]*domain.Flashcard, 0, len(all))
	for _, card := range all {
		if e.cfg.Difficulty.Matches(card.Difficulty) {
			matching = append(matching, card)
		}
	}

	if len(matching) == 0 {
		e.state = StateNoQuestions
		e.logger.InfoContext(ctx, "no cards match quiz filter",
			slog.String("difficulty", string(e.cfg.Difficulty)))
		return nil
	}

	e.rng.Shuffle(len(matching), func(i, j int) {
		matching[i], matching[j] = matching[j], matching[i]
	})
	count := e.cfg.QuestionCount
	if count > len(matching) {
		count = len(matching)
	}
	sampled := matching[:count]

	e.questions = make([]question, count)
	for i, card := range sampled {
		e.questions[i] = question{
			cardID:     card.ID,
			prompt:     card.Question,
			answer:     card.Answer,
			difficulty: card.Difficulty,
			options:    e.buildOptions(card, sampled),
		}
	}

	now := e.clock.Now()
	e.baseCtx = context.WithoutCancel(ctx)
	e.startedAt = now
	e.deadline = now.Add(e.cfg.TimeLimit)
	e.timer = time.AfterFunc(e.cfg.TimeLimit, e.expire)
	e.state = StateInProgress

	e.logger.InfoContext(ctx, "quiz started",
		slog.Int("questions", count),
		slog.Duration("time_limit", e.cfg.TimeLimit))
	return nil
}

// buildOptions assembles the choices for one card: its own answer plus up to
// OptionCount-1 distinct answers drawn from the other sampled cards, the
// whole set shuffled. Duplicate answer texts are skipped rather than padded.
func (e *Engine) buildOptions(card *domain.Flashcard, sampled []*domain.Flashcard) []string {
	seen := map[string]bool{card.Answer: true}
	others := make([]string, 0, len(sampled)-1)
	for _, other := range sampled {
		if other.ID == card.ID || seen[other.Answer] {
			continue
		}
		seen[other.Answer] = true
		others = append(others, other.Answer)
	}

	e.rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})
	if len(others) > OptionCount-1 {
		others = others[:OptionCount-1]
	}

	options := append([]string{card.Answer}, others...)
	e.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// SelectOption records a choice for the current question. Reselecting
// replaces the previous choice; nothing is graded until the quiz completes.
func (e *Engine) SelectOption(option string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireInProgressLocked(); err != nil {
		return err
	}

	q := &e.questions[e.index]
	for _, candidate := range q.options {
		if candidate == option {
			q.selected = option
			q.answered = true
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownOption, option)
}

// Next advances to the following question. The current question must have a
// selection. Advancing past the last question completes the quiz.
func (e *Engine) Next() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireInProgressLocked(); err != nil {
		return err
	}
	if !e.questions[e.index].answered {
		return ErrNoSelection
	}

	if e.index+1 < len(e.questions) {
		e.index++
		return nil
	}
	return e.completeLocked("answered")
}

// Previous steps back to the prior question. Earlier selections stay in
// place and may be changed.
func (e *Engine) Previous() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireInProgressLocked(); err != nil {
		return err
	}
	if e.index == 0 {
		return ErrAtFirstQuestion
	}
	e.index--
	return nil
}

// Finish ends the quiz immediately, grading whatever has been selected so
// far. Unanswered questions count as incorrect. Finishing an already
// completed quiz is a no-op.
func (e *Engine) Finish() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateInProgress:
		return e.completeLocked("finished early")
	case StateComplete:
		return nil
	case StateIdle:
		return ErrNotStarted
	default:
		return ErrQuizFinished
	}
}

// expire is the timer callback. Completion is idempotent, so losing the race
// against a user-driven Finish is harmless.
func (e *Engine) expire() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateInProgress {
		return
	}
	if err := e.completeLocked("time expired"); err != nil {
		e.logger.Error("failed to complete expired quiz", slog.Any("error", err))
	}
}

// Tick checks the deadline against the clock and completes the quiz if time
// ran out. It exists so callers driving a fake clock observe expiry without
// the background timer.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateInProgress {
		return
	}
	if !e.clock.Now().Before(e.deadline) {
		if err := e.completeLocked("time expired"); err != nil {
			e.logger.Error("failed to complete expired quiz", slog.Any("error", err))
		}
	}
}

// Remaining reports the time left on the quiz clock. It never goes below
// zero and is zero once the quiz is over.
func (e *Engine) Remaining() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remainingLocked()
}

func (e *Engine) remainingLocked() time.Duration {
	if e.state != StateInProgress {
		return 0
	}
	remaining := e.deadline.Sub(e.clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Abandon discards the quiz without writing a log record.
func (e *Engine) Abandon() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateComplete, StateNoQuestions, StateAbandoned:
		return
	}
	e.stopTimerLocked()
	e.state = StateAbandoned
}

// completeLocked grades the quiz, records the session, and moves to
// StateComplete. Caller holds e.mu and has checked state is InProgress.
// The state flips before the append so the timer and a manual finish can
// never both record. The log entry is therefore best effort: if the append
// fails the quiz stays finished and the record is dropped, with the error
// surfaced to whichever trigger lost it.
func (e *Engine) completeLocked(reason string) error {
	e.stopTimerLocked()
	e.state = StateComplete

	correct := 0
	ids := make([]uuid.UUID, len(e.questions))
	for i, q := range e.questions {
		ids[i] = q.cardID
		if q.answered && q.selected == q.answer {
			correct++
		}
	}

	now := e.clock.Now()
	session, err := domain.NewStudySession(ids, correct, now.Sub(e.startedAt), now)
	if err != nil {
		return fmt.Errorf("failed to build session record: %w", err)
	}
	if err := e.sessions.Append(e.baseCtx, session); err != nil {
		return fmt.Errorf("failed to record quiz session: %w", err)
	}

	e.session = session
	e.logger.InfoContext(e.baseCtx, "quiz complete",
		slog.String("reason", reason),
		slog.Int("score", session.Score),
		slog.Int("questions", len(ids)))
	return nil
}

func (e *Engine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) requireInProgressLocked() error {
	switch e.state {
	case StateInProgress:
		return nil
	case StateIdle:
		return ErrNotStarted
	default:
		return ErrQuizFinished
	}
}

// Snapshot returns a consistent view of the quiz's current progress.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		State:        e.state,
		CurrentIndex: e.index,
		Total:        len(e.questions),
		Remaining:    e.remainingLocked(),
		ShowHints:    e.cfg.ShowHints,
		Session:      e.session,
	}

	if e.state == StateInProgress {
		view := e.viewLocked(e.index, false)
		snap.Question = &view
	}
	if e.state == StateComplete {
		snap.Results = make([]QuestionView, len(e.questions))
		for i := range e.questions {
			snap.Results[i] = e.viewLocked(i, true)
		}
	}
	return snap
}

func (e *Engine) viewLocked(i int, graded bool) QuestionView {
	q := e.questions[i]
	view := QuestionView{
		CardID:     q.cardID,
		Prompt:     q.prompt,
		Difficulty: q.difficulty,
		Options:    append([]string(nil), q.options...),
		Selected:   q.selected,
		Answered:   q.answered,
	}
	if graded {
		view.Answer = q.answer
		view.Correct = q.answered && q.selected == q.answer
	}
	return view
}
