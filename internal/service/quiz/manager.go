package quiz

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/platform/clock"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// ErrEngineNotFound is returned when a quiz handle does not match any live
// engine.
var ErrEngineNotFound = errors.New("quiz not found")

// Manager owns the live quiz engines, keyed by an opaque quiz handle.
type Manager struct {
	mu      sync.RWMutex
	engines map[uuid.UUID]*Engine

	cards    store.FlashcardStore
	sessions store.SessionStore
	clock    clock.Clock
	logger   *slog.Logger
}

// NewManager creates a manager that builds engines from the given
// dependencies. Each quiz gets its own time-seeded RNG.
func NewManager(
	cards store.FlashcardStore,
	sessions store.SessionStore,
	clk clock.Clock,
	logger *slog.Logger,
) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		engines:  make(map[uuid.UUID]*Engine),
		cards:    cards,
		sessions: sessions,
		clock:    clk,
		logger:   logger,
	}
}

// Start creates and starts a quiz with the given configuration, returning
// its handle.
func (m *Manager) Start(ctx context.Context, cfg Config) (uuid.UUID, *Engine, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine, err := NewEngine(m.cards, m.sessions, m.clock, rng, m.logger, cfg)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if err := engine.Start(ctx); err != nil {
		return uuid.Nil, nil, err
	}

	handle := uuid.New()
	m.mu.Lock()
	m.engines[handle] = engine
	m.mu.Unlock()
	return handle, engine, nil
}

// Get resolves a handle to its engine.
func (m *Manager) Get(handle uuid.UUID) (*Engine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	engine, ok := m.engines[handle]
	if !ok {
		return nil, ErrEngineNotFound
	}
	return engine, nil
}

// Release abandons the quiz if it is still running and drops the handle.
func (m *Manager) Release(handle uuid.UUID) error {
	m.mu.Lock()
	engine, ok := m.engines[handle]
	delete(m.engines, handle)
	m.mu.Unlock()

	if !ok {
		return ErrEngineNotFound
	}
	engine.Abandon()
	return nil
}
