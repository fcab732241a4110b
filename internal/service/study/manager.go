package study

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain/srs"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/clock"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// ErrEngineNotFound is returned when a session handle does not match any
// live engine.
var ErrEngineNotFound = errors.New("study session not found")

// Manager owns the live study engines, keyed by an opaque session handle.
// Handles for finished sessions stay resolvable until Release so clients can
// read the final snapshot.
type Manager struct {
	mu      sync.RWMutex
	engines map[uuid.UUID]*Engine

	cards    store.FlashcardStore
	sessions store.SessionStore
	srs      srs.Service
	clock    clock.Clock
	logger   *slog.Logger
	cfg      Config
}

// NewManager creates a manager that builds engines from the given
// dependencies.
func NewManager(
	cards store.FlashcardStore,
	sessions store.SessionStore,
	srsService srs.Service,
	clk clock.Clock,
	logger *slog.Logger,
	cfg Config,
) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		engines:  make(map[uuid.UUID]*Engine),
		cards:    cards,
		sessions: sessions,
		srs:      srsService,
		clock:    clk,
		logger:   logger,
		cfg:      cfg,
	}
}

// Start creates and starts a new engine, returning its handle.
func (m *Manager) Start(ctx context.Context) (uuid.UUID, *Engine, error) {
	engine, err := NewEngine(m.cards, m.sessions, m.srs, m.clock, m.logger, m.cfg)
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

// Release abandons the engine if it is still running and drops the handle.
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
