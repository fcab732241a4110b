package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/SaagarParikh1/NeuroNotes/internal/config"
	"github.com/SaagarParikh1/NeuroNotes/internal/domain/srs"
	"github.com/SaagarParikh1/NeuroNotes/internal/generation"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/clock"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/gemini"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/memstore"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/postgres"
	"github.com/SaagarParikh1/NeuroNotes/internal/service"
	"github.com/SaagarParikh1/NeuroNotes/internal/service/quiz"
	"github.com/SaagarParikh1/NeuroNotes/internal/service/study"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// application holds the wired dependency graph for one server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	cardStore    store.FlashcardStore
	noteStore    store.NoteStore
	sessionStore store.SessionStore

	cardService    *service.FlashcardService
	noteService    *service.NoteService
	sessionService *service.SessionService

	studyManager *study.Manager
	quizManager  *quiz.Manager
}

// newApplication wires stores, services and engines from the configuration.
// With a database URL configured the stores are PostgreSQL-backed and
// migrations run before anything else; without one everything lives in
// memory and is lost on restart.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{config: cfg, logger: logger}

	if cfg.Database.URL != "" {
		db, err := sql.Open("pgx", cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgres.RunMigrations(db); err != nil {
			return nil, err
		}

		app.db = db
		app.cardStore = postgres.NewFlashcardStore(db, logger)
		app.noteStore = postgres.NewNoteStore(db, logger)
		app.sessionStore = postgres.NewSessionStore(db, logger)
		logger.Info("using PostgreSQL storage")
	} else {
		app.cardStore = memstore.NewFlashcardStore()
		app.noteStore = memstore.NewNoteStore()
		app.sessionStore = memstore.NewSessionStore()
		logger.Warn("no database URL configured, using in-memory storage")
	}

	var generator generation.Generator
	if cfg.LLM.GeminiAPIKey != "" {
		g, err := gemini.New(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini generator: %w", err)
		}
		generator = g
		logger.Info("AI assistance enabled", slog.String("model", cfg.LLM.ModelName))
	} else {
		logger.Info("AI assistance disabled, no API key configured")
	}

	clk := clock.New()
	srsService := srs.NewDefaultService()

	app.cardService = service.NewFlashcardService(app.cardStore, clk, logger)
	app.noteService = service.NewNoteService(app.noteStore, app.cardStore, generator, logger)
	app.sessionService = service.NewSessionService(app.sessionStore, logger)

	app.studyManager = study.NewManager(
		app.cardStore, app.sessionStore, srsService, clk, logger,
		study.Config{CatchUpLimit: cfg.Study.CatchUpLimit})
	app.quizManager = quiz.NewManager(app.cardStore, app.sessionStore, clk, logger)

	return app, nil
}

// close releases process-wide resources.
func (app *application) close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.Any("error", err))
		}
	}
}
