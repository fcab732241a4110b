package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/SaagarParikh1/NeuroNotes/internal/api"
	apimiddleware "github.com/SaagarParikh1/NeuroNotes/internal/api/middleware"
	"github.com/SaagarParikh1/NeuroNotes/internal/config"
	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/domain/srs"
	"github.com/SaagarParikh1/NeuroNotes/internal/generation"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/clock"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/memstore"
	"github.com/SaagarParikh1/NeuroNotes/internal/service"
	"github.com/SaagarParikh1/NeuroNotes/internal/service/quiz"
	"github.com/SaagarParikh1/NeuroNotes/internal/service/study"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testServer bundles the HTTP surface with direct store access for
// assertions.
type testServer struct {
	router   http.Handler
	cards    *memstore.FlashcardStore
	notes    *memstore.NoteStore
	sessions *memstore.SessionStore
	clock    *clock.SteppedClock
}

// stubGenerator is a canned generation.Generator for handler tests.
type stubGenerator struct {
	summary string
}

func (g *stubGenerator) Summarize(ctx context.Context, note *domain.Note) (string, error) {
	return g.summary, nil
}

func (g *stubGenerator) SuggestCards(ctx context.Context, note *domain.Note) ([]*domain.Flashcard, error) {
	card, err := domain.NewFlashcard("generated question", "generated answer",
		domain.DifficultyMedium, &note.ID)
	if err != nil {
		return nil, err
	}
	return []*domain.Flashcard{card}, nil
}

func newTestServer(t *testing.T, generator generation.Generator) *testServer {
	t.Helper()

	cards := memstore.NewFlashcardStore()
	notes := memstore.NewNoteStore()
	sessions := memstore.NewSessionStore()
	clk := clock.Stepped(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	cardService := service.NewFlashcardService(cards, clk, nil)
	noteService := service.NewNoteService(notes, cards, generator, nil)
	sessionService := service.NewSessionService(sessions, nil)
	studyManager := study.NewManager(cards, sessions, srs.NewDefaultService(), clk, nil, study.Config{})
	quizManager := quiz.NewManager(cards, sessions, clk, nil)

	defaults := config.QuizConfig{DefaultQuestionCount: 10, DefaultTimeLimit: 5 * time.Minute}

	logger := testLogger()
	cardHandler := api.NewFlashcardHandler(cardService, logger)
	noteHandler := api.NewNoteHandler(noteService, logger)
	studyHandler := api.NewStudyHandler(studyManager, logger)
	quizHandler := api.NewQuizHandler(quizManager, defaults, logger)
	sessionHandler := api.NewSessionHandler(sessionService, cardService, logger)

	r := chi.NewRouter()
	r.Use(apimiddleware.TraceMiddleware)
	r.Route("/api", func(r chi.Router) {
		r.Post("/flashcards", cardHandler.CreateCard)
		r.Get("/flashcards", cardHandler.ListCards)
		r.Get("/flashcards/{id}", cardHandler.GetCard)
		r.Patch("/flashcards/{id}", cardHandler.UpdateCard)
		r.Delete("/flashcards/{id}", cardHandler.DeleteCard)

		r.Post("/notes", noteHandler.CreateNote)
		r.Get("/notes", noteHandler.ListNotes)
		r.Get("/notes/{id}", noteHandler.GetNote)
		r.Patch("/notes/{id}", noteHandler.UpdateNote)
		r.Delete("/notes/{id}", noteHandler.DeleteNote)
		r.Post("/notes/{id}/summarize", noteHandler.SummarizeNote)
		r.Post("/notes/{id}/flashcards", noteHandler.GenerateCards)

		r.Post("/study/sessions", studyHandler.StartSession)
		r.Get("/study/sessions/{id}", studyHandler.GetSession)
		r.Post("/study/sessions/{id}/reveal", studyHandler.RevealAnswer)
		r.Post("/study/sessions/{id}/grade", studyHandler.GradeCard)
		r.Delete("/study/sessions/{id}", studyHandler.AbandonSession)

		r.Post("/quizzes", quizHandler.StartQuiz)
		r.Get("/quizzes/{id}", quizHandler.GetQuiz)
		r.Post("/quizzes/{id}/answer", quizHandler.SelectOption)
		r.Post("/quizzes/{id}/next", quizHandler.NextQuestion)
		r.Post("/quizzes/{id}/previous", quizHandler.PreviousQuestion)
		r.Post("/quizzes/{id}/finish", quizHandler.FinishQuiz)
		r.Delete("/quizzes/{id}", quizHandler.AbandonQuiz)

		r.Get("/sessions", sessionHandler.ListSessions)
		r.Get("/dashboard", sessionHandler.GetDashboard)
	})

	return &testServer{
		router:   r,
		cards:    cards,
		notes:    notes,
		sessions: sessions,
		clock:    clk,
	}
}

// do performs a request against the test router and decodes the JSON
// response body into out when it is non-nil.
func (ts *testServer) do(t *testing.T, method, path string, body, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out),
			"failed to decode response body: %s", rec.Body.String())
	}
	return rec
}

// seedCard creates a due card directly in the store.
func (ts *testServer) seedCard(t *testing.T, question, answer string, difficulty domain.Difficulty) *domain.Flashcard {
	t.Helper()
	card, err := domain.NewFlashcard(question, answer, difficulty, nil)
	require.NoError(t, err)
	card.NextReview = ts.clock.Now()
	require.NoError(t, ts.cards.Create(context.Background(), card))
	return card
}
