package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/SaagarParikh1/NeuroNotes/internal/api"
	apiMiddleware "github.com/SaagarParikh1/NeuroNotes/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	cardHandler := api.NewFlashcardHandler(app.cardService, app.logger)
	noteHandler := api.NewNoteHandler(app.noteService, app.logger)
	studyHandler := api.NewStudyHandler(app.studyManager, app.logger)
	quizHandler := api.NewQuizHandler(app.quizManager, app.config.Quiz, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessionService, app.cardService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Flashcard management
		r.Post("/flashcards", cardHandler.CreateCard)
		r.Get("/flashcards", cardHandler.ListCards)
		r.Get("/flashcards/{id}", cardHandler.GetCard)
		r.Patch("/flashcards/{id}", cardHandler.UpdateCard)
		r.Delete("/flashcards/{id}", cardHandler.DeleteCard)

		// Notes and AI assistance
		r.Post("/notes", noteHandler.CreateNote)
		r.Get("/notes", noteHandler.ListNotes)
		r.Get("/notes/{id}", noteHandler.GetNote)
		r.Patch("/notes/{id}", noteHandler.UpdateNote)
		r.Delete("/notes/{id}", noteHandler.DeleteNote)
		r.Post("/notes/{id}/summarize", noteHandler.SummarizeNote)
		r.Post("/notes/{id}/flashcards", noteHandler.GenerateCards)

		// Study sessions
		r.Post("/study/sessions", studyHandler.StartSession)
		r.Get("/study/sessions/{id}", studyHandler.GetSession)
		r.Post("/study/sessions/{id}/reveal", studyHandler.RevealAnswer)
		r.Post("/study/sessions/{id}/grade", studyHandler.GradeCard)
		r.Delete("/study/sessions/{id}", studyHandler.AbandonSession)

		// Quizzes
		r.Post("/quizzes", quizHandler.StartQuiz)
		r.Get("/quizzes/{id}", quizHandler.GetQuiz)
		r.Post("/quizzes/{id}/answer", quizHandler.SelectOption)
		r.Post("/quizzes/{id}/next", quizHandler.NextQuestion)
		r.Post("/quizzes/{id}/previous", quizHandler.PreviousQuestion)
		r.Post("/quizzes/{id}/finish", quizHandler.FinishQuiz)
		r.Delete("/quizzes/{id}", quizHandler.AbandonQuiz)

		// Session history and dashboard
		r.Get("/sessions", sessionHandler.ListSessions)
		r.Get("/dashboard", sessionHandler.GetDashboard)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
