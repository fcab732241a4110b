package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/api/shared"
	"github.com/SaagarParikh1/NeuroNotes/internal/config"
	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/logger"
	"github.com/SaagarParikh1/NeuroNotes/internal/service/quiz"
)

// QuizHandler drives timed quizzes over HTTP. Each quiz is addressed by the
// opaque handle returned from StartQuiz.
type QuizHandler struct {
	manager  *quiz.Manager
	defaults config.QuizConfig
	logger   *slog.Logger
}

// NewQuizHandler creates a new QuizHandler
func NewQuizHandler(manager *quiz.Manager, defaults config.QuizConfig, log *slog.Logger) *QuizHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for QuizHandler")
	}
	return &QuizHandler{
		manager:  manager,
		defaults: defaults,
		logger:   log.With(slog.String("component", "quiz_handler")),
	}
}

// StartQuiz handles POST /quizzes requests. Omitted fields fall back to the
// configured defaults; an omitted difficulty means mixed.
func (h *QuizHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartQuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	cfg := quiz.Config{
		QuestionCount: req.QuestionCount,
		Difficulty:    domain.DifficultyFilter(req.Difficulty),
		TimeLimit:     time.Duration(req.TimeLimitSeconds) * time.Second,
		ShowHints:     req.ShowHints,
	}
	if cfg.QuestionCount == 0 {
		cfg.QuestionCount = h.defaults.DefaultQuestionCount
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = domain.FilterMixed
	}
	if cfg.TimeLimit == 0 {
		cfg.TimeLimit = h.defaults.DefaultTimeLimit
	}

	handle, engine, err := h.manager.Start(r.Context(), cfg)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	snap := engine.Snapshot()
	log.Debug("quiz started",
		slog.String("quiz_id", handle.String()),
		slog.String("state", string(snap.State)),
		slog.Int("questions", snap.Total))
	shared.RespondWithJSON(w, r, http.StatusCreated, ToQuizStateResponse(handle, snap))
}

// getEngine resolves the quiz handle and folds expiry in before the state is
// reported, so clients polling a stale quiz see the completed result. On
// failure the error response has already been written.
func (h *QuizHandler) getEngine(w http.ResponseWriter, r *http.Request) (uuid.UUID, *quiz.Engine, bool) {
	handle, ok := parseIDParam(w, r)
	if !ok {
		return uuid.Nil, nil, false
	}
	engine, err := h.manager.Get(handle)
	if err != nil {
		respondWithServiceError(w, r, err)
		return uuid.Nil, nil, false
	}
	engine.Tick()
	return handle, engine, true
}

// GetQuiz handles GET /quizzes/{id} requests.
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	handle, engine, ok := h.getEngine(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToQuizStateResponse(handle, engine.Snapshot()))
}

// SelectOption handles POST /quizzes/{id}/answer requests.
func (h *QuizHandler) SelectOption(w http.ResponseWriter, r *http.Request) {
	var req SelectOptionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	handle, engine, ok := h.getEngine(w, r)
	if !ok {
		return
	}
	if err := engine.SelectOption(req.Option); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToQuizStateResponse(handle, engine.Snapshot()))
}

// NextQuestion handles POST /quizzes/{id}/next requests.
func (h *QuizHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	handle, engine, ok := h.getEngine(w, r)
	if !ok {
		return
	}
	if err := engine.Next(); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToQuizStateResponse(handle, engine.Snapshot()))
}

// PreviousQuestion handles POST /quizzes/{id}/previous requests.
func (h *QuizHandler) PreviousQuestion(w http.ResponseWriter, r *http.Request) {
	handle, engine, ok := h.getEngine(w, r)
	if !ok {
		return
	}
	if err := engine.Previous(); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToQuizStateResponse(handle, engine.Snapshot()))
}

// FinishQuiz handles POST /quizzes/{id}/finish requests. Unanswered
// questions are graded as incorrect.
func (h *QuizHandler) FinishQuiz(w http.ResponseWriter, r *http.Request) {
	handle, engine, ok := h.getEngine(w, r)
	if !ok {
		return
	}
	if err := engine.Finish(); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToQuizStateResponse(handle, engine.Snapshot()))
}

// AbandonQuiz handles DELETE /quizzes/{id} requests.
func (h *QuizHandler) AbandonQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	handle, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.manager.Release(handle); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Debug("quiz abandoned", slog.String("quiz_id", handle.String()))
	w.WriteHeader(http.StatusNoContent)
}
