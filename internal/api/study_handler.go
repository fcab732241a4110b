package api

import (
	"log/slog"
	"net/http"

	"github.com/SaagarParikh1/NeuroNotes/internal/api/shared"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/logger"
	"github.com/SaagarParikh1/NeuroNotes/internal/service/study"
)

// StudyHandler drives study sessions over HTTP. Each session is addressed
// by the opaque handle returned from StartSession.
type StudyHandler struct {
	manager *study.Manager
	logger  *slog.Logger
}

// NewStudyHandler creates a new StudyHandler
func NewStudyHandler(manager *study.Manager, log *slog.Logger) *StudyHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}
	return &StudyHandler{
		manager: manager,
		logger:  log.With(slog.String("component", "study_handler")),
	}
}

// StartSession handles POST /study/sessions requests. The response reports
// either the first card or the nothing-to-study state.
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	handle, engine, err := h.manager.Start(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	snap := engine.Snapshot()
	log.Debug("study session started",
		slog.String("session_id", handle.String()),
		slog.String("state", string(snap.State)))
	shared.RespondWithJSON(w, r, http.StatusCreated, ToStudyStateResponse(handle, snap))
}

// GetSession handles GET /study/sessions/{id} requests.
func (h *StudyHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	handle, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	engine, err := h.manager.Get(handle)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToStudyStateResponse(handle, engine.Snapshot()))
}

// RevealAnswer handles POST /study/sessions/{id}/reveal requests.
func (h *StudyHandler) RevealAnswer(w http.ResponseWriter, r *http.Request) {
	handle, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	engine, err := h.manager.Get(handle)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	if err := engine.RevealAnswer(); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToStudyStateResponse(handle, engine.Snapshot()))
}

// GradeCard handles POST /study/sessions/{id}/grade requests.
func (h *StudyHandler) GradeCard(w http.ResponseWriter, r *http.Request) {
	handle, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req GradeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	engine, err := h.manager.Get(handle)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	if err := engine.Grade(r.Context(), *req.Correct); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToStudyStateResponse(handle, engine.Snapshot()))
}

// AbandonSession handles DELETE /study/sessions/{id} requests. Grades
// already applied stay applied; no session record is written.
func (h *StudyHandler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	handle, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.manager.Release(handle); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Debug("study session abandoned", slog.String("session_id", handle.String()))
	w.WriteHeader(http.StatusNoContent)
}
