package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SaagarParikh1/NeuroNotes/internal/api/shared"
	"github.com/SaagarParikh1/NeuroNotes/internal/service"
)

// defaultHistoryLimit bounds GET /sessions when no limit is given.
const defaultHistoryLimit = 20

// SessionHandler exposes the study history and dashboard aggregates.
type SessionHandler struct {
	sessionService *service.SessionService
	cardService    *service.FlashcardService
	logger         *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(
	sessionService *service.SessionService,
	cardService *service.FlashcardService,
	log *slog.Logger,
) *SessionHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}
	return &SessionHandler{
		sessionService: sessionService,
		cardService:    cardService,
		logger:         log.With(slog.String("component", "session_handler")),
	}
}

// ListSessions handles GET /sessions requests, most recent first. An
// optional ?limit= query parameter bounds the page size.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	sessions, err := h.sessionService.RecentSessions(r.Context(), limit)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	responses := make([]SessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = ToSessionResponse(session)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetDashboard handles GET /dashboard requests: card counts plus aggregate
// session stats in one response.
func (h *SessionHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.cardService.CountDue(r.Context(), time.Time{})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	stats, err := h.sessionService.Stats(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DashboardResponse{
		Cards: counts,
		Stats: stats,
	})
}
