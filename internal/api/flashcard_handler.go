// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/api/shared"
	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/logger"
	"github.com/SaagarParikh1/NeuroNotes/internal/service"
)

// FlashcardHandler handles flashcard-related HTTP requests
type FlashcardHandler struct {
	cardService *service.FlashcardService
	logger      *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler
func NewFlashcardHandler(cardService *service.FlashcardService, log *slog.Logger) *FlashcardHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for FlashcardHandler")
	}
	return &FlashcardHandler{
		cardService: cardService,
		logger:      log.With(slog.String("component", "flashcard_handler")),
	}
}

// respondWithServiceError maps an internal error onto a sanitized response.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r,
		MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// parseIDParam extracts and parses the {id} URL parameter. On failure it
// writes the error response and reports false.
func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// CreateCard handles POST /flashcards requests.
func (h *FlashcardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateFlashcardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	card, err := h.cardService.CreateCard(
		r.Context(), req.Question, req.Answer, domain.Difficulty(req.Difficulty), req.NoteID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Debug("flashcard created", slog.String("card_id", card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, ToFlashcardResponse(card))
}

// ListCards handles GET /flashcards requests. With ?due=true only the cards
// currently due for review are returned.
func (h *FlashcardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	var (
		cards []*domain.Flashcard
		err   error
	)
	if r.URL.Query().Get("due") == "true" {
		cards, err = h.cardService.ListDueCards(r.Context())
	} else {
		cards, err = h.cardService.ListCards(r.Context())
	}
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToFlashcardResponses(cards))
}

// GetCard handles GET /flashcards/{id} requests.
func (h *FlashcardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToFlashcardResponse(card))
}

// UpdateCard handles PATCH /flashcards/{id} requests.
func (h *FlashcardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateFlashcardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	card, err := h.cardService.UpdateCard(r.Context(), id, req.Question, req.Answer)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToFlashcardResponse(card))
}

// DeleteCard handles DELETE /flashcards/{id} requests.
func (h *FlashcardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Debug("flashcard deleted", slog.String("card_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}
