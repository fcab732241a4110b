package api

import (
	"log/slog"
	"net/http"

	"github.com/SaagarParikh1/NeuroNotes/internal/api/shared"
	"github.com/SaagarParikh1/NeuroNotes/internal/platform/logger"
	"github.com/SaagarParikh1/NeuroNotes/internal/service"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// NoteHandler handles note-related HTTP requests, including the AI
// assistance endpoints.
type NoteHandler struct {
	noteService *service.NoteService
	logger      *slog.Logger
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(noteService *service.NoteService, log *slog.Logger) *NoteHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for NoteHandler")
	}
	return &NoteHandler{
		noteService: noteService,
		logger:      log.With(slog.String("component", "note_handler")),
	}
}

// CreateNote handles POST /notes requests.
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateNoteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	note, err := h.noteService.CreateNote(r.Context(), req.Title, req.Content, req.Tags, req.FolderID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Debug("note created", slog.String("note_id", note.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, ToNoteResponse(note))
}

// ListNotes handles GET /notes requests.
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.ListNotes(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToNoteResponses(notes))
}

// GetNote handles GET /notes/{id} requests.
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	note, err := h.noteService.GetNote(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToNoteResponse(note))
}

// UpdateNote handles PATCH /notes/{id} requests.
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	note, err := h.noteService.UpdateNote(r.Context(), id, store.NoteUpdate{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		FolderID: req.FolderID,
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToNoteResponse(note))
}

// DeleteNote handles DELETE /notes/{id} requests. Flashcards linked to the
// note are removed with it.
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Debug("note deleted", slog.String("note_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// SummarizeNote handles POST /notes/{id}/summarize requests.
func (h *NoteHandler) SummarizeNote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	note, err := h.noteService.SummarizeNote(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToNoteResponse(note))
}

// GenerateCards handles POST /notes/{id}/flashcards requests, creating
// AI-suggested flashcards linked to the note.
func (h *NoteHandler) GenerateCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	cards, err := h.noteService.GenerateCards(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Debug("flashcards generated",
		slog.String("note_id", id.String()),
		slog.Int("count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusCreated, ToFlashcardResponses(cards))
}
