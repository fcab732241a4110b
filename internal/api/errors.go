package api

import (
	"errors"
	"net/http"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/generation"
	"github.com/SaagarParikh1/NeuroNotes/internal/service"
	"github.com/SaagarParikh1/NeuroNotes/internal/service/quiz"
	"github.com/SaagarParikh1/NeuroNotes/internal/service/study"
	"github.com/SaagarParikh1/NeuroNotes/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type. This keeps internal error taxonomy out of the wire
// protocol.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, study.ErrEngineNotFound),
		errors.Is(err, quiz.ErrEngineNotFound):
		return http.StatusNotFound

	// Lifecycle conflicts: the request is well-formed but arrives in the
	// wrong state.
	case errors.Is(err, study.ErrAlreadyStarted),
		errors.Is(err, study.ErrNotStarted),
		errors.Is(err, study.ErrNotAwaitingAnswer),
		errors.Is(err, study.ErrNotAwaitingGrade),
		errors.Is(err, study.ErrSessionFinished),
		errors.Is(err, quiz.ErrAlreadyStarted),
		errors.Is(err, quiz.ErrNotStarted),
		errors.Is(err, quiz.ErrQuizFinished),
		errors.Is(err, quiz.ErrNoSelection),
		errors.Is(err, quiz.ErrAtFirstQuestion),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrUpdateFailed),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrInvalidDifficultyFilter),
		errors.Is(err, quiz.ErrUnknownOption):
		return http.StatusBadRequest

	// AI assistance availability
	case errors.Is(err, service.ErrGenerationUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway
	case errors.Is(err, generation.ErrEmptyNoteContent):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. Raw internal error strings never reach clients.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrCardNotFound):
		return "Flashcard not found"
	case errors.Is(err, store.ErrNoteNotFound):
		return "Note not found"
	case errors.Is(err, store.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, study.ErrEngineNotFound):
		return "Study session not found"
	case errors.Is(err, quiz.ErrEngineNotFound):
		return "Quiz not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, study.ErrAlreadyStarted),
		errors.Is(err, quiz.ErrAlreadyStarted):
		return "Session already started"
	case errors.Is(err, study.ErrNotAwaitingAnswer):
		return "Answer already revealed"
	case errors.Is(err, study.ErrNotAwaitingGrade):
		return "Reveal the answer before grading"
	case errors.Is(err, study.ErrSessionFinished):
		return "Study session already finished"
	case errors.Is(err, quiz.ErrQuizFinished):
		return "Quiz already finished"
	case errors.Is(err, quiz.ErrNoSelection):
		return "Select an option before moving on"
	case errors.Is(err, quiz.ErrAtFirstQuestion):
		return "Already at the first question"
	case errors.Is(err, quiz.ErrUnknownOption):
		return "Selected option is not one of the choices"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrUpdateFailed),
		errors.Is(err, domain.ErrValidation):
		return "Invalid request data"
	case errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrInvalidDifficultyFilter):
		return "Invalid difficulty value"

	case errors.Is(err, service.ErrGenerationUnavailable):
		return "AI assistance is not configured"
	case errors.Is(err, generation.ErrContentBlocked):
		return "Content was blocked by the language model"
	case errors.Is(err, generation.ErrEmptyNoteContent):
		return "Note has no content to work from"
	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrGenerationFailed):
		return "AI assistance failed, try again later"

	default:
		return "An unexpected error occurred"
	}
}
