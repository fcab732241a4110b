package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/service"
	"github.com/SaagarParikh1/NeuroNotes/internal/service/quiz"
	"github.com/SaagarParikh1/NeuroNotes/internal/service/study"
)

// Request models

// CreateFlashcardRequest is the request body for creating a flashcard.
type CreateFlashcardRequest struct {
	Question   string     `json:"question" validate:"required"`
	Answer     string     `json:"answer" validate:"required"`
	Difficulty string     `json:"difficulty" validate:"required,oneof=easy medium hard"`
	NoteID     *uuid.UUID `json:"note_id,omitempty"`
}

// UpdateFlashcardRequest is the request body for editing a flashcard's
// content. Difficulty and scheduling state are not editable.
type UpdateFlashcardRequest struct {
	Question *string `json:"question,omitempty"`
	Answer   *string `json:"answer,omitempty"`
}

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Title    string     `json:"title" validate:"required"`
	Content  string     `json:"content"`
	Tags     []string   `json:"tags,omitempty"`
	FolderID *uuid.UUID `json:"folder_id,omitempty"`
}

// UpdateNoteRequest is the request body for a partial note update.
type UpdateNoteRequest struct {
	Title    *string    `json:"title,omitempty"`
	Content  *string    `json:"content,omitempty"`
	Tags     *[]string  `json:"tags,omitempty"`
	FolderID *uuid.UUID `json:"folder_id,omitempty"`
}

// GradeRequest is the request body for grading the current study card.
type GradeRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

// StartQuizRequest is the request body for starting a quiz. Omitted fields
// fall back to the configured defaults.
type StartQuizRequest struct {
	QuestionCount    int    `json:"question_count" validate:"omitempty,min=1"`
	Difficulty       string `json:"difficulty" validate:"omitempty,oneof=easy medium hard mixed"`
	TimeLimitSeconds int    `json:"time_limit_seconds" validate:"omitempty,min=1"`
	ShowHints        bool   `json:"show_hints"`
}

// SelectOptionRequest is the request body for answering a quiz question.
type SelectOptionRequest struct {
	Option string `json:"option" validate:"required"`
}

// Response models

// FlashcardResponse is the API shape of a flashcard.
type FlashcardResponse struct {
	ID           uuid.UUID  `json:"id"`
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	Difficulty   string     `json:"difficulty"`
	NoteID       *uuid.UUID `json:"note_id,omitempty"`
	NextReview   time.Time  `json:"next_review"`
	ReviewCount  int        `json:"review_count"`
	CorrectCount int        `json:"correct_count"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToFlashcardResponse converts a domain flashcard to its API shape.
func ToFlashcardResponse(card *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:           card.ID,
		Question:     card.Question,
		Answer:       card.Answer,
		Difficulty:   string(card.Difficulty),
		NoteID:       card.NoteID,
		NextReview:   card.NextReview,
		ReviewCount:  card.ReviewCount,
		CorrectCount: card.CorrectCount,
		CreatedAt:    card.CreatedAt,
	}
}

// ToFlashcardResponses converts a slice of domain flashcards.
func ToFlashcardResponses(cards []*domain.Flashcard) []FlashcardResponse {
	responses := make([]FlashcardResponse, len(cards))
	for i, card := range cards {
		responses[i] = ToFlashcardResponse(card)
	}
	return responses
}

// NoteResponse is the API shape of a note.
type NoteResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Summary   string     `json:"summary,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	FolderID  *uuid.UUID `json:"folder_id,omitempty"`
	WordCount int        `json:"word_count"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToNoteResponse converts a domain note to its API shape.
func ToNoteResponse(note *domain.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Summary:   note.Summary,
		Tags:      note.Tags,
		FolderID:  note.FolderID,
		WordCount: note.WordCount,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// ToNoteResponses converts a slice of domain notes.
func ToNoteResponses(notes []*domain.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}

// SessionResponse is the API shape of a recorded study session.
type SessionResponse struct {
	ID              uuid.UUID   `json:"id"`
	FlashcardIDs    []uuid.UUID `json:"flashcard_ids"`
	Score           int         `json:"score"`
	DurationSeconds int         `json:"duration_seconds"`
	CompletedAt     time.Time   `json:"completed_at"`
}

// ToSessionResponse converts a recorded session to its API shape.
func ToSessionResponse(session *domain.StudySession) SessionResponse {
	return SessionResponse{
		ID:              session.ID,
		FlashcardIDs:    session.FlashcardIDs,
		Score:           session.Score,
		DurationSeconds: int(session.Duration.Seconds()),
		CompletedAt:     session.CompletedAt,
	}
}

// StudyStateResponse is the API view of a running or finished study session.
type StudyStateResponse struct {
	SessionID    uuid.UUID        `json:"session_id"`
	State        string           `json:"state"`
	CurrentIndex int              `json:"current_index"`
	TotalCards   int              `json:"total_cards"`
	Correct      int              `json:"correct"`
	Incorrect    int              `json:"incorrect"`
	CardID       *uuid.UUID       `json:"card_id,omitempty"`
	Question     string           `json:"question,omitempty"`
	Answer       string           `json:"answer,omitempty"`
	Difficulty   string           `json:"difficulty,omitempty"`
	Result       *SessionResponse `json:"result,omitempty"`
}

// ToStudyStateResponse converts an engine snapshot to its API shape.
func ToStudyStateResponse(sessionID uuid.UUID, snap study.Snapshot) StudyStateResponse {
	resp := StudyStateResponse{
		SessionID:    sessionID,
		State:        string(snap.State),
		CurrentIndex: snap.CurrentIndex,
		TotalCards:   snap.TotalCards,
		Correct:      snap.Correct,
		Incorrect:    snap.Incorrect,
		Question:     snap.Question,
		Answer:       snap.Answer,
		Difficulty:   string(snap.Difficulty),
	}
	if snap.CardID != uuid.Nil {
		cardID := snap.CardID
		resp.CardID = &cardID
	}
	if snap.Session != nil {
		result := ToSessionResponse(snap.Session)
		resp.Result = &result
	}
	return resp
}

// QuizQuestionResponse is the API view of one quiz question.
type QuizQuestionResponse struct {
	CardID     uuid.UUID `json:"card_id"`
	Prompt     string    `json:"prompt"`
	Difficulty string    `json:"difficulty"`
	Options    []string  `json:"options"`
	Selected   string    `json:"selected,omitempty"`
	Answered   bool      `json:"answered"`
	Answer     string    `json:"answer,omitempty"`
	Correct    *bool     `json:"correct,omitempty"`
}

func toQuizQuestionResponse(view quiz.QuestionView, graded bool) QuizQuestionResponse {
	resp := QuizQuestionResponse{
		CardID:     view.CardID,
		Prompt:     view.Prompt,
		Difficulty: string(view.Difficulty),
		Options:    view.Options,
		Selected:   view.Selected,
		Answered:   view.Answered,
		Answer:     view.Answer,
	}
	if graded {
		correct := view.Correct
		resp.Correct = &correct
	}
	return resp
}

// QuizStateResponse is the API view of a running or finished quiz.
type QuizStateResponse struct {
	QuizID           uuid.UUID              `json:"quiz_id"`
	State            string                 `json:"state"`
	CurrentIndex     int                    `json:"current_index"`
	Total            int                    `json:"total"`
	RemainingSeconds int                    `json:"remaining_seconds"`
	ShowHints        bool                   `json:"show_hints"`
	Question         *QuizQuestionResponse  `json:"question,omitempty"`
	Results          []QuizQuestionResponse `json:"results,omitempty"`
	Result           *SessionResponse       `json:"result,omitempty"`
}

// ToQuizStateResponse converts an engine snapshot to its API shape.
func ToQuizStateResponse(quizID uuid.UUID, snap quiz.Snapshot) QuizStateResponse {
	resp := QuizStateResponse{
		QuizID:           quizID,
		State:            string(snap.State),
		CurrentIndex:     snap.CurrentIndex,
		Total:            snap.Total,
		RemainingSeconds: int(snap.Remaining.Seconds()),
		ShowHints:        snap.ShowHints,
	}
	if snap.Question != nil {
		question := toQuizQuestionResponse(*snap.Question, false)
		resp.Question = &question
	}
	if snap.Results != nil {
		resp.Results = make([]QuizQuestionResponse, len(snap.Results))
		for i, view := range snap.Results {
			resp.Results[i] = toQuizQuestionResponse(view, true)
		}
	}
	if snap.Session != nil {
		result := ToSessionResponse(snap.Session)
		resp.Result = &result
	}
	return resp
}

// DashboardResponse aggregates counts for the landing view.
type DashboardResponse struct {
	Cards service.DueCounts `json:"cards"`
	Stats service.Stats     `json:"stats"`
}
