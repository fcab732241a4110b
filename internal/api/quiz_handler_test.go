package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaagarParikh1/NeuroNotes/internal/api"
	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
)

// answerCurrent selects an option for the current question, the correct one
// when correct is true. Question order is shuffled, so answers are looked up
// by prompt.
func answerCurrent(
	t *testing.T,
	ts *testServer,
	quizPath string,
	state *api.QuizStateResponse,
	answers map[string]string,
	correct bool,
) {
	t.Helper()
	require.NotNil(t, state.Question)

	want := answers[state.Question.Prompt]
	option := ""
	for _, candidate := range state.Question.Options {
		if correct && candidate == want {
			option = candidate
			break
		}
		if !correct && candidate != want {
			option = candidate
			break
		}
	}
	require.NotEmpty(t, option, "no suitable option for %q", state.Question.Prompt)

	rec := ts.do(t, http.MethodPost, quizPath+"/answer",
		api.SelectOptionRequest{Option: option}, state)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, state.Question.Answered)
}

func seedQuizCards(t *testing.T, ts *testServer) map[string]string {
	t.Helper()
	ts.seedCard(t, "capital of France", "Paris", domain.DifficultyEasy)
	ts.seedCard(t, "capital of Italy", "Rome", domain.DifficultyMedium)
	ts.seedCard(t, "capital of Spain", "Madrid", domain.DifficultyMedium)
	ts.seedCard(t, "capital of Germany", "Berlin", domain.DifficultyHard)
	return map[string]string{
		"capital of France":  "Paris",
		"capital of Italy":   "Rome",
		"capital of Spain":   "Madrid",
		"capital of Germany": "Berlin",
	}
}

func TestQuizFullFlow(t *testing.T) {
	ts := newTestServer(t, nil)
	answers := seedQuizCards(t, ts)

	var state api.QuizStateResponse
	rec := ts.do(t, http.MethodPost, "/api/quizzes", api.StartQuizRequest{
		QuestionCount:    4,
		TimeLimitSeconds: 300,
	}, &state)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "IN_PROGRESS", state.State)
	assert.Equal(t, 4, state.Total)
	assert.Equal(t, 300, state.RemainingSeconds)
	require.NotNil(t, state.Question)
	assert.NotEmpty(t, state.Question.Options)
	assert.Empty(t, state.Question.Answer, "answer key must stay hidden during the quiz")

	quizPath := "/api/quizzes/" + state.QuizID.String()
	grades := []bool{true, true, true, false}
	for i, correct := range grades {
		answerCurrent(t, ts, quizPath, &state, answers, correct)
		if i < len(grades)-1 {
			rec = ts.do(t, http.MethodPost, quizPath+"/next", nil, &state)
			require.Equal(t, http.StatusOK, rec.Code)
		}
	}

	rec = ts.do(t, http.MethodPost, quizPath+"/finish", nil, &state)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "COMPLETE", state.State)
	require.NotNil(t, state.Result)
	assert.Equal(t, 75, state.Result.Score)
	require.Len(t, state.Results, 4)
	for _, result := range state.Results {
		assert.NotEmpty(t, result.Answer)
		require.NotNil(t, result.Correct)
	}

	var sessions []api.SessionResponse
	rec = ts.do(t, http.MethodGet, "/api/sessions", nil, &sessions)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sessions, 1)
	assert.Equal(t, 75, sessions[0].Score)
}

func TestQuizDifficultyFilter(t *testing.T) {
	ts := newTestServer(t, nil)
	seedQuizCards(t, ts)

	var state api.QuizStateResponse
	rec := ts.do(t, http.MethodPost, "/api/quizzes", api.StartQuizRequest{
		QuestionCount: 10,
		Difficulty:    "medium",
	}, &state)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, state.Total)
	require.NotNil(t, state.Question)
	assert.Equal(t, "medium", state.Question.Difficulty)
}

func TestQuizWithNoMatchingCards(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.seedCard(t, "easy question", "easy answer", domain.DifficultyEasy)

	var state api.QuizStateResponse
	rec := ts.do(t, http.MethodPost, "/api/quizzes", api.StartQuizRequest{
		Difficulty: "hard",
	}, &state)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "NO_QUESTIONS_AVAILABLE", state.State)
}

func TestQuizRejectsInvalidDifficulty(t *testing.T) {
	ts := newTestServer(t, nil)
	seedQuizCards(t, ts)

	rec := ts.do(t, http.MethodPost, "/api/quizzes", api.StartQuizRequest{
		Difficulty: "brutal",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuizNextRequiresSelection(t *testing.T) {
	ts := newTestServer(t, nil)
	seedQuizCards(t, ts)

	var state api.QuizStateResponse
	rec := ts.do(t, http.MethodPost, "/api/quizzes", api.StartQuizRequest{QuestionCount: 2}, &state)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/quizzes/"+state.QuizID.String()+"/next", nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestQuizRejectsUnknownOption(t *testing.T) {
	ts := newTestServer(t, nil)
	seedQuizCards(t, ts)

	var state api.QuizStateResponse
	rec := ts.do(t, http.MethodPost, "/api/quizzes", api.StartQuizRequest{QuestionCount: 2}, &state)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/quizzes/"+state.QuizID.String()+"/answer",
		api.SelectOptionRequest{Option: "not one of the options"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuizExpiryFoldedIntoReads(t *testing.T) {
	ts := newTestServer(t, nil)
	seedQuizCards(t, ts)

	var state api.QuizStateResponse
	rec := ts.do(t, http.MethodPost, "/api/quizzes", api.StartQuizRequest{
		QuestionCount:    4,
		TimeLimitSeconds: 60,
	}, &state)
	require.Equal(t, http.StatusCreated, rec.Code)

	ts.clock.Advance(2 * time.Minute)

	rec = ts.do(t, http.MethodGet, "/api/quizzes/"+state.QuizID.String(), nil, &state)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "COMPLETE", state.State)
	assert.Equal(t, 0, state.RemainingSeconds)
	require.NotNil(t, state.Result)
	assert.Equal(t, 0, state.Result.Score)
}

func TestQuizDoesNotTouchScheduling(t *testing.T) {
	ts := newTestServer(t, nil)
	card := ts.seedCard(t, "capital of France", "Paris", domain.DifficultyEasy)
	ts.seedCard(t, "capital of Italy", "Rome", domain.DifficultyEasy)
	answers := map[string]string{
		"capital of France": "Paris",
		"capital of Italy":  "Rome",
	}

	var state api.QuizStateResponse
	rec := ts.do(t, http.MethodPost, "/api/quizzes", api.StartQuizRequest{QuestionCount: 2}, &state)
	require.Equal(t, http.StatusCreated, rec.Code)

	quizPath := "/api/quizzes/" + state.QuizID.String()
	answerCurrent(t, ts, quizPath, &state, answers, true)
	rec = ts.do(t, http.MethodPost, quizPath+"/finish", nil, &state)
	require.Equal(t, http.StatusOK, rec.Code)

	var after api.FlashcardResponse
	rec = ts.do(t, http.MethodGet, "/api/flashcards/"+card.ID.String(), nil, &after)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, after.ReviewCount)
	assert.True(t, after.NextReview.Equal(card.NextReview))
}

func TestQuizAbandon(t *testing.T) {
	ts := newTestServer(t, nil)
	seedQuizCards(t, ts)

	var state api.QuizStateResponse
	rec := ts.do(t, http.MethodPost, "/api/quizzes", api.StartQuizRequest{QuestionCount: 2}, &state)
	require.Equal(t, http.StatusCreated, rec.Code)

	quizPath := "/api/quizzes/" + state.QuizID.String()
	rec = ts.do(t, http.MethodDelete, quizPath, nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, quizPath, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var sessions []api.SessionResponse
	rec = ts.do(t, http.MethodGet, "/api/sessions", nil, &sessions)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, sessions)
}
