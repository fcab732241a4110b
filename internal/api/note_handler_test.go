package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaagarParikh1/NeuroNotes/internal/api"
	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
)

func TestNoteCreateAndUpdate(t *testing.T) {
	ts := newTestServer(t, nil)

	var created api.NoteResponse
	rec := ts.do(t, http.MethodPost, "/api/notes", api.CreateNoteRequest{
		Title:   "Cell Biology",
		Content: "Mitochondria produce ATP through cellular respiration",
		Tags:    []string{"biology"},
	}, &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Cell Biology", created.Title)
	assert.Equal(t, 6, created.WordCount)
	assert.Equal(t, []string{"biology"}, created.Tags)

	newContent := "Mitochondria produce ATP"
	var updated api.NoteResponse
	rec = ts.do(t, http.MethodPatch, "/api/notes/"+created.ID.String(),
		api.UpdateNoteRequest{Content: &newContent}, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cell Biology", updated.Title)
	assert.Equal(t, newContent, updated.Content)
	assert.Equal(t, 3, updated.WordCount)
}

func TestNoteCreateRequiresTitle(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/notes", api.CreateNoteRequest{
		Content: "body without a title",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNoteDeleteRemovesLinkedCards(t *testing.T) {
	ts := newTestServer(t, nil)

	var note api.NoteResponse
	rec := ts.do(t, http.MethodPost, "/api/notes", api.CreateNoteRequest{
		Title: "Linked note",
	}, &note)
	require.Equal(t, http.StatusCreated, rec.Code)

	linked, err := domain.NewFlashcard("linked question", "linked answer",
		domain.DifficultyMedium, &note.ID)
	require.NoError(t, err)
	require.NoError(t, ts.cards.Create(context.Background(), linked))
	unlinked := ts.seedCard(t, "free question", "free answer", domain.DifficultyMedium)

	rec = ts.do(t, http.MethodDelete, "/api/notes/"+note.ID.String(), nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var cards []api.FlashcardResponse
	rec = ts.do(t, http.MethodGet, "/api/flashcards", nil, &cards)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, cards, 1)
	assert.Equal(t, unlinked.ID, cards[0].ID)
}

func TestNoteSummarize(t *testing.T) {
	ts := newTestServer(t, &stubGenerator{summary: "Short summary."})

	var note api.NoteResponse
	rec := ts.do(t, http.MethodPost, "/api/notes", api.CreateNoteRequest{
		Title:   "Long note",
		Content: "A long body of study material.",
	}, &note)
	require.Equal(t, http.StatusCreated, rec.Code)

	var summarized api.NoteResponse
	rec = ts.do(t, http.MethodPost, "/api/notes/"+note.ID.String()+"/summarize", nil, &summarized)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Short summary.", summarized.Summary)

	// The summary is persisted, not just echoed.
	var fetched api.NoteResponse
	rec = ts.do(t, http.MethodGet, "/api/notes/"+note.ID.String(), nil, &fetched)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Short summary.", fetched.Summary)
}

func TestNoteSummarizeWithoutGenerator(t *testing.T) {
	ts := newTestServer(t, nil)

	var note api.NoteResponse
	rec := ts.do(t, http.MethodPost, "/api/notes", api.CreateNoteRequest{
		Title: "No AI configured",
	}, &note)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/notes/"+note.ID.String()+"/summarize", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNoteGenerateCards(t *testing.T) {
	ts := newTestServer(t, &stubGenerator{})

	var note api.NoteResponse
	rec := ts.do(t, http.MethodPost, "/api/notes", api.CreateNoteRequest{
		Title:   "Source note",
		Content: "Material to turn into flashcards.",
	}, &note)
	require.Equal(t, http.StatusCreated, rec.Code)

	var generated []api.FlashcardResponse
	rec = ts.do(t, http.MethodPost, "/api/notes/"+note.ID.String()+"/flashcards", nil, &generated)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, generated, 1)
	require.NotNil(t, generated[0].NoteID)
	assert.Equal(t, note.ID, *generated[0].NoteID)

	var cards []api.FlashcardResponse
	rec = ts.do(t, http.MethodGet, "/api/flashcards", nil, &cards)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, cards, 1)
}
