// Package gemini implements the generation interface using Google's Gemini
// API.
package gemini

// promptData represents the data passed to the prompt templates
type promptData struct {
	Title   string
	Content string
}

// summarySchema is the expected JSON shape of a summarization response
type summarySchema struct {
	Summary string `json:"summary"`
}

// cardsSchema is the expected JSON shape of a card suggestion response
type cardsSchema struct {
	Cards []cardSchema `json:"cards"`
}

// cardSchema represents a single suggested flashcard in the API response
type cardSchema struct {
	// Question is the prompt side of the flashcard
	Question string `json:"question"`

	// Answer is the answer side of the flashcard
	Answer string `json:"answer"`

	// Difficulty is the model's difficulty estimate: easy, medium or hard
	Difficulty string `json:"difficulty,omitempty"`
}
