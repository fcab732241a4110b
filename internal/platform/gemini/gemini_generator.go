package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/SaagarParikh1/NeuroNotes/internal/config"
	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
	"github.com/SaagarParikh1/NeuroNotes/internal/generation"
)

// Verify interface compliance at compile time
var _ generation.Generator = (*Generator)(nil)

const (
	defaultMaxRetries       = 3
	defaultRetryDelaySecond = 2
)

// Generator implements generation.Generator using Google's Gemini API.
type Generator struct {
	logger *slog.Logger
	config config.LLMConfig
	client *genai.Client
	model  string

	summaryTemplate *template.Template
	cardsTemplate   *template.Template
}

// New creates a Gemini-backed generator. It fails fast on missing
// configuration so a misconfigured deployment surfaces at startup, not on
// the first request.
func New(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	summaryTemplate, err := template.New("summary").Parse(summaryPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse summary template: %v",
			generation.ErrInvalidConfig, err)
	}
	cardsTemplate, err := template.New("cards").Parse(cardsPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse cards template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:          logger.With(slog.String("component", "gemini_generator")),
		config:          cfg,
		client:          client,
		model:           cfg.ModelName,
		summaryTemplate: summaryTemplate,
		cardsTemplate:   cardsTemplate,
	}, nil
}

// Summarize implements generation.Generator.Summarize.
func (g *Generator) Summarize(ctx context.Context, note *domain.Note) (string, error) {
	prompt, err := g.renderPrompt(g.summaryTemplate, note)
	if err != nil {
		return "", err
	}

	raw, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return "", err
	}

	var parsed summarySchema
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return "", fmt.Errorf("%w: failed to parse summary JSON: %v",
			generation.ErrInvalidResponse, err)
	}
	if strings.TrimSpace(parsed.Summary) == "" {
		return "", fmt.Errorf("%w: empty summary", generation.ErrInvalidResponse)
	}
	return parsed.Summary, nil
}

// SuggestCards implements generation.Generator.SuggestCards.
func (g *Generator) SuggestCards(ctx context.Context, note *domain.Note) ([]*domain.Flashcard, error) {
	prompt, err := g.renderPrompt(g.cardsTemplate, note)
	if err != nil {
		return nil, err
	}

	raw, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed cardsSchema
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse cards JSON: %v",
			generation.ErrInvalidResponse, err)
	}
	if len(parsed.Cards) == 0 {
		return nil, fmt.Errorf("%w: no cards suggested", generation.ErrInvalidResponse)
	}

	cards := make([]*domain.Flashcard, 0, len(parsed.Cards))
	for i, suggestion := range parsed.Cards {
		difficulty := domain.Difficulty(suggestion.Difficulty)
		if !difficulty.Valid() {
			difficulty = domain.DifficultyMedium
		}
		card, err := domain.NewFlashcard(
			suggestion.Question, suggestion.Answer, difficulty, &note.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: suggested card %d invalid: %v",
				generation.ErrInvalidResponse, i, err)
		}
		cards = append(cards, card)
	}

	g.logger.InfoContext(ctx, "card suggestions generated",
		slog.String("note_id", note.ID.String()),
		slog.Int("count", len(cards)))
	return cards, nil
}

func (g *Generator) renderPrompt(tmpl *template.Template, note *domain.Note) (string, error) {
	if note == nil {
		return "", errors.New("note cannot be nil")
	}
	if strings.TrimSpace(note.Content) == "" {
		return "", generation.ErrEmptyNoteContent
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{Title: note.Title, Content: note.Content}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// callWithRetry calls the Gemini API with exponential backoff and jitter.
// Transient failures are retried up to the configured limit; malformed or
// safety-blocked responses are returned immediately.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := defaultMaxRetries
	baseDelaySeconds := defaultRetryDelaySecond
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		g.logger.DebugContext(ctx, "calling Gemini API",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", maxRetries+1))

		text, transient, err := g.callOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			slog.Int("attempt", attempt+1),
			slog.Any("error", err))

		if !transient {
			return "", err
		}
		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoff := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5) * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callOnce performs a single API call. The second return reports whether a
// failure is worth retrying.
func (g *Generator) callOnce(ctx context.Context, prompt string) (string, bool, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"})
	if err != nil {
		return "", true, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", false, generation.ErrContentBlocked
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", false, fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}
	return text, false, nil
}
