// Package config defines the application configuration structure and loading
// logic. Values come from a config.yaml file and NEURONOTES_-prefixed
// environment variables, with environment variables taking precedence.
package config

import "time"

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Study    StudyConfig    `mapstructure:"study"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the TCP port the HTTP server listens on.
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`

	// LogLevel controls the minimum level emitted by the structured logger.
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DatabaseConfig holds persistence settings. An empty URL selects the
// in-memory stores, which lose everything on restart.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// StudyConfig tunes the study session engine.
type StudyConfig struct {
	// CatchUpLimit caps the fallback batch used when no cards are due.
	// Zero keeps the engine default.
	CatchUpLimit int `mapstructure:"catch_up_limit" validate:"omitempty,min=1"`
}

// QuizConfig holds the defaults applied when a quiz request omits a field.
type QuizConfig struct {
	DefaultQuestionCount int           `mapstructure:"default_question_count" validate:"required,min=1"`
	DefaultTimeLimit     time.Duration `mapstructure:"default_time_limit" validate:"required,min=1s"`
}

// LLMConfig holds settings for AI note summarization and card suggestions.
// An empty API key disables those endpoints.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name" validate:"required"`
}
