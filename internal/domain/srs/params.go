package srs

import (
	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
)

// Params defines all configurable parameters for the spaced repetition
// scheduler. Intervals are expressed in days; fractional values are allowed
// and preserved when converted to concrete durations.
type Params struct {
	// DifficultyMultiplier scales the updated correct count into an interval
	// in days after a correct answer.
	DifficultyMultiplier map[domain.Difficulty]float64

	// MinIntervalDays is the floor applied to every correct-answer interval.
	MinIntervalDays float64

	// WrongIntervalDays is the fixed interval after an incorrect answer,
	// regardless of difficulty or history.
	WrongIntervalDays float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	EasyMultiplier    float64
	MediumMultiplier  float64
	HardMultiplier    float64
	MinIntervalDays   float64
	WrongIntervalDays float64
}

// NewDefaultParams creates a new Params instance with default values.
// The defaults grow intervals fastest for easy cards and slowest for hard
// ones, on the theory that hard material needs more frequent exposure.
func NewDefaultParams() *Params {
	return &Params{
		DifficultyMultiplier: map[domain.Difficulty]float64{
			domain.DifficultyEasy:   2.0,
			domain.DifficultyMedium: 1.5,
			domain.DifficultyHard:   1.0,
		},
		MinIntervalDays:   1,
		WrongIntervalDays: 1,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.EasyMultiplier > 0 {
		params.DifficultyMultiplier[domain.DifficultyEasy] = config.EasyMultiplier
	}
	if config.MediumMultiplier > 0 {
		params.DifficultyMultiplier[domain.DifficultyMedium] = config.MediumMultiplier
	}
	if config.HardMultiplier > 0 {
		params.DifficultyMultiplier[domain.DifficultyHard] = config.HardMultiplier
	}
	if config.MinIntervalDays > 0 {
		params.MinIntervalDays = config.MinIntervalDays
	}
	if config.WrongIntervalDays > 0 {
		params.WrongIntervalDays = config.WrongIntervalDays
	}

	return params
}
