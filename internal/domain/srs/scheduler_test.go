package srs

import (
	"testing"
	"time"

	"github.com/SaagarParikh1/NeuroNotes/internal/domain"
)

func TestCalculateIntervalDays(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name       string
		difficulty domain.Difficulty
		correct    int
		wasCorrect bool
		expected   float64
	}{
		{
			name:       "wrong answer resets to one day regardless of difficulty",
			difficulty: domain.DifficultyEasy,
			correct:    7,
			wasCorrect: false,
			expected:   1,
		},
		{
			name:       "wrong answer on hard card also one day",
			difficulty: domain.DifficultyHard,
			correct:    0,
			wasCorrect: false,
			expected:   1,
		},
		{
			name:       "easy card doubles per correct answer",
			difficulty: domain.DifficultyEasy,
			correct:    3,
			wasCorrect: true,
			expected:   6, // 3 * 2.0
		},
		{
			name:       "medium card grows by one and a half",
			difficulty: domain.DifficultyMedium,
			correct:    2,
			wasCorrect: true,
			expected:   3, // 2 * 1.5
		},
		{
			name:       "medium card keeps fractional days",
			difficulty: domain.DifficultyMedium,
			correct:    1,
			wasCorrect: true,
			expected:   1.5,
		},
		{
			name:       "hard card grows linearly",
			difficulty: domain.DifficultyHard,
			correct:    4,
			wasCorrect: true,
			expected:   4,
		},
		{
			name:       "floor applies when multiplier yields less than one day",
			difficulty: domain.DifficultyHard,
			correct:    0,
			wasCorrect: true,
			expected:   1, // max(1, 0)
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := calculateIntervalDays(tc.difficulty, tc.correct, tc.wasCorrect, params)
			if got != tc.expected {
				t.Errorf("calculateIntervalDays() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestCalculateNextReview(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	got := calculateNextReview(1.5, now)
	want := now.Add(36 * time.Hour)
	if !got.Equal(want) {
		t.Errorf("calculateNextReview(1.5) = %v, want %v", got, want)
	}

	got = calculateNextReview(1, now)
	want = now.Add(24 * time.Hour)
	if !got.Equal(want) {
		t.Errorf("calculateNextReview(1) = %v, want %v", got, want)
	}
}

func TestCalculateReview(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	card := &domain.Flashcard{
		Difficulty:   domain.DifficultyMedium,
		ReviewCount:  3,
		CorrectCount: 1,
	}

	// Correct answer: counters bump, interval uses updated correct count
	review := calculateReview(card, true, now, params)

	if review.ReviewCount != 4 {
		t.Errorf("Expected review count 4, got %d", review.ReviewCount)
	}
	if review.CorrectCount != 2 {
		t.Errorf("Expected correct count 2, got %d", review.CorrectCount)
	}
	// medium, correctCount'=2 → 3 days
	want := now.Add(3 * 24 * time.Hour)
	if !review.NextReview.Equal(want) {
		t.Errorf("Expected next review %v, got %v", want, review.NextReview)
	}

	// The input card must not be mutated
	if card.ReviewCount != 3 || card.CorrectCount != 1 {
		t.Errorf("Expected card counters untouched, got review=%d correct=%d",
			card.ReviewCount, card.CorrectCount)
	}

	// Same card answered incorrectly instead: one day, correct count unchanged
	review = calculateReview(card, false, now, params)

	if review.ReviewCount != 4 {
		t.Errorf("Expected review count 4, got %d", review.ReviewCount)
	}
	if review.CorrectCount != 1 {
		t.Errorf("Expected correct count 1, got %d", review.CorrectCount)
	}
	want = now.Add(24 * time.Hour)
	if !review.NextReview.Equal(want) {
		t.Errorf("Expected next review %v, got %v", want, review.NextReview)
	}
}

func TestConsecutiveCorrectAnswersGrowTheInterval(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	service := NewServiceWithParams(params)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, difficulty := range []domain.Difficulty{
		domain.DifficultyEasy,
		domain.DifficultyMedium,
		domain.DifficultyHard,
	} {
		card := &domain.Flashcard{
			Difficulty: difficulty,
			NextReview: now,
		}

		prev := now
		for i := 1; i <= 5; i++ {
			review, err := service.Schedule(card, true, now)
			if err != nil {
				t.Fatalf("Schedule() returned error: %v", err)
			}

			if review.ReviewCount != i || review.CorrectCount != i {
				t.Errorf("%s: after %d correct answers got review=%d correct=%d",
					difficulty, i, review.ReviewCount, review.CorrectCount)
			}

			// Next review never moves backwards as correct answers accumulate
			if review.NextReview.Before(prev) {
				t.Errorf("%s: next review %v moved before previous %v",
					difficulty, review.NextReview, prev)
			}
			prev = review.NextReview

			card.ReviewCount = review.ReviewCount
			card.CorrectCount = review.CorrectCount
			card.NextReview = review.NextReview
		}
	}
}

func TestServiceScheduleValidation(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Now().UTC()

	if _, err := service.Schedule(nil, true, now); err != ErrNilCard {
		t.Errorf("Expected error %v, got %v", ErrNilCard, err)
	}

	card := &domain.Flashcard{Difficulty: domain.Difficulty("bogus")}
	if _, err := service.Schedule(card, true, now); err != domain.ErrInvalidDifficulty {
		t.Errorf("Expected error %v, got %v", domain.ErrInvalidDifficulty, err)
	}
}
