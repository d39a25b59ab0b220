package learning

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

// MinimumEase is the floor no lapse can push a card's ease factor below.
const MinimumEase = 1.3

// Settings are the fixed scheduling parameters of one deck.
type Settings struct {
	LearningSteps       []int   `yaml:"learning_steps" json:"learningSteps" validate:"required,min=1,dive,gt=0"`
	RelearningSteps     []int   `yaml:"relearning_steps" json:"relearningSteps" validate:"required,min=1,dive,gt=0"`
	GraduatingInterval  int     `yaml:"graduating_interval" json:"graduatingInterval" validate:"gt=0"`
	StartingEase        float64 `yaml:"starting_ease" json:"startingEase" validate:"gte=1.3"`
	MaximumInterval     int     `yaml:"maximum_interval" json:"maximumInterval" validate:"gt=0,gtefield=GraduatingInterval"`
	MinimumInterval     int     `yaml:"minimum_interval" json:"minimumInterval" validate:"gt=0,ltefield=MaximumInterval"`
	LapseEasePenalty    float64 `yaml:"lapse_ease_penalty" json:"lapseEasePenalty" validate:"gte=0"`
	LapseIntervalFactor float64 `yaml:"lapse_interval_factor" json:"lapseIntervalFactor" validate:"gt=0,lte=1"`
	RelearnOnLapse      bool    `yaml:"relearn_on_lapse" json:"relearnOnLapse"`
	NewCardsPerDay      int     `yaml:"new_cards_per_day" json:"newCardsPerDay" validate:"gte=0"`
	MaxReviewsPerDay    int     `yaml:"max_reviews_per_day" json:"maxReviewsPerDay" validate:"gt=0"`
}

// DefaultSettings favours frequent reviews: 7 days after graduation, capped at 120.
func DefaultSettings() Settings {
	return Settings{
		LearningSteps:       []int{10, 1440, 4320},
		RelearningSteps:     []int{10, 1440},
		GraduatingInterval:  7,
		StartingEase:        1.4,
		MaximumInterval:     120,
		MinimumInterval:     1,
		LapseEasePenalty:    0.2,
		LapseIntervalFactor: 0.5,
		RelearnOnLapse:      true,
		NewCardsPerDay:      200,
		MaxReviewsPerDay:    9999,
	}
}

var validate = validator.New()

// Validate reports settings the scheduler cannot run with. Call it once when a deck is configured.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if !slices.IsSorted(s.LearningSteps) {
		return fmt.Errorf("%w: learning steps must be ascending", ErrInvalidSettings)
	}
	if !slices.IsSorted(s.RelearningSteps) {
		return fmt.Errorf("%w: relearning steps must be ascending", ErrInvalidSettings)
	}
	return nil
}

// grownInterval is the interval after a successful review.
func (s Settings) grownInterval(interval int, ease float64) int {
	grown := int(roundHalfUp(float64(interval) * ease))
	return max(s.MinimumInterval, min(s.MaximumInterval, grown))
}

// lapsedInterval is the interval a lapsed card returns to review with.
func (s Settings) lapsedInterval(interval int) int {
	shrunk := int(roundHalfUp(float64(interval) * s.LapseIntervalFactor))
	return max(s.MinimumInterval, min(s.MaximumInterval, shrunk))
}
