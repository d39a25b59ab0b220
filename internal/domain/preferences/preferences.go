package preferences

import (
	"context"
	"strconv"
)

// Preference keys constants
const (
	PrefActiveDeck       = "active_deck"
	PrefRemindersEnabled = "reminders_enabled"
	PrefShowExamples     = "show_examples"
)

// Preferences holds the learner's settings as string key/value pairs
type Preferences struct {
	values map[string]string
}

// New creates preferences with default values
func New() *Preferences {
	return &Preferences{
		values: map[string]string{
			PrefRemindersEnabled: "true",
			PrefShowExamples:     "true",
		},
	}
}

// FromMap restores preferences from storage on top of the defaults
func FromMap(values map[string]string) *Preferences {
	p := New()
	for key, value := range values {
		p.values[key] = value
	}
	return p
}

func (p *Preferences) GetBool(key string) bool {
	value, exists := p.values[key]
	if !exists {
		return false
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return boolValue
}

func (p *Preferences) SetBool(key string, value bool) {
	p.values[key] = strconv.FormatBool(value)
}

func (p *Preferences) GetString(key string) string {
	return p.values[key]
}

func (p *Preferences) SetString(key, value string) {
	p.values[key] = value
}

// All returns a copy of every stored value
func (p *Preferences) All() map[string]string {
	out := make(map[string]string, len(p.values))
	for key, value := range p.values {
		out[key] = value
	}
	return out
}

// Convenience methods for known preferences
func (p *Preferences) ActiveDeck() string {
	return p.GetString(PrefActiveDeck)
}

func (p *Preferences) SetActiveDeck(key string) {
	p.SetString(PrefActiveDeck, key)
}

func (p *Preferences) RemindersEnabled() bool {
	return p.GetBool(PrefRemindersEnabled)
}

func (p *Preferences) ToggleReminders() bool {
	newValue := !p.RemindersEnabled()
	p.SetBool(PrefRemindersEnabled, newValue)
	return newValue
}

func (p *Preferences) ShowExamples() bool {
	return p.GetBool(PrefShowExamples)
}

func (p *Preferences) ToggleExamples() bool {
	newValue := !p.ShowExamples()
	p.SetBool(PrefShowExamples, newValue)
	return newValue
}

// Repository handles preferences persistence
type Repository interface {
	// Load returns defaults when nothing was saved yet
	Load(ctx context.Context) (*Preferences, error)

	Save(ctx context.Context, prefs *Preferences) error
}
