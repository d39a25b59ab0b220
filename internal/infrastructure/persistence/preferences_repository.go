package persistence

import (
	"context"
	"fmt"

	"korean-learning-bot/internal/domain/preferences"
)

// PreferencesKey stores the learner's preferences
const PreferencesKey = "preferences"

type preferencesRepository struct {
	store *KVStore
}

// NewPreferencesRepository creates a new preferences repository
func NewPreferencesRepository(store *KVStore) preferences.Repository {
	return &preferencesRepository{store: store}
}

// Load retrieves the stored preferences on top of the defaults
func (r *preferencesRepository) Load(ctx context.Context) (*preferences.Preferences, error) {
	values := make(map[string]string)
	if _, err := r.store.Get(ctx, PreferencesKey, &values); err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return preferences.FromMap(values), nil
}

// Save saves preferences
func (r *preferencesRepository) Save(ctx context.Context, prefs *preferences.Preferences) error {
	if err := r.store.Set(ctx, PreferencesKey, prefs.All()); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
