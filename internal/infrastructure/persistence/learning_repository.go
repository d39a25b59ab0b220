package persistence

import (
	"context"
	"fmt"
	"slices"

	"korean-learning-bot/internal/domain/learning"
)

// PracticeDatesKey stores the days with at least one answer, shared by all decks
const PracticeDatesKey = "practice-dates"

type learningRepository struct {
	store *KVStore
}

// NewLearningRepository creates a progress repository on the key-value store
func NewLearningRepository(store *KVStore) learning.Repository {
	return &learningRepository{store: store}
}

// LoadProgress retrieves a deck's progress collection
func (r *learningRepository) LoadProgress(ctx context.Context, key string) ([]learning.CardProgress, error) {
	var records []learning.CardProgress
	found, err := r.store.Get(ctx, key, &records)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	if !found {
		return nil, nil
	}
	return records, nil
}

// SaveProgress replaces a deck's progress collection
func (r *learningRepository) SaveProgress(ctx context.Context, key string, records []learning.CardProgress) error {
	if records == nil {
		records = []learning.CardProgress{}
	}
	if err := r.store.Set(ctx, key, records); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (r *learningRepository) LoadDailyStats(ctx context.Context, key string) (*learning.DailyStats, error) {
	var stats learning.DailyStats
	found, err := r.store.Get(ctx, key, &stats)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily stats: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &stats, nil
}

func (r *learningRepository) SaveDailyStats(ctx context.Context, key string, stats learning.DailyStats) error {
	if err := r.store.Set(ctx, key, stats); err != nil {
		return fmt.Errorf("failed to save daily stats: %w", err)
	}
	return nil
}

func (r *learningRepository) Remove(ctx context.Context, keys ...string) error {
	return r.store.Remove(ctx, keys...)
}

type notesRepository struct {
	store *KVStore
}

// NewNotesRepository creates a memo and exclusion repository on the key-value store
func NewNotesRepository(store *KVStore) learning.NotesRepository {
	return &notesRepository{store: store}
}

func (r *notesRepository) LoadMemos(ctx context.Context, key string) (map[learning.ItemID]string, error) {
	memos := make(map[learning.ItemID]string)
	if _, err := r.store.Get(ctx, key, &memos); err != nil {
		return nil, fmt.Errorf("failed to load memos: %w", err)
	}
	return memos, nil
}

func (r *notesRepository) SaveMemos(ctx context.Context, key string, memos map[learning.ItemID]string) error {
	if err := r.store.Set(ctx, key, memos); err != nil {
		return fmt.Errorf("failed to save memos: %w", err)
	}
	return nil
}

func (r *notesRepository) LoadExclusions(ctx context.Context, key string) ([]learning.ItemID, error) {
	var ids []learning.ItemID
	if _, err := r.store.Get(ctx, key, &ids); err != nil {
		return nil, fmt.Errorf("failed to load exclusions: %w", err)
	}
	return ids, nil
}

func (r *notesRepository) SaveExclusions(ctx context.Context, key string, ids []learning.ItemID) error {
	if ids == nil {
		ids = []learning.ItemID{}
	}
	if err := r.store.Set(ctx, key, ids); err != nil {
		return fmt.Errorf("failed to save exclusions: %w", err)
	}
	return nil
}

type activityRepository struct {
	store *KVStore
}

// NewActivityRepository creates a practice calendar repository on the key-value store
func NewActivityRepository(store *KVStore) learning.ActivityRepository {
	return &activityRepository{store: store}
}

func (r *activityRepository) LoadPracticeDates(ctx context.Context) ([]string, error) {
	var dates []string
	if _, err := r.store.Get(ctx, PracticeDatesKey, &dates); err != nil {
		return nil, fmt.Errorf("failed to load practice dates: %w", err)
	}
	return dates, nil
}

// AddPracticeDate stores date once, keeping the list sorted
func (r *activityRepository) AddPracticeDate(ctx context.Context, date string) error {
	dates, err := r.LoadPracticeDates(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(dates, date) {
		return nil
	}

	dates = append(dates, date)
	slices.Sort(dates)
	if err := r.store.Set(ctx, PracticeDatesKey, dates); err != nil {
		return fmt.Errorf("failed to save practice dates: %w", err)
	}
	return nil
}
