package usecases

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"korean-learning-bot/internal/domain/learning"
	"korean-learning-bot/internal/domain/preferences"
	"korean-learning-bot/internal/infrastructure/logging"
)

var testNow = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return logging.Discard()
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// memoryStore implements the learning repositories in memory
type memoryStore struct {
	mu         sync.Mutex
	progress   map[string][]learning.CardProgress
	daily      map[string]learning.DailyStats
	memos      map[string]map[learning.ItemID]string
	exclusions map[string][]learning.ItemID
	dates      []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		progress:   make(map[string][]learning.CardProgress),
		daily:      make(map[string]learning.DailyStats),
		memos:      make(map[string]map[learning.ItemID]string),
		exclusions: make(map[string][]learning.ItemID),
	}
}

func (s *memoryStore) LoadProgress(ctx context.Context, key string) ([]learning.CardProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, ok := s.progress[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(records), nil
}

func (s *memoryStore) SaveProgress(ctx context.Context, key string, records []learning.CardProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[key] = slices.Clone(records)
	return nil
}

func (s *memoryStore) LoadDailyStats(ctx context.Context, key string) (*learning.DailyStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, ok := s.daily[key]
	if !ok {
		return nil, nil
	}
	return &stats, nil
}

func (s *memoryStore) SaveDailyStats(ctx context.Context, key string, stats learning.DailyStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daily[key] = stats
	return nil
}

func (s *memoryStore) Remove(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.progress, key)
		delete(s.daily, key)
	}
	return nil
}

func (s *memoryStore) LoadMemos(ctx context.Context, key string) (map[learning.ItemID]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.memos[key]), nil
}

func (s *memoryStore) SaveMemos(ctx context.Context, key string, memos map[learning.ItemID]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memos[key] = maps.Clone(memos)
	return nil
}

func (s *memoryStore) LoadExclusions(ctx context.Context, key string) ([]learning.ItemID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.exclusions[key]), nil
}

func (s *memoryStore) SaveExclusions(ctx context.Context, key string, ids []learning.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exclusions[key] = slices.Clone(ids)
	return nil
}

func (s *memoryStore) LoadPracticeDates(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.dates), nil
}

func (s *memoryStore) AddPracticeDate(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.dates, date) {
		s.dates = append(s.dates, date)
		slices.Sort(s.dates)
	}
	return nil
}

// memorySnapshots implements SnapshotStore
type memorySnapshots struct {
	values   map[string]json.RawMessage
	writeErr error
}

func (s *memorySnapshots) Dump(ctx context.Context) (map[string]json.RawMessage, error) {
	return maps.Clone(s.values), nil
}

func (s *memorySnapshots) SetAll(ctx context.Context, values map[string]json.RawMessage) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	maps.Copy(s.values, values)
	return nil
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendMessageWithMarkdown(chatID int64, text string) error {
	args := m.Called(chatID, text)
	return args.Error(0)
}

type mockDueCounter struct {
	mock.Mock
}

func (m *mockDueCounter) DueCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockPreferencesRepository struct {
	mock.Mock
}

func (m *mockPreferencesRepository) Load(ctx context.Context) (*preferences.Preferences, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*preferences.Preferences), args.Error(1)
}

func (m *mockPreferencesRepository) Save(ctx context.Context, prefs *preferences.Preferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}
