package learning

import "context"

// Repository persists whole progress collections and daily stats, each under
// its own storage key. Decks never share keys.
type Repository interface {
	// LoadProgress returns nil when nothing is stored under key
	LoadProgress(ctx context.Context, key string) ([]CardProgress, error)

	SaveProgress(ctx context.Context, key string, records []CardProgress) error

	// LoadDailyStats returns nil when nothing is stored under key
	LoadDailyStats(ctx context.Context, key string) (*DailyStats, error)

	SaveDailyStats(ctx context.Context, key string, stats DailyStats) error

	// Remove deletes the values stored under keys
	Remove(ctx context.Context, keys ...string) error
}

// NotesRepository stores per-item memos and the items hidden from the difficult list.
type NotesRepository interface {
	LoadMemos(ctx context.Context, key string) (map[ItemID]string, error)
	SaveMemos(ctx context.Context, key string, memos map[ItemID]string) error
	LoadExclusions(ctx context.Context, key string) ([]ItemID, error)
	SaveExclusions(ctx context.Context, key string, ids []ItemID) error
}

// ActivityRepository records the calendar days the learner practiced on, across decks.
type ActivityRepository interface {
	LoadPracticeDates(ctx context.Context) ([]string, error)
	AddPracticeDate(ctx context.Context, date string) error
}
