package persistence

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"korean-learning-bot/internal/domain/grammar"
	"korean-learning-bot/internal/domain/learning"
	"korean-learning-bot/internal/domain/vocabulary"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLearningRepository_ProgressRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewLearningRepository(NewKVStore(openTestDB(t)))

	missing, err := repo.LoadProgress(ctx, "flashcard-progress")
	require.NoError(t, err)
	assert.Nil(t, missing)

	reviewed := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	records := []learning.CardProgress{
		{ItemID: 1, State: learning.StateReview, EaseFactor: 1.4, Interval: 7, DueDate: reviewed.AddDate(0, 0, 7), LastReview: &reviewed},
		{ItemID: 2, State: learning.StateNew, EaseFactor: 1.4, DueDate: reviewed},
	}
	require.NoError(t, repo.SaveProgress(ctx, "flashcard-progress", records))

	loaded, err := repo.LoadProgress(ctx, "flashcard-progress")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, learning.StateReview, loaded[0].State)
	assert.True(t, loaded[0].DueDate.Equal(records[0].DueDate))
	require.NotNil(t, loaded[0].LastReview)
	assert.Nil(t, loaded[1].LastReview)

	require.NoError(t, repo.SaveProgress(ctx, "flashcard-progress", records[:1]))
	loaded, err = repo.LoadProgress(ctx, "flashcard-progress")
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestLearningRepository_DailyStatsAndRemove(t *testing.T) {
	ctx := context.Background()
	repo := NewLearningRepository(NewKVStore(openTestDB(t)))

	stats := learning.DailyStats{Date: "2024-03-10", NewCardsStudied: 2, CorrectCount: 2}
	require.NoError(t, repo.SaveDailyStats(ctx, "grammar-today-stats", stats))
	require.NoError(t, repo.SaveProgress(ctx, "grammar-progress", []learning.CardProgress{{ItemID: 1}}))

	loaded, err := repo.LoadDailyStats(ctx, "grammar-today-stats")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, stats, *loaded)

	require.NoError(t, repo.Remove(ctx, "grammar-progress", "grammar-today-stats"))

	loaded, err = repo.LoadDailyStats(ctx, "grammar-today-stats")
	require.NoError(t, err)
	assert.Nil(t, loaded)
	progress, err := repo.LoadProgress(ctx, "grammar-progress")
	require.NoError(t, err)
	assert.Nil(t, progress)
}

func TestNotesRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepository(NewKVStore(openTestDB(t)))

	memos, err := repo.LoadMemos(ctx, "word-memos")
	require.NoError(t, err)
	assert.Empty(t, memos)

	require.NoError(t, repo.SaveMemos(ctx, "word-memos", map[learning.ItemID]string{3: "받침 주의"}))
	memos, err = repo.LoadMemos(ctx, "word-memos")
	require.NoError(t, err)
	assert.Equal(t, map[learning.ItemID]string{3: "받침 주의"}, memos)

	require.NoError(t, repo.SaveExclusions(ctx, "difficult-words-excluded", []learning.ItemID{4, 9}))
	ids, err := repo.LoadExclusions(ctx, "difficult-words-excluded")
	require.NoError(t, err)
	assert.Equal(t, []learning.ItemID{4, 9}, ids)
}

func TestActivityRepository_AddPracticeDate(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(NewKVStore(openTestDB(t)))

	require.NoError(t, repo.AddPracticeDate(ctx, "2024-03-10"))
	require.NoError(t, repo.AddPracticeDate(ctx, "2024-03-09"))
	require.NoError(t, repo.AddPracticeDate(ctx, "2024-03-10"))

	dates, err := repo.LoadPracticeDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-09", "2024-03-10"}, dates)
}

func TestPreferencesRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferencesRepository(NewKVStore(openTestDB(t)))

	prefs, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, prefs.RemindersEnabled())

	prefs.ToggleReminders()
	prefs.SetActiveDeck("grammar")
	require.NoError(t, repo.Save(ctx, prefs))

	prefs, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, prefs.RemindersEnabled())
	assert.Equal(t, "grammar", prefs.ActiveDeck())
}

func TestKVStore_Dump(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore(openTestDB(t))

	require.NoError(t, store.Set(ctx, "b", []int{1}))
	require.NoError(t, store.Set(ctx, "a", json.RawMessage(`{"x": true}`)))

	values, err := store.Dump(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x": true}`, string(values["a"]))
	assert.JSONEq(t, `[1]`, string(values["b"]))
}

func TestKVStore_SetAll(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore(openTestDB(t))
	require.NoError(t, store.Set(ctx, "a", []int{1}))

	require.NoError(t, store.SetAll(ctx, map[string]json.RawMessage{
		"a": json.RawMessage(`[2]`),
		"b": json.RawMessage(`{"x": 1}`),
	}))
	values, err := store.Dump(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[2]`, string(values["a"]))
	assert.JSONEq(t, `{"x": 1}`, string(values["b"]))

	// "c" sorts after "b" and does not encode, so the write of "b" is rolled back
	err = store.SetAll(ctx, map[string]json.RawMessage{
		"b": json.RawMessage(`{"x": 2}`),
		"c": json.RawMessage(`{broken`),
	})
	assert.ErrorContains(t, err, "failed to encode c")

	values, err = store.Dump(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x": 1}`, string(values["b"]))
	assert.NotContains(t, values, "c")
}

func TestVocabularyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewVocabularyRepository(openTestDB(t))

	words := []*vocabulary.Word{
		vocabulary.NewWord(2, "물", "水", vocabulary.LevelBeginner),
		vocabulary.NewWord(1, "사과", "りんご", vocabulary.LevelBeginner),
		vocabulary.NewWord(1, "경제", "経済", vocabulary.LevelIntermediate),
	}
	require.NoError(t, repo.SaveBatch(ctx, words))
	require.NoError(t, repo.SaveBatch(ctx, []*vocabulary.Word{vocabulary.NewWord(2, "물", "お水", vocabulary.LevelBeginner)}))

	beginner, err := repo.FindByLevel(ctx, vocabulary.LevelBeginner)
	require.NoError(t, err)
	require.Len(t, beginner, 2)
	assert.Equal(t, "사과", beginner[0].Korean())
	assert.Equal(t, "お水", beginner[1].Japanese())

	count, err := repo.Count(ctx, vocabulary.LevelIntermediate)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	word, err := repo.FindByID(ctx, vocabulary.LevelIntermediate, 1)
	require.NoError(t, err)
	require.NotNil(t, word)
	assert.Equal(t, "경제", word.Korean())

	missing, err := repo.FindByID(ctx, vocabulary.LevelIntermediate, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGrammarRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGrammarRepository(openTestDB(t))

	require.NoError(t, repo.SaveBatch(ctx, []*grammar.Item{
		grammar.NewItem(1, "-고 싶다", "〜したい", "가고 싶어요.", "行きたいです。", grammar.LevelBeginner),
	}))

	items, err := repo.FindByLevel(ctx, grammar.LevelBeginner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "가고 싶어요.", items[0].ExampleKo())
	assert.True(t, items[0].HasExample())

	item, err := repo.FindByID(ctx, grammar.LevelIntermediate, 1)
	require.NoError(t, err)
	assert.Nil(t, item)
}
