package learning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyStats_RecordAndRollover(t *testing.T) {
	var s DailyStats
	s = s.ForDate("2024-03-10")
	s = s.Record(StateNew, GradeGood)
	s = s.Record(StateReview, GradeAgain)
	s = s.Record(StateLearning, GradeGood)

	assert.Equal(t, DailyStats{
		Date:             "2024-03-10",
		NewCardsStudied:  1,
		ReviewsCompleted: 2,
		CorrectCount:     2,
		IncorrectCount:   1,
	}, s)

	assert.Equal(t, s, s.ForDate("2024-03-10"))
	assert.Equal(t, DailyStats{Date: "2024-03-11"}, s.ForDate("2024-03-11"))
}

func TestComputeTodayStats(t *testing.T) {
	s := DefaultSettings()
	s.NewCardsPerDay = 5
	q := Queue{
		Due:      make([]CardProgress, 2),
		New:      make([]CardProgress, 5),
		Learning: make([]CardProgress, 1),
	}

	got := ComputeTodayStats(q, DailyStats{NewCardsStudied: 3, ReviewsCompleted: 4}, s)

	assert.Equal(t, TodayStats{
		NewCardsRemaining:      2,
		ReviewCardsRemaining:   2,
		LearningCardsRemaining: 1,
		CompletedToday:         7,
	}, got)
	assert.Equal(t, 5, got.Remaining())

	exhausted := ComputeTodayStats(q, DailyStats{NewCardsStudied: 9}, s)
	assert.Equal(t, 0, exhausted.NewCardsRemaining)
}

func TestSummarize(t *testing.T) {
	records := []CardProgress{
		{State: StateNew},
		{State: StateLearning},
		{State: StateRelearning, Interval: 30},
		{State: StateReview, Interval: 20},
		{State: StateReview, Interval: 21},
		{State: StateReview, Interval: 120},
	}

	assert.Equal(t, Overview{Total: 6, New: 1, Learning: 2, Young: 1, Mature: 2}, Summarize(records))
}

func TestDifficultItems(t *testing.T) {
	records := []CardProgress{
		{ItemID: 1, Lapses: 1},
		{ItemID: 2, Lapses: 0},
		{ItemID: 3, Lapses: 4},
		{ItemID: 4, Lapses: 2},
		{ItemID: 5, Lapses: 4},
	}

	got := DifficultItems(records, map[ItemID]bool{4: true})

	assert.Equal(t, []ItemID{3, 5, 1}, ids(got))
}

func TestStreak(t *testing.T) {
	today := time.Date(2024, time.March, 10, 22, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, Streak(nil, today))
	assert.Equal(t, 3, Streak([]string{"2024-03-08", "2024-03-09", "2024-03-10", "2024-03-05"}, today))
	assert.Equal(t, 2, Streak([]string{"2024-03-08", "2024-03-09"}, today), "streak survives until today ends")
	assert.Equal(t, 0, Streak([]string{"2024-03-07"}, today))
}
