package learning

import (
	"cmp"
	"slices"
	"time"
)

// MatureInterval is the review interval, in days, from which a card counts as mature.
const MatureInterval = 21

// DailyStats counts the answers given to one deck on one calendar day.
type DailyStats struct {
	Date             string `json:"date"`
	NewCardsStudied  int    `json:"newCardsStudied"`
	ReviewsCompleted int    `json:"reviewsCompleted"`
	CorrectCount     int    `json:"correctCount"`
	IncorrectCount   int    `json:"incorrectCount"`
}

// ForDate returns s, or empty stats if s belongs to another day.
func (s DailyStats) ForDate(date string) DailyStats {
	if s.Date != date {
		return DailyStats{Date: date}
	}
	return s
}

// Record counts one answer given to a card that was in state before answering.
func (s DailyStats) Record(before CardState, grade Grade) DailyStats {
	if before == StateNew {
		s.NewCardsStudied++
	} else {
		s.ReviewsCompleted++
	}
	if grade == GradeGood {
		s.CorrectCount++
	} else {
		s.IncorrectCount++
	}
	return s
}

// NewCardBudget is how many new cards may still be introduced today.
func NewCardBudget(s DailyStats, settings Settings) int {
	return max(0, settings.NewCardsPerDay-s.NewCardsStudied)
}

// TodayStats is what is left to study in a deck today.
type TodayStats struct {
	NewCardsRemaining      int
	ReviewCardsRemaining   int
	LearningCardsRemaining int
	CompletedToday         int
}

// Remaining adds up every card still waiting today.
func (t TodayStats) Remaining() int {
	return t.NewCardsRemaining + t.ReviewCardsRemaining + t.LearningCardsRemaining
}

func ComputeTodayStats(q Queue, daily DailyStats, settings Settings) TodayStats {
	return TodayStats{
		NewCardsRemaining:      min(NewCardBudget(daily, settings), len(q.New)),
		ReviewCardsRemaining:   len(q.Due),
		LearningCardsRemaining: len(q.Learning),
		CompletedToday:         daily.NewCardsStudied + daily.ReviewsCompleted,
	}
}

// Overview breaks a deck down by maturity.
type Overview struct {
	Total    int
	New      int
	Learning int
	Young    int
	Mature   int
}

func Summarize(records []CardProgress) Overview {
	o := Overview{Total: len(records)}
	for _, p := range records {
		switch p.State {
		case StateNew:
			o.New++
		case StateLearning, StateRelearning:
			o.Learning++
		case StateReview:
			if p.Interval >= MatureInterval {
				o.Mature++
			} else {
				o.Young++
			}
		}
	}
	return o
}

// DifficultItems lists cards that lapsed at least once, most lapses first,
// skipping excluded items.
func DifficultItems(records []CardProgress, excluded map[ItemID]bool) []CardProgress {
	var difficult []CardProgress
	for _, p := range records {
		if p.Lapses > 0 && !excluded[p.ItemID] {
			difficult = append(difficult, p)
		}
	}
	slices.SortStableFunc(difficult, func(a, b CardProgress) int {
		if c := cmp.Compare(b.Lapses, a.Lapses); c != 0 {
			return c
		}
		return cmp.Compare(a.ItemID, b.ItemID)
	})
	return difficult
}

// Streak counts consecutive practice days ending today, or yesterday when
// today has no practice yet.
func Streak(dates []string, today time.Time) int {
	practiced := make(map[string]bool, len(dates))
	for _, d := range dates {
		practiced[d] = true
	}

	day := StartOfDay(today)
	if !practiced[DateString(day)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for practiced[DateString(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
