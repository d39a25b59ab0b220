package learning

import (
	"cmp"
	"slices"
	"time"
)

// Queue is a deck's study material for the moment it was built.
type Queue struct {
	Due      []CardProgress
	New      []CardProgress
	Learning []CardProgress
}

// BuildQueue partitions a deck's records into buckets. Each record lands in at
// most one bucket; cards that are not due yet and records with an unknown
// state land in none.
func BuildQueue(records []CardProgress, settings Settings, now time.Time) Queue {
	today := StartOfDay(now)

	var q Queue
	for _, p := range records {
		switch p.State {
		case StateNew:
			q.New = append(q.New, p)
		case StateLearning, StateRelearning:
			if p.IsDue(now) {
				q.Learning = append(q.Learning, p)
			}
		case StateReview:
			if !p.DueDate.After(today) || p.IsDue(now) {
				q.Due = append(q.Due, p)
			}
		}
	}

	sortByPriority(q.Learning)
	sortByPriority(q.Due)

	if len(q.New) > settings.NewCardsPerDay {
		q.New = q.New[:max(settings.NewCardsPerDay, 0)]
	}
	if settings.MaxReviewsPerDay > 0 && len(q.Due) > settings.MaxReviewsPerDay {
		q.Due = q.Due[:settings.MaxReviewsPerDay]
	}

	return q
}

// Next picks the card to study: learning cards first, then due reviews, then
// new cards while newBudget lasts.
func (q Queue) Next(newBudget int) (CardProgress, bool) {
	switch {
	case len(q.Learning) > 0:
		return q.Learning[0], true
	case len(q.Due) > 0:
		return q.Due[0], true
	case len(q.New) > 0 && newBudget > 0:
		return q.New[0], true
	default:
		return CardProgress{}, false
	}
}

// Contains reports whether the item is in any bucket.
func (q Queue) Contains(id ItemID) bool {
	for _, bucket := range [][]CardProgress{q.Learning, q.Due, q.New} {
		for _, p := range bucket {
			if p.ItemID == id {
				return true
			}
		}
	}
	return false
}

func sortByPriority(cards []CardProgress) {
	slices.SortStableFunc(cards, func(a, b CardProgress) int {
		if c := cmp.Compare(a.State.priority(), b.State.priority()); c != 0 {
			return c
		}
		return a.DueDate.Compare(b.DueDate)
	})
}

func sortByItemID(cards []CardProgress) {
	slices.SortFunc(cards, func(a, b CardProgress) int {
		return cmp.Compare(a.ItemID, b.ItemID)
	})
}
