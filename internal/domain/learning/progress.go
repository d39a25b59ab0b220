package learning

import "time"

// ItemID identifies a word or grammar point inside one deck.
type ItemID int64

// CardProgress is the scheduling record of one item.
type CardProgress struct {
	ItemID       ItemID     `json:"wordId"`
	State        CardState  `json:"state"`
	EaseFactor   float64    `json:"easeFactor"`
	Interval     int        `json:"interval"`
	DueDate      time.Time  `json:"dueDate"`
	LearningStep int        `json:"learningStep"`
	Repetitions  int        `json:"repetitions"`
	Lapses       int        `json:"lapses"`
	LastReview   *time.Time `json:"lastReview"`
}

// NewCardProgress creates the record of an item that has never been studied.
func NewCardProgress(id ItemID, settings Settings, now time.Time) CardProgress {
	return CardProgress{
		ItemID:     id,
		State:      StateNew,
		EaseFactor: settings.StartingEase,
		DueDate:    now,
	}
}

// IsDue checks if the card may be studied at now
func (p CardProgress) IsDue(now time.Time) bool {
	return !now.Before(p.DueDate)
}

// Collection indexes a deck's records by item.
type Collection map[ItemID]CardProgress

// NewCollection indexes records, keeping the last one for duplicate ids.
func NewCollection(records []CardProgress) Collection {
	c := make(Collection, len(records))
	for _, p := range records {
		c[p.ItemID] = p
	}
	return c
}

// Get returns the stored record or a fresh one for items never studied.
func (c Collection) Get(id ItemID, settings Settings, now time.Time) CardProgress {
	if p, ok := c[id]; ok {
		return p
	}
	return NewCardProgress(id, settings, now)
}

// Complete lists one record per item in deck order, creating new records for missing items.
// Records of items no longer in the deck are dropped.
func (c Collection) Complete(ids []ItemID, settings Settings, now time.Time) []CardProgress {
	records := make([]CardProgress, 0, len(ids))
	for _, id := range ids {
		records = append(records, c.Get(id, settings, now))
	}
	return records
}

// Records lists the stored records ordered by item id.
func (c Collection) Records() []CardProgress {
	records := make([]CardProgress, 0, len(c))
	for _, p := range c {
		records = append(records, p)
	}
	sortByItemID(records)
	return records
}
