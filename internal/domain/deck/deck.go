package deck

import (
	"fmt"

	"korean-learning-bot/internal/domain/grammar"
	"korean-learning-bot/internal/domain/learning"
	"korean-learning-bot/internal/domain/vocabulary"
)

// Content is the kind of items a deck studies
type Content string

const (
	ContentVocabulary Content = "vocabulary"
	ContentGrammar    Content = "grammar"
)

// Direction decides which side of an item is asked
type Direction string

const (
	// DirectionForward shows the Korean side and asks for the meaning
	DirectionForward Direction = "forward"
	// DirectionReverse shows the meaning and asks for the Korean side
	DirectionReverse Direction = "reverse"
)

// Deck is one independently scheduled list of items. Every variant of the app
// (beginner or intermediate, forward or reverse, words or grammar) is a Deck.
type Deck struct {
	Key       string            `yaml:"key" validate:"required,excludesall=/_ "`
	Title     string            `yaml:"title" validate:"required"`
	Content   Content           `yaml:"content" validate:"required,oneof=vocabulary grammar"`
	Level     string            `yaml:"level" validate:"required,oneof=beginner intermediate"`
	Direction Direction         `yaml:"direction" validate:"omitempty,oneof=forward reverse"`
	Source    string            `yaml:"source" validate:"required"`
	Settings  learning.Settings `yaml:"settings"`

	// Memos and the difficult-list exclusions may be shared between decks
	// studying the same items, e.g. the two directions of one word list.
	MemosStorageKey    string `yaml:"memos_key"`
	ExcludedStorageKey string `yaml:"excluded_key"`
}

// Storage keys of the values kept per deck
func (d Deck) ProgressKey() string   { return d.Key + "-progress" }
func (d Deck) TodayStatsKey() string { return d.Key + "-today-stats" }

func (d Deck) MemosKey() string {
	if d.MemosStorageKey != "" {
		return d.MemosStorageKey
	}
	return d.Key + "-memos"
}

func (d Deck) ExcludedKey() string {
	if d.ExcludedStorageKey != "" {
		return d.ExcludedStorageKey
	}
	return d.Key + "-difficult-excluded"
}

// Reversed reports whether cards ask for the Korean side
func (d Deck) Reversed() bool {
	return d.Direction == DirectionReverse
}

func (d Deck) String() string {
	return fmt.Sprintf("%s (%s %s)", d.Key, d.Level, d.Content)
}

// Card is the displayable form of one deck item
type Card struct {
	ID                 learning.ItemID
	Front              string
	Back               string
	Example            string
	ExampleTranslation string
}

// WordCard renders a vocabulary word for the given direction
func WordCard(w *vocabulary.Word, direction Direction) Card {
	card := Card{
		ID:    learning.ItemID(w.ID()),
		Front: w.Korean(),
		Back:  w.Japanese(),
	}
	if direction == DirectionReverse {
		card.Front, card.Back = card.Back, card.Front
	}
	return card
}

// GrammarCard renders a grammar item for the given direction
func GrammarCard(item *grammar.Item, direction Direction) Card {
	card := Card{
		ID:                 learning.ItemID(item.ID()),
		Front:              item.Korean(),
		Back:               item.Japanese(),
		Example:            item.ExampleKo(),
		ExampleTranslation: item.ExampleJa(),
	}
	if direction == DirectionReverse {
		card.Front, card.Back = card.Back, card.Front
	}
	return card
}

// ItemIDs lists the card ids in deck order
func ItemIDs(cards []Card) []learning.ItemID {
	ids := make([]learning.ItemID, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}
