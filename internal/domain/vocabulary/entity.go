package vocabulary

// Word represents a Korean word with its Japanese meaning
type Word struct {
	id       ID
	korean   string
	japanese string
	level    Level
}

// ID represents the word's identifier inside its word list
type ID int64

// Level is the word list a word belongs to
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
)

// NewWord creates a new vocabulary word
func NewWord(id ID, korean, japanese string, level Level) *Word {
	return &Word{
		id:       id,
		korean:   korean,
		japanese: japanese,
		level:    level,
	}
}

// Getters
func (w *Word) ID() ID           { return w.id }
func (w *Word) Korean() string   { return w.korean }
func (w *Word) Japanese() string { return w.japanese }
func (w *Word) Level() Level     { return w.level }

// IsValidLevel checks if a level is valid
func IsValidLevel(level string) bool {
	switch Level(level) {
	case LevelBeginner, LevelIntermediate:
		return true
	default:
		return false
	}
}
