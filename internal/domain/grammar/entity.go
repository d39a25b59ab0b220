package grammar

// Item represents a Korean grammar pattern with its meaning and an example
type Item struct {
	id        ID
	korean    string
	japanese  string
	exampleKo string
	exampleJa string
	level     Level
}

// ID represents a grammar item's identifier inside its list
type ID int64

// Level is the grammar list an item belongs to
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
)

// NewItem creates a new grammar item
func NewItem(id ID, korean, japanese, exampleKo, exampleJa string, level Level) *Item {
	return &Item{
		id:        id,
		korean:    korean,
		japanese:  japanese,
		exampleKo: exampleKo,
		exampleJa: exampleJa,
		level:     level,
	}
}

// Getters
func (i *Item) ID() ID            { return i.id }
func (i *Item) Korean() string    { return i.korean }
func (i *Item) Japanese() string  { return i.japanese }
func (i *Item) ExampleKo() string { return i.exampleKo }
func (i *Item) ExampleJa() string { return i.exampleJa }
func (i *Item) Level() Level      { return i.level }

// HasExample reports whether the item carries an example sentence
func (i *Item) HasExample() bool {
	return i.exampleKo != "" || i.exampleJa != ""
}

// IsValidLevel checks if a level is valid
func IsValidLevel(level string) bool {
	switch Level(level) {
	case LevelBeginner, LevelIntermediate:
		return true
	default:
		return false
	}
}
