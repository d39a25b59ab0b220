package vocabulary

import "context"

// Repository defines the contract for vocabulary persistence
type Repository interface {
	// SaveBatch stores words, replacing existing ones with the same level and ID
	SaveBatch(ctx context.Context, words []*Word) error

	// FindByID retrieves a word, nil when missing
	FindByID(ctx context.Context, level Level, id ID) (*Word, error)

	// FindByLevel retrieves a word list ordered by ID
	FindByLevel(ctx context.Context, level Level) ([]*Word, error)

	// Count returns the number of words in a list
	Count(ctx context.Context, level Level) (int, error)
}
