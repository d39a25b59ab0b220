package grammar

import "context"

// Repository defines the contract for grammar item persistence
type Repository interface {
	// SaveBatch stores items, replacing existing ones with the same level and ID
	SaveBatch(ctx context.Context, items []*Item) error

	// FindByID retrieves an item, nil when missing
	FindByID(ctx context.Context, level Level, id ID) (*Item, error)

	// FindByLevel retrieves a grammar list ordered by ID
	FindByLevel(ctx context.Context, level Level) ([]*Item, error)

	// Count returns the number of items in a list
	Count(ctx context.Context, level Level) (int, error)
}
