package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"korean-learning-bot/internal/domain/grammar"
)

type grammarRepository struct {
	db *sqlx.DB
}

type grammarRow struct {
	Level     string `db:"level"`
	ID        int64  `db:"id"`
	Korean    string `db:"korean"`
	Japanese  string `db:"japanese"`
	ExampleKo string `db:"example_ko"`
	ExampleJa string `db:"example_ja"`
}

func (row grammarRow) toItem() *grammar.Item {
	return grammar.NewItem(grammar.ID(row.ID), row.Korean, row.Japanese, row.ExampleKo, row.ExampleJa, grammar.Level(row.Level))
}

// NewGrammarRepository creates a new grammar repository
func NewGrammarRepository(db *sqlx.DB) grammar.Repository {
	return &grammarRepository{db: db}
}

// SaveBatch saves multiple grammar items
func (r *grammarRepository) SaveBatch(ctx context.Context, items []*grammar.Item) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := r.db.Rebind(`
		INSERT INTO grammar_items (level, id, korean, japanese, example_ko, example_ja)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (level, id) DO UPDATE SET
			korean = excluded.korean,
			japanese = excluded.japanese,
			example_ko = excluded.example_ko,
			example_ja = excluded.example_ja
	`)

	for _, item := range items {
		_, err := tx.ExecContext(ctx, query,
			string(item.Level()), int64(item.ID()), item.Korean(), item.Japanese(), item.ExampleKo(), item.ExampleJa())
		if err != nil {
			return fmt.Errorf("failed to save grammar item %s: %w", item.Korean(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindByID retrieves a grammar item by its ID
func (r *grammarRepository) FindByID(ctx context.Context, level grammar.Level, id grammar.ID) (*grammar.Item, error) {
	var row grammarRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT level, id, korean, japanese, example_ko, example_ja
		FROM grammar_items WHERE level = ? AND id = ?
	`), string(level), int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find grammar item by ID: %w", err)
	}
	return row.toItem(), nil
}

// FindByLevel retrieves a grammar list
func (r *grammarRepository) FindByLevel(ctx context.Context, level grammar.Level) ([]*grammar.Item, error) {
	var rows []grammarRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT level, id, korean, japanese, example_ko, example_ja
		FROM grammar_items WHERE level = ?
		ORDER BY id
	`), string(level))
	if err != nil {
		return nil, fmt.Errorf("failed to query grammar items: %w", err)
	}

	items := make([]*grammar.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toItem())
	}
	return items, nil
}

// Count returns the size of a grammar list
func (r *grammarRepository) Count(ctx context.Context, level grammar.Level) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, r.db.Rebind(`SELECT COUNT(*) FROM grammar_items WHERE level = ?`), string(level))
	if err != nil {
		return 0, fmt.Errorf("failed to count grammar items: %w", err)
	}
	return count, nil
}
