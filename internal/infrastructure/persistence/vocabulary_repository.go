package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"korean-learning-bot/internal/domain/vocabulary"
)

type vocabularyRepository struct {
	db *sqlx.DB
}

type wordRow struct {
	Level    string `db:"level"`
	ID       int64  `db:"id"`
	Korean   string `db:"korean"`
	Japanese string `db:"japanese"`
}

func (row wordRow) toWord() *vocabulary.Word {
	return vocabulary.NewWord(vocabulary.ID(row.ID), row.Korean, row.Japanese, vocabulary.Level(row.Level))
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db *sqlx.DB) vocabulary.Repository {
	return &vocabularyRepository{db: db}
}

// SaveBatch persists multiple words to storage
func (r *vocabularyRepository) SaveBatch(ctx context.Context, words []*vocabulary.Word) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, r.db.Rebind(`
		INSERT INTO words (level, id, korean, japanese)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (level, id) DO UPDATE SET korean = excluded.korean, japanese = excluded.japanese
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, word := range words {
		_, err := stmt.ExecContext(ctx, string(word.Level()), int64(word.ID()), word.Korean(), word.Japanese())
		if err != nil {
			return fmt.Errorf("failed to save word %s: %w", word.Korean(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// FindByID retrieves a word by its ID
func (r *vocabularyRepository) FindByID(ctx context.Context, level vocabulary.Level, id vocabulary.ID) (*vocabulary.Word, error) {
	var row wordRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT level, id, korean, japanese
		FROM words WHERE level = ? AND id = ?
	`), string(level), int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find word by ID: %w", err)
	}

	return row.toWord(), nil
}

// FindByLevel retrieves a word list
func (r *vocabularyRepository) FindByLevel(ctx context.Context, level vocabulary.Level) ([]*vocabulary.Word, error) {
	var rows []wordRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT level, id, korean, japanese
		FROM words WHERE level = ?
		ORDER BY id
	`), string(level))
	if err != nil {
		return nil, fmt.Errorf("failed to query words by level: %w", err)
	}

	words := make([]*vocabulary.Word, 0, len(rows))
	for _, row := range rows {
		words = append(words, row.toWord())
	}
	return words, nil
}

// Count returns the size of a word list
func (r *vocabularyRepository) Count(ctx context.Context, level vocabulary.Level) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, r.db.Rebind(`SELECT COUNT(*) FROM words WHERE level = ?`), string(level))
	if err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}
