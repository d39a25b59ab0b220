package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"
)

// KVStore keeps JSON values under string keys, the storage model every deck
// collection, daily stats and preferences are saved with.
type KVStore struct {
	db *sqlx.DB
}

// NewKVStore creates a key-value store on db
func NewKVStore(db *sqlx.DB) *KVStore {
	return &KVStore{db: db}
}

// Get decodes the value under key into dest. It reports false when the key is missing.
func (s *KVStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload, s.db.Rebind(`SELECT payload FROM kv_store WHERE storage_key = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key, replacing any previous value
func (s *KVStore) Set(ctx context.Context, key string, value any) error {
	return s.upsert(ctx, s.db, key, value)
}

// SetAll stores every value in one transaction. Nothing is written when any
// value fails.
func (s *KVStore) SetAll(ctx context.Context, values map[string]json.RawMessage) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if err := s.upsert(ctx, tx, key, values[key]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *KVStore) upsert(ctx context.Context, exec sqlx.ExecerContext, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	query := s.db.Rebind(`
		INSERT INTO kv_store (storage_key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (storage_key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := exec.ExecContext(ctx, query, key, string(payload)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Remove deletes the given keys in one transaction
func (s *KVStore) Remove(ctx context.Context, keys ...string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := s.db.Rebind(`DELETE FROM kv_store WHERE storage_key = ?`)
	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, query, key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Dump returns every stored value, for backups
func (s *KVStore) Dump(ctx context.Context) (map[string]json.RawMessage, error) {
	var rows []struct {
		Key     string `db:"storage_key"`
		Payload string `db:"payload"`
	}
	if err := s.db.SelectContext(ctx, &rows, `SELECT storage_key, payload FROM kv_store ORDER BY storage_key`); err != nil {
		return nil, fmt.Errorf("failed to list values: %w", err)
	}

	values := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		values[row.Key] = json.RawMessage(row.Payload)
	}
	return values, nil
}
