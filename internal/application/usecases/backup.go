package usecases

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"korean-learning-bot/internal/domain/learning"
)

// SnapshotStore reads and writes raw stored values
type SnapshotStore interface {
	Dump(ctx context.Context) (map[string]json.RawMessage, error)
	// SetAll writes all values or none of them
	SetAll(ctx context.Context, values map[string]json.RawMessage) error
}

// BackupUseCase exports and imports all stored values as one JSON object keyed by
// storage key, the layout browser storage exports use.
type BackupUseCase struct {
	store  SnapshotStore
	logger *slog.Logger
}

// NewBackupUseCase creates a new backup use case
func NewBackupUseCase(store SnapshotStore, logger *slog.Logger) *BackupUseCase {
	return &BackupUseCase{store: store, logger: logger}
}

// Export writes every stored value to w
func (uc *BackupUseCase) Export(ctx context.Context, w io.Writer) error {
	values, err := uc.store.Dump(ctx)
	if err != nil {
		return fmt.Errorf("failed to read stored values: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(values); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// Import stores every value read from r, replacing values under the same keys.
// Progress collections and daily stats are checked before anything is written,
// and the values are written in one transaction.
// It returns the imported keys.
func (uc *BackupUseCase) Import(ctx context.Context, r io.Reader) ([]string, error) {
	var values map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}

	keys := make([]string, 0, len(values))
	for key, raw := range values {
		if err := checkValue(key, raw); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	if err := uc.store.SetAll(ctx, values); err != nil {
		return nil, fmt.Errorf("failed to import backup: %w", err)
	}

	uc.logger.Info("backup imported", "keys", len(keys))
	return keys, nil
}

// checkValue rejects values the study use cases could not read back
func checkValue(key string, raw json.RawMessage) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("%s: null value", key)
	}

	var dest any
	switch {
	case strings.HasSuffix(key, "-progress"):
		dest = &[]learning.CardProgress{}
	case strings.HasSuffix(key, "-today-stats"):
		dest = &learning.DailyStats{}
	case strings.HasSuffix(key, "-memos") || strings.Contains(key, "-memos-"):
		dest = &map[learning.ItemID]string{}
	case strings.HasSuffix(key, "-excluded"):
		dest = &[]learning.ItemID{}
	default:
		return nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
