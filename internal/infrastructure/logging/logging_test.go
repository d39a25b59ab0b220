package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  slog.Level
		known bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		got, known := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.known, known, tt.in)
	}
}

func TestNew_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	logger := New("production", "warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown", slog.String("deck", "flashcard"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "flashcard", entry["deck"])
	assert.Contains(t, entry, "source")
}

func TestNew_TintInDev(t *testing.T) {
	var buf bytes.Buffer
	New("dev", "debug", &buf).Debug("card answered")

	assert.Contains(t, buf.String(), "card answered")
	assert.False(t, json.Valid(buf.Bytes()))
}
