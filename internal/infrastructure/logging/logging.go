package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel maps a config value to a slog level, reporting false for unknown names
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New builds the application logger: colored text in dev, JSON with source otherwise
func New(env, level string, w io.Writer) *slog.Logger {
	lvl, known := ParseLevel(level)

	var handler slog.Handler
	if strings.EqualFold(env, "dev") {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     lvl,
			AddSource: true,
		})
	}

	logger := slog.New(handler)
	if !known {
		logger.Warn("Unknown log level, defaulting to INFO", slog.String("level", level))
	}
	return logger
}

// Discard is a logger that drops everything, for tests
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
