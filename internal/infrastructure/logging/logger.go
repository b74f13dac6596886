// Package logging provides structured logging utilities.
//
// Logs are single-line with colors on terminals:
// [LEVEL] [HH:MM:SS] message key=value
package logging

import (
	"log/slog"
	"os"

	"github.com/mkovacs/financ/internal/infrastructure/config"
)

// NewLogger creates a structured logger based on config. All output
// goes to stderr so command output stays pipeable.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(NewLineHandler(os.Stderr, opts))
}
