// Package log builds the file-backed slog logger the TUI writes to.
// Stdout and stderr belong to the terminal renderer, so all diagnostics
// go to a JSON log file instead.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zorkosss/GameHub/internal/config"
)

// SetupLogger opens the configured log file and returns a JSON logger
// tagged with the process identity. Debug level also records source
// positions.
func SetupLogger(cfg *config.LoggingConfig) (*slog.Logger, error) {
	path, err := expandHome(cfg.File)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := ParseLevel(cfg.Level)
	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})

	logger := slog.New(handler).With(
		slog.String("app", "gamehub"),
		slog.Int("pid", os.Getpid()),
	)
	return logger, nil
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// ParseLevel converts a config level string to a slog.Level,
// defaulting to info for anything unrecognized.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NullLogger returns a logger that discards all output.
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
