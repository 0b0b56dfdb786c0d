// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Provides Init() for CLI runs and InitFile() while the TUI owns the terminal.

package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Init configures the default slog logger based on environment variables.
// LOG_LEVEL: debug, info, warn, error (default: warn, CLI output stays clean)
// LOG_FORMAT: text, json (default: text; coloured when stderr is a terminal)
func Init() {
	slog.SetDefault(slog.New(newHandler(os.Stderr, isTerminal(os.Stderr), slog.LevelWarn)))
}

// InitFile routes logs to configDir/debug.log so they do not corrupt the TUI.
// The returned closer must be called on exit. An empty configDir discards logs.
func InitFile(configDir string) (io.Closer, error) {
	if configDir == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(configDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(newHandler(f, false, slog.LevelInfo)))
	return f, nil
}

func newHandler(w io.Writer, color bool, defaultLevel slog.Level) slog.Handler {
	level := parseLevel(os.Getenv("LOG_LEVEL"), defaultLevel)
	format := strings.ToLower(os.Getenv("LOG_FORMAT"))

	if format == "json" {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !color,
	})
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string, defaultLevel slog.Level) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return defaultLevel
	}
}
