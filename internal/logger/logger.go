// Package logger configures the default slog logger from flags and the
// environment.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment variables read by Init.
const (
	EnvLevel  = "BARCUT_LOG_LEVEL"  // debug, info, warn, error (default: info)
	EnvFormat = "BARCUT_LOG_FORMAT" // text, json (default: text)
)

// Init installs a default logger writing to stderr. verbose forces debug
// level; otherwise the level comes from BARCUT_LOG_LEVEL.
func Init(verbose bool) *slog.Logger {
	level := ParseLevel(os.Getenv(EnvLevel))
	if verbose {
		level = slog.LevelDebug
	}
	l := New(os.Stderr, level, os.Getenv(EnvFormat))
	slog.SetDefault(l)
	return l
}

// New builds a logger for w. format "json" selects the JSON handler; any
// other value uses the text handler.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
