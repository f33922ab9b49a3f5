// Package logging configures structured logging for log/slog.
//
// Text output is colored with tint for local development; JSON output is
// meant for production log shippers.
//
// Usage:
//
//	logging.Setup("debug", "text")                 // from config strings
//	logging.SetupWithLevel(slog.LevelWarn, "json") // explicit level
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures the default logger from level and format strings.
// Unknown levels fall back to INFO; any format other than "json" is text.
func Setup(level, format string) {
	SetupWithLevel(ParseLevel(level), format)
}

// SetupWithLevel configures the default logger at the given level.
func SetupWithLevel(level slog.Level, format string) {
	slog.SetDefault(slog.New(NewHandler(Output(format), level, format)))
}

// Output returns where logs of the given format are written: JSON goes to
// stdout for log shippers, text goes to stderr.
func Output(format string) io.Writer {
	if isJSON(format) {
		return os.Stdout
	}
	return os.Stderr
}

func isJSON(format string) bool {
	return strings.EqualFold(strings.TrimSpace(format), "json")
}

// NewHandler builds the handler used by Setup, writing to w.
func NewHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	if isJSON(format) {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to a level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
