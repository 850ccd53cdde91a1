// ABOUTME: Structured logging setup using log/slog
// ABOUTME: Level and format come from LOG_LEVEL and LOG_FORMAT environment variables

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init configures the default slog logger from the environment.
// LOG_LEVEL: debug, info, warn, error (default: warn, so command output
// stays clean). LOG_FORMAT: text, json (default: text).
func Init() {
	slog.SetDefault(slog.New(newHandler(os.Stderr)))
}

func newHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
