// Package app wires process-wide concerns of the commands.
package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bt2901/interslavic-utils/internal/config"
)

// NewLogger creates a *slog.Logger from cfg writing to stderr and installs
// it with slog.SetDefault.
//
// Format "json" produces JSON records; anything else produces text with
// source locations. Level is one of debug, info, warn, error; it defaults
// to info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !strings.EqualFold(cfg.Format, "json"),
	}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
