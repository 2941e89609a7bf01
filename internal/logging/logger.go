package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config controls logger construction.
type Config struct {
	Level    string
	Format   string
	FilePath string
	Service  string
	Version  string
	// Output overrides FilePath when set.
	Output io.Writer
}

// NewLogger returns a structured logger with sane defaults.
// When a file path is configured the returned closer must be called on shutdown.
func NewLogger(cfg Config) *slog.Logger {
	logger, _ := NewFileLogger(cfg)
	return logger
}

// NewFileLogger builds a logger and returns a closer for the underlying file, if any.
// A file that cannot be opened degrades to a discarding handler; the terminal belongs to the UI.
func NewFileLogger(cfg Config) (*slog.Logger, func() error) {
	out, closer := resolveOutput(cfg)
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	attrs := WithCommon(nil, cfg.Service, cfg.Version)
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}
	return slog.New(handler), closer
}

func resolveOutput(cfg Config) (io.Writer, func() error) {
	noop := func() error { return nil }
	if cfg.Output != nil {
		return cfg.Output, noop
	}
	if cfg.FilePath == "" {
		return io.Discard, noop
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return io.Discard, noop
	}
	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard, noop
	}
	return f, f.Close
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
