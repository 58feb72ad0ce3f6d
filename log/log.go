// Package log builds the slog loggers used across tingle. Every logger
// carries the id of the component that owns it and honors ProgramLevel.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ProgramLevel is the common log level.
var ProgramLevel = new(slog.LevelVar)

const (
	// IDKey is the attribute key holding the component id.
	IDKey = "id"
)

// New returns a text logger writing to w, tagged with id.
func New(w io.Writer, id string) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ProgramLevel})
	if id == "" {
		return slog.New(h)
	}
	return slog.New(h).With(slog.String(IDKey, id))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Component derives a logger for a sub-component, replacing nothing but
// adding the component id. A nil parent yields a discarding logger.
func Component(parent *slog.Logger, id string) *slog.Logger {
	if parent == nil {
		return Discard()
	}
	return parent.With(slog.String(IDKey, id))
}

// ParseLevel parses a level name (debug, info, warn, error).
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return l, nil
}

// SetLevel parses s and stores it in ProgramLevel.
func SetLevel(s string) error {
	l, err := ParseLevel(s)
	if err != nil {
		return err
	}
	ProgramLevel.Set(l)
	return nil
}
