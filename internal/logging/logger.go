// Package logging builds the slog loggers used by the fetch command.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Records below level are dropped.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	if level == nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewNop returns a logger that discards every record.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
