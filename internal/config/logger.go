package config

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger builds a text logger on w (stderr when nil) whose level follows
// lv, so a reload can change verbosity in place.
func NewLogger(w io.Writer, lv *slog.LevelVar) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv}))
}

// LevelVar returns a level variable set from the config's log_level.
func (c Config) LevelVar() *slog.LevelVar {
	lv := new(slog.LevelVar)
	if l, err := ParseLevel(c.LogLevel); err == nil {
		lv.Set(l)
	}
	return lv
}
