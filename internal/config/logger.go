package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the process logger from the App log settings.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, _ := c.Level()
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.EqualFold(c.App.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("app", c.App.Name)
}
