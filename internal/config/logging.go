package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the application logger writing to w. An unparsable level
// falls back to info. The console format is human-readable; json emits one
// object per line.
func NewLogger(cfg LogConfig, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if cfg.Format != LogJSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
