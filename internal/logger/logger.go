package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"lifecycle/internal/config"
)

// New builds the process logger: JSON lines by default, a console writer when
// cfg.LogJSON is off. Unknown levels fall back to info.
func New(cfg config.Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

func NewWithWriter(cfg config.Config, w io.Writer) zerolog.Logger {
	if !cfg.LogJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("env", cfg.Env).Logger()
}
