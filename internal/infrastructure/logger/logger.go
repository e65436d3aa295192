package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/config"
	"github.com/rs/zerolog"
)

// New builds the service logger: JSON by default, console output for local runs.
func New(env string, cfg config.LogConfig) zerolog.Logger {
	return newWithWriter(os.Stdout, env, cfg)
}

func newWithWriter(out io.Writer, env string, cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	if cfg.LogFormat == "console" || env == "local" || env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "deal-service").
		Logger()
}
