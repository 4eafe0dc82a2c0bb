package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"fogreport/internal/config"
)

// New builds the process logger. Output goes to stderr so report data
// written to stdout stays clean. Unknown levels fall back to info.
func New(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger().Level(level)
}
