package main

import (
	"os"

	"github.com/rs/zerolog"
)

const logDate = `2006-01-02T15:04:05.000-07:00`

// newLogger builds the process logger. Info by default, Debug when
// --verbose is set; out-of-turn and malformed actions only show up
// at debug level.
func newLogger(cfg *Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: logDate,
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
