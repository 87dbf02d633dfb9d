// Package logger configures the CLI's structured logger. Engine
// packages stay silent; logging happens at the command layer only.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console logger writing to stderr. Command output goes
// to stdout; logs must not interleave with it.
func New() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// NewWithWriter creates a structured logger with a custom writer.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Quiet returns a logger that discards everything below warnings.
func Quiet() zerolog.Logger {
	return New().Level(zerolog.WarnLevel)
}
