// Package logging builds the diagnostic logger for moscripts using zerolog.
//
// Diagnostics (query results, argument vectors, tolerated failures) go to
// stderr through this logger. User-facing status text goes through
// output.Printer instead.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrewthomaslee/moscripts/internal/output"
)

// Config holds logger configuration.
type Config struct {
	// Level is a level name: debug, info, warn, error or disabled.
	Level string
	// Output is where logs are written.
	Output io.Writer
	// Verbose forces debug level regardless of Level.
	Verbose bool
}

// New returns a logger writing to cfg.Output. Terminals get zerolog's
// console writer; anything else gets one JSON object per line.
func New(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		return zerolog.Nop()
	}

	level := ParseLevel(cfg.Level)
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}

	w := cfg.Output
	if output.IsTTY(cfg.Output) {
		w = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: time.Kitchen,
		}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel parses a log level string (case-insensitive).
// Returns WarnLevel if the string is not recognized.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled", "none":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
