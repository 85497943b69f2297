// ABOUTME: Zerolog logger construction for the CLI and servers.
// ABOUTME: Console output on the given writer at the configured level.
package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLogLevel keeps the CLI quiet unless something fails.
const DefaultLogLevel = zerolog.WarnLevel

// GetLogLevel parses the configured level, falling back to DefaultLogLevel.
func (c *Config) GetLogLevel() zerolog.Level {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return DefaultLogLevel
	}
	return level
}

// NewLogger constructs a timestamped console logger.
func NewLogger(level zerolog.Level, w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Str("app", "betta").
		Logger()
}
