// Package logging builds the hclog loggers used across iconsmith.
// Human-readable output carries the tool glyph as a line prefix;
// setting ICONSMITH_JSON_LOG=1 switches to JSON records instead.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// NewLogger returns a named logger writing to output (stderr when nil).
// An empty level falls back to ICONSMITH_LOG_LEVEL, then to "warn".
// Timestamps are always UTC so log output is stable across hosts.
func NewLogger(name, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	if level == "" {
		level = GetLogLevel("warn")
	}

	jsonFormat := os.Getenv("ICONSMITH_JSON_LOG") == "1"
	if !jsonFormat {
		output = NewPrefixWriter("🎨 ", output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn:     func() time.Time { return time.Now().UTC() },
	})
}

// GetLogLevel reads ICONSMITH_LOG_LEVEL, returning fallback when the
// variable is unset or empty.
func GetLogLevel(fallback string) string {
	if level := os.Getenv("ICONSMITH_LOG_LEVEL"); level != "" {
		return level
	}
	return fallback
}
