// Package log builds the structured logger used across a run.
package log

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chopper/internal/config"
)

// New returns a logger writing to w. format is config.LogFormatPretty or
// config.LogFormatJSON; level is DEBUG, INFO, WARN or ERROR (case-insensitive,
// unknown values mean INFO).
func New(w io.Writer, format, level string) zerolog.Logger {
	out := w
	if !strings.EqualFold(format, config.LogFormatJSON) {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog.Level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
