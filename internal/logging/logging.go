// Package logging builds the service logger: structured slog output with
// PII field values redacted before they reach the sink.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New creates a logger writing JSON records to w. Values of attributes
// named in fields are replaced with the redaction mask; a nil fields
// slice selects PIIFields.
func New(w io.Writer, level slog.Level, service string, fields []string) *slog.Logger {
	if fields == nil {
		fields = PIIFields
	}
	inner := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewRedactingHandler(inner, fields)).With("service", service)
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
