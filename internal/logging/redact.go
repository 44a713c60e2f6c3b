package logging

import (
	"context"
	"log/slog"
	"regexp"
)

// Redaction is the fixed mask substituted for sensitive field values.
const Redaction = "***"

// PIIFields is the default set of field names whose values are redacted.
var PIIFields = []string{"name", "email", "phone", "password", "ssn"}

// FilterDatum obfuscates the values of fields in a key=value formatted
// message, where pairs are delimited by separator.
func FilterDatum(fields []string, redaction, message, separator string) string {
	for _, field := range fields {
		re := regexp.MustCompile(regexp.QuoteMeta(field) + "=[^" + regexp.QuoteMeta(separator) + "]*")
		message = re.ReplaceAllString(message, field+"="+redaction)
	}
	return message
}

// RedactingHandler is a slog.Handler that masks the values of configured
// attribute keys before the record reaches the wrapped handler.
type RedactingHandler struct {
	inner  slog.Handler
	fields map[string]struct{}
}

// NewRedactingHandler wraps inner, redacting attributes named in fields.
func NewRedactingHandler(inner slog.Handler, fields []string) *RedactingHandler {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return &RedactingHandler{inner: inner, fields: set}
}

func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *RedactingHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redact(a))
		return true
	})
	return h.inner.Handle(ctx, out)
}

func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.redact(a)
	}
	return &RedactingHandler{inner: h.inner.WithAttrs(masked), fields: h.fields}
}

func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithGroup(name), fields: h.fields}
}

func (h *RedactingHandler) redact(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		masked := make([]slog.Attr, len(group))
		for i, g := range group {
			masked[i] = h.redact(g)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}
	if _, ok := h.fields[a.Key]; ok {
		return slog.String(a.Key, Redaction)
	}
	// Free-form string values may embed key=value text of their own.
	if a.Value.Kind() == slog.KindString {
		filtered := FilterDatum(h.fieldList(), Redaction, a.Value.String(), ";")
		if filtered != a.Value.String() {
			return slog.String(a.Key, filtered)
		}
	}
	return a
}

func (h *RedactingHandler) fieldList() []string {
	fields := make([]string, 0, len(h.fields))
	for f := range h.fields {
		fields = append(fields, f)
	}
	return fields
}

var _ slog.Handler = (*RedactingHandler)(nil)
