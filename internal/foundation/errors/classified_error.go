package errors

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// ClassifiedError is an error tagged with a Category and Severity. Its Fields
// end up as log attributes when the error is reported.
type ClassifiedError struct {
	category Category
	severity Severity
	message  string
	cause    error
	fields   Fields
}

func (e *ClassifiedError) Error() string {
	var b strings.Builder
	b.WriteString("[" + string(e.category) + ":" + string(e.severity) + "] ")
	b.WriteString(e.message)
	if e.cause != nil {
		b.WriteString(": " + e.cause.Error())
	}
	return b.String()
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

func (e *ClassifiedError) Category() Category { return e.category }
func (e *ClassifiedError) Severity() Severity { return e.severity }

// Message is the human-readable text without the cause chain.
func (e *ClassifiedError) Message() string { return e.message }

func (e *ClassifiedError) Fields() Fields { return e.fields }

// Level maps the severity onto a slog level.
func (e *ClassifiedError) Level() slog.Level {
	if e.severity == SeverityWarning {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// Attrs returns the category, the fields in key order and the cause.
func (e *ClassifiedError) Attrs() []slog.Attr {
	attrs := []slog.Attr{slog.String("category", string(e.category))}
	for _, k := range slices.Sorted(maps.Keys(e.fields)) {
		attrs = append(attrs, slog.Any(k, e.fields[k]))
	}
	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))
	}
	return attrs
}

// AsClassified finds the first ClassifiedError in the chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// HasCategory reports whether the first ClassifiedError in the chain has category c.
func HasCategory(err error, c Category) bool {
	ce, ok := AsClassified(err)
	return ok && ce.category == c
}
