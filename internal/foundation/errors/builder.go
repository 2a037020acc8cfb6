package errors

import "maps"

// ErrorBuilder assembles a ClassifiedError step by step.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of the given category at SeverityError.
func NewError(category Category, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: SeverityError,
		message:  message,
	}}
}

// WrapError starts an error of the given category around cause.
func WrapError(cause error, category Category, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(cause)
}

// WithCause sets the wrapped error.
func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

// WithContext records a structured field.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	if b.err.fields == nil {
		b.err.fields = Fields{}
	}
	b.err.fields[key] = value
	return b
}

// Fatal marks an error that ends the run.
func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	b.err.severity = SeverityFatal
	return b
}

// Warning marks a failure the run carried on past.
func (b *ErrorBuilder) Warning() *ErrorBuilder {
	b.err.severity = SeverityWarning
	return b
}

// Build returns the finished error. The builder may be reused afterwards.
func (b *ErrorBuilder) Build() *ClassifiedError {
	ce := b.err
	ce.fields = maps.Clone(b.err.fields)
	return &ce
}

// ConfigError is a fatal configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// ValidationError is a fatal input validation error.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

// NotFoundError is a fatal missing-input error.
func NotFoundError(message string) *ErrorBuilder {
	return NewError(CategoryNotFound, message).Fatal()
}

// ExternalError is a fatal failure to invoke an external tool.
func ExternalError(message string) *ErrorBuilder {
	return NewError(CategoryExternal, message).Fatal()
}

// GitError is a repository inspection error. Callers usually fall back.
func GitError(message string) *ErrorBuilder {
	return NewError(CategoryGit, message)
}
