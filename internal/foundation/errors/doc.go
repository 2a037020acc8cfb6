// Package errors provides the classified error primitives shared by docops commands.
//
// A ClassifiedError carries a category, a severity and structured fields so the
// CLI layer can pick an exit code, a log level and a message without string
// matching.
// ExitError carries the exit status of an external tool verbatim.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryNotFound, "packaging file not found").
//		WithContext("path", path).
//		Build()
package errors
