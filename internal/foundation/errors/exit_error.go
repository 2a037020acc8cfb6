package errors

import (
	"errors"
	"fmt"
)

// ExitError reports that an external command exited with a non-zero status.
// The CLI propagates Code unchanged as the process exit status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// AsExit finds an ExitError in the chain.
func AsExit(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}
