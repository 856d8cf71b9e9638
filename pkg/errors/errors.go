package errors

import (
	"errors"
	"fmt"
)

// New returns an error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// ContextError annotates an error with information on what the code was doing
// when the error occurred.
type ContextError struct {
	Context string
	Err     error
}

func (err ContextError) Error() string {
	return fmt.Sprintf("%s: %s", err.Context, err.Err)
}

// WithContext wraps an error with context on the operation that failed.
// The context should be terse -- it's meant to read like a call stack when
// errors are wrapped multiple times.
func WithContext(err error, context string) error {
	return ContextError{Context: context, Err: err}
}

// RootCause unwraps an error until it reaches the innermost error.
func RootCause(err error) error {
	for {
		ctxErr, ok := err.(ContextError)
		if !ok {
			return err
		}
		err = ctxErr.Err
	}
}
