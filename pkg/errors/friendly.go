package errors

import (
	"fmt"
)

// FriendlyError is an error whose message is meant to be shown directly to
// the user, without any of the wrapping context that's useful for debugging
// but noisy in the terminal.
type FriendlyError struct {
	Message string
}

func (err FriendlyError) Error() string {
	return err.Message
}

// FriendlyMessage returns the message to show to the user.
func (err FriendlyError) FriendlyMessage() string {
	return err.Message
}

// NewFriendlyError creates an error that will be printed to the user as-is.
func NewFriendlyError(format string, args ...interface{}) error {
	return FriendlyError{Message: fmt.Sprintf(format, args...)}
}

type friendlier interface {
	FriendlyMessage() string
}

// GetPrintableMessage returns the message that should be shown to the user
// for the given error. If any error in the chain is friendly, its message is
// used. Otherwise, the full context chain is shown.
func GetPrintableMessage(err error) string {
	for curr := err; curr != nil; {
		if friendly, ok := curr.(friendlier); ok {
			return friendly.FriendlyMessage()
		}

		ctxErr, ok := curr.(ContextError)
		if !ok {
			break
		}
		curr = ctxErr.Err
	}
	return err.Error()
}
