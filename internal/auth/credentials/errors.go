package credentials

import "fmt"

// ValidationError reports missing or malformed input. Its message is
// safe to surface to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ConflictError reports a uniqueness violation on email.
type ConflictError struct {
	Email string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("user already exists: %s", e.Email)
}
