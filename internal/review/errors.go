package review

import (
	"errors"
	"fmt"
)

// ErrUnknownTag reports a tag that is not listed in the dataset registry.
var ErrUnknownTag = errors.New("tag not in registry")

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ErrorKind classifies the error for callers that map failures to outcomes.
func (e *ValidationError) ErrorKind() string { return "validation" }
