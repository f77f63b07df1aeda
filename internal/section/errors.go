package section

import (
	"errors"
	"fmt"
)

// ErrInvalidTimestamp indicates a timestamp that matches the numeric pattern but is not a real
// calendar date and time, e.g. "(2024/13/40 99:99)".
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// TimestampError locates an invalid timestamp within the documents.
type TimestampError struct {
	Source string
	Line   int
	Value  string
	Err    error
}

func (e *TimestampError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s %q: %v", ErrInvalidTimestamp, e.Value, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s %q: %v", e.Source, e.Line, ErrInvalidTimestamp, e.Value, e.Err)
}

// Unwrap lets errors.Is match ErrInvalidTimestamp.
func (e *TimestampError) Unwrap() []error {
	return []error{ErrInvalidTimestamp, e.Err}
}
