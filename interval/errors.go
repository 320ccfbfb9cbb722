package interval

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is returned when one or more range expressions of a field
// do not have the "start-end" shape. It lists every offending element.
type ValidationError struct {
	Field  string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid %s: %s", e.Field, strings.Join(e.Errors, ", "))
}

// FormatError is returned by the parser when the hyphen-separated fragments
// of an expression match none of the recognized shapes.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Input)
	}
	return fmt.Sprintf("Invalid interval format: %s", e.Input)
}

// ValueError is returned by the parser when a bound is not a valid integer.
type ValueError struct {
	Input    string
	Fragment string
	Err      error
}

func (e *ValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Non-integer values in interval: %s (%q: %v)", e.Input, e.Fragment, e.Err)
	}
	return fmt.Sprintf("Non-integer values in interval: %s", e.Input)
}

// Unwrap returns the underlying conversion error, if any.
func (e *ValueError) Unwrap() error {
	return e.Err
}

// IsInputError returns whether err was caused by the caller's input rather than
// by an internal failure.
func IsInputError(err error) bool {
	var (
		validationErr *ValidationError
		formatErr     *FormatError
		valueErr      *ValueError
	)
	return errors.As(err, &validationErr) || errors.As(err, &formatErr) || errors.As(err, &valueErr)
}
