package query

import (
	"errors"
	"fmt"
)

// Validation error kinds. Every failure returned by a setter, Apply or Encode
// wraps exactly one of these, so callers can match with errors.Is.
var (
	// ErrInvalidDateFormat indicates a temporal bound is not a canonical ISO 8601 timestamp
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrInvalidRange indicates a lower bound is greater than its upper bound
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidGeometry indicates a malformed point, line or polygon
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrInvalidOption indicates a non-boolean option or an option on an unset parameter
	ErrInvalidOption = errors.New("invalid option")
	// ErrTypeMismatch indicates a value of the wrong kind for its parameter
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidEnumValue indicates a value outside its closed set
	ErrInvalidEnumValue = errors.New("invalid enum value")
	// ErrInvalidQueryState indicates a combination of parameters the endpoint rejects
	ErrInvalidQueryState = errors.New("invalid query state")
	// ErrUnknownParameter indicates Apply was given a parameter it cannot route
	ErrUnknownParameter = errors.New("unknown parameter")
)

// ValidationError describes a rejected parameter value.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
	Err    error
}

func newValidationError(kind error, field string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: fmt.Sprintf(format, args...),
		Err:    kind,
	}
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s: %s", e.Err, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s=%v: %s", e.Err, e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
