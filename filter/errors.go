package filter

import (
	"fmt"
)

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Err        error
	}

	// EvaluationError indicates a filter could not be evaluated against an entry
	EvaluationError struct {
		Expression string
		EntryID    string
		Reason     string
		Err        error
	}
)

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	if e.EntryID == "" {
		return fmt.Sprintf("evaluation error for filter '%s': %s", e.Expression, e.Reason)
	}
	return fmt.Sprintf("evaluation error for filter '%s' on entry '%s': %s", e.Expression, e.EntryID, e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
