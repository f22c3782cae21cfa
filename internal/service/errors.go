package service

import "fmt"

// ValidationError rejects a malformed request before any provider call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// CalculationError marks a per-body or per-line failure. The affected body is
// skipped; the request still returns whatever succeeded.
type CalculationError struct {
	BodyID string
	Err    error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("calculation failed for %s: %v", e.BodyID, e.Err)
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

// FatalError aborts service initialization, never an individual request.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal: %v", e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
