package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrValidation signals a request parameter that failed validation.
	ErrValidation = errors.New("validation failed")
	// ErrStore signals a data store failure during a read or write.
	ErrStore = errors.New("store failure")
	// ErrInvalidCredentials signals a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError wraps ErrValidation with the offending parameter name so
// the transport layer can report which field was rejected.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: parameter %q %s", ErrValidation.Error(), e.Param, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation creates a validation error for a named parameter.
func NewValidation(param, reason string) error {
	return &ValidationError{Param: param, Reason: reason}
}
