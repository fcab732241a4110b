// Package service implements the application's use cases on top of the
// store interfaces: flashcard and note management, AI assistance, and
// session history.
package service

import (
	"errors"
	"fmt"
)

// ErrGenerationUnavailable is returned when an AI endpoint is called but no
// generator was configured (for example, a missing API key).
var ErrGenerationUnavailable = errors.New("AI generation is not configured")

// ServiceError wraps service-layer failures with operation context while
// preserving the underlying error for errors.Is/As checks.
type ServiceError struct {
	// Operation is the service operation that failed, such as "create_card".
	Operation string

	// Message is a human-readable description of the failure.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError with the given context.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Message: message, Err: err}
}
