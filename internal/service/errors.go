// Package service provides the letter use cases behind the HTTP API and the
// background tasks.
package service

import (
	"errors"
	"fmt"

	"github.com/analogalgo/letters/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to status codes.
var (
	// ErrEngine indicates the card engine rejected the request inputs.
	// API layer should map this to HTTP 400 Bad Request and show the engine message.
	ErrEngine = errors.New("engine calculation failed")

	// ErrInvalidRequest indicates a letter request is missing required fields.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidRequest = errors.New("invalid letter request")

	// ErrLetterNotFound indicates that the letter does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrLetterNotFound = errors.New("letter not found")
)

// EngineError carries the message the engine reported for a failed
// calculation. It matches ErrEngine with errors.Is.
type EngineError struct {
	Message string
}

func (e *EngineError) Error() string {
	return e.Message
}

// Is reports whether target is ErrEngine.
func (e *EngineError) Is(target error) bool {
	return target == ErrEngine
}

// LetterServiceError wraps errors from the letter service with context.
type LetterServiceError struct {
	// Operation is the operation that failed (e.g., "persist_letter", "send_letter")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for LetterServiceError.
func (e *LetterServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("letter service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("letter service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LetterServiceError) Unwrap() error {
	return e.Err
}

// NewLetterServiceError creates a new LetterServiceError.
// It returns known sentinel errors directly without wrapping.
func NewLetterServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrLetterNotFound) || errors.Is(err, store.ErrLetterNotFound) {
		return ErrLetterNotFound
	}

	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr
	}

	return &LetterServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
