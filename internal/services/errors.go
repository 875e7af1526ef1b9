package services

import (
	"errors"
	"fmt"

	apperrors "github.com/quizdash/builder-service/internal/errors"
	"github.com/quizdash/builder-service/internal/registry"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Session specific errors
	ErrSessionNotFound = errors.New("builder session not found")

	// Structure specific errors
	ErrStructureNotFound = errors.New("question structure not found")
	ErrStructureExists   = errors.New("question already has a structure")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// PersistenceError wraps a failed write of a finished structure. The
// session stays in review when one occurs, so the author can retry
// without losing work.
type PersistenceError struct {
	Op  string
	Err error
}

func (pe *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", pe.Op, pe.Err)
}

func (pe *PersistenceError) Unwrap() error {
	return pe.Err
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrStructureNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrStructureExists)
}

// IsPersistence checks if error represents a retryable persistence
// failure
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// IsUnknownType checks if error represents a lookup of an unsupported
// question type
func IsUnknownType(err error) bool {
	return errors.Is(err, registry.ErrUnknownType)
}
