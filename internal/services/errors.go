package services

import (
	"errors"
	"fmt"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/validator"
)

// Sentinel errors mapped to HTTP status codes by the handler layer.
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrNotEligible        = errors.New("does not meet tutor eligibility requirements")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyRated       = errors.New("session has already been rated")
)

// ValidationFailure wraps per-field errors so callers can match on
// ErrValidationFailed while handlers render the field details.
type ValidationFailure struct {
	Fields validator.ValidationErrors
}

func (v *ValidationFailure) Error() string {
	return fmt.Sprintf("%v: %s", ErrValidationFailed, v.Fields.Error())
}

func (v *ValidationFailure) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationFailure wraps field errors; returns nil when there are none.
func NewValidationFailure(fields validator.ValidationErrors) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationFailure{Fields: fields}
}

// FieldErrors extracts the per-field details from a validation failure.
func FieldErrors(err error) validator.ValidationErrors {
	var vf *ValidationFailure
	if errors.As(err, &vf) {
		return vf.Fields
	}
	return nil
}
