package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound is returned when a lookup matches nothing.
	ErrRecordNotFound = gorm.ErrRecordNotFound

	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = gorm.ErrDuplicatedKey
)

// IsNotFoundError reports whether err means the record does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err is a unique constraint violation.
// Some drivers surface the raw constraint error instead of
// gorm.ErrDuplicatedKey, so the message is checked as a fallback.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "23505")
}
