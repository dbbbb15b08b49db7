package store

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced to the HTTP layer. Anything not matching one
// of these is a storage failure: the handler logs the cause and returns
// a generic 500.
var (
	// ErrNotFound means the referenced product, category, sale or user
	// does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidTransition means a sale cancellation was attempted from
	// a state that does not allow it (refunded sales).
	ErrInvalidTransition = errors.New("invalid sale status transition")

	// ErrSaleNumberExhausted means every sale-number allocation attempt
	// collided with an existing number.
	ErrSaleNumberExhausted = errors.New("could not allocate a unique sale number")
)

// ValidationError reports bad input detected before any write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// isUniqueViolation detects a unique-constraint failure from either
// driver. SQLite reports "UNIQUE constraint failed", MySQL "Duplicate
// entry"; neither exposes a portable error code through database/sql.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}
