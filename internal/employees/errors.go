package employees

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the repository layer.
var (
	ErrNotFound       = errors.New("employee not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "employee validation failed"
}

// ConflictError reports a uniqueness violation, keyed by field.
type ConflictError struct {
	Fields map[string]string
}

func (e *ConflictError) Error() string {
	return "employee conflict"
}

// NotFoundError reports a missing employee by id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Employee with id %d not found", e.ID)
}

func emailConflict(email string) *ConflictError {
	return &ConflictError{Fields: map[string]string{
		"email": fmt.Sprintf("Email '%s' already exists", email),
	}}
}
