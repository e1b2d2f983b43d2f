package domain

import (
	"errors"
	"fmt"
)

// Storage-boundary errors. Repositories decide these; callers never inspect
// driver error codes.
var (
	ErrNotFound        = errors.New("not found")
	ErrUniqueViolation = errors.New("unique constraint violation")
)

// Login errors, both surfaced as unauthorized.
var (
	ErrUnknownUser   = errors.New("user not found")
	ErrWrongPassword = errors.New("invalid password")
)

// Date validation errors.
var (
	ErrInvalidDate  = errors.New("checkIn and checkOut must be valid dates")
	ErrInvalidRange = errors.New("checkOut must be after checkIn")
)

// ValidationError reports a payload that fails a required-field or value
// check.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// MalformedReferenceError reports an entity reference that does not have the
// 36-character opaque identifier shape. Raised before any lookup.
type MalformedReferenceError struct {
	Field string
}

func (e *MalformedReferenceError) Error() string {
	return fmt.Sprintf("%s does not look like a valid id", e.Field)
}

// DanglingReferenceError reports a well-formed reference that resolves to no
// existing entity.
type DanglingReferenceError struct {
	Field string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s does not refer to an existing entity", e.Field)
}

// IsValidationError reports whether err should surface as a bad request.
func IsValidationError(err error) bool {
	var ve ValidationError
	var mr *MalformedReferenceError
	var dr *DanglingReferenceError
	return errors.As(err, &ve) || errors.As(err, &mr) || errors.As(err, &dr) ||
		errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidRange)
}
