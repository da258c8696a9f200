package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services, repositories and the delivery layer.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrReferentialIntegrity = errors.New("referenced record does not exist")
	ErrUpstream             = errors.New("upstream failure")
	ErrDuplicateBooking     = errors.New("booking already exists for this email")
	ErrSlugTaken            = errors.New("slug already taken")
)

// ValidationError describes a client input problem. It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid returns a *ValidationError for field with a formatted message.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
