package account

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errors surfaced by the account lifecycle service.
var (
	// ErrInvalidCredentials is the single generic login failure. It covers
	// both "no such account" and "wrong password" so the response never
	// reveals whether an email is registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidVerificationLink covers every verification failure: a
	// malformed or expired token, an unknown account, and a token that was
	// already consumed. One error for all cases keeps the link opaque.
	ErrInvalidVerificationLink = errors.New("invalid verification link")
)

// ValidationError reports per-field input problems. Fields maps the field
// name to a human-readable message for exactly the fields that failed.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface, listing the failing fields in a
// stable order.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError creates a ValidationError with the given field messages.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
