package api

import (
	"errors"
	"net/http"

	"github.com/fitstride/fitstride-api/internal/service/account"
	"github.com/fitstride/fitstride-api/internal/service/auth"
	"github.com/fitstride/fitstride-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var ve *account.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrAccountNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Expected bad-request outcomes. Duplicate email and bad credentials
	// are 400s on this API's contract.
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, account.ErrInvalidCredentials),
		errors.Is(err, account.ErrInvalidVerificationLink),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &ve):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, store.ErrAccountNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, account.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, account.ErrInvalidVerificationLink):
		return "Invalid verification link"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
