// Package domain defines the core business entities and errors of the
// account subsystem.
package domain

import "errors"

// Common validation errors for the Account entity.
var (
	// ErrEmptyAccountID is returned when an account has no ID.
	ErrEmptyAccountID = errors.New("account ID cannot be empty")

	// ErrEmptyName is returned when the display name is missing.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyEmail is returned when the email address is missing.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyHashedPassword is returned when an account is missing its
	// password hash. Accounts never carry a plaintext password.
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")

	// ErrInvalidGender is returned when the gender value is not one of the
	// supported values.
	ErrInvalidGender = errors.New("invalid gender value")

	// ErrInvalidAge is returned when the age is outside the accepted range.
	ErrInvalidAge = errors.New("age must be between 0 and 150")
)
