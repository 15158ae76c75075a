package mocks

import (
	"context"
	"errors"

	"github.com/fitstride/fitstride-api/internal/service/auth"
	"github.com/google/uuid"
)

// MockTokenService is a configurable auth.TokenService for handler tests.
type MockTokenService struct {
	SessionToken      string
	VerificationToken string
	Claims            *auth.Claims
	Err               error
}

// Ensure MockTokenService implements auth.TokenService
var _ auth.TokenService = (*MockTokenService)(nil)

func (m *MockTokenService) GenerateSessionToken(ctx context.Context, accountID uuid.UUID) (string, error) {
	return m.SessionToken, m.Err
}

func (m *MockTokenService) ValidateSessionToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Claims, nil
}

func (m *MockTokenService) GenerateVerificationToken(ctx context.Context, accountID uuid.UUID, email string) (string, error) {
	return m.VerificationToken, m.Err
}

func (m *MockTokenService) ValidateVerificationToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Claims, nil
}

// MockPasswordHasher is a trivial auth.PasswordHasher that prefixes the
// plaintext instead of hashing it.
type MockPasswordHasher struct {
	Err error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return "hashed:" + password, nil
}

// MockPasswordVerifier pairs with MockPasswordHasher.
type MockPasswordVerifier struct{}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword == "hashed:"+password {
		return nil
	}
	return errors.New("password mismatch")
}
