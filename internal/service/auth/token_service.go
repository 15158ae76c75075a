package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenService defines operations for issuing and validating the two token
// kinds the account subsystem uses: session tokens proving prior
// authentication, and one-time email verification tokens.
type TokenService interface {
	// GenerateSessionToken creates a signed session token bound to the
	// account ID with the configured session lifetime. No account data
	// beyond the ID is embedded.
	GenerateSessionToken(ctx context.Context, accountID uuid.UUID) (string, error)

	// ValidateSessionToken validates the provided session token string and
	// extracts the claims. Returns ErrExpiredToken if the expiry has passed
	// and ErrInvalidToken for signature or format failures, so callers can
	// distinguish "log in again" from "corrupt request".
	ValidateSessionToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateVerificationToken creates a signed one-time email verification
	// token carrying the account ID and the email being verified. It has its
	// own, shorter lifetime than session tokens.
	GenerateVerificationToken(ctx context.Context, accountID uuid.UUID, email string) (string, error)

	// ValidateVerificationToken validates the provided verification token
	// string and extracts the claims, with the same error distinctions as
	// ValidateSessionToken.
	ValidateVerificationToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated claims of a token issued by this service.
type Claims struct {
	// AccountID is the unique identifier of the account the token was
	// issued for.
	AccountID uuid.UUID `json:"uid,omitempty"`

	// Email is the address being verified; set only on verification tokens.
	Email string `json:"email,omitempty"`

	// TokenType indicates the purpose of the token ("session" or "verify").
	// Used to prevent token misuse across different contexts.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
