package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitstride/fitstride-api/internal/config"
	"github.com/fitstride/fitstride-api/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type claim values.
const (
	tokenTypeSession = "session"
	tokenTypeVerify  = "verify"
)

// hmacTokenService is an implementation of TokenService using HMAC-SHA
// signing.
type hmacTokenService struct {
	signingKey           []byte
	sessionLifetime      time.Duration
	verificationLifetime time.Duration
	timeFunc             func() time.Time // Injectable for testing
	clockSkew            time.Duration    // Allowed drift when validating time claims
}

// tokenCustomClaims defines the structure of the JWT claims we use.
type tokenCustomClaims struct {
	AccountID uuid.UUID `json:"uid"`
	Email     string    `json:"email,omitempty"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

// Ensure hmacTokenService implements TokenService
var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a new token service using HMAC-SHA256 signing.
// Both token lifetimes come from configuration; no call site carries its own
// expiry literal.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacTokenService{
		signingKey:           []byte(cfg.JWTSecret),
		sessionLifetime:      time.Duration(cfg.SessionTokenLifetimeMinutes) * time.Minute,
		verificationLifetime: time.Duration(cfg.VerificationTokenLifetimeMinutes) * time.Minute,
		timeFunc:             time.Now,
		clockSkew:            2 * time.Minute,
	}, nil
}

// GenerateSessionToken creates a signed session token bound to the account ID.
func (s *hmacTokenService) GenerateSessionToken(
	ctx context.Context,
	accountID uuid.UUID,
) (string, error) {
	return s.generate(ctx, accountID, "", tokenTypeSession, s.sessionLifetime)
}

// ValidateSessionToken validates a session token and returns its claims.
func (s *hmacTokenService) ValidateSessionToken(
	ctx context.Context,
	tokenString string,
) (*Claims, error) {
	return s.validate(ctx, tokenString, tokenTypeSession)
}

// GenerateVerificationToken creates a signed one-time email verification
// token carrying the email claim that VerifyEmail matches against the stored
// token value.
func (s *hmacTokenService) GenerateVerificationToken(
	ctx context.Context,
	accountID uuid.UUID,
	email string,
) (string, error) {
	return s.generate(ctx, accountID, email, tokenTypeVerify, s.verificationLifetime)
}

// ValidateVerificationToken validates a verification token and returns its
// claims.
func (s *hmacTokenService) ValidateVerificationToken(
	ctx context.Context,
	tokenString string,
) (*Claims, error) {
	return s.validate(ctx, tokenString, tokenTypeVerify)
}

func (s *hmacTokenService) generate(
	ctx context.Context,
	accountID uuid.UUID,
	email string,
	tokenType string,
	lifetime time.Duration,
) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := tokenCustomClaims{
		AccountID: accountID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign token",
			"error", err,
			"account_id", accountID,
			"token_type", tokenType,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return signedToken, nil
}

func (s *hmacTokenService) validate(
	ctx context.Context,
	tokenString string,
	wantType string,
) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired",
				"token_type", wantType)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed: token not yet valid",
				"token_type", wantType)
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("token validation failed",
				"token_type", wantType,
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*tokenCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	if claims.TokenType != wantType {
		log.Debug("token validation failed: wrong token type",
			"expected", wantType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	return &Claims{
		AccountID: claims.AccountID,
		Email:     claims.Email,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
