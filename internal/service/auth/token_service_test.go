package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitstride/fitstride-api/internal/config"
)

const testJWTSecret = "test-secret-key-thats-long-enough-for-hmac"

func newTestTokenService(t *testing.T) *hmacTokenService {
	t.Helper()

	svc, err := NewTokenService(config.AuthConfig{
		JWTSecret:                        testJWTSecret,
		SessionTokenLifetimeMinutes:      30 * 24 * 60,
		VerificationTokenLifetimeMinutes: 72 * 60,
		BcryptCost:                       10,
	})
	require.NoError(t, err)

	impl, ok := svc.(*hmacTokenService)
	require.True(t, ok)
	return impl
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()

		_, err := NewTokenService(config.AuthConfig{
			JWTSecret:                        "too-short",
			SessionTokenLifetimeMinutes:      60,
			VerificationTokenLifetimeMinutes: 60,
		})
		assert.Error(t, err)
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	ctx := context.Background()
	accountID := uuid.New()

	token, err := svc.GenerateSessionToken(ctx, accountID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateSessionToken(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, accountID.String(), claims.Subject)
	assert.Equal(t, "session", claims.TokenType)
	assert.Empty(t, claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestVerificationTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	ctx := context.Background()
	accountID := uuid.New()

	token, err := svc.GenerateVerificationToken(ctx, accountID, "ann@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateVerificationToken(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, "verify", claims.TokenType)
}

func TestTokenTypeMismatch(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	ctx := context.Background()
	accountID := uuid.New()

	sessionToken, err := svc.GenerateSessionToken(ctx, accountID)
	require.NoError(t, err)
	verifyToken, err := svc.GenerateVerificationToken(ctx, accountID, "ann@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateVerificationToken(ctx, sessionToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateSessionToken(ctx, verifyToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestExpiredToken(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	ctx := context.Background()

	issuedAt := time.Now()
	svc.timeFunc = func() time.Time { return issuedAt }

	token, err := svc.GenerateSessionToken(ctx, uuid.New())
	require.NoError(t, err)

	// Jump past the session lifetime plus the allowed clock skew.
	svc.timeFunc = func() time.Time {
		return issuedAt.Add(svc.sessionLifetime + svc.clockSkew + time.Minute)
	}

	_, err = svc.ValidateSessionToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestClockSkewTolerance(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	ctx := context.Background()

	issuedAt := time.Now()
	svc.timeFunc = func() time.Time { return issuedAt }

	token, err := svc.GenerateSessionToken(ctx, uuid.New())
	require.NoError(t, err)

	// Just past expiry but inside the skew window still validates.
	svc.timeFunc = func() time.Time {
		return issuedAt.Add(svc.sessionLifetime + svc.clockSkew/2)
	}

	_, err = svc.ValidateSessionToken(ctx, token)
	assert.NoError(t, err)
}

func TestInvalidTokens(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	ctx := context.Background()

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		_, err := svc.ValidateSessionToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		t.Parallel()

		other := newTestTokenService(t)
		other.signingKey = []byte("a-completely-different-signing-key-here")

		token, err := other.GenerateSessionToken(ctx, uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateSessionToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered token", func(t *testing.T) {
		t.Parallel()

		token, err := svc.GenerateSessionToken(ctx, uuid.New())
		require.NoError(t, err)

		tampered := token + "tamper"
		_, err = svc.ValidateSessionToken(ctx, tampered)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
