package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitstride/fitstride-api/internal/api/middleware"
	"github.com/fitstride/fitstride-api/internal/mocks"
	"github.com/fitstride/fitstride-api/internal/service/auth"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	accountID := uuid.New()

	newHandler := func(tokens *mocks.MockTokenService) (http.Handler, *bool, *uuid.UUID) {
		called := false
		var gotID uuid.UUID
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			gotID, _ = middleware.GetAccountID(r)
			w.WriteHeader(http.StatusOK)
		})
		return middleware.NewAuthMiddleware(tokens).Authenticate(next), &called, &gotID
	}

	t.Run("valid token reaches the handler with the account ID", func(t *testing.T) {
		t.Parallel()

		tokens := &mocks.MockTokenService{Claims: &auth.Claims{AccountID: accountID}}
		handler, called, gotID := newHandler(tokens)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *called)
		assert.Equal(t, accountID, *gotID)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		t.Parallel()

		handler, called, _ := newHandler(&mocks.MockTokenService{})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		t.Parallel()

		handler, called, _ := newHandler(&mocks.MockTokenService{})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
	})

	t.Run("expired token names the expiry", func(t *testing.T) {
		t.Parallel()

		handler, called, _ := newHandler(&mocks.MockTokenService{Err: auth.ErrExpiredToken})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token expired")
		assert.False(t, *called)
	})

	t.Run("invalid token is rejected generically", func(t *testing.T) {
		t.Parallel()

		handler, called, _ := newHandler(&mocks.MockTokenService{Err: auth.ErrInvalidToken})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid token")
		assert.False(t, *called)
	})
}
