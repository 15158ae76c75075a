package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitstride/fitstride-api/internal/api"
	"github.com/fitstride/fitstride-api/internal/api/shared"
	"github.com/fitstride/fitstride-api/internal/config"
	"github.com/fitstride/fitstride-api/internal/domain"
	"github.com/fitstride/fitstride-api/internal/mocks"
	"github.com/fitstride/fitstride-api/internal/service/account"
	"github.com/fitstride/fitstride-api/internal/service/auth"
)

type handlerFixture struct {
	router   http.Handler
	store    *mocks.MockAccountStore
	notifier *mocks.MockNotifier
	images   *mocks.MockImageStore
	service  *account.Service
}

// newHandlerFixture assembles the handler over the real lifecycle service,
// the in-memory store, and real JWT issuance, mounted on the same routes the
// server registers. Passwords use the prefixing mock hasher to keep the
// suite fast.
func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	tokens, err := auth.NewTokenService(config.AuthConfig{
		JWTSecret:                        "test-secret-key-thats-long-enough-for-hmac",
		SessionTokenLifetimeMinutes:      60,
		VerificationTokenLifetimeMinutes: 60,
		BcryptCost:                       10,
	})
	require.NoError(t, err)

	accountStore := mocks.NewMockAccountStore()
	notifier := &mocks.MockNotifier{}
	images := &mocks.MockImageStore{Path: "/uploads/test-image.png"}

	svc := account.NewService(
		accountStore,
		&mocks.MockPasswordHasher{},
		&mocks.MockPasswordVerifier{},
		tokens,
		notifier,
		nil,
	)

	handler := api.NewAccountHandler(svc, images, nil)

	r := chi.NewRouter()
	r.Route("/api/accounts", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Get("/verify/{token}", handler.VerifyEmail)
		r.Put("/profile", handler.UpdateProfile)
		r.Get("/{id}", handler.GetByID)
	})

	return &handlerFixture{
		router:   r,
		store:    accountStore,
		notifier: notifier,
		images:   images,
		service:  svc,
	}
}

func (f *handlerFixture) doJSON(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *handlerFixture) register(t *testing.T, name, email, password string) {
	t.Helper()

	rec := f.doJSON(t, http.MethodPost, "/api/accounts/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("creates account and returns its identity", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		rec := f.doJSON(t, http.MethodPost, "/api/accounts/register", map[string]string{
			"name":     "Ann",
			"email":    "Ann@Example.com",
			"password": "password123",
		})

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp api.RegisterResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Ann", resp.Name)
		assert.Equal(t, "ann@example.com", resp.Email)

		assert.NotContains(t, rec.Body.String(), "password")
		assert.Len(t, f.notifier.Calls(), 1)
	})

	t.Run("missing fields return per-field details", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		rec := f.doJSON(t, http.MethodPost, "/api/accounts/register", map[string]string{
			"email": "ann@example.com",
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "All fields are required", resp.Error)
		assert.Contains(t, resp.Details, "name")
		assert.Contains(t, resp.Details, "password")
		assert.NotContains(t, resp.Details, "email")
	})

	t.Run("over-length password returns per-field details, not a 500", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		rec := f.doJSON(t, http.MethodPost, "/api/accounts/register", map[string]string{
			"name":     "Ann",
			"email":    "ann@example.com",
			"password": strings.Repeat("a", 100),
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Contains(t, resp.Details, "password")
		assert.Equal(t, 0, f.store.Count())
	})

	t.Run("malformed email returns per-field details", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		rec := f.doJSON(t, http.MethodPost, "/api/accounts/register", map[string]string{
			"name":     "Ann",
			"email":    "not-an-email",
			"password": "password123",
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Contains(t, resp.Details, "email")
		assert.Equal(t, 0, f.store.Count())
	})

	t.Run("duplicate email returns 400", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		f.register(t, "Ann", "ann@example.com", "password123")

		rec := f.doJSON(t, http.MethodPost, "/api/accounts/register", map[string]string{
			"name":     "Ann Again",
			"email":    "ann@example.com",
			"password": "password456",
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email already exists", decodeError(t, rec).Error)
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/accounts/register", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request format", decodeError(t, rec).Error)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("returns a session token", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		f.register(t, "Ann", "ann@example.com", "password123")

		rec := f.doJSON(t, http.MethodPost, "/api/accounts/login", map[string]string{
			"email":    "ann@example.com",
			"password": "password123",
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password returns generic failure", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		f.register(t, "Ann", "ann@example.com", "password123")

		rec := f.doJSON(t, http.MethodPost, "/api/accounts/login", map[string]string{
			"email":    "ann@example.com",
			"password": "wrong",
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, rec).Error)
	})

	t.Run("unknown email returns the same generic failure", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		rec := f.doJSON(t, http.MethodPost, "/api/accounts/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "password123",
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, rec).Error)
	})

	t.Run("missing email returns the same generic failure", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		rec := f.doJSON(t, http.MethodPost, "/api/accounts/login", map[string]string{
			"password": "password123",
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, rec).Error)
	})
}

func TestVerifyEmailEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("verifies with the emailed token", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		f.register(t, "Ann", "ann@example.com", "password123")
		token := f.notifier.Calls()[0].Token

		req := httptest.NewRequest(http.MethodGet, "/api/accounts/verify/"+token, nil)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		stored, err := f.store.GetByEmail(context.Background(), "ann@example.com")
		require.NoError(t, err)
		assert.True(t, stored.IsVerified)
	})

	t.Run("bogus token returns 400", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/api/accounts/verify/bogus-token", nil)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid verification link", decodeError(t, rec).Error)
	})
}

func TestGetAccountEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("returns the public view", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		f.register(t, "Ann", "ann@example.com", "password123")

		stored, err := f.store.GetByEmail(context.Background(), "ann@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/accounts/"+stored.ID.String(), nil)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var view domain.AccountView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, stored.ID, view.ID)
		assert.Equal(t, "ann@example.com", view.Email)
		assert.NotContains(t, rec.Body.String(), "hashed_password")
	})

	t.Run("malformed id returns 404", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/api/accounts/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", decodeError(t, rec).Error)
	})
}

func TestUpdateProfileEndpointJSON(t *testing.T) {
	t.Parallel()

	t.Run("applies supplied fields and preserves the rest", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		f.register(t, "Ann", "ann@example.com", "password123")

		rec := f.doJSON(t, http.MethodPut, "/api/accounts/profile", map[string]interface{}{
			"email":     "ann@example.com",
			"height_cm": 172.5,
			"gender":    "female",
		})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var view domain.AccountView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		require.NotNil(t, view.HeightCm)
		assert.Equal(t, 172.5, *view.HeightCm)
		require.NotNil(t, view.Gender)
		assert.Equal(t, domain.GenderFemale, *view.Gender)
		assert.Equal(t, "Ann", view.Name)
		assert.Nil(t, view.WeightKg)
	})

	t.Run("explicit zero height is applied while a missing key is not", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		f.register(t, "Ann", "ann@example.com", "password123")

		rec := f.doJSON(t, http.MethodPut, "/api/accounts/profile", map[string]interface{}{
			"email":     "ann@example.com",
			"height_cm": 180.0,
			"age":       30,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = f.doJSON(t, http.MethodPut, "/api/accounts/profile", map[string]interface{}{
			"email":     "ann@example.com",
			"height_cm": 0,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var view domain.AccountView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		require.NotNil(t, view.HeightCm)
		assert.Equal(t, 0.0, *view.HeightCm)
		require.NotNil(t, view.Age)
		assert.Equal(t, 30, *view.Age)
	})

	t.Run("missing email returns 400", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		rec := f.doJSON(t, http.MethodPut, "/api/accounts/profile", map[string]interface{}{
			"height_cm": 180.0,
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown account returns 404", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		rec := f.doJSON(t, http.MethodPut, "/api/accounts/profile", map[string]interface{}{
			"email": "nobody@example.com",
			"age":   30,
		})

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", decodeError(t, rec).Error)
	})
}

func TestUpdateProfileEndpointMultipart(t *testing.T) {
	t.Parallel()

	buildMultipart := func(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
		t.Helper()

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		for key, value := range fields {
			require.NoError(t, writer.WriteField(key, value))
		}
		if withImage {
			part, err := writer.CreateFormFile("profileImage", "avatar.png")
			require.NoError(t, err)
			_, err = part.Write([]byte("fake png bytes"))
			require.NoError(t, err)
		}
		require.NoError(t, writer.Close())
		return body, writer.FormDataContentType()
	}

	t.Run("uploads the image and stores its path", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		f.register(t, "Ann", "ann@example.com", "password123")

		body, contentType := buildMultipart(t, map[string]string{
			"email":     "ann@example.com",
			"weight_kg": "64.2",
		}, true)

		req := httptest.NewRequest(http.MethodPut, "/api/accounts/profile", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var view domain.AccountView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		require.NotNil(t, view.ProfileImagePath)
		assert.Equal(t, "/uploads/test-image.png", *view.ProfileImagePath)
		require.NotNil(t, view.WeightKg)
		assert.Equal(t, 64.2, *view.WeightKg)
	})

	t.Run("form fields update without an image", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		f.register(t, "Ann", "ann@example.com", "password123")

		body, contentType := buildMultipart(t, map[string]string{
			"email": "ann@example.com",
			"name":  "Ann Walker",
			"age":   "31",
		}, false)

		req := httptest.NewRequest(http.MethodPut, "/api/accounts/profile", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var view domain.AccountView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "Ann Walker", view.Name)
		require.NotNil(t, view.Age)
		assert.Equal(t, 31, *view.Age)
		assert.Nil(t, view.ProfileImagePath)
	})

	t.Run("non-numeric height returns per-field details", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		f.register(t, "Ann", "ann@example.com", "password123")

		body, contentType := buildMultipart(t, map[string]string{
			"email":     "ann@example.com",
			"height_cm": "tall",
		}, false)

		req := httptest.NewRequest(http.MethodPut, "/api/accounts/profile", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Contains(t, resp.Details, "height_cm")
	})

	t.Run("over-length password in form returns per-field details", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		f.register(t, "Ann", "ann@example.com", "password123")

		body, contentType := buildMultipart(t, map[string]string{
			"email":    "ann@example.com",
			"password": strings.Repeat("a", 100),
		}, false)

		req := httptest.NewRequest(http.MethodPut, "/api/accounts/profile", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Contains(t, resp.Details, "password")
	})

	t.Run("missing email in form returns 400", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		body, contentType := buildMultipart(t, map[string]string{
			"name": "Ann",
		}, false)

		req := httptest.NewRequest(http.MethodPut, "/api/accounts/profile", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFullAccountLifecycle(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture(t)

	// Register
	f.register(t, "Ann", "ann@example.com", "password123")

	// Verify with the emailed token
	token := f.notifier.Calls()[0].Token
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/accounts/verify/%s", token), nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Login
	rec = f.doJSON(t, http.MethodPost, "/api/accounts/login", map[string]string{
		"email":    "ann@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Update the profile
	rec = f.doJSON(t, http.MethodPut, "/api/accounts/profile", map[string]interface{}{
		"email":     "ann@example.com",
		"height_cm": 172.5,
		"weight_kg": 64.2,
		"age":       29,
		"gender":    "female",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Read it back
	stored, err := f.store.GetByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/accounts/"+stored.ID.String(), nil)
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var view domain.AccountView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.True(t, view.IsVerified)
	require.NotNil(t, view.HeightCm)
	assert.Equal(t, 172.5, *view.HeightCm)
	require.NotNil(t, view.Age)
	assert.Equal(t, 29, *view.Age)
}
