package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fitstride/fitstride-api/internal/api/shared"
	"github.com/fitstride/fitstride-api/internal/domain"
	"github.com/fitstride/fitstride-api/internal/service/account"
)

// maxImageUploadBytes bounds multipart profile-image uploads.
const maxImageUploadBytes = 10 << 20 // 10 MiB

// maxPasswordBytes is bcrypt's input limit; longer passwords are a client
// error, not a hashing fault.
const maxPasswordBytes = 72

// AccountService is the lifecycle service contract the handler depends on.
type AccountService interface {
	Register(ctx context.Context, name, email, password string) (domain.AccountView, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyEmail(ctx context.Context, token string) error
	GetAccount(ctx context.Context, id uuid.UUID) (domain.AccountView, error)
	UpdateProfile(ctx context.Context, email string, patch domain.ProfilePatch) (domain.AccountView, error)
}

// ImageStore is the uploaded-file collaborator: it persists an image stream
// and yields the stored path handed to UpdateProfile as an opaque value.
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// AccountHandler handles the account API requests.
type AccountHandler struct {
	service   AccountService
	images    ImageStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewAccountHandler creates a new AccountHandler with the given dependencies.
func NewAccountHandler(service AccountService, images ImageStore, log *slog.Logger) *AccountHandler {
	if log == nil {
		log = slog.Default()
	}

	return &AccountHandler{
		service:   service,
		images:    images,
		validator: validator.New(),
		logger:    log.With(slog.String("component", "account_handler")),
	}
}

// Register handles POST /api/accounts/register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		message, fields := registerValidationDetails(err)
		shared.RespondWithValidationError(w, r, message, fields)
		return
	}

	view, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{
		ID:    view.ID.String(),
		Name:  view.Name,
		Email: view.Email,
	})
}

// Login handles POST /api/accounts/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		// Shape failures collapse into the same generic credential error as
		// a wrong password, so responses never reveal which part was off.
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{Token: token})
}

// VerifyEmail handles GET /api/accounts/verify/{token}.
func (h *AccountHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid verification link")
		return
	}

	if err := h.service.VerifyEmail(r.Context(), token); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Email verified successfully",
	})
}

// GetByID handles GET /api/accounts/{id}.
func (h *AccountHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
		return
	}

	view, err := h.service.GetAccount(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// UpdateProfile handles PUT /api/accounts/profile. The body is either JSON
// or multipart/form-data; only multipart can carry a profile image.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var email string
	var patch domain.ProfilePatch
	var err error

	if isMultipart(r) {
		email, patch, err = h.parseMultipartUpdate(r)
	} else {
		email, patch, err = h.parseJSONUpdate(r)
	}
	if err != nil {
		var ve *account.ValidationError
		if errors.As(err, &ve) {
			shared.RespondWithValidationError(w, r, "Validation error", ve.Fields)
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	view, err := h.service.UpdateProfile(r.Context(), email, patch)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

func (h *AccountHandler) parseJSONUpdate(r *http.Request) (string, domain.ProfilePatch, error) {
	var req UpdateProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		return "", domain.ProfilePatch{}, err
	}

	if err := h.validator.Struct(req); err != nil {
		fields := map[string]string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.Field() {
				case "Email":
					fields["email"] = "A valid email is required"
				case "Password":
					fields["password"] = "Password must be at most 72 characters"
				}
			}
		}
		if len(fields) == 0 {
			fields["request"] = "Invalid request"
		}
		return "", domain.ProfilePatch{}, account.NewValidationError(fields)
	}

	patch := domain.ProfilePatch{
		Name:     req.Name,
		Password: req.Password,
		HeightCm: req.HeightCm,
		WeightKg: req.WeightKg,
		Age:      req.Age,
	}
	if req.Gender != nil {
		g := domain.Gender(*req.Gender)
		patch.Gender = &g
	}

	return req.Email, patch, nil
}

// parseMultipartUpdate reads the form fields and the optional profileImage
// file. Field presence is decided by whether the key appears in the form at
// all, so an explicit "0" is applied while a missing key is preserved.
func (h *AccountHandler) parseMultipartUpdate(r *http.Request) (string, domain.ProfilePatch, error) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		return "", domain.ProfilePatch{}, err
	}

	form := r.MultipartForm
	email := formValue(form.Value, "email")
	if email == nil || *email == "" {
		return "", domain.ProfilePatch{}, account.NewValidationError(map[string]string{
			"email": "Email is required",
		})
	}

	patch := domain.ProfilePatch{
		Name:     formValue(form.Value, "name"),
		Password: formValue(form.Value, "password"),
	}

	fields := map[string]string{}
	if patch.Password != nil && len(*patch.Password) > maxPasswordBytes {
		fields["password"] = "Password must be at most 72 characters"
	}
	patch.HeightCm = parseFloatField(form.Value, "height_cm", fields)
	patch.WeightKg = parseFloatField(form.Value, "weight_kg", fields)
	patch.Age = parseIntField(form.Value, "age", fields)
	if g := formValue(form.Value, "gender"); g != nil {
		gender := domain.Gender(*g)
		patch.Gender = &gender
	}
	if len(fields) > 0 {
		return "", domain.ProfilePatch{}, account.NewValidationError(fields)
	}

	file, header, err := r.FormFile("profileImage")
	if err == nil {
		defer func() {
			if cerr := file.Close(); cerr != nil {
				h.logger.Warn("failed to close uploaded file", "error", cerr)
			}
		}()

		path, err := h.images.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			return "", domain.ProfilePatch{}, err
		}
		patch.ImagePath = &path
	} else if !errors.Is(err, http.ErrMissingFile) {
		return "", domain.ProfilePatch{}, err
	}

	return *email, patch, nil
}

// registerValidationDetails translates validator failures on the register
// payload into the per-field details envelope. Missing fields keep the
// "All fields are required" message; other failures (malformed email,
// over-length password) report as a plain validation error.
func registerValidationDetails(err error) (string, map[string]string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Validation error", map[string]string{"request": "Invalid request"}
	}

	fields := map[string]string{}
	onlyRequired := true
	for _, fe := range verrs {
		if fe.Tag() != "required" {
			onlyRequired = false
		}
		switch fe.Field() {
		case "Name":
			fields["name"] = "Name is required"
		case "Email":
			if fe.Tag() == "required" {
				fields["email"] = "Email is required"
			} else {
				fields["email"] = "Email is invalid"
			}
		case "Password":
			if fe.Tag() == "max" {
				fields["password"] = "Password must be at most 72 characters"
			} else {
				fields["password"] = "Password is required"
			}
		}
	}

	if onlyRequired {
		return "All fields are required", fields
	}
	return "Validation error", fields
}

// respondServiceError translates service-layer errors into the API contract.
func (h *AccountHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := account.AsValidationError(err); ok {
		shared.RespondWithValidationError(w, r, "All fields are required", ve.Fields)
		return
	}

	status := MapErrorToStatusCode(err)
	if status == http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}

func isMultipart(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	return contentType != "" && len(contentType) >= 19 && contentType[:19] == "multipart/form-data"
}

func formValue(values map[string][]string, key string) *string {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return nil
	}
	return &v[0]
}

func parseFloatField(values map[string][]string, key string, fields map[string]string) *float64 {
	raw := formValue(values, key)
	if raw == nil {
		return nil
	}
	f, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		fields[key] = "must be a number"
		return nil
	}
	return &f
}

func parseIntField(values map[string][]string, key string, fields map[string]string) *int {
	raw := formValue(values, key)
	if raw == nil {
		return nil
	}
	n, err := strconv.Atoi(*raw)
	if err != nil {
		fields[key] = "must be an integer"
		return nil
	}
	return &n
}
