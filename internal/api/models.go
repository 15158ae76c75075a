package api

// Common request/response structures

// RegisterRequest defines the payload for the account registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	// Token is the session token proving authentication, bound to the
	// account ID with the configured expiry.
	Token string `json:"token"`
}

// UpdateProfileRequest defines the JSON payload for the profile update
// endpoint. All patch fields are pointers: a missing key means "keep the
// current value" while an explicit zero is applied as-is.
type UpdateProfileRequest struct {
	Email    string   `json:"email"              validate:"required,email"`
	Name     *string  `json:"name,omitempty"`
	Password *string  `json:"password,omitempty" validate:"omitempty,max=72"`
	HeightCm *float64 `json:"height_cm,omitempty"`
	WeightKg *float64 `json:"weight_kg,omitempty"`
	Age      *int     `json:"age,omitempty"`
	Gender   *string  `json:"gender,omitempty"`
}

// RegisterResponse defines the successful response for registration: the
// public identity of the new account, never the password hash.
type RegisterResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MessageResponse is a plain acknowledgment body.
type MessageResponse struct {
	Message string `json:"message"`
}
