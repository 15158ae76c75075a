package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender is the self-reported gender stored on an account profile.
type Gender string

// Supported gender values.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the supported gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Account represents a registered user of the FitStride application.
// It is the sole persistent entity of the account subsystem and carries
// both the authentication state (hashed password, verification state) and
// the fitness profile fields.
//
// Profile fields are pointers so that "not set" is representable and
// distinguishable from a zero value.
type Account struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	HashedPassword    string    `json:"-"` // Never expose the password hash in JSON
	IsVerified        bool      `json:"is_verified"`
	VerificationToken *string   `json:"-"` // Present only while email verification is pending
	ProfileImagePath  *string   `json:"profile_image_path,omitempty"`
	HeightCm          *float64  `json:"height_cm,omitempty"`
	WeightKg          *float64  `json:"weight_kg,omitempty"`
	Age               *int      `json:"age,omitempty"`
	Gender            *Gender   `json:"gender,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewAccount creates a new, unverified Account with the given display name,
// email, and already-hashed password. It generates a fresh UUID, normalizes
// the email, and sets the creation/update timestamps.
//
// The caller is responsible for hashing the password before calling this
// function; plaintext passwords never enter the domain layer.
func NewAccount(name, email, hashedPassword string) (*Account, error) {
	account := &Account{
		ID:             uuid.New(),
		Name:           name,
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		IsVerified:     false,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// NormalizeEmail canonicalizes an email address so that the store's
// uniqueness constraint treats differently-cased spellings as the same key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks that the Account has valid data.
func (a *Account) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAccountID
	}

	if a.Name == "" {
		return ErrEmptyName
	}

	if a.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(a.Email) {
		return ErrInvalidEmail
	}

	if a.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	if a.Gender != nil && !a.Gender.Valid() {
		return ErrInvalidGender
	}

	return nil
}

// validEmailFormat performs a light structural check on an email address:
// a non-empty local part, an "@", and a domain containing an interior dot.
// Full RFC 5322 validation is left to the request layer.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
