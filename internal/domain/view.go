package domain

import "github.com/google/uuid"

// AccountView is the public projection of an Account. It omits the password
// hash and the verification token and is the only account shape that leaves
// the service layer.
type AccountView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	IsVerified       bool      `json:"is_verified"`
	ProfileImagePath *string   `json:"profile_image_path,omitempty"`
	HeightCm         *float64  `json:"height_cm,omitempty"`
	WeightKg         *float64  `json:"weight_kg,omitempty"`
	Age              *int      `json:"age,omitempty"`
	Gender           *Gender   `json:"gender,omitempty"`
}

// View returns the public projection of the account.
func (a *Account) View() AccountView {
	return AccountView{
		ID:               a.ID,
		Name:             a.Name,
		Email:            a.Email,
		IsVerified:       a.IsVerified,
		ProfileImagePath: a.ProfileImagePath,
		HeightCm:         a.HeightCm,
		WeightKg:         a.WeightKg,
		Age:              a.Age,
		Gender:           a.Gender,
	}
}
