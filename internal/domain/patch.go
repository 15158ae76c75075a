package domain

import "time"

// ProfilePatch describes a partial profile update. Every field is a pointer:
// nil means "not supplied, keep the current value" while a non-nil pointer to
// a zero value (height 0, empty string) is an explicit assignment. This keeps
// "absent" and "falsy" apart, which a plain struct merge cannot do.
//
// Password is carried here for transport but is applied by the lifecycle
// service, which must re-hash it before it reaches the account.
type ProfilePatch struct {
	Name     *string
	Password *string
	HeightCm *float64
	WeightKg *float64
	Age      *int
	Gender   *Gender
	// ImagePath is the stored location of a freshly uploaded profile image.
	// The upload itself happens in a collaborator; by the time the patch is
	// applied this is an opaque path string.
	ImagePath *string
}

// Validate checks the supplied patch fields. Absent (nil) fields are always
// valid.
func (p *ProfilePatch) Validate() error {
	if p.Gender != nil && !p.Gender.Valid() {
		return ErrInvalidGender
	}

	if p.Age != nil && (*p.Age < 0 || *p.Age > 150) {
		return ErrInvalidAge
	}

	return nil
}

// Apply copies every supplied field onto the account and bumps UpdatedAt.
// The Password field is deliberately not applied here: it requires hashing,
// which is the lifecycle service's job.
func (p *ProfilePatch) Apply(a *Account) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.HeightCm != nil {
		a.HeightCm = p.HeightCm
	}
	if p.WeightKg != nil {
		a.WeightKg = p.WeightKg
	}
	if p.Age != nil {
		a.Age = p.Age
	}
	if p.Gender != nil {
		a.Gender = p.Gender
	}
	if p.ImagePath != nil {
		a.ProfileImagePath = p.ImagePath
	}

	a.UpdatedAt = time.Now().UTC()
}
