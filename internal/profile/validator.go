package profile

import (
	"regexp"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-z0-9_]{1,30}$`)
	slugRegex     = regexp.MustCompile(`^[a-z0-9\-_]{1,50}$`)
	colorRegex    = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// NewProfileValidator creates a new profile validator
func NewProfileValidator() ProfileValidator {
	return &profileValidator{}
}

// ValidateEmail checks email format
func (v *profileValidator) ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateUsername checks username format
func (v *profileValidator) ValidateUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidateUpdate validates a partial profile update
func (v *profileValidator) ValidateUpdate(input UpdateProfileInput) error {
	if input.Username != nil && !v.ValidateUsername(*input.Username) {
		return ErrInvalidUsername
	}

	if input.CustomSlug != nil && *input.CustomSlug != "" && !slugRegex.MatchString(*input.CustomSlug) {
		return ErrInvalidInput
	}

	if input.Bio != nil && len(*input.Bio) > 255 {
		return ErrInvalidInput
	}

	if input.FullName != nil && len(*input.FullName) > 100 {
		return ErrInvalidInput
	}

	return nil
}

// validHexColor reports whether the value is a #RRGGBB color
func validHexColor(value string) bool {
	return colorRegex.MatchString(value)
}
