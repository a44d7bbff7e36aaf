package users

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"beelinks-api/internal/link"
	"beelinks-api/internal/models"
)

// BaseResponse contains fields common to all responses
type BaseResponse struct {
	Code int16 `json:"code"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	BaseResponse
	Detail string `json:"detail"`
}

// Profile is the user profile in responses
type Profile struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	Email           string  `json:"email,omitempty"`
	FullName        string  `json:"fullName"`
	Bio             string  `json:"bio"`
	AvatarURL       string  `json:"avatarUrl"`
	IsProfilePublic bool    `json:"isProfilePublic"`
	CustomSlug      *string `json:"customSlug"`
	ThemePreference string  `json:"themePreference"`
	EmailVerified   bool    `json:"emailVerified"`
	CreatedAt       int64   `json:"createdAt"`
}

// ProfileResponse wraps the caller's own profile
type ProfileResponse struct {
	BaseResponse
	Profile Profile `json:"profile"`
}

// PublicProfileResponse is the public page payload: profile, active links
// and the active theme in one round trip
type PublicProfileResponse struct {
	BaseResponse
	Profile Profile              `json:"profile"`
	Links   []link.LinkWithStats `json:"links"`
	Theme   *models.Theme        `json:"theme,omitempty"`
}

// UsernameAvailabilityResponse reports whether a username can be claimed
type UsernameAvailabilityResponse struct {
	BaseResponse
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

// SettingsResponse wraps the user settings
type SettingsResponse struct {
	BaseResponse
	Settings *models.UserSettings `json:"settings"`
}

// ThemesResponse wraps the user's themes
type ThemesResponse struct {
	BaseResponse
	Themes []models.Theme `json:"themes"`
}

// ThemeResponse wraps a single theme
type ThemeResponse struct {
	BaseResponse
	Theme *models.Theme `json:"theme"`
}

// QRCodeResponse wraps the stored profile QR code
type QRCodeResponse struct {
	BaseResponse
	ProfileURL string `json:"profileUrl"`
	ImageURL   string `json:"imageUrl"`
	Size       int    `json:"size"`
}

// NewProfile maps a user model to its response shape. Email is cleared for
// public views.
func NewProfile(user *models.User, includeEmail bool) Profile {
	p := Profile{
		ID:              user.ID,
		Username:        user.Username,
		FullName:        user.FullName,
		Bio:             user.Bio,
		AvatarURL:       user.AvatarURL,
		IsProfilePublic: user.IsProfilePublic,
		CustomSlug:      user.CustomSlug,
		ThemePreference: user.ThemePreference,
		EmailVerified:   user.EmailVerified,
		CreatedAt:       user.CreatedAt,
	}
	if includeEmail {
		p.Email = user.Email
	}
	return p
}

// NewValidationError creates a new validation error response
func NewValidationError(err error, code int16) ErrorResponse {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		full := errs[0].Error()
		parts := strings.SplitN(full, "Error:", 2)
		if len(parts) == 2 {
			return NewErrorResponse(strings.TrimSpace(parts[1]), code)
		}
		return NewErrorResponse(full, code)
	}
	return NewErrorResponse("Invalid request format", code)
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string, code int16) ErrorResponse {
	return ErrorResponse{
		BaseResponse: BaseResponse{Code: code},
		Detail:       message,
	}
}

// NewProfileResponse creates a response with the caller's own profile
func NewProfileResponse(user *models.User, code int16) ProfileResponse {
	return ProfileResponse{
		BaseResponse: BaseResponse{Code: code},
		Profile:      NewProfile(user, true),
	}
}

// NewPublicProfileResponse creates the public page payload
func NewPublicProfileResponse(user *models.User, links []link.LinkWithStats, theme *models.Theme, code int16) PublicProfileResponse {
	return PublicProfileResponse{
		BaseResponse: BaseResponse{Code: code},
		Profile:      NewProfile(user, false),
		Links:        links,
		Theme:        theme,
	}
}
