package auth

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"beelinks-api/internal/jwt"
	"beelinks-api/internal/models"
)

// User represents a user in the response
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session represents a session in the response
type Session struct {
	ID        string `json:"id"`
	ExpiresAt int64  `json:"expiresAt"`
}

// BaseResponse contains fields common to all responses
type BaseResponse struct {
	Code int16 `json:"code"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	BaseResponse
	Detail string `json:"detail"`
}

// AuthResponse represents the response from successful authentication
type AuthResponse struct {
	BaseResponse
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	TokenType    string   `json:"tokenType"`
	Scopes       []string `json:"scopes"`
	Session      Session  `json:"session"`
	User         User     `json:"user"`
	ExpiresIn    int64    `json:"expiresIn"`

	// ProfileMissing tells the client to run the profile repair flow
	ProfileMissing bool `json:"profileMissing,omitempty"`
}

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	BaseResponse
	Detail string `json:"detail"`
}

// RefreshTokenResponse represents the response from token refresh
type RefreshTokenResponse struct {
	BaseResponse
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	TokenType    string   `json:"tokenType"`
	Scopes       []string `json:"scopes"`
	ExpiresIn    int64    `json:"expiresIn"`
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

// NewAuthResponse creates a new authentication response
func NewAuthResponse(
	token jwt.TokenPair,
	user *models.User,
	session *models.UserSession,
	profileMissing bool,
	code int16,
) AuthResponse {
	return AuthResponse{
		BaseResponse: BaseResponse{Code: code},
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Scopes:       token.Scopes,
		User: User{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
		Session: Session{
			ID:        session.ID,
			ExpiresAt: session.ExpiresAt,
		},
		ExpiresIn:      token.ExpiresIn,
		ProfileMissing: profileMissing,
	}
}

// NewSuccessResponse creates a new success response
func NewSuccessResponse(message string, code int16) SuccessResponse {
	return SuccessResponse{
		BaseResponse: BaseResponse{Code: code},
		Detail:       message,
	}
}

// NewRefreshTokenResponse creates a new token refresh response
func NewRefreshTokenResponse(token jwt.TokenPair, code int16) RefreshTokenResponse {
	return RefreshTokenResponse{
		BaseResponse: BaseResponse{Code: code},
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Scopes:       token.Scopes,
		ExpiresIn:    token.ExpiresIn,
	}
}
