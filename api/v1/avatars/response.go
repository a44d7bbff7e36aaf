package avatars

import (
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

// AvatarsResponse wraps the caller's avatar history
type AvatarsResponse struct {
	BaseResponse
	Avatars []models.UserAvatar `json:"avatars"`
}

// AvatarResponse wraps a single avatar
type AvatarResponse struct {
	BaseResponse
	Avatar *models.UserAvatar `json:"avatar"`
}

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	BaseResponse
	Detail string `json:"detail"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string, code int16) ErrorResponse {
	return ErrorResponse{
		BaseResponse: BaseResponse{Code: code},
		Detail:       message,
	}
}

// NewSuccessResponse creates a new success response
func NewSuccessResponse(message string, code int16) SuccessResponse {
	return SuccessResponse{
		BaseResponse: BaseResponse{Code: code},
		Detail:       message,
	}
}
