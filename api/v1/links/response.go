package links

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

// LinksResponse wraps a list of links with their derived stats
type LinksResponse struct {
	BaseResponse
	Links []link.LinkWithStats `json:"links"`
}

// LinkResponse wraps a single link
type LinkResponse struct {
	BaseResponse
	Link *models.Link `json:"link"`
}

// TagsResponse wraps the user's tags
type TagsResponse struct {
	BaseResponse
	Tags []models.LinkTag `json:"tags"`
}

// TagResponse wraps a single tag
type TagResponse struct {
	BaseResponse
	Tag *models.LinkTag `json:"tag"`
}

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	BaseResponse
	Detail string `json:"detail"`
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

// NewSuccessResponse creates a new success response
func NewSuccessResponse(message string, code int16) SuccessResponse {
	return SuccessResponse{
		BaseResponse: BaseResponse{Code: code},
		Detail:       message,
	}
}
