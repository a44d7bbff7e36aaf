package debug

import (
	"beelinks-api/internal/repair"
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

// StatusResponse wraps the consistency check result
type StatusResponse struct {
	BaseResponse
	Status *repair.ProfileStatus `json:"status"`
}

// SyncResponse wraps a repair run report
type SyncResponse struct {
	BaseResponse
	Report *repair.SyncReport `json:"report"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string, code int16) ErrorResponse {
	return ErrorResponse{
		BaseResponse: BaseResponse{Code: code},
		Detail:       message,
	}
}
