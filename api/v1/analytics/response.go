package analytics

import (
	"beelinks-api/internal/analytics"
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

// StatsResponse wraps the caller's aggregated dashboard numbers
type StatsResponse struct {
	BaseResponse
	Stats *analytics.UserStats `json:"stats"`
}

// LinkAnalyticsResponse wraps one link's event breakdown
type LinkAnalyticsResponse struct {
	BaseResponse
	Analytics *analytics.LinkAnalytics `json:"analytics"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string, code int16) ErrorResponse {
	return ErrorResponse{
		BaseResponse: BaseResponse{Code: code},
		Detail:       message,
	}
}
