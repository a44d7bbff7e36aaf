package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"beelinks-api/internal/analytics"
	"beelinks-api/internal/logger"
	"beelinks-api/internal/session"
	"beelinks-api/internal/utils"
	"beelinks-api/pkg/status"
)

// NewHandler creates a new analytics handler
func NewHandler(analyticsService analytics.AnalyticsService, log *logger.Logger) *Handler {
	return &Handler{
		analyticsService: analyticsService,
		logger:           log,
	}
}

// secureLog logs errors without sensitive data that might expose credentials
func (h *Handler) secureLog(err error, message string, route string) {
	requestID := utils.GenerateShortID()
	h.logger.WithFields(logrus.Fields{
		"requestID": requestID,
		"route":     route,
		"errorMsg":  err.Error(),
	}).Error(message)
}

// GetStats returns the caller's aggregated dashboard numbers
func (h *Handler) GetStats(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "getStats")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	stats, err := h.analyticsService.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		h.secureLog(err, err.Error(), "getStats")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		BaseResponse: BaseResponse{Code: status.StatusOK},
		Stats:        stats,
	})
}

// GetLinkAnalytics returns the event breakdown of one of the caller's links
func (h *Handler) GetLinkAnalytics(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "getLinkAnalytics")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	result, err := h.analyticsService.GetLinkAnalytics(c.Request.Context(), userID, c.Param("linkID"))
	if err != nil {
		statusCode := http.StatusInternalServerError
		apiStatusCode := status.StatusInternalServerError

		switch err {
		case analytics.ErrInvalidInput:
			statusCode = http.StatusBadRequest
			apiStatusCode = status.StatusBadRequest
		case analytics.ErrLinkNotFound:
			statusCode = http.StatusNotFound
			apiStatusCode = status.StatusNotFound
		}

		h.secureLog(err, err.Error(), "getLinkAnalytics")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusOK, LinkAnalyticsResponse{
		BaseResponse: BaseResponse{Code: status.StatusOK},
		Analytics:    result,
	})
}

// Helper function to extract and validate user ID from context
func (h *Handler) getUserIDFromContext(c *gin.Context) (string, error) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		return "", session.ErrSessionNotFound
	}
	userID, ok := userIDInterface.(string)
	if !ok {
		return "", session.ErrInvalidInput
	}
	return userID, nil
}
