package debug

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"beelinks-api/internal/logger"
	"beelinks-api/internal/repair"
	"beelinks-api/internal/session"
	"beelinks-api/internal/utils"
	"beelinks-api/pkg/status"
)

// NewHandler creates a new debug handler
func NewHandler(repairService repair.RepairService, log *logger.Logger) *Handler {
	return &Handler{
		repairService: repairService,
		logger:        log,
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

// CheckProfile reports which of the caller's denormalized records exist
func (h *Handler) CheckProfile(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "checkProfile")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	result, err := h.repairService.CheckCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.secureLog(err, err.Error(), "checkProfile")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	code := status.StatusProfileConsistent
	if !result.Consistent {
		code = status.StatusProfileIncomplete
	}

	c.JSON(http.StatusOK, StatusResponse{
		BaseResponse: BaseResponse{Code: code},
		Status:       result,
	})
}

// SyncProfile recreates the caller's missing profile records from the auth
// identity. Safe to call repeatedly: present records are skipped.
func (h *Handler) SyncProfile(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "syncProfile")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	report, err := h.repairService.SyncCurrentUser(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		apiStatusCode := status.StatusRepairFailed

		switch err {
		case repair.ErrInvalidInput:
			statusCode = http.StatusBadRequest
			apiStatusCode = status.StatusBadRequest
		case repair.ErrIdentityNotFound:
			statusCode = http.StatusNotFound
			apiStatusCode = status.StatusNotFound
		}

		h.secureLog(err, err.Error(), "syncProfile")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	code := status.StatusProfileConsistent
	if report.Repaired {
		code = status.StatusProfileRepaired
	}

	c.JSON(http.StatusOK, SyncResponse{
		BaseResponse: BaseResponse{Code: code},
		Report:       report,
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
