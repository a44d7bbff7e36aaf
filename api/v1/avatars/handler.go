package avatars

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"beelinks-api/internal/avatar"
	"beelinks-api/internal/logger"
	"beelinks-api/internal/session"
	"beelinks-api/internal/utils"
	"beelinks-api/pkg/status"
)

// maxUploadBytes caps the multipart read; the service enforces its own
// limit on the decoded bytes as well
const maxUploadBytes = 5 << 20

// NewHandler creates a new avatars handler
func NewHandler(avatarService avatar.AvatarService, log *logger.Logger) *Handler {
	return &Handler{
		avatarService: avatarService,
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

// avatarErrorToStatus maps avatar service errors onto HTTP and API codes
func avatarErrorToStatus(err error) (int, int16) {
	switch err {
	case avatar.ErrInvalidInput:
		return http.StatusBadRequest, status.StatusBadRequest
	case avatar.ErrAvatarNotFound:
		return http.StatusNotFound, status.StatusNotFound
	case avatar.ErrFileTooLarge:
		return http.StatusRequestEntityTooLarge, status.StatusFileTooLarge
	case avatar.ErrUnsupportedType:
		return http.StatusUnsupportedMediaType, status.StatusUnsupportedFileType
	case avatar.ErrStorageError:
		return http.StatusInternalServerError, status.StatusStorageError
	default:
		return http.StatusInternalServerError, status.StatusInternalServerError
	}
}

// ListAvatars returns the caller's avatar history
func (h *Handler) ListAvatars(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "listAvatars")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	avatars, err := h.avatarService.ListAvatars(c.Request.Context(), userID)
	if err != nil {
		h.secureLog(err, err.Error(), "listAvatars")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, AvatarsResponse{
		BaseResponse: BaseResponse{Code: status.StatusOK},
		Avatars:      avatars,
	})
}

// GetActiveAvatar returns the caller's active avatar, if any
func (h *Handler) GetActiveAvatar(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "getActiveAvatar")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	active, err := h.avatarService.GetActiveAvatar(c.Request.Context(), userID)
	if err != nil {
		h.secureLog(err, err.Error(), "getActiveAvatar")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, AvatarResponse{
		BaseResponse: BaseResponse{Code: status.StatusOK},
		Avatar:       active,
	})
}

// UploadAvatar accepts a multipart image upload. The new avatar is stored
// inactive; a separate activation call makes it the profile picture.
func (h *Handler) UploadAvatar(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "uploadAvatar")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.secureLog(err, "Missing file in upload", "uploadAvatar")
		c.JSON(http.StatusBadRequest, NewErrorResponse("File is required", status.StatusBadRequest))
		return
	}

	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse(avatar.ErrFileTooLarge.Error(), status.StatusFileTooLarge))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.secureLog(err, err.Error(), "uploadAvatar")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		h.secureLog(err, err.Error(), "uploadAvatar")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	uploaded, err := h.avatarService.UploadAvatar(c.Request.Context(), userID, avatar.UploadInput{
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		statusCode, apiStatusCode := avatarErrorToStatus(err)
		h.secureLog(err, err.Error(), "uploadAvatar")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusCreated, AvatarResponse{
		BaseResponse: BaseResponse{Code: status.StatusFileUploaded},
		Avatar:       uploaded,
	})
}

// ActivateAvatar makes one of the caller's stored avatars the profile picture
func (h *Handler) ActivateAvatar(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "activateAvatar")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	activated, err := h.avatarService.SetActiveAvatar(c.Request.Context(), userID, c.Param("avatarID"))
	if err != nil {
		statusCode, apiStatusCode := avatarErrorToStatus(err)
		h.secureLog(err, err.Error(), "activateAvatar")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusOK, AvatarResponse{
		BaseResponse: BaseResponse{Code: status.StatusAvatarActivated},
		Avatar:       activated,
	})
}

// DeleteAvatar removes one of the caller's stored avatars
func (h *Handler) DeleteAvatar(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "deleteAvatar")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	if err := h.avatarService.DeleteAvatar(c.Request.Context(), userID, c.Param("avatarID")); err != nil {
		statusCode, apiStatusCode := avatarErrorToStatus(err)
		h.secureLog(err, err.Error(), "deleteAvatar")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("Avatar deleted successfully", status.StatusDeleted))
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
