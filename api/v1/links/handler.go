package links

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"beelinks-api/internal/analytics"
	"beelinks-api/internal/link"
	"beelinks-api/internal/logger"
	"beelinks-api/internal/session"
	"beelinks-api/internal/utils"
	"beelinks-api/pkg/status"
)

// NewHandler creates a new links handler
func NewHandler(linkService link.LinkService, analyticsService analytics.AnalyticsService, log *logger.Logger) *Handler {
	return &Handler{
		linkService:      linkService,
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

// linkErrorToStatus maps link service errors onto HTTP and API codes
func linkErrorToStatus(err error) (int, int16) {
	switch err {
	case link.ErrInvalidInput, link.ErrInvalidTitle, link.ErrInvalidURL, link.ErrInvalidDescription:
		return http.StatusBadRequest, status.StatusBadRequest
	case link.ErrLinkNotFound, link.ErrTagNotFound:
		return http.StatusNotFound, status.StatusNotFound
	case link.ErrReorderMismatch:
		return http.StatusBadRequest, status.StatusBadRequest
	case link.ErrMissingOwnerRecord:
		return http.StatusConflict, status.StatusProfileIncomplete
	default:
		return http.StatusInternalServerError, status.StatusInternalServerError
	}
}

// GetLinks returns all of the caller's links with click counts and tags
func (h *Handler) GetLinks(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "getLinks")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	userLinks, err := h.linkService.GetUserLinks(c.Request.Context(), userID)
	if err != nil {
		h.secureLog(err, err.Error(), "getLinks")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, LinksResponse{
		BaseResponse: BaseResponse{Code: status.StatusOK},
		Links:        userLinks,
	})
}

// CreateLink creates a new link at the end of the caller's list
func (h *Handler) CreateLink(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid request format", "createLink")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err, status.StatusValidationFailed))
		return
	}

	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "createLink")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	created, err := h.linkService.CreateLink(c.Request.Context(), userID, link.CreateLinkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Icon:        req.Icon,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		statusCode, apiStatusCode := linkErrorToStatus(err)
		h.secureLog(err, err.Error(), "createLink")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusCreated, LinkResponse{
		BaseResponse: BaseResponse{Code: status.StatusCreated},
		Link:         created,
	})
}

// UpdateLink applies a partial update to one of the caller's links
func (h *Handler) UpdateLink(c *gin.Context) {
	var req UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid request format", "updateLink")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err, status.StatusValidationFailed))
		return
	}

	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "updateLink")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	updated, err := h.linkService.UpdateLink(c.Request.Context(), userID, c.Param("linkID"), link.UpdateLinkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    req.IsActive,
	})
	if err != nil {
		statusCode, apiStatusCode := linkErrorToStatus(err)
		h.secureLog(err, err.Error(), "updateLink")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusOK, LinkResponse{
		BaseResponse: BaseResponse{Code: status.StatusUpdated},
		Link:         updated,
	})
}

// DeleteLink removes one of the caller's links
func (h *Handler) DeleteLink(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "deleteLink")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	if err := h.linkService.DeleteLink(c.Request.Context(), userID, c.Param("linkID")); err != nil {
		statusCode, apiStatusCode := linkErrorToStatus(err)
		h.secureLog(err, err.Error(), "deleteLink")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("Link deleted successfully", status.StatusDeleted))
}

// ReorderLinks replaces the position of every link of the caller. The
// request must list each of the caller's link IDs exactly once.
func (h *Handler) ReorderLinks(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid request format", "reorderLinks")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err, status.StatusValidationFailed))
		return
	}

	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "reorderLinks")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	if err := h.linkService.ReorderLinks(c.Request.Context(), userID, req.LinkIDs); err != nil {
		statusCode, apiStatusCode := linkErrorToStatus(err)
		h.secureLog(err, err.Error(), "reorderLinks")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("Links reordered", status.StatusLinksReordered))
}

// TrackClick records a click event for a link. Public: anyone viewing a
// profile can emit clicks, and failures never break the redirect.
func (h *Handler) TrackClick(c *gin.Context) {
	linkID := c.Param("linkID")
	if linkID == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse("Link ID is required", status.StatusBadRequest))
		return
	}

	viewerID, _ := c.Get("userID")
	viewer, _ := viewerID.(string)

	err := h.analyticsService.TrackLinkClick(c.Request.Context(), linkID, analytics.VisitInfo{
		UserAgent: c.GetHeader("User-Agent"),
		Referrer:  c.GetHeader("Referer"),
		IPAddress: c.ClientIP(),
		ViewerID:  viewer,
	})
	if err != nil {
		statusCode := http.StatusNotFound
		apiStatusCode := status.StatusNotFound
		if err == analytics.ErrInvalidInput {
			statusCode = http.StatusBadRequest
			apiStatusCode = status.StatusBadRequest
		}
		h.secureLog(err, err.Error(), "trackClick")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusAccepted, NewSuccessResponse("Click recorded", status.StatusEventRecorded))
}

// GetTags returns the caller's tags
func (h *Handler) GetTags(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "getTags")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	tags, err := h.linkService.GetTags(c.Request.Context(), userID)
	if err != nil {
		h.secureLog(err, err.Error(), "getTags")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, TagsResponse{
		BaseResponse: BaseResponse{Code: status.StatusOK},
		Tags:         tags,
	})
}

// CreateTag creates a new tag for the caller
func (h *Handler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid request format", "createTag")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err, status.StatusValidationFailed))
		return
	}

	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "createTag")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	tag, err := h.linkService.CreateTag(c.Request.Context(), userID, req.Name, req.Color)
	if err != nil {
		statusCode, apiStatusCode := linkErrorToStatus(err)
		h.secureLog(err, err.Error(), "createTag")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusCreated, TagResponse{
		BaseResponse: BaseResponse{Code: status.StatusCreated},
		Tag:          tag,
	})
}

// DeleteTag removes one of the caller's tags
func (h *Handler) DeleteTag(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "deleteTag")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	if err := h.linkService.DeleteTag(c.Request.Context(), userID, c.Param("tagID")); err != nil {
		statusCode, apiStatusCode := linkErrorToStatus(err)
		h.secureLog(err, err.Error(), "deleteTag")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("Tag deleted successfully", status.StatusDeleted))
}

// SetLinkTags replaces the tag assignments of one of the caller's links
func (h *Handler) SetLinkTags(c *gin.Context) {
	var req SetLinkTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid request format", "setLinkTags")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err, status.StatusValidationFailed))
		return
	}

	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "setLinkTags")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	if err := h.linkService.SetLinkTags(c.Request.Context(), userID, c.Param("linkID"), req.TagIDs); err != nil {
		statusCode, apiStatusCode := linkErrorToStatus(err)
		h.secureLog(err, err.Error(), "setLinkTags")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("Tags updated successfully", status.StatusUpdated))
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
