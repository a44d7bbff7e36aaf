package users

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"beelinks-api/internal/analytics"
	"beelinks-api/internal/link"
	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/internal/profile"
	"beelinks-api/internal/qrcode"
	"beelinks-api/internal/session"
	"beelinks-api/internal/utils"
	"beelinks-api/pkg/status"
)

// NewHandler creates a new users handler
func NewHandler(
	profileService profile.ProfileService,
	linkService link.LinkService,
	analyticsService analytics.AnalyticsService,
	qrService qrcode.QRService,
	publicBaseURL string,
	log *logger.Logger,
) *Handler {
	return &Handler{
		profileService:   profileService,
		linkService:      linkService,
		analyticsService: analyticsService,
		qrService:        qrService,
		publicBaseURL:    strings.TrimRight(publicBaseURL, "/"),
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

// GetCurrentUser returns the caller's own profile
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "getCurrentUser")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	user, err := h.profileService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if err == profile.ErrProfileMissing {
			// The identity authenticated but the users row is gone; the client
			// should call the repair endpoint
			c.JSON(http.StatusConflict, NewErrorResponse(err.Error(), status.StatusProfileIncomplete))
			return
		}
		h.secureLog(err, err.Error(), "getCurrentUser")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, NewProfileResponse(user, status.StatusOK))
}

// UpdateProfile applies a partial update to the caller's profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid request format", "updateProfile")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err, status.StatusValidationFailed))
		return
	}

	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "updateProfile")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), userID, profile.UpdateProfileInput{
		Username:        req.Username,
		FullName:        req.FullName,
		Bio:             req.Bio,
		AvatarURL:       req.AvatarURL,
		IsProfilePublic: req.IsProfilePublic,
		CustomSlug:      req.CustomSlug,
		ThemePreference: req.ThemePreference,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		apiStatusCode := status.StatusInternalServerError

		switch err {
		case profile.ErrInvalidInput, profile.ErrInvalidUsername:
			statusCode = http.StatusBadRequest
			apiStatusCode = status.StatusBadRequest
		case profile.ErrUsernameAlreadyExists:
			statusCode = http.StatusConflict
			apiStatusCode = status.StatusUsernameTaken
		case profile.ErrSlugAlreadyExists:
			statusCode = http.StatusConflict
			apiStatusCode = status.StatusConflict
		case profile.ErrProfileMissing:
			statusCode = http.StatusConflict
			apiStatusCode = status.StatusProfileIncomplete
		}

		h.secureLog(err, err.Error(), "updateProfile")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusOK, NewProfileResponse(user, status.StatusUpdated))
}

// CheckUsername reports whether a username is free to claim
func (h *Handler) CheckUsername(c *gin.Context) {
	username := strings.ToLower(strings.TrimSpace(c.Query("username")))
	if username == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse("Username is required", status.StatusBadRequest))
		return
	}

	// The caller's own username counts as available to them
	excludeUserID := ""
	if userID, err := h.getUserIDFromContext(c); err == nil {
		excludeUserID = userID
	}

	available, err := h.profileService.IsUsernameAvailable(c.Request.Context(), username, excludeUserID)
	if err != nil {
		h.secureLog(err, err.Error(), "checkUsername")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, UsernameAvailabilityResponse{
		BaseResponse: BaseResponse{Code: status.StatusOK},
		Username:     username,
		Available:    available,
	})
}

// GetPublicProfile returns a public profile page payload by slug or
// username, recording a profile view as a side effect
func (h *Handler) GetPublicProfile(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
	if slug == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse("Slug is required", status.StatusBadRequest))
		return
	}

	user, err := h.profileService.GetUserBySlug(c.Request.Context(), slug)
	if err != nil {
		statusCode := http.StatusInternalServerError
		apiStatusCode := status.StatusInternalServerError

		switch err {
		case profile.ErrUserNotFound:
			statusCode = http.StatusNotFound
			apiStatusCode = status.StatusNotFound
		case profile.ErrProfilePrivate:
			statusCode = http.StatusForbidden
			apiStatusCode = status.StatusForbidden
		}

		h.secureLog(err, err.Error(), "getPublicProfile")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	links, err := h.linkService.GetPublicLinks(c.Request.Context(), user.ID)
	if err != nil {
		h.secureLog(err, err.Error(), "getPublicProfile")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	theme := h.activeTheme(c, user.ID)

	// Best effort: a failed view write never blocks the page
	viewerID, _ := c.Get("userID")
	viewer, _ := viewerID.(string)
	_ = h.analyticsService.TrackProfileView(c.Request.Context(), user.ID, analytics.VisitInfo{
		UserAgent: c.GetHeader("User-Agent"),
		Referrer:  c.GetHeader("Referer"),
		IPAddress: c.ClientIP(),
		ViewerID:  viewer,
	})

	c.JSON(http.StatusOK, NewPublicProfileResponse(user, links, theme, status.StatusOK))
}

// GetSettings returns the caller's settings
func (h *Handler) GetSettings(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "getSettings")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	settings, err := h.profileService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		apiStatusCode := status.StatusInternalServerError
		if err == profile.ErrSettingsNotFound {
			statusCode = http.StatusNotFound
			apiStatusCode = status.StatusProfileIncomplete
		}
		h.secureLog(err, err.Error(), "getSettings")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{
		BaseResponse: BaseResponse{Code: status.StatusOK},
		Settings:     settings,
	})
}

// UpdateSettings applies a partial update to the caller's settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid request format", "updateSettings")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err, status.StatusValidationFailed))
		return
	}

	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "updateSettings")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	settings, err := h.profileService.UpdateSettings(c.Request.Context(), userID, profile.UpdateSettingsInput{
		AnalyticsEnabled:   req.AnalyticsEnabled,
		PublicAnalytics:    req.PublicAnalytics,
		ShowClickCount:     req.ShowClickCount,
		AllowLinkPreview:   req.AllowLinkPreview,
		EmailNotifications: req.EmailNotifications,
		ShowAvatar:         req.ShowAvatar,
		ShowBio:            req.ShowBio,
		ShowSocialLinks:    req.ShowSocialLinks,
		ActiveThemeID:      req.ActiveThemeID,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		apiStatusCode := status.StatusInternalServerError

		switch err {
		case profile.ErrSettingsNotFound:
			statusCode = http.StatusNotFound
			apiStatusCode = status.StatusProfileIncomplete
		case profile.ErrThemeNotFound:
			statusCode = http.StatusBadRequest
			apiStatusCode = status.StatusBadRequest
		}

		h.secureLog(err, err.Error(), "updateSettings")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{
		BaseResponse: BaseResponse{Code: status.StatusUpdated},
		Settings:     settings,
	})
}

// GetThemes returns the caller's themes
func (h *Handler) GetThemes(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "getThemes")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	themes, err := h.profileService.GetThemes(c.Request.Context(), userID)
	if err != nil {
		h.secureLog(err, err.Error(), "getThemes")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, ThemesResponse{
		BaseResponse: BaseResponse{Code: status.StatusOK},
		Themes:       themes,
	})
}

// UpdateTheme applies a partial update to one of the caller's themes
func (h *Handler) UpdateTheme(c *gin.Context) {
	var req UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid request format", "updateTheme")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err, status.StatusValidationFailed))
		return
	}

	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "updateTheme")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	themeID := c.Param("themeID")
	theme, err := h.profileService.UpdateTheme(c.Request.Context(), userID, themeID, profile.UpdateThemeInput{
		Name:            req.Name,
		PrimaryColor:    req.PrimaryColor,
		SecondaryColor:  req.SecondaryColor,
		BackgroundColor: req.BackgroundColor,
		TextColor:       req.TextColor,
		AccentColor:     req.AccentColor,
		FontFamily:      req.FontFamily,
		BorderRadius:    req.BorderRadius,
		ButtonStyle:     req.ButtonStyle,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		apiStatusCode := status.StatusInternalServerError

		switch err {
		case profile.ErrThemeNotFound:
			statusCode = http.StatusNotFound
			apiStatusCode = status.StatusNotFound
		case profile.ErrInvalidInput:
			statusCode = http.StatusBadRequest
			apiStatusCode = status.StatusBadRequest
		}

		h.secureLog(err, err.Error(), "updateTheme")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusOK, ThemeResponse{
		BaseResponse: BaseResponse{Code: status.StatusUpdated},
		Theme:        theme,
	})
}

// GetProfileQR returns the caller's profile QR code, generating and
// uploading it when missing or stale
func (h *Handler) GetProfileQR(c *gin.Context) {
	userID, err := h.getUserIDFromContext(c)
	if err != nil {
		h.secureLog(err, err.Error(), "getProfileQR")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusUnauthorized))
		return
	}

	user, err := h.profileService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if err == profile.ErrProfileMissing {
			c.JSON(http.StatusConflict, NewErrorResponse(err.Error(), status.StatusProfileIncomplete))
			return
		}
		h.secureLog(err, err.Error(), "getProfileQR")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	record, err := h.qrService.GetOrCreateProfileQR(c.Request.Context(), userID, h.profileURLFor(user))
	if err != nil {
		statusCode := http.StatusInternalServerError
		apiStatusCode := status.StatusInternalServerError
		if err == qrcode.ErrStorageError {
			apiStatusCode = status.StatusStorageError
		}
		h.secureLog(err, err.Error(), "getProfileQR")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	c.JSON(http.StatusOK, QRCodeResponse{
		BaseResponse: BaseResponse{Code: status.StatusOK},
		ProfileURL:   record.ProfileURL,
		ImageURL:     h.qrService.ImageURL(record),
		Size:         record.Size,
	})
}

// profileURLFor builds the public page URL, preferring the custom slug
func (h *Handler) profileURLFor(user *models.User) string {
	slug := user.Username
	if user.CustomSlug != nil && *user.CustomSlug != "" {
		slug = *user.CustomSlug
	}
	return fmt.Sprintf("%s/%s", h.publicBaseURL, slug)
}

// activeTheme resolves the public page theme from the owner's settings.
// Failures fall back to no theme rather than blocking the page.
func (h *Handler) activeTheme(c *gin.Context, userID string) *models.Theme {
	settings, err := h.profileService.GetSettings(c.Request.Context(), userID)
	if err != nil || settings.ActiveThemeID == nil {
		return nil
	}

	themes, err := h.profileService.GetThemes(c.Request.Context(), userID)
	if err != nil {
		return nil
	}

	for i := range themes {
		if themes[i].ID == *settings.ActiveThemeID {
			return &themes[i]
		}
	}
	return nil
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
