package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"beelinks-api/internal/auth"
	"beelinks-api/internal/jwt"
	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/internal/session"
	"beelinks-api/internal/utils"
	"beelinks-api/pkg/status"
)

// NewHandler creates a new auth handler
func NewHandler(authService auth.AuthService, jwtService *jwt.JWTService, sessionService *session.Service, log *logger.Logger) *Handler {
	return &Handler{
		authService:    authService,
		jwtService:     jwtService,
		sessionService: sessionService,
		logger:         log,
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

// HandleSignup handles account registration
func (h *Handler) HandleSignup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid request format", "signup")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err, status.StatusValidationFailed))
		return
	}

	// Normalize email
	email := strings.ToLower(strings.TrimSpace(req.Email))

	result, err := h.authService.SignUp(c.Request.Context(), auth.SignUpInput{
		Email:    email,
		Password: req.Password,
		Username: req.Username,
		FullName: req.FullName,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		apiStatusCode := status.StatusInternalServerError

		switch err {
		case auth.ErrInvalidEmail:
			statusCode = http.StatusBadRequest
			apiStatusCode = status.StatusInvalidEmail
		case auth.ErrWeakPassword:
			statusCode = http.StatusBadRequest
			apiStatusCode = status.StatusWeakPassword
		case auth.ErrInvalidUsername:
			statusCode = http.StatusBadRequest
			apiStatusCode = status.StatusBadRequest
		case auth.ErrEmailAlreadyExists:
			statusCode = http.StatusConflict
			apiStatusCode = status.StatusEmailAlreadyExists
		case auth.ErrUsernameAlreadyExists:
			statusCode = http.StatusConflict
			apiStatusCode = status.StatusUsernameTaken
		case auth.ErrProfileCreationFailed:
			// The identity exists, so the account is recoverable via repair
			statusCode = http.StatusInternalServerError
			apiStatusCode = status.StatusProfileIncomplete
		}

		h.secureLog(err, err.Error(), "signup")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	h.setAuthCookies(c, result.Session, result.Tokens)

	c.JSON(http.StatusCreated, NewAuthResponse(
		result.Tokens,
		result.User,
		result.Session,
		false,
		status.StatusSignupSuccess,
	))
}

// HandleLogin handles password authentication
func (h *Handler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid request format", "login")
		c.JSON(http.StatusUnprocessableEntity, NewValidationError(err, status.StatusValidationFailed))
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), auth.SignInInput{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  req.Password,
		UserAgent: c.GetHeader("User-Agent"),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		apiStatusCode := status.StatusInternalServerError

		switch err {
		case auth.ErrInvalidInput:
			statusCode = http.StatusBadRequest
			apiStatusCode = status.StatusBadRequest
		case auth.ErrInvalidCredentials:
			statusCode = http.StatusUnauthorized
			apiStatusCode = status.StatusInvalidCredentials
		}

		h.secureLog(err, err.Error(), "login")
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatusCode))
		return
	}

	h.setAuthCookies(c, result.Session, result.Tokens)

	c.JSON(http.StatusOK, NewAuthResponse(
		result.Tokens,
		result.User,
		result.Session,
		result.ProfileMissing,
		status.StatusLoginSuccess,
	))
}

// HandleLogout handles user logout
func (h *Handler) HandleLogout(c *gin.Context) {
	logoutErrChan := make(chan error, 1)

	// Get session ID from token claims
	sessionID, exists := c.Get("sessionID")
	if !exists {
		c.JSON(http.StatusBadRequest, NewErrorResponse("Session not found", status.StatusBadRequest))
		return
	}

	// Set SameSite once before setting any cookies
	c.SetSameSite(http.SameSiteStrictMode)

	// Set cookies to expire immediately - do this first for good UX
	c.SetCookie("sessionID", "", -1, "/", "localhost", false, true)
	c.SetCookie("accessToken", "", -1, "/api/v1", "localhost", false, true)
	c.SetCookie("refreshToken", "", -1, "/api/v1/auth/refresh", "localhost", false, true)

	// Return success response immediately
	c.JSON(http.StatusOK, NewSuccessResponse("Logged out successfully", status.StatusLogoutSuccess))

	// Invalidate the session asynchronously with a channel for logging
	go func() {
		ctx := context.Background()
		err := h.authService.SignOut(ctx, sessionID.(string))
		logoutErrChan <- err
	}()

	// Log the result in a separate goroutine
	go func() {
		err := <-logoutErrChan
		if err != nil {
			h.secureLog(err, err.Error(), "logout")
		}
	}()
}

// HandleRefreshToken refreshes a JWT token pair
func (h *Handler) HandleRefreshToken(c *gin.Context) {
	refreshToken := extractTokenFromSources(c, "Authorization", "refreshToken")
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("No refresh token provided", status.StatusUnauthorized))
		return
	}

	tokens, err := h.authService.RefreshTokens(c.Request.Context(), refreshToken)
	if err != nil {
		statusCode := http.StatusUnauthorized
		apiStatusCode := status.StatusInvalidToken

		switch err {
		case session.ErrSessionExpired:
			apiStatusCode = status.StatusSessionExpired
		case session.ErrSessionInvalid, session.ErrSessionNotFound:
			apiStatusCode = status.StatusInvalidSession
		}

		h.secureLog(err, "Failed to refresh tokens", "refreshToken")
		c.JSON(statusCode, NewErrorResponse("Invalid refresh token", apiStatusCode))
		return
	}

	claims, err := h.jwtService.ValidateToken(tokens.AccessToken)
	if err != nil {
		h.secureLog(err, err.Error(), "refreshToken")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusJWTError))
		return
	}

	userSession, err := h.sessionService.GetSessionByID(c.Request.Context(), claims.SessionID)
	if err != nil {
		h.secureLog(err, err.Error(), "refreshToken")
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error(), status.StatusInvalidSession))
		return
	}

	h.setAuthCookies(c, userSession, tokens)

	c.JSON(http.StatusOK, NewRefreshTokenResponse(tokens, status.StatusTokenRefreshed))
}

// setAuthCookies sets the session and token cookies with strict same-site
func (h *Handler) setAuthCookies(c *gin.Context, userSession *models.UserSession, tokens jwt.TokenPair) {
	sessionTTL := int(userSession.ExpiresAt - time.Now().Unix())
	if sessionTTL < 0 {
		sessionTTL = 0 // Prevent negative TTL
	}

	// Set SameSite once before setting any cookies
	c.SetSameSite(http.SameSiteStrictMode)

	c.SetCookie("sessionID", userSession.ID, sessionTTL, "/", "localhost", false, true)
	c.SetCookie("accessToken", tokens.AccessToken, 60*60, "/api/v1", "localhost", false, true)                    // 1 hour
	c.SetCookie("refreshToken", tokens.RefreshToken, 24*60*60, "/api/v1/auth/refresh", "localhost", false, true) // 1 day
}

// Helper to extract token from sources (reused from middleware)
func extractTokenFromSources(c *gin.Context, headerName, cookieName string) string {
	header := c.GetHeader(headerName)
	if headerName == "Authorization" && header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	} else if header != "" {
		return header
	}

	cookie, err := c.Cookie(cookieName)
	if err == nil && cookie != "" {
		return cookie
	}

	return ""
}
