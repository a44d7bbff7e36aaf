package auth

import (
	"beelinks-api/internal/auth"
	"beelinks-api/internal/jwt"
	"beelinks-api/internal/logger"
	"beelinks-api/internal/session"
)

// Handler manages auth-related HTTP requests
type Handler struct {
	authService    auth.AuthService
	jwtService     *jwt.JWTService
	sessionService *session.Service
	logger         *logger.Logger
}
