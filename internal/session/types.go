package session

import (
	"context"

	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/pkg/db"
	"beelinks-api/pkg/redis"
)

// Validator is the narrow interface the auth middleware needs
type Validator interface {
	IsSessionValid(ctx context.Context, sessionID string) bool
}

// Service implements session management backed by Postgres with a Redis cache
type Service struct {
	repo        Repository
	redisClient *redis.Client
	logger      *logger.Logger
}

// Repository defines the session repository interface
type Repository interface {
	SaveSession(session *models.UserSession) error
	GetSession(sessionID string) (*models.UserSession, error)
	GetAllSessionsByUserID(userID string) ([]*models.UserSession, error)
	UpdateSession(session *models.UserSession) error
	DeleteSession(sessionID string) error
}

// ClientInfo carries the request metadata recorded on a new session
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// repo is the concrete implementation of Repository
type repo struct {
	sessionRepo db.Repository[models.UserSession]
}

// SessionValidator is the interface for session validation
type SessionValidator interface {
	ValidateSessionCreate(user *models.User) error
	ValidateSession(session *models.UserSession) error
}

// sessionValidator is the concrete implementation of SessionValidator
type sessionValidator struct{}
