package auth

import (
	"context"

	"gorm.io/gorm"

	"beelinks-api/internal/jwt"
	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/internal/profile"
	"beelinks-api/internal/session"
	"beelinks-api/pkg/db"
)

// AuthService is the interface consumed by the auth handlers
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*SignUpResult, error)
	SignIn(ctx context.Context, input SignInInput) (*SignInResult, error)
	SignOut(ctx context.Context, sessionID string) error
	RefreshTokens(ctx context.Context, refreshToken string) (jwt.TokenPair, error)
}

// Service handles authentication operations
type Service struct {
	repo           Repository
	profileService profile.ProfileService
	sessionService *session.Service
	jwtService     *jwt.JWTService
	broker         *Broker
	logger         *logger.Logger
}

// Repository defines the auth repository interface
type Repository interface {
	SaveIdentity(identity *models.AuthIdentity) error
	FindIdentityByEmail(email string) (*models.AuthIdentity, error)
	FindIdentityByID(id string) (*models.AuthIdentity, error)
	UpdateIdentity(identity *models.AuthIdentity) error

	// CreateProfileRecords inserts the user, settings, theme and default tag
	// rows in a single transaction so the app-side records are all-or-nothing
	CreateProfileRecords(ctx context.Context, user *models.User, settings *models.UserSettings, theme *models.Theme, tags []models.LinkTag) error
}

// SignUpInput carries sign-up parameters
type SignUpInput struct {
	Email    string
	Password string
	Username string
	FullName string
}

// SignUpResult is returned on successful sign-up
type SignUpResult struct {
	Identity *models.AuthIdentity
	User     *models.User
	Session  *models.UserSession
	Tokens   jwt.TokenPair
}

// SignInInput carries sign-in parameters
type SignInInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// SignInResult is returned on successful sign-in
type SignInResult struct {
	User    *models.User
	Session *models.UserSession
	Tokens  jwt.TokenPair

	// ProfileMissing is set when the identity authenticated but the app-side
	// user row is absent; the client should run the repair flow
	ProfileMissing bool
}

// repo is the concrete implementation of Repository
type repo struct {
	database     *gorm.DB
	identityRepo db.Repository[models.AuthIdentity]
}
