package avatar

import (
	"context"

	"gorm.io/gorm"

	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/pkg/db"
	"beelinks-api/pkg/s3"
)

// AvatarService is the interface consumed by the avatar handlers
type AvatarService interface {
	ListAvatars(ctx context.Context, userID string) ([]models.UserAvatar, error)
	GetActiveAvatar(ctx context.Context, userID string) (*models.UserAvatar, error)
	UploadAvatar(ctx context.Context, userID string, input UploadInput) (*models.UserAvatar, error)
	SetActiveAvatar(ctx context.Context, userID, avatarID string) (*models.UserAvatar, error)
	DeleteAvatar(ctx context.Context, userID, avatarID string) error
	DefaultAvatarFor(name string) string
}

// Service implements AvatarService
type Service struct {
	repo     Repository
	s3Client *s3.Client
	logger   *logger.Logger
}

// Repository defines the avatar repository interface
type Repository interface {
	FindAvatarsByUserID(userID string) ([]models.UserAvatar, error)
	FindActiveAvatar(userID string) (*models.UserAvatar, error)
	FindAvatar(userID, avatarID string) (*models.UserAvatar, error)
	CreateAvatar(avatar *models.UserAvatar) error
	DeleteAvatar(userID, avatarID string) error

	// ActivateAvatar deactivates every avatar of the user, activates the
	// chosen one and updates the profile's avatar URL, all in one transaction
	ActivateAvatar(ctx context.Context, userID, avatarID, publicURL string) error

	// ResetProfileAvatar points the profile back at a generated avatar URL
	ResetProfileAvatar(userID, avatarURL string) error
}

// UploadInput carries the parameters of an avatar upload
type UploadInput struct {
	FileName string
	MimeType string
	Data     []byte
}

// repo is the concrete implementation of Repository
type repo struct {
	database   *gorm.DB
	avatarRepo db.Repository[models.UserAvatar]
}
