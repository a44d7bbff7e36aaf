package avatar

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"beelinks-api/internal/auth"
	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/pkg/db"
	"beelinks-api/pkg/s3"
)

// maxAvatarSize caps uploads at 5MB.
const maxAvatarSize = 5 * 1024 * 1024

// acceptedMimeTypes maps allowed image content types to their file extension.
var acceptedMimeTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// NewService creates a new avatar service
func NewService(repo Repository, s3Client *s3.Client, logger *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		s3Client: s3Client,
		logger:   logger,
	}
}

// ListAvatars returns the user's uploaded avatars. A missing user_avatars
// table is tolerated (the feature rolled out after the base schema) and
// reads as an empty gallery.
func (s *Service) ListAvatars(ctx context.Context, userID string) ([]models.UserAvatar, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	avatars, err := s.repo.FindAvatarsByUserID(userID)
	if err != nil {
		if db.IsUndefinedTable(err) {
			return []models.UserAvatar{}, nil
		}
		return nil, ErrDatabaseError
	}

	return avatars, nil
}

// GetActiveAvatar returns the user's active avatar, or nil when none is set
func (s *Service) GetActiveAvatar(ctx context.Context, userID string) (*models.UserAvatar, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	active, err := s.repo.FindActiveAvatar(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || db.IsUndefinedTable(err) {
			return nil, nil
		}
		return nil, ErrDatabaseError
	}

	return active, nil
}

// UploadAvatar validates and stores a new avatar image. The blob goes to
// storage first; uploads start inactive until activated explicitly.
func (s *Service) UploadAvatar(ctx context.Context, userID string, input UploadInput) (*models.UserAvatar, error) {
	if userID == "" || len(input.Data) == 0 {
		return nil, ErrInvalidInput
	}

	if len(input.Data) > maxAvatarSize {
		return nil, ErrFileTooLarge
	}

	ext, ok := acceptedMimeTypes[strings.ToLower(input.MimeType)]
	if !ok {
		return nil, ErrUnsupportedType
	}

	fileName := fmt.Sprintf("%s_%d.%s", userID, time.Now().UnixMilli(), ext)
	objectKey := path.Join(userID, fileName)

	if err := s.s3Client.UploadObject(objectKey, input.Data, input.MimeType); err != nil {
		s.logger.WithFields(logrus.Fields{"userID": userID, "key": objectKey, "error": err}).Error("Failed to upload avatar blob")
		return nil, ErrStorageError
	}

	avatar := &models.UserAvatar{
		UserID:    userID,
		FileName:  fileName,
		ObjectKey: objectKey,
		PublicURL: s.s3Client.PublicURL(objectKey),
		MimeType:  strings.ToLower(input.MimeType),
		SizeBytes: int64(len(input.Data)),
		IsActive:  false,
	}

	if err := s.repo.CreateAvatar(avatar); err != nil {
		// Avoid orphaned blobs when the row insert fails
		if delErr := s.s3Client.DeleteObject(objectKey); delErr != nil {
			s.logger.WithFields(logrus.Fields{"key": objectKey, "error": delErr}).Warn("Failed to clean up avatar blob after insert failure")
		}
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": err}).Error("Failed to save avatar record")
		return nil, ErrDatabaseError
	}

	return avatar, nil
}

// SetActiveAvatar makes the chosen avatar the single active one and points
// the profile's avatar URL at it
func (s *Service) SetActiveAvatar(ctx context.Context, userID, avatarID string) (*models.UserAvatar, error) {
	if userID == "" || avatarID == "" {
		return nil, ErrInvalidInput
	}

	avatar, err := s.repo.FindAvatar(userID, avatarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAvatarNotFound
		}
		return nil, ErrDatabaseError
	}

	if err := s.repo.ActivateAvatar(ctx, userID, avatarID, avatar.PublicURL); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAvatarNotFound
		}
		s.logger.WithFields(logrus.Fields{"userID": userID, "avatarID": avatarID, "error": err}).Error("Failed to activate avatar")
		return nil, ErrDatabaseError
	}

	avatar.IsActive = true

	return avatar, nil
}

// DeleteAvatar removes an avatar. The blob is deleted first; a blob delete
// failure is logged and the metadata delete proceeds anyway (an orphaned
// object beats a row pointing at nothing). Deleting the active avatar
// resets the profile to a generated one.
func (s *Service) DeleteAvatar(ctx context.Context, userID, avatarID string) error {
	if userID == "" || avatarID == "" {
		return ErrInvalidInput
	}

	avatar, err := s.repo.FindAvatar(userID, avatarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAvatarNotFound
		}
		return ErrDatabaseError
	}

	if err := s.s3Client.DeleteObject(avatar.ObjectKey); err != nil {
		s.logger.WithFields(logrus.Fields{"key": avatar.ObjectKey, "error": err}).Warn("Failed to delete avatar blob, removing record anyway")
	}

	if err := s.repo.DeleteAvatar(userID, avatarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAvatarNotFound
		}
		s.logger.WithFields(logrus.Fields{"avatarID": avatarID, "error": err}).Error("Failed to delete avatar record")
		return ErrDatabaseError
	}

	if avatar.IsActive {
		if err := s.repo.ResetProfileAvatar(userID, s.DefaultAvatarFor(userID)); err != nil {
			s.logger.WithFields(logrus.Fields{"userID": userID, "error": err}).Warn("Failed to reset profile avatar after delete")
		}
	}

	return nil
}

// DefaultAvatarFor returns the generated-initials avatar URL for a name
func (s *Service) DefaultAvatarFor(name string) string {
	return auth.DefaultAvatarURL(name)
}
