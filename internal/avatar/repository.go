package avatar

import (
	"context"
	"time"

	"gorm.io/gorm"

	"beelinks-api/internal/models"
	"beelinks-api/pkg/db"
)

// NewRepository creates a new avatar repository
func NewRepository(database *gorm.DB) Repository {
	return &repo{
		database:   database,
		avatarRepo: db.NewRepositoryWithDB[models.UserAvatar](database),
	}
}

// FindAvatarsByUserID retrieves all avatars for a user, newest first
func (r *repo) FindAvatarsByUserID(userID string) ([]models.UserAvatar, error) {
	var avatars []models.UserAvatar
	err := r.database.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&avatars).Error
	return avatars, err
}

// FindActiveAvatar retrieves the user's active avatar
func (r *repo) FindActiveAvatar(userID string) (*models.UserAvatar, error) {
	return r.avatarRepo.FindOneWhere(context.Background(), "user_id = ? AND is_active = ?", userID, true)
}

// FindAvatar retrieves one avatar scoped to its owner
func (r *repo) FindAvatar(userID, avatarID string) (*models.UserAvatar, error) {
	return r.avatarRepo.FindOneWhere(context.Background(), "id = ? AND user_id = ?", avatarID, userID)
}

// CreateAvatar inserts a new avatar row
func (r *repo) CreateAvatar(avatar *models.UserAvatar) error {
	return r.avatarRepo.Create(context.Background(), avatar)
}

// DeleteAvatar removes an avatar row, scoped to the owner
func (r *repo) DeleteAvatar(userID, avatarID string) error {
	result := r.database.Where("id = ? AND user_id = ?", avatarID, userID).Delete(&models.UserAvatar{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ActivateAvatar flips the active flag to exactly one avatar and keeps the
// denormalized users.avatar_url in step, all inside one transaction
func (r *repo) ActivateAvatar(ctx context.Context, userID, avatarID, publicURL string) error {
	return db.WithTransaction(ctx, func(tx *gorm.DB) error {
		now := time.Now().Unix()

		if err := tx.Model(&models.UserAvatar{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Updates(map[string]interface{}{"is_active": false, "updated_at": now}).Error; err != nil {
			return err
		}

		result := tx.Model(&models.UserAvatar{}).
			Where("id = ? AND user_id = ?", avatarID, userID).
			Updates(map[string]interface{}{"is_active": true, "updated_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{"avatar_url": publicURL, "updated_at": now}).Error
	})
}

// ResetProfileAvatar points the profile at a generated avatar URL
func (r *repo) ResetProfileAvatar(userID, avatarURL string) error {
	return r.database.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"avatar_url": avatarURL, "updated_at": time.Now().Unix()}).Error
}
