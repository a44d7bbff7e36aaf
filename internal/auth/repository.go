package auth

import (
	"context"

	"gorm.io/gorm"

	"beelinks-api/internal/models"
	"beelinks-api/pkg/db"
)

// NewRepository creates a new auth repository
func NewRepository(database *gorm.DB) Repository {
	return &repo{
		database:     database,
		identityRepo: db.NewRepositoryWithDB[models.AuthIdentity](database),
	}
}

// SaveIdentity creates a new auth identity
func (r *repo) SaveIdentity(identity *models.AuthIdentity) error {
	return r.identityRepo.Create(context.Background(), identity)
}

// FindIdentityByEmail finds an identity by email
func (r *repo) FindIdentityByEmail(email string) (*models.AuthIdentity, error) {
	return r.identityRepo.FindOneWhere(context.Background(), "email = ?", email)
}

// FindIdentityByID finds an identity by ID
func (r *repo) FindIdentityByID(id string) (*models.AuthIdentity, error) {
	return r.identityRepo.FindByID(context.Background(), id)
}

// UpdateIdentity updates an identity with built-in locking
func (r *repo) UpdateIdentity(identity *models.AuthIdentity) error {
	return r.identityRepo.Update(context.Background(), identity)
}

// CreateProfileRecords inserts the app-side rows for a new account in one
// transaction. A failure rolls everything back, leaving only the auth
// identity behind, which is exactly the inconsistency the repair tool
// detects and fixes.
func (r *repo) CreateProfileRecords(ctx context.Context, user *models.User, settings *models.UserSettings, theme *models.Theme, tags []models.LinkTag) error {
	return db.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		settings.UserID = user.ID
		theme.UserID = user.ID
		if err := tx.Create(theme).Error; err != nil {
			return err
		}

		settings.ActiveThemeID = &theme.ID
		if err := tx.Create(settings).Error; err != nil {
			return err
		}

		for i := range tags {
			tags[i].UserID = user.ID
			if err := tx.Create(&tags[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
