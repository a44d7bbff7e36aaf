package profile

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"beelinks-api/internal/models"
	"beelinks-api/pkg/db"
)

// repo is the concrete implementation of Repository
type repo struct {
	userRepo     db.Repository[models.User]
	settingsRepo db.Repository[models.UserSettings]
	themeRepo    db.Repository[models.Theme]
}

// NewRepository creates a new profile repository
func NewRepository(database *gorm.DB) Repository {
	return &repo{
		userRepo:     db.NewRepositoryWithDB[models.User](database),
		settingsRepo: db.NewRepositoryWithDB[models.UserSettings](database),
		themeRepo:    db.NewRepositoryWithDB[models.Theme](database),
	}
}

// FindUserByID finds a user by ID
func (r *repo) FindUserByID(id string) (*models.User, error) {
	return r.userRepo.FindByID(context.Background(), id)
}

// FindUserByUsername finds a user by username
func (r *repo) FindUserByUsername(username string) (*models.User, error) {
	return r.userRepo.FindOneWhere(context.Background(), "username = ?", username)
}

// FindUserBySlug resolves a public slug, preferring custom slugs over usernames
func (r *repo) FindUserBySlug(slug string) (*models.User, error) {
	user, err := r.userRepo.FindOneWhere(context.Background(), "custom_slug = ?", slug)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return r.userRepo.FindOneWhere(context.Background(), "username = ?", slug)
}

// UpdateUser updates a user with built-in locking
func (r *repo) UpdateUser(user *models.User) (*models.User, error) {
	err := r.userRepo.Update(context.Background(), user)
	return user, err
}

// CountUsersWithUsername counts users holding a username, optionally excluding one user
func (r *repo) CountUsersWithUsername(username string, excludeUserID string) (int64, error) {
	var count int64
	query := r.userRepo.DB().Model(&models.User{}).Where("username = ?", username)
	if excludeUserID != "" {
		query = query.Where("id <> ?", excludeUserID)
	}
	err := query.Count(&count).Error
	return count, err
}

// GetSettings retrieves the settings row for a user
func (r *repo) GetSettings(userID string) (*models.UserSettings, error) {
	return r.settingsRepo.FindOneWhere(context.Background(), "user_id = ?", userID)
}

// UpdateSettings updates a settings row
func (r *repo) UpdateSettings(settings *models.UserSettings) error {
	return r.settingsRepo.Update(context.Background(), settings)
}

// GetThemes retrieves all themes for a user
func (r *repo) GetThemes(userID string) ([]models.Theme, error) {
	return r.themeRepo.FindWhere(context.Background(), "user_id = ?", userID)
}

// GetTheme retrieves one theme scoped to its owner
func (r *repo) GetTheme(userID, themeID string) (*models.Theme, error) {
	return r.themeRepo.FindOneWhere(context.Background(), "id = ? AND user_id = ?", themeID, userID)
}

// UpdateTheme updates a theme row
func (r *repo) UpdateTheme(theme *models.Theme) error {
	return r.themeRepo.Update(context.Background(), theme)
}
