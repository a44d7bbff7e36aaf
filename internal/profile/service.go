package profile

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"beelinks-api/internal/logger"
	"beelinks-api/pkg/redis"

	"beelinks-api/internal/models"
)

// NewService creates a new profile service
func NewService(repo Repository, redisClient *redis.Client, logger *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		redisClient: redisClient,
		logger:      logger,
	}
}

// GetCurrentUser returns the signed-in user's profile with cache lookup
func (s *Service) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	// Try cache first
	user, err := s.getUserFromCache(ctx, userID)
	if err == nil {
		return user, nil
	}

	user, err = s.repo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The token is valid but the profile row never made it into the
			// users table. Callers surface this so the client can run repair.
			return nil, ErrProfileMissing
		}
		return nil, ErrDatabaseError
	}

	_ = s.cacheUser(ctx, user)

	return user, nil
}

// GetUserProfile returns a user's profile by ID, distinguishing a missing
// profile row from other failures
func (s *Service) GetUserProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.GetCurrentUser(ctx, userID)
}

// GetUserBySlug resolves a public profile by custom slug or username
func (s *Service) GetUserBySlug(ctx context.Context, slug string) (*models.User, error) {
	if slug == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.repo.FindUserBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseError
	}

	if !user.IsProfilePublic {
		return nil, ErrProfilePrivate
	}

	return user, nil
}

// UpdateProfile applies a partial update to the user's profile
func (s *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*models.User, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	validator := NewProfileValidator()
	if err := validator.ValidateUpdate(input); err != nil {
		return nil, err
	}

	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, ErrDatabaseError
	}

	if input.Username != nil && *input.Username != user.Username {
		available, err := s.IsUsernameAvailable(ctx, *input.Username, userID)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, ErrUsernameAlreadyExists
		}
		user.Username = *input.Username
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.IsProfilePublic != nil {
		user.IsProfilePublic = *input.IsProfilePublic
	}
	if input.CustomSlug != nil {
		if *input.CustomSlug == "" {
			user.CustomSlug = nil
		} else {
			user.CustomSlug = input.CustomSlug
		}
	}
	if input.ThemePreference != nil {
		user.ThemePreference = *input.ThemePreference
	}

	updated, err := s.repo.UpdateUser(user)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugAlreadyExists
		}
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": err}).Error("Failed to update profile")
		return nil, ErrDatabaseError
	}

	s.invalidateUserCache(ctx, userID)
	_ = s.cacheUser(ctx, updated)

	return updated, nil
}

// IsUsernameAvailable checks whether a username is free, optionally excluding
// one user (so a user keeps their own name during profile edits)
func (s *Service) IsUsernameAvailable(ctx context.Context, username string, excludeUserID string) (bool, error) {
	if username == "" {
		return false, ErrInvalidInput
	}

	count, err := s.repo.CountUsersWithUsername(username, excludeUserID)
	if err != nil {
		return false, ErrDatabaseError
	}

	return count == 0, nil
}

// GetSettings returns the user's settings row with cache lookup
func (s *Service) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	settings, err := s.getSettingsFromCache(ctx, userID)
	if err == nil {
		return settings, nil
	}

	settings, err = s.repo.GetSettings(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, ErrDatabaseError
	}

	s.cacheSettings(ctx, settings)

	return settings, nil
}

// UpdateSettings applies a partial update to the user's settings
func (s *Service) UpdateSettings(ctx context.Context, userID string, input UpdateSettingsInput) (*models.UserSettings, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	settings, err := s.repo.GetSettings(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, ErrDatabaseError
	}

	if input.AnalyticsEnabled != nil {
		settings.AnalyticsEnabled = *input.AnalyticsEnabled
	}
	if input.PublicAnalytics != nil {
		settings.PublicAnalytics = *input.PublicAnalytics
	}
	if input.ShowClickCount != nil {
		settings.ShowClickCount = *input.ShowClickCount
	}
	if input.AllowLinkPreview != nil {
		settings.AllowLinkPreview = *input.AllowLinkPreview
	}
	if input.EmailNotifications != nil {
		settings.EmailNotifications = *input.EmailNotifications
	}
	if input.ShowAvatar != nil {
		settings.ShowAvatar = *input.ShowAvatar
	}
	if input.ShowBio != nil {
		settings.ShowBio = *input.ShowBio
	}
	if input.ShowSocialLinks != nil {
		settings.ShowSocialLinks = *input.ShowSocialLinks
	}
	if input.ActiveThemeID != nil {
		// The referenced theme must belong to this user
		if _, err := s.repo.GetTheme(userID, *input.ActiveThemeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrThemeNotFound
			}
			return nil, ErrDatabaseError
		}
		settings.ActiveThemeID = input.ActiveThemeID
	}

	if err := s.repo.UpdateSettings(settings); err != nil {
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": err}).Error("Failed to update settings")
		return nil, ErrDatabaseError
	}

	s.invalidateUserCache(ctx, userID)
	s.cacheSettings(ctx, settings)

	return settings, nil
}

// GetThemes returns all themes owned by the user
func (s *Service) GetThemes(ctx context.Context, userID string) ([]models.Theme, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	themes, err := s.repo.GetThemes(userID)
	if err != nil {
		return nil, ErrDatabaseError
	}

	return themes, nil
}

// UpdateTheme applies a partial update to one of the user's themes
func (s *Service) UpdateTheme(ctx context.Context, userID, themeID string, input UpdateThemeInput) (*models.Theme, error) {
	if userID == "" || themeID == "" {
		return nil, ErrInvalidInput
	}

	theme, err := s.repo.GetTheme(userID, themeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThemeNotFound
		}
		return nil, ErrDatabaseError
	}

	if input.Name != nil {
		theme.Name = *input.Name
	}
	for _, c := range []struct {
		value *string
		dst   *string
	}{
		{input.PrimaryColor, &theme.PrimaryColor},
		{input.SecondaryColor, &theme.SecondaryColor},
		{input.BackgroundColor, &theme.BackgroundColor},
		{input.TextColor, &theme.TextColor},
		{input.AccentColor, &theme.AccentColor},
	} {
		if c.value == nil {
			continue
		}
		if !validHexColor(*c.value) {
			return nil, ErrInvalidInput
		}
		*c.dst = *c.value
	}
	if input.FontFamily != nil {
		theme.FontFamily = *input.FontFamily
	}
	if input.BorderRadius != nil {
		theme.BorderRadius = *input.BorderRadius
	}
	if input.ButtonStyle != nil {
		theme.ButtonStyle = *input.ButtonStyle
	}

	if err := s.repo.UpdateTheme(theme); err != nil {
		s.logger.WithFields(logrus.Fields{"userID": userID, "themeID": themeID, "error": err}).Error("Failed to update theme")
		return nil, ErrDatabaseError
	}

	s.invalidateUserCache(ctx, userID)

	return theme, nil
}
