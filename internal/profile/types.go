package profile

import (
	"context"

	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/pkg/redis"
)

// ProfileService is the interface consumed by handlers and sibling services
type ProfileService interface {
	GetCurrentUser(ctx context.Context, userID string) (*models.User, error)
	GetUserProfile(ctx context.Context, userID string) (*models.User, error)
	GetUserBySlug(ctx context.Context, slug string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*models.User, error)
	IsUsernameAvailable(ctx context.Context, username string, excludeUserID string) (bool, error)
	GenerateUsername(ctx context.Context, email string) (string, error)
	GetSettings(ctx context.Context, userID string) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, userID string, input UpdateSettingsInput) (*models.UserSettings, error)
	GetThemes(ctx context.Context, userID string) ([]models.Theme, error)
	UpdateTheme(ctx context.Context, userID, themeID string, input UpdateThemeInput) (*models.Theme, error)
}

// Service implements ProfileService
type Service struct {
	repo        Repository
	redisClient *redis.Client
	logger      *logger.Logger
}

// Repository defines the profile repository interface
type Repository interface {
	// User operations
	FindUserByID(id string) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
	FindUserBySlug(slug string) (*models.User, error)
	UpdateUser(user *models.User) (*models.User, error)
	CountUsersWithUsername(username string, excludeUserID string) (int64, error)

	// Settings operations
	GetSettings(userID string) (*models.UserSettings, error)
	UpdateSettings(settings *models.UserSettings) error

	// Theme operations
	GetThemes(userID string) ([]models.Theme, error)
	GetTheme(userID, themeID string) (*models.Theme, error)
	UpdateTheme(theme *models.Theme) error
}

// UpdateProfileInput carries the fields of a partial profile update.
// Nil pointers leave the stored value untouched.
type UpdateProfileInput struct {
	Username        *string
	FullName        *string
	Bio             *string
	AvatarURL       *string
	IsProfilePublic *bool
	CustomSlug      *string
	ThemePreference *string
}

// UpdateSettingsInput carries the fields of a partial settings update
type UpdateSettingsInput struct {
	AnalyticsEnabled   *bool
	PublicAnalytics    *bool
	ShowClickCount     *bool
	AllowLinkPreview   *bool
	EmailNotifications *bool
	ShowAvatar         *bool
	ShowBio            *bool
	ShowSocialLinks    *bool
	ActiveThemeID      *string
}

// UpdateThemeInput carries the fields of a partial theme update
type UpdateThemeInput struct {
	Name            *string
	PrimaryColor    *string
	SecondaryColor  *string
	BackgroundColor *string
	TextColor       *string
	AccentColor     *string
	FontFamily      *string
	BorderRadius    *int
	ButtonStyle     *string
}

// ProfileValidator is the interface for profile validation
type ProfileValidator interface {
	ValidateUpdate(input UpdateProfileInput) error
	ValidateEmail(email string) bool
	ValidateUsername(username string) bool
}

// profileValidator is the concrete implementation of ProfileValidator
type profileValidator struct{}
