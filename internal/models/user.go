package models

import (
	"time"

	"gorm.io/gorm"

	"beelinks-api/internal/utils"
)

// User is the application-side profile row. It shares its ID with the
// AuthIdentity it belongs to; the two are created together at sign-up but can
// diverge when the profile insert fails independently (see internal/repair).
type User struct {
	ID              string  `gorm:"primaryKey;column:id"`
	Username        string  `gorm:"column:username;size:50;not null;unique;index:idx_users_username"`
	Email           string  `gorm:"column:email;size:100;not null;unique;index:idx_users_email"`
	FullName        string  `gorm:"column:full_name;size:100"`
	Bio             string  `gorm:"column:bio;size:255"`
	AvatarURL       string  `gorm:"column:avatar_url;size:2048"`
	IsProfilePublic bool    `gorm:"column:is_profile_public;default:true;not null"`
	CustomSlug      *string `gorm:"column:custom_slug;size:50;unique;default:null"`
	ThemePreference string  `gorm:"column:theme_preference;size:20;default:'dark'"`
	EmailVerified   bool    `gorm:"column:email_verified;default:false;not null"`
	CreatedAt       int64   `gorm:"column:created_at;autoCreateTime:false;not null"`
	UpdatedAt       int64   `gorm:"column:updated_at;autoCreateTime:false;not null"`

	// Relationships
	Settings *UserSettings           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Themes   []Theme                 `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Links    []Link                  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Avatars  []UserAvatar            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tags     []LinkTag               `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	QRCode   *QRCode                 `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Views    []ProfileAnalyticsEvent `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook for User
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if u.ID == "" {
		u.ID = utils.GenerateUserID()
	}
	if u.CreatedAt == 0 {
		u.CreatedAt = now
	}
	if u.UpdatedAt == 0 {
		u.UpdatedAt = now
	}
	return nil
}

// BeforeUpdate hook for User
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now().Unix()
	return nil
}

// UserSettings holds the per-user toggles, one row per user, created
// alongside the User row.
type UserSettings struct {
	ID                 string  `gorm:"primaryKey;column:id"`
	UserID             string  `gorm:"column:user_id;not null;unique;index:idx_user_settings_user_id"`
	AnalyticsEnabled   bool    `gorm:"column:analytics_enabled;default:true;not null"`
	PublicAnalytics    bool    `gorm:"column:public_analytics;default:false;not null"`
	ShowClickCount     bool    `gorm:"column:show_click_count;default:true;not null"`
	AllowLinkPreview   bool    `gorm:"column:allow_link_preview;default:true;not null"`
	EmailNotifications bool    `gorm:"column:email_notifications;default:true;not null"`
	ShowAvatar         bool    `gorm:"column:show_avatar;default:true;not null"`
	ShowBio            bool    `gorm:"column:show_bio;default:true;not null"`
	ShowSocialLinks    bool    `gorm:"column:show_social_links;default:true;not null"`
	ActiveThemeID      *string `gorm:"column:active_theme_id;default:null"`
	CreatedAt          int64   `gorm:"column:created_at;autoCreateTime:false;not null"`
	UpdatedAt          int64   `gorm:"column:updated_at;autoCreateTime:false;not null"`

	// Relationships
	ActiveTheme *Theme `gorm:"foreignKey:ActiveThemeID"`
}

// TableName specifies the table name for UserSettings
func (UserSettings) TableName() string {
	return "user_settings"
}

// BeforeCreate hook for UserSettings
func (s *UserSettings) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if s.ID == "" {
		s.ID = utils.GeneratePrefixedID("setting")
	}
	if s.CreatedAt == 0 {
		s.CreatedAt = now
	}
	if s.UpdatedAt == 0 {
		s.UpdatedAt = now
	}
	return nil
}

// BeforeUpdate hook for UserSettings
func (s *UserSettings) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now().Unix()
	return nil
}

// Theme holds the color/typography/shape tokens of one profile theme.
// Every new user gets one default theme.
type Theme struct {
	ID              string `gorm:"primaryKey;column:id"`
	UserID          string `gorm:"column:user_id;not null;index:idx_themes_user_id"`
	Name            string `gorm:"column:name;size:50;not null"`
	IsDefault       bool   `gorm:"column:is_default;default:false;not null"`
	PrimaryColor    string `gorm:"column:primary_color;size:7;default:'#FFD700'"`
	SecondaryColor  string `gorm:"column:secondary_color;size:7;default:'#FFC107'"`
	BackgroundColor string `gorm:"column:background_color;size:7;default:'#1A1A1A'"`
	TextColor       string `gorm:"column:text_color;size:7;default:'#FFFFFF'"`
	AccentColor     string `gorm:"column:accent_color;size:7;default:'#2D2D2D'"`
	FontFamily      string `gorm:"column:font_family;size:50;default:'Inter'"`
	BorderRadius    int    `gorm:"column:border_radius;default:12"`
	ButtonStyle     string `gorm:"column:button_style;size:20;default:'rounded'"`
	CreatedAt       int64  `gorm:"column:created_at;autoCreateTime:false;not null"`
	UpdatedAt       int64  `gorm:"column:updated_at;autoCreateTime:false;not null"`
}

// TableName specifies the table name for Theme
func (Theme) TableName() string {
	return "themes"
}

// BeforeCreate hook for Theme
func (t *Theme) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if t.ID == "" {
		t.ID = utils.GenerateThemeID()
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = now
	}
	if t.UpdatedAt == 0 {
		t.UpdatedAt = now
	}
	return nil
}

// BeforeUpdate hook for Theme
func (t *Theme) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now().Unix()
	return nil
}
