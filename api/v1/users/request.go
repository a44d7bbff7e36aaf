package users

// UpdateProfileRequest carries a partial profile update. Absent fields are
// left untouched.
type UpdateProfileRequest struct {
	Username        *string `json:"username" binding:"omitempty,min=1,max=30"`
	FullName        *string `json:"fullName" binding:"omitempty,max=100"`
	Bio             *string `json:"bio" binding:"omitempty,max=255"`
	AvatarURL       *string `json:"avatarUrl" binding:"omitempty,max=2048"`
	IsProfilePublic *bool   `json:"isProfilePublic"`
	CustomSlug      *string `json:"customSlug" binding:"omitempty,max=50"`
	ThemePreference *string `json:"themePreference" binding:"omitempty,oneof=dark light"`
}

// UpdateSettingsRequest carries a partial settings update
type UpdateSettingsRequest struct {
	AnalyticsEnabled   *bool   `json:"analyticsEnabled"`
	PublicAnalytics    *bool   `json:"publicAnalytics"`
	ShowClickCount     *bool   `json:"showClickCount"`
	AllowLinkPreview   *bool   `json:"allowLinkPreview"`
	EmailNotifications *bool   `json:"emailNotifications"`
	ShowAvatar         *bool   `json:"showAvatar"`
	ShowBio            *bool   `json:"showBio"`
	ShowSocialLinks    *bool   `json:"showSocialLinks"`
	ActiveThemeID      *string `json:"activeThemeId"`
}

// UpdateThemeRequest carries a partial theme update
type UpdateThemeRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=50"`
	PrimaryColor    *string `json:"primaryColor"`
	SecondaryColor  *string `json:"secondaryColor"`
	BackgroundColor *string `json:"backgroundColor"`
	TextColor       *string `json:"textColor"`
	AccentColor     *string `json:"accentColor"`
	FontFamily      *string `json:"fontFamily" binding:"omitempty,max=50"`
	BorderRadius    *int    `json:"borderRadius" binding:"omitempty,min=0,max=50"`
	ButtonStyle     *string `json:"buttonStyle" binding:"omitempty,oneof=rounded square pill"`
}
