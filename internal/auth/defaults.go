package auth

import (
	"fmt"
	"net/url"
	"strings"

	"beelinks-api/internal/models"
)

// Defaults applied to every freshly created account. Exported so the
// repair tool rebuilds missing rows with the exact sign-up values.
const (
	DefaultBio       = "Desenvolvedor | Criador de Conteúdo | Tech Enthusiast"
	defaultThemeName = "Tema BeeLinks"
)

// DefaultTheme builds the starter theme for a new user. The color values
// rely on the column defaults declared on the model.
func DefaultTheme() *models.Theme {
	return &models.Theme{
		Name:            defaultThemeName,
		IsDefault:       true,
		PrimaryColor:    "#FFD700",
		SecondaryColor:  "#FFC107",
		BackgroundColor: "#1A1A1A",
		TextColor:       "#FFFFFF",
		AccentColor:     "#2D2D2D",
		FontFamily:      "Inter",
		BorderRadius:    12,
		ButtonStyle:     "rounded",
	}
}

// DefaultSettings builds the starter settings row for a new user
func DefaultSettings() *models.UserSettings {
	return &models.UserSettings{
		AnalyticsEnabled:   true,
		PublicAnalytics:    false,
		ShowClickCount:     true,
		AllowLinkPreview:   true,
		EmailNotifications: true,
		ShowAvatar:         true,
		ShowBio:            true,
		ShowSocialLinks:    true,
	}
}

// defaultTags builds the starter tag set for a new user
func defaultTags() []models.LinkTag {
	return []models.LinkTag{
		{Name: "Trabalho", Color: "#3B82F6"},
		{Name: "Pessoal", Color: "#EF4444"},
		{Name: "Social", Color: "#10B981"},
		{Name: "Projetos", Color: "#F59E0B"},
	}
}

// DefaultAvatarURL builds the generated-initials avatar for a display name
func DefaultAvatarURL(name string) string {
	clean := strings.TrimSpace(name)
	if clean == "" {
		clean = "User"
	}
	return fmt.Sprintf(
		"https://api.dicebear.com/7.x/initials/svg?seed=%s&backgroundColor=FFD700&textColor=000000",
		url.QueryEscape(clean),
	)
}
