package auth

import (
	"strings"
	"testing"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	if theme.Name != "Tema BeeLinks" {
		t.Errorf("name = %q, want Tema BeeLinks", theme.Name)
	}
	if !theme.IsDefault {
		t.Error("starter theme must be marked default")
	}
	if theme.PrimaryColor != "#FFD700" || theme.SecondaryColor != "#FFC107" {
		t.Errorf("palette = %s/%s, want #FFD700/#FFC107", theme.PrimaryColor, theme.SecondaryColor)
	}
	if theme.ButtonStyle != "rounded" || theme.BorderRadius != 12 {
		t.Errorf("buttons = %s/%d, want rounded/12", theme.ButtonStyle, theme.BorderRadius)
	}

	// Each call builds a fresh row; mutating one must not leak into the next
	theme.UserID = "user1"
	if DefaultTheme().UserID != "" {
		t.Error("DefaultTheme must return a fresh value each call")
	}
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if !settings.AnalyticsEnabled {
		t.Error("analytics must start enabled")
	}
	if settings.PublicAnalytics {
		t.Error("public analytics must start disabled")
	}
	if !settings.ShowAvatar || !settings.ShowBio || !settings.ShowSocialLinks {
		t.Error("profile visibility toggles must start enabled")
	}

	settings.UserID = "user1"
	if DefaultSettings().UserID != "" {
		t.Error("DefaultSettings must return a fresh value each call")
	}
}

func TestDefaultAvatarURL(t *testing.T) {
	got := DefaultAvatarURL("Maria Silva")
	if !strings.Contains(got, "seed=Maria+Silva") {
		t.Errorf("url = %q, want the escaped name as seed", got)
	}

	if got := DefaultAvatarURL("   "); !strings.Contains(got, "seed=User") {
		t.Errorf("blank name url = %q, want the User fallback seed", got)
	}
}
