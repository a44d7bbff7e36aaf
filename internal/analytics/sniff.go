package analytics

import (
	"regexp"
	"strings"

	"beelinks-api/internal/models"
)

var (
	tabletRegex = regexp.MustCompile(`(?i)tablet|ipad|playbook|silk`)
	mobileRegex = regexp.MustCompile(`(?i)mobile|iphone|ipod|android|blackberry|opera|mini|windows\sce|palm|smartphone|iemobile`)
)

// DetectDevice classifies a user agent. Tablets are matched before phones
// because tablet user agents usually also contain the mobile keywords.
func DetectDevice(userAgent string) string {
	if tabletRegex.MatchString(userAgent) {
		return models.DeviceTablet
	}
	if mobileRegex.MatchString(userAgent) {
		return models.DeviceMobile
	}
	return models.DeviceDesktop
}

// DetectBrowser picks the browser family from a user agent. First match
// wins in the checked order, so Edge user agents (which also carry
// "Chrome") report Chrome.
func DetectBrowser(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "safari"):
		return "Safari"
	case strings.Contains(ua, "edge"):
		return "Edge"
	default:
		return "Other"
	}
}

// DetectOS picks the operating system family from a user agent. First match
// wins in the checked order, so Android user agents (which also carry
// "Linux") report Linux.
func DetectOS(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "mac"):
		return "macOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "ios"):
		return "iOS"
	default:
		return "Other"
	}
}
