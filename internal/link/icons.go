package link

import (
	"net/url"
	"strings"
)

// defaultIcon is used when no domain-specific icon matches.
const defaultIcon = "fas fa-link"

// iconByDomain maps well-known hosts to Font Awesome classes.
var iconByDomain = map[string]string{
	"github.com":        "fab fa-github",
	"x.com":             "fab fa-x-twitter",
	"twitter.com":       "fab fa-x-twitter",
	"instagram.com":     "fab fa-instagram",
	"linkedin.com":      "fab fa-linkedin",
	"youtube.com":       "fab fa-youtube",
	"youtu.be":          "fab fa-youtube",
	"facebook.com":      "fab fa-facebook",
	"tiktok.com":        "fab fa-tiktok",
	"twitch.tv":         "fab fa-twitch",
	"discord.com":       "fab fa-discord",
	"discord.gg":        "fab fa-discord",
	"whatsapp.com":      "fab fa-whatsapp",
	"wa.me":             "fab fa-whatsapp",
	"t.me":              "fab fa-telegram",
	"telegram.org":      "fab fa-telegram",
	"spotify.com":       "fab fa-spotify",
	"soundcloud.com":    "fab fa-soundcloud",
	"medium.com":        "fab fa-medium",
	"dev.to":            "fab fa-dev",
	"stackoverflow.com": "fab fa-stack-overflow",
	"codepen.io":        "fab fa-codepen",
	"figma.com":         "fab fa-figma",
	"notion.so":         "fas fa-book",
	"behance.net":       "fab fa-behance",
	"dribbble.com":      "fab fa-dribbble",
	"pinterest.com":     "fab fa-pinterest",
	"reddit.com":        "fab fa-reddit",
	"snapchat.com":      "fab fa-snapchat",
	"paypal.com":        "fab fa-paypal",
	"patreon.com":       "fab fa-patreon",
}

// DetectIcon picks an icon class from the URL's host. The leading "www."
// is ignored; unknown hosts get the generic link icon.
func DetectIcon(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return defaultIcon
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")

	if icon, ok := iconByDomain[host]; ok {
		return icon
	}

	return defaultIcon
}
