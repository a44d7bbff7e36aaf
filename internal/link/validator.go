package link

import (
	"net/url"
	"strings"
)

// Link defaults.
const (
	defaultDescription = "Clique para visitar"

	minTitleLength       = 2
	minDescriptionLength = 5
)

// NormalizeURL prepends https:// to schemeless URLs and trims whitespace
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}

	if !strings.Contains(trimmed, "://") {
		return "https://" + trimmed
	}

	return trimmed
}

// validateURL checks that a normalized URL is a usable http(s) URL
func validateURL(normalized string) error {
	parsed, err := url.Parse(normalized)
	if err != nil {
		return ErrInvalidURL
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidURL
	}

	if parsed.Host == "" {
		return ErrInvalidURL
	}

	return nil
}

// validateTitle checks the title length requirement
func validateTitle(title string) error {
	if len(strings.TrimSpace(title)) < minTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

// validateDescription checks the description length requirement when set
func validateDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if trimmed != "" && len(trimmed) < minDescriptionLength {
		return ErrInvalidDescription
	}
	return nil
}
