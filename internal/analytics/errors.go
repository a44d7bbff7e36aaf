package analytics

import (
	"errors"
)

// Custom error types for the analytics package
var (
	// ErrInvalidInput indicates the provided input is invalid
	ErrInvalidInput = errors.New("Invalid input provided")

	// ErrLinkNotFound indicates the link was not found
	ErrLinkNotFound = errors.New("Link not found")

	// ErrAnalyticsDisabled indicates the profile owner turned analytics off
	ErrAnalyticsDisabled = errors.New("Analytics are disabled for this profile")

	// ErrDatabaseError indicates an error occurred with the database
	ErrDatabaseError = errors.New("Database operation failed")
)
