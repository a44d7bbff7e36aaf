package profile

import (
	"errors"
)

// Custom error types for the profile package
var (
	// ErrInvalidInput indicates the provided input is invalid
	ErrInvalidInput = errors.New("Invalid input provided")

	// ErrUserNotFound indicates the user was not found
	ErrUserNotFound = errors.New("User not found")

	// ErrProfileMissing indicates the auth identity exists but the profile row does not
	ErrProfileMissing = errors.New("Profile record is missing for this account")

	// ErrProfilePrivate indicates the profile is not publicly visible
	ErrProfilePrivate = errors.New("Profile is private")

	// ErrInvalidEmail indicates the provided email is invalid
	ErrInvalidEmail = errors.New("Invalid email format")

	// ErrInvalidUsername indicates the provided username is invalid
	ErrInvalidUsername = errors.New("Invalid username format")

	// ErrUsernameAlreadyExists indicates the username is already in use
	ErrUsernameAlreadyExists = errors.New("Username already exists")

	// ErrSlugAlreadyExists indicates the custom slug is already in use
	ErrSlugAlreadyExists = errors.New("Custom slug already exists")

	// ErrSettingsNotFound indicates the user's settings row was not found
	ErrSettingsNotFound = errors.New("User settings not found")

	// ErrThemeNotFound indicates the referenced theme was not found
	ErrThemeNotFound = errors.New("Theme not found")

	// ErrCacheError indicates an error occurred with the Redis cache
	ErrCacheError = errors.New("Cache operation failed")

	// ErrDatabaseError indicates an error occurred with the database
	ErrDatabaseError = errors.New("Database operation failed")
)
