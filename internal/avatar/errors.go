package avatar

import (
	"errors"
)

// Custom error types for the avatar package
var (
	// ErrInvalidInput indicates the provided input is invalid
	ErrInvalidInput = errors.New("Invalid input provided")

	// ErrAvatarNotFound indicates the avatar was not found for this user
	ErrAvatarNotFound = errors.New("Avatar not found")

	// ErrFileTooLarge indicates the upload exceeds the size limit
	ErrFileTooLarge = errors.New("File exceeds the 5MB limit")

	// ErrUnsupportedType indicates the file type is not an accepted image format
	ErrUnsupportedType = errors.New("Unsupported image type")

	// ErrStorageError indicates an error occurred with blob storage
	ErrStorageError = errors.New("Blob storage operation failed")

	// ErrDatabaseError indicates an error occurred with the database
	ErrDatabaseError = errors.New("Database operation failed")
)
