package link

import (
	"errors"
)

// Custom error types for the link package
var (
	// ErrInvalidInput indicates the provided input is invalid
	ErrInvalidInput = errors.New("Invalid input provided")

	// ErrLinkNotFound indicates the link was not found for this user
	ErrLinkNotFound = errors.New("Link not found")

	// ErrInvalidTitle indicates the title is too short
	ErrInvalidTitle = errors.New("Title must be at least 2 characters")

	// ErrInvalidURL indicates the URL is not a valid http(s) URL
	ErrInvalidURL = errors.New("Invalid URL")

	// ErrInvalidDescription indicates the description is too short
	ErrInvalidDescription = errors.New("Description must be at least 5 characters")

	// ErrMissingOwnerRecord indicates the insert failed because the user's
	// profile row does not exist (foreign key violation)
	ErrMissingOwnerRecord = errors.New("Owner profile record is missing")

	// ErrTagNotFound indicates a referenced tag was not found for this user
	ErrTagNotFound = errors.New("Tag not found")

	// ErrReorderMismatch indicates the reorder request does not cover the user's links
	ErrReorderMismatch = errors.New("Reorder list does not match existing links")

	// ErrCacheError indicates an error occurred with the Redis cache
	ErrCacheError = errors.New("Cache operation failed")

	// ErrDatabaseError indicates an error occurred with the database
	ErrDatabaseError = errors.New("Database operation failed")
)
