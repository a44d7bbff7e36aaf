package repair

import (
	"errors"
)

// Custom error types for the repair package
var (
	// ErrInvalidInput indicates the provided input is invalid
	ErrInvalidInput = errors.New("Invalid input provided")

	// ErrIdentityNotFound indicates no auth identity exists for the user
	ErrIdentityNotFound = errors.New("Auth identity not found")

	// ErrRepairFailed indicates the repair transaction did not complete
	ErrRepairFailed = errors.New("Profile repair failed")

	// ErrDatabaseError indicates an error occurred with the database
	ErrDatabaseError = errors.New("Database operation failed")
)
