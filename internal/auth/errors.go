package auth

import (
	"errors"
)

// Custom error types for the auth package
var (
	// ErrInvalidInput indicates the provided input is invalid
	ErrInvalidInput = errors.New("Invalid input provided")

	// ErrInvalidCredentials indicates the credentials are invalid
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// ErrInvalidEmail indicates the provided email is invalid
	ErrInvalidEmail = errors.New("Invalid email format")

	// ErrWeakPassword indicates the password does not meet requirements
	ErrWeakPassword = errors.New("Password does not meet requirements")

	// ErrInvalidUsername indicates the provided username is invalid
	ErrInvalidUsername = errors.New("Invalid username format")

	// ErrEmailAlreadyExists indicates the email is already in use
	ErrEmailAlreadyExists = errors.New("Email already exists")

	// ErrUsernameAlreadyExists indicates the username is already in use
	ErrUsernameAlreadyExists = errors.New("Username already exists")

	// ErrIdentityNotFound indicates no auth identity exists for the email
	ErrIdentityNotFound = errors.New("Account not found")

	// ErrProfileCreationFailed indicates the profile records could not be created
	ErrProfileCreationFailed = errors.New("Profile creation failed")

	// ErrDatabaseError indicates an error occurred with the database
	ErrDatabaseError = errors.New("Database operation failed")
)
