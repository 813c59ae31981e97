package auth

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when a refresh token cannot be honoured
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict is returned when registering an email that already exists
	ErrConflict = errors.New("email already registered")
	// ErrValidation is returned for request fields the service rejects
	ErrValidation = errors.New("validation error")
)
