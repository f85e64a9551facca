package identity

import "errors"

var (
	// ErrNotFound is returned when the requested user or token does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials hides whether email or password failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenConsumed      = errors.New("token already consumed")
)
