package services

import "errors"

// Common service errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid refresh token")
	ErrTokenExpired       = errors.New("refresh token has expired")
	ErrAlreadySeeded      = errors.New("contracts already exist")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrNoPhoto            = errors.New("no photo stored")
)
