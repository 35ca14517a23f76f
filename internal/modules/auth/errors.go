package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrValidation         = errors.New("invalid registration data")
)
