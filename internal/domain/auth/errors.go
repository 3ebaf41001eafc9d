package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrMissingToken       = errors.New("login response did not include a token")
)
