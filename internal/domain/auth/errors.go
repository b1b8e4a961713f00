package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrInvalidToken        = errors.New("Invalid or missing token")
	ErrTokenExpired        = errors.New("Token expired")
	ErrRefreshTokenRevoked = errors.New("Refresh token revoked")
	ErrOAuthStateMismatch  = errors.New("OAuth state mismatch")
	ErrOAuthEmailUnverified = errors.New("Google account email is not verified")
)
