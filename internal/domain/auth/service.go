package auth

import "context"

type AuthService interface {
	// Register creates the user and its 1:1 profile in one transaction.
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// LoginWithGoogle signs in (or signs up) a user from a verified Google
	// account.
	LoginWithGoogle(ctx context.Context, email, googleID, name string) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
