package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/auth"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/profile"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/database"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/jwt"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/repository/postgresql"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"golang.org/x/crypto/bcrypt"
)

const googleProvider = "google"

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	profile.ProfileRepository
	jwtService jwt.Service
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	profileRepo profile.ProfileRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                db,
		UserRepository:    userRepo,
		ProfileRepository: profileRepo,
		jwtService:        jwtService,
	}
}

// Register implements auth.AuthService. The user row and its profile are
// created in one transaction so a half-registered account cannot exist.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hashed)

	var created user.User
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.UserRepository.Create(txCtx, user.User{
			Email:        req.Email,
			PasswordHash: &passwordHash,
			Role:         user.RoleAnalyst,
		})
		if err != nil {
			return err
		}

		_, err = s.ProfileRepository.Create(txCtx, profile.Profile{
			UserID:    created.ID,
			Name:      req.Name,
			Role:      created.Role,
			StartTime: profile.DefaultStartTime,
			EndTime:   profile.DefaultEndTime,
			WorkDays:  profile.DefaultWorkDays(),
		})
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return s.issueTokens(created)
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// OAuth-only accounts have no password to check.
	if u.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// LoginWithGoogle implements auth.AuthService. First sign-in provisions the
// account and profile the same way Register does.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email, googleID, name string) (auth.TokenResponse, error) {
	provider := googleProvider

	u, err := s.UserRepository.GetByOAuth(ctx, provider, googleID)
	if err == nil {
		return s.issueTokens(u)
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by oauth identity: %w", err)
	}

	// An existing password account with the same email signs in directly.
	u, err = s.UserRepository.GetByEmail(ctx, email)
	if err == nil {
		return s.issueTokens(u)
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if name == "" {
		name = email
	}

	var created user.User
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.UserRepository.Create(txCtx, user.User{
			Email:           email,
			Role:            user.RoleAnalyst,
			OAuthProvider:   &provider,
			OAuthProviderID: &googleID,
		})
		if err != nil {
			return err
		}

		_, err = s.ProfileRepository.Create(txCtx, profile.Profile{
			UserID:    created.ID,
			Name:      name,
			Role:      created.Role,
			StartTime: profile.DefaultStartTime,
			EndTime:   profile.DefaultEndTime,
			WorkDays:  profile.DefaultWorkDays(),
		})
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return s.issueTokens(created)
}

// RefreshToken implements auth.AuthService.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if req.RefreshToken == "" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if s.jwtService.IsTokenRevoked(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := s.jwtService.JWTAuth().Decode(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if err := jwxjwt.Validate(token); err != nil {
		if errors.Is(err, jwxjwt.ErrTokenExpired()) {
			return auth.AccessTokenResponse{}, auth.ErrTokenExpired
		}
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	userIDVal, ok := token.Get("user_id")
	if !ok {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: accessExpiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

func (s *AuthServiceImpl) issueTokens(u user.User) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
	}, nil
}
