package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sunlighthq/tasks-service/internal/entity"
	"github.com/sunlighthq/tasks-service/internal/infrastructure/auth"
	"github.com/sunlighthq/tasks-service/internal/repository"
)

const refreshTokenTTL = 7 * 24 * time.Hour

type AuthService struct {
	userRepo         repository.IUserRepository
	refreshTokenRepo repository.IRefreshTokenRepository
	passwordManager  *auth.PasswordManager
	jwtManager       *auth.JWTManager
}

func NewAuthService(
	userRepo repository.IUserRepository,
	refreshTokenRepo repository.IRefreshTokenRepository,
	passwordManager *auth.PasswordManager,
	jwtManager *auth.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		passwordManager:  passwordManager,
		jwtManager:       jwtManager,
	}
}

func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, storeErr(err)
	}
	if existingUser != nil {
		return nil, entity.ErrEmailTaken
	}

	passwordHash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, storeErr(err)
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, storeErr(err)
	}
	// same failure for unknown email, disabled account and bad password
	if user == nil || !user.IsActive {
		return nil, entity.ErrInvalidCredentials
	}
	if !s.passwordManager.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, entity.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates the pair: the presented refresh token is revoked and a
// new one issued in its place.
func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenStr string) (*entity.RefreshTokenResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshTokenStr)
	if err != nil {
		return nil, entity.ErrInvalidToken
	}

	refreshTokenHash := s.hashToken(refreshTokenStr)
	storedToken, err := s.refreshTokenRepo.GetByHash(ctx, refreshTokenHash)
	if err != nil {
		return nil, storeErr(err)
	}
	if storedToken == nil {
		return nil, entity.ErrInvalidToken
	}

	newAccessToken, err := s.jwtManager.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(claims.UserID, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refreshTokenRepo.Revoke(ctx, refreshTokenHash); err != nil {
		return nil, storeErr(err)
	}
	if err := s.refreshTokenRepo.Save(ctx, claims.UserID, s.hashToken(newRefreshToken), time.Now().Add(refreshTokenTTL)); err != nil {
		return nil, storeErr(err)
	}

	return &entity.RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout revokes every refresh token the user holds.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.refreshTokenRepo.RevokeAll(ctx, userID); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *entity.User) (*entity.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// only the hash is stored
	if err := s.refreshTokenRepo.Save(ctx, user.ID, s.hashToken(refreshToken), time.Now().Add(refreshTokenTTL)); err != nil {
		return nil, storeErr(err)
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, storeErr(err)
	}

	return &entity.LoginResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
