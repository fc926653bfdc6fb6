package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sunlighthq/tasks-service/internal/entity"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type JWTManager struct {
	secretKey string
}

func NewJWTManager() *JWTManager {
	secretKey := os.Getenv("JWT_SECRET_KEY")
	if secretKey == "" {
		secretKey = "your-secret-key-change-in-production" // dev default
	}
	return &JWTManager{
		secretKey: secretKey,
	}
}

// GenerateAccessToken issues a short-lived access token.
func (m *JWTManager) GenerateAccessToken(userID, email string) (string, error) {
	return m.generate(userID, email, "access", accessTokenTTL)
}

// GenerateRefreshToken issues a 7-day refresh token.
func (m *JWTManager) GenerateRefreshToken(userID, email string) (string, error) {
	return m.generate(userID, email, "refresh", refreshTokenTTL)
}

func (m *JWTManager) generate(userID, email, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
		"type":    tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, nil
}

// ValidateAccessToken verifies signature, expiry and token type.
func (m *JWTManager) ValidateAccessToken(tokenString string) (*entity.JWTClaims, error) {
	return m.validate(tokenString, "access")
}

// ValidateRefreshToken verifies signature, expiry and token type.
func (m *JWTManager) ValidateRefreshToken(tokenString string) (*entity.JWTClaims, error) {
	return m.validate(tokenString, "refresh")
}

func (m *JWTManager) validate(tokenString, wantType string) (*entity.JWTClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != wantType {
		return nil, fmt.Errorf("invalid token type")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("invalid user_id in token")
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid email in token")
	}

	return &entity.JWTClaims{
		UserID: userID,
		Email:  email,
	}, nil
}
