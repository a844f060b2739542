package auth

import (
	"errors"
	"time"

	"smartwallet/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Service issues and validates JWT access and refresh tokens.
type Service struct {
	jwtSecret     string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(jwtSecret, refreshSecret string) *Service {
	return &Service{
		jwtSecret:     jwtSecret,
		refreshSecret: refreshSecret,
		accessTTL:     15 * time.Minute,
		refreshTTL:    7 * 24 * time.Hour,
	}
}

// GenerateTokens creates an access and a refresh token for the user.
func (s *Service) GenerateTokens(user *models.User) (accessToken, refreshToken string, err error) {
	now := time.Now()

	accessClaims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "smartwallet-api",
			Subject:   user.ID.String(),
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	accessToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "smartwallet-api",
			Subject:   user.ID.String(),
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	refreshToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.refreshSecret))
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// ValidateAccessToken parses and verifies an access token.
func (s *Service) ValidateAccessToken(tokenString string) (*models.UserClaims, error) {
	return s.validate(tokenString, s.jwtSecret)
}

// ValidateRefreshToken parses and verifies a refresh token.
func (s *Service) ValidateRefreshToken(tokenString string) (*models.UserClaims, error) {
	return s.validate(tokenString, s.refreshSecret)
}

func (s *Service) validate(tokenString, secret string) (*models.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
