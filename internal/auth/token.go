// File: internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the JWT payload issued for authenticated sessions.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies access tokens.
type TokenService interface {
	Generate(userID uuid.UUID, name, role string) (string, error)
	Verify(tokenString string) (*Claims, error)
}

type jwtTokenService struct {
	secretKey []byte
	ttl       time.Duration
}

// NewJWTTokenService creates a TokenService backed by HS256-signed JWTs.
func NewJWTTokenService(cfg *config.Config) TokenService {
	return &jwtTokenService{
		secretKey: []byte(cfg.JWTSecretKey),
		ttl:       cfg.JWTAccessTokenTTL,
	}
}

func (s *jwtTokenService) Generate(userID uuid.UUID, name, role string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *jwtTokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrUnauthorized.WithDetails("Access token has expired.")
		}
		return nil, common.ErrUnauthorized.WithDetails("Invalid access token.")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, common.ErrUnauthorized.WithDetails("Invalid access token.")
	}
	return claims, nil
}
