package jwthelper

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vietanh2810/mesas-api/internal/domain"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingClaims = errors.New("token is missing delegate_id or role")
)

type Claims struct {
	DelegateID string `json:"delegate_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for identity valid for ttl.
func GenerateToken(key string, identity domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		DelegateID: identity.DelegateID,
		Role:       identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.DelegateID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		return "", fmt.Errorf("token.SignedString -> %w", err)
	}

	return signed, nil
}

// ParseToken verifies tokenString with key and returns the identity it carries.
func ParseToken(key, tokenString string) (domain.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(key), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return domain.Identity{}, ErrInvalidToken
	}
	if claims.DelegateID == "" || claims.Role == "" {
		return domain.Identity{}, ErrMissingClaims
	}

	return domain.Identity{DelegateID: claims.DelegateID, Role: claims.Role}, nil
}
