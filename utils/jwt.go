package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the token's role claim.
const (
	RoleGuest = "guest"
	RoleStaff = "staff"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is the decoded identity of an authenticated caller.
type TokenClaims struct {
	Subject uint
	Role    string
}

// IssueToken signs an HS256 JWT with subject, role, exp and iat claims.
func IssueToken(secret string, subject uint, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  float64(subject),
		"role": role,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates the signature and expiry and extracts the claims.
func ParseToken(secret, raw string) (TokenClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return TokenClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return TokenClaims{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return TokenClaims{Subject: uint(sub), Role: role}, nil
}
