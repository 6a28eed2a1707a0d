package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"taskboard/internal/domain"
)

// Claims is the bearer token payload: subject (user ID), email and the
// standard iat/exp fields. Nothing else goes into the token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and validates bearer tokens with a server-held secret.
// Tokens are stateless; expiry is the only invalidation.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token for the given user.
func (s *Service) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token. Malformed, tampered and expired tokens
// all come back as ErrUnauthenticated; callers never learn which it was.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}
