package service

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/domain"
	"taskboard/internal/models"
)

// AuthService orchestrates signup and signin.
type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// SignUp creates a user with a normalized email and a hashed password. A
// duplicate email (any casing) comes back as ErrDuplicateEmail.
func (s *AuthService) SignUp(ctx context.Context, email, name, password string) (models.User, error) {
	email = NormalizeEmail(email)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	// The store strips the hash from the returned view.
	return s.users.Create(ctx, email, name, hash)
}

// SignIn verifies the credentials and issues a bearer token. A missing user
// and a wrong password fail with the same ErrInvalidCredentials; callers must
// not be able to tell the two apart.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email), true)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
	if !ok {
		return "", domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
	return signed, nil
}
