package service

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"taskboard/internal/domain"
	"taskboard/internal/models"
	"taskboard/internal/repository"
)

// UpdateUserInput is a partial profile update. Nil fields were not sent.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
}

// UserService owns the profile operations of the authenticated user.
type UserService struct {
	users  UserStore
	hasher PasswordHasher
	cache  *redis.Client
}

func NewUserService(users UserStore, hasher PasswordHasher, cache *redis.Client) *UserService {
	return &UserService{users: users, hasher: hasher, cache: cache}
}

func userCacheKey(id string) string {
	return "user:" + id
}

// Me returns the caller's own profile, read through the cache.
func (s *UserService) Me(ctx context.Context, id string) (models.User, error) {
	var user models.User
	if cacheGetJSON(ctx, s.cache, userCacheKey(id), &user) {
		return user, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	cacheSetJSON(ctx, s.cache, userCacheKey(id), user)
	return user, nil
}

// Update applies only the provided fields. A new email is normalized before
// storage; a new password is re-hashed.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (models.User, error) {
	fields := repository.UserUpdate{Name: in.Name}

	if in.Email != nil {
		normalized := NormalizeEmail(*in.Email)
		fields.Email = &normalized
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("%w: %v", domain.ErrInternal, err)
		}
		fields.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, id, fields)
	if err != nil {
		return models.User{}, err
	}

	cacheDel(ctx, s.cache, userCacheKey(id))
	cacheSetJSON(ctx, s.cache, userCacheKey(id), user)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	cacheDel(ctx, s.cache, userCacheKey(id))
	return nil
}
