package service

import (
	"context"

	"taskboard/internal/models"
	"taskboard/internal/repository"
)

// UserStore is the persistence contract the services consume. The Postgres
// implementation lives in internal/repository; tests use in-memory fakes.
// Implementations return domain error kinds, never driver errors.
type UserStore interface {
	Create(ctx context.Context, email, name, passwordHash string) (models.User, error)
	FindByEmail(ctx context.Context, email string, withHash bool) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	Update(ctx context.Context, id string, fields repository.UserUpdate) (models.User, error)
	Delete(ctx context.Context, id string) error
}

// PasswordHasher abstracts pkg/crypto for the auth and user workflows.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

// TokenIssuer abstracts pkg/token for signin.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type TaskStore interface {
	Create(ctx context.Context, title, description, ownerID string) (models.Task, error)
	FindByID(ctx context.Context, id string) (models.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error)
	Update(ctx context.Context, id string, fields repository.TaskUpdate) (models.Task, error)
	Delete(ctx context.Context, id string) error
}
