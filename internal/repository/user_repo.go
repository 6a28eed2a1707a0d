package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"taskboard/internal/models"
)

// UserUpdate carries the fields of a partial user update. A nil pointer means
// the field was not sent and must be left untouched.
type UserUpdate struct {
	Email        *string
	Name         *string
	PasswordHash *string
}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, email, name, passwordHash string) (models.User, error) {
	user := models.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (id, email, name, password_hash)
         VALUES ($1, $2, $3, $4)
         RETURNING created_at, updated_at`,
		user.ID, email, name, passwordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

// FindByEmail looks a user up by exact (already normalized) email. The
// password hash is only scanned when withHash is set; every other caller gets
// a view without it.
func (r *UserRepo) FindByEmail(ctx context.Context, email string, withHash bool) (models.User, error) {
	var user models.User
	var err error
	if withHash {
		err = r.db.QueryRowContext(ctx,
			`SELECT id, email, name, password_hash, created_at, updated_at
             FROM users WHERE email = $1`, email,
		).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT id, email, name, created_at, updated_at
             FROM users WHERE email = $1`, email,
		).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	}
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, created_at, updated_at
         FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, fields UserUpdate) (models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx,
		`UPDATE users
         SET email = COALESCE($1, email),
             name = COALESCE($2, name),
             password_hash = COALESCE($3, password_hash),
             updated_at = NOW()
         WHERE id = $4
         RETURNING id, email, name, created_at, updated_at`,
		fields.Email, fields.Name, fields.PasswordHash, id,
	).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	var deleted string
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM users WHERE id = $1 RETURNING id`, id,
	).Scan(&deleted)
	return translate(err)
}
