package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"taskboard/internal/models"
)

// TaskUpdate carries the fields of a partial task update. A nil pointer means
// the field was not sent and must be left untouched.
type TaskUpdate struct {
	Title  *string
	Status *models.TaskStatus
}

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Create(ctx context.Context, title, description, ownerID string) (models.Task, error) {
	task := models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO tasks (id, owner_id, title, description)
         VALUES ($1, $2, $3, $4)
         RETURNING status, created_at, updated_at`,
		task.ID, ownerID, title, description,
	).Scan(&task.Status, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return models.Task{}, translate(err)
	}
	return task, nil
}

func (r *TaskRepo) FindByID(ctx context.Context, id string) (models.Task, error) {
	var task models.Task
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, title, description, status, created_at, updated_at
         FROM tasks WHERE id = $1`, id,
	).Scan(&task.ID, &task.OwnerID, &task.Title, &task.Description, &task.Status, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return models.Task{}, translate(err)
	}
	return task, nil
}

// ListByOwner returns the owner's tasks, newest first.
func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, title, description, status, created_at, updated_at
         FROM tasks WHERE owner_id = $1
         ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.OwnerID, &task.Title, &task.Description, &task.Status, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return tasks, nil
}

func (r *TaskRepo) Update(ctx context.Context, id string, fields TaskUpdate) (models.Task, error) {
	var task models.Task
	err := r.db.QueryRowContext(ctx,
		`UPDATE tasks
         SET title = COALESCE($1, title),
             status = COALESCE($2, status),
             updated_at = NOW()
         WHERE id = $3
         RETURNING id, owner_id, title, description, status, created_at, updated_at`,
		fields.Title, fields.Status, id,
	).Scan(&task.ID, &task.OwnerID, &task.Title, &task.Description, &task.Status, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return models.Task{}, translate(err)
	}
	return task, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	var deleted string
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM tasks WHERE id = $1 RETURNING id`, id,
	).Scan(&deleted)
	return translate(err)
}
