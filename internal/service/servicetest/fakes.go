// Package servicetest provides in-memory implementations of the persistence
// contracts for tests that should not need a running Postgres. The fakes
// return the same domain error kinds as the real repositories.
package servicetest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain"
	"taskboard/internal/models"
	"taskboard/internal/repository"
)

type UserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]models.User)}
}

func (s *UserStore) Create(_ context.Context, email, name, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return models.User{}, domain.ErrDuplicateEmail
		}
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[user.ID] = user

	user.PasswordHash = ""
	return user, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string, withHash bool) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			if !withHash {
				u.PasswordHash = ""
			}
			return u, nil
		}
	}
	return models.User{}, domain.ErrNotFound
}

func (s *UserStore) FindByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, domain.ErrNotFound
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *UserStore) Update(_ context.Context, id string, fields repository.UserUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, domain.ErrNotFound
	}
	if fields.Email != nil {
		for otherID, other := range s.users {
			if otherID != id && other.Email == *fields.Email {
				return models.User{}, domain.ErrDuplicateEmail
			}
		}
		u.Email = *fields.Email
	}
	if fields.Name != nil {
		u.Name = *fields.Name
	}
	if fields.PasswordHash != nil {
		u.PasswordHash = *fields.PasswordHash
	}
	u.UpdatedAt = time.Now()
	s.users[id] = u

	u.PasswordHash = ""
	return u, nil
}

func (s *UserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// TaskStore is an in-memory task gateway. When Users is set, Create enforces
// the owner foreign key the way Postgres would.
type TaskStore struct {
	Users *UserStore

	mu    sync.Mutex
	tasks map[string]models.Task
	seq   int
}

func NewTaskStore(users *UserStore) *TaskStore {
	return &TaskStore{Users: users, tasks: make(map[string]models.Task)}
}

func (s *TaskStore) Create(ctx context.Context, title, description, ownerID string) (models.Task, error) {
	if s.Users != nil {
		if _, err := s.Users.FindByID(ctx, ownerID); err != nil {
			return models.Task{}, domain.ErrOwnerNotFound
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	// Distinct creation instants so newest-first ordering is deterministic.
	now := time.Now().Add(time.Duration(s.seq) * time.Millisecond)
	task := models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      models.StatusTodo,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[task.ID] = task
	return task, nil
}

func (s *TaskStore) FindByID(_ context.Context, id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, domain.ErrNotFound
	}
	return task, nil
}

func (s *TaskStore) ListByOwner(_ context.Context, ownerID string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := []models.Task{}
	for _, task := range s.tasks {
		if task.OwnerID == ownerID {
			tasks = append(tasks, task)
		}
	}
	for i := 0; i < len(tasks); i++ {
		for j := i + 1; j < len(tasks); j++ {
			if tasks[j].CreatedAt.After(tasks[i].CreatedAt) {
				tasks[i], tasks[j] = tasks[j], tasks[i]
			}
		}
	}
	return tasks, nil
}

func (s *TaskStore) Update(_ context.Context, id string, fields repository.TaskUpdate) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, domain.ErrNotFound
	}
	if fields.Title != nil {
		task.Title = *fields.Title
	}
	if fields.Status != nil {
		task.Status = *fields.Status
	}
	task.UpdatedAt = time.Now()
	s.tasks[id] = task
	return task, nil
}

func (s *TaskStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}
