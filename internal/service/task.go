package service

import (
	"context"

	"github.com/go-redis/redis/v8"

	"taskboard/internal/domain"
	"taskboard/internal/models"
	"taskboard/internal/repository"
)

// UpdateTaskInput is a partial task update. Nil fields were not sent.
type UpdateTaskInput struct {
	Title  *string
	Status *string
}

// Notifier receives task change events. The websocket hub implements it; a
// nil notifier disables events.
type Notifier interface {
	NotifyTask(action string, task models.Task)
}

// TaskService is the ownership-scoped task CRUD. Every read and mutation is
// checked against the requester's identity; a task the requester does not own
// is reported exactly like a task that does not exist.
type TaskService struct {
	tasks  TaskStore
	cache  *redis.Client
	events Notifier
}

func NewTaskService(tasks TaskStore, cache *redis.Client, events Notifier) *TaskService {
	return &TaskService{tasks: tasks, cache: cache, events: events}
}

func taskCacheKey(id string) string {
	return "task:" + id
}

func (s *TaskService) notify(action string, task models.Task) {
	if s.events != nil {
		s.events.NotifyTask(action, task)
	}
}

// List returns the owner's tasks, newest first.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

func (s *TaskService) Create(ctx context.Context, title, description, ownerID string) (models.Task, error) {
	task, err := s.tasks.Create(ctx, title, description, ownerID)
	if err != nil {
		// ErrOwnerNotFound when the owner vanished between auth and write.
		return models.Task{}, err
	}
	s.notify("created", task)
	return task, nil
}

// Get fetches a task by id for the requester. Absent and not-owned both fail
// with ErrNotFound.
func (s *TaskService) Get(ctx context.Context, id, requesterID string) (models.Task, error) {
	var task models.Task
	if cacheGetJSON(ctx, s.cache, taskCacheKey(id), &task) {
		if task.OwnerID != requesterID {
			return models.Task{}, domain.ErrNotFound
		}
		return task, nil
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if task.OwnerID != requesterID {
		return models.Task{}, domain.ErrNotFound
	}
	cacheSetJSON(ctx, s.cache, taskCacheKey(id), task)
	return task, nil
}

// Update checks ownership, then applies only the provided fields. An
// unrecognized status value is dropped; the title still applies. The check and
// the write are two statements, so a concurrent delete surfaces as
// ErrNotFound from the write.
func (s *TaskService) Update(ctx context.Context, id string, in UpdateTaskInput, requesterID string) (models.Task, error) {
	if _, err := s.Get(ctx, id, requesterID); err != nil {
		return models.Task{}, err
	}

	fields := repository.TaskUpdate{Title: in.Title}
	if in.Status != nil {
		if status, ok := normalizeStatus(*in.Status); ok {
			fields.Status = &status
		}
	}

	task, err := s.tasks.Update(ctx, id, fields)
	if err != nil {
		return models.Task{}, err
	}

	cacheDel(ctx, s.cache, taskCacheKey(id))
	cacheSetJSON(ctx, s.cache, taskCacheKey(id), task)
	s.notify("updated", task)
	return task, nil
}

// Delete checks ownership, then removes the task.
func (s *TaskService) Delete(ctx context.Context, id, requesterID string) error {
	task, err := s.Get(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	cacheDel(ctx, s.cache, taskCacheKey(id))
	s.notify("deleted", task)
	return nil
}
