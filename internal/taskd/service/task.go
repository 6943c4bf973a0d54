package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taskdhq/taskd/internal/taskd/domain"
	"github.com/taskdhq/taskd/internal/taskd/store"
	"github.com/taskdhq/taskd/pkg/idx"
	"github.com/taskdhq/taskd/pkg/slogx"
)

// TaskFilter narrows a task listing for one caller. The owner is not part of
// the filter: it is always the caller and is added by the service.
type TaskFilter struct {
	Status *domain.TaskStatus
	Search string
}

// TaskService orchestrates task operations for an authenticated caller. Every
// read and write is scoped to the caller's identity before it reaches the
// store.
type TaskService struct {
	Store store.Store

	// Clock is used for record timestamps. Nil means time.Now.
	Clock func() time.Time
}

func (s *TaskService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

// CreateTask creates a task owned by the caller with status OPEN.
func (s *TaskService) CreateTask(ctx context.Context, title, description, callerID string) (domain.Task, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Task{}, &ValidationError{Message: "title should not be empty"}
	}

	now := s.now()
	t := domain.Task{
		ID:          idx.New().String(),
		Title:       title,
		Description: description,
		Status:      domain.TaskStatusOpen,
		OwnerID:     callerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Tasks().CreateTask(ctx, t); err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

// GetTaskByID returns the caller's task with the given id. A task owned by
// another user yields the same not-found error as a nonexistent id.
func (s *TaskService) GetTaskByID(ctx context.Context, id, callerID string) (domain.Task, error) {
	if id == "" {
		return domain.Task{}, &NotFoundError{Message: "Task ID is required"}
	}

	t, err := s.Store.Tasks().GetTaskForOwner(ctx, id, callerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, &NotFoundError{Message: fmt.Sprintf("Task with ID %q not found", id)}
		}
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// GetTasks lists the caller's tasks, optionally narrowed by status and a
// case-insensitive search over title and description.
func (s *TaskService) GetTasks(ctx context.Context, f TaskFilter, callerID string) ([]domain.Task, error) {
	l := slogx.FromContext(ctx)

	if f.Status != nil && !f.Status.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("%q is not a valid task status", *f.Status)}
	}

	tasks, err := s.Store.Tasks().ListTasks(ctx, store.TaskFilter{
		OwnerID: callerID,
		Status:  f.Status,
		Search:  f.Search,
	})
	if err != nil {
		l.Error("failed to retrieve tasks",
			slog.String("owner_id", callerID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	return tasks, nil
}

// DeleteTask removes the caller's task with the given id. The ownership
// pre-check runs first; the store delete is never attempted when it fails.
func (s *TaskService) DeleteTask(ctx context.Context, id, callerID string) error {
	t, err := s.GetTaskByID(ctx, id, callerID)
	if err != nil {
		return err
	}

	if err := s.Store.Tasks().DeleteTaskForOwner(ctx, t.ID, callerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &NotFoundError{Message: fmt.Sprintf("Task with ID %q not found", id)}
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// UpdateTaskStatus sets the status of the caller's task. Any of the three
// canonical statuses may replace any other; there is no terminal state.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, id string, status domain.TaskStatus, callerID string) (domain.Task, error) {
	if !status.Valid() {
		return domain.Task{}, &ValidationError{Message: fmt.Sprintf("%q is not a valid task status", status)}
	}

	t, err := s.GetTaskByID(ctx, id, callerID)
	if err != nil {
		return domain.Task{}, err
	}

	t.Status = status
	t.UpdatedAt = s.now()

	if err := s.Store.Tasks().UpdateTask(ctx, t); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, &NotFoundError{Message: fmt.Sprintf("Task with ID %q not found", id)}
		}
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}
