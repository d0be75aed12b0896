package storage

import (
	"context"

	"github.com/avolkov/taskly/internal/models"
)

// TaskStorage defines interface for task persistence. Every lookup and
// mutation is keyed jointly on (task id, owner id): a task owned by
// another user behaves exactly like a missing task.
type TaskStorage interface {
	// CreateTask persists a new task
	CreateTask(ctx context.Context, task *models.Task) error

	// GetTask retrieves a task by id, scoped to the owner
	// Returns ErrTaskNotFound if absent or owned by someone else
	GetTask(ctx context.Context, userID, taskID string) (*models.Task, error)

	// ListTasks retrieves all tasks owned by the user
	// Returns an empty slice if the user owns no tasks
	ListTasks(ctx context.Context, userID string) ([]*models.Task, error)

	// UpdateTask overwrites the mutable fields of an existing task,
	// scoped to the owner held in task.UserID
	// Returns ErrTaskNotFound if absent or owned by someone else
	UpdateTask(ctx context.Context, task *models.Task) error

	// DeleteTask permanently removes a task, scoped to the owner
	// Returns ErrTaskNotFound if absent or owned by someone else
	DeleteTask(ctx context.Context, userID, taskID string) error
}
