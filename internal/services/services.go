package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskmanager/task-api/internal/dto"
)

// ErrDuplicateTask carries the exact wire message for the 409 body.
var ErrDuplicateTask = errors.New("You already have an active task with this title!")

// NotFoundError is returned when no task has the requested id.
type NotFoundError struct {
	ID int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("Task with ID %d not found", e.ID)
}

// ValidationError aggregates per-field violations of the request
// constraints.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	return "Validation failed for one or more fields"
}

type TaskService interface {
	// ListTasks returns every task in storage order. An empty store
	// yields an empty slice, never nil.
	ListTasks(ctx context.Context) ([]dto.TaskResponse, error)

	// GetTaskByID returns NotFoundError if no task has the given id.
	GetTaskByID(ctx context.Context, id int64) (*dto.TaskResponse, error)

	// CreateTask sanitizes the request, rejects a duplicate active
	// title with ErrDuplicateTask, persists the task and returns it
	// with its assigned id.
	CreateTask(ctx context.Context, req dto.TaskRequest) (*dto.TaskResponse, error)

	// UpdateTask sanitizes the request and replaces the title,
	// description and completed fields of the stored task wholesale.
	// The id never changes. It returns NotFoundError if no task has
	// the given id.
	UpdateTask(ctx context.Context, id int64, req dto.TaskRequest) (*dto.TaskResponse, error)

	// DeleteTask returns NotFoundError if no task has the given id.
	DeleteTask(ctx context.Context, id int64) error
}
