package service

import (
	"context"
	"errors"
)

// Service defines the interface for task backend operations.
// Every call is exactly one round trip; implementations never retry or cache.
type Service interface {
	// ListTasks returns all tasks in server order (no client-side sorting).
	ListTasks(ctx context.Context) ([]Task, error)

	// Statistics returns the server-computed task counts.
	Statistics(ctx context.Context) (Statistics, error)

	// CreateTask creates a task and returns the stored record.
	CreateTask(ctx context.Context, t NewTask) (Task, error)

	// ToggleTask flips the completion flag and returns the updated record.
	ToggleTask(ctx context.Context, id ID) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id ID) error
}

// Detail returns the server-supplied message carried by err, if any.
// Errors opt in by implementing Detail() string.
func Detail(err error) string {
	var d interface{ Detail() string }
	if errors.As(err, &d) {
		return d.Detail()
	}
	return ""
}
