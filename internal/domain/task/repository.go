package task

import (
	"context"
	"time"
)

// TaskRepository - interface for the tasks table
type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	ListByAssignee(ctx context.Context, userID string) ([]Task, error)
	List(ctx context.Context, filter TaskFilter) ([]Task, error)
	// TransitionStatus is guarded by WHERE status = from, mirroring the
	// absence lifecycle's atomicity primitive.
	TransitionStatus(ctx context.Context, id string, from, to TaskStatus, completedAt *time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteByAssignee(ctx context.Context, userID string) error
}
