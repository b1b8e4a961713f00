package task

import (
	"context"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
)

type TaskService interface {
	CreateTask(ctx context.Context, actor user.Actor, req CreateTaskRequest) (TaskResponse, error)
	StartTask(ctx context.Context, actor user.Actor, taskID string) (TaskResponse, error)
	CompleteTask(ctx context.Context, actor user.Actor, taskID string) (TaskResponse, error)
	DeleteTask(ctx context.Context, actor user.Actor, taskID string) error

	ListMyTasks(ctx context.Context, actor user.Actor) ([]TaskResponse, error)
	ListTasks(ctx context.Context, actor user.Actor, filter TaskFilter) ([]TaskResponse, error)
}
