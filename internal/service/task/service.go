package task

import (
	"context"
	"fmt"
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/notification"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/task"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/validator"
)

type TaskServiceImpl struct {
	task.TaskRepository
	notificationService notification.Service
}

func NewTaskService(taskRepo task.TaskRepository, notificationService notification.Service) task.TaskService {
	return &TaskServiceImpl{
		TaskRepository:      taskRepo,
		notificationService: notificationService,
	}
}

// CreateTask implements task.TaskService. Analysts self-assign; assigning to
// someone else takes a lead.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, actor user.Actor, req task.CreateTaskRequest) (task.TaskResponse, error) {
	req.AssignedBy = actor.UserID
	if req.AssignedTo == "" {
		req.AssignedTo = actor.UserID
	}

	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	if req.AssignedTo != actor.UserID && !actor.IsLead() {
		return task.TaskResponse{}, user.ErrLeadAccessRequired
	}

	t := task.Task{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  req.AssignedBy,
		Priority:    req.Priority,
		Status:      task.StatusPending,
	}
	if req.DueDate != nil {
		due, _ := validator.IsValidDate(*req.DueDate)
		t.DueDate = &due
	}

	created, err := s.TaskRepository.Create(ctx, t)
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to create task: %w", err)
	}

	if created.AssignedTo != created.AssignedBy {
		s.notificationService.Notify(notification.CreateNotificationRequest{
			RecipientID: created.AssignedTo,
			SenderID:    &actor.UserID,
			Type:        notification.TypeTaskAssigned,
			Title:       "New task assigned",
			Message:     fmt.Sprintf("You have been assigned: %s", created.Title),
			Data:        map[string]interface{}{"task_id": created.ID},
		})
	}

	return task.ToResponse(created), nil
}

// StartTask implements task.TaskService.
func (s *TaskServiceImpl) StartTask(ctx context.Context, actor user.Actor, taskID string) (task.TaskResponse, error) {
	t, err := s.TaskRepository.GetByID(ctx, taskID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if t.AssignedTo != actor.UserID {
		return task.TaskResponse{}, task.ErrNotTaskParticipant
	}
	if t.Status != task.StatusPending {
		return task.TaskResponse{}, task.ErrInvalidTransition
	}

	err = s.TaskRepository.TransitionStatus(ctx, taskID, task.StatusPending, task.StatusInProgress, nil)
	if err != nil {
		return task.TaskResponse{}, err
	}

	return s.refetch(ctx, taskID)
}

// CompleteTask implements task.TaskService. Works from pending as well,
// since analysts often close a task without ever marking it in progress.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, actor user.Actor, taskID string) (task.TaskResponse, error) {
	t, err := s.TaskRepository.GetByID(ctx, taskID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if t.AssignedTo != actor.UserID {
		return task.TaskResponse{}, task.ErrNotTaskParticipant
	}
	if t.Status == task.StatusCompleted {
		return task.TaskResponse{}, task.ErrTaskAlreadyCompleted
	}

	now := time.Now()
	err = s.TaskRepository.TransitionStatus(ctx, taskID, t.Status, task.StatusCompleted, &now)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if t.AssignedBy != t.AssignedTo {
		s.notificationService.Notify(notification.CreateNotificationRequest{
			RecipientID: t.AssignedBy,
			SenderID:    &actor.UserID,
			Type:        notification.TypeTaskCompleted,
			Title:       "Task completed",
			Message:     fmt.Sprintf("Task completed: %s", t.Title),
			Data:        map[string]interface{}{"task_id": taskID},
		})
	}

	return s.refetch(ctx, taskID)
}

// DeleteTask implements task.TaskService. Either side of the assignment may
// remove the task.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, actor user.Actor, taskID string) error {
	t, err := s.TaskRepository.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if t.AssignedTo != actor.UserID && t.AssignedBy != actor.UserID && !actor.IsLead() {
		return task.ErrNotTaskParticipant
	}

	return s.TaskRepository.Delete(ctx, taskID)
}

// ListMyTasks implements task.TaskService.
func (s *TaskServiceImpl) ListMyTasks(ctx context.Context, actor user.Actor) ([]task.TaskResponse, error) {
	tasks, err := s.TaskRepository.ListByAssignee(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return task.ToResponses(tasks), nil
}

// ListTasks implements task.TaskService. Lead-side listing across the team.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, actor user.Actor, filter task.TaskFilter) ([]task.TaskResponse, error) {
	if !actor.IsLead() {
		return nil, user.ErrLeadAccessRequired
	}

	tasks, err := s.TaskRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return task.ToResponses(tasks), nil
}

func (s *TaskServiceImpl) refetch(ctx context.Context, taskID string) (task.TaskResponse, error) {
	updated, err := s.TaskRepository.GetByID(ctx, taskID)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.ToResponse(updated), nil
}
