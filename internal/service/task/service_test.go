package task

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/notification"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/task"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaskRepo struct {
	mu     sync.Mutex
	tasks  map[string]task.Task
	nextID int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]task.Task)}
}

func (f *fakeTaskRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t.ID = fmt.Sprintf("task-%d", f.nextID)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeTaskRepo) ListByAssignee(ctx context.Context, userID string) ([]task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []task.Task
	for _, t := range f.tasks {
		if t.AssignedTo == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) List(ctx context.Context, filter task.TaskFilter) ([]task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []task.Task
	for _, t := range f.tasks {
		if filter.AssignedTo != nil && t.AssignedTo != *filter.AssignedTo {
			continue
		}
		if filter.Status != nil && string(t.Status) != *filter.Status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTaskRepo) TransitionStatus(ctx context.Context, id string, from, to task.TaskStatus, completedAt *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return task.ErrTaskNotFound
	}
	if t.Status != from {
		return task.ErrInvalidTransition
	}
	t.Status = to
	t.CompletedAt = completedAt
	t.UpdatedAt = time.Now()
	f.tasks[id] = t
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return task.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) DeleteByAssignee(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.tasks {
		if t.AssignedTo == userID {
			delete(f.tasks, id)
		}
	}
	return nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(notification.CreateNotificationRequest)                  {}
func (noopNotifier) NotifyMany([]string, notification.CreateNotificationRequest)    {}
func (noopNotifier) MarkAsRead(ctx context.Context, recipientID, id string) error   { return nil }
func (noopNotifier) Shutdown()                                                      {}
func (noopNotifier) List(ctx context.Context, recipientID string) (notification.NotificationListResponse, error) {
	return notification.NotificationListResponse{}, nil
}

var (
	taskAnalyst = user.Actor{UserID: "analyst-1", Role: user.RoleAnalyst}
	taskLead    = user.Actor{UserID: "lead-1", Role: user.RoleLead}
)

func newTaskTestService() (task.TaskService, *fakeTaskRepo) {
	repo := newFakeTaskRepo()
	return NewTaskService(repo, noopNotifier{}), repo
}

func TestCreateTask_SelfAssignByDefault(t *testing.T) {
	svc, _ := newTaskTestService()

	created, err := svc.CreateTask(context.Background(), taskAnalyst, task.CreateTaskRequest{
		Title:    "Triage ticket backlog",
		Priority: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, taskAnalyst.UserID, created.AssignedTo)
	assert.Equal(t, taskAnalyst.UserID, created.AssignedBy)
	assert.Equal(t, "pending", created.Status)
	assert.Nil(t, created.CompletedAt)
}

func TestCreateTask_AssignToOtherRequiresLead(t *testing.T) {
	svc, _ := newTaskTestService()

	_, err := svc.CreateTask(context.Background(), taskAnalyst, task.CreateTaskRequest{
		Title:      "Review change request",
		Priority:   1,
		AssignedTo: "analyst-2",
	})
	assert.ErrorIs(t, err, user.ErrLeadAccessRequired)

	created, err := svc.CreateTask(context.Background(), taskLead, task.CreateTaskRequest{
		Title:      "Review change request",
		Priority:   1,
		AssignedTo: "analyst-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "analyst-2", created.AssignedTo)
	assert.Equal(t, taskLead.UserID, created.AssignedBy)
}

func TestCreateTask_PriorityBounds(t *testing.T) {
	svc, _ := newTaskTestService()

	for _, priority := range []int{0, 6, -1} {
		_, err := svc.CreateTask(context.Background(), taskAnalyst, task.CreateTaskRequest{
			Title:    "Check monitoring alerts",
			Priority: priority,
		})
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs, "priority %d", priority)
		assert.Contains(t, errs.ToMap(), "priority")
	}
}

func TestStartTask(t *testing.T) {
	svc, _ := newTaskTestService()
	created, err := svc.CreateTask(context.Background(), taskAnalyst, task.CreateTaskRequest{
		Title:    "Patch staging hosts",
		Priority: 3,
	})
	require.NoError(t, err)

	started, err := svc.StartTask(context.Background(), taskAnalyst, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", started.Status)

	_, err = svc.StartTask(context.Background(), taskAnalyst, created.ID)
	assert.ErrorIs(t, err, task.ErrInvalidTransition)
}

func TestCompleteTask_SetsCompletedAt(t *testing.T) {
	svc, _ := newTaskTestService()
	created, err := svc.CreateTask(context.Background(), taskAnalyst, task.CreateTaskRequest{
		Title:    "Patch staging hosts",
		Priority: 3,
	})
	require.NoError(t, err)

	// Completion straight from pending, without the in_progress step.
	completed, err := svc.CompleteTask(context.Background(), taskAnalyst, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	_, err = svc.CompleteTask(context.Background(), taskAnalyst, created.ID)
	assert.ErrorIs(t, err, task.ErrTaskAlreadyCompleted)
}

func TestCompleteTask_AssigneeOnly(t *testing.T) {
	svc, _ := newTaskTestService()
	created, err := svc.CreateTask(context.Background(), taskLead, task.CreateTaskRequest{
		Title:      "Audit access logs",
		Priority:   2,
		AssignedTo: "analyst-2",
	})
	require.NoError(t, err)

	_, err = svc.CompleteTask(context.Background(), taskLead, created.ID)
	assert.ErrorIs(t, err, task.ErrNotTaskParticipant)
}

func TestDeleteTask_ParticipantsOnly(t *testing.T) {
	svc, repo := newTaskTestService()
	created, err := svc.CreateTask(context.Background(), taskAnalyst, task.CreateTaskRequest{
		Title:    "Clean up stale sessions",
		Priority: 4,
	})
	require.NoError(t, err)

	stranger := user.Actor{UserID: "analyst-9", Role: user.RoleAnalyst}
	err = svc.DeleteTask(context.Background(), stranger, created.ID)
	assert.ErrorIs(t, err, task.ErrNotTaskParticipant)

	require.NoError(t, svc.DeleteTask(context.Background(), taskAnalyst, created.ID))
	assert.Empty(t, repo.tasks)
}
