package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/task"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

const taskColumns = `
	t.id, t.title, t.description, t.assigned_to, t.assigned_by,
	t.priority, t.status, t.due_date, t.completed_at,
	t.created_at, t.updated_at
`

func scanTask(row pgx.Row, withNames bool) (task.Task, error) {
	var t task.Task
	dest := []interface{}{
		&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.AssignedBy,
		&t.Priority, &t.Status, &t.DueDate, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt,
	}
	if withNames {
		dest = append(dest, &t.AssignedToName, &t.AssignedByName)
	}
	err := row.Scan(dest...)
	return t, err
}

func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (
			id, title, description, assigned_to, assigned_by,
			priority, status, due_date,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6, $7,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.Title, t.Description, t.AssignedTo, t.AssignedBy,
		t.Priority, t.Status, t.DueDate,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return t, nil
}

func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + taskColumns + `,
			pa.name AS assigned_to_name,
			pb.name AS assigned_by_name
		FROM tasks t
		JOIN profiles pa ON t.assigned_to = pa.user_id
		JOIN profiles pb ON t.assigned_by = pb.user_id
		WHERE t.id = $1
	`

	t, err := scanTask(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}

	return t, nil
}

func (r *taskRepositoryImpl) ListByAssignee(ctx context.Context, userID string) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		WHERE t.assigned_to = $1
		ORDER BY t.priority, t.created_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows, false)
}

func (r *taskRepositoryImpl) List(ctx context.Context, filter task.TaskFilter) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	if filter.AssignedTo != nil && *filter.AssignedTo != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("t.assigned_to = $%d", argIdx))
		args = append(args, *filter.AssignedTo)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("t.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `
		SELECT ` + taskColumns + `,
			pa.name AS assigned_to_name,
			pb.name AS assigned_by_name
		FROM tasks t
		JOIN profiles pa ON t.assigned_to = pa.user_id
		JOIN profiles pb ON t.assigned_by = pb.user_id
	`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY t.priority, t.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows, true)
}

// TransitionStatus mirrors the absence lifecycle's guarded update so a task
// can't be completed twice and completed_at is written exactly once.
func (r *taskRepositoryImpl) TransitionStatus(ctx context.Context, id string, from, to task.TaskStatus, completedAt *time.Time) error {
	q := GetQuerier(ctx, r.db)

	var commandTag, err = q.Exec(ctx, `
		UPDATE tasks
		SET status = $1, completed_at = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`, to, completedAt, id, from)
	if err != nil {
		return fmt.Errorf("failed to transition task %s: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check task %s: %w", id, err)
		}
		if !exists {
			return task.ErrTaskNotFound
		}
		return task.ErrInvalidTransition
	}

	return nil
}

func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepositoryImpl) DeleteByAssignee(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM tasks WHERE assigned_to = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete tasks for user %s: %w", userID, err)
	}
	return nil
}

func collectTasks(rows pgx.Rows, withNames bool) ([]task.Task, error) {
	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows, withNames)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return tasks, nil
}
