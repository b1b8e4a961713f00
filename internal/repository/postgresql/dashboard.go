package postgresql

import (
	"context"
	"fmt"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/dashboard"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *database.DB) dashboard.Repository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountAbsencesByStatus(ctx context.Context, status string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM absence_requests WHERE status = $1`,
		status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count absence requests: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) CountAbsencesByAnalystOpen(ctx context.Context, analystID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM absence_requests
		WHERE analyst_id = $1 AND status IN ('pending', 'cancel_requested')
	`, analystID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open absence requests: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) CountActiveTasks(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM tasks WHERE status IN ('pending', 'in_progress')`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active tasks: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) CountOpenTasksByAssignee(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks
		WHERE assigned_to = $1 AND status IN ('pending', 'in_progress')
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open tasks for assignee: %w", err)
	}
	return count, nil
}
