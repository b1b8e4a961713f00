package dashboard

import "context"

// Repository - aggregate counts used by the dashboards
type Repository interface {
	CountAbsencesByStatus(ctx context.Context, status string) (int64, error)
	CountAbsencesByAnalystOpen(ctx context.Context, analystID string) (int64, error)
	CountActiveTasks(ctx context.Context) (int64, error)
	CountOpenTasksByAssignee(ctx context.Context, userID string) (int64, error)
}
