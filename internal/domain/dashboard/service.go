package dashboard

import (
	"context"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
)

type Service interface {
	LeadDashboard(ctx context.Context, actor user.Actor) (LeadDashboardResponse, error)
	AnalystDashboard(ctx context.Context, actor user.Actor) (AnalystDashboardResponse, error)
}
