package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/absence"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/attendance"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/dashboard"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/profile"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
)

type DashboardServiceImpl struct {
	dashboard.Repository
	profileRepo       profile.ProfileRepository
	attendanceService attendance.AttendanceService
}

func NewDashboardService(
	repo dashboard.Repository,
	profileRepo profile.ProfileRepository,
	attendanceService attendance.AttendanceService,
) dashboard.Service {
	return &DashboardServiceImpl{
		Repository:        repo,
		profileRepo:       profileRepo,
		attendanceService: attendanceService,
	}
}

// LeadDashboard implements dashboard.Service.
func (s *DashboardServiceImpl) LeadDashboard(ctx context.Context, actor user.Actor) (dashboard.LeadDashboardResponse, error) {
	if !actor.IsLead() {
		return dashboard.LeadDashboardResponse{}, user.ErrLeadAccessRequired
	}

	pending, err := s.Repository.CountAbsencesByStatus(ctx, string(absence.StatusPending))
	if err != nil {
		return dashboard.LeadDashboardResponse{}, fmt.Errorf("failed to count pending requests: %w", err)
	}

	cancellations, err := s.Repository.CountAbsencesByStatus(ctx, string(absence.StatusCancelRequested))
	if err != nil {
		return dashboard.LeadDashboardResponse{}, fmt.Errorf("failed to count cancellation requests: %w", err)
	}

	activeTasks, err := s.Repository.CountActiveTasks(ctx)
	if err != nil {
		return dashboard.LeadDashboardResponse{}, fmt.Errorf("failed to count active tasks: %w", err)
	}

	team, err := s.attendanceService.TeamStatus(ctx)
	if err != nil {
		return dashboard.LeadDashboardResponse{}, err
	}

	return dashboard.LeadDashboardResponse{
		PendingRequests:      pending,
		CancellationRequests: cancellations,
		ActiveTasks:          activeTasks,
		AnalystsOnline:       team.OnlineCount,
		TotalAnalysts:        len(team.Analysts),
	}, nil
}

// AnalystDashboard implements dashboard.Service.
func (s *DashboardServiceImpl) AnalystDashboard(ctx context.Context, actor user.Actor) (dashboard.AnalystDashboardResponse, error) {
	openRequests, err := s.Repository.CountAbsencesByAnalystOpen(ctx, actor.UserID)
	if err != nil {
		return dashboard.AnalystDashboardResponse{}, fmt.Errorf("failed to count open requests: %w", err)
	}

	openTasks, err := s.Repository.CountOpenTasksByAssignee(ctx, actor.UserID)
	if err != nil {
		return dashboard.AnalystDashboardResponse{}, fmt.Errorf("failed to count open tasks: %w", err)
	}

	response := dashboard.AnalystDashboardResponse{
		OpenRequests: openRequests,
		OpenTasks:    openTasks,
	}

	p, err := s.profileRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return dashboard.AnalystDashboardResponse{}, err
	}

	if day, ok := attendance.TodaySchedule(p, time.Now()); ok && day.Active {
		start, end := p.ShiftWindow()
		response.TodaySchedule = &dashboard.TodaySummary{
			Mode:      string(day.Mode),
			StartTime: start,
			EndTime:   end,
		}
	}

	return response, nil
}
