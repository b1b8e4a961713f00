package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/absence"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/attendance"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/profile"
)

type AttendanceServiceImpl struct {
	profile.ProfileRepository
	absence.AbsenceRequestRepository
	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func NewAttendanceService(
	profileRepo profile.ProfileRepository,
	absenceRepo absence.AbsenceRequestRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		ProfileRepository:        profileRepo,
		AbsenceRequestRepository: absenceRepo,
		now:                      time.Now,
	}
}

// TeamStatus implements attendance.AttendanceService. One pass over the
// analyst profiles against today's approved absences.
func (s *AttendanceServiceImpl) TeamStatus(ctx context.Context) (attendance.TeamStatusResponse, error) {
	now := s.now()

	profiles, err := s.ProfileRepository.ListAnalysts(ctx)
	if err != nil {
		return attendance.TeamStatusResponse{}, fmt.Errorf("failed to list analysts: %w", err)
	}

	approvedToday, err := s.AbsenceRequestRepository.ListApprovedForDate(ctx, now)
	if err != nil {
		return attendance.TeamStatusResponse{}, fmt.Errorf("failed to list approved absences: %w", err)
	}

	absentByAnalyst := make(map[string]bool, len(approvedToday))
	for _, req := range approvedToday {
		if req.CoversDate(now) {
			absentByAnalyst[req.AnalystID] = true
		}
	}

	analysts := make([]attendance.AnalystStatus, 0, len(profiles))
	onlineCount := 0

	for _, p := range profiles {
		start, end := p.ShiftWindow()
		status := attendance.AnalystStatus{
			UserID:    p.UserID,
			Name:      p.Name,
			AvatarURL: p.AvatarURL,
			Area:      p.Area,
			Absent:    absentByAnalyst[p.UserID],
			StartTime: start,
			EndTime:   end,
		}

		if day, ok := attendance.TodaySchedule(p, now); ok && day.Active {
			status.ScheduledToday = true
			mode := string(day.Mode)
			status.Mode = &mode
		}

		status.Online = attendance.IsOnline(p, approvedToday, now)
		if status.Online {
			onlineCount++
		}

		analysts = append(analysts, status)
	}

	return attendance.TeamStatusResponse{
		Analysts:    analysts,
		OnlineCount: onlineCount,
		ComputedAt:  now,
	}, nil
}
