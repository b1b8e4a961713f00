package attendance

import "context"

// AttendanceService computes team presence from schedules and approved
// absences. Results are point-in-time snapshots; nothing is cached.
type AttendanceService interface {
	TeamStatus(ctx context.Context) (TeamStatusResponse, error)
}
