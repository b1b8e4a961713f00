package attendance

import (
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/absence"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/profile"
)

// weekdayKey maps time.Weekday to the WorkDays map key.
var weekdayKey = map[time.Weekday]string{
	time.Monday:    "mon",
	time.Tuesday:   "tue",
	time.Wednesday: "wed",
	time.Thursday:  "thu",
	time.Friday:    "fri",
	time.Saturday:  "sat",
	time.Sunday:    "sun",
}

// IsOnline decides whether the analyst is actively on shift at the given
// instant. approvedAbsences must already be filtered to approved status;
// entries for other analysts are ignored.
//
// Lunch and break windows do not clear the online flag. A shift whose end
// precedes its start yields an empty window and therefore always false;
// overnight shifts are not supported.
func IsOnline(p profile.Profile, approvedAbsences []absence.AbsenceRequest, now time.Time) bool {
	day, ok := p.WorkDays[weekdayKey[now.Weekday()]]
	if !ok || !day.Active {
		return false
	}

	for _, req := range approvedAbsences {
		if req.AnalystID != p.UserID {
			continue
		}
		if req.Status == absence.StatusApproved && req.CoversDate(now) {
			return false
		}
	}

	// "HH:MM" zero-padded strings order lexicographically as times, so plain
	// string comparison suffices. Both bounds inclusive.
	start, end := p.ShiftWindow()
	clock := now.Format("15:04")
	return clock >= start && clock <= end
}

// TodaySchedule returns the WorkDays entry for now's weekday.
func TodaySchedule(p profile.Profile, now time.Time) (profile.WorkDay, bool) {
	day, ok := p.WorkDays[weekdayKey[now.Weekday()]]
	return day, ok
}
