package attendance

import (
	"testing"
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/absence"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/profile"
	"github.com/stretchr/testify/assert"
)

func mondayProfile() profile.Profile {
	return profile.Profile{
		UserID:    "analyst-1",
		Name:      "Test Analyst",
		StartTime: "09:00",
		EndTime:   "18:00",
		WorkDays: profile.WorkDays{
			"mon": {Active: true, Mode: profile.ModeOffice},
		},
	}
}

// 2024-03-04 is a Monday.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2024, 3, 4, hour, minute, 0, 0, time.UTC)
}

func approvedAbsence(analystID string, start, end time.Time) absence.AbsenceRequest {
	return absence.AbsenceRequest{
		AnalystID: analystID,
		StartDate: start,
		EndDate:   end,
		Status:    absence.StatusApproved,
	}
}

func TestIsOnline_WithinShift(t *testing.T) {
	online := IsOnline(mondayProfile(), nil, mondayAt(14, 0))
	assert.True(t, online)
}

func TestIsOnline_AfterShiftEnd(t *testing.T) {
	online := IsOnline(mondayProfile(), nil, mondayAt(20, 0))
	assert.False(t, online)
}

func TestIsOnline_BoundsInclusive(t *testing.T) {
	assert.True(t, IsOnline(mondayProfile(), nil, mondayAt(9, 0)))
	assert.True(t, IsOnline(mondayProfile(), nil, mondayAt(18, 0)))
	assert.False(t, IsOnline(mondayProfile(), nil, mondayAt(8, 59)))
	assert.False(t, IsOnline(mondayProfile(), nil, mondayAt(18, 1)))
}

func TestIsOnline_ApprovedAbsenceCoversToday(t *testing.T) {
	absences := []absence.AbsenceRequest{
		approvedAbsence("analyst-1",
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		),
	}

	online := IsOnline(mondayProfile(), absences, mondayAt(14, 0))
	assert.False(t, online)
}

func TestIsOnline_AbsenceForOtherAnalystIgnored(t *testing.T) {
	absences := []absence.AbsenceRequest{
		approvedAbsence("analyst-2",
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		),
	}

	online := IsOnline(mondayProfile(), absences, mondayAt(14, 0))
	assert.True(t, online)
}

func TestIsOnline_AbsenceOutsideTodayIgnored(t *testing.T) {
	absences := []absence.AbsenceRequest{
		approvedAbsence("analyst-1",
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		),
	}

	online := IsOnline(mondayProfile(), absences, mondayAt(14, 0))
	assert.True(t, online)
}

func TestIsOnline_NonApprovedAbsenceIgnored(t *testing.T) {
	pending := approvedAbsence("analyst-1",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	)
	pending.Status = absence.StatusPending

	online := IsOnline(mondayProfile(), []absence.AbsenceRequest{pending}, mondayAt(14, 0))
	assert.True(t, online)
}

func TestIsOnline_InactiveDay(t *testing.T) {
	p := mondayProfile()
	p.WorkDays["mon"] = profile.WorkDay{Active: false, Mode: profile.ModeOffice}

	online := IsOnline(p, nil, mondayAt(14, 0))
	assert.False(t, online)
}

func TestIsOnline_MissingWeekdayEntry(t *testing.T) {
	p := mondayProfile()
	// Tuesday has no entry at all.
	online := IsOnline(p, nil, time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC))
	assert.False(t, online)
}

func TestIsOnline_DefaultShiftWindowApplied(t *testing.T) {
	p := mondayProfile()
	p.StartTime = ""
	p.EndTime = ""

	assert.True(t, IsOnline(p, nil, mondayAt(14, 0)))
	assert.False(t, IsOnline(p, nil, mondayAt(20, 0)))
}

func TestIsOnline_OvernightWindowIsEmpty(t *testing.T) {
	p := mondayProfile()
	p.StartTime = "22:00"
	p.EndTime = "06:00"

	// End before start yields an empty window.
	assert.False(t, IsOnline(p, nil, mondayAt(23, 0)))
	assert.False(t, IsOnline(p, nil, mondayAt(5, 0)))
}

func TestTodaySchedule(t *testing.T) {
	day, ok := TodaySchedule(mondayProfile(), mondayAt(10, 0))
	assert.True(t, ok)
	assert.True(t, day.Active)
	assert.Equal(t, profile.ModeOffice, day.Mode)

	_, ok = TodaySchedule(mondayProfile(), time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}
