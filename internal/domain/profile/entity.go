package profile

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
)

// WorkMode is where the analyst works on a given day.
type WorkMode string

const (
	ModeOffice WorkMode = "office"
	ModeHome   WorkMode = "home"
)

// WorkDay is one entry of the weekly schedule map.
type WorkDay struct {
	Active bool     `json:"active"`
	Mode   WorkMode `json:"mode"`
}

// WorkDays maps weekday abbreviations (mon..sun) to the day's schedule.
// Stored as JSONB.
type WorkDays map[string]WorkDay

// WeekdayKeys in display order.
var WeekdayKeys = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// Value implements driver.Valuer for database storage
func (w WorkDays) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

// Scan implements sql.Scanner for database retrieval
func (w *WorkDays) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan WorkDays: invalid type")
	}

	return json.Unmarshal(bytes, w)
}

// DefaultWorkDays is the schedule a profile starts with: weekdays in the
// office, weekend off.
func DefaultWorkDays() WorkDays {
	days := make(WorkDays, len(WeekdayKeys))
	for _, key := range WeekdayKeys {
		active := key != "sat" && key != "sun"
		days[key] = WorkDay{Active: active, Mode: ModeOffice}
	}
	return days
}

// Default shift window and pause times applied when a profile is created or
// a field is left unset.
const (
	DefaultStartTime   = "09:00"
	DefaultEndTime     = "18:00"
	DefaultLunchStart  = "12:00"
	DefaultLunchEnd    = "13:00"
	DefaultBreak1Start = "10:00"
	DefaultBreak1End   = "10:15"
	DefaultBreak2Start = "15:00"
	DefaultBreak2End   = "15:15"
)

// Profile entity. Exactly one per user; self-service fields are written by
// the owner, schedule fields by a lead.
type Profile struct {
	ID        string
	UserID    string
	Name      string
	Role      user.Role
	AvatarURL *string
	Area      *string

	StartTime   string
	EndTime     string
	LunchStart  *string
	LunchEnd    *string
	Break1Start *string
	Break1End   *string
	Break2Start *string
	Break2End   *string

	WorkDays WorkDays

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftWindow returns the profile's shift bounds, falling back to the
// defaults when unset.
func (p Profile) ShiftWindow() (start, end string) {
	start, end = p.StartTime, p.EndTime
	if start == "" {
		start = DefaultStartTime
	}
	if end == "" {
		end = DefaultEndTime
	}
	return start, end
}
