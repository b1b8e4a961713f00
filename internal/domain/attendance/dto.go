package attendance

import "time"

// AnalystStatus is one row of the "who is online now" view.
type AnalystStatus struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Area      *string `json:"area,omitempty"`

	Online bool `json:"online"`
	// Absent is true when an approved absence covers today, regardless of
	// the schedule.
	Absent bool `json:"absent"`

	ScheduledToday bool    `json:"scheduled_today"`
	Mode           *string `json:"mode,omitempty"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
}

// TeamStatusResponse is the full team snapshot, computed fresh per request.
type TeamStatusResponse struct {
	Analysts    []AnalystStatus `json:"analysts"`
	OnlineCount int             `json:"online_count"`
	ComputedAt  time.Time       `json:"computed_at"`
}
