package absence

import "time"

// AbsenceStatus is the closed set of lifecycle states for an absence
// request. "cancel_requested"/"cancelled" is the canonical vocabulary; there
// is no separate approved flag, status alone carries the state.
type AbsenceStatus string

const (
	StatusPending         AbsenceStatus = "pending"
	StatusApproved        AbsenceStatus = "approved"
	StatusRejected        AbsenceStatus = "rejected"
	StatusCancelRequested AbsenceStatus = "cancel_requested"
	StatusCancelled       AbsenceStatus = "cancelled"
)

// ValidStatus reports whether the string names a known lifecycle state.
func ValidStatus(s string) bool {
	switch AbsenceStatus(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelRequested, StatusCancelled:
		return true
	}
	return false
}

// Processed reports whether the request has left the analyst's hands, which
// is when the owner may dismiss (delete) it.
func (s AbsenceStatus) Processed() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	case StatusPending, StatusCancelRequested:
		return false
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s AbsenceStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// AbsenceRequest entity. Dates are inclusive calendar days; StartDate is
// never after EndDate. Status-mutating fields are written only by the
// lifecycle service.
type AbsenceRequest struct {
	ID        string
	AnalystID string

	StartDate time.Time
	EndDate   time.Time
	Reason    string

	Status       AbsenceStatus
	LeadComment  *string
	CancelReason *string
	ApprovedBy   *string
	CancelledAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join field (for responses)
	AnalystName *string
}

// CoversDate reports whether the inclusive [StartDate, EndDate] interval
// contains the calendar date of t.
func (r AbsenceRequest) CoversDate(t time.Time) bool {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())

	sy, sm, sd := r.StartDate.Date()
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, t.Location())

	ey, em, ed := r.EndDate.Date()
	end := time.Date(ey, em, ed, 0, 0, 0, 0, t.Location())

	return !day.Before(start) && !day.After(end)
}
