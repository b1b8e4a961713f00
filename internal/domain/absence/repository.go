package absence

import (
	"context"
	"time"
)

// StatusUpdate carries the fields written together with a guarded status
// change. Nil pointers leave the column untouched; the Clear flags null it.
type StatusUpdate struct {
	LeadComment       *string
	CancelReason      *string
	ClearCancelReason bool
	ApprovedBy        *string
	CancelledAt       *time.Time
}

// AbsenceRequestRepository - interface for the absence_requests table
type AbsenceRequestRepository interface {
	Create(ctx context.Context, request AbsenceRequest) (AbsenceRequest, error)
	GetByID(ctx context.Context, id string) (AbsenceRequest, error)
	ListByAnalyst(ctx context.Context, analystID string) ([]AbsenceRequest, error)
	List(ctx context.Context, filter AbsenceFilter) ([]AbsenceRequest, error)
	// ListApprovedForDate returns approved requests whose inclusive date
	// interval contains the given calendar date.
	ListApprovedForDate(ctx context.Context, date time.Time) ([]AbsenceRequest, error)
	// ListApprovedBetween returns approved requests overlapping [from, to],
	// for the team calendar.
	ListApprovedBetween(ctx context.Context, from, to time.Time) ([]AbsenceRequest, error)
	// TransitionStatus performs the guarded status change: the UPDATE carries
	// a WHERE status = from predicate so concurrent transitions on the same
	// row cannot both succeed. Zero rows affected yields
	// ErrAbsenceRequestNotFound if the row is gone, ErrInvalidTransition if
	// the status no longer matches.
	TransitionStatus(ctx context.Context, id string, from, to AbsenceStatus, update StatusUpdate) error
	Delete(ctx context.Context, id string) error
	DeleteByAnalyst(ctx context.Context, analystID string) error
}
