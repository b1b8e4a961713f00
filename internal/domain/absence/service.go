package absence

import (
	"context"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
)

// AbsenceService is the lifecycle engine. Every operation takes the acting
// user explicitly and re-checks the current status at the point of commit.
type AbsenceService interface {
	CreateRequest(ctx context.Context, actor user.Actor, req CreateAbsenceRequest) (AbsenceResponse, error)
	// Cancel withdraws the analyst's own still-pending request.
	Cancel(ctx context.Context, actor user.Actor, requestID string) (AbsenceResponse, error)
	// RequestCancellation asks the lead to undo an already-approved absence.
	RequestCancellation(ctx context.Context, actor user.Actor, req RequestCancellationRequest) (AbsenceResponse, error)
	Approve(ctx context.Context, actor user.Actor, req ApproveAbsenceRequest) (AbsenceResponse, error)
	Reject(ctx context.Context, actor user.Actor, req RejectAbsenceRequest) (AbsenceResponse, error)
	ApproveCancellation(ctx context.Context, actor user.Actor, requestID string) (AbsenceResponse, error)
	RejectCancellation(ctx context.Context, actor user.Actor, requestID string) (AbsenceResponse, error)
	// Delete dismisses a processed request from the analyst's own history.
	Delete(ctx context.Context, actor user.Actor, requestID string) error

	ListMyRequests(ctx context.Context, actor user.Actor) ([]AbsenceResponse, error)
	ListRequests(ctx context.Context, actor user.Actor, filter AbsenceFilter) ([]AbsenceResponse, error)
	Calendar(ctx context.Context, from, to string) ([]AbsenceResponse, error)
}
