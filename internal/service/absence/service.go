package absence

import (
	"context"
	"fmt"
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/absence"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/notification"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/validator"
)

type AbsenceServiceImpl struct {
	absence.AbsenceRequestRepository
	user.UserRepository
	notificationService notification.Service
}

func NewAbsenceService(
	absenceRepo absence.AbsenceRequestRepository,
	userRepo user.UserRepository,
	notificationService notification.Service,
) absence.AbsenceService {
	return &AbsenceServiceImpl{
		AbsenceRequestRepository: absenceRepo,
		UserRepository:           userRepo,
		notificationService:      notificationService,
	}
}

// CreateRequest implements absence.AbsenceService.
func (s *AbsenceServiceImpl) CreateRequest(ctx context.Context, actor user.Actor, req absence.CreateAbsenceRequest) (absence.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	request := absence.AbsenceRequest{
		AnalystID: actor.UserID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    absence.StatusPending,
	}

	created, err := s.AbsenceRequestRepository.Create(ctx, request)
	if err != nil {
		return absence.AbsenceResponse{}, fmt.Errorf("failed to create absence request: %w", err)
	}

	s.notifyLeads(ctx, actor.UserID, notification.CreateNotificationRequest{
		Type:    notification.TypeAbsenceRequested,
		Title:   "New absence request",
		Message: fmt.Sprintf("An absence request for %s to %s is waiting for review", req.StartDate, req.EndDate),
		Data:    map[string]interface{}{"request_id": created.ID},
	})

	return absence.ToResponse(created), nil
}

// Cancel implements absence.AbsenceService. The analyst withdraws their own
// request before a lead has processed it.
func (s *AbsenceServiceImpl) Cancel(ctx context.Context, actor user.Actor, requestID string) (absence.AbsenceResponse, error) {
	request, err := s.AbsenceRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	if request.AnalystID != actor.UserID {
		return absence.AbsenceResponse{}, absence.ErrNotRequestOwner
	}
	if request.Status != absence.StatusPending {
		return absence.AbsenceResponse{}, absence.ErrInvalidTransition
	}

	now := time.Now()
	err = s.AbsenceRequestRepository.TransitionStatus(ctx, requestID,
		absence.StatusPending, absence.StatusCancelled,
		absence.StatusUpdate{CancelledAt: &now},
	)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	return s.refetch(ctx, requestID)
}

// RequestCancellation implements absence.AbsenceService. An approved absence
// cannot be withdrawn unilaterally; the analyst asks the lead to undo it.
func (s *AbsenceServiceImpl) RequestCancellation(ctx context.Context, actor user.Actor, req absence.RequestCancellationRequest) (absence.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}

	request, err := s.AbsenceRequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	if request.AnalystID != actor.UserID {
		return absence.AbsenceResponse{}, absence.ErrNotRequestOwner
	}
	if request.Status != absence.StatusApproved {
		return absence.AbsenceResponse{}, absence.ErrInvalidTransition
	}

	err = s.AbsenceRequestRepository.TransitionStatus(ctx, req.RequestID,
		absence.StatusApproved, absence.StatusCancelRequested,
		absence.StatusUpdate{CancelReason: &req.Reason},
	)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	s.notifyLeads(ctx, actor.UserID, notification.CreateNotificationRequest{
		Type:    notification.TypeAbsenceCancelRequested,
		Title:   "Cancellation requested",
		Message: "An approved absence has a pending cancellation request",
		Data:    map[string]interface{}{"request_id": req.RequestID},
	})

	return s.refetch(ctx, req.RequestID)
}

// Approve implements absence.AbsenceService.
func (s *AbsenceServiceImpl) Approve(ctx context.Context, actor user.Actor, req absence.ApproveAbsenceRequest) (absence.AbsenceResponse, error) {
	if !actor.CanApprove() {
		return absence.AbsenceResponse{}, user.ErrLeadAccessRequired
	}

	request, err := s.AbsenceRequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	if request.Status != absence.StatusPending {
		return absence.AbsenceResponse{}, absence.ErrInvalidTransition
	}

	update := absence.StatusUpdate{ApprovedBy: &actor.UserID}
	if !validator.IsEmpty(req.Comment) {
		update.LeadComment = &req.Comment
	}

	err = s.AbsenceRequestRepository.TransitionStatus(ctx, req.RequestID,
		absence.StatusPending, absence.StatusApproved, update,
	)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	s.notifyAnalyst(request.AnalystID, actor.UserID, notification.CreateNotificationRequest{
		Type:    notification.TypeAbsenceApproved,
		Title:   "Absence approved",
		Message: "Your absence request has been approved",
		Data:    map[string]interface{}{"request_id": req.RequestID},
	})

	return s.refetch(ctx, req.RequestID)
}

// Reject implements absence.AbsenceService. The comment is mandatory so the
// analyst always learns why.
func (s *AbsenceServiceImpl) Reject(ctx context.Context, actor user.Actor, req absence.RejectAbsenceRequest) (absence.AbsenceResponse, error) {
	if !actor.CanApprove() {
		return absence.AbsenceResponse{}, user.ErrLeadAccessRequired
	}

	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}

	request, err := s.AbsenceRequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	if request.Status != absence.StatusPending {
		return absence.AbsenceResponse{}, absence.ErrInvalidTransition
	}

	err = s.AbsenceRequestRepository.TransitionStatus(ctx, req.RequestID,
		absence.StatusPending, absence.StatusRejected,
		absence.StatusUpdate{LeadComment: &req.Comment},
	)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	s.notifyAnalyst(request.AnalystID, actor.UserID, notification.CreateNotificationRequest{
		Type:    notification.TypeAbsenceRejected,
		Title:   "Absence rejected",
		Message: fmt.Sprintf("Your absence request was rejected: %s", req.Comment),
		Data:    map[string]interface{}{"request_id": req.RequestID},
	})

	return s.refetch(ctx, req.RequestID)
}

// ApproveCancellation implements absence.AbsenceService.
func (s *AbsenceServiceImpl) ApproveCancellation(ctx context.Context, actor user.Actor, requestID string) (absence.AbsenceResponse, error) {
	if !actor.CanApprove() {
		return absence.AbsenceResponse{}, user.ErrLeadAccessRequired
	}

	request, err := s.AbsenceRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	if request.Status != absence.StatusCancelRequested {
		return absence.AbsenceResponse{}, absence.ErrInvalidTransition
	}

	now := time.Now()
	err = s.AbsenceRequestRepository.TransitionStatus(ctx, requestID,
		absence.StatusCancelRequested, absence.StatusCancelled,
		absence.StatusUpdate{CancelledAt: &now},
	)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	s.notifyAnalyst(request.AnalystID, actor.UserID, notification.CreateNotificationRequest{
		Type:    notification.TypeAbsenceCancellationApproved,
		Title:   "Cancellation approved",
		Message: "Your absence has been cancelled as requested",
		Data:    map[string]interface{}{"request_id": requestID},
	})

	return s.refetch(ctx, requestID)
}

// RejectCancellation implements absence.AbsenceService. The request reverts
// to approved; the stored cancel_reason is cleared and the original
// lead_comment from the approval stays untouched.
func (s *AbsenceServiceImpl) RejectCancellation(ctx context.Context, actor user.Actor, requestID string) (absence.AbsenceResponse, error) {
	if !actor.CanApprove() {
		return absence.AbsenceResponse{}, user.ErrLeadAccessRequired
	}

	request, err := s.AbsenceRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	if request.Status != absence.StatusCancelRequested {
		return absence.AbsenceResponse{}, absence.ErrInvalidTransition
	}

	err = s.AbsenceRequestRepository.TransitionStatus(ctx, requestID,
		absence.StatusCancelRequested, absence.StatusApproved,
		absence.StatusUpdate{ClearCancelReason: true},
	)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	s.notifyAnalyst(request.AnalystID, actor.UserID, notification.CreateNotificationRequest{
		Type:    notification.TypeAbsenceCancellationRejected,
		Title:   "Cancellation rejected",
		Message: "Your cancellation request was declined; the absence remains approved",
		Data:    map[string]interface{}{"request_id": requestID},
	})

	return s.refetch(ctx, requestID)
}

// Delete implements absence.AbsenceService. Dismissal, not business undo:
// only the owner may remove a request, and only once it has been processed.
func (s *AbsenceServiceImpl) Delete(ctx context.Context, actor user.Actor, requestID string) error {
	request, err := s.AbsenceRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if request.AnalystID != actor.UserID {
		return absence.ErrNotRequestOwner
	}
	if !request.Status.Processed() {
		return absence.ErrNotDismissable
	}

	return s.AbsenceRequestRepository.Delete(ctx, requestID)
}

// ListMyRequests implements absence.AbsenceService.
func (s *AbsenceServiceImpl) ListMyRequests(ctx context.Context, actor user.Actor) ([]absence.AbsenceResponse, error) {
	requests, err := s.AbsenceRequestRepository.ListByAnalyst(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence requests: %w", err)
	}
	return absence.ToResponses(requests), nil
}

// ListRequests implements absence.AbsenceService. Lead-side listing across
// all analysts.
func (s *AbsenceServiceImpl) ListRequests(ctx context.Context, actor user.Actor, filter absence.AbsenceFilter) ([]absence.AbsenceResponse, error) {
	if !actor.IsLead() {
		return nil, user.ErrLeadAccessRequired
	}

	requests, err := s.AbsenceRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence requests: %w", err)
	}
	return absence.ToResponses(requests), nil
}

// Calendar implements absence.AbsenceService. Approved absences overlapping
// the window, visible to the whole team.
func (s *AbsenceServiceImpl) Calendar(ctx context.Context, from, to string) ([]absence.AbsenceResponse, error) {
	var errs validator.ValidationErrors

	fromDate, ok := validator.IsValidDate(from)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be a valid date in YYYY-MM-DD format"})
	}
	toDate, ok := validator.IsValidDate(to)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be a valid date in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	requests, err := s.AbsenceRequestRepository.ListApprovedBetween(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved absences: %w", err)
	}
	return absence.ToResponses(requests), nil
}

func (s *AbsenceServiceImpl) refetch(ctx context.Context, requestID string) (absence.AbsenceResponse, error) {
	updated, err := s.AbsenceRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	return absence.ToResponse(updated), nil
}

func (s *AbsenceServiceImpl) notifyLeads(ctx context.Context, senderID string, req notification.CreateNotificationRequest) {
	leadIDs, err := s.UserRepository.ListIDsByRole(ctx, user.RoleLead, user.RoleAdmin)
	if err != nil || len(leadIDs) == 0 {
		return
	}
	req.SenderID = &senderID
	s.notificationService.NotifyMany(leadIDs, req)
}

func (s *AbsenceServiceImpl) notifyAnalyst(recipientID, senderID string, req notification.CreateNotificationRequest) {
	req.RecipientID = recipientID
	req.SenderID = &senderID
	s.notificationService.Notify(req)
}
