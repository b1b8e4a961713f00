package absence

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/absence"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/notification"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAbsenceRepo keeps requests in memory and mirrors the database's
// guarded status update semantics.
type fakeAbsenceRepo struct {
	mu       sync.Mutex
	requests map[string]absence.AbsenceRequest
	nextID   int
}

func newFakeAbsenceRepo() *fakeAbsenceRepo {
	return &fakeAbsenceRepo{requests: make(map[string]absence.AbsenceRequest)}
}

func (f *fakeAbsenceRepo) Create(ctx context.Context, r absence.AbsenceRequest) (absence.AbsenceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = fmt.Sprintf("req-%d", f.nextID)
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeAbsenceRepo) GetByID(ctx context.Context, id string) (absence.AbsenceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return absence.AbsenceRequest{}, absence.ErrAbsenceRequestNotFound
	}
	return r, nil
}

func (f *fakeAbsenceRepo) ListByAnalyst(ctx context.Context, analystID string) ([]absence.AbsenceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []absence.AbsenceRequest
	for _, r := range f.requests {
		if r.AnalystID == analystID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAbsenceRepo) List(ctx context.Context, filter absence.AbsenceFilter) ([]absence.AbsenceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []absence.AbsenceRequest
	for _, r := range f.requests {
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		if filter.AnalystID != nil && r.AnalystID != *filter.AnalystID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeAbsenceRepo) ListApprovedForDate(ctx context.Context, date time.Time) ([]absence.AbsenceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []absence.AbsenceRequest
	for _, r := range f.requests {
		if r.Status == absence.StatusApproved && r.CoversDate(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAbsenceRepo) ListApprovedBetween(ctx context.Context, from, to time.Time) ([]absence.AbsenceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []absence.AbsenceRequest
	for _, r := range f.requests {
		if r.Status == absence.StatusApproved && !r.EndDate.Before(from) && !r.StartDate.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAbsenceRepo) TransitionStatus(ctx context.Context, id string, from, to absence.AbsenceStatus, update absence.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.requests[id]
	if !ok {
		return absence.ErrAbsenceRequestNotFound
	}
	if r.Status != from {
		return absence.ErrInvalidTransition
	}

	r.Status = to
	if update.LeadComment != nil {
		r.LeadComment = update.LeadComment
	}
	if update.CancelReason != nil {
		r.CancelReason = update.CancelReason
	}
	if update.ClearCancelReason {
		r.CancelReason = nil
	}
	if update.ApprovedBy != nil {
		r.ApprovedBy = update.ApprovedBy
	}
	if update.CancelledAt != nil {
		r.CancelledAt = update.CancelledAt
	}
	r.UpdatedAt = time.Now()
	f.requests[id] = r
	return nil
}

func (f *fakeAbsenceRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.requests[id]; !ok {
		return absence.ErrAbsenceRequestNotFound
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeAbsenceRepo) DeleteByAnalyst(ctx context.Context, analystID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.requests {
		if r.AnalystID == analystID {
			delete(f.requests, id)
		}
	}
	return nil
}

type fakeUserRepo struct {
	leadIDs []string
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByOAuth(ctx context.Context, provider, providerID string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListIDsByRole(ctx context.Context, roles ...user.Role) ([]string, error) {
	return f.leadIDs, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	return nil
}

// recordingNotifier captures notification types without delivering anything.
type recordingNotifier struct {
	mu    sync.Mutex
	types []notification.NotificationType
}

func (f *recordingNotifier) Notify(req notification.CreateNotificationRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types = append(f.types, req.Type)
}

func (f *recordingNotifier) NotifyMany(recipientIDs []string, req notification.CreateNotificationRequest) {
	for range recipientIDs {
		f.Notify(req)
	}
}

func (f *recordingNotifier) List(ctx context.Context, recipientID string) (notification.NotificationListResponse, error) {
	return notification.NotificationListResponse{}, nil
}

func (f *recordingNotifier) MarkAsRead(ctx context.Context, recipientID, notificationID string) error {
	return nil
}

func (f *recordingNotifier) Shutdown() {}

var (
	analyst      = user.Actor{UserID: "analyst-1", Role: user.RoleAnalyst}
	otherAnalyst = user.Actor{UserID: "analyst-2", Role: user.RoleAnalyst}
	lead         = user.Actor{UserID: "lead-1", Role: user.RoleLead}
)

func newTestService() (absence.AbsenceService, *fakeAbsenceRepo, *recordingNotifier) {
	repo := newFakeAbsenceRepo()
	notifier := &recordingNotifier{}
	svc := NewAbsenceService(repo, &fakeUserRepo{leadIDs: []string{"lead-1"}}, notifier)
	return svc, repo, notifier
}

func createPending(t *testing.T, svc absence.AbsenceService) absence.AbsenceResponse {
	t.Helper()
	created, err := svc.CreateRequest(context.Background(), analyst, absence.CreateAbsenceRequest{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
		Reason:    "Vacation",
	})
	require.NoError(t, err)
	require.Equal(t, "pending", created.Status)
	return created
}

func TestCreateRequest_EndBeforeStart(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.CreateRequest(context.Background(), analyst, absence.CreateAbsenceRequest{
		StartDate: "2024-03-03",
		EndDate:   "2024-03-01",
		Reason:    "Vacation",
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "end_date")
	assert.Empty(t, repo.requests, "no record should be created")
}

func TestCreateRequest_MissingReason(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.CreateRequest(context.Background(), analyst, absence.CreateAbsenceRequest{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "reason")
	assert.Empty(t, repo.requests)
}

func TestCreateRequest_NotifiesLeads(t *testing.T) {
	svc, _, notifier := newTestService()

	createPending(t, svc)

	require.Len(t, notifier.types, 1)
	assert.Equal(t, notification.TypeAbsenceRequested, notifier.types[0])
}

func TestApprove_SetsApprovedByAndComment(t *testing.T) {
	svc, _, _ := newTestService()
	created := createPending(t, svc)

	approved, err := svc.Approve(context.Background(), lead, absence.ApproveAbsenceRequest{
		RequestID: created.ID,
		Comment:   "Enjoy",
	})
	require.NoError(t, err)

	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, lead.UserID, *approved.ApprovedBy)
	require.NotNil(t, approved.LeadComment)
	assert.Equal(t, "Enjoy", *approved.LeadComment)
}

func TestApprove_RequiresLead(t *testing.T) {
	svc, _, _ := newTestService()
	created := createPending(t, svc)

	_, err := svc.Approve(context.Background(), analyst, absence.ApproveAbsenceRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, user.ErrLeadAccessRequired)
}

func TestApprove_NotIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	created := createPending(t, svc)

	_, err := svc.Approve(context.Background(), lead, absence.ApproveAbsenceRequest{RequestID: created.ID})
	require.NoError(t, err)

	secondLead := user.Actor{UserID: "lead-2", Role: user.RoleLead}
	_, err = svc.Approve(context.Background(), secondLead, absence.ApproveAbsenceRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, absence.ErrInvalidTransition)

	// The original approver must not be overwritten.
	stored, getErr := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, getErr)
	assert.Equal(t, absence.StatusApproved, stored.Status)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, lead.UserID, *stored.ApprovedBy)
}

func TestReject_RequiresComment(t *testing.T) {
	svc, repo, _ := newTestService()
	created := createPending(t, svc)

	_, err := svc.Reject(context.Background(), lead, absence.RejectAbsenceRequest{RequestID: created.ID})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "comment")

	stored, getErr := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, getErr)
	assert.Equal(t, absence.StatusPending, stored.Status, "status must be unchanged")
}

func TestReject_StoresComment(t *testing.T) {
	svc, _, _ := newTestService()
	created := createPending(t, svc)

	rejected, err := svc.Reject(context.Background(), lead, absence.RejectAbsenceRequest{
		RequestID: created.ID,
		Comment:   "Coverage is too thin that week",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	require.NotNil(t, rejected.LeadComment)
	assert.Equal(t, "Coverage is too thin that week", *rejected.LeadComment)
}

func TestCancel_PendingOnly(t *testing.T) {
	svc, _, _ := newTestService()
	created := createPending(t, svc)

	cancelled, err := svc.Cancel(context.Background(), analyst, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	// Terminal: every further transition is rejected.
	_, err = svc.Approve(context.Background(), lead, absence.ApproveAbsenceRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, absence.ErrInvalidTransition)
	_, err = svc.Cancel(context.Background(), analyst, created.ID)
	assert.ErrorIs(t, err, absence.ErrInvalidTransition)
}

func TestCancel_OwnerOnly(t *testing.T) {
	svc, _, _ := newTestService()
	created := createPending(t, svc)

	_, err := svc.Cancel(context.Background(), otherAnalyst, created.ID)
	assert.ErrorIs(t, err, absence.ErrNotRequestOwner)
}

func TestRequestCancellation_RequiresApprovedStatus(t *testing.T) {
	svc, _, _ := newTestService()
	created := createPending(t, svc)

	_, err := svc.RequestCancellation(context.Background(), analyst, absence.RequestCancellationRequest{
		RequestID: created.ID,
		Reason:    "Plans changed",
	})
	assert.ErrorIs(t, err, absence.ErrInvalidTransition)
}

func TestRequestCancellation_RequiresReason(t *testing.T) {
	svc, _, _ := newTestService()
	created := createPending(t, svc)

	_, err := svc.Approve(context.Background(), lead, absence.ApproveAbsenceRequest{RequestID: created.ID})
	require.NoError(t, err)

	_, err = svc.RequestCancellation(context.Background(), analyst, absence.RequestCancellationRequest{
		RequestID: created.ID,
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "reason")
}

func TestCancellationRoundTrip_RejectRestoresApproved(t *testing.T) {
	svc, _, _ := newTestService()
	created := createPending(t, svc)

	approved, err := svc.Approve(context.Background(), lead, absence.ApproveAbsenceRequest{
		RequestID: created.ID,
		Comment:   "Enjoy",
	})
	require.NoError(t, err)

	requested, err := svc.RequestCancellation(context.Background(), analyst, absence.RequestCancellationRequest{
		RequestID: created.ID,
		Reason:    "Plans changed",
	})
	require.NoError(t, err)
	assert.Equal(t, "cancel_requested", requested.Status)
	require.NotNil(t, requested.CancelReason)
	assert.Equal(t, "Plans changed", *requested.CancelReason)

	restored, err := svc.RejectCancellation(context.Background(), lead, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "approved", restored.Status)
	assert.Nil(t, restored.CancelReason, "no residual cancel_reason after revert")
	require.NotNil(t, restored.LeadComment)
	assert.Equal(t, *approved.LeadComment, *restored.LeadComment, "original comment untouched")
	assert.Equal(t, approved.ApprovedBy, restored.ApprovedBy)
}

func TestApproveCancellation(t *testing.T) {
	svc, _, notifier := newTestService()
	created := createPending(t, svc)

	_, err := svc.Approve(context.Background(), lead, absence.ApproveAbsenceRequest{RequestID: created.ID})
	require.NoError(t, err)
	_, err = svc.RequestCancellation(context.Background(), analyst, absence.RequestCancellationRequest{
		RequestID: created.ID,
		Reason:    "Plans changed",
	})
	require.NoError(t, err)

	cancelled, err := svc.ApproveCancellation(context.Background(), lead, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	assert.Contains(t, notifier.types, notification.TypeAbsenceCancellationApproved)
}

func TestDelete_OnlyProcessedRequests(t *testing.T) {
	svc, repo, _ := newTestService()
	created := createPending(t, svc)

	err := svc.Delete(context.Background(), analyst, created.ID)
	assert.ErrorIs(t, err, absence.ErrNotDismissable)

	_, err = svc.Approve(context.Background(), lead, absence.ApproveAbsenceRequest{RequestID: created.ID})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), otherAnalyst, created.ID)
	assert.ErrorIs(t, err, absence.ErrNotRequestOwner)

	err = svc.Delete(context.Background(), analyst, created.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.requests)
}

func TestListRequests_LeadOnly(t *testing.T) {
	svc, _, _ := newTestService()
	createPending(t, svc)

	_, err := svc.ListRequests(context.Background(), analyst, absence.AbsenceFilter{})
	assert.ErrorIs(t, err, user.ErrLeadAccessRequired)

	requests, err := svc.ListRequests(context.Background(), lead, absence.AbsenceFilter{})
	require.NoError(t, err)
	assert.Len(t, requests, 1)
}

func TestCalendar_OnlyApprovedInWindow(t *testing.T) {
	svc, _, _ := newTestService()
	created := createPending(t, svc)

	calendar, err := svc.Calendar(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Empty(t, calendar, "pending requests are not on the calendar")

	_, err = svc.Approve(context.Background(), lead, absence.ApproveAbsenceRequest{RequestID: created.ID})
	require.NoError(t, err)

	calendar, err = svc.Calendar(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, calendar, 1)
	assert.Equal(t, created.ID, calendar[0].ID)

	calendar, err = svc.Calendar(context.Background(), "2024-04-01", "2024-04-30")
	require.NoError(t, err)
	assert.Empty(t, calendar)
}

func TestLostRace_SurfacesInvalidTransition(t *testing.T) {
	svc, repo, _ := newTestService()
	created := createPending(t, svc)

	// Another actor resolves the request between the precondition check and
	// the commit. Simulate by mutating the store directly.
	require.NoError(t, repo.TransitionStatus(context.Background(), created.ID,
		absence.StatusPending, absence.StatusCancelled, absence.StatusUpdate{}))

	_, err := svc.Approve(context.Background(), lead, absence.ApproveAbsenceRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, absence.ErrInvalidTransition)
}
