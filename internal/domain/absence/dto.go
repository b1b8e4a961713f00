package absence

import (
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/validator"
)

type CreateAbsenceRequest struct {
	AnalystID string `json:"-"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (r *CreateAbsenceRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestCancellationRequest struct {
	RequestID string `json:"-"`
	AnalystID string `json:"-"`
	Reason    string `json:"reason"`
}

func (r *RequestCancellationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required to cancel an approved absence",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveAbsenceRequest struct {
	RequestID string `json:"-"`
	Comment   string `json:"comment"`
}

type RejectAbsenceRequest struct {
	RequestID string `json:"-"`
	Comment   string `json:"comment"`
}

func (r *RejectAbsenceRequest) Validate() error {
	var errs validator.ValidationErrors

	// A rejection without an explanation is not actionable for the analyst.
	if validator.IsEmpty(r.Comment) {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "comment is required when rejecting a request",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AbsenceFilter narrows lead-side listings.
type AbsenceFilter struct {
	AnalystID *string
	Status    *string
	From      *time.Time
	To        *time.Time
}

type AbsenceResponse struct {
	ID           string     `json:"id"`
	AnalystID    string     `json:"analyst_id"`
	AnalystName  *string    `json:"analyst_name,omitempty"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	LeadComment  *string    `json:"lead_comment,omitempty"`
	CancelReason *string    `json:"cancel_reason,omitempty"`
	ApprovedBy   *string    `json:"approved_by,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func ToResponse(r AbsenceRequest) AbsenceResponse {
	return AbsenceResponse{
		ID:           r.ID,
		AnalystID:    r.AnalystID,
		AnalystName:  r.AnalystName,
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		Reason:       r.Reason,
		Status:       string(r.Status),
		LeadComment:  r.LeadComment,
		CancelReason: r.CancelReason,
		ApprovedBy:   r.ApprovedBy,
		CancelledAt:  r.CancelledAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func ToResponses(requests []AbsenceRequest) []AbsenceResponse {
	responses := make([]AbsenceResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, ToResponse(r))
	}
	return responses
}
