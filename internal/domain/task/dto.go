package task

import (
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/validator"
)

type CreateTaskRequest struct {
	AssignedBy  string  `json:"-"`
	AssignedTo  string  `json:"assigned_to"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Priority    int     `json:"priority"`
	DueDate     *string `json:"due_date,omitempty"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.AssignedTo) {
		errs = append(errs, validator.ValidationError{
			Field:   "assigned_to",
			Message: "assigned_to is required",
		})
	}

	if r.Priority < 1 || r.Priority > 5 {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be between 1 and 5",
		})
	}

	if r.DueDate != nil {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "due_date",
				Message: "due_date must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TaskFilter narrows task listings.
type TaskFilter struct {
	AssignedTo *string
	Status     *string
}

type TaskResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description,omitempty"`
	AssignedTo     string     `json:"assigned_to"`
	AssignedToName *string    `json:"assigned_to_name,omitempty"`
	AssignedBy     string     `json:"assigned_by"`
	AssignedByName *string    `json:"assigned_by_name,omitempty"`
	Priority       int        `json:"priority"`
	Status         string     `json:"status"`
	DueDate        *string    `json:"due_date,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func ToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		AssignedTo:     t.AssignedTo,
		AssignedToName: t.AssignedToName,
		AssignedBy:     t.AssignedBy,
		AssignedByName: t.AssignedByName,
		Priority:       t.Priority,
		Status:         string(t.Status),
		CompletedAt:    t.CompletedAt,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.DueDate != nil {
		due := t.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	return resp
}

func ToResponses(tasks []Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, ToResponse(t))
	}
	return responses
}
