package response

import (
	"errors"
	"net/http"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/absence"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/auth"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/notification"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/profile"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/task"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrOAuthEmailUnverified):
		Forbidden(w, "Google account email is not verified")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrLeadAccessRequired):
		Forbidden(w, "Lead access required")

	// Profile domain errors
	case errors.Is(err, profile.ErrProfileNotFound):
		NotFound(w, "Profile not found")
	case errors.Is(err, profile.ErrNotProfileOwner):
		Forbidden(w, "Profile can only be edited by its owner")

	// Absence domain errors
	case errors.Is(err, absence.ErrAbsenceRequestNotFound):
		NotFound(w, "Absence request not found")
	case errors.Is(err, absence.ErrInvalidTransition):
		Conflict(w, "Absence request is not in the expected status")
	case errors.Is(err, absence.ErrNotRequestOwner):
		Forbidden(w, "Absence request belongs to another analyst")
	case errors.Is(err, absence.ErrNotDismissable):
		Conflict(w, "Only processed absence requests can be deleted")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrInvalidTransition):
		Conflict(w, "Task is not in the expected status")
	case errors.Is(err, task.ErrTaskAlreadyCompleted):
		Conflict(w, "Task is already completed")
	case errors.Is(err, task.ErrNotTaskParticipant):
		Forbidden(w, "Task can only be modified by its assignee or assignor")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
