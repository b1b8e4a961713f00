package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeAbsenceRequested            NotificationType = "absence_requested"
	TypeAbsenceApproved             NotificationType = "absence_approved"
	TypeAbsenceRejected             NotificationType = "absence_rejected"
	TypeAbsenceCancelRequested      NotificationType = "absence_cancel_requested"
	TypeAbsenceCancellationApproved NotificationType = "absence_cancellation_approved"
	TypeAbsenceCancellationRejected NotificationType = "absence_cancellation_rejected"
	TypeTaskAssigned                NotificationType = "task_assigned"
	TypeTaskCompleted               NotificationType = "task_completed"
	TypeShiftUpdated                NotificationType = "shift_updated"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
