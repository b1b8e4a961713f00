package task

import "time"

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// ValidStatus reports whether the string names a known task state.
func ValidStatus(s string) bool {
	switch TaskStatus(s) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task entity. Self-assigned tasks have AssignedBy == AssignedTo.
// CompletedAt is set exactly when the task transitions into completed.
type Task struct {
	ID          string
	Title       string
	Description *string

	AssignedTo string
	AssignedBy string

	Priority int // 1 (highest) .. 5 (lowest)
	Status   TaskStatus
	DueDate  *time.Time

	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join fields (for responses)
	AssignedToName *string
	AssignedByName *string
}
