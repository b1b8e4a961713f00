package task

import "errors"

var (
	ErrTaskNotFound         = errors.New("Task not found")
	ErrTaskAlreadyCompleted = errors.New("Task is already completed")
	ErrInvalidTransition    = errors.New("Task is not in the expected status")
	ErrNotTaskParticipant   = errors.New("Task can only be modified by its assignee or assignor")
)
