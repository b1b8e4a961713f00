package absence

import "errors"

var (
	ErrAbsenceRequestNotFound = errors.New("Absence request not found")
	// ErrInvalidTransition covers both a precondition that never held and a
	// lost race where another actor changed the status first. Callers should
	// refetch and show the fresh state.
	ErrInvalidTransition = errors.New("Absence request is not in the expected status")
	ErrNotRequestOwner   = errors.New("Absence request belongs to another analyst")
	ErrNotDismissable    = errors.New("Only processed absence requests can be deleted")
)
