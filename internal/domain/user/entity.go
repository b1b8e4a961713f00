package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Full access over the workspace
	RoleLead    Role = "lead"    // Can approve absences, assign tasks, edit shifts
	RoleAnalyst Role = "analyst" // Regular Service Desk analyst
)

// ValidRole reports whether the string names a known role.
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleLead, RoleAnalyst:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	PasswordHash *string
	Role         Role

	OAuthProvider   *string
	OAuthProviderID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor identifies who is performing an operation. Every lifecycle
// operation receives one explicitly; there is no ambient current user.
type Actor struct {
	UserID string
	Role   Role
}

// IsLead checks if the actor has supervisory privileges.
func (a Actor) IsLead() bool {
	return a.Role == RoleLead || a.Role == RoleAdmin
}

// CanApprove checks if the actor can decide absence requests.
func (a Actor) CanApprove() bool {
	return a.IsLead()
}

// CanEditShift checks if the actor can edit analyst schedules.
func (a Actor) CanEditShift() bool {
	return a.IsLead()
}
