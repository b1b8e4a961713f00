package user

import "context"

// UserRepository - interface for the users table
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByOAuth(ctx context.Context, provider, providerID string) (User, error)
	// ListIDsByRole returns the ids of every user holding one of the given
	// roles, used to fan notifications out to the supervisors.
	ListIDsByRole(ctx context.Context, roles ...Role) ([]string, error)
	Delete(ctx context.Context, id string) error
}
