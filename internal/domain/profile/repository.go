package profile

import "context"

// ProfileRepository - interface for the profiles table
type ProfileRepository interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	ListAnalysts(ctx context.Context) ([]Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Update(ctx context.Context, p Profile) error
	Delete(ctx context.Context, userID string) error
}
