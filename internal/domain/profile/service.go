package profile

import (
	"context"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
)

type ProfileService interface {
	GetMyProfile(ctx context.Context, actor user.Actor) (ProfileResponse, error)
	ListAnalysts(ctx context.Context) ([]ProfileResponse, error)
	UpdateProfile(ctx context.Context, actor user.Actor, req UpdateProfileRequest) (ProfileResponse, error)
	UpdateShift(ctx context.Context, actor user.Actor, req UpdateShiftRequest) (ProfileResponse, error)
	DeleteAnalyst(ctx context.Context, actor user.Actor, userID string) error
}
