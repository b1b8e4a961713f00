package profile

import (
	"context"
	"fmt"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/absence"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/notification"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/profile"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/task"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/database"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/repository/postgresql"
)

type ProfileServiceImpl struct {
	db *database.DB
	profile.ProfileRepository
	user.UserRepository
	absenceRepo         absence.AbsenceRequestRepository
	taskRepo            task.TaskRepository
	notificationRepo    notification.Repository
	notificationService notification.Service
}

func NewProfileService(
	db *database.DB,
	profileRepo profile.ProfileRepository,
	userRepo user.UserRepository,
	absenceRepo absence.AbsenceRequestRepository,
	taskRepo task.TaskRepository,
	notificationRepo notification.Repository,
	notificationService notification.Service,
) profile.ProfileService {
	return &ProfileServiceImpl{
		db:                  db,
		ProfileRepository:   profileRepo,
		UserRepository:      userRepo,
		absenceRepo:         absenceRepo,
		taskRepo:            taskRepo,
		notificationRepo:    notificationRepo,
		notificationService: notificationService,
	}
}

// GetMyProfile implements profile.ProfileService.
func (s *ProfileServiceImpl) GetMyProfile(ctx context.Context, actor user.Actor) (profile.ProfileResponse, error) {
	p, err := s.ProfileRepository.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}
	return profile.ToResponse(p), nil
}

// ListAnalysts implements profile.ProfileService.
func (s *ProfileServiceImpl) ListAnalysts(ctx context.Context) ([]profile.ProfileResponse, error) {
	profiles, err := s.ProfileRepository.ListAnalysts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysts: %w", err)
	}

	responses := make([]profile.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, profile.ToResponse(p))
	}
	return responses, nil
}

// UpdateProfile implements profile.ProfileService. Self-service fields only;
// the actor can only touch their own profile.
func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, actor user.Actor, req profile.UpdateProfileRequest) (profile.ProfileResponse, error) {
	if req.UserID != actor.UserID {
		return profile.ProfileResponse{}, profile.ErrNotProfileOwner
	}

	if err := req.Validate(); err != nil {
		return profile.ProfileResponse{}, err
	}

	p, err := s.ProfileRepository.GetByUserID(ctx, req.UserID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.AvatarURL != nil {
		p.AvatarURL = req.AvatarURL
	}
	if req.Area != nil {
		p.Area = req.Area
	}

	if err := s.ProfileRepository.Update(ctx, p); err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}

	updated, err := s.ProfileRepository.GetByUserID(ctx, req.UserID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}
	return profile.ToResponse(updated), nil
}

// UpdateShift implements profile.ProfileService. Schedule fields are written
// by leads only; the analyst is told their shift changed.
func (s *ProfileServiceImpl) UpdateShift(ctx context.Context, actor user.Actor, req profile.UpdateShiftRequest) (profile.ProfileResponse, error) {
	if !actor.CanEditShift() {
		return profile.ProfileResponse{}, user.ErrLeadAccessRequired
	}

	if err := req.Validate(); err != nil {
		return profile.ProfileResponse{}, err
	}

	p, err := s.ProfileRepository.GetByUserID(ctx, req.UserID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	p.StartTime = req.StartTime
	p.EndTime = req.EndTime
	p.LunchStart = &req.LunchStart
	p.LunchEnd = &req.LunchEnd
	p.Break1Start = &req.Break1Start
	p.Break1End = &req.Break1End
	p.Break2Start = &req.Break2Start
	p.Break2End = &req.Break2End
	p.WorkDays = req.WorkDays

	if err := s.ProfileRepository.Update(ctx, p); err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}

	s.notificationService.Notify(notification.CreateNotificationRequest{
		RecipientID: req.UserID,
		SenderID:    &actor.UserID,
		Type:        notification.TypeShiftUpdated,
		Title:       "Shift updated",
		Message:     fmt.Sprintf("Your shift is now %s to %s", req.StartTime, req.EndTime),
	})

	updated, err := s.ProfileRepository.GetByUserID(ctx, req.UserID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}
	return profile.ToResponse(updated), nil
}

// DeleteAnalyst implements profile.ProfileService. Lead-initiated removal
// cascades to the analyst's tasks, absence requests and notifications in one
// transaction.
func (s *ProfileServiceImpl) DeleteAnalyst(ctx context.Context, actor user.Actor, userID string) error {
	if !actor.IsLead() {
		return user.ErrLeadAccessRequired
	}

	if _, err := s.ProfileRepository.GetByUserID(ctx, userID); err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.taskRepo.DeleteByAssignee(txCtx, userID); err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}
		if err := s.absenceRepo.DeleteByAnalyst(txCtx, userID); err != nil {
			return fmt.Errorf("failed to delete absence requests: %w", err)
		}
		if err := s.notificationRepo.DeleteByRecipient(txCtx, userID); err != nil {
			return fmt.Errorf("failed to delete notifications: %w", err)
		}
		if err := s.ProfileRepository.Delete(txCtx, userID); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		if err := s.UserRepository.Delete(txCtx, userID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
