package profile

import (
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/validator"
)

type UpdateProfileRequest struct {
	UserID    string  `json:"-"`
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Area      *string `json:"area,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		}
		if len(*r.Name) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 255 characters",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	UserID      string   `json:"-"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	LunchStart  string   `json:"lunch_start"`
	LunchEnd    string   `json:"lunch_end"`
	Break1Start string   `json:"break1_start"`
	Break1End   string   `json:"break1_end"`
	Break2Start string   `json:"break2_start"`
	Break2End   string   `json:"break2_end"`
	WorkDays    WorkDays `json:"work_days"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	timeFields := []struct {
		field string
		value string
	}{
		{"start_time", r.StartTime},
		{"end_time", r.EndTime},
		{"lunch_start", r.LunchStart},
		{"lunch_end", r.LunchEnd},
		{"break1_start", r.Break1Start},
		{"break1_end", r.Break1End},
		{"break2_start", r.Break2Start},
		{"break2_end", r.Break2End},
	}
	for _, f := range timeFields {
		if validator.IsEmpty(f.value) {
			errs = append(errs, validator.ValidationError{
				Field:   f.field,
				Message: f.field + " is required",
			})
			continue
		}
		if !validator.IsValidTimeOfDay(f.value) {
			errs = append(errs, validator.ValidationError{
				Field:   f.field,
				Message: f.field + " must be a valid time in HH:MM format",
			})
		}
	}

	if len(r.WorkDays) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_days",
			Message: "work_days is required",
		})
	}
	for key, day := range r.WorkDays {
		if !validator.IsInSlice(key, WeekdayKeys) {
			errs = append(errs, validator.ValidationError{
				Field:   "work_days",
				Message: "unknown weekday key: " + key,
			})
			continue
		}
		if day.Mode != ModeOffice && day.Mode != ModeHome {
			errs = append(errs, validator.ValidationError{
				Field:   "work_days." + key,
				Message: "mode must be 'office' or 'home'",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProfileResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Area      *string `json:"area,omitempty"`

	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	LunchStart  *string `json:"lunch_start,omitempty"`
	LunchEnd    *string `json:"lunch_end,omitempty"`
	Break1Start *string `json:"break1_start,omitempty"`
	Break1End   *string `json:"break1_end,omitempty"`
	Break2Start *string `json:"break2_start,omitempty"`
	Break2End   *string `json:"break2_end,omitempty"`

	WorkDays WorkDays `json:"work_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Role:        string(p.Role),
		AvatarURL:   p.AvatarURL,
		Area:        p.Area,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		LunchStart:  p.LunchStart,
		LunchEnd:    p.LunchEnd,
		Break1Start: p.Break1Start,
		Break1End:   p.Break1End,
		Break2Start: p.Break2Start,
		Break2End:   p.Break2End,
		WorkDays:    p.WorkDays,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
