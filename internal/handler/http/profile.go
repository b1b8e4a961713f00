package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/profile"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/handler/http/middleware"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ProfileHandler interface {
	GetMy(w http.ResponseWriter, r *http.Request)
	UpdateMy(w http.ResponseWriter, r *http.Request)
	ListAnalysts(w http.ResponseWriter, r *http.Request)
	UpdateShift(w http.ResponseWriter, r *http.Request)
	DeleteAnalyst(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &ProfileHandlerImpl{profileService: profileService}
}

// GetMy implements ProfileHandler.
func (h *ProfileHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.profileService.GetMyProfile(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateMy implements ProfileHandler.
func (h *ProfileHandlerImpl) UpdateMy(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var updateReq profile.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update profile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.UserID = actor.UserID

	result, err := h.profileService.UpdateProfile(r.Context(), actor, updateReq)
	if err != nil {
		slog.Error("Update profile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated", result)
}

// ListAnalysts implements ProfileHandler.
func (h *ProfileHandlerImpl) ListAnalysts(w http.ResponseWriter, r *http.Request) {
	result, err := h.profileService.ListAnalysts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateShift implements ProfileHandler. Lead only.
func (h *ProfileHandlerImpl) UpdateShift(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var shiftReq profile.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&shiftReq); err != nil {
		slog.Error("Update shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	shiftReq.UserID = chi.URLParam(r, "userID")

	result, err := h.profileService.UpdateShift(r.Context(), actor, shiftReq)
	if err != nil {
		slog.Error("Update shift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated", result)
}

// DeleteAnalyst implements ProfileHandler. Lead only; cascades to the
// analyst's tasks, absence requests, and notifications.
func (h *ProfileHandlerImpl) DeleteAnalyst(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.profileService.DeleteAnalyst(r.Context(), actor, chi.URLParam(r, "userID")); err != nil {
		slog.Error("Delete analyst service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Analyst removed", nil)
}
