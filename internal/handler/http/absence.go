package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/absence"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/handler/http/middleware"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AbsenceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	RequestCancellation(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	ApproveCancellation(w http.ResponseWriter, r *http.Request)
	RejectCancellation(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type AbsenceHandlerImpl struct {
	absenceService absence.AbsenceService
}

func NewAbsenceHandler(absenceService absence.AbsenceService) AbsenceHandler {
	return &AbsenceHandlerImpl{absenceService: absenceService}
}

// Create implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq absence.CreateAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create absence decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.absenceService.CreateRequest(r.Context(), actor, createReq)
	if err != nil {
		slog.Error("Create absence service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence request submitted", result)
}

// ListMy implements AbsenceHandler.
func (h *AbsenceHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.absenceService.ListMyRequests(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AbsenceHandler. Lead-side listing with optional filters.
func (h *AbsenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter absence.AbsenceFilter
	if analystID := r.URL.Query().Get("analyst_id"); analystID != "" {
		filter.AnalystID = &analystID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !absence.ValidStatus(status) {
			response.BadRequest(w, "Unknown status filter", nil)
			return
		}
		filter.Status = &status
	}
	if from := r.URL.Query().Get("from"); from != "" {
		fromDate, err := time.Parse("2006-01-02", from)
		if err != nil {
			response.BadRequest(w, "from must be a valid date in YYYY-MM-DD format", nil)
			return
		}
		filter.From = &fromDate
	}
	if to := r.URL.Query().Get("to"); to != "" {
		toDate, err := time.Parse("2006-01-02", to)
		if err != nil {
			response.BadRequest(w, "to must be a valid date in YYYY-MM-DD format", nil)
			return
		}
		filter.To = &toDate
	}

	result, err := h.absenceService.ListRequests(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Calendar implements AbsenceHandler. Approved absences for the team
// calendar; defaults to the current month.
func (h *AbsenceHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		now := time.Now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		from = monthStart.Format("2006-01-02")
		to = monthStart.AddDate(0, 1, -1).Format("2006-01-02")
	}

	result, err := h.absenceService.Calendar(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Cancel implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.absenceService.Cancel(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Cancel absence service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request cancelled", result)
}

// RequestCancellation implements AbsenceHandler.
func (h *AbsenceHandlerImpl) RequestCancellation(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var cancelReq absence.RequestCancellationRequest
	if err := json.NewDecoder(r.Body).Decode(&cancelReq); err != nil {
		slog.Error("Request cancellation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	cancelReq.RequestID = chi.URLParam(r, "id")

	result, err := h.absenceService.RequestCancellation(r.Context(), actor, cancelReq)
	if err != nil {
		slog.Error("Request cancellation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Cancellation requested", result)
}

// Approve implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var approveReq absence.ApproveAbsenceRequest
	if r.Body != nil {
		// Comment is optional; an empty body is fine.
		_ = json.NewDecoder(r.Body).Decode(&approveReq)
	}
	approveReq.RequestID = chi.URLParam(r, "id")

	result, err := h.absenceService.Approve(r.Context(), actor, approveReq)
	if err != nil {
		slog.Error("Approve absence service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request approved", result)
}

// Reject implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var rejectReq absence.RejectAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&rejectReq); err != nil {
		slog.Error("Reject absence decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	rejectReq.RequestID = chi.URLParam(r, "id")

	result, err := h.absenceService.Reject(r.Context(), actor, rejectReq)
	if err != nil {
		slog.Error("Reject absence service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request rejected", result)
}

// ApproveCancellation implements AbsenceHandler.
func (h *AbsenceHandlerImpl) ApproveCancellation(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.absenceService.ApproveCancellation(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Approve cancellation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Cancellation approved", result)
}

// RejectCancellation implements AbsenceHandler.
func (h *AbsenceHandlerImpl) RejectCancellation(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.absenceService.RejectCancellation(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Reject cancellation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Cancellation rejected", result)
}

// Delete implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.absenceService.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete absence service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request deleted", nil)
}
