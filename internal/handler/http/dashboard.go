package http

import (
	"net/http"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/dashboard"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/handler/http/middleware"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Lead(w http.ResponseWriter, r *http.Request)
	Analyst(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// Lead implements DashboardHandler.
func (h *DashboardHandlerImpl) Lead(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.LeadDashboard(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Analyst implements DashboardHandler.
func (h *DashboardHandlerImpl) Analyst(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.AnalystDashboard(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
