package http

import (
	"net/http"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/attendance"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/handler/http/response"
)

type TeamHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
}

type TeamHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewTeamHandler(attendanceService attendance.AttendanceService) TeamHandler {
	return &TeamHandlerImpl{attendanceService: attendanceService}
}

// Status returns the "who is online now" snapshot, computed fresh on every
// request.
func (h *TeamHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.TeamStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
