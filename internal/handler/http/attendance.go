package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/paytrack/payroll-console-go/internal/domain/attendance"
	"github.com/paytrack/payroll-console-go/internal/handler/http/response"
	attendanceService "github.com/paytrack/payroll-console-go/internal/service/attendance"
)

type AttendanceHandler interface {
	Update(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendanceService.Service
}

func NewAttendanceHandler(svc *attendanceService.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: svc}
}

type updateAttendanceBody struct {
	SalaryID          int64   `json:"salary_id"`
	MorningClockIn    *string `json:"morning_clock_in"`
	MorningClockOut   *string `json:"morning_clock_out"`
	AfternoonClockIn  *string `json:"afternoon_clock_in"`
	AfternoonClockOut *string `json:"afternoon_clock_out"`
}

// Update runs the edit flow: patch the record, then re-fetch attendance,
// recompute and re-fetch the owning salary record, returning the refreshed
// detail so the client can close the edit surface on success.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Attendance record ID must be numeric", nil)
		return
	}

	var body updateAttendanceBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if body.SalaryID == 0 {
		response.BadRequest(w, "salary_id is required", nil)
		return
	}

	req := attendance.UpdateRequest{
		ID:                id,
		MorningClockIn:    body.MorningClockIn,
		MorningClockOut:   body.MorningClockOut,
		AfternoonClockIn:  body.AfternoonClockIn,
		AfternoonClockOut: body.AfternoonClockOut,
	}

	detail, err := h.attendanceService.Update(r.Context(), req, body.SalaryID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record updated", detail)
}
