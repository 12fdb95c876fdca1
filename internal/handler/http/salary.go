package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/paytrack/payroll-console-go/internal/domain/query"
	"github.com/paytrack/payroll-console-go/internal/handler/http/response"
	salaryService "github.com/paytrack/payroll-console-go/internal/service/salary"
)

var (
	salarySortFields   = []string{"employee_code", "name", "month", "year", "salary_amount"}
	salaryFilterFields = []string{"month", "year", "departments"}
)

type SalaryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Detail(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService   *salaryService.Service
	defaultPageSize int
}

func NewSalaryHandler(svc *salaryService.Service, defaultPageSize int) SalaryHandler {
	return &salaryHandlerImpl{salaryService: svc, defaultPageSize: defaultPageSize}
}

func (h *salaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	state, err := query.FromRequest(r, h.defaultPageSize, salarySortFields, salaryFilterFields)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	snap, rows, err := h.salaryService.List(r.Context(), r.Header.Get(ViewIDHeader), state)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, rows, &response.Meta{
		Page:       snap.State.Page,
		PageSize:   snap.State.PageSize,
		TotalItems: snap.Total,
	})
}

func (h *salaryHandlerImpl) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Salary ID must be numeric", nil)
		return
	}

	detail, err := h.salaryService.Detail(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

func (h *salaryHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	var payload []byte
	var filename string
	var err error

	if r.URL.Query().Get("annotated") == "true" {
		payload, filename, err = h.salaryService.ExportAnnotatedPage(r.Context(), r.Header.Get(ViewIDHeader))
	} else {
		state, stateErr := query.FromRequest(r, h.defaultPageSize, nil, salaryFilterFields)
		if stateErr != nil {
			response.HandleError(w, stateErr)
			return
		}
		payload, filename, err = h.salaryService.Export(r.Context(), salaryService.FilterFromState(state))
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(payload)
}
