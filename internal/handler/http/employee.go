package http

import (
	"net/http"

	"github.com/paytrack/payroll-console-go/internal/domain/query"
	"github.com/paytrack/payroll-console-go/internal/handler/http/response"
	employeeService "github.com/paytrack/payroll-console-go/internal/service/employee"
)

// ViewIDHeader identifies the mounted table instance a request belongs to.
// The browser generates one per table mount and sends it with every fetch.
const ViewIDHeader = "X-View-ID"

var (
	employeeSortFields   = []string{"employee_code", "name", "date_of_birth"}
	employeeFilterFields = []string{"departments"}
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService *employeeService.Service
	defaultPageSize int
}

func NewEmployeeHandler(svc *employeeService.Service, defaultPageSize int) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: svc, defaultPageSize: defaultPageSize}
}

func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	state, err := query.FromRequest(r, h.defaultPageSize, employeeSortFields, employeeFilterFields)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	snap, err := h.employeeService.List(r.Context(), r.Header.Get(ViewIDHeader), state)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, snap.Rows, &response.Meta{
		Page:       snap.State.Page,
		PageSize:   snap.State.PageSize,
		TotalItems: snap.Total,
	})
}
