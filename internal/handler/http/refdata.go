package http

import (
	"net/http"

	"github.com/paytrack/payroll-console-go/internal/handler/http/response"
	"github.com/paytrack/payroll-console-go/internal/service/refdata"
)

type RefDataHandler interface {
	Departments(w http.ResponseWriter, r *http.Request)
	Periods(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type refDataHandlerImpl struct {
	store *refdata.Store
}

func NewRefDataHandler(store *refdata.Store) RefDataHandler {
	return &refDataHandlerImpl{store: store}
}

// Departments serves the full reference list that populates the department
// filter of the tables, independent of any table's pagination.
func (h *refDataHandlerImpl) Departments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.store.Departments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, departments)
}

func (h *refDataHandlerImpl) Periods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.store.Periods(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, periods)
}

func (h *refDataHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Refresh(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Reference data refreshed", nil)
}
