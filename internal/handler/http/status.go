package http

import (
	"net/http"

	"github.com/paytrack/payroll-console-go/internal/handler/http/response"
	"github.com/paytrack/payroll-console-go/internal/pkg/activity"
)

type StatusHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
}

type statusHandlerImpl struct {
	gauge *activity.Gauge
}

func NewStatusHandler(gauge *activity.Gauge) StatusHandler {
	return &statusHandlerImpl{gauge: gauge}
}

type statusBody struct {
	Loading  bool  `json:"loading"`
	InFlight int64 `json:"in_flight"`
}

// Status feeds the loading indicator: true while any backend fetch is in
// flight. The count is a refcount, so overlapping fetches cannot clear each
// other's state.
func (h *statusHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	response.Success(w, statusBody{
		Loading:  h.gauge.Busy(),
		InFlight: h.gauge.Count(),
	})
}
