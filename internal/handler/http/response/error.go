package response

import (
	"errors"
	"net/http"

	"github.com/paytrack/payroll-console-go/internal/domain/attendance"
	"github.com/paytrack/payroll-console-go/internal/domain/salary"
	"github.com/paytrack/payroll-console-go/internal/gateway"
	"github.com/paytrack/payroll-console-go/internal/pkg/validator"
)

// HandleError maps domain and gateway errors to HTTP responses. Calculation
// failures never arrive here: they are reconciliation data, not errors.
func HandleError(w http.ResponseWriter, err error) {
	// Form-level validation
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Backend rejected a patch: surfaced inline on the edit surface.
	var backendValidation *gateway.ValidationError
	if errors.As(err, &backendValidation) {
		ValidationError(w, backendValidation.Fields)
		return
	}

	// The patch was applied but a follow-up step failed; the edit is not
	// lost, the view just could not be refreshed.
	var refreshErr *attendance.RefreshError
	if errors.As(err, &refreshErr) {
		BadGateway(w, refreshErr.Error())
		return
	}

	var transportErr *gateway.TransportError
	if errors.As(err, &transportErr) {
		BadGateway(w, "Payroll backend unavailable")
		return
	}

	switch {
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
