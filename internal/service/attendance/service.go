// Package attendance implements the scoped mutation flow: load one record
// into an editable form, patch it, and re-drive salary reconciliation.
package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/paytrack/payroll-console-go/internal/domain/attendance"
	"github.com/paytrack/payroll-console-go/internal/domain/salary"
	"github.com/paytrack/payroll-console-go/internal/pkg/activity"
	salaryService "github.com/paytrack/payroll-console-go/internal/service/salary"
)

// Gateway is the slice of the backend client the editor uses: the patch
// itself plus the reconciliation reads.
type Gateway interface {
	salaryService.Gateway
	UpdateAttendance(ctx context.Context, id int64, patch attendance.Patch) (attendance.Record, error)
}

type Service struct {
	gw         Gateway
	reconciler *salaryService.Service
	gauge      *activity.Gauge
}

func NewService(gw Gateway, reconciler *salaryService.Service, gauge *activity.Gauge) *Service {
	return &Service{gw: gw, reconciler: reconciler, gauge: gauge}
}

// Update patches one attendance record and re-drives reconciliation for the
// owning salary record, strictly in order: patch, re-fetch the attendance
// window, re-run computation, re-fetch the salary record. A failure before
// the patch is applied returns the error as-is (the edit surface stays
// open); a failure after it returns a RefreshError so the caller knows the
// write succeeded but the view could not be refreshed.
func (s *Service) Update(ctx context.Context, req attendance.UpdateRequest, salaryID int64) (salary.Detail, error) {
	if err := req.Validate(); err != nil {
		return salary.Detail{}, err
	}

	done := s.gauge.Start()
	defer done()

	patched, err := s.gw.UpdateAttendance(ctx, req.ID, req.Patch())
	if err != nil {
		return salary.Detail{}, err
	}

	date, err := time.Parse("2006-01-02", patched.Date)
	if err != nil {
		return salary.Detail{}, &attendance.RefreshError{Step: "attendance refresh", Err: fmt.Errorf("unparseable record date %q", patched.Date)}
	}
	month, year := int(date.Month()), date.Year()

	window, err := s.gw.MonthlyAttendance(ctx, patched.EmployeeCode, month, year)
	if err != nil {
		return salary.Detail{}, &attendance.RefreshError{Step: "attendance refresh", Err: err}
	}

	// Recompute, never Compute: a computation already in flight was issued
	// against the pre-patch data and must not be joined.
	result, err := s.reconciler.Recompute(ctx, patched.EmployeeCode, month, year)
	if err != nil {
		return salary.Detail{}, &attendance.RefreshError{Step: "salary computation", Err: err}
	}

	record, err := s.gw.GetSalary(ctx, salaryID)
	if err != nil {
		return salary.Detail{}, &attendance.RefreshError{Step: "salary refresh", Err: err}
	}

	// The error list is derived from this attempt only; any list produced
	// by an earlier attempt is gone.
	status := salary.StatusPending
	var calcErrs []salary.CalculationError
	switch {
	case record.Resolved():
		status = salary.StatusResolved
	case len(result.Errors) > 0:
		status = salary.StatusFailed
		calcErrs = result.Errors
	}

	return salary.Detail{
		Record: record,
		Status: status,
		Errors: calcErrs,
		Grid:   salaryService.BuildGrid(window, calcErrs),
	}, nil
}
