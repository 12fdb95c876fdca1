// Package salary drives the payroll reconciliation workflow: detect a
// pending record, invoke remote computation, map the returned field errors
// onto the attendance grid, and re-drive computation after corrections.
package salary

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/paytrack/payroll-console-go/internal/domain/attendance"
	"github.com/paytrack/payroll-console-go/internal/domain/query"
	"github.com/paytrack/payroll-console-go/internal/domain/salary"
	"github.com/paytrack/payroll-console-go/internal/gateway"
	"github.com/paytrack/payroll-console-go/internal/pkg/activity"
	"github.com/paytrack/payroll-console-go/internal/service/listing"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Gateway is the slice of the backend client the reconciliation engine uses.
type Gateway interface {
	ListSalaries(ctx context.Context, query url.Values) (gateway.Page[salary.Record], error)
	GetSalary(ctx context.Context, id int64) (salary.Record, error)
	ComputeSalary(ctx context.Context, employeeCode string, month, year int) (salary.ComputeResult, error)
	MonthlyAttendance(ctx context.Context, employeeCode string, month, year int) ([]attendance.Record, error)
	ExportSummary(ctx context.Context, filter salary.ExportFilter) ([]byte, string, error)
}

type Service struct {
	gw          Gateway
	gauge       *activity.Gauge
	concurrency int
	computes    singleflight.Group
	views       *listing.Registry[salary.Record]
}

// NewService creates the reconciliation engine and the salary table's query
// controllers. concurrency bounds how many compute calls run at once while
// reconciling a page.
func NewService(gw Gateway, gauge *activity.Gauge, concurrency, defaultPageSize int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	s := &Service{gw: gw, gauge: gauge, concurrency: concurrency}
	s.views = listing.NewRegistry(func() *listing.Controller[salary.Record] {
		return listing.NewController(query.New(defaultPageSize), func(ctx context.Context, state query.State) (gateway.Page[salary.Record], error) {
			return s.gw.ListSalaries(ctx, state.Values())
		}, gauge)
	})
	return s
}

// List applies the requested query state to the view's controller and
// reconciles the resulting page: every pending row is resolved or failed
// before the page reports as loaded. On a failed fetch the previous rows
// stay visible and no reconciliation runs.
func (s *Service) List(ctx context.Context, viewID string, state query.State) (listing.Snapshot[salary.Record], []salary.ReconciledRow, error) {
	snap, err := s.views.Get(viewID).Apply(ctx, state)
	if err != nil {
		return snap, nil, err
	}
	return snap, s.ReconcilePage(ctx, snap.Rows), nil
}

func computeKey(employeeCode string, month, year int) string {
	return fmt.Sprintf("%s/%d/%d", employeeCode, month, year)
}

// Compute triggers remote computation for one (employee, month, year).
// Concurrent callers for the same key share a single outstanding call, so a
// record is never computed more than once at a time.
func (s *Service) Compute(ctx context.Context, employeeCode string, month, year int) (salary.ComputeResult, error) {
	v, err, _ := s.computes.Do(computeKey(employeeCode, month, year), func() (any, error) {
		return s.gw.ComputeSalary(ctx, employeeCode, month, year)
	})
	if err != nil {
		return salary.ComputeResult{}, err
	}
	return v.(salary.ComputeResult), nil
}

// Recompute drives computation after the underlying attendance data changed.
// A call already in flight for the key was issued against the old data, so
// its result must not be joined: the key is dropped and a fresh call made.
func (s *Service) Recompute(ctx context.Context, employeeCode string, month, year int) (salary.ComputeResult, error) {
	s.computes.Forget(computeKey(employeeCode, month, year))
	return s.Compute(ctx, employeeCode, month, year)
}

// ResolveRow reconciles one salary table row. A resolved record passes
// through; a pending one is computed, and the outcome replaces the amount
// cell: the formatted amount on success, the error lines on a calculation
// failure, "N/A" when the compute call itself could not be made.
func (s *Service) ResolveRow(ctx context.Context, rec salary.Record) salary.ReconciledRow {
	if rec.Resolved() {
		return salary.ReconciledRow{
			Record:        rec,
			Status:        salary.StatusResolved,
			AmountDisplay: []string{rec.SalaryAmount.String()},
		}
	}

	result, err := s.Compute(ctx, rec.Employee.EmployeeCode, rec.Month, rec.Year)
	if err != nil {
		// Transport failure, not a calculation failure: the row stays
		// pending and keeps its display convention.
		return salary.ReconciledRow{
			Record:        rec,
			Status:        salary.StatusPending,
			AmountDisplay: []string{"N/A"},
			Err:           err,
		}
	}

	if result.Record != nil && result.Record.Resolved() {
		resolved := *result.Record
		return salary.ReconciledRow{
			Record:        resolved,
			Status:        salary.StatusResolved,
			AmountDisplay: []string{resolved.SalaryAmount.String()},
		}
	}

	if len(result.Errors) > 0 {
		var lines []string
		for _, calcErr := range result.Errors {
			for _, fieldErr := range calcErr.Errors {
				lines = append(lines, calcErr.Date+"\t"+fieldErr.Message)
			}
		}
		return salary.ReconciledRow{
			Record:        rec,
			Status:        salary.StatusFailed,
			Errors:        result.Errors,
			AmountDisplay: lines,
		}
	}

	return salary.ReconciledRow{
		Record:        rec,
		Status:        salary.StatusPending,
		AmountDisplay: []string{"N/A"},
		Err:           salary.ErrEmptyComputeResult,
	}
}

// ReconcilePage resolves every pending record of the displayed page before
// the page renders as loaded. Compute calls fan out with bounded
// concurrency; each row's failure stays on that row and never fails the
// page.
func (s *Service) ReconcilePage(ctx context.Context, records []salary.Record) []salary.ReconciledRow {
	done := s.gauge.Start()
	defer done()

	rows := make([]salary.ReconciledRow, len(records))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			rows[i] = s.ResolveRow(ctx, rec)
			return nil
		})
	}
	// Row errors are aggregated in the rows themselves.
	_ = g.Wait()

	return rows
}

// Detail assembles the salary detail view: the authoritative record, its
// attendance window, and, for an unresolved record, one compute attempt
// whose error list is mapped onto the grid. The error list is rebuilt from
// scratch on every attempt; stale errors never survive a recomputation.
func (s *Service) Detail(ctx context.Context, id int64) (salary.Detail, error) {
	done := s.gauge.Start()
	defer done()

	rec, err := s.gw.GetSalary(ctx, id)
	if err != nil {
		return salary.Detail{}, err
	}

	records, err := s.gw.MonthlyAttendance(ctx, rec.Employee.EmployeeCode, rec.Month, rec.Year)
	if err != nil {
		return salary.Detail{}, err
	}

	status := salary.StatusResolved
	var calcErrs []salary.CalculationError
	var warning string

	if !rec.Resolved() {
		status = salary.StatusPending
		result, err := s.Compute(ctx, rec.Employee.EmployeeCode, rec.Month, rec.Year)
		switch {
		case err != nil:
			warning = "salary computation could not be attempted"
		case result.Record != nil && result.Record.Resolved():
			// Replace local state with the authoritative record and a
			// fresh attendance window.
			rec, err = s.gw.GetSalary(ctx, id)
			if err != nil {
				return salary.Detail{}, err
			}
			records, err = s.gw.MonthlyAttendance(ctx, rec.Employee.EmployeeCode, rec.Month, rec.Year)
			if err != nil {
				return salary.Detail{}, err
			}
			// The re-fetch is authoritative: if the backend's read lags
			// the computation, the record is still pending.
			if rec.Resolved() {
				status = salary.StatusResolved
			} else {
				warning = "salary recomputed but the record is not yet updated"
			}
		case len(result.Errors) > 0:
			status = salary.StatusFailed
			calcErrs = result.Errors
		default:
			warning = "salary computation returned no result"
		}
	}

	return salary.Detail{
		Record:  rec,
		Status:  status,
		Errors:  calcErrs,
		Grid:    BuildGrid(records, calcErrs),
		Warning: warning,
	}, nil
}

// Export downloads the backend's summary workbook for the given filter.
func (s *Service) Export(ctx context.Context, filter salary.ExportFilter) ([]byte, string, error) {
	done := s.gauge.Start()
	defer done()
	return s.gw.ExportSummary(ctx, filter)
}

// ExportAnnotatedPage builds a workbook from the view's currently displayed
// page, reconciled, so failed rows carry their calculation errors. The
// backend export cannot include those: they exist only in client-side
// reconciliation state.
func (s *Service) ExportAnnotatedPage(ctx context.Context, viewID string) ([]byte, string, error) {
	snap := s.views.Get(viewID).Snapshot()
	rows := s.ReconcilePage(ctx, snap.Rows)

	payload, err := ExportAnnotated(rows)
	if err != nil {
		return nil, "", err
	}
	return payload, "annotated-" + FilterFromState(snap.State).Filename(), nil
}

// FilterFromState derives the export scope from a table's query state.
func FilterFromState(state query.State) salary.ExportFilter {
	filter := salary.ExportFilter{}
	if vals := state.Filters["month"]; len(vals) == 1 {
		if month, err := strconv.Atoi(vals[0]); err == nil {
			filter.Month = &month
		}
	}
	if vals := state.Filters["year"]; len(vals) == 1 {
		if year, err := strconv.Atoi(vals[0]); err == nil {
			filter.Year = &year
		}
	}
	filter.Departments = state.Filters["departments"]
	return filter
}
