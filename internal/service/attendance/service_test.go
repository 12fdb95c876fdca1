package attendance

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paytrack/payroll-console-go/internal/domain/attendance"
	"github.com/paytrack/payroll-console-go/internal/domain/employee"
	"github.com/paytrack/payroll-console-go/internal/domain/salary"
	"github.com/paytrack/payroll-console-go/internal/gateway"
	"github.com/paytrack/payroll-console-go/internal/pkg/activity"
	"github.com/paytrack/payroll-console-go/internal/pkg/validator"
	salaryService "github.com/paytrack/payroll-console-go/internal/service/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	updateAttendance  func(ctx context.Context, id int64, patch attendance.Patch) (attendance.Record, error)
	monthlyAttendance func(ctx context.Context, employeeCode string, month, year int) ([]attendance.Record, error)
	computeSalary     func(ctx context.Context, employeeCode string, month, year int) (salary.ComputeResult, error)
	getSalary         func(ctx context.Context, id int64) (salary.Record, error)

	mu    sync.Mutex
	steps []string
}

func (f *fakeGateway) step(name string) {
	f.mu.Lock()
	f.steps = append(f.steps, name)
	f.mu.Unlock()
}

func (f *fakeGateway) stepOrder() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.steps...)
}

func (f *fakeGateway) UpdateAttendance(ctx context.Context, id int64, patch attendance.Patch) (attendance.Record, error) {
	f.step("patch")
	return f.updateAttendance(ctx, id, patch)
}

func (f *fakeGateway) MonthlyAttendance(ctx context.Context, code string, month, year int) ([]attendance.Record, error) {
	f.step("attendance")
	return f.monthlyAttendance(ctx, code, month, year)
}

func (f *fakeGateway) ComputeSalary(ctx context.Context, code string, month, year int) (salary.ComputeResult, error) {
	f.step("compute")
	return f.computeSalary(ctx, code, month, year)
}

func (f *fakeGateway) GetSalary(ctx context.Context, id int64) (salary.Record, error) {
	f.step("salary")
	return f.getSalary(ctx, id)
}

func (f *fakeGateway) ListSalaries(ctx context.Context, query url.Values) (gateway.Page[salary.Record], error) {
	return gateway.Page[salary.Record]{}, nil
}

func (f *fakeGateway) ExportSummary(ctx context.Context, filter salary.ExportFilter) ([]byte, string, error) {
	return nil, "", nil
}

func newTestService(gw *fakeGateway) *Service {
	gauge := &activity.Gauge{}
	reconciler := salaryService.NewService(gw, gauge, 1, 10)
	return NewService(gw, reconciler, gauge)
}

func strptr(v string) *string { return &v }

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func patchedRecord() attendance.Record {
	return attendance.Record{
		ID: 12, EmployeeCode: "E100", Date: "2024-05-03",
		MorningClockIn: strptr("08:00:00"), MorningClockOut: strptr("12:00:00"),
		AfternoonClockIn: strptr("13:00:00"), AfternoonClockOut: strptr("17:30:00"),
	}
}

func TestUpdateDrivesReconciliationInOrder(t *testing.T) {
	resolved := salary.Record{
		ID:           1,
		Employee:     employee.Employee{EmployeeCode: "E100"},
		Month:        5, Year: 2024,
		SalaryAmount: amount("1250.50"),
	}

	gw := &fakeGateway{
		updateAttendance: func(ctx context.Context, id int64, patch attendance.Patch) (attendance.Record, error) {
			assert.Equal(t, int64(12), id)
			require.NotNil(t, patch.MorningClockIn)
			assert.Equal(t, "08:00", *patch.MorningClockIn)
			return patchedRecord(), nil
		},
		monthlyAttendance: func(ctx context.Context, code string, month, year int) ([]attendance.Record, error) {
			assert.Equal(t, "E100", code)
			assert.Equal(t, 5, month)
			assert.Equal(t, 2024, year)
			return []attendance.Record{patchedRecord()}, nil
		},
		computeSalary: func(ctx context.Context, code string, month, year int) (salary.ComputeResult, error) {
			return salary.ComputeResult{Record: &resolved}, nil
		},
		getSalary: func(ctx context.Context, id int64) (salary.Record, error) {
			assert.Equal(t, int64(1), id)
			return resolved, nil
		},
	}
	svc := newTestService(gw)

	req := attendance.UpdateRequest{
		ID:                12,
		MorningClockIn:    strptr("08:00"),
		MorningClockOut:   strptr("12:00"),
		AfternoonClockIn:  strptr("13:00"),
		AfternoonClockOut: strptr("17:30"),
	}
	detail, err := svc.Update(context.Background(), req, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"patch", "attendance", "compute", "salary"}, gw.stepOrder())
	assert.Equal(t, salary.StatusResolved, detail.Status)
	assert.Empty(t, detail.Errors, "a successful recompute leaves no stale errors behind")
	require.Len(t, detail.Grid, 1)
	for _, cell := range detail.Grid[0].Cells {
		assert.False(t, cell.Missing)
	}
}

func TestUpdateBlankFieldBecomesNull(t *testing.T) {
	gw := &fakeGateway{
		updateAttendance: func(ctx context.Context, id int64, patch attendance.Patch) (attendance.Record, error) {
			// Blank input clears the stored value: the key is sent, the
			// value is null.
			assert.Nil(t, patch.AfternoonClockOut)
			require.NotNil(t, patch.MorningClockIn)
			return patchedRecord(), nil
		},
		monthlyAttendance: func(ctx context.Context, code string, month, year int) ([]attendance.Record, error) {
			return nil, nil
		},
		computeSalary: func(ctx context.Context, code string, month, year int) (salary.ComputeResult, error) {
			return salary.ComputeResult{Errors: []salary.CalculationError{{Date: "2024-05-03"}}}, nil
		},
		getSalary: func(ctx context.Context, id int64) (salary.Record, error) {
			return salary.Record{ID: 1, Employee: employee.Employee{EmployeeCode: "E100"}, Month: 5, Year: 2024}, nil
		},
	}
	svc := newTestService(gw)

	req := attendance.UpdateRequest{
		ID:                12,
		MorningClockIn:    strptr("08:00"),
		AfternoonClockOut: strptr(""),
	}
	detail, err := svc.Update(context.Background(), req, 1)
	require.NoError(t, err)
	assert.Equal(t, salary.StatusFailed, detail.Status)
}

func TestUpdateRejectsMalformedTime(t *testing.T) {
	gw := &fakeGateway{
		updateAttendance: func(ctx context.Context, id int64, patch attendance.Patch) (attendance.Record, error) {
			t.Fatal("invalid input must not reach the backend")
			return attendance.Record{}, nil
		},
	}
	svc := newTestService(gw)

	req := attendance.UpdateRequest{ID: 12, MorningClockIn: strptr("25:00")}
	_, err := svc.Update(context.Background(), req, 1)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Empty(t, gw.stepOrder())
}

func TestUpdateFailedPatchKeepsEditOpen(t *testing.T) {
	gw := &fakeGateway{
		updateAttendance: func(ctx context.Context, id int64, patch attendance.Patch) (attendance.Record, error) {
			return attendance.Record{}, &gateway.ValidationError{Fields: map[string]string{
				"morning_clock_in": "invalid",
			}}
		},
	}
	svc := newTestService(gw)

	_, err := svc.Update(context.Background(), attendance.UpdateRequest{ID: 12}, 1)

	// The write never happened: no RefreshError, the raw backend rejection
	// comes through so the form can surface it.
	var refresh *attendance.RefreshError
	require.Error(t, err)
	assert.False(t, errors.As(err, &refresh))

	var verr *gateway.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid", verr.Fields["morning_clock_in"])
}

func TestUpdateFailureAfterPatchIsRefreshError(t *testing.T) {
	cases := []struct {
		name     string
		gw       *fakeGateway
		wantStep string
	}{
		{
			name: "attendance refetch fails",
			gw: &fakeGateway{
				updateAttendance: func(ctx context.Context, id int64, patch attendance.Patch) (attendance.Record, error) {
					return patchedRecord(), nil
				},
				monthlyAttendance: func(ctx context.Context, code string, month, year int) ([]attendance.Record, error) {
					return nil, &gateway.TransportError{Op: "monthly attendance", StatusCode: 502}
				},
			},
			wantStep: "attendance refresh",
		},
		{
			name: "compute fails",
			gw: &fakeGateway{
				updateAttendance: func(ctx context.Context, id int64, patch attendance.Patch) (attendance.Record, error) {
					return patchedRecord(), nil
				},
				monthlyAttendance: func(ctx context.Context, code string, month, year int) ([]attendance.Record, error) {
					return nil, nil
				},
				computeSalary: func(ctx context.Context, code string, month, year int) (salary.ComputeResult, error) {
					return salary.ComputeResult{}, &gateway.TransportError{Op: "compute salary", StatusCode: 503}
				},
			},
			wantStep: "salary computation",
		},
		{
			name: "salary refetch fails",
			gw: &fakeGateway{
				updateAttendance: func(ctx context.Context, id int64, patch attendance.Patch) (attendance.Record, error) {
					return patchedRecord(), nil
				},
				monthlyAttendance: func(ctx context.Context, code string, month, year int) ([]attendance.Record, error) {
					return nil, nil
				},
				computeSalary: func(ctx context.Context, code string, month, year int) (salary.ComputeResult, error) {
					return salary.ComputeResult{Record: &salary.Record{}}, nil
				},
				getSalary: func(ctx context.Context, id int64) (salary.Record, error) {
					return salary.Record{}, &gateway.TransportError{Op: "get salary", StatusCode: 500}
				},
			},
			wantStep: "salary refresh",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc := newTestService(c.gw)

			_, err := svc.Update(context.Background(), attendance.UpdateRequest{ID: 12}, 1)

			var refresh *attendance.RefreshError
			require.ErrorAs(t, err, &refresh)
			assert.Equal(t, c.wantStep, refresh.Step)
		})
	}
}

func TestUpdateRecomputesAgainstPatchedData(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})

	resolved := salary.Record{
		ID:           1,
		Employee:     employee.Employee{EmployeeCode: "E100"},
		Month:        5,
		Year:         2024,
		SalaryAmount: amount("1250.50"),
	}

	gw := &fakeGateway{
		updateAttendance: func(ctx context.Context, id int64, patch attendance.Patch) (attendance.Record, error) {
			return patchedRecord(), nil
		},
		monthlyAttendance: func(ctx context.Context, code string, month, year int) ([]attendance.Record, error) {
			return []attendance.Record{patchedRecord()}, nil
		},
		computeSalary: func(ctx context.Context, code string, month, year int) (salary.ComputeResult, error) {
			if calls.Add(1) == 1 {
				// Issued before the patch, against the incomplete window.
				<-release
				return salary.ComputeResult{Errors: []salary.CalculationError{{
					Date:   "2024-05-03",
					Errors: []salary.FieldError{{ErrorType: attendance.FieldMorningClockIn, Message: "missing"}},
				}}}, nil
			}
			return salary.ComputeResult{Record: &resolved}, nil
		},
		getSalary: func(ctx context.Context, id int64) (salary.Record, error) {
			return resolved, nil
		},
	}

	gauge := &activity.Gauge{}
	reconciler := salaryService.NewService(gw, gauge, 1, 10)
	svc := NewService(gw, reconciler, gauge)

	// A page reconciliation has a compute in flight when the edit lands.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		reconciler.Compute(context.Background(), "E100", 5, 2024)
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 2*time.Millisecond)

	req := attendance.UpdateRequest{ID: 12, MorningClockIn: strptr("08:00")}
	detail, err := svc.Update(context.Background(), req, 1)
	require.NoError(t, err)

	// The edit flow must recompute against the patched data, never adopt
	// the stale in-flight result and its pre-patch error list.
	assert.Equal(t, salary.StatusResolved, detail.Status)
	assert.Empty(t, detail.Errors)
	assert.Equal(t, int64(2), calls.Load())

	close(release)
	wg.Wait()
}

func TestUpdateTracksActivityGauge(t *testing.T) {
	gauge := &activity.Gauge{}
	resolved := salary.Record{
		ID:           1,
		Employee:     employee.Employee{EmployeeCode: "E100"},
		Month:        5,
		Year:         2024,
		SalaryAmount: amount("980"),
	}

	gw := &fakeGateway{
		updateAttendance: func(ctx context.Context, id int64, patch attendance.Patch) (attendance.Record, error) {
			assert.True(t, gauge.Busy(), "the edit flow counts as in-flight work")
			return patchedRecord(), nil
		},
		monthlyAttendance: func(ctx context.Context, code string, month, year int) ([]attendance.Record, error) {
			return nil, nil
		},
		computeSalary: func(ctx context.Context, code string, month, year int) (salary.ComputeResult, error) {
			return salary.ComputeResult{Record: &resolved}, nil
		},
		getSalary: func(ctx context.Context, id int64) (salary.Record, error) {
			return resolved, nil
		},
	}
	reconciler := salaryService.NewService(gw, gauge, 1, 10)
	svc := NewService(gw, reconciler, gauge)

	_, err := svc.Update(context.Background(), attendance.UpdateRequest{ID: 12}, 1)
	require.NoError(t, err)
	assert.False(t, gauge.Busy())
}
