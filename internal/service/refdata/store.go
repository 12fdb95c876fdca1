// Package refdata caches the reference lists that feed table filters.
// The store has its own lifecycle, decoupled from any view: it is filled on
// first use and refreshable on demand, so filters reflect live reference
// data regardless of which table mounted first.
package refdata

import (
	"context"
	"sync"

	"github.com/paytrack/payroll-console-go/internal/domain/department"
	"github.com/paytrack/payroll-console-go/internal/domain/salary"
	"github.com/paytrack/payroll-console-go/internal/pkg/activity"
)

// Source is the slice of the backend client the store reads through to.
type Source interface {
	ListDepartments(ctx context.Context) ([]department.Department, error)
	ListPeriods(ctx context.Context) (salary.PeriodOptions, error)
}

type Store struct {
	src   Source
	gauge *activity.Gauge

	mu          sync.Mutex
	departments []department.Department
	periods     *salary.PeriodOptions
}

func NewStore(src Source, gauge *activity.Gauge) *Store {
	return &Store{src: src, gauge: gauge}
}

// Departments returns the cached department list, fetching it on first use.
func (s *Store) Departments(ctx context.Context) ([]department.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.departments == nil {
		done := s.gauge.Start()
		departments, err := s.src.ListDepartments(ctx)
		done()
		if err != nil {
			return nil, err
		}
		s.departments = departments
	}
	return s.departments, nil
}

// Periods returns the cached month/year option sets, fetching on first use.
func (s *Store) Periods(ctx context.Context) (salary.PeriodOptions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.periods == nil {
		done := s.gauge.Start()
		periods, err := s.src.ListPeriods(ctx)
		done()
		if err != nil {
			return salary.PeriodOptions{}, err
		}
		s.periods = &periods
	}
	return *s.periods, nil
}

// Refresh re-fetches both reference lists, replacing the cache. A failed
// refresh leaves the previous cache intact.
func (s *Store) Refresh(ctx context.Context) error {
	done := s.gauge.Start()
	defer done()

	departments, err := s.src.ListDepartments(ctx)
	if err != nil {
		return err
	}
	periods, err := s.src.ListPeriods(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments = departments
	s.periods = &periods
	return nil
}
