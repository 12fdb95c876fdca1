// Package employee binds the employee table to its query controllers. The
// collection is read-only; all this service does is drive the fetch cycle.
package employee

import (
	"context"
	"net/url"

	"github.com/paytrack/payroll-console-go/internal/domain/employee"
	"github.com/paytrack/payroll-console-go/internal/domain/query"
	"github.com/paytrack/payroll-console-go/internal/gateway"
	"github.com/paytrack/payroll-console-go/internal/pkg/activity"
	"github.com/paytrack/payroll-console-go/internal/service/listing"
)

// Gateway is the slice of the backend client the employee table uses.
type Gateway interface {
	ListEmployees(ctx context.Context, query url.Values) (gateway.Page[employee.Employee], error)
}

type Service struct {
	views *listing.Registry[employee.Employee]
}

func NewService(gw Gateway, gauge *activity.Gauge, defaultPageSize int) *Service {
	return &Service{
		views: listing.NewRegistry(func() *listing.Controller[employee.Employee] {
			return listing.NewController(query.New(defaultPageSize), func(ctx context.Context, state query.State) (gateway.Page[employee.Employee], error) {
				return gw.ListEmployees(ctx, state.Values())
			}, gauge)
		}),
	}
}

// List applies the requested query state to the view's controller.
func (s *Service) List(ctx context.Context, viewID string, state query.State) (listing.Snapshot[employee.Employee], error) {
	return s.views.Get(viewID).Apply(ctx, state)
}
