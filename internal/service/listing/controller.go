// Package listing implements the server-synchronized table controller: one
// Controller owns the query state of one mounted table, turns it into a
// backend fetch and reconciles the response with what the view shows.
package listing

import (
	"context"
	"sync"

	"github.com/paytrack/payroll-console-go/internal/domain/query"
	"github.com/paytrack/payroll-console-go/internal/gateway"
	"github.com/paytrack/payroll-console-go/internal/pkg/activity"
)

// FetchFunc executes one remote list fetch for the given query state.
type FetchFunc[T any] func(ctx context.Context, state query.State) (gateway.Page[T], error)

// Snapshot is what the table renders: the rows and total of the most
// recently applied fetch plus the state that produced them.
type Snapshot[T any] struct {
	Rows  []T
	Total int64
	State query.State
}

// Controller owns pagination, sort, filters and search for one table
// instance. Fetches are sequence-numbered at issue time: a response that is
// not newer than the last applied one is discarded, so a stale fetch can
// never overwrite the result of a later one.
type Controller[T any] struct {
	mu      sync.Mutex
	state   query.State
	rows    []T
	total   int64
	issued  uint64
	applied uint64

	fetch FetchFunc[T]
	gauge *activity.Gauge
}

func NewController[T any](initial query.State, fetch FetchFunc[T], gauge *activity.Gauge) *Controller[T] {
	return &Controller[T]{
		state: initial.Clone(),
		fetch: fetch,
		gauge: gauge,
	}
}

// Apply moves the controller to the requested state and issues exactly one
// fetch. Changing search or filters resets the page to 1 before fetching;
// page and sort changes alone preserve the current scope. The first applied
// state is adopted wholesale, so a table restored from a URL (or served by a
// throwaway controller) opens on whatever page it names. On a failed fetch
// the previously displayed rows and total stay visible and the error is
// returned for the view to downgrade to a notification.
func (c *Controller[T]) Apply(ctx context.Context, requested query.State) (Snapshot[T], error) {
	c.mu.Lock()
	// Stored state never aliases the caller's filter map: scope comparison
	// would otherwise compare an in-place mutated map against itself.
	next := requested.Clone()
	if c.issued > 0 && !c.state.SameScope(next) {
		// A new scope must never open on an out-of-range page.
		next.Page = 1
	}
	c.state = next
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	done := c.gauge.Start()
	page, err := c.fetch(ctx, next)
	done()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		return Snapshot[T]{Rows: c.rows, Total: c.total, State: c.state.Clone()}, err
	}

	if seq > c.applied {
		c.applied = seq
		c.rows = page.Results
		c.total = page.Count
	}
	return Snapshot[T]{Rows: c.rows, Total: c.total, State: c.state.Clone()}, nil
}

// Snapshot returns the currently displayed rows, total and state without
// issuing a fetch.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[T]{Rows: c.rows, Total: c.total, State: c.state.Clone()}
}
