package listing

import (
	"sync"
	"time"
)

// A controller lives as long as its table is mounted in some browser tab.
// Views identify themselves with a client-generated view ID; idle entries
// are pruned so abandoned tabs do not accumulate.
const idleTTL = time.Hour

type entry[T any] struct {
	ctrl     *Controller[T]
	lastSeen time.Time
}

// Registry hands out one Controller per mounted view.
type Registry[T any] struct {
	mu            sync.Mutex
	views         map[string]*entry[T]
	newController func() *Controller[T]
	now           func() time.Time
}

func NewRegistry[T any](newController func() *Controller[T]) *Registry[T] {
	return &Registry[T]{
		views:         map[string]*entry[T]{},
		newController: newController,
		now:           time.Now,
	}
}

// Get returns the controller bound to viewID, creating it on first use
// (view mount). An empty viewID yields an unbound throwaway controller: it
// adopts the request's state wholesale (including the page, so anonymous
// clients can still paginate a filtered set), only the reset-on-change policy
// and stale-response tracking degrade to per-request scope.
func (r *Registry[T]) Get(viewID string) *Controller[T] {
	if viewID == "" {
		return r.newController()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, e := range r.views {
		if now.Sub(e.lastSeen) > idleTTL {
			delete(r.views, id)
		}
	}

	e, ok := r.views[viewID]
	if !ok {
		e = &entry[T]{ctrl: r.newController()}
		r.views[viewID] = e
	}
	e.lastSeen = now
	return e.ctrl
}
