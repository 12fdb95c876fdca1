// Package activity tracks in-flight remote work for the loading indicator.
//
// The gauge is a reference count, not a boolean: two overlapping fetches
// each increment it, and a completing fetch can only release its own
// reference, so a superseded request never clears an indicator owned by a
// newer one.
package activity

import "sync/atomic"

type Gauge struct {
	n atomic.Int64
}

// Start registers one unit of in-flight work and returns its release
// function. The release is idempotent.
func (g *Gauge) Start() (done func()) {
	g.n.Add(1)
	var released atomic.Bool
	return func() {
		if released.CompareAndSwap(false, true) {
			g.n.Add(-1)
		}
	}
}

// Busy reports whether any work is in flight.
func (g *Gauge) Busy() bool {
	return g.n.Load() > 0
}

// Count returns the number of in-flight units.
func (g *Gauge) Count() int64 {
	return g.n.Load()
}
