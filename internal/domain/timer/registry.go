package timer

import "github.com/younwookim/auraboros/internal/domain/clock"

// Registry owns every live Stopwatch of one simulation and refreshes them
// together, so the clock is sampled once per frame rather than once per timer.
type Registry struct {
	clock   clock.Clock
	watches []*Stopwatch
}

// NewRegistry creates an empty registry reading time from c.
func NewRegistry(c clock.Clock) *Registry {
	return &Registry{clock: c}
}

// New creates a registered Stopwatch in the never-started state.
func (r *Registry) New() *Stopwatch {
	s := &Stopwatch{clock: r.clock}
	r.watches = append(r.watches, s)
	return s
}

// Forget unregisters s. It keeps its last value but is no longer refreshed.
func (r *Registry) Forget(s *Stopwatch) {
	for i, w := range r.watches {
		if w == s {
			r.watches = append(r.watches[:i], r.watches[i+1:]...)
			return
		}
	}
}

// UpdateAll refreshes every registered Stopwatch with one clock sample.
func (r *Registry) UpdateAll() {
	now := r.clock.Now()
	for _, s := range r.watches {
		s.update(now)
	}
}

// Len returns the number of registered stopwatches.
func (r *Registry) Len() int {
	return len(r.watches)
}
