package animation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/younwookim/auraboros/internal/domain/clock"
	"github.com/younwookim/auraboros/internal/domain/schedule"
)

var (
	// ErrUnknownAnimation is returned by Build for unregistered names.
	ErrUnknownAnimation = errors.New("unknown animation")
	// ErrUnknownFrames is returned when a spec references a missing frame set.
	ErrUnknownFrames = errors.New("unknown frame set")
)

// Spec describes how to build a named animation.
type Spec struct {
	Name      string
	Frames    string // frame set key
	Interval  clock.Millis
	LoopLimit int
	Autoplay  bool
}

// Library builds configured animations by name.
type Library[F any] struct {
	sched  *schedule.Scheduler
	frames map[string][]F
	specs  map[string]Spec
}

// NewLibrary creates an empty library whose animations run on sched.
func NewLibrary[F any](sched *schedule.Scheduler) *Library[F] {
	return &Library[F]{
		sched:  sched,
		frames: make(map[string][]F),
		specs:  make(map[string]Spec),
	}
}

// AddFrames registers a frame set under key, replacing any previous set.
func (l *Library[F]) AddFrames(key string, frames []F) {
	l.frames[key] = frames
}

// Define registers spec, replacing any spec with the same name.
func (l *Library[F]) Define(spec Spec) error {
	if _, ok := l.frames[spec.Frames]; !ok {
		return fmt.Errorf("animation %q references %q: %w", spec.Name, spec.Frames, ErrUnknownFrames)
	}
	l.specs[spec.Name] = spec
	return nil
}

// Build creates a new animation from the spec registered as name.
func (l *Library[F]) Build(name string) (*Animation[F], error) {
	spec, ok := l.specs[name]
	if !ok {
		return nil, fmt.Errorf("failed to build %q: %w", name, ErrUnknownAnimation)
	}

	a, err := New(l.sched, l.frames[spec.Frames])
	if err != nil {
		return nil, err
	}
	interval := spec.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	if err := a.SetInterval(interval); err != nil {
		a.Close()
		return nil, err
	}
	a.SetLoopLimit(spec.LoopLimit)
	if spec.Autoplay {
		a.Play()
	}
	return a, nil
}

// Names returns the registered animation names in sorted order.
func (l *Library[F]) Names() []string {
	names := make([]string, 0, len(l.specs))
	for name := range l.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
