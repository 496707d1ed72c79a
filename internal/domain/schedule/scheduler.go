// Package schedule runs callbacks at fixed intervals from the frame loop.
//
// Entries are registered inactive and fire only after Activate. Execute is
// called once per frame; an entry is due once its interval has elapsed since
// it last fired. Firing is not drift corrected: the next interval is measured
// from the actual fire time, so entries may fire late but never early.
package schedule

import (
	"errors"
	"fmt"
	"log"

	"github.com/younwookim/auraboros/internal/domain/clock"
)

var (
	// ErrNotFound is returned for IDs that were never added or were removed.
	ErrNotFound = errors.New("schedule entry not found")
	// ErrInvalidInterval is returned for negative intervals.
	ErrInvalidInterval = errors.New("invalid schedule interval")
	// ErrNilCallback is returned when adding a nil callback.
	ErrNilCallback = errors.New("nil schedule callback")
)

// EntryID identifies a registered callback.
type EntryID uint64

type entry struct {
	id          EntryID
	callback    func()
	interval    clock.Millis
	lastFire    clock.Millis
	added       clock.Millis
	deactivated clock.Millis
	active      bool
	removed     bool
}

// Scheduler is a registry of interval callbacks.
type Scheduler struct {
	clock   clock.Clock
	logger  *log.Logger
	nextID  EntryID
	entries []*entry
	byID    map[EntryID]*entry

	executing bool
	dirty     bool
}

// New creates a Scheduler reading time from c. A nil logger uses log.Default().
func New(c clock.Clock, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		clock:  c,
		logger: logger,
		nextID: 1,
		byID:   make(map[EntryID]*entry),
	}
}

// Add registers callback to run every interval milliseconds once activated.
func (s *Scheduler) Add(callback func(), interval clock.Millis) (EntryID, error) {
	if callback == nil {
		return 0, ErrNilCallback
	}
	if interval < 0 {
		return 0, fmt.Errorf("failed to add entry with interval %d: %w", interval, ErrInvalidInterval)
	}

	e := &entry{
		id:       s.nextID,
		callback: callback,
		interval: interval,
		added:    s.clock.Now(),
	}
	s.nextID++
	s.entries = append(s.entries, e)
	s.byID[e.id] = e
	return e.id, nil
}

// Activate makes the entry eligible to fire one interval from now.
// Activating an already active entry changes nothing.
func (s *Scheduler) Activate(id EntryID) error {
	e, err := s.lookup(id)
	if err != nil {
		return fmt.Errorf("failed to activate: %w", err)
	}
	if e.active {
		return nil
	}
	e.active = true
	e.lastFire = s.clock.Now()
	return nil
}

// Deactivate stops the entry from firing until it is activated again.
func (s *Scheduler) Deactivate(id EntryID) error {
	e, err := s.lookup(id)
	if err != nil {
		return fmt.Errorf("failed to deactivate: %w", err)
	}
	if !e.active {
		return nil
	}
	e.active = false
	e.deactivated = s.clock.Now()
	return nil
}

// Remove deletes the entry permanently.
func (s *Scheduler) Remove(id EntryID) error {
	e, err := s.lookup(id)
	if err != nil {
		return fmt.Errorf("failed to remove: %w", err)
	}
	e.removed = true
	e.active = false
	delete(s.byID, id)
	if s.executing {
		s.dirty = true
		return nil
	}
	s.compact()
	return nil
}

// Rewind restarts the entry's interval from now.
func (s *Scheduler) Rewind(id EntryID) error {
	e, err := s.lookup(id)
	if err != nil {
		return fmt.Errorf("failed to rewind: %w", err)
	}
	e.lastFire = s.clock.Now()
	return nil
}

// SetInterval changes the entry's interval. The last fire time is kept.
func (s *Scheduler) SetInterval(id EntryID, interval clock.Millis) error {
	if interval < 0 {
		return fmt.Errorf("failed to set interval %d: %w", interval, ErrInvalidInterval)
	}
	e, err := s.lookup(id)
	if err != nil {
		return fmt.Errorf("failed to set interval: %w", err)
	}
	e.interval = interval
	return nil
}

// IsScheduled reports whether id is registered.
func (s *Scheduler) IsScheduled(id EntryID) bool {
	_, ok := s.byID[id]
	return ok
}

// IsActive reports whether id is registered and active.
func (s *Scheduler) IsActive(id EntryID) bool {
	e, ok := s.byID[id]
	return ok && e.active
}

// EntryInfo is a snapshot of an entry's timing state.
type EntryInfo struct {
	Interval    clock.Millis
	LastFire    clock.Millis
	Added       clock.Millis
	Deactivated clock.Millis
	Active      bool
}

// Info returns a snapshot of the entry's timing state.
func (s *Scheduler) Info(id EntryID) (EntryInfo, error) {
	e, err := s.lookup(id)
	if err != nil {
		return EntryInfo{}, err
	}
	return EntryInfo{
		Interval:    e.interval,
		LastFire:    e.lastFire,
		Added:       e.added,
		Deactivated: e.deactivated,
		Active:      e.active,
	}, nil
}

// Len returns the number of registered entries.
func (s *Scheduler) Len() int {
	return len(s.byID)
}

// Execute fires every due entry once and returns how many were invoked.
//
// The due set is taken before any callback runs, in registration order.
// Entries added, removed or deactivated by a callback take effect on the
// next call. A panicking callback is logged and does not stop the others.
func (s *Scheduler) Execute() int {
	now := s.clock.Now()

	var due []*entry
	for _, e := range s.entries {
		if e.active && !e.removed && now-e.lastFire >= e.interval {
			due = append(due, e)
		}
	}

	s.executing = true
	for _, e := range due {
		s.invoke(e)
		e.lastFire = now
	}
	s.executing = false

	if s.dirty {
		s.compact()
	}
	return len(due)
}

func (s *Scheduler) invoke(e *entry) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("schedule: entry %d panicked: %v", e.id, r)
		}
	}()
	e.callback()
}

func (s *Scheduler) lookup(id EntryID) (*entry, error) {
	e, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	return e, nil
}

func (s *Scheduler) compact() {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if !e.removed {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = kept
	s.dirty = false
}
