// Package timer provides pausable stopwatches refreshed once per frame.
package timer

import "github.com/younwookim/auraboros/internal/domain/clock"

// Stopwatch accumulates elapsed active time with pause/resume.
//
// Read returns the time cached by the last refresh, so a Stopwatch owned
// by a Registry only moves once per frame.
type Stopwatch struct {
	clock clock.Clock

	running   bool
	started   bool
	startTime clock.Millis
	lastTick  clock.Millis
	pauseTime clock.Millis
}

// Start begins or resumes timing. Resuming shifts the start time forward by
// the time spent stopped so Read continues from where it left off.
func (s *Stopwatch) Start() {
	now := s.clock.Now()
	switch {
	case !s.started:
		s.started = true
		s.startTime = now
		s.lastTick = now
		s.pauseTime = now
	case !s.running:
		s.startTime += now - s.lastTick
		s.lastTick = now
	}
	s.running = true
}

// Stop pauses timing. The start time is left alone.
func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}
	now := s.clock.Now()
	s.lastTick = now
	s.pauseTime = now
	s.running = false
}

// Reset returns the stopwatch to its never-started state.
func (s *Stopwatch) Reset() {
	s.running = false
	s.started = false
	s.startTime = 0
	s.lastTick = 0
	s.pauseTime = 0
}

// Restart zeroes the elapsed time at the current instant and keeps running.
func (s *Stopwatch) Restart() {
	s.Reset()
	s.Start()
}

// Read returns elapsed active milliseconds, or 0 if never started.
func (s *Stopwatch) Read() clock.Millis {
	if !s.started {
		return 0
	}
	return s.lastTick - s.startTime
}

// ReadPausing returns how long the stopwatch has been stopped, or 0 while
// running or never started.
func (s *Stopwatch) ReadPausing() clock.Millis {
	if s.running || !s.started {
		return 0
	}
	return s.pauseTime - s.lastTick
}

// Running reports whether the stopwatch is timing.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Started reports whether Start has been called since the last Reset.
func (s *Stopwatch) Started() bool {
	return s.started
}

func (s *Stopwatch) update(now clock.Millis) {
	if s.running {
		s.lastTick = now
	} else if s.started {
		s.pauseTime = now
	}
}
