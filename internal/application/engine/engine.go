// Package engine provides the per-frame driver that owns the timing core.
//
// One Engine is one simulation: it owns the frame clock, the stopwatch
// registry, the scheduler and the keyboard. Nothing in the core is global,
// so tests can run any number of engines side by side.
package engine

import (
	"log"

	"github.com/younwookim/auraboros/internal/domain/clock"
	"github.com/younwookim/auraboros/internal/domain/keyinput"
	"github.com/younwookim/auraboros/internal/domain/schedule"
	"github.com/younwookim/auraboros/internal/domain/timer"
)

// Recorder receives every frame's source timestamp, input edges and
// whether the keyboard was reset that frame. The timestamp is the raw
// source reading, so replaying it through the same pause and resume calls
// reproduces the session.
type Recorder interface {
	RecordFrame(frame int, now clock.Millis, edges []keyinput.Edge, released bool)
}

// Engine drives stopwatches, scheduled callbacks and key actions once per frame.
type Engine struct {
	Timers    *timer.Registry
	Scheduler *schedule.Scheduler
	Keyboard  *keyinput.Keyboard

	clock    *clock.Frame
	source   keyinput.EdgeSource
	recorder Recorder
	logger   *log.Logger
	edges    []keyinput.Edge
	release  bool
	frame    int
}

// New creates an engine reading time from src and input from edges.
// edges may be nil for simulations without input. A nil logger uses
// log.Default().
func New(src clock.Clock, edges keyinput.EdgeSource, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	fc := clock.NewFrame(src)
	return &Engine{
		Timers:    timer.NewRegistry(fc),
		Scheduler: schedule.New(fc, logger),
		Keyboard:  keyinput.NewKeyboard(),
		clock:     fc,
		source:    edges,
		logger:    logger,
	}
}

// Step runs one frame:
//  1. sample the clock once
//  2. refresh every stopwatch
//  3. fire due scheduled callbacks
//  4. apply a pending ReleaseAll
//  5. deliver input edges and poll the current keymap
func (e *Engine) Step() {
	e.clock.Sample()
	e.Timers.UpdateAll()
	e.Scheduler.Execute()

	e.edges = e.edges[:0]
	if e.source != nil {
		e.edges = e.source.AppendEdges(e.edges)
	}
	if e.recorder != nil {
		e.recorder.RecordFrame(e.frame, e.clock.Raw(), e.edges, e.release)
	}
	if e.release {
		e.Keyboard.ReleaseAll()
		e.release = false
	}
	e.Keyboard.HandleEdges(e.edges)
	e.Keyboard.Poll()

	e.frame++
}

// ReleaseAll silently resets every key of the current layout during the
// next Step, before its input edges are delivered. Used on focus loss.
func (e *Engine) ReleaseAll() {
	e.release = true
}

// Clock returns the frame clock. Its Now is constant within a frame.
func (e *Engine) Clock() clock.Clock {
	return e.clock
}

// Now returns the current frame's timestamp.
func (e *Engine) Now() clock.Millis {
	return e.clock.Now()
}

// Frame returns how many frames have been stepped.
func (e *Engine) Frame() int {
	return e.frame
}

// Edges returns the edges delivered in the last Step.
func (e *Engine) Edges() []keyinput.Edge {
	return e.edges
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *log.Logger {
	return e.logger
}

// SetRecorder installs r to observe every frame. nil disables recording.
func (e *Engine) SetRecorder(r Recorder) {
	e.recorder = r
}

// Pause freezes the frame clock. Stopwatches, scheduled callbacks and
// animations stand still until Resume; key actions with zero delay still
// fire on press.
func (e *Engine) Pause() {
	e.clock.Pause()
}

// Resume unfreezes the frame clock.
func (e *Engine) Resume() {
	e.clock.Resume()
}

// Paused reports whether the frame clock is frozen.
func (e *Engine) Paused() bool {
	return e.clock.Paused()
}
