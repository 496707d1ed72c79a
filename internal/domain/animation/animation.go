// Package animation plays frame sequences on top of the scheduler.
package animation

import (
	"errors"
	"fmt"

	"github.com/younwookim/auraboros/internal/domain/clock"
	"github.com/younwookim/auraboros/internal/domain/schedule"
)

// DefaultInterval advances an animation on every frame.
const DefaultInterval clock.Millis = 1

// Infinite is the loop limit of an animation that never stops on its own.
const Infinite = -1

// ErrFrameOutOfRange is returned by Seek for indexes outside the frame list.
var ErrFrameOutOfRange = errors.New("animation frame out of range")

// Animation advances through frames at a fixed interval.
//
// F is whatever the owner draws: an *ebiten.Image, a color, a sprite index.
// Each Animation owns exactly one scheduler entry for its whole lifetime;
// Play and Stop toggle that entry instead of removing it.
type Animation[F any] struct {
	sched    *schedule.Scheduler
	entry    schedule.EntryID
	frames   []F
	index    int
	interval clock.Millis

	playing   bool
	loopLimit int
	loopCount int

	onFrame  map[int][]func(frame int)
	onFinish func()
}

// New creates a stopped animation over frames with DefaultInterval and an
// infinite loop limit.
func New[F any](sched *schedule.Scheduler, frames []F) (*Animation[F], error) {
	a := &Animation[F]{
		sched:     sched,
		frames:    frames,
		interval:  DefaultInterval,
		loopLimit: Infinite,
	}
	id, err := sched.Add(a.tick, a.interval)
	if err != nil {
		return nil, fmt.Errorf("failed to register animation: %w", err)
	}
	a.entry = id
	return a, nil
}

// SetInterval changes the time between frames. It replaces the animation's
// scheduler entry with one at the new interval, keeping it active if it was.
func (a *Animation[F]) SetInterval(interval clock.Millis) error {
	id, err := a.sched.Add(a.tick, interval)
	if err != nil {
		return fmt.Errorf("failed to set animation interval: %w", err)
	}
	wasActive := a.sched.IsActive(a.entry)
	if err := a.sched.Remove(a.entry); err != nil && !errors.Is(err, schedule.ErrNotFound) {
		return err
	}
	a.entry = id
	a.interval = interval
	if wasActive {
		return a.sched.Activate(id)
	}
	return nil
}

// Interval returns the time between frames.
func (a *Animation[F]) Interval() clock.Millis {
	return a.interval
}

// SetLoopLimit sets how many full cycles play before the animation stops
// itself. Infinite (or any negative value) never stops.
func (a *Animation[F]) SetLoopLimit(n int) {
	a.loopLimit = n
}

// LoopLimit returns the configured loop budget.
func (a *Animation[F]) LoopLimit() int {
	return a.loopLimit
}

// Play starts or resumes the animation. Playing again after the loop budget
// ran out starts a fresh budget.
func (a *Animation[F]) Play() {
	if a.playing {
		return
	}
	if a.exhausted() {
		a.loopCount = 0
	}
	_ = a.sched.Activate(a.entry)
	a.playing = true
}

// Stop pauses the animation. Frame index and loop count are kept.
func (a *Animation[F]) Stop() {
	_ = a.sched.Deactivate(a.entry)
	a.playing = false
}

// Seek jumps to frame i.
func (a *Animation[F]) Seek(i int) error {
	if i < 0 || i >= len(a.frames) {
		return fmt.Errorf("failed to seek to %d of %d frames: %w", i, len(a.frames), ErrFrameOutOfRange)
	}
	a.index = i
	return nil
}

// Reset rewinds to the first frame, clears the loop count and restarts the
// interval so the next advance is a full interval away.
func (a *Animation[F]) Reset() {
	a.index = 0
	a.loopCount = 0
	_ = a.sched.Rewind(a.entry)
}

// Close removes the animation's scheduler entry. The animation must not be
// used afterwards.
func (a *Animation[F]) Close() {
	_ = a.sched.Remove(a.entry)
	a.playing = false
}

// Frame returns the current frame. ok is false for an empty animation.
func (a *Animation[F]) Frame() (frame F, ok bool) {
	if len(a.frames) == 0 {
		return frame, false
	}
	return a.frames[a.index], true
}

// FrameIndex returns the current frame index.
func (a *Animation[F]) FrameIndex() int {
	return a.index
}

// Len returns the number of frames.
func (a *Animation[F]) Len() int {
	return len(a.frames)
}

// LoopCount returns the number of completed cycles since the last reset.
func (a *Animation[F]) LoopCount() int {
	return a.loopCount
}

// IsPlaying reports whether the animation is advancing.
func (a *Animation[F]) IsPlaying() bool {
	return a.playing
}

// OnFrame registers fn to run whenever the animation advances onto frame.
func (a *Animation[F]) OnFrame(frame int, fn func(frame int)) {
	if fn == nil || frame < 0 {
		return
	}
	if a.onFrame == nil {
		a.onFrame = make(map[int][]func(int))
	}
	a.onFrame[frame] = append(a.onFrame[frame], fn)
}

// OnFinish registers fn to run when a finite animation stops itself.
func (a *Animation[F]) OnFinish(fn func()) {
	a.onFinish = fn
}

func (a *Animation[F]) exhausted() bool {
	return a.loopLimit >= 0 && a.loopCount >= a.loopLimit
}

// tick is invoked by the scheduler.
func (a *Animation[F]) tick() {
	if !a.playing || a.exhausted() || len(a.frames) == 0 {
		return
	}

	a.index = (a.index + 1) % len(a.frames)
	for _, fn := range a.onFrame[a.index] {
		fn(a.index)
	}
	if a.index != 0 {
		return
	}

	a.loopCount++
	if a.exhausted() {
		a.playing = false
		_ = a.sched.Deactivate(a.entry)
		if a.onFinish != nil {
			a.onFinish()
		}
	}
}
