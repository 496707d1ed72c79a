// Package keyinput implements delayed, repeating key actions.
//
// A KeyAction walks Idle -> Delaying -> FirstIntervalWait -> Repeating while
// its key is held and returns to Idle on release. Raw press/release edges only
// record the physical key state; actions fire when the keymap is polled once
// per frame.
package keyinput

import (
	"github.com/younwookim/auraboros/internal/domain/clock"
	"github.com/younwookim/auraboros/internal/domain/timer"
)

// Phase is the repeat state of a KeyAction.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDelaying
	PhaseFirstInterval
	PhaseRepeating
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseDelaying:
		return "Delaying"
	case PhaseFirstInterval:
		return "FirstInterval"
	case PhaseRepeating:
		return "Repeating"
	default:
		return "Unknown"
	}
}

// KeyAction is the repeat state machine of one key in one keymap.
//
// While held, OnPress fires once Delay has elapsed, again after
// FirstInterval, then every Interval. A Delay of 0 fires on the press frame.
// OnRelease fires once when the held key goes up.
type KeyAction struct {
	Delay         clock.Millis
	FirstInterval clock.Millis
	Interval      clock.Millis

	OnPress   func()
	OnRelease func()

	PressEnabled   bool
	ReleaseEnabled bool

	pressed              bool
	held                 bool
	delayElapsed         bool
	firstIntervalElapsed bool
	timer                *timer.Stopwatch
}

// Press returns an action that fires fn with the given repeat timing.
func Press(delay, firstInterval, interval clock.Millis, fn func()) *KeyAction {
	return &KeyAction{
		Delay:         delay,
		FirstInterval: firstInterval,
		Interval:      interval,
		OnPress:       fn,
		PressEnabled:  true,
	}
}

// Release returns an action that only fires fn when the key goes up.
func Release(fn func()) *KeyAction {
	return &KeyAction{
		OnRelease:      fn,
		ReleaseEnabled: true,
	}
}

// WithRelease enables the release callback on a and returns it.
func (a *KeyAction) WithRelease(fn func()) *KeyAction {
	a.OnRelease = fn
	a.ReleaseEnabled = true
	return a
}

// SetTiming replaces the repeat timing. A repeat already in progress keeps
// its phase and measures the next threshold against the new values.
func (a *KeyAction) SetTiming(delay, firstInterval, interval clock.Millis) {
	a.Delay = delay
	a.FirstInterval = firstInterval
	a.Interval = interval
}

// IsPressed reports the raw physical key state.
func (a *KeyAction) IsPressed() bool {
	return a.pressed
}

// Phase reports the current repeat state.
func (a *KeyAction) Phase() Phase {
	switch {
	case !a.held:
		return PhaseIdle
	case !a.delayElapsed:
		return PhaseDelaying
	case !a.firstIntervalElapsed:
		return PhaseFirstInterval
	default:
		return PhaseRepeating
	}
}

func (a *KeyAction) setPressed(pressed bool) {
	a.pressed = pressed
}

func (a *KeyAction) poll() {
	if a.pressed {
		a.held = true
		if !a.PressEnabled {
			return
		}
		a.timer.Start()
		a.advance(a.timer.Read())
		return
	}

	a.clear()
	if !a.held {
		return
	}
	a.held = false
	if a.ReleaseEnabled && a.OnRelease != nil {
		a.OnRelease()
	}
}

func (a *KeyAction) advance(elapsed clock.Millis) {
	switch {
	case !a.delayElapsed:
		if elapsed < a.Delay {
			return
		}
		a.delayElapsed = true
	case !a.firstIntervalElapsed:
		if elapsed < a.FirstInterval {
			return
		}
		a.firstIntervalElapsed = true
	default:
		if elapsed < a.Interval {
			return
		}
	}
	a.timer.Restart()
	if a.OnPress != nil {
		a.OnPress()
	}
}

func (a *KeyAction) clear() {
	a.timer.Reset()
	a.delayElapsed = false
	a.firstIntervalElapsed = false
}

// release is the silent reset used on focus loss and layout switches.
func (a *KeyAction) release() {
	a.pressed = false
	a.held = false
	a.clear()
}
