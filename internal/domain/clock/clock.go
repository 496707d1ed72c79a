// Package clock provides the millisecond time sources that drive the engine.
//
// Every timing component reads time through the Clock interface. The frame
// loop hands components a Frame clock so the underlying source is sampled
// exactly once per frame; tests hand them a Manual clock instead.
package clock

import "time"

// Millis is a monotonic timestamp or duration in milliseconds.
type Millis int64

// Clock reports a monotonically non-decreasing millisecond timestamp.
type Clock interface {
	Now() Millis
}

// System is a Clock backed by the process monotonic clock.
// Its zero point is the moment it was created.
type System struct {
	start time.Time
}

// NewSystem creates a System clock starting at zero.
func NewSystem() *System {
	return &System{start: time.Now()}
}

// Now returns milliseconds elapsed since the clock was created.
func (s *System) Now() Millis {
	return Millis(time.Since(s.start).Milliseconds())
}

// Manual is a Clock that only moves when told to.
type Manual struct {
	now Millis
}

// NewManual creates a Manual clock at the given timestamp.
func NewManual(start Millis) *Manual {
	return &Manual{now: start}
}

// Now returns the current timestamp.
func (m *Manual) Now() Millis {
	return m.now
}

// Advance moves the clock forward by d. Negative values are ignored.
func (m *Manual) Advance(d Millis) {
	if d > 0 {
		m.now += d
	}
}

// Set moves the clock to t. Moving backwards is ignored.
func (m *Manual) Set(t Millis) {
	if t > m.now {
		m.now = t
	}
}

// Frame caches one sample of a source clock per frame.
type Frame struct {
	source  Clock
	raw     Millis
	now     Millis
	offset  Millis
	paused  bool
	frozeAt Millis
}

// NewFrame creates a Frame clock over source and takes the first sample.
func NewFrame(source Clock) *Frame {
	f := &Frame{source: source}
	f.Sample()
	return f
}

// Sample reads the source once and caches the result.
// While paused the cached value does not move.
func (f *Frame) Sample() Millis {
	f.raw = f.source.Now()
	if !f.paused {
		f.now = f.raw - f.offset
	}
	return f.now
}

// Raw returns the source reading taken by the last Sample, ignoring pauses.
func (f *Frame) Raw() Millis {
	return f.raw
}

// Now returns the timestamp cached by the last Sample.
func (f *Frame) Now() Millis {
	return f.now
}

// Pause freezes the frame time. Time spent paused is excluded from
// every later sample.
func (f *Frame) Pause() {
	if f.paused {
		return
	}
	f.paused = true
	f.frozeAt = f.source.Now()
}

// Resume unfreezes the frame time.
func (f *Frame) Resume() {
	if !f.paused {
		return
	}
	f.paused = false
	f.offset += f.source.Now() - f.frozeAt
}

// Paused reports whether the frame time is frozen.
func (f *Frame) Paused() bool {
	return f.paused
}

// Tick is a Clock that advances by one fixed step per game tick, so a
// session runs the same no matter how long each tick took on the wall.
type Tick struct {
	tps   int64
	ticks int64
}

// NewTick creates a Tick clock for tps ticks per second.
func NewTick(tps int) *Tick {
	if tps <= 0 {
		tps = 60
	}
	return &Tick{tps: int64(tps)}
}

// Advance moves the clock forward by one tick.
func (t *Tick) Advance() {
	t.ticks++
}

// Now returns the start of the current tick, rounded down to a millisecond.
func (t *Tick) Now() Millis {
	return Millis(t.ticks * 1000 / t.tps)
}

// ToDuration converts m to a time.Duration.
func (m Millis) ToDuration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// FromDuration converts d to whole milliseconds.
func FromDuration(d time.Duration) Millis {
	return Millis(d.Milliseconds())
}
