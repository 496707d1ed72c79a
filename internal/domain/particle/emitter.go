// Package particle provides a simple burst/stream particle emitter.
//
// Particle lifetimes are stopwatches from the frame's timer registry, and
// continuous emission runs on a scheduler entry, so particles freeze with
// everything else when the frame clock is paused.
package particle

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/younwookim/auraboros/internal/domain/clock"
	"github.com/younwookim/auraboros/internal/domain/schedule"
	"github.com/younwookim/auraboros/internal/domain/timer"
)

// Config holds emitter tuning.
type Config struct {
	Interval clock.Millis // time between stream emissions
	PerEmit  int          // particles per stream emission
	Life     clock.Millis // particle lifetime
	MinSpeed float64      // pixels per second
	MaxSpeed float64      // pixels per second
	Angle    float64      // emission direction in radians
	Spread   float64      // full cone width in radians; 2*Pi emits all around
	Gravity  float64      // pixels per second squared, +Y is down
}

// Particle is one emitted point. Its position is a function of its age.
type Particle struct {
	X0, Y0 float64
	VX, VY float64

	gravity float64
	life    clock.Millis
	age     *timer.Stopwatch
}

// Position returns the particle's current position.
func (p *Particle) Position() (float64, float64) {
	t := float64(p.age.Read()) / 1000
	return p.X0 + p.VX*t, p.Y0 + p.VY*t + 0.5*p.gravity*t*t
}

// Remaining returns the fraction of life left, from 1 down to 0.
func (p *Particle) Remaining() float64 {
	if p.life <= 0 {
		return 0
	}
	left := 1 - float64(p.age.Read())/float64(p.life)
	return math.Max(0, left)
}

func (p *Particle) dead() bool {
	return p.age.Read() >= p.life
}

// Emitter spawns particles in bursts or as a stream.
type Emitter struct {
	cfg       Config
	timers    *timer.Registry
	sched     *schedule.Scheduler
	entry     schedule.EntryID
	rng       *rand.Rand
	particles []*Particle

	X, Y float64
}

// New creates a stopped emitter. rng makes emission deterministic.
func New(cfg Config, timers *timer.Registry, sched *schedule.Scheduler, rng *rand.Rand) (*Emitter, error) {
	e := &Emitter{
		cfg:    cfg,
		timers: timers,
		sched:  sched,
		rng:    rng,
	}
	id, err := sched.Add(e.emitStream, cfg.Interval)
	if err != nil {
		return nil, fmt.Errorf("failed to register emitter: %w", err)
	}
	e.entry = id
	return e, nil
}

// Burst spawns n particles at (x, y) immediately.
func (e *Emitter) Burst(x, y float64, n int) {
	for i := 0; i < n; i++ {
		e.spawn(x, y)
	}
}

// Start begins emitting PerEmit particles at (X, Y) every Interval.
func (e *Emitter) Start() {
	_ = e.sched.Activate(e.entry)
}

// Stop ends stream emission. Live particles keep going.
func (e *Emitter) Stop() {
	_ = e.sched.Deactivate(e.entry)
}

// Emitting reports whether the stream is active.
func (e *Emitter) Emitting() bool {
	return e.sched.IsActive(e.entry)
}

// Update retires particles that outlived their lifetime.
func (e *Emitter) Update() {
	alive := e.particles[:0]
	for _, p := range e.particles {
		if p.dead() {
			e.timers.Forget(p.age)
			continue
		}
		alive = append(alive, p)
	}
	for i := len(alive); i < len(e.particles); i++ {
		e.particles[i] = nil
	}
	e.particles = alive
}

// Particles returns the live particles. The slice is only valid until the
// next Update or emission.
func (e *Emitter) Particles() []*Particle {
	return e.particles
}

// Alive returns the number of live particles.
func (e *Emitter) Alive() int {
	return len(e.particles)
}

// Close removes the emitter's scheduler entry and every particle timer.
func (e *Emitter) Close() {
	_ = e.sched.Remove(e.entry)
	for _, p := range e.particles {
		e.timers.Forget(p.age)
	}
	e.particles = nil
}

func (e *Emitter) emitStream() {
	for i := 0; i < e.cfg.PerEmit; i++ {
		e.spawn(e.X, e.Y)
	}
}

func (e *Emitter) spawn(x, y float64) {
	angle := e.cfg.Angle + (e.rng.Float64()-0.5)*e.cfg.Spread
	speed := e.cfg.MinSpeed
	if e.cfg.MaxSpeed > e.cfg.MinSpeed {
		speed += e.rng.Float64() * (e.cfg.MaxSpeed - e.cfg.MinSpeed)
	}

	age := e.timers.New()
	age.Start()
	e.particles = append(e.particles, &Particle{
		X0:      x,
		Y0:      y,
		VX:      math.Cos(angle) * speed,
		VY:      math.Sin(angle) * speed,
		gravity: e.cfg.Gravity,
		life:    e.cfg.Life,
		age:     age,
	})
}
