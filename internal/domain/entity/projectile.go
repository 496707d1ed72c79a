package entity

// Shot dimensions in pixels.
const (
	ShotWidth  = 2
	ShotHeight = 6
)

// Shot is a player bullet travelling straight up.
type Shot struct {
	X, Y   float64 // top-left
	VY     float64 // pixels per second, negative is up
	Active bool
}

// NewShot creates a shot centred on (x, y).
func NewShot(x, y, speed float64) *Shot {
	return &Shot{
		X:      x - ShotWidth/2,
		Y:      y - ShotHeight,
		VY:     -speed,
		Active: true,
	}
}

func (s *Shot) Hitbox() Rect {
	return Rect{X: s.X, Y: s.Y, W: ShotWidth, H: ShotHeight}
}

// Update moves the shot and deactivates it once it leaves the arena.
func (s *Shot) Update(arena Arena, dt float64) {
	if !s.Active {
		return
	}
	s.Y += s.VY * dt
	if !s.Hitbox().Overlaps(arena.Bounds()) {
		s.Active = false
	}
}
