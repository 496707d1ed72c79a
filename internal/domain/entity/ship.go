package entity

// Ship dimensions in pixels.
const (
	ShipWidth  = 12
	ShipHeight = 12
)

// Ship is the player's craft. The direction flags are set while the
// matching key is held.
type Ship struct {
	X, Y  float64
	Speed float64 // pixels per second
	Lives int

	Left, Right, Up, Down bool

	Invincible bool
}

// NewShip creates a ship centred horizontally near the arena bottom.
func NewShip(arena Arena, speed float64, lives int) *Ship {
	return &Ship{
		X:     (arena.Width - ShipWidth) / 2,
		Y:     arena.Height - ShipHeight*3,
		Speed: speed,
		Lives: lives,
	}
}

// Hitbox returns the ship's collision box.
func (s *Ship) Hitbox() Rect {
	return Rect{X: s.X, Y: s.Y, W: ShipWidth, H: ShipHeight}
}

// Muzzle returns where shots leave the ship.
func (s *Ship) Muzzle() (float64, float64) {
	return s.X + ShipWidth/2, s.Y
}

// Move applies the held directions for dt seconds and keeps the ship in
// the arena. Opposite directions cancel.
func (s *Ship) Move(arena Arena, dt float64) {
	var dx, dy float64
	if s.Left {
		dx--
	}
	if s.Right {
		dx++
	}
	if s.Up {
		dy--
	}
	if s.Down {
		dy++
	}
	if dx != 0 && dy != 0 {
		// keep diagonal speed equal to straight speed
		dx *= diagonal
		dy *= diagonal
	}
	s.X, s.Y = arena.Clamp(s.X+dx*s.Speed*dt, s.Y+dy*s.Speed*dt, ShipWidth, ShipHeight)
}

// StopAll clears every held direction.
func (s *Ship) StopAll() {
	s.Left, s.Right, s.Up, s.Down = false, false, false, false
}

const diagonal = 0.7071067811865476
