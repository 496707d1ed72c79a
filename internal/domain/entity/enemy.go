package entity

// Enemy dimensions in pixels.
const (
	EnemyWidth  = 12
	EnemyHeight = 10
)

// Enemy drifts down the arena and sways sideways.
type Enemy struct {
	ID     EntityID
	X, Y   float64
	VX, VY float64
	Active bool
	Points int
}

// NewEnemy creates an enemy entering from the top edge at x.
func NewEnemy(id EntityID, x, speed, sway float64, points int) *Enemy {
	return &Enemy{
		ID:     id,
		X:      x,
		Y:      -EnemyHeight,
		VX:     sway,
		VY:     speed,
		Active: true,
		Points: points,
	}
}

func (e *Enemy) Hitbox() Rect {
	return Rect{X: e.X, Y: e.Y, W: EnemyWidth, H: EnemyHeight}
}

// Update moves the enemy, bounces it off the side walls and deactivates it
// once it has left through the bottom.
func (e *Enemy) Update(arena Arena, dt float64) {
	if !e.Active {
		return
	}
	e.X += e.VX * dt
	e.Y += e.VY * dt

	if e.X < 0 {
		e.X = 0
		e.VX = -e.VX
	} else if e.X > arena.Width-EnemyWidth {
		e.X = arena.Width - EnemyWidth
		e.VX = -e.VX
	}
	if e.Y > arena.Height {
		e.Active = false
	}
}
