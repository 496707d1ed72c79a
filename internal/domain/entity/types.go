package entity

// EntityID is a unique identifier for an entity
type EntityID uint32

// Rect is an axis-aligned box in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether r and o share any area. Touching edges do not
// overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Center returns the middle point of r.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Arena is the playfield.
type Arena struct {
	Width  float64
	Height float64
}

// Bounds returns the arena as a rect at the origin.
func (a Arena) Bounds() Rect {
	return Rect{W: a.Width, H: a.Height}
}

// Clamp keeps a box of size w x h fully inside the arena.
func (a Arena) Clamp(x, y, w, h float64) (float64, float64) {
	return clamp(x, 0, a.Width-w), clamp(y, 0, a.Height-h)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
