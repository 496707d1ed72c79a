package system

import (
	"github.com/younwookim/auraboros/internal/domain/entity"
)

// EventKind classifies a combat event.
type EventKind int

const (
	// EventEnemyDestroyed: a shot hit an enemy.
	EventEnemyDestroyed EventKind = iota
	// EventEnemyEscaped: an enemy left through the bottom edge.
	EventEnemyEscaped
	// EventShipHit: an enemy rammed the ship.
	EventShipHit
)

// Event is something the scene reacts to with sound, particles or score.
type Event struct {
	Kind   EventKind
	Enemy  entity.EntityID
	X, Y   float64 // where it happened
	Points int // score for destroyed enemies
}

// CombatSystem moves shots and enemies and resolves their collisions
type CombatSystem struct {
	arena   entity.Arena
	shots   []*entity.Shot
	enemies []*entity.Enemy
	events  []Event
	nextID  entity.EntityID
}

// NewCombatSystem creates an empty combat system for arena
func NewCombatSystem(arena entity.Arena) *CombatSystem {
	return &CombatSystem{arena: arena}
}

// Fire launches a shot from (x, y).
func (s *CombatSystem) Fire(x, y, speed float64) {
	s.shots = append(s.shots, entity.NewShot(x, y, speed))
}

// SpawnEnemy adds an enemy at the top edge and returns its ID.
func (s *CombatSystem) SpawnEnemy(x, speed, sway float64, points int) entity.EntityID {
	s.nextID++
	s.enemies = append(s.enemies, entity.NewEnemy(s.nextID, x, speed, sway, points))
	return s.nextID
}

// Update advances every entity by dt seconds and returns what happened.
// The returned slice is reused by the next call.
func (s *CombatSystem) Update(ship *entity.Ship, dt float64) []Event {
	s.events = s.events[:0]

	for _, shot := range s.shots {
		shot.Update(s.arena, dt)
	}
	for _, enemy := range s.enemies {
		enemy.Update(s.arena, dt)
		if !enemy.Active {
			s.emit(EventEnemyEscaped, enemy)
		}
	}

	s.checkShots()
	s.checkShip(ship)

	s.shots = compact(s.shots, func(sh *entity.Shot) bool { return sh.Active })
	s.enemies = compact(s.enemies, func(e *entity.Enemy) bool { return e.Active })
	return s.events
}

// Shots returns the active shots.
func (s *CombatSystem) Shots() []*entity.Shot {
	return s.shots
}

// Enemies returns the active enemies.
func (s *CombatSystem) Enemies() []*entity.Enemy {
	return s.enemies
}

// Clear removes every shot and enemy and returns the enemies' IDs.
func (s *CombatSystem) Clear() []entity.EntityID {
	ids := make([]entity.EntityID, 0, len(s.enemies))
	for _, e := range s.enemies {
		ids = append(ids, e.ID)
	}
	s.shots = s.shots[:0]
	s.enemies = s.enemies[:0]
	return ids
}

func (s *CombatSystem) checkShots() {
	for _, shot := range s.shots {
		if !shot.Active {
			continue
		}
		for _, enemy := range s.enemies {
			if !enemy.Active || !shot.Hitbox().Overlaps(enemy.Hitbox()) {
				continue
			}
			shot.Active = false
			enemy.Active = false
			s.emit(EventEnemyDestroyed, enemy).Points = enemy.Points
			break
		}
	}
}

func (s *CombatSystem) checkShip(ship *entity.Ship) {
	if ship == nil {
		return
	}
	for _, enemy := range s.enemies {
		if !enemy.Active || !ship.Hitbox().Overlaps(enemy.Hitbox()) {
			continue
		}
		if ship.Invincible {
			continue
		}
		enemy.Active = false
		ev := s.emit(EventShipHit, enemy)
		ev.X, ev.Y = ship.Hitbox().Center()
		return
	}
}

func (s *CombatSystem) emit(kind EventKind, e *entity.Enemy) *Event {
	x, y := e.Hitbox().Center()
	s.events = append(s.events, Event{Kind: kind, Enemy: e.ID, X: x, Y: y})
	return &s.events[len(s.events)-1]
}

func compact[T any](items []T, keep func(T) bool) []T {
	n := 0
	for _, it := range items {
		if keep(it) {
			items[n] = it
			n++
		}
	}
	clear(items[n:])
	return items[:n]
}
