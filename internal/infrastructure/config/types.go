package config

import (
	"math"

	"github.com/younwookim/auraboros/internal/domain/clock"
	"github.com/younwookim/auraboros/internal/domain/particle"
)

// GameConfig is the root config for game.json
type GameConfig struct {
	Display  DisplayConfig          `json:"display"`
	Gameplay GameplayConfig         `json:"gameplay"`
	Sounds   map[string]SoundConfig `json:"sounds"`
}

type DisplayConfig struct {
	Title        string `json:"title"`
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Scale        int    `json:"scale"`
	TPS          int    `json:"tps"`
}

// GameplayConfig tunes the shoot-em-up. Speeds are pixels per second,
// intervals are milliseconds.
type GameplayConfig struct {
	Lives          int            `json:"lives"`
	ShipSpeed      float64        `json:"shipSpeed"`
	ShotSpeed      float64        `json:"shotSpeed"`
	EnemySpeed     float64        `json:"enemySpeed"`
	EnemySpawnMs   int            `json:"enemySpawnMs"`
	EnemyPoints    int            `json:"enemyPoints"`
	Explosion      ParticleConfig `json:"explosion"`
	Exhaust        ParticleConfig `json:"exhaust"`
	GameOverHoldMs int            `json:"gameOverHoldMs"`
}

// ParticleConfig tunes a particle emitter. Angles are degrees.
type ParticleConfig struct {
	Count      int     `json:"count"`
	IntervalMs int     `json:"intervalMs"`
	LifeMs     int     `json:"lifeMs"`
	MinSpeed   float64 `json:"minSpeed"`
	MaxSpeed   float64 `json:"maxSpeed"`
	AngleDeg   float64 `json:"angleDeg"`
	SpreadDeg  float64 `json:"spreadDeg"`
	Gravity    float64 `json:"gravity"`
}

// SoundConfig describes a synthesized sound cue.
type SoundConfig struct {
	Frequency  float64 `json:"frequency"`  // start frequency in Hz
	Sweep      float64 `json:"sweep"`      // end frequency in Hz, 0 keeps it flat
	DurationMs int     `json:"durationMs"` // cue length
	Volume     float64 `json:"volume"`     // 0.0 - 1.0
}

// Emitter converts the config to particle emitter tuning.
func (p ParticleConfig) Emitter() particle.Config {
	return particle.Config{
		Interval: clock.Millis(p.IntervalMs),
		PerEmit:  p.Count,
		Life:     clock.Millis(p.LifeMs),
		MinSpeed: p.MinSpeed,
		MaxSpeed: p.MaxSpeed,
		Angle:    p.AngleDeg * math.Pi / 180,
		Spread:   p.SpreadDeg * math.Pi / 180,
		Gravity:  p.Gravity,
	}
}
