// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/auraboros/internal/application/engine"
	"github.com/younwookim/auraboros/internal/application/scene"
)

// Options wires the game to its engine. Every field is optional.
type Options struct {
	// Engine is stepped once per Update before the scene updates.
	Engine *engine.Engine
	// Advance moves the engine's clock source one tick forward. Returning
	// false ends the game, e.g. when a replay runs out.
	Advance func() bool
	// Focused reports window focus. Losing focus releases every held key.
	Focused func() bool
	// Hooks run at the start of every Update, e.g. to apply hot reloads.
	Hooks []func()
}

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	opts    Options
	focused bool
	screenW int
	screenH int
	dt      float64
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int, opts Options) *Game {
	g := &Game{
		current: initialScene,
		opts:    opts,
		focused: true,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 FPS
	}
	g.current.OnEnter()
	return g
}

// Update steps the engine, then updates the current scene and handles
// scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	for _, hook := range g.opts.Hooks {
		hook()
	}

	if g.opts.Advance != nil && !g.opts.Advance() {
		return ebiten.Termination
	}

	g.checkFocus()

	if g.opts.Engine != nil {
		g.opts.Engine.Step()
	}

	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// checkFocus releases every key when the window loses focus, so no key
// stays stuck while its release happens elsewhere.
func (g *Game) checkFocus() {
	if g.opts.Focused == nil {
		return
	}
	focused := g.opts.Focused()
	if g.focused && !focused && g.opts.Engine != nil {
		g.opts.Engine.ReleaseAll()
	}
	g.focused = focused
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Current returns the active scene.
func (g *Game) Current() scene.Scene {
	return g.current
}

// Close exits the current scene.
func (g *Game) Close() {
	g.current.OnExit()
}
