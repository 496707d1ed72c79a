package scene

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/younwookim/auraboros/internal/application/engine"
	"github.com/younwookim/auraboros/internal/application/system"
	"github.com/younwookim/auraboros/internal/domain/animation"
	"github.com/younwookim/auraboros/internal/infrastructure/config"
	"github.com/younwookim/auraboros/internal/infrastructure/sound"
)

// Factory creates a scene.
type Factory func(ctx *Context) Scene

// Context carries what every scene shares. Scenes reach each other
// through the factories, so scene packages never import one another.
type Context struct {
	Engine *engine.Engine
	Config *config.Config
	Input  *system.InputSystem
	Sound  sound.Player
	RNG    *rand.Rand
	Face   text.Face

	Title   Factory
	Playing Factory
}

// NewContext wires a context around eng. Input layouts come from
// cfg.Keymaps and timers from the engine's registry.
func NewContext(eng *engine.Engine, cfg *config.Config, snd sound.Player, rng *rand.Rand) *Context {
	if snd == nil {
		snd = sound.Silent{}
	}
	return &Context{
		Engine: eng,
		Config: cfg,
		Input:  system.NewInputSystem(cfg.Keymaps, eng.Timers, eng.Logger()),
		Sound:  snd,
		RNG:    rng,
		Face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

// Animations builds a color animation library from the animation config.
func (c *Context) Animations() (*animation.Library[color.NRGBA], error) {
	lib := animation.NewLibrary[color.NRGBA](c.Engine.Scheduler)
	for key := range c.Config.Animations.FrameSets {
		frames, _ := c.Config.Animations.Colors(key)
		lib.AddFrames(key, frames)
	}
	for _, a := range c.Config.Animations.Animations {
		if err := lib.Define(a.Spec()); err != nil {
			return nil, fmt.Errorf("failed to define animations: %w", err)
		}
	}
	return lib, nil
}

// Use switches the keyboard to layout and logs a failure.
func (c *Context) Use(layout string) {
	if err := c.Engine.Keyboard.Use(layout); err != nil {
		c.Engine.Logger().Printf("scene: %v", err)
	}
}
