// Package scene defines the Scene interface for game screens.
//
// Each game screen implements Scene and owns the key layouts, animations
// and scheduler entries it creates on the shared engine.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents a game screen (title, playing)
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update updates the scene state after the engine has stepped the
	// frame, so key callbacks for this frame have already run.
	// dt is the delta time in seconds (typically 1/60).
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	// Scenes install their key layouts and scheduler entries here.
	OnEnter()

	// OnExit is called when leaving this scene.
	// Scenes remove their layouts, animations and scheduler entries here.
	OnExit()
}
