// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/auraboros/internal/application/scene"
	"github.com/younwookim/auraboros/internal/application/state"
	"github.com/younwookim/auraboros/internal/application/system"
	"github.com/younwookim/auraboros/internal/domain/animation"
	"github.com/younwookim/auraboros/internal/domain/clock"
	"github.com/younwookim/auraboros/internal/domain/entity"
	"github.com/younwookim/auraboros/internal/domain/particle"
	"github.com/younwookim/auraboros/internal/domain/schedule"
	"github.com/younwookim/auraboros/internal/domain/timer"
	"github.com/younwookim/auraboros/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorShip     = color.RGBA{100, 200, 100, 255}
	colorShot     = color.RGBA{255, 240, 160, 255}
	colorSpark    = color.RGBA{255, 180, 80, 255}
	colorExhaust  = color.RGBA{120, 160, 255, 255}
	colorHUD      = color.RGBA{230, 230, 230, 255}
	colorOverlay  = color.RGBA{0, 0, 0, 128}
	colorGameOver = color.RGBA{100, 0, 0, 180}
)

// Playing is the main gameplay scene
type Playing struct {
	ctx   *scene.Context
	cfg   config.GameplayConfig
	arena entity.Arena
	state state.GameState

	ship   *entity.Ship
	combat *system.CombatSystem
	score  int

	anims      *animation.Library[color.NRGBA]
	enemyAnims map[entity.EntityID]*animation.Animation[color.NRGBA]
	blink      *animation.Animation[color.NRGBA]

	spawn      schedule.EntryID
	explosions *particle.Emitter
	exhaust    *particle.Emitter

	overTimer *timer.Stopwatch
	next      scene.Scene
	entered   bool
}

// New creates a new Playing scene
func New(ctx *scene.Context) scene.Scene {
	return NewPlaying(ctx)
}

// NewPlaying creates a new Playing scene with its concrete type
func NewPlaying(ctx *scene.Context) *Playing {
	display := ctx.Config.Game.Display
	arena := entity.Arena{Width: float64(display.ScreenWidth), Height: float64(display.ScreenHeight)}
	return &Playing{
		ctx:        ctx,
		cfg:        ctx.Config.Game.Gameplay,
		arena:      arena,
		combat:     system.NewCombatSystem(arena),
		enemyAnims: make(map[entity.EntityID]*animation.Animation[color.NRGBA]),
	}
}

// OnEnter installs the layouts and starts spawning
func (p *Playing) OnEnter() {
	eng := p.ctx.Engine
	logger := eng.Logger()

	err := p.ctx.Input.Install(eng.Keyboard, map[string]system.Handlers{
		state.StatePlaying.Layout(): {
			"left":  p.direction(func(on bool) { p.ship.Left = on }),
			"right": p.direction(func(on bool) { p.ship.Right = on }),
			"up":    p.direction(func(on bool) { p.ship.Up = on }),
			"down":  p.direction(func(on bool) { p.ship.Down = on }),
			"fire":  {Press: p.fire},
			"pause": {Press: p.pause},
		},
		state.StatePaused.Layout(): {
			"resume": {Press: p.resume},
			"quit":   {Release: p.quit},
		},
		state.StateGameOver.Layout(): {
			"retry": {Release: p.retry},
			"quit":  {Press: p.quit},
		},
	})
	if err != nil {
		logger.Printf("playing: %v", err)
	}

	if p.anims, err = p.ctx.Animations(); err != nil {
		logger.Printf("playing: %v", err)
	} else if p.blink, err = p.anims.Build("ship_blink"); err != nil {
		logger.Printf("playing: %v", err)
	} else {
		p.blink.OnFinish(func() { p.ship.Invincible = false })
	}

	if p.explosions, err = particle.New(p.cfg.Explosion.Emitter(), eng.Timers, eng.Scheduler, p.ctx.RNG); err != nil {
		logger.Printf("playing: %v", err)
	}
	if p.exhaust, err = particle.New(p.cfg.Exhaust.Emitter(), eng.Timers, eng.Scheduler, p.ctx.RNG); err != nil {
		logger.Printf("playing: %v", err)
	}

	if p.spawn, err = eng.Scheduler.Add(p.spawnEnemy, clock.Millis(p.cfg.EnemySpawnMs)); err != nil {
		logger.Printf("playing: %v", err)
	}
	p.overTimer = eng.Timers.New()
	p.entered = true

	p.start()
}

// OnExit removes everything the scene created on the engine
func (p *Playing) OnExit() {
	if !p.entered {
		return
	}
	eng := p.ctx.Engine
	eng.Resume()
	for _, s := range []state.GameState{state.StatePlaying, state.StatePaused, state.StateGameOver} {
		eng.Keyboard.Remove(s.Layout())
	}
	p.clearEnemies()
	if p.blink != nil {
		p.blink.Close()
	}
	if p.explosions != nil {
		p.explosions.Close()
	}
	if p.exhaust != nil {
		p.exhaust.Close()
	}
	_ = eng.Scheduler.Remove(p.spawn)
	eng.Timers.Forget(p.overTimer)
	p.entered = false
}

// start begins a fresh round
func (p *Playing) start() {
	p.ship = entity.NewShip(p.arena, p.cfg.ShipSpeed, p.cfg.Lives)
	p.score = 0
	p.next = nil
	p.clearEnemies()
	p.overTimer.Reset()
	if p.blink != nil {
		p.blink.Stop()
	}

	if p.exhaust != nil {
		p.exhaust.Start()
	}
	_ = p.ctx.Engine.Scheduler.Activate(p.spawn)
	p.ctx.Use(state.StatePlaying.Layout())
	p.state = state.StatePlaying
}

// Update moves entities and resolves collisions
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	if p.state == state.StatePlaying {
		p.ship.Move(p.arena, dt)
		for _, ev := range p.combat.Update(p.ship, dt) {
			p.handle(ev)
		}
	}

	if p.exhaust != nil {
		x, y := p.ship.Hitbox().Center()
		p.exhaust.X, p.exhaust.Y = x, y+entity.ShipHeight/2
		p.exhaust.Update()
	}
	if p.explosions != nil {
		p.explosions.Update()
	}

	return p.next, nil
}

func (p *Playing) handle(ev system.Event) {
	switch ev.Kind {
	case system.EventEnemyDestroyed:
		p.score += ev.Points
		p.explode(ev.X, ev.Y)
		p.ctx.Sound.Play("explosion")
	case system.EventShipHit:
		p.explode(ev.X, ev.Y)
		p.ctx.Sound.Play("hit")
		p.ship.Lives--
		if p.ship.Lives <= 0 {
			p.gameOver()
		} else if p.blink != nil {
			// invincible until the blink animation runs out
			p.ship.Invincible = true
			p.blink.Reset()
			p.blink.Play()
		}
	}

	if a, ok := p.enemyAnims[ev.Enemy]; ok {
		a.Close()
		delete(p.enemyAnims, ev.Enemy)
	}
}

func (p *Playing) explode(x, y float64) {
	if p.explosions != nil {
		p.explosions.Burst(x, y, p.cfg.Explosion.Count)
	}
}

// direction returns a handler that holds a direction flag while the key is down.
func (p *Playing) direction(set func(on bool)) system.Handler {
	return system.Handler{
		Press:   func() { set(true) },
		Release: func() { set(false) },
	}
}

func (p *Playing) fire() {
	if p.state != state.StatePlaying {
		return
	}
	x, y := p.ship.Muzzle()
	p.combat.Fire(x, y, p.cfg.ShotSpeed)
	p.ctx.Sound.Play("shot")
}

func (p *Playing) spawnEnemy() {
	x := p.ctx.RNG.Float64() * (p.arena.Width - entity.EnemyWidth)
	sway := (p.ctx.RNG.Float64()*2 - 1) * p.cfg.EnemySpeed / 2
	id := p.combat.SpawnEnemy(x, p.cfg.EnemySpeed, sway, p.cfg.EnemyPoints)

	if p.anims == nil {
		return
	}
	a, err := p.anims.Build("enemy")
	if err != nil {
		p.ctx.Engine.Logger().Printf("playing: %v", err)
		return
	}
	p.enemyAnims[id] = a
}

func (p *Playing) clearEnemies() {
	p.combat.Clear()
	for id, a := range p.enemyAnims {
		a.Close()
		delete(p.enemyAnims, id)
	}
}

// pause freezes the engine clock; stopwatches, spawning and animations
// stand still until resume.
func (p *Playing) pause() {
	if p.state != state.StatePlaying {
		return
	}
	p.ship.StopAll()
	p.ctx.Engine.Pause()
	p.ctx.Use(state.StatePaused.Layout())
	p.state = state.StatePaused
}

func (p *Playing) resume() {
	if p.state != state.StatePaused {
		return
	}
	p.ctx.Engine.Resume()
	p.ctx.Use(state.StatePlaying.Layout())
	p.state = state.StatePlaying
}

func (p *Playing) gameOver() {
	p.ship.StopAll()
	_ = p.ctx.Engine.Scheduler.Deactivate(p.spawn)
	if p.exhaust != nil {
		p.exhaust.Stop()
	}
	p.overTimer.Restart()
	p.ctx.Use(state.StateGameOver.Layout())
	p.state = state.StateGameOver
}

func (p *Playing) retry() {
	if p.overTimer.Read() < clock.Millis(p.cfg.GameOverHoldMs) {
		return
	}
	p.start()
}

func (p *Playing) quit() {
	if p.ctx.Title != nil {
		p.next = p.ctx.Title(p.ctx)
	}
}

// State returns the current game state
func (p *Playing) State() state.GameState {
	return p.state
}

// Score returns the current score
func (p *Playing) Score() int {
	return p.score
}

// Ship returns the player's ship
func (p *Playing) Ship() *entity.Ship {
	return p.ship
}

// Combat returns the combat system
func (p *Playing) Combat() *system.CombatSystem {
	return p.combat
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	p.drawParticles(screen, p.exhaust, colorExhaust)
	p.drawEnemies(screen)
	p.drawShots(screen)
	p.drawShip(screen)
	p.drawParticles(screen, p.explosions, colorSpark)
	p.drawHUD(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, colorOverlay, "PAUSED\n\nESC: RESUME  Q: TITLE")
	case state.StateGameOver:
		p.drawOverlay(screen, colorGameOver, fmt.Sprintf("GAME OVER\n\nSCORE %d\n\nZ: RETRY", p.score))
	}
}

func (p *Playing) drawShip(screen *ebiten.Image) {
	c := color.Color(colorShip)
	if p.ship.Invincible && p.blink != nil {
		if f, ok := p.blink.Frame(); ok {
			c = f
		}
	}
	b := p.ship.Hitbox()
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), c, false)
}

func (p *Playing) drawEnemies(screen *ebiten.Image) {
	for _, e := range p.combat.Enemies() {
		c := color.Color(colorSpark)
		if a, ok := p.enemyAnims[e.ID]; ok {
			if f, ok := a.Frame(); ok {
				c = f
			}
		}
		b := e.Hitbox()
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), c, false)
	}
}

func (p *Playing) drawShots(screen *ebiten.Image) {
	for _, s := range p.combat.Shots() {
		b := s.Hitbox()
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), colorShot, false)
	}
}

func (p *Playing) drawParticles(screen *ebiten.Image, e *particle.Emitter, base color.RGBA) {
	if e == nil {
		return
	}
	for _, pt := range e.Particles() {
		x, y := pt.Position()
		a := pt.Remaining()
		// pre-multiplied alpha
		c := color.RGBA{
			uint8(float64(base.R) * a),
			uint8(float64(base.G) * a),
			uint8(float64(base.B) * a),
			uint8(float64(base.A) * a),
		}
		vector.DrawFilledRect(screen, float32(x-1), float32(y-1), 2, 2, c, false)
	}
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	hud := fmt.Sprintf("SCORE %06d  LIVES %d", p.score, p.ship.Lives)
	if p.ctx.Face == nil {
		ebitenutil.DebugPrintAt(screen, hud, 4, 4)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(4, 4)
	op.ColorScale.ScaleWithColor(colorHUD)
	text.Draw(screen, hud, p.ctx.Face, op)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.Color, msg string) {
	w, h := float32(p.arena.Width), float32(p.arena.Height)
	vector.DrawFilledRect(screen, 0, 0, w, h, c, false)
	ebitenutil.DebugPrintAt(screen, msg, int(p.arena.Width)/2-50, int(p.arena.Height)/2-30)
}
