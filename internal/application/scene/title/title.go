// Package title provides the title menu scene.
package title

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/auraboros/internal/application/scene"
	"github.com/younwookim/auraboros/internal/application/state"
	"github.com/younwookim/auraboros/internal/application/system"
	"github.com/younwookim/auraboros/internal/domain/animation"
)

// Menu items
const (
	ItemStart = iota
	ItemQuit
)

var items = []string{"START", "QUIT"}

var (
	colorBG   = color.RGBA{16, 16, 32, 255}
	colorText = color.RGBA{220, 220, 220, 255}
)

// Title is the title menu. Up and down repeat while held.
type Title struct {
	ctx    *scene.Context
	cursor int
	blink  *animation.Animation[color.NRGBA]
	next   scene.Scene
	quit   bool
}

// New creates a new Title scene
func New(ctx *scene.Context) scene.Scene {
	return &Title{ctx: ctx}
}

// OnEnter installs the title layout
func (t *Title) OnEnter() {
	t.cursor = ItemStart
	t.next = nil
	t.quit = false

	layout := state.StateTitle.Layout()
	err := t.ctx.Input.Install(t.ctx.Engine.Keyboard, map[string]system.Handlers{
		layout: {
			"up":     {Press: func() { t.move(-1) }},
			"down":   {Press: func() { t.move(1) }},
			"select": {Release: t.selectItem},
		},
	})
	if err != nil {
		t.ctx.Engine.Logger().Printf("title: %v", err)
	}
	t.ctx.Use(layout)

	lib, err := t.ctx.Animations()
	if err != nil {
		t.ctx.Engine.Logger().Printf("title: %v", err)
		return
	}
	if t.blink, err = lib.Build("cursor"); err != nil {
		t.ctx.Engine.Logger().Printf("title: %v", err)
	}
}

// OnExit removes the title layout
func (t *Title) OnExit() {
	t.ctx.Engine.Keyboard.Remove(state.StateTitle.Layout())
	if t.blink != nil {
		t.blink.Close()
		t.blink = nil
	}
}

// Update returns the playing scene once START is chosen
func (t *Title) Update(_ float64) (scene.Scene, error) {
	if t.quit {
		return nil, ebiten.Termination
	}
	return t.next, nil
}

// Cursor returns the highlighted menu item
func (t *Title) Cursor() int {
	return t.cursor
}

func (t *Title) move(d int) {
	t.cursor = (t.cursor + d + len(items)) % len(items)
	t.ctx.Sound.Play("cursor")
}

func (t *Title) selectItem() {
	t.ctx.Sound.Play("select")
	switch t.cursor {
	case ItemStart:
		if t.ctx.Playing != nil {
			t.next = t.ctx.Playing(t.ctx)
		}
	case ItemQuit:
		t.quit = true
	}
}

// Draw renders the menu
func (t *Title) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())

	drawText(screen, t.ctx.Face, t.ctx.Config.Game.Display.Title, w/2, h/3, 2, colorText)

	cursorColor := color.Color(colorText)
	if t.blink != nil {
		if c, ok := t.blink.Frame(); ok {
			cursorColor = c
		}
	}
	for i, item := range items {
		y := h/2 + float64(i)*18
		drawText(screen, t.ctx.Face, item, w/2, y, 1, colorText)
		if i == t.cursor {
			vector.DrawFilledRect(screen, float32(w/2-40), float32(y+4), 6, 6, cursorColor, false)
		}
	}
	drawText(screen, t.ctx.Face, "ARROWS: SELECT  Z: OK", w/2, h-20, 1, colorText)
}

// drawText draws s centred on (x, y).
func drawText(screen *ebiten.Image, face text.Face, s string, x, y, scale float64, c color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}
