package keyinput

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/auraboros/internal/domain/clock"
	"github.com/younwookim/auraboros/internal/domain/timer"
)

type harness struct {
	clock  *clock.Manual
	timers *timer.Registry
}

func newHarness() *harness {
	c := clock.NewManual(0)
	return &harness{clock: c, timers: timer.NewRegistry(c)}
}

// frame mirrors the engine's per-frame order: refresh timers, deliver
// edges, poll.
func (h *harness) frame(k *Keyboard, d clock.Millis, edges ...Edge) {
	h.clock.Advance(d)
	h.timers.UpdateAll()
	k.HandleEdges(edges)
	k.Poll()
}

func (h *harness) keyboard(t *testing.T, name string, bindings map[ebiten.Key]*KeyAction) *Keyboard {
	t.Helper()
	m := NewKeymap(name, h.timers)
	for key, a := range bindings {
		require.NoError(t, m.Register(key, a))
	}
	k := NewKeyboard()
	k.Add(m)
	require.NoError(t, k.Use(name))
	return k
}

func TestKeyAction_RepeatSequence(t *testing.T) {
	h := newHarness()
	var firedAt []clock.Millis
	k := h.keyboard(t, "menu", map[ebiten.Key]*KeyAction{
		ebiten.KeyArrowDown: Press(100, 50, 20, func() { firedAt = append(firedAt, h.clock.Now()) }),
	})

	h.frame(k, 0, Edge{Key: ebiten.KeyArrowDown, Pressed: true})
	for h.clock.Now() < 215 {
		h.frame(k, 5)
	}

	assert.Equal(t, []clock.Millis{100, 150, 170, 190, 210}, firedAt)
}

func TestKeyAction_ZeroDelayFiresOnPressFrame(t *testing.T) {
	h := newHarness()
	fired := 0
	k := h.keyboard(t, "ship", map[ebiten.Key]*KeyAction{
		ebiten.KeyZ: Press(0, 200, 100, func() { fired++ }),
	})

	h.frame(k, 16, Edge{Key: ebiten.KeyZ, Pressed: true})
	assert.Equal(t, 1, fired)

	h.frame(k, 16)
	assert.Equal(t, 1, fired)
}

func TestKeyAction_PhaseProgression(t *testing.T) {
	h := newHarness()
	a := Press(30, 20, 10, func() {})
	k := h.keyboard(t, "menu", map[ebiten.Key]*KeyAction{ebiten.KeyA: a})

	assert.Equal(t, PhaseIdle, a.Phase())
	h.frame(k, 0, Edge{Key: ebiten.KeyA, Pressed: true})
	assert.Equal(t, PhaseDelaying, a.Phase())
	h.frame(k, 30)
	assert.Equal(t, PhaseFirstInterval, a.Phase())
	h.frame(k, 20)
	assert.Equal(t, PhaseRepeating, a.Phase())
	h.frame(k, 5, Edge{Key: ebiten.KeyA, Pressed: false})
	assert.Equal(t, PhaseIdle, a.Phase())
}

func TestKeyAction_ReleaseFiresExactlyOnce(t *testing.T) {
	h := newHarness()
	presses, releases := 0, 0
	k := h.keyboard(t, "ship", map[ebiten.Key]*KeyAction{
		ebiten.KeySpace: Press(0, 100, 100, func() { presses++ }).WithRelease(func() { releases++ }),
	})

	h.frame(k, 10)
	assert.Equal(t, 0, releases, "never-pressed key does not fire release")

	h.frame(k, 10, Edge{Key: ebiten.KeySpace, Pressed: true})
	h.frame(k, 10)
	h.frame(k, 10, Edge{Key: ebiten.KeySpace, Pressed: false})
	for i := 0; i < 10; i++ {
		h.frame(k, 10)
	}

	assert.Equal(t, 1, presses)
	assert.Equal(t, 1, releases)
}

func TestKeyAction_ReleaseRestartsDelay(t *testing.T) {
	h := newHarness()
	var firedAt []clock.Millis
	k := h.keyboard(t, "menu", map[ebiten.Key]*KeyAction{
		ebiten.KeyW: Press(40, 30, 10, func() { firedAt = append(firedAt, h.clock.Now()) }),
	})

	h.frame(k, 0, Edge{Key: ebiten.KeyW, Pressed: true})
	h.frame(k, 40)
	h.frame(k, 10, Edge{Key: ebiten.KeyW, Pressed: false})
	h.frame(k, 10, Edge{Key: ebiten.KeyW, Pressed: true})
	h.frame(k, 20)
	h.frame(k, 20)

	assert.Equal(t, []clock.Millis{40, 100}, firedAt)
}

func TestKeyAction_PressDisabled(t *testing.T) {
	h := newHarness()
	releases := 0
	k := h.keyboard(t, "ship", map[ebiten.Key]*KeyAction{
		ebiten.KeyX: Release(func() { releases++ }),
	})

	h.frame(k, 10, Edge{Key: ebiten.KeyX, Pressed: true})
	h.frame(k, 10)
	assert.Equal(t, 0, releases)

	h.frame(k, 10, Edge{Key: ebiten.KeyX, Pressed: false})
	h.frame(k, 10)
	assert.Equal(t, 1, releases)
}

func TestKeyAction_PressAndReleaseWithinOneFrame(t *testing.T) {
	h := newHarness()
	presses := 0
	k := h.keyboard(t, "ship", map[ebiten.Key]*KeyAction{
		ebiten.KeyZ: Press(0, 100, 100, func() { presses++ }),
	})

	h.frame(k, 10, Edge{Key: ebiten.KeyZ, Pressed: true}, Edge{Key: ebiten.KeyZ, Pressed: false})

	assert.Equal(t, 0, presses, "only the final key state is polled")
	a, _ := k.Current().Action(ebiten.KeyZ)
	assert.False(t, a.IsPressed())
}

func TestKeyAction_SetTiming(t *testing.T) {
	h := newHarness()
	var firedAt []clock.Millis
	a := Press(0, 100, 100, func() { firedAt = append(firedAt, h.clock.Now()) })
	k := h.keyboard(t, "ship", map[ebiten.Key]*KeyAction{ebiten.KeyZ: a})

	h.frame(k, 0, Edge{Key: ebiten.KeyZ, Pressed: true})
	a.SetTiming(0, 20, 20)
	h.frame(k, 10)
	h.frame(k, 10)
	h.frame(k, 10)
	h.frame(k, 10)

	assert.Equal(t, []clock.Millis{0, 20, 40}, firedAt)
}

func TestKeymap_Register(t *testing.T) {
	h := newHarness()
	m := NewKeymap("menu", h.timers)

	require.NoError(t, m.Register(ebiten.KeyA, Press(0, 0, 0, nil)))
	require.NoError(t, m.Register(ebiten.KeyB, Press(0, 0, 0, nil)))
	assert.ErrorIs(t, m.Register(ebiten.KeyA, Press(0, 0, 0, nil)), ErrDuplicateKey)
	assert.ErrorIs(t, m.Register(ebiten.KeyC, nil), ErrNilAction)

	assert.Equal(t, []ebiten.Key{ebiten.KeyA, ebiten.KeyB}, m.Keys())
	assert.Equal(t, 2, h.timers.Len())

	assert.NoError(t, m.DoActionOnKeyInput(ebiten.KeyA))
	assert.ErrorIs(t, m.DoActionOnKeyInput(ebiten.KeyC), ErrUnknownKey)

	m.Close()
	assert.Equal(t, 0, h.timers.Len())
}

func TestKeymap_ReleaseAllIsSilent(t *testing.T) {
	h := newHarness()
	presses, releases := 0, 0
	a := Press(0, 50, 50, func() { presses++ }).WithRelease(func() { releases++ })
	k := h.keyboard(t, "ship", map[ebiten.Key]*KeyAction{ebiten.KeyZ: a})

	h.frame(k, 10, Edge{Key: ebiten.KeyZ, Pressed: true})
	k.ReleaseAll()
	h.frame(k, 10)
	h.frame(k, 100)

	assert.Equal(t, 1, presses)
	assert.Equal(t, 0, releases)
	assert.False(t, a.IsPressed())
	assert.Equal(t, PhaseIdle, a.Phase())
}

func TestKeyboard_UseReleasesOutgoingLayout(t *testing.T) {
	h := newHarness()
	menuPresses, shipPresses := 0, 0

	menu := NewKeymap("menu", h.timers)
	require.NoError(t, menu.Register(ebiten.KeyEnter, Press(0, 100, 100, func() { menuPresses++ })))
	ship := NewKeymap("ship", h.timers)
	require.NoError(t, ship.Register(ebiten.KeyEnter, Press(0, 100, 100, func() { shipPresses++ })))

	k := NewKeyboard()
	k.Add(menu)
	k.Add(ship)
	assert.Nil(t, k.Current())
	assert.ErrorIs(t, k.Use("pause"), ErrUnknownLayout)

	require.NoError(t, k.Use("menu"))
	h.frame(k, 10, Edge{Key: ebiten.KeyEnter, Pressed: true})
	require.Equal(t, 1, menuPresses)

	require.NoError(t, k.Use("ship"))
	a, _ := menu.Action(ebiten.KeyEnter)
	assert.False(t, a.IsPressed(), "outgoing layout must not keep stuck keys")

	h.frame(k, 200)
	assert.Equal(t, 0, shipPresses, "held key needs a fresh press in the new layout")

	require.NoError(t, k.Use("menu"))
	h.frame(k, 200)
	assert.Equal(t, 1, menuPresses)
}

func TestKeyboard_SwitchFromCallback(t *testing.T) {
	h := newHarness()
	k := NewKeyboard()
	resumed := 0

	play := NewKeymap("play", h.timers)
	pause := NewKeymap("pause", h.timers)
	require.NoError(t, play.Register(ebiten.KeyEscape, Press(0, 1000, 1000, func() { _ = k.Use("pause") })))
	require.NoError(t, pause.Register(ebiten.KeyEscape, Press(0, 1000, 1000, func() {
		resumed++
		_ = k.Use("play")
	})))
	k.Add(play)
	k.Add(pause)
	require.NoError(t, k.Use("play"))

	h.frame(k, 16, Edge{Key: ebiten.KeyEscape, Pressed: true})
	assert.Equal(t, "pause", k.Current().Name())

	h.frame(k, 16, Edge{Key: ebiten.KeyEscape, Pressed: false})
	h.frame(k, 16, Edge{Key: ebiten.KeyEscape, Pressed: true})
	assert.Equal(t, 1, resumed)
	assert.Equal(t, "play", k.Current().Name())
}

func TestKeyboard_Remove(t *testing.T) {
	h := newHarness()
	k := h.keyboard(t, "menu", map[ebiten.Key]*KeyAction{
		ebiten.KeyA: Press(0, 0, 0, nil),
	})
	require.Equal(t, 1, h.timers.Len())

	k.Remove("menu")
	k.Remove("menu")

	assert.Nil(t, k.Current())
	_, ok := k.Layout("menu")
	assert.False(t, ok)
	assert.Equal(t, 0, h.timers.Len())
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseIdle, "Idle"},
		{PhaseDelaying, "Delaying"},
		{PhaseFirstInterval, "FirstInterval"},
		{PhaseRepeating, "Repeating"},
		{Phase(42), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}
