package system

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/auraboros/internal/domain/clock"
	"github.com/younwookim/auraboros/internal/domain/keyinput"
	"github.com/younwookim/auraboros/internal/domain/timer"
	"github.com/younwookim/auraboros/internal/infrastructure/config"
)

func boolPtr(b bool) *bool { return &b }

func createTestKeymapsConfig() *config.KeymapsConfig {
	return &config.KeymapsConfig{
		Layouts: map[string][]config.BindingConfig{
			"playing": {
				{Action: "fire", Keys: []string{"Z", "Space"}, DelayMs: 0, FirstIntervalMs: 100, IntervalMs: 50},
				{Action: "left", Keys: []string{"ArrowLeft"}, Release: true},
			},
			"menu": {
				{Action: "select", Keys: []string{"Enter"}, Press: boolPtr(false), Release: true},
			},
		},
	}
}

type inputHarness struct {
	clk    *clock.Manual
	timers *timer.Registry
	sys    *InputSystem
}

func newInputHarness(cfg *config.KeymapsConfig) *inputHarness {
	clk := clock.NewManual(0)
	timers := timer.NewRegistry(clk)
	return &inputHarness{clk: clk, timers: timers, sys: NewInputSystem(cfg, timers, nil)}
}

// frame advances time, refreshes timers and polls m.
func (h *inputHarness) frame(m *keyinput.Keymap, d clock.Millis) {
	h.clk.Advance(d)
	h.timers.UpdateAll()
	m.Poll()
}

func TestInputSystem_BuildLayout(t *testing.T) {
	h := newInputHarness(createTestKeymapsConfig())

	fires := 0
	m, err := h.sys.BuildLayout("playing", Handlers{
		"fire": {Press: func() { fires++ }},
		"left": {Press: func() {}, Release: func() {}},
	})
	require.NoError(t, err)

	assert.Equal(t, []ebiten.Key{ebiten.KeyZ, ebiten.KeySpace, ebiten.KeyArrowLeft}, m.Keys())

	z, ok := m.Action(ebiten.KeyZ)
	require.True(t, ok)
	assert.Equal(t, clock.Millis(100), z.FirstInterval)
	assert.Equal(t, clock.Millis(50), z.Interval)
	assert.True(t, z.PressEnabled)
	assert.False(t, z.ReleaseEnabled)

	space, _ := m.Action(ebiten.KeySpace)
	assert.NotSame(t, z, space, "each key has its own repeat state")

	m.HandleEdge(keyinput.Edge{Key: ebiten.KeyZ, Pressed: true})
	h.frame(m, 0)
	assert.Equal(t, 1, fires)
	h.frame(m, 100)
	assert.Equal(t, 2, fires)
	h.frame(m, 50)
	assert.Equal(t, 3, fires)
}

func TestInputSystem_BuildLayout_ReleaseOnly(t *testing.T) {
	h := newInputHarness(createTestKeymapsConfig())

	selected := 0
	m, err := h.sys.BuildLayout("menu", Handlers{
		"select": {Press: func() { t.Fatal("press is disabled") }, Release: func() { selected++ }},
	})
	require.NoError(t, err)

	m.HandleEdge(keyinput.Edge{Key: ebiten.KeyEnter, Pressed: true})
	h.frame(m, 16)
	h.frame(m, 500)
	assert.Equal(t, 0, selected)

	m.HandleEdge(keyinput.Edge{Key: ebiten.KeyEnter, Pressed: false})
	h.frame(m, 16)
	assert.Equal(t, 1, selected)
}

func TestInputSystem_BuildLayout_Errors(t *testing.T) {
	t.Run("unknown layout", func(t *testing.T) {
		h := newInputHarness(createTestKeymapsConfig())
		_, err := h.sys.BuildLayout("nope", Handlers{})
		assert.True(t, errors.Is(err, keyinput.ErrUnknownLayout))
	})

	t.Run("missing handler releases timers", func(t *testing.T) {
		h := newInputHarness(createTestKeymapsConfig())
		_, err := h.sys.BuildLayout("playing", Handlers{"fire": {}})
		assert.True(t, errors.Is(err, ErrUnknownAction))
		assert.Equal(t, 0, h.timers.Len())
	})

	t.Run("duplicate key", func(t *testing.T) {
		cfg := &config.KeymapsConfig{Layouts: map[string][]config.BindingConfig{
			"a": {
				{Action: "x", Keys: []string{"Z"}},
				{Action: "y", Keys: []string{"Z"}},
			},
		}}
		h := newInputHarness(cfg)
		_, err := h.sys.BuildLayout("a", Handlers{"x": {}, "y": {}})
		assert.True(t, errors.Is(err, keyinput.ErrDuplicateKey))
	})
}

func TestInputSystem_Install(t *testing.T) {
	h := newInputHarness(createTestKeymapsConfig())
	kb := keyinput.NewKeyboard()

	layouts := map[string]Handlers{
		"playing": {"fire": {}, "left": {}},
		"menu":    {"select": {}},
	}
	require.NoError(t, h.sys.Install(kb, layouts))
	require.NoError(t, kb.Use("menu"))
	timers := h.timers.Len()

	// reinstalling replaces the layouts without leaking timers
	require.NoError(t, h.sys.Install(kb, layouts))
	assert.Equal(t, timers, h.timers.Len())
	_, ok := kb.Layout("playing")
	assert.True(t, ok)
}

func TestInputSystem_Retime(t *testing.T) {
	h := newInputHarness(createTestKeymapsConfig())
	kb := keyinput.NewKeyboard()
	require.NoError(t, h.sys.Install(kb, map[string]Handlers{"playing": {"fire": {}, "left": {}}}))

	updated := createTestKeymapsConfig()
	updated.Layouts["playing"][0].IntervalMs = 20
	updated.Layouts["playing"][0].Keys = []string{"Z", "Space", "X"}
	h.sys.Retime(kb, updated)

	m, _ := kb.Layout("playing")
	z, _ := m.Action(ebiten.KeyZ)
	assert.Equal(t, clock.Millis(20), z.Interval)
	_, ok := m.Action(ebiten.KeyX)
	assert.False(t, ok, "new keys need a rebuild")
}
