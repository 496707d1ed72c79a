package game

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/auraboros/internal/application/engine"
	"github.com/younwookim/auraboros/internal/application/scene"
	"github.com/younwookim/auraboros/internal/domain/clock"
	"github.com/younwookim/auraboros/internal/domain/keyinput"
)

// mockScene is a test double for Scene interface
type mockScene struct {
	updateCalled  int
	drawCalled    int
	onEnterCalled int
	onExitCalled  int
	nextScene     scene.Scene
	updateErr     error
	onUpdate      func()
}

func (m *mockScene) Update(dt float64) (scene.Scene, error) {
	m.updateCalled++
	if m.onUpdate != nil {
		m.onUpdate()
	}
	return m.nextScene, m.updateErr
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.drawCalled++
}

func (m *mockScene) OnEnter() {
	m.onEnterCalled++
}

func (m *mockScene) OnExit() {
	m.onExitCalled++
}

func TestNew(t *testing.T) {
	mockInitial := &mockScene{}
	g := New(mockInitial, 320, 240, Options{})

	assert.NotNil(t, g)
	assert.Equal(t, 1, mockInitial.onEnterCalled, "OnEnter should be called on initial scene")
}

func TestGame_Update_DelegatesToCurrentScene(t *testing.T) {
	mockInitial := &mockScene{}
	g := New(mockInitial, 320, 240, Options{})

	err := g.Update()
	assert.NoError(t, err)
	assert.Equal(t, 1, mockInitial.updateCalled, "Update should delegate to current scene")
}

func TestGame_Draw_DelegatesToCurrentScene(t *testing.T) {
	mockInitial := &mockScene{}
	g := New(mockInitial, 320, 240, Options{})

	// Create a dummy image for testing
	img := ebiten.NewImage(320, 240)
	g.Draw(img)

	assert.Equal(t, 1, mockInitial.drawCalled, "Draw should delegate to current scene")
}

func TestGame_Layout(t *testing.T) {
	mockInitial := &mockScene{}
	g := New(mockInitial, 320, 240, Options{})

	w, h := g.Layout(640, 480)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestGame_SceneTransition(t *testing.T) {
	scene1 := &mockScene{}
	scene2 := &mockScene{}

	// scene1 will transition to scene2 on first update
	scene1.nextScene = scene2

	g := New(scene1, 320, 240, Options{})
	assert.Equal(t, 1, scene1.onEnterCalled, "Initial scene OnEnter called")

	// First update triggers transition
	err := g.Update()
	assert.NoError(t, err)

	assert.Equal(t, 1, scene1.updateCalled, "scene1 Update called")
	assert.Equal(t, 1, scene1.onExitCalled, "scene1 OnExit called on transition")
	assert.Equal(t, 1, scene2.onEnterCalled, "scene2 OnEnter called on transition")

	// Second update goes to scene2
	err = g.Update()
	assert.NoError(t, err)
	assert.Equal(t, 1, scene2.updateCalled, "scene2 Update called")
}

func TestGame_NoTransitionWhenNil(t *testing.T) {
	scene1 := &mockScene{nextScene: nil} // Returns nil, no transition

	g := New(scene1, 320, 240, Options{})

	// Multiple updates, no transition
	for i := 0; i < 5; i++ {
		err := g.Update()
		assert.NoError(t, err)
	}

	assert.Equal(t, 5, scene1.updateCalled, "All updates go to scene1")
	assert.Equal(t, 0, scene1.onExitCalled, "No OnExit when no transition")
}

func TestGame_UpdateError(t *testing.T) {
	scene1 := &mockScene{updateErr: assert.AnError}

	g := New(scene1, 320, 240, Options{})

	err := g.Update()
	assert.Error(t, err, "Error should propagate from scene")
}

// heldKey delivers a single press of key on the first frame.
type heldKey struct {
	key  ebiten.Key
	sent bool
}

func (h *heldKey) AppendEdges(edges []keyinput.Edge) []keyinput.Edge {
	if h.sent {
		return edges
	}
	h.sent = true
	return append(edges, keyinput.Edge{Key: h.key, Pressed: true})
}

func newTestEngine(t *testing.T, src clock.Clock, edges keyinput.EdgeSource) (*engine.Engine, *int) {
	t.Helper()
	eng := engine.New(src, edges, log.New(io.Discard, "", 0))
	presses := 0
	m := keyinput.NewKeymap("test", eng.Timers)
	require.NoError(t, m.Register(ebiten.KeyZ, keyinput.Press(0, 50, 50, func() { presses++ })))
	eng.Keyboard.Add(m)
	require.NoError(t, eng.Keyboard.Use("test"))
	return eng, &presses
}

func TestGame_StepsEngineBeforeScene(t *testing.T) {
	tick := clock.NewTick(60)
	eng, presses := newTestEngine(t, tick, &heldKey{key: ebiten.KeyZ})

	var seen []int
	s := &mockScene{}
	s.onUpdate = func() { seen = append(seen, *presses) }

	g := New(s, 320, 240, Options{
		Engine:  eng,
		Advance: func() bool { tick.Advance(); return true },
	})
	for i := 0; i < 4; i++ {
		require.NoError(t, g.Update())
	}

	assert.Equal(t, []int{1, 1, 1, 2}, seen, "key callbacks of a frame run before the scene sees it")
	assert.Equal(t, 4, eng.Frame())
}

func TestGame_AdvanceEndsGame(t *testing.T) {
	g := New(&mockScene{}, 320, 240, Options{Advance: func() bool { return false }})

	err := g.Update()
	assert.True(t, errors.Is(err, ebiten.Termination))
}

func TestGame_FocusLossReleasesKeys(t *testing.T) {
	tick := clock.NewTick(60)
	eng, presses := newTestEngine(t, tick, &heldKey{key: ebiten.KeyZ})

	focused := true
	g := New(&mockScene{}, 320, 240, Options{
		Engine:  eng,
		Advance: func() bool { tick.Advance(); return true },
		Focused: func() bool { return focused },
	})
	require.NoError(t, g.Update())
	assert.Equal(t, 1, *presses)

	focused = false
	for i := 0; i < 30; i++ {
		require.NoError(t, g.Update())
	}
	assert.Equal(t, 1, *presses, "released key does not repeat")

	action, _ := eng.Keyboard.Current().Action(ebiten.KeyZ)
	assert.False(t, action.IsPressed())
	assert.Equal(t, keyinput.PhaseIdle, action.Phase())
}

func TestGame_Hooks(t *testing.T) {
	calls := 0
	g := New(&mockScene{}, 320, 240, Options{Hooks: []func(){func() { calls++ }}})

	require.NoError(t, g.Update())
	require.NoError(t, g.Update())
	assert.Equal(t, 2, calls)
}

func TestGame_Close(t *testing.T) {
	s := &mockScene{}
	g := New(s, 320, 240, Options{})
	g.Close()
	assert.Equal(t, 1, s.onExitCalled)
	assert.Same(t, s, g.Current())
}
