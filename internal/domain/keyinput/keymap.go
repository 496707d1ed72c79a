package keyinput

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/auraboros/internal/domain/timer"
)

var (
	// ErrDuplicateKey is returned when a key is registered twice in a keymap.
	ErrDuplicateKey = errors.New("key already registered")
	// ErrUnknownKey is returned when polling a key the keymap does not track.
	ErrUnknownKey = errors.New("key not registered")
	// ErrNilAction is returned when registering a nil action.
	ErrNilAction = errors.New("nil key action")
)

// Edge is a raw press or release of a key.
type Edge struct {
	Key     ebiten.Key
	Pressed bool
}

// EdgeSource delivers the edges that happened since the previous frame, in
// the order they occurred.
type EdgeSource interface {
	AppendEdges(edges []Edge) []Edge
}

// Keymap is a named layout of key actions.
type Keymap struct {
	name    string
	timers  *timer.Registry
	keys    []ebiten.Key
	actions map[ebiten.Key]*KeyAction
}

// NewKeymap creates an empty keymap whose action timers come from timers.
func NewKeymap(name string, timers *timer.Registry) *Keymap {
	return &Keymap{
		name:    name,
		timers:  timers,
		actions: make(map[ebiten.Key]*KeyAction),
	}
}

// Name returns the layout name.
func (m *Keymap) Name() string {
	return m.name
}

// Register binds action to key.
func (m *Keymap) Register(key ebiten.Key, action *KeyAction) error {
	if action == nil {
		return fmt.Errorf("failed to register %s in %q: %w", key, m.name, ErrNilAction)
	}
	if _, ok := m.actions[key]; ok {
		return fmt.Errorf("failed to register %s in %q: %w", key, m.name, ErrDuplicateKey)
	}
	if action.timer == nil {
		action.timer = m.timers.New()
	}
	m.keys = append(m.keys, key)
	m.actions[key] = action
	return nil
}

// Action returns the action bound to key.
func (m *Keymap) Action(key ebiten.Key) (*KeyAction, bool) {
	a, ok := m.actions[key]
	return a, ok
}

// Keys returns the registered keys in registration order.
func (m *Keymap) Keys() []ebiten.Key {
	return append([]ebiten.Key(nil), m.keys...)
}

// HandleEdge records a raw key state change. Untracked keys are ignored.
func (m *Keymap) HandleEdge(e Edge) {
	if a, ok := m.actions[e.Key]; ok {
		a.setPressed(e.Pressed)
	}
}

// DoActionOnKeyInput advances the repeat state of key and fires its
// callbacks when due. Call once per frame per key.
func (m *Keymap) DoActionOnKeyInput(key ebiten.Key) error {
	a, ok := m.actions[key]
	if !ok {
		return fmt.Errorf("failed to poll %s in %q: %w", key, m.name, ErrUnknownKey)
	}
	a.poll()
	return nil
}

// Poll runs DoActionOnKeyInput for every key in registration order.
func (m *Keymap) Poll() {
	for _, key := range m.keys {
		if a, ok := m.actions[key]; ok {
			a.poll()
		}
	}
}

// ReleaseAll forces every key up without firing release callbacks.
func (m *Keymap) ReleaseAll() {
	for _, a := range m.actions {
		a.release()
	}
}

// Close unregisters every action timer. The keymap must not be used afterwards.
func (m *Keymap) Close() {
	for _, a := range m.actions {
		m.timers.Forget(a.timer)
	}
}
