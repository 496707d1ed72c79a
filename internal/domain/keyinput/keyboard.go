package keyinput

import (
	"errors"
	"fmt"
)

// ErrUnknownLayout is returned when switching to an unregistered layout.
var ErrUnknownLayout = errors.New("unknown keymap layout")

// Keyboard holds the named layouts of a scene; at most one is current.
type Keyboard struct {
	layouts map[string]*Keymap
	current *Keymap
}

// NewKeyboard creates a keyboard with no layouts.
func NewKeyboard() *Keyboard {
	return &Keyboard{layouts: make(map[string]*Keymap)}
}

// Add registers m under its name, replacing a layout with the same name.
// A replaced current layout is released and m becomes current.
func (k *Keyboard) Add(m *Keymap) {
	old, ok := k.layouts[m.Name()]
	k.layouts[m.Name()] = m
	if ok && old == k.current {
		old.ReleaseAll()
		k.current = m
	}
}

// Remove unregisters the layout and releases its timers. Removing the
// current layout leaves the keyboard without one.
func (k *Keyboard) Remove(name string) {
	m, ok := k.layouts[name]
	if !ok {
		return
	}
	if m == k.current {
		m.ReleaseAll()
		k.current = nil
	}
	m.Close()
	delete(k.layouts, name)
}

// Layout returns the layout registered as name.
func (k *Keyboard) Layout(name string) (*Keymap, bool) {
	m, ok := k.layouts[name]
	return m, ok
}

// Use makes name the current layout. The outgoing layout is released so no
// key stays stuck.
func (k *Keyboard) Use(name string) error {
	m, ok := k.layouts[name]
	if !ok {
		return fmt.Errorf("failed to use %q: %w", name, ErrUnknownLayout)
	}
	if m == k.current {
		return nil
	}
	if k.current != nil {
		k.current.ReleaseAll()
	}
	k.current = m
	return nil
}

// Current returns the current layout, or nil.
func (k *Keyboard) Current() *Keymap {
	return k.current
}

// HandleEdges routes edges to the current layout.
func (k *Keyboard) HandleEdges(edges []Edge) {
	if k.current == nil {
		return
	}
	for _, e := range edges {
		k.current.HandleEdge(e)
	}
}

// Poll polls the current layout.
func (k *Keyboard) Poll() {
	if k.current != nil {
		k.current.Poll()
	}
}

// ReleaseAll releases the current layout, e.g. on focus loss.
func (k *Keyboard) ReleaseAll() {
	if k.current != nil {
		k.current.ReleaseAll()
	}
}
