// Package input adapts Ebitengine's keyboard state to key edges.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/auraboros/internal/domain/keyinput"
)

// Keyboard reports the keys pressed and released since the previous tick.
// It must be read from inside ebiten's Update.
type Keyboard struct {
	keys []ebiten.Key
}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// AppendEdges appends releases before presses, so a key tapped and
// re-pressed within one tick ends up held.
func (k *Keyboard) AppendEdges(edges []keyinput.Edge) []keyinput.Edge {
	k.keys = inpututil.AppendJustReleasedKeys(k.keys[:0])
	edges = appendKeys(edges, k.keys, false)

	k.keys = inpututil.AppendJustPressedKeys(k.keys[:0])
	return appendKeys(edges, k.keys, true)
}

// Focused reports whether the window has input focus.
func (k *Keyboard) Focused() bool {
	return ebiten.IsFocused()
}

func appendKeys(edges []keyinput.Edge, keys []ebiten.Key, pressed bool) []keyinput.Edge {
	for _, key := range keys {
		edges = append(edges, keyinput.Edge{Key: key, Pressed: pressed})
	}
	return edges
}
