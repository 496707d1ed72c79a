package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/auraboros/internal/domain/clock"
	"github.com/younwookim/auraboros/internal/domain/keyinput"
)

// Replayer plays recorded frames back. It is both the clock source and
// the edge source of an engine: call Next before every engine Step.
type Replayer struct {
	data   ReplayData
	edges  [][]keyinput.Edge
	frame  int
	now    clock.Millis
	active bool
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) (*Replayer, error) {
	edges := make([][]keyinput.Edge, len(data.Frames))
	for i, fi := range data.Frames {
		for _, ei := range fi.E {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(ei.K)); err != nil {
				return nil, fmt.Errorf("failed to decode frame %d: %w", fi.F, err)
			}
			edges[i] = append(edges[i], keyinput.Edge{Key: k, Pressed: ei.P})
		}
	}
	r := &Replayer{data: data, edges: edges}
	if len(data.Frames) > 0 {
		r.now = data.Frames[0].T
	}
	return r, nil
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadReplay(file)
}

// ReadReplay decodes replay data from r
func ReadReplay(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// Next moves to the next recorded frame. It returns false once every
// frame has been played; the clock then stays at the last reading.
func (r *Replayer) Next() bool {
	if r.frame >= len(r.data.Frames) {
		r.active = false
		return false
	}
	r.now = r.data.Frames[r.frame].T
	r.active = true
	r.frame++
	return true
}

// Now returns the recorded clock reading of the current frame.
func (r *Replayer) Now() clock.Millis {
	return r.now
}

// AppendEdges appends the current frame's edges. Repeated calls within a
// frame return the same edges.
func (r *Replayer) AppendEdges(edges []keyinput.Edge) []keyinput.Edge {
	if !r.active {
		return edges
	}
	return append(edges, r.edges[r.frame-1]...)
}

// Released reports whether the keyboard was reset in the current frame.
// Drivers forward it to Engine.ReleaseAll before stepping.
func (r *Replayer) Released() bool {
	return r.active && r.data.Frames[r.frame-1].R
}

// CurrentFrame returns the number of frames played so far
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Scene returns the scene the replay was recorded in
func (r *Replayer) Scene() string {
	return r.data.Scene
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.active = false
	if len(r.data.Frames) > 0 {
		r.now = r.data.Frames[0].T
	}
}
