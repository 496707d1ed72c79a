package replay

import "github.com/younwookim/auraboros/internal/domain/clock"

// Version is the replay file format version.
const Version = "2.0"

// EdgeInput records one key edge
type EdgeInput struct {
	K string `json:"k"`           // Key name, e.g. "ArrowUp"
	P bool   `json:"p,omitempty"` // Pressed; false is a release
}

// FrameInput records the clock and key edges of a single frame
type FrameInput struct {
	F int          `json:"f"`           // Frame number
	T clock.Millis `json:"t"`           // Source clock reading
	E []EdgeInput  `json:"e,omitempty"` // Edges in arrival order
	R bool         `json:"r,omitempty"` // Keyboard reset before the edges
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Scene     string       `json:"scene"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
