package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/auraboros/internal/application/replay"
	"github.com/younwookim/auraboros/internal/domain/clock"
)

const testKeymaps = `
layouts:
  ship:
    - action: fire
      keys: [Z]
      delay_ms: 0
      first_interval_ms: 100
      interval_ms: 50
      release: true
`

// writeFixtures writes a keymap and a replay that holds Z from frame 0 to
// frame 20, one frame every 10ms.
func writeFixtures(t *testing.T) (dir, file string) {
	t.Helper()
	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keymaps.yaml"), []byte(testKeymaps), 0o644))

	data := replay.ReplayData{Version: replay.Version, Scene: "test"}
	for i := 0; i < 30; i++ {
		fi := replay.FrameInput{F: i, T: clock.Millis(i * 10)}
		switch i {
		case 0:
			fi.E = []replay.EdgeInput{{K: "Z", P: true}}
		case 20:
			fi.E = []replay.EdgeInput{{K: "Z"}}
		}
		data.Frames = append(data.Frames, fi)
	}
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	file = filepath.Join(dir, "run.json")
	require.NoError(t, os.WriteFile(file, raw, 0o644))
	return dir, file
}

func firings(out string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(out, "\n") {
		f := strings.Fields(line)
		if len(f) == 4 && f[2] == "fire" {
			rows = append(rows, f)
		}
	}
	return rows
}

func TestRun_TracesRepeats(t *testing.T) {
	dir, file := writeFixtures(t)
	var stdout, stderr bytes.Buffer

	require.NoError(t, run([]string{"-config", dir, "-layout", "ship", file}, &stdout, &stderr))

	assert.Equal(t, [][]string{
		{"0", "0ms", "fire", "press"},
		{"10", "100ms", "fire", "press"},
		{"15", "150ms", "fire", "press"},
		{"20", "200ms", "fire", "release"},
	}, firings(stdout.String()))
	assert.Contains(t, stdout.String(), "30 frames, actions: [fire]")
}

func TestRun_Errors(t *testing.T) {
	dir, file := writeFixtures(t)
	var out bytes.Buffer

	assert.Error(t, run(nil, &out, &out), "replay file is required")
	assert.Error(t, run([]string{"-config", dir, "-layout", "menu", file}, &out, &out), "unknown layout")
	assert.Error(t, run([]string{"-config", dir, "-layout", "ship", filepath.Join(dir, "missing.json")}, &out, &out))
	assert.Error(t, run([]string{"-config", t.TempDir(), file}, &out, &out), "no keymaps.yaml")
}
