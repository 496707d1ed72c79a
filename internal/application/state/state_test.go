package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_String(t *testing.T) {
	tests := []struct {
		state    GameState
		expected string
		layout   string
	}{
		{StateTitle, "Title", "title"},
		{StatePlaying, "Playing", "playing"},
		{StatePaused, "Paused", "paused"},
		{StateGameOver, "GameOver", "gameover"},
		{GameState(99), "Unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
			assert.Equal(t, tt.layout, tt.state.Layout())
		})
	}
}

func TestGameStateConstants(t *testing.T) {
	// Verify the iota ordering
	assert.Equal(t, GameState(0), StateTitle)
	assert.Equal(t, GameState(1), StatePlaying)
	assert.Equal(t, GameState(2), StatePaused)
	assert.Equal(t, GameState(3), StateGameOver)
}
