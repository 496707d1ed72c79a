package config

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeymapsConfig is the root config for keymaps.yaml
type KeymapsConfig struct {
	Layouts map[string][]BindingConfig `yaml:"layouts"`
}

// BindingConfig binds one logical action to keys with repeat timing.
type BindingConfig struct {
	Action          string   `yaml:"action"`
	Keys            []string `yaml:"keys"`
	DelayMs         int      `yaml:"delay_ms"`
	FirstIntervalMs int      `yaml:"first_interval_ms"`
	IntervalMs      int      `yaml:"interval_ms"`
	Press           *bool    `yaml:"press"` // defaults to true
	Release         bool     `yaml:"release"`
}

// PressEnabled reports whether the binding fires on press.
func (b BindingConfig) PressEnabled() bool {
	return b.Press == nil || *b.Press
}

// KeyCodes parses the binding's key names.
func (b BindingConfig) KeyCodes() ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(b.Keys))
	for _, name := range b.Keys {
		k, err := ParseKey(name)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", b.Action, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// ParseKey converts a key name such as "ArrowUp" or "Z" to an ebiten.Key.
func ParseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid key %q: %w", name, err)
	}
	return k, nil
}

// Validate checks every binding of every layout.
func (c *KeymapsConfig) Validate() error {
	for layout, bindings := range c.Layouts {
		for _, b := range bindings {
			if b.Action == "" {
				return fmt.Errorf("layout %q: binding without action", layout)
			}
			if len(b.Keys) == 0 {
				return fmt.Errorf("layout %q: action %q has no keys", layout, b.Action)
			}
			if b.DelayMs < 0 || b.FirstIntervalMs < 0 || b.IntervalMs < 0 {
				return fmt.Errorf("layout %q: action %q has negative timing", layout, b.Action)
			}
			if _, err := b.KeyCodes(); err != nil {
				return fmt.Errorf("layout %q: %w", layout, err)
			}
		}
	}
	return nil
}
