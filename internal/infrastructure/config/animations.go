package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/younwookim/auraboros/internal/domain/animation"
	"github.com/younwookim/auraboros/internal/domain/clock"
)

// AnimationsConfig is the root config for animations.yaml
type AnimationsConfig struct {
	FrameSets  map[string][]YAMLColor `yaml:"framesets"`
	Animations []AnimationConfig      `yaml:"animations"`
}

// AnimationConfig describes one named animation.
type AnimationConfig struct {
	Name       string `yaml:"name"`
	Frames     string `yaml:"frames"`
	IntervalMs int    `yaml:"interval_ms"`
	Loop       *int   `yaml:"loop"` // defaults to infinite
	Autoplay   bool   `yaml:"autoplay"`
}

// Spec converts the config to an animation spec.
func (a AnimationConfig) Spec() animation.Spec {
	loop := animation.Infinite
	if a.Loop != nil {
		loop = *a.Loop
	}
	return animation.Spec{
		Name:      a.Name,
		Frames:    a.Frames,
		Interval:  clock.Millis(a.IntervalMs),
		LoopLimit: loop,
		Autoplay:  a.Autoplay,
	}
}

// Colors returns a frame set as plain colors.
func (c *AnimationsConfig) Colors(key string) ([]color.NRGBA, bool) {
	set, ok := c.FrameSets[key]
	if !ok {
		return nil, false
	}
	out := make([]color.NRGBA, len(set))
	for i, col := range set {
		out[i] = col.NRGBA
	}
	return out, true
}

// YAMLColor is a "#rrggbb" or "#rrggbbaa" color.
type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 0xff
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.NRGBA = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}
