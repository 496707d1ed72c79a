package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	GameFile       = "game.json"
	KeymapsFile    = "keymaps.yaml"
	AnimationsFile = "animations.yaml"
)

// Config holds all loaded configurations
type Config struct {
	Game       *GameConfig
	Keymaps    *KeymapsConfig
	Animations *AnimationsConfig
}

// Loader loads configuration files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader was created for. It is empty
// for loaders over embedded files.
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadGame loads game.json
func (l *Loader) LoadGame() (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, GameFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", GameFile, err)
	}

	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", GameFile, err)
	}

	return &cfg, nil
}

// LoadKeymaps loads and validates keymaps.yaml
func (l *Loader) LoadKeymaps() (*KeymapsConfig, error) {
	data, err := fs.ReadFile(l.fsys, KeymapsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", KeymapsFile, err)
	}

	var cfg KeymapsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", KeymapsFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeymapsFile, err)
	}

	return &cfg, nil
}

// LoadAnimations loads animations.yaml
func (l *Loader) LoadAnimations() (*AnimationsConfig, error) {
	data, err := fs.ReadFile(l.fsys, AnimationsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", AnimationsFile, err)
	}

	var cfg AnimationsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", AnimationsFile, err)
	}
	for _, a := range cfg.Animations {
		if _, ok := cfg.FrameSets[a.Frames]; !ok {
			return nil, fmt.Errorf("invalid %s: animation %q uses unknown frame set %q", AnimationsFile, a.Name, a.Frames)
		}
	}

	return &cfg, nil
}

// LoadAll loads every configuration file
func (l *Loader) LoadAll() (*Config, error) {
	game, err := l.LoadGame()
	if err != nil {
		return nil, err
	}

	keymaps, err := l.LoadKeymaps()
	if err != nil {
		return nil, err
	}

	animations, err := l.LoadAnimations()
	if err != nil {
		return nil, err
	}

	return &Config{
		Game:       game,
		Keymaps:    keymaps,
		Animations: animations,
	}, nil
}
