package system

import (
	"errors"
	"fmt"
	"log"

	"github.com/younwookim/auraboros/internal/domain/clock"
	"github.com/younwookim/auraboros/internal/domain/keyinput"
	"github.com/younwookim/auraboros/internal/domain/timer"
	"github.com/younwookim/auraboros/internal/infrastructure/config"
)

// ErrUnknownAction is returned when a layout binds an action with no handler.
var ErrUnknownAction = errors.New("no handler for action")

// Handler is the game side of one logical action.
type Handler struct {
	Press   func()
	Release func()
}

// Handlers maps action names to handlers.
type Handlers map[string]Handler

// InputSystem turns configured key layouts into keymaps
type InputSystem struct {
	config *config.KeymapsConfig
	timers *timer.Registry
	logger *log.Logger
}

// NewInputSystem creates a new input system
func NewInputSystem(cfg *config.KeymapsConfig, timers *timer.Registry, logger *log.Logger) *InputSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &InputSystem{config: cfg, timers: timers, logger: logger}
}

// BuildLayout creates the keymap for layout. Every key of a binding gets
// its own action, so two keys bound to "fire" repeat independently.
func (s *InputSystem) BuildLayout(layout string, handlers Handlers) (*keyinput.Keymap, error) {
	bindings, ok := s.config.Layouts[layout]
	if !ok {
		return nil, fmt.Errorf("failed to build %q: %w", layout, keyinput.ErrUnknownLayout)
	}

	m := keyinput.NewKeymap(layout, s.timers)
	for _, b := range bindings {
		h, ok := handlers[b.Action]
		if !ok {
			m.Close()
			return nil, fmt.Errorf("failed to build %q: %q: %w", layout, b.Action, ErrUnknownAction)
		}
		keys, err := b.KeyCodes()
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("failed to build %q: %w", layout, err)
		}
		for _, key := range keys {
			a := &keyinput.KeyAction{OnPress: h.Press, OnRelease: h.Release}
			applyBinding(a, b)
			if err := m.Register(key, a); err != nil {
				m.Close()
				return nil, err
			}
		}
	}
	return m, nil
}

// Install builds every named layout into kb.
func (s *InputSystem) Install(kb *keyinput.Keyboard, layouts map[string]Handlers) error {
	for name, handlers := range layouts {
		m, err := s.BuildLayout(name, handlers)
		if err != nil {
			return err
		}
		if old, ok := kb.Layout(name); ok {
			kb.Remove(old.Name())
		}
		kb.Add(m)
	}
	return nil
}

// Retime applies the timings of cfg to the layouts already installed in kb
// and keeps cfg for later builds. Keys that are not bound yet are skipped;
// adding keys takes a rebuild.
func (s *InputSystem) Retime(kb *keyinput.Keyboard, cfg *config.KeymapsConfig) {
	s.config = cfg
	for name, bindings := range cfg.Layouts {
		m, ok := kb.Layout(name)
		if !ok {
			continue
		}
		for _, b := range bindings {
			keys, err := b.KeyCodes()
			if err != nil {
				s.logger.Printf("input: %v", err)
				continue
			}
			for _, key := range keys {
				a, ok := m.Action(key)
				if !ok {
					s.logger.Printf("input: %s is not bound in %q, skipping", key, name)
					continue
				}
				applyBinding(a, b)
			}
		}
	}
}

func applyBinding(a *keyinput.KeyAction, b config.BindingConfig) {
	a.SetTiming(clock.Millis(b.DelayMs), clock.Millis(b.FirstIntervalMs), clock.Millis(b.IntervalMs))
	a.PressEnabled = b.PressEnabled()
	a.ReleaseEnabled = b.Release
}
