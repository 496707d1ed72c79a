package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand"
	"time"

	"github.com/younwookim/auraboros/internal/application/engine"
	"github.com/younwookim/auraboros/internal/application/game"
	"github.com/younwookim/auraboros/internal/application/replay"
	"github.com/younwookim/auraboros/internal/application/scene"
	"github.com/younwookim/auraboros/internal/application/scene/playing"
	"github.com/younwookim/auraboros/internal/application/scene/title"
	"github.com/younwookim/auraboros/internal/domain/clock"
	"github.com/younwookim/auraboros/internal/domain/keyinput"
	"github.com/younwookim/auraboros/internal/infrastructure/config"
	"github.com/younwookim/auraboros/internal/infrastructure/sound"
)

// options are the command line settings of a session
type options struct {
	configDir string
	record    string
	replay    string
	watch     bool
	seed      int64
	mute      bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var o options
	fset := flag.NewFlagSet("8trail", flag.ContinueOnError)
	fset.SetOutput(output)
	fset.StringVar(&o.configDir, "config", "", "Load configs from a directory instead of the embedded ones")
	fset.StringVar(&o.record, "record", "", "Record input to file (e.g., -record replay.json)")
	fset.StringVar(&o.replay, "replay", "", "Play back a recorded session")
	fset.BoolVar(&o.watch, "watch", false, "Reload keymaps.yaml when it changes (needs -config)")
	fset.Int64Var(&o.seed, "seed", 0, "RNG seed, 0 picks one")
	fset.BoolVar(&o.mute, "mute", false, "Disable sound")
	if err := fset.Parse(args); err != nil {
		return options{}, err
	}

	if o.watch && o.configDir == "" {
		return options{}, errors.New("-watch needs -config")
	}
	if o.record != "" && o.replay != "" {
		return options{}, errors.New("-record and -replay are exclusive")
	}
	return o, nil
}

// platform is what a session takes from the window system.
type platform struct {
	edges   keyinput.EdgeSource
	focused func() bool
	sound   sound.Player // nil synthesizes the configured cues
}

// session owns one run of the game, live or replayed.
type session struct {
	opts     options
	loader   *config.Loader
	cfg      *config.Config
	engine   *engine.Engine
	ctx      *scene.Context
	game     *game.Game
	tick     *clock.Tick
	recorder *replay.Recorder
	replayer *replay.Replayer
	watcher  *config.Watcher
	logger   *log.Logger
}

func newSession(opts options, embedded fs.FS, plat platform, logger *log.Logger) (*session, error) {
	s := &session{opts: opts, logger: logger}
	if opts.configDir != "" {
		s.loader = config.NewLoader(opts.configDir)
	} else {
		s.loader = config.NewFSLoader(embedded, "")
	}
	cfg, err := s.loader.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	s.cfg = cfg

	seed := opts.seed
	var src clock.Clock
	edges := plat.edges
	focused := plat.focused
	advance := s.advanceTick
	if opts.replay != "" {
		data, err := replay.LoadReplay(opts.replay)
		if err != nil {
			return nil, err
		}
		r, err := replay.NewReplayer(*data)
		if err != nil {
			return nil, err
		}
		s.replayer = r
		src, edges, seed = r, r, r.Seed()
		focused = nil // resets come from the recording
		advance = s.advanceReplay
		logger.Printf("Replaying %s (%d frames, seed: %d)", opts.replay, r.TotalFrames(), seed)
	} else {
		s.tick = clock.NewTick(cfg.Game.Display.TPS)
		src = s.tick
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s.engine = engine.New(src, edges, logger)
	if opts.record != "" {
		s.recorder = replay.NewRecorder(seed, "title")
		s.engine.SetRecorder(s.recorder)
		logger.Printf("Recording enabled: %s (seed: %d)", opts.record, seed)
	}

	snd := plat.sound
	switch {
	case opts.mute:
		snd = sound.Silent{}
	case snd == nil:
		snd = sound.NewSynth(cfg.Game.Sounds, logger)
	}
	s.ctx = scene.NewContext(s.engine, cfg, snd, rand.New(rand.NewSource(seed)))
	s.ctx.Title = title.New
	s.ctx.Playing = playing.New

	gopts := game.Options{Engine: s.engine, Advance: advance, Focused: focused}
	if opts.watch {
		w, err := config.NewWatcher(opts.configDir, config.KeymapsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", opts.configDir, err)
		}
		s.watcher = w
		gopts.Hooks = append(gopts.Hooks, s.reload)
	}

	display := cfg.Game.Display
	s.game = game.New(title.New(s.ctx), display.ScreenWidth, display.ScreenHeight, gopts)
	s.game.SetDT(1.0 / float64(s.tps()))
	return s, nil
}

func (s *session) tps() int {
	if tps := s.cfg.Game.Display.TPS; tps > 0 {
		return tps
	}
	return 60
}

func (s *session) advanceTick() bool {
	s.tick.Advance()
	return true
}

func (s *session) advanceReplay() bool {
	if !s.replayer.Next() {
		s.logger.Printf("Replay finished (%d frames)", s.replayer.TotalFrames())
		return false
	}
	if s.replayer.Released() {
		s.engine.ReleaseAll()
	}
	return true
}

// reload applies keymap edits picked up by the watcher.
func (s *session) reload() {
	for _, name := range s.watcher.Poll() {
		if name != config.KeymapsFile {
			continue
		}
		km, err := s.loader.LoadKeymaps()
		if err != nil {
			s.logger.Printf("Keeping old keymaps: %v", err)
			continue
		}
		s.cfg.Keymaps = km
		s.ctx.Input.Retime(s.engine.Keyboard, km)
		s.logger.Printf("Reloaded %s", name)
	}
}

// close ends the session and saves the recording, if any.
func (s *session) close() error {
	s.game.Close()
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	if s.recorder == nil {
		return nil
	}

	s.recorder.Stop()
	if err := s.recorder.Save(s.opts.record); err != nil {
		return fmt.Errorf("failed to save recording: %w", err)
	}
	s.logger.Printf("Recording saved: %s (%d frames)", s.opts.record, s.recorder.FrameCount())
	return nil
}
