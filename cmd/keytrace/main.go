// Command keytrace replays a recorded session against one key layout and
// prints when every action fired. It runs headless, so keymap timings can
// be tuned without opening a window.
//
//	keytrace -config cmd/game/configs -layout playing run.json
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/younwookim/auraboros/internal/application/engine"
	"github.com/younwookim/auraboros/internal/application/replay"
	"github.com/younwookim/auraboros/internal/application/system"
	"github.com/younwookim/auraboros/internal/infrastructure/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fset := flag.NewFlagSet("keytrace", flag.ContinueOnError)
	fset.SetOutput(stderr)
	configDir := fset.String("config", "cmd/game/configs", "Directory holding keymaps.yaml")
	layout := fset.String("layout", "playing", "Key layout to trace")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() != 1 {
		return errors.New("usage: keytrace [-config dir] [-layout name] replay.json")
	}

	keymaps, err := config.NewLoader(*configDir).LoadKeymaps()
	if err != nil {
		return err
	}
	data, err := replay.LoadReplay(fset.Arg(0))
	if err != nil {
		return err
	}
	r, err := replay.NewReplayer(*data)
	if err != nil {
		return err
	}

	eng := engine.New(r, r, log.New(stderr, "keytrace: ", 0))
	trace := func(action, edge string) func() {
		return func() {
			_, _ = fmt.Fprintf(stdout, "%6d %8dms  %-8s %s\n", eng.Frame(), eng.Now(), action, edge)
		}
	}
	handlers := system.Handlers{}
	for _, b := range keymaps.Layouts[*layout] {
		handlers[b.Action] = system.Handler{Press: trace(b.Action, "press"), Release: trace(b.Action, "release")}
	}

	input := system.NewInputSystem(keymaps, eng.Timers, eng.Logger())
	m, err := input.BuildLayout(*layout, handlers)
	if err != nil {
		return err
	}
	eng.Keyboard.Add(m)
	if err := eng.Keyboard.Use(*layout); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(stdout, "%6s %10s  %-8s %s\n", "frame", "time", "action", "edge")
	for r.Next() {
		if r.Released() {
			eng.ReleaseAll()
		}
		eng.Step()
	}
	_, _ = fmt.Fprintf(stdout, "%d frames, actions: %v\n", r.TotalFrames(), actionNames(handlers))
	return nil
}

func actionNames(h system.Handlers) []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
