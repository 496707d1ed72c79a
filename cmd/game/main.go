package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/auraboros/internal/infrastructure/input"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	// Load configurations using embedded filesystem
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}

	kb := input.NewKeyboard()
	s, err := newSession(opts, fsys, platform{edges: kb, focused: kb.Focused}, log.Default())
	if err != nil {
		log.Fatal(err)
	}

	display := s.cfg.Game.Display
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle(display.Title)
	ebiten.SetTPS(s.tps())

	runErr := ebiten.RunGame(s.game)
	if err := s.close(); err != nil {
		log.Print(err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
