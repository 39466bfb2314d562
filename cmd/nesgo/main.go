// Command nesgo is the thin CLI/host wrapper around the emulator core: it
// owns the window, the audio device and keyboard polling, none of which the
// core itself touches.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/GeFeC/nesgo/internal/cartridge"
	"github.com/GeFeC/nesgo/internal/system"
)

const (
	exitOK             = 0
	exitLoadError      = 1
	exitUnsupportedMap = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	mute := flag.Bool("mute", false, "disable audio output")
	scale := flag.Int("scale", 3, "integer window scale factor")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: nesgo [--mute] [--scale N] <rom.nes>")
		return exitLoadError
	}
	romPath := flag.Arg(0)

	cart, err := cartridge.LoadFromFile(romPath)
	if err != nil {
		var unsupported *cartridge.UnsupportedMapperError
		if errors.As(err, &unsupported) {
			log.Printf("load %s: %v", romPath, err)
			return exitUnsupportedMap
		}
		log.Printf("load %s: %v", romPath, err)
		return exitLoadError
	}

	cfg := system.DefaultConfig()
	cfg.Mute = *mute
	sys := system.New(cart, cfg)
	sys.SetROMPath(romPath)
	defer func() {
		if err := sys.Close(); err != nil {
			log.Printf("saving cartridge state: %v", err)
		}
	}()

	game := newGame(sys, *scale)
	if !*mute {
		game.startAudio(cfg.SampleRate)
	}

	ebiten.SetWindowTitle("nesgo - " + romPath)
	ebiten.SetWindowSize(256*(*scale), 240*(*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Printf("run: %v", err)
		return exitLoadError
	}
	return exitOK
}
