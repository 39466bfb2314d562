package main

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/GeFeC/nesgo/internal/input"
	"github.com/GeFeC/nesgo/internal/system"
)

// game implements ebiten.Game, translating keyboard state into controller 1
// input and blitting the core's completed frame buffer each Draw. It never
// touches System.Tick directly when audio is enabled: the audio stream is
// the sole driver of the master clock, per the single-threaded cooperative
// model the core assumes.
type game struct {
	sys   *system.System
	scale int

	mu         sync.Mutex
	driveTicks bool // true when muted: Update() must step the clock itself

	frame *image.RGBA
}

func newGame(sys *system.System, scale int) *game {
	return &game{
		sys:        sys,
		scale:      scale,
		driveTicks: true, // overridden by startAudio when audio is enabled
		frame:      image.NewRGBA(image.Rect(0, 0, 256, 240)),
	}
}

// startAudio wires an ebiten audio player to the system's sample callback
// and starts it; once playing, its Read calls become the only caller of
// System.Tick.
func (g *game) startAudio(sampleRate float64) {
	g.driveTicks = false
	ctx := audio.NewContext(int(sampleRate))
	stream := newPCMStream(g.sys, &g.mu, sampleRate)
	player, err := ctx.NewPlayer(stream)
	if err != nil {
		// Fall back to Update-driven ticking rather than leaving the
		// emulator paused.
		g.driveTicks = true
		return
	}
	player.Play()
	g.driveTicks = false
}

var keymap = map[ebiten.Key]input.Button{
	ebiten.KeyZ:          input.ButtonA,
	ebiten.KeyX:          input.ButtonB,
	ebiten.KeyBackspace:  input.ButtonSelect,
	ebiten.KeyEnter:      input.ButtonStart,
	ebiten.KeyArrowUp:    input.ButtonUp,
	ebiten.KeyArrowDown:  input.ButtonDown,
	ebiten.KeyArrowLeft:  input.ButtonLeft,
	ebiten.KeyArrowRight: input.ButtonRight,
}

func (g *game) Update() error {
	g.mu.Lock()
	for key, button := range keymap {
		g.sys.Input.Controller1.SetButton(button, ebiten.IsKeyPressed(key))
	}
	if g.driveTicks {
		g.sys.RunFrame()
	}
	g.mu.Unlock()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	buf := *g.sys.FrameBuffer()
	g.mu.Unlock()

	for y := 0; y < 240; y++ {
		for x := 0; x < 256; x++ {
			pixel := buf[y*256+x]
			i := g.frame.PixOffset(x, y)
			g.frame.Pix[i+0] = uint8(pixel >> 16)
			g.frame.Pix[i+1] = uint8(pixel >> 8)
			g.frame.Pix[i+2] = uint8(pixel)
			g.frame.Pix[i+3] = 0xFF
		}
	}
	screen.WritePixels(g.frame.Pix)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 256, 240
}
