// Package system wires the CPU, PPU, APU, controller ports and cartridge
// together behind a single master clock, mirroring the role the teacher's
// internal/bus package plays but driven cycle-by-cycle instead of
// instruction-by-instruction.
package system

import (
	"fmt"
	"os"

	"github.com/GeFeC/nesgo/internal/apu"
	"github.com/GeFeC/nesgo/internal/cartridge"
	"github.com/GeFeC/nesgo/internal/cpu"
	"github.com/GeFeC/nesgo/internal/input"
	"github.com/GeFeC/nesgo/internal/memory"
	"github.com/GeFeC/nesgo/internal/ppu"
)

// Config holds the System's tunable ambient settings.
type Config struct {
	SampleRate float64 // output audio sample rate, e.g. 44100
	Mute       bool
}

// DefaultConfig returns the settings used when the caller doesn't override
// them.
func DefaultConfig() Config {
	return Config{SampleRate: 44100}
}

// dmaUnit tracks an in-flight OAM DMA transfer as a cycle-stepped stall
// rather than an instantaneous 256-byte copy.
type dmaUnit struct {
	active    bool
	page      uint8
	total     int
	remaining int
	byteLatch uint8
}

// System is the NES console: the master clock driving CPU, PPU and APU in
// lockstep, plus the OAM DMA unit and audio resampler that live outside any
// single chip.
type System struct {
	CPU   *cpu.CPU
	PPU   *ppu.PPU
	APU   *apu.APU
	Input *input.Ports
	Cart  *cartridge.Cartridge

	bus    *memory.Bus
	ppuBus *memory.PPUBus

	masterCycle uint64
	dma         dmaUnit

	romPath string
}

// New constructs a System with a cartridge already loaded.
func New(cart *cartridge.Cartridge, cfg Config) *System {
	s := &System{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewPorts(),
		Cart:  cart,
	}

	s.bus = memory.New(s.PPU, s.APU, cart)
	s.bus.SetInputSystem(s.Input)
	s.bus.SetDMACallback(s.triggerOAMDMA)

	s.ppuBus = memory.NewPPUBus(cart, memory.MirrorMode(cart.GetMirrorMode()))
	s.PPU.SetBus(s.ppuBus)
	s.PPU.SetNMICallback(s.triggerNMI)
	s.PPU.SetScanlineCallback(s.tickMapperScanline)

	s.CPU = cpu.New(s.bus)

	if !cfg.Mute {
		s.APU.SetSampleCallback(cfg.SampleRate, func(float32) {})
	}

	s.Reset()
	return s
}

// SetAudioSink installs the callback that receives resampled float32 PCM
// frames; pass nil to mute.
func (s *System) SetAudioSink(sampleRate float64, sink func(float32)) {
	if sink == nil {
		s.APU.SetSampleCallback(sampleRate, nil)
		return
	}
	s.APU.SetSampleCallback(sampleRate, sink)
}

// SetROMPath records the source file's path so Close knows where to write
// the battery-backed save alongside it.
func (s *System) SetROMPath(path string) { s.romPath = path }

// Reset performs a soft reset: the CPU's reset sequence runs again, and the
// PPU, APU, controller ports and DMA unit return to their power-up state in
// place. The cartridge and its mapper state are kept.
func (s *System) Reset() {
	s.CPU.Reset()
	s.PPU.Reset()
	s.APU.Reset()
	s.Input.Reset()
	s.masterCycle = 0
	s.dma = dmaUnit{}
}

// Close flushes battery-backed WRAM to "{rom}.sav" beside the loaded ROM,
// if the cartridge has one and a ROM path was recorded.
func (s *System) Close() error {
	if s.romPath == "" || s.Cart == nil || !s.Cart.HasBattery() {
		return nil
	}
	if err := os.WriteFile(s.romPath+".sav", s.Cart.WRAM(), 0o644); err != nil {
		return fmt.Errorf("system: saving WRAM: %w", err)
	}
	return nil
}

// Tick advances the whole console by one master clock cycle: APU, then
// PPU, then the CPU or DMA unit every third master cycle (the CPU runs at
// a third of the master rate), then interrupt delivery, then audio
// resampling.
func (s *System) Tick() {
	s.APU.Tick()
	s.PPU.Tick()

	if s.masterCycle%3 == 0 {
		if s.dma.active {
			s.stepDMA()
		} else {
			s.CPU.Tick()
			if s.Cart != nil {
				s.ppuBus.SetMirroring(memory.MirrorMode(s.Cart.GetMirrorMode()))
			}
		}
	}
	s.masterCycle++

	irq := s.APU.FrameIRQPending()
	if s.Cart != nil && s.Cart.IRQPending() {
		irq = true
	}
	s.CPU.SetIRQLine(irq)

	s.APU.EmitSample()
}

// RunFrame advances the console until the PPU completes one more frame.
func (s *System) RunFrame() {
	target := s.PPU.FrameCount() + 1
	for s.PPU.FrameCount() < target {
		s.Tick()
	}
}

func (s *System) triggerNMI() {
	s.CPU.SetNMILine(true)
	s.CPU.SetNMILine(false)
}

func (s *System) tickMapperScanline() {
	if s.Cart != nil {
		s.Cart.TickScanline()
	}
}

// triggerOAMDMA starts a 513- or 514-cycle CPU stall: 513 if the DMA began
// on an even CPU cycle, 514 if odd, then 256 alternating read/write pairs
// copying page*0x100..+0xFF into OAM.
func (s *System) triggerOAMDMA(page uint8) {
	if s.dma.active {
		return
	}
	total := 513
	if s.CPU.TotalCycles()%2 == 1 {
		total = 514
	}
	s.dma = dmaUnit{active: true, page: page, total: total, remaining: total}
}

// stepDMA consumes one CPU-cycle-equivalent of the in-flight OAM DMA: the
// leading cycle(s) are dead time, then reads and writes alternate every
// other cycle.
func (s *System) stepDMA() {
	d := &s.dma
	elapsed := d.total - d.remaining
	dummyCycles := d.total - 512

	if elapsed >= dummyCycles {
		idx := elapsed - dummyCycles
		offset := uint16(idx / 2)
		if idx%2 == 0 {
			d.byteLatch = s.bus.Read(uint16(d.page)<<8 + offset)
		} else {
			s.PPU.WriteOAMByte(uint8(offset), d.byteLatch)
		}
	}

	d.remaining--
	if d.remaining <= 0 {
		d.active = false
	}
}

// FrameBuffer exposes the PPU's completed-frame pixel buffer for a video
// sink to blit.
func (s *System) FrameBuffer() *[256 * 240]uint32 { return s.PPU.FrameBuffer() }

// DMAInProgress reports whether the OAM DMA unit currently has the CPU
// stalled.
func (s *System) DMAInProgress() bool { return s.dma.active }
