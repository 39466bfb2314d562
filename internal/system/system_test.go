package system

import (
	"bytes"
	"testing"

	"github.com/GeFeC/nesgo/internal/cartridge"
)

// buildNROM constructs a minimal one-bank NROM image whose reset vector
// points at $8000, which holds an infinite run of BRK (the PRG is
// otherwise zeroed) so the CPU has well-defined, endlessly repeatable
// behavior to drive against the timing wiring under test.
func buildNROM() []byte {
	header := make([]byte, 16)
	copy(header[0:4], "NES\x1A")
	header[4] = 1 // 16KB PRG
	header[5] = 1 // 8KB CHR

	prg := make([]byte, 16384)
	prg[0x3FFC] = 0x00 // reset vector low
	prg[0x3FFD] = 0x80 // reset vector high -> $8000

	chr := make([]byte, 8192)

	rom := append(header, prg...)
	rom = append(rom, chr...)
	return rom
}

func newTestSystem(t *testing.T) *System {
	t.Helper()
	cart, err := cartridge.LoadFromReader(bytes.NewReader(buildNROM()))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	return New(cart, DefaultConfig())
}

func TestSystemTicksAdvancePPUAtThreeTimesCPURate(t *testing.T) {
	s := newTestSystem(t)
	start := s.CPU.TotalCycles()
	for i := 0; i < 300; i++ {
		s.Tick()
	}
	if delta := s.CPU.TotalCycles() - start; delta*3 != 300 {
		t.Errorf("after 300 master ticks, CPU advanced %d cycles, want 100", delta)
	}
}

func TestSystemRunFrameCompletesExactlyOneFrame(t *testing.T) {
	s := newTestSystem(t)
	startFrame := s.PPU.FrameCount()
	s.RunFrame()
	if s.PPU.FrameCount() != startFrame+1 {
		t.Errorf("frame count = %d, want %d", s.PPU.FrameCount(), startFrame+1)
	}
}

func TestOAMDMAStallsFor513Or514CPUEquivalentCycles(t *testing.T) {
	s := newTestSystem(t)

	for i := 0; i < 16; i++ {
		s.Tick()
	}

	s.bus.Write(0x0200, 0xAB) // source byte DMA will copy from page 2
	s.triggerOAMDMA(0x02)
	wantTotal := s.dma.total
	if wantTotal != 513 && wantTotal != 514 {
		t.Fatalf("dma.total = %d, want 513 or 514", wantTotal)
	}

	masterTicks := 0
	for s.dma.active {
		s.Tick()
		masterTicks++
		if masterTicks > 2000 {
			t.Fatal("DMA never completed")
		}
	}

	// The DMA unit consumes one CPU-equivalent slot (one master tick out of
	// every three) per remaining count; phase alignment against the 3-tick
	// CPU divider can add up to 2 extra master ticks either side.
	wantMasterTicks := wantTotal * 3
	if masterTicks < wantMasterTicks-2 || masterTicks > wantMasterTicks+2 {
		t.Errorf("master ticks during DMA = %d, want ~%d", masterTicks, wantMasterTicks)
	}
}

func TestOAMDMACopiesSourcePageIntoOAM(t *testing.T) {
	s := newTestSystem(t)
	for i := 0; i < 256; i++ {
		s.bus.Write(0x0300+uint16(i), uint8(i))
	}
	s.triggerOAMDMA(0x03)
	for s.dma.active {
		s.Tick()
	}
	for i := 0; i < 256; i++ {
		s.PPU.WriteRegister(0x2003, uint8(i))
		if got := s.PPU.ReadRegister(0x2004); got != uint8(i) {
			t.Fatalf("OAM[%d] = %d, want %d", i, got, i)
		}
	}
}

func TestResetReseatsCPUWithoutLosingCartridge(t *testing.T) {
	s := newTestSystem(t)
	s.Tick()
	s.Reset()
	if s.CPU.TotalCycles() != 7 {
		t.Errorf("CPU cycles after reset = %d, want 7 (reset sequence)", s.CPU.TotalCycles())
	}
}
