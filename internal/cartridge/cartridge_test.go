package cartridge

import (
	"bytes"
	"testing"
)

const validINESMagic = "NES\x1A"

func buildHeader(prgSize, chrSize, mapper, flags6 uint8) []byte {
	header := make([]byte, 16)
	copy(header[0:4], validINESMagic)
	header[4] = prgSize
	header[5] = chrSize
	header[6] = (mapper << 4) | (flags6 & 0x0F)
	header[7] = mapper & 0xF0
	return header
}

func buildROM(prgSize, chrSize, mapper, flags6 uint8) []byte {
	rom := buildHeader(prgSize, chrSize, mapper, flags6)
	prg := make([]byte, int(prgSize)*16384)
	for i := range prg {
		prg[i] = uint8(i % 256)
	}
	rom = append(rom, prg...)
	if chrSize > 0 {
		chr := make([]byte, int(chrSize)*8192)
		for i := range chr {
			chr[i] = uint8((i + 1) % 256)
		}
		rom = append(rom, chr...)
	}
	return rom
}

func TestLoadFromReaderValidHeader(t *testing.T) {
	rom := buildROM(2, 1, 0, 0)
	cart, err := LoadFromReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.prgROM) != 32768 {
		t.Errorf("PRG ROM size = %d, want 32768", len(cart.prgROM))
	}
	if len(cart.chrROM) != 8192 {
		t.Errorf("CHR ROM size = %d, want 8192", len(cart.chrROM))
	}
}

func TestLoadFromReaderRejectsBadMagic(t *testing.T) {
	rom := buildROM(1, 1, 0, 0)
	rom[0] = 'X'
	if _, err := LoadFromReader(bytes.NewReader(rom)); err == nil {
		t.Fatal("expected error for bad magic, got nil")
	}
}

func TestLoadFromReaderRejectsZeroPRG(t *testing.T) {
	rom := buildROM(0, 1, 0, 0)
	if _, err := LoadFromReader(bytes.NewReader(rom)); err == nil {
		t.Fatal("expected error for zero-size PRG ROM, got nil")
	}
}

func TestMapper000MirrorsSixteenKB(t *testing.T) {
	rom := buildROM(1, 1, 0, 0)
	cart, err := LoadFromReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ReadPRG(0x8000) != cart.ReadPRG(0xC000) {
		t.Errorf("16KB PRG not mirrored: $8000=%d $C000=%d", cart.ReadPRG(0x8000), cart.ReadPRG(0xC000))
	}
}

func TestMapper002SwitchableLowFixedHigh(t *testing.T) {
	rom := buildROM(4, 0, 2, 0)
	// buildROM's i%256 pattern repeats identically in every 16KB bank, so tag
	// the first byte of each bank with its bank number to tell them apart.
	for bank := 0; bank < 4; bank++ {
		rom[16+bank*16384] = uint8(0xB0 + bank)
	}
	cart, err := LoadFromReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lastBankByte := cart.ReadPRG(0xC000)

	cart.WritePRG(0x8000, 2)
	if got := cart.ReadPRG(0x8000); got != 0xB2 {
		t.Errorf("$8000 after selecting bank 2 = %#02x, want 0xb2", got)
	}
	if cart.ReadPRG(0xC000) != lastBankByte {
		t.Errorf("fixed bank at $C000 changed after switching $8000 bank")
	}
}

func TestMapper001ShiftRegisterControlWrite(t *testing.T) {
	rom := buildROM(4, 0, 1, 0)
	cart, err := LoadFromReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Five writes of the low bit of 0x0D (01101) program the control
	// register with mirroring=01 (single-screen bank 1).
	bits := []uint8{1, 0, 1, 1, 0}
	for _, bit := range bits {
		cart.WritePRG(0x8000, bit)
	}
	if cart.GetMirrorMode() != MirrorSingleScreen1 {
		t.Errorf("mirror mode = %v, want MirrorSingleScreen1", cart.GetMirrorMode())
	}
}

func TestMapper001ResetBitAbortsShift(t *testing.T) {
	rom := buildROM(4, 0, 1, 0)
	cart, err := LoadFromReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart.WritePRG(0x8000, 1)
	cart.WritePRG(0x8000, 0x80) // reset mid-sequence
	m := cart.mapper.(*mapper001)
	if m.shiftCount != 0 {
		t.Errorf("shiftCount after reset write = %d, want 0", m.shiftCount)
	}
}

func TestWRAMPersistenceRoundTrip(t *testing.T) {
	rom := buildROM(1, 1, 0, 0x02) // battery flag set
	cart, err := LoadFromReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cart.HasBattery() {
		t.Fatal("expected HasBattery() = true")
	}
	cart.WritePRG(0x6000, 0x42)
	saved := append([]byte(nil), cart.WRAM()...)

	restored, err := LoadFromReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	restored.LoadWRAM(saved)
	if restored.ReadPRG(0x6000) != 0x42 {
		t.Errorf("WRAM byte after restore = %#02x, want 0x42", restored.ReadPRG(0x6000))
	}
}

func TestMockCartridgePRGAndCHR(t *testing.T) {
	mock := NewMockCartridge()
	mock.LoadPRG([]byte{1, 2, 3, 4})
	mock.LoadCHR([]byte{5, 6, 7, 8})

	if mock.ReadPRG(0x8000) != 1 {
		t.Errorf("ReadPRG(0x8000) = %d, want 1", mock.ReadPRG(0x8000))
	}
	if mock.ReadCHR(0x0000) != 5 {
		t.Errorf("ReadCHR(0x0000) = %d, want 5", mock.ReadCHR(0x0000))
	}

	mock.WritePRG(0x6000, 0x99)
	if mock.ReadPRG(0x6000) != 0x99 {
		t.Errorf("PRG RAM round trip failed")
	}
}
