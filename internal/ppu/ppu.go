// Package ppu implements the NES Picture Processing Unit (2C02).
package ppu

// Bus is the PPU's 14-bit address space, implemented by memory.PPUBus.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

const (
	ctrlNametableMask   = 0x03
	ctrlIncrementMask   = 0x04
	ctrlSpriteTableMask = 0x08
	ctrlBGTableMask     = 0x10
	ctrlSpriteSizeMask  = 0x20
	ctrlNMIEnableMask   = 0x80

	maskGreyscaleMask   = 0x01
	maskShowBGLeftMask  = 0x02
	maskShowSprLeftMask = 0x04
	maskShowBGMask      = 0x08
	maskShowSprMask     = 0x10

	statusOverflowMask = 0x20
	statusSprite0Mask  = 0x40
	statusVBlankMask   = 0x80
)

// spriteLane is one of the up to 8 sprites selected for the current
// scanline: its pattern bytes (flip already applied) and its left-edge x
// position, which spritePixel compares against the screen column.
type spriteLane struct {
	x          int
	attributes uint8
	patternLo  uint8
	patternHi  uint8
	isSprite0  bool
}

// PPU is a cycle-stepped 2C02: Tick advances exactly one dot, driving the
// background shift-register pipeline and sprite evaluation the way real
// hardware does rather than resolving whole pixels from scratch.
type PPU struct {
	ctrl   uint8
	mask   uint8
	status uint8

	oamAddr uint8
	oam     [256]uint8

	v uint16
	t uint16
	x uint8
	w bool

	readBuffer uint8

	// openBus is the PPU's internal data bus latch: every register access
	// drives it, and it decays only by being overwritten, never by time.
	// PPUSTATUS's low 5 bits (unused by real status flags) read back
	// whatever was last driven here rather than a fixed value.
	openBus uint8

	bus Bus

	scanline int
	dot      int
	oddFrame bool
	frame    uint64

	bgNextTileID   uint8
	bgNextTileAttr uint8
	bgNextTileLo   uint8
	bgNextTileHi   uint8

	bgPatternLo uint16
	bgPatternHi uint16
	bgAttrLo    uint16
	bgAttrHi    uint16

	secondaryOAM   [8]spriteLane
	spriteCount    int
	sprite0OnLine  bool

	frameBuffer [256 * 240]uint32

	nmiCallback      func()
	frameCallback    func()
	scanlineCallback func()
}

// New creates a PPU with no bus attached; call SetBus before Tick.
func New() *PPU {
	return &PPU{scanline: -1, dot: 0}
}

// SetBus attaches the PPU's 14-bit address space.
func (p *PPU) SetBus(bus Bus) { p.bus = bus }

// SetNMICallback installs the handler invoked when VBlank NMI fires.
func (p *PPU) SetNMICallback(callback func()) { p.nmiCallback = callback }

// SetFrameCallback installs the handler invoked once per completed frame.
func (p *PPU) SetFrameCallback(callback func()) { p.frameCallback = callback }

// SetScanlineCallback installs the handler invoked once per rendered
// scanline (approximating the PPU A12 toggling real mapper IRQ counters,
// such as MMC3's, actually clock from).
func (p *PPU) SetScanlineCallback(callback func()) { p.scanlineCallback = callback }

// Reset returns the PPU to its power-up state without detaching its bus.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer = 0
	p.openBus = 0
	p.scanline, p.dot = -1, 0
	p.oddFrame = false
	p.frame = 0
	for i := range p.oam {
		p.oam[i] = 0
	}
}

// FrameBuffer returns the last completed frame as packed 0xRRGGBB pixels,
// row-major, 256x240.
func (p *PPU) FrameBuffer() *[256 * 240]uint32 { return &p.frameBuffer }

// FrameCount returns the number of frames rendered since reset.
func (p *PPU) FrameCount() uint64 { return p.frame }

// Scanline and Dot expose current raster position for tests and debug UIs.
func (p *PPU) Scanline() int { return p.scanline }
func (p *PPU) Dot() int      { return p.dot }

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBGMask|maskShowSprMask) != 0
}

// ReadRegister reads from the CPU-visible $2000-$2007 window. Every access
// drives the PPU's internal open-bus latch; registers with no real return
// value (or whose real bits don't fill the byte) read back whatever was
// last driven there.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case 0x2002:
		value := (p.status & 0xE0) | (p.openBus & 0x1F)
		p.status &^= statusVBlankMask
		p.w = false
		p.openBus = value
		return value
	case 0x2004:
		p.openBus = p.oam[p.oamAddr]
		return p.openBus
	case 0x2007:
		p.openBus = p.readData()
		return p.openBus
	default:
		return p.openBus
	}
}

// WriteRegister writes to the CPU-visible $2000-$2007 window.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	p.openBus = value
	switch address {
	case 0x2000:
		p.ctrl = value
		p.t = (p.t & 0xF3FF) | (uint16(value&ctrlNametableMask) << 10)
	case 0x2001:
		p.mask = value
	case 0x2003:
		p.oamAddr = value
	case 0x2004:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x2005:
		p.writeScroll(value)
	case 0x2006:
		p.writeAddr(value)
	case 0x2007:
		p.writeData(value)
	}
}

// WriteOAMByte writes directly into OAM at the given index (used by OAM
// DMA, which bypasses OAMADDR auto-increment semantics on the data path).
func (p *PPU) WriteOAMByte(index uint8, value uint8) { p.oam[index] = value }

func (p *PPU) writeScroll(value uint8) {
	if !p.w {
		p.t = (p.t & 0xFFE0) | (uint16(value) >> 3)
		p.x = value & 0x07
	} else {
		p.t = (p.t & 0x8FFF) | ((uint16(value) & 0x07) << 12)
		p.t = (p.t & 0xFC1F) | ((uint16(value) & 0xF8) << 2)
	}
	p.w = !p.w
}

func (p *PPU) writeAddr(value uint8) {
	if !p.w {
		p.t = (p.t & 0x00FF) | ((uint16(value) & 0x3F) << 8)
	} else {
		p.t = (p.t & 0xFF00) | uint16(value)
		p.v = p.t
	}
	p.w = !p.w
}

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&ctrlIncrementMask != 0 {
		return 32
	}
	return 1
}

func (p *PPU) readData() uint8 {
	address := p.v & 0x3FFF
	var value uint8
	if address >= 0x3F00 {
		// Palette reads return immediately; the read buffer is still
		// refilled, but from the nametable mirrored "under" palette space.
		value = p.bus.Read(address)
		p.readBuffer = p.bus.Read(address - 0x1000)
	} else {
		value = p.readBuffer
		p.readBuffer = p.bus.Read(address)
	}
	p.v += p.vramIncrement()
	return value
}

func (p *PPU) writeData(value uint8) {
	p.bus.Write(p.v&0x3FFF, value)
	p.v += p.vramIncrement()
}

// Scroll/address helpers over the 15-bit loopy v/t registers.

func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyX() { p.v = (p.v & 0xFBE0) | (p.t & 0x041F) }
func (p *PPU) copyY() { p.v = (p.v & 0x841F) | (p.t & 0x7BE0) }
