// Package memory implements the NES CPU and PPU address decoding.
package memory

// MirrorMode is the nametable mirroring arrangement exposed by a cartridge.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreen0
	MirrorSingleScreen1
	MirrorFourScreen
)

// PPUInterface is the register window the CPU bus forwards $2000-$3FFF into.
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// APUInterface is the register window the CPU bus forwards $4000-$4017 into.
type APUInterface interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
}

// InputInterface is the controller port window at $4016-$4017.
type InputInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface is the PRG/CHR window a mapper exposes to the buses.
type CartridgeInterface interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
}

// Bus is the CPU-visible 16-bit address space: 2KB internal RAM mirrored
// through $1FFF, the PPU/APU/controller register windows, and the
// cartridge's PRG window from $4020 up.
type Bus struct {
	ram [0x800]uint8

	ppu   PPUInterface
	apu   APUInterface
	input InputInterface
	cart  CartridgeInterface

	dmaCallback func(uint8)

	openBusValue uint8
}

// New creates a CPU bus wired to the given PPU, APU and cartridge.
func New(ppu PPUInterface, apu APUInterface, cart CartridgeInterface) *Bus {
	return &Bus{ppu: ppu, apu: apu, cart: cart}
}

// SetInputSystem attaches the controller port handler.
func (b *Bus) SetInputSystem(input InputInterface) { b.input = input }

// SetDMACallback installs the handler invoked on a $4014 OAM DMA write. The
// System orchestrator uses this to run the DMA as a cycle-stepped stall
// instead of copying all 256 bytes synchronously.
func (b *Bus) SetDMACallback(callback func(uint8)) { b.dmaCallback = callback }

// Read reads a byte from the CPU's address space.
func (b *Bus) Read(address uint16) uint8 {
	var value uint8

	switch {
	case address < 0x2000:
		value = b.ram[address&0x07FF]

	case address < 0x4000:
		value = b.ppu.ReadRegister(0x2000 + (address & 0x0007))

	case address < 0x4020:
		switch {
		case address == 0x4015:
			value = b.apu.ReadStatus()
		case address == 0x4016, address == 0x4017:
			if b.input != nil {
				value = b.input.Read(address)
			}
		default:
			value = b.openBusValue
		}

	case address >= 0x6000 && address < 0x8000:
		if b.cart != nil {
			value = b.cart.ReadPRG(address)
		} else {
			value = b.openBusValue
		}

	case address < 0x8000:
		value = b.openBusValue

	default:
		if b.cart != nil {
			value = b.cart.ReadPRG(address)
		} else {
			value = b.openBusValue
		}
	}

	b.openBusValue = value
	return value
}

// Write writes a byte to the CPU's address space.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		b.ram[address&0x07FF] = value

	case address < 0x4000:
		b.ppu.WriteRegister(0x2000+(address&0x0007), value)

	case address < 0x4020:
		switch {
		case address == 0x4014:
			if b.dmaCallback != nil {
				b.dmaCallback(value)
			} else {
				b.performOAMDMA(value)
			}
		case address == 0x4016:
			if b.input != nil {
				b.input.Write(address, value)
			}
		case address <= 0x4013, address == 0x4015, address == 0x4017:
			b.apu.WriteRegister(address, value)
		}
		// Test-mode registers $4018-$401F are not implemented.

	case address >= 0x6000 && address < 0x8000:
		if b.cart != nil {
			b.cart.WritePRG(address, value)
		}

	case address < 0x8000:
		// Cartridge expansion area $4020-$5FFF: unmapped for every mapper
		// this module implements.

	default:
		if b.cart != nil {
			b.cart.WritePRG(address, value)
		}
	}
}

// performOAMDMA is the fallback synchronous transfer used when no DMA
// callback has been installed (unit tests exercising the bus in isolation).
func (b *Bus) performOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		b.ppu.WriteRegister(0x2004, b.Read(base+i))
	}
}

// PPUBus is the PPU's 14-bit address space: pattern tables live on the
// cartridge, nametables are 2KB of onboard VRAM mirrored per the
// cartridge's arrangement, and palette RAM is 32 bytes with the
// background-color aliasing real hardware exhibits.
type PPUBus struct {
	vram       [0x1000]uint8
	paletteRAM [32]uint8
	cart       CartridgeInterface
	mirroring  MirrorMode
}

// NewPPUBus creates a PPU bus over the given cartridge and mirroring mode.
func NewPPUBus(cart CartridgeInterface, mirroring MirrorMode) *PPUBus {
	pb := &PPUBus{cart: cart, mirroring: mirroring}
	for i := 0; i < 32; i += 4 {
		pb.paletteRAM[i] = 0x0F
	}
	return pb
}

// SetMirroring updates the nametable arrangement (mappers may switch this
// at runtime, e.g. MMC1's control register or MMC3's fixed vertical/
// horizontal select).
func (pb *PPUBus) SetMirroring(mode MirrorMode) { pb.mirroring = mode }

// Read reads from the PPU's address space ($0000-$3FFF, masked).
func (pb *PPUBus) Read(address uint16) uint8 {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		return pb.cart.ReadCHR(address)
	case address < 0x3000:
		return pb.vram[pb.nametableIndex(address)]
	case address < 0x3F00:
		return pb.vram[pb.nametableIndex(address-0x1000)]
	default:
		return pb.paletteRAM[pb.paletteIndex(address)]
	}
}

// Write writes to the PPU's address space ($0000-$3FFF, masked).
func (pb *PPUBus) Write(address uint16, value uint8) {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		pb.cart.WriteCHR(address, value)
	case address < 0x3000:
		pb.vram[pb.nametableIndex(address)] = value
	case address < 0x3F00:
		pb.vram[pb.nametableIndex(address-0x1000)] = value
	default:
		pb.paletteRAM[pb.paletteIndex(address)] = value
	}
}

func (pb *PPUBus) nametableIndex(address uint16) uint16 {
	address &= 0x0FFF
	nametable := (address >> 10) & 3
	offset := address & 0x3FF

	switch pb.mirroring {
	case MirrorHorizontal:
		if nametable >= 2 {
			return 0x400 + offset
		}
		return offset
	case MirrorVertical:
		if nametable == 1 || nametable == 3 {
			return 0x400 + offset
		}
		return offset
	case MirrorSingleScreen0:
		return offset
	case MirrorSingleScreen1:
		return 0x400 + offset
	case MirrorFourScreen:
		return nametable*0x400 + offset
	default:
		return offset
	}
}

func (pb *PPUBus) paletteIndex(address uint16) uint16 {
	index := (address - 0x3F00) & 0x1F
	if index == 0x10 || index == 0x14 || index == 0x18 || index == 0x1C {
		index &= 0x0F
	}
	return index
}
