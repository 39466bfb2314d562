package ppu

// Tick advances the PPU by exactly one dot (341 dots per scanline, 262
// scanlines per frame: -1 pre-render, 0-239 visible, 240 post-render,
// 241-260 vblank).
func (p *PPU) Tick() {
	if p.scanline >= -1 && p.scanline < 240 {
		p.tickRenderLine()
	}

	if p.scanline == 241 && p.dot == 1 {
		p.status |= statusVBlankMask
		if p.ctrl&ctrlNMIEnableMask != 0 && p.nmiCallback != nil {
			p.nmiCallback()
		}
	}

	p.advanceDot()
}

func (p *PPU) advanceDot() {
	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.frame++
			p.oddFrame = !p.oddFrame
			if p.frameCallback != nil {
				p.frameCallback()
			}
		}
	}
}

func (p *PPU) tickRenderLine() {
	if p.scanline == -1 && p.dot == 1 {
		p.status &^= statusVBlankMask | statusSprite0Mask | statusOverflowMask
	}

	if !p.renderingEnabled() {
		return
	}

	if (p.dot >= 2 && p.dot < 258) || (p.dot >= 321 && p.dot < 338) {
		p.shiftBackgroundRegisters()

		switch (p.dot - 1) % 8 {
		case 0:
			p.loadBackgroundShifters()
			p.bgNextTileID = p.bus.Read(0x2000 | (p.v & 0x0FFF))
		case 2:
			address := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
			attr := p.bus.Read(address)
			if (p.v>>4)&1 != 0 {
				attr >>= 4
			}
			if (p.v>>1)&1 != 0 {
				attr >>= 2
			}
			p.bgNextTileAttr = attr & 0x03
		case 4:
			table := uint16(0)
			if p.ctrl&ctrlBGTableMask != 0 {
				table = 0x1000
			}
			fineY := (p.v >> 12) & 0x07
			p.bgNextTileLo = p.bus.Read(table + uint16(p.bgNextTileID)*16 + fineY)
		case 6:
			table := uint16(0)
			if p.ctrl&ctrlBGTableMask != 0 {
				table = 0x1000
			}
			fineY := (p.v >> 12) & 0x07
			p.bgNextTileHi = p.bus.Read(table + uint16(p.bgNextTileID)*16 + fineY + 8)
		case 7:
			p.incrementX()
		}
	}

	if p.dot == 260 && p.scanlineCallback != nil {
		p.scanlineCallback()
	}

	if p.dot == 256 {
		p.incrementY()
	}
	if p.dot == 257 {
		p.loadBackgroundShifters()
		p.copyX()
		p.evaluateSprites()
	}
	if p.dot == 338 || p.dot == 340 {
		p.bgNextTileID = p.bus.Read(0x2000 | (p.v & 0x0FFF))
	}
	if p.scanline == -1 && p.dot >= 280 && p.dot < 305 {
		p.copyY()
	}

	if p.scanline >= 0 && p.dot >= 1 && p.dot <= 256 {
		p.renderPixel(p.dot-1, p.scanline)
	}
}

func (p *PPU) loadBackgroundShifters() {
	p.bgPatternLo = (p.bgPatternLo & 0xFF00) | uint16(p.bgNextTileLo)
	p.bgPatternHi = (p.bgPatternHi & 0xFF00) | uint16(p.bgNextTileHi)

	attrLo, attrHi := uint16(0), uint16(0)
	if p.bgNextTileAttr&0x01 != 0 {
		attrLo = 0xFF
	}
	if p.bgNextTileAttr&0x02 != 0 {
		attrHi = 0xFF
	}
	p.bgAttrLo = (p.bgAttrLo & 0xFF00) | attrLo
	p.bgAttrHi = (p.bgAttrHi & 0xFF00) | attrHi
}

func (p *PPU) shiftBackgroundRegisters() {
	p.bgPatternLo <<= 1
	p.bgPatternHi <<= 1
	p.bgAttrLo <<= 1
	p.bgAttrHi <<= 1
}

func (p *PPU) renderPixel(x, y int) {
	bgColor, bgOpaque := p.backgroundPixel(x)
	sprColor, sprOpaque, sprPriority, sprIsZero := p.spritePixel(x)

	if bgOpaque && sprOpaque && sprIsZero && x != 255 {
		p.status |= statusSprite0Mask
	}

	var index uint8
	switch {
	case !bgOpaque && !sprOpaque:
		index = p.readPalette(0x3F00)
	case !bgOpaque && sprOpaque:
		index = sprColor
	case bgOpaque && !sprOpaque:
		index = bgColor
	default:
		if sprPriority {
			index = bgColor
		} else {
			index = sprColor
		}
	}

	p.frameBuffer[y*256+x] = RGB(index)
}

func (p *PPU) backgroundPixel(x int) (uint8, bool) {
	if p.mask&maskShowBGMask == 0 {
		return 0, false
	}
	if x < 8 && p.mask&maskShowBGLeftMask == 0 {
		return 0, false
	}

	shift := uint(15 - p.x)
	lo := (p.bgPatternLo >> shift) & 1
	hi := (p.bgPatternHi >> shift) & 1
	pixel := uint8((hi << 1) | lo)
	if pixel == 0 {
		return 0, false
	}

	aLo := (p.bgAttrLo >> shift) & 1
	aHi := (p.bgAttrHi >> shift) & 1
	palette := uint8((aHi << 1) | aLo)

	return p.readPalette(0x3F00 + uint16(palette)*4 + uint16(pixel)), true
}

func (p *PPU) readPalette(address uint16) uint8 {
	return p.bus.Read(address) & 0x3F
}
