package cpu

// initInstructions fills the 256-entry dispatch table. Cycle counts are the
// canonical NMOS 6502 counts; pageExtra marks the read-type addressing modes
// that take one extra cycle when indexing crosses a page boundary. Entries
// left at the zero value are unimplemented opcodes and trigger the abort
// path in stepInstruction.
func (cpu *CPU) initInstructions() {
	set := func(opcode uint8, name string, bytes, cycles uint8, mode AddressingMode, pageExtra bool) {
		cpu.instructions[opcode] = instruction{name: name, bytes: bytes, cycles: cycles, mode: mode, pageExtra: pageExtra}
	}

	// Load/store.
	set(0xA9, "LDA", 2, 2, Immediate, false)
	set(0xA5, "LDA", 2, 3, ZeroPage, false)
	set(0xB5, "LDA", 2, 4, ZeroPageX, false)
	set(0xAD, "LDA", 3, 4, Absolute, false)
	set(0xBD, "LDA", 3, 4, AbsoluteX, true)
	set(0xB9, "LDA", 3, 4, AbsoluteY, true)
	set(0xA1, "LDA", 2, 6, IndexedIndirect, false)
	set(0xB1, "LDA", 2, 5, IndirectIndexed, true)

	set(0xA2, "LDX", 2, 2, Immediate, false)
	set(0xA6, "LDX", 2, 3, ZeroPage, false)
	set(0xB6, "LDX", 2, 4, ZeroPageY, false)
	set(0xAE, "LDX", 3, 4, Absolute, false)
	set(0xBE, "LDX", 3, 4, AbsoluteY, true)

	set(0xA0, "LDY", 2, 2, Immediate, false)
	set(0xA4, "LDY", 2, 3, ZeroPage, false)
	set(0xB4, "LDY", 2, 4, ZeroPageX, false)
	set(0xAC, "LDY", 3, 4, Absolute, false)
	set(0xBC, "LDY", 3, 4, AbsoluteX, true)

	set(0x85, "STA", 2, 3, ZeroPage, false)
	set(0x95, "STA", 2, 4, ZeroPageX, false)
	set(0x8D, "STA", 3, 4, Absolute, false)
	set(0x9D, "STA", 3, 5, AbsoluteX, false)
	set(0x99, "STA", 3, 5, AbsoluteY, false)
	set(0x81, "STA", 2, 6, IndexedIndirect, false)
	set(0x91, "STA", 2, 6, IndirectIndexed, false)

	set(0x86, "STX", 2, 3, ZeroPage, false)
	set(0x96, "STX", 2, 4, ZeroPageY, false)
	set(0x8E, "STX", 3, 4, Absolute, false)

	set(0x84, "STY", 2, 3, ZeroPage, false)
	set(0x94, "STY", 2, 4, ZeroPageX, false)
	set(0x8C, "STY", 3, 4, Absolute, false)

	// Arithmetic.
	set(0x69, "ADC", 2, 2, Immediate, false)
	set(0x65, "ADC", 2, 3, ZeroPage, false)
	set(0x75, "ADC", 2, 4, ZeroPageX, false)
	set(0x6D, "ADC", 3, 4, Absolute, false)
	set(0x7D, "ADC", 3, 4, AbsoluteX, true)
	set(0x79, "ADC", 3, 4, AbsoluteY, true)
	set(0x61, "ADC", 2, 6, IndexedIndirect, false)
	set(0x71, "ADC", 2, 5, IndirectIndexed, true)

	set(0xE9, "SBC", 2, 2, Immediate, false)
	set(0xEB, "SBC", 2, 2, Immediate, false) // unofficial alias
	set(0xE5, "SBC", 2, 3, ZeroPage, false)
	set(0xF5, "SBC", 2, 4, ZeroPageX, false)
	set(0xED, "SBC", 3, 4, Absolute, false)
	set(0xFD, "SBC", 3, 4, AbsoluteX, true)
	set(0xF9, "SBC", 3, 4, AbsoluteY, true)
	set(0xE1, "SBC", 2, 6, IndexedIndirect, false)
	set(0xF1, "SBC", 2, 5, IndirectIndexed, true)

	// Logic.
	set(0x29, "AND", 2, 2, Immediate, false)
	set(0x25, "AND", 2, 3, ZeroPage, false)
	set(0x35, "AND", 2, 4, ZeroPageX, false)
	set(0x2D, "AND", 3, 4, Absolute, false)
	set(0x3D, "AND", 3, 4, AbsoluteX, true)
	set(0x39, "AND", 3, 4, AbsoluteY, true)
	set(0x21, "AND", 2, 6, IndexedIndirect, false)
	set(0x31, "AND", 2, 5, IndirectIndexed, true)

	set(0x09, "ORA", 2, 2, Immediate, false)
	set(0x05, "ORA", 2, 3, ZeroPage, false)
	set(0x15, "ORA", 2, 4, ZeroPageX, false)
	set(0x0D, "ORA", 3, 4, Absolute, false)
	set(0x1D, "ORA", 3, 4, AbsoluteX, true)
	set(0x19, "ORA", 3, 4, AbsoluteY, true)
	set(0x01, "ORA", 2, 6, IndexedIndirect, false)
	set(0x11, "ORA", 2, 5, IndirectIndexed, true)

	set(0x49, "EOR", 2, 2, Immediate, false)
	set(0x45, "EOR", 2, 3, ZeroPage, false)
	set(0x55, "EOR", 2, 4, ZeroPageX, false)
	set(0x4D, "EOR", 3, 4, Absolute, false)
	set(0x5D, "EOR", 3, 4, AbsoluteX, true)
	set(0x59, "EOR", 3, 4, AbsoluteY, true)
	set(0x41, "EOR", 2, 6, IndexedIndirect, false)
	set(0x51, "EOR", 2, 5, IndirectIndexed, true)

	// Shifts/rotates.
	set(0x0A, "ASL", 1, 2, Accumulator, false)
	set(0x06, "ASL", 2, 5, ZeroPage, false)
	set(0x16, "ASL", 2, 6, ZeroPageX, false)
	set(0x0E, "ASL", 3, 6, Absolute, false)
	set(0x1E, "ASL", 3, 7, AbsoluteX, false)

	set(0x4A, "LSR", 1, 2, Accumulator, false)
	set(0x46, "LSR", 2, 5, ZeroPage, false)
	set(0x56, "LSR", 2, 6, ZeroPageX, false)
	set(0x4E, "LSR", 3, 6, Absolute, false)
	set(0x5E, "LSR", 3, 7, AbsoluteX, false)

	set(0x2A, "ROL", 1, 2, Accumulator, false)
	set(0x26, "ROL", 2, 5, ZeroPage, false)
	set(0x36, "ROL", 2, 6, ZeroPageX, false)
	set(0x2E, "ROL", 3, 6, Absolute, false)
	set(0x3E, "ROL", 3, 7, AbsoluteX, false)

	set(0x6A, "ROR", 1, 2, Accumulator, false)
	set(0x66, "ROR", 2, 5, ZeroPage, false)
	set(0x76, "ROR", 2, 6, ZeroPageX, false)
	set(0x6E, "ROR", 3, 6, Absolute, false)
	set(0x7E, "ROR", 3, 7, AbsoluteX, false)

	// Compare.
	set(0xC9, "CMP", 2, 2, Immediate, false)
	set(0xC5, "CMP", 2, 3, ZeroPage, false)
	set(0xD5, "CMP", 2, 4, ZeroPageX, false)
	set(0xCD, "CMP", 3, 4, Absolute, false)
	set(0xDD, "CMP", 3, 4, AbsoluteX, true)
	set(0xD9, "CMP", 3, 4, AbsoluteY, true)
	set(0xC1, "CMP", 2, 6, IndexedIndirect, false)
	set(0xD1, "CMP", 2, 5, IndirectIndexed, true)

	set(0xE0, "CPX", 2, 2, Immediate, false)
	set(0xE4, "CPX", 2, 3, ZeroPage, false)
	set(0xEC, "CPX", 3, 4, Absolute, false)

	set(0xC0, "CPY", 2, 2, Immediate, false)
	set(0xC4, "CPY", 2, 3, ZeroPage, false)
	set(0xCC, "CPY", 3, 4, Absolute, false)

	// Increment/decrement.
	set(0xE6, "INC", 2, 5, ZeroPage, false)
	set(0xF6, "INC", 2, 6, ZeroPageX, false)
	set(0xEE, "INC", 3, 6, Absolute, false)
	set(0xFE, "INC", 3, 7, AbsoluteX, false)

	set(0xC6, "DEC", 2, 5, ZeroPage, false)
	set(0xD6, "DEC", 2, 6, ZeroPageX, false)
	set(0xCE, "DEC", 3, 6, Absolute, false)
	set(0xDE, "DEC", 3, 7, AbsoluteX, false)

	set(0xE8, "INX", 1, 2, Implied, false)
	set(0xCA, "DEX", 1, 2, Implied, false)
	set(0xC8, "INY", 1, 2, Implied, false)
	set(0x88, "DEY", 1, 2, Implied, false)

	// Register transfers.
	set(0xAA, "TAX", 1, 2, Implied, false)
	set(0x8A, "TXA", 1, 2, Implied, false)
	set(0xA8, "TAY", 1, 2, Implied, false)
	set(0x98, "TYA", 1, 2, Implied, false)
	set(0xBA, "TSX", 1, 2, Implied, false)
	set(0x9A, "TXS", 1, 2, Implied, false)

	// Stack.
	set(0x48, "PHA", 1, 3, Implied, false)
	set(0x68, "PLA", 1, 4, Implied, false)
	set(0x08, "PHP", 1, 3, Implied, false)
	set(0x28, "PLP", 1, 4, Implied, false)

	// Flags.
	set(0x18, "CLC", 1, 2, Implied, false)
	set(0x38, "SEC", 1, 2, Implied, false)
	set(0x58, "CLI", 1, 2, Implied, false)
	set(0x78, "SEI", 1, 2, Implied, false)
	set(0xB8, "CLV", 1, 2, Implied, false)
	set(0xD8, "CLD", 1, 2, Implied, false)
	set(0xF8, "SED", 1, 2, Implied, false)

	// Control flow.
	set(0x4C, "JMP", 3, 3, Absolute, false)
	set(0x6C, "JMP", 3, 5, Indirect, false)
	set(0x20, "JSR", 3, 6, Absolute, false)
	set(0x60, "RTS", 1, 6, Implied, false)
	set(0x40, "RTI", 1, 6, Implied, false)

	set(0x90, "BCC", 2, 2, Relative, false)
	set(0xB0, "BCS", 2, 2, Relative, false)
	set(0xD0, "BNE", 2, 2, Relative, false)
	set(0xF0, "BEQ", 2, 2, Relative, false)
	set(0x10, "BPL", 2, 2, Relative, false)
	set(0x30, "BMI", 2, 2, Relative, false)
	set(0x50, "BVC", 2, 2, Relative, false)
	set(0x70, "BVS", 2, 2, Relative, false)

	set(0x24, "BIT", 2, 3, ZeroPage, false)
	set(0x2C, "BIT", 3, 4, Absolute, false)

	set(0x00, "BRK", 1, 7, Implied, false)
	set(0xEA, "NOP", 1, 2, Implied, false)

	// Unofficial single-byte NOPs.
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		set(op, "*NOP", 1, 2, Implied, false)
	}
	// Unofficial NOPs with an immediate operand.
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		set(op, "*NOP", 2, 2, Immediate, false)
	}
	// Unofficial zero-page NOPs.
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		set(op, "*NOP", 2, 3, ZeroPage, false)
	}
	// Unofficial zero-page,X NOPs.
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		set(op, "*NOP", 2, 4, ZeroPageX, false)
	}
	// Unofficial absolute NOP.
	set(0x0C, "*NOP", 3, 4, Absolute, false)
	// Unofficial absolute,X NOPs.
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		set(op, "*NOP", 3, 4, AbsoluteX, true)
	}

	// Unofficial combined load (LAX).
	set(0xA3, "*LAX", 2, 6, IndexedIndirect, false)
	set(0xA7, "*LAX", 2, 3, ZeroPage, false)
	set(0xAF, "*LAX", 3, 4, Absolute, false)
	set(0xB3, "*LAX", 2, 5, IndirectIndexed, true)
	set(0xB7, "*LAX", 2, 4, ZeroPageY, false)
	set(0xBF, "*LAX", 3, 4, AbsoluteY, true)

	// Unofficial store (SAX).
	set(0x83, "*SAX", 2, 6, IndexedIndirect, false)
	set(0x87, "*SAX", 2, 3, ZeroPage, false)
	set(0x8F, "*SAX", 3, 4, Absolute, false)
	set(0x97, "*SAX", 2, 4, ZeroPageY, false)

	// Unofficial RMW combos: DEC+CMP, INC+SBC, ASL+ORA, ROL+AND, LSR+EOR, ROR+ADC.
	set(0xC3, "*DCP", 2, 8, IndexedIndirect, false)
	set(0xC7, "*DCP", 2, 5, ZeroPage, false)
	set(0xCF, "*DCP", 3, 6, Absolute, false)
	set(0xD3, "*DCP", 2, 8, IndirectIndexed, false)
	set(0xD7, "*DCP", 2, 6, ZeroPageX, false)
	set(0xDB, "*DCP", 3, 7, AbsoluteY, false)
	set(0xDF, "*DCP", 3, 7, AbsoluteX, false)

	set(0xE3, "*ISC", 2, 8, IndexedIndirect, false)
	set(0xE7, "*ISC", 2, 5, ZeroPage, false)
	set(0xEF, "*ISC", 3, 6, Absolute, false)
	set(0xF3, "*ISC", 2, 8, IndirectIndexed, false)
	set(0xF7, "*ISC", 2, 6, ZeroPageX, false)
	set(0xFB, "*ISC", 3, 7, AbsoluteY, false)
	set(0xFF, "*ISC", 3, 7, AbsoluteX, false)

	set(0x03, "*SLO", 2, 8, IndexedIndirect, false)
	set(0x07, "*SLO", 2, 5, ZeroPage, false)
	set(0x0F, "*SLO", 3, 6, Absolute, false)
	set(0x13, "*SLO", 2, 8, IndirectIndexed, false)
	set(0x17, "*SLO", 2, 6, ZeroPageX, false)
	set(0x1B, "*SLO", 3, 7, AbsoluteY, false)
	set(0x1F, "*SLO", 3, 7, AbsoluteX, false)

	set(0x23, "*RLA", 2, 8, IndexedIndirect, false)
	set(0x27, "*RLA", 2, 5, ZeroPage, false)
	set(0x2F, "*RLA", 3, 6, Absolute, false)
	set(0x33, "*RLA", 2, 8, IndirectIndexed, false)
	set(0x37, "*RLA", 2, 6, ZeroPageX, false)
	set(0x3B, "*RLA", 3, 7, AbsoluteY, false)
	set(0x3F, "*RLA", 3, 7, AbsoluteX, false)

	set(0x43, "*SRE", 2, 8, IndexedIndirect, false)
	set(0x47, "*SRE", 2, 5, ZeroPage, false)
	set(0x4F, "*SRE", 3, 6, Absolute, false)
	set(0x53, "*SRE", 2, 8, IndirectIndexed, false)
	set(0x57, "*SRE", 2, 6, ZeroPageX, false)
	set(0x5B, "*SRE", 3, 7, AbsoluteY, false)
	set(0x5F, "*SRE", 3, 7, AbsoluteX, false)

	set(0x63, "*RRA", 2, 8, IndexedIndirect, false)
	set(0x67, "*RRA", 2, 5, ZeroPage, false)
	set(0x6F, "*RRA", 3, 6, Absolute, false)
	set(0x73, "*RRA", 2, 8, IndirectIndexed, false)
	set(0x77, "*RRA", 2, 6, ZeroPageX, false)
	set(0x7B, "*RRA", 3, 7, AbsoluteY, false)
	set(0x7F, "*RRA", 3, 7, AbsoluteX, false)
}
