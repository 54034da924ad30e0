package cpu

// Unstable/magic-constant-dependent illegal opcodes (XAA, LXA, LAS, TAS,
// SHY, SHX, AHX) behave differently across individual 6502 dies even on
// real hardware. No game relies on them for correct operation; these give
// a plausible, deterministic approximation rather than bit-exact silicon
// behavior, so PC/cycle flow stays correct without chasing undocumented
// per-chip noise.

func opLXA(c *CPU, addr uint16, mode Mode) {
	v := c.read8(addr)
	c.A = v
	c.X = v
	c.setZN(c.A)
}

func opXAA(c *CPU, addr uint16, mode Mode) {
	c.A = c.X & c.read8(addr)
	c.setZN(c.A)
}

func opLAS(c *CPU, addr uint16, mode Mode) {
	v := c.read8(addr) & c.SP
	c.A, c.X, c.SP = v, v, v
	c.setZN(v)
}

func opTAS(c *CPU, addr uint16, mode Mode) {
	c.SP = c.A & c.X
	c.write8(addr, c.SP&(uint8(addr>>8)+1))
}

func opSHY(c *CPU, addr uint16, mode Mode) { c.write8(addr, c.Y&(uint8(addr>>8)+1)) }
func opSHX(c *CPU, addr uint16, mode Mode) { c.write8(addr, c.X&(uint8(addr>>8)+1)) }
func opAHX(c *CPU, addr uint16, mode Mode) {
	c.write8(addr, c.A&c.X&(uint8(addr>>8)+1))
}

// opcodeTable is the 256-entry decode table. Unassigned byte values never
// occur here: every official opcode, every well-known illegal opcode, and
// every remaining byte value (multi-byte NOPs, JAM) has an entry, so PC
// never desynchronizes on an "undefined" opcode (spec.md's requirement,
// satisfied here by simply not leaving any gaps instead of aliasing to a
// single NOP catch-all).
var opcodeTable = [256]instruction{
	0x00: {"BRK", ModeImplied, 7, false, opBRK},
	0x01: {"ORA", ModeIndexedIndirect, 6, false, opORA},
	0x02: {"JAM", ModeImplied, 2, false, opJAM},
	0x03: {"SLO", ModeIndexedIndirect, 8, false, opSLO},
	0x04: {"NOP", ModeZeroPage, 3, false, opNOPRead},
	0x05: {"ORA", ModeZeroPage, 3, false, opORA},
	0x06: {"ASL", ModeZeroPage, 5, false, opASL},
	0x07: {"SLO", ModeZeroPage, 5, false, opSLO},
	0x08: {"PHP", ModeImplied, 3, false, opPHP},
	0x09: {"ORA", ModeImmediate, 2, false, opORA},
	0x0A: {"ASL", ModeAccumulator, 2, false, opASL},
	0x0B: {"ANC", ModeImmediate, 2, false, opANC},
	0x0C: {"NOP", ModeAbsolute, 4, false, opNOPRead},
	0x0D: {"ORA", ModeAbsolute, 4, false, opORA},
	0x0E: {"ASL", ModeAbsolute, 6, false, opASL},
	0x0F: {"SLO", ModeAbsolute, 6, false, opSLO},

	0x10: {"BPL", ModeRelative, 2, false, opBPL},
	0x11: {"ORA", ModeIndirectIndexed, 5, true, opORA},
	0x12: {"JAM", ModeImplied, 2, false, opJAM},
	0x13: {"SLO", ModeIndirectIndexed, 8, false, opSLO},
	0x14: {"NOP", ModeZeroPageX, 4, false, opNOPRead},
	0x15: {"ORA", ModeZeroPageX, 4, false, opORA},
	0x16: {"ASL", ModeZeroPageX, 6, false, opASL},
	0x17: {"SLO", ModeZeroPageX, 6, false, opSLO},
	0x18: {"CLC", ModeImplied, 2, false, opCLC},
	0x19: {"ORA", ModeAbsoluteY, 4, true, opORA},
	0x1A: {"NOP", ModeImplied, 2, false, opNOP},
	0x1B: {"SLO", ModeAbsoluteY, 7, false, opSLO},
	0x1C: {"NOP", ModeAbsoluteX, 4, true, opNOPRead},
	0x1D: {"ORA", ModeAbsoluteX, 4, true, opORA},
	0x1E: {"ASL", ModeAbsoluteX, 7, false, opASL},
	0x1F: {"SLO", ModeAbsoluteX, 7, false, opSLO},

	0x20: {"JSR", ModeAbsolute, 6, false, opJSR},
	0x21: {"AND", ModeIndexedIndirect, 6, false, opAND},
	0x22: {"JAM", ModeImplied, 2, false, opJAM},
	0x23: {"RLA", ModeIndexedIndirect, 8, false, opRLA},
	0x24: {"BIT", ModeZeroPage, 3, false, opBIT},
	0x25: {"AND", ModeZeroPage, 3, false, opAND},
	0x26: {"ROL", ModeZeroPage, 5, false, opROL},
	0x27: {"RLA", ModeZeroPage, 5, false, opRLA},
	0x28: {"PLP", ModeImplied, 4, false, opPLP},
	0x29: {"AND", ModeImmediate, 2, false, opAND},
	0x2A: {"ROL", ModeAccumulator, 2, false, opROL},
	0x2B: {"ANC", ModeImmediate, 2, false, opANC},
	0x2C: {"BIT", ModeAbsolute, 4, false, opBIT},
	0x2D: {"AND", ModeAbsolute, 4, false, opAND},
	0x2E: {"ROL", ModeAbsolute, 6, false, opROL},
	0x2F: {"RLA", ModeAbsolute, 6, false, opRLA},

	0x30: {"BMI", ModeRelative, 2, false, opBMI},
	0x31: {"AND", ModeIndirectIndexed, 5, true, opAND},
	0x32: {"JAM", ModeImplied, 2, false, opJAM},
	0x33: {"RLA", ModeIndirectIndexed, 8, false, opRLA},
	0x34: {"NOP", ModeZeroPageX, 4, false, opNOPRead},
	0x35: {"AND", ModeZeroPageX, 4, false, opAND},
	0x36: {"ROL", ModeZeroPageX, 6, false, opROL},
	0x37: {"RLA", ModeZeroPageX, 6, false, opRLA},
	0x38: {"SEC", ModeImplied, 2, false, opSEC},
	0x39: {"AND", ModeAbsoluteY, 4, true, opAND},
	0x3A: {"NOP", ModeImplied, 2, false, opNOP},
	0x3B: {"RLA", ModeAbsoluteY, 7, false, opRLA},
	0x3C: {"NOP", ModeAbsoluteX, 4, true, opNOPRead},
	0x3D: {"AND", ModeAbsoluteX, 4, true, opAND},
	0x3E: {"ROL", ModeAbsoluteX, 7, false, opROL},
	0x3F: {"RLA", ModeAbsoluteX, 7, false, opRLA},

	0x40: {"RTI", ModeImplied, 6, false, opRTI},
	0x41: {"EOR", ModeIndexedIndirect, 6, false, opEOR},
	0x42: {"JAM", ModeImplied, 2, false, opJAM},
	0x43: {"SRE", ModeIndexedIndirect, 8, false, opSRE},
	0x44: {"NOP", ModeZeroPage, 3, false, opNOPRead},
	0x45: {"EOR", ModeZeroPage, 3, false, opEOR},
	0x46: {"LSR", ModeZeroPage, 5, false, opLSR},
	0x47: {"SRE", ModeZeroPage, 5, false, opSRE},
	0x48: {"PHA", ModeImplied, 3, false, opPHA},
	0x49: {"EOR", ModeImmediate, 2, false, opEOR},
	0x4A: {"LSR", ModeAccumulator, 2, false, opLSR},
	0x4B: {"ALR", ModeImmediate, 2, false, opALR},
	0x4C: {"JMP", ModeAbsolute, 3, false, opJMP},
	0x4D: {"EOR", ModeAbsolute, 4, false, opEOR},
	0x4E: {"LSR", ModeAbsolute, 6, false, opLSR},
	0x4F: {"SRE", ModeAbsolute, 6, false, opSRE},

	0x50: {"BVC", ModeRelative, 2, false, opBVC},
	0x51: {"EOR", ModeIndirectIndexed, 5, true, opEOR},
	0x52: {"JAM", ModeImplied, 2, false, opJAM},
	0x53: {"SRE", ModeIndirectIndexed, 8, false, opSRE},
	0x54: {"NOP", ModeZeroPageX, 4, false, opNOPRead},
	0x55: {"EOR", ModeZeroPageX, 4, false, opEOR},
	0x56: {"LSR", ModeZeroPageX, 6, false, opLSR},
	0x57: {"SRE", ModeZeroPageX, 6, false, opSRE},
	0x58: {"CLI", ModeImplied, 2, false, opCLI},
	0x59: {"EOR", ModeAbsoluteY, 4, true, opEOR},
	0x5A: {"NOP", ModeImplied, 2, false, opNOP},
	0x5B: {"SRE", ModeAbsoluteY, 7, false, opSRE},
	0x5C: {"NOP", ModeAbsoluteX, 4, true, opNOPRead},
	0x5D: {"EOR", ModeAbsoluteX, 4, true, opEOR},
	0x5E: {"LSR", ModeAbsoluteX, 7, false, opLSR},
	0x5F: {"SRE", ModeAbsoluteX, 7, false, opSRE},

	0x60: {"RTS", ModeImplied, 6, false, opRTS},
	0x61: {"ADC", ModeIndexedIndirect, 6, false, opADC},
	0x62: {"JAM", ModeImplied, 2, false, opJAM},
	0x63: {"RRA", ModeIndexedIndirect, 8, false, opRRA},
	0x64: {"NOP", ModeZeroPage, 3, false, opNOPRead},
	0x65: {"ADC", ModeZeroPage, 3, false, opADC},
	0x66: {"ROR", ModeZeroPage, 5, false, opROR},
	0x67: {"RRA", ModeZeroPage, 5, false, opRRA},
	0x68: {"PLA", ModeImplied, 4, false, opPLA},
	0x69: {"ADC", ModeImmediate, 2, false, opADC},
	0x6A: {"ROR", ModeAccumulator, 2, false, opROR},
	0x6B: {"ARR", ModeImmediate, 2, false, opARR},
	0x6C: {"JMP", ModeIndirect, 5, false, opJMP},
	0x6D: {"ADC", ModeAbsolute, 4, false, opADC},
	0x6E: {"ROR", ModeAbsolute, 6, false, opROR},
	0x6F: {"RRA", ModeAbsolute, 6, false, opRRA},

	0x70: {"BVS", ModeRelative, 2, false, opBVS},
	0x71: {"ADC", ModeIndirectIndexed, 5, true, opADC},
	0x72: {"JAM", ModeImplied, 2, false, opJAM},
	0x73: {"RRA", ModeIndirectIndexed, 8, false, opRRA},
	0x74: {"NOP", ModeZeroPageX, 4, false, opNOPRead},
	0x75: {"ADC", ModeZeroPageX, 4, false, opADC},
	0x76: {"ROR", ModeZeroPageX, 6, false, opROR},
	0x77: {"RRA", ModeZeroPageX, 6, false, opRRA},
	0x78: {"SEI", ModeImplied, 2, false, opSEI},
	0x79: {"ADC", ModeAbsoluteY, 4, true, opADC},
	0x7A: {"NOP", ModeImplied, 2, false, opNOP},
	0x7B: {"RRA", ModeAbsoluteY, 7, false, opRRA},
	0x7C: {"NOP", ModeAbsoluteX, 4, true, opNOPRead},
	0x7D: {"ADC", ModeAbsoluteX, 4, true, opADC},
	0x7E: {"ROR", ModeAbsoluteX, 7, false, opROR},
	0x7F: {"RRA", ModeAbsoluteX, 7, false, opRRA},

	0x80: {"NOP", ModeImmediate, 2, false, opNOPRead},
	0x81: {"STA", ModeIndexedIndirect, 6, false, opSTA},
	0x82: {"NOP", ModeImmediate, 2, false, opNOPRead},
	0x83: {"SAX", ModeIndexedIndirect, 6, false, opSAX},
	0x84: {"STY", ModeZeroPage, 3, false, opSTY},
	0x85: {"STA", ModeZeroPage, 3, false, opSTA},
	0x86: {"STX", ModeZeroPage, 3, false, opSTX},
	0x87: {"SAX", ModeZeroPage, 3, false, opSAX},
	0x88: {"DEY", ModeImplied, 2, false, opDEY},
	0x89: {"NOP", ModeImmediate, 2, false, opNOPRead},
	0x8A: {"TXA", ModeImplied, 2, false, opTXA},
	0x8B: {"XAA", ModeImmediate, 2, false, opXAA},
	0x8C: {"STY", ModeAbsolute, 4, false, opSTY},
	0x8D: {"STA", ModeAbsolute, 4, false, opSTA},
	0x8E: {"STX", ModeAbsolute, 4, false, opSTX},
	0x8F: {"SAX", ModeAbsolute, 4, false, opSAX},

	0x90: {"BCC", ModeRelative, 2, false, opBCC},
	0x91: {"STA", ModeIndirectIndexed, 6, false, opSTA},
	0x92: {"JAM", ModeImplied, 2, false, opJAM},
	0x93: {"AHX", ModeIndirectIndexed, 6, false, opAHX},
	0x94: {"STY", ModeZeroPageX, 4, false, opSTY},
	0x95: {"STA", ModeZeroPageX, 4, false, opSTA},
	0x96: {"STX", ModeZeroPageY, 4, false, opSTX},
	0x97: {"SAX", ModeZeroPageY, 4, false, opSAX},
	0x98: {"TYA", ModeImplied, 2, false, opTYA},
	0x99: {"STA", ModeAbsoluteY, 5, false, opSTA},
	0x9A: {"TXS", ModeImplied, 2, false, opTXS},
	0x9B: {"TAS", ModeAbsoluteY, 5, false, opTAS},
	0x9C: {"SHY", ModeAbsoluteX, 5, false, opSHY},
	0x9D: {"STA", ModeAbsoluteX, 5, false, opSTA},
	0x9E: {"SHX", ModeAbsoluteY, 5, false, opSHX},
	0x9F: {"AHX", ModeAbsoluteY, 5, false, opAHX},

	0xA0: {"LDY", ModeImmediate, 2, false, opLDY},
	0xA1: {"LDA", ModeIndexedIndirect, 6, false, opLDA},
	0xA2: {"LDX", ModeImmediate, 2, false, opLDX},
	0xA3: {"LAX", ModeIndexedIndirect, 6, false, opLAX},
	0xA4: {"LDY", ModeZeroPage, 3, false, opLDY},
	0xA5: {"LDA", ModeZeroPage, 3, false, opLDA},
	0xA6: {"LDX", ModeZeroPage, 3, false, opLDX},
	0xA7: {"LAX", ModeZeroPage, 3, false, opLAX},
	0xA8: {"TAY", ModeImplied, 2, false, opTAY},
	0xA9: {"LDA", ModeImmediate, 2, false, opLDA},
	0xAA: {"TAX", ModeImplied, 2, false, opTAX},
	0xAB: {"LXA", ModeImmediate, 2, false, opLXA},
	0xAC: {"LDY", ModeAbsolute, 4, false, opLDY},
	0xAD: {"LDA", ModeAbsolute, 4, false, opLDA},
	0xAE: {"LDX", ModeAbsolute, 4, false, opLDX},
	0xAF: {"LAX", ModeAbsolute, 4, false, opLAX},

	0xB0: {"BCS", ModeRelative, 2, false, opBCS},
	0xB1: {"LDA", ModeIndirectIndexed, 5, true, opLDA},
	0xB2: {"JAM", ModeImplied, 2, false, opJAM},
	0xB3: {"LAX", ModeIndirectIndexed, 5, true, opLAX},
	0xB4: {"LDY", ModeZeroPageX, 4, false, opLDY},
	0xB5: {"LDA", ModeZeroPageX, 4, false, opLDA},
	0xB6: {"LDX", ModeZeroPageY, 4, false, opLDX},
	0xB7: {"LAX", ModeZeroPageY, 4, false, opLAX},
	0xB8: {"CLV", ModeImplied, 2, false, opCLV},
	0xB9: {"LDA", ModeAbsoluteY, 4, true, opLDA},
	0xBA: {"TSX", ModeImplied, 2, false, opTSX},
	0xBB: {"LAS", ModeAbsoluteY, 4, true, opLAS},
	0xBC: {"LDY", ModeAbsoluteX, 4, true, opLDY},
	0xBD: {"LDA", ModeAbsoluteX, 4, true, opLDA},
	0xBE: {"LDX", ModeAbsoluteY, 4, true, opLDX},
	0xBF: {"LAX", ModeAbsoluteY, 4, true, opLAX},

	0xC0: {"CPY", ModeImmediate, 2, false, opCPY},
	0xC1: {"CMP", ModeIndexedIndirect, 6, false, opCMP},
	0xC2: {"NOP", ModeImmediate, 2, false, opNOPRead},
	0xC3: {"DCP", ModeIndexedIndirect, 8, false, opDCP},
	0xC4: {"CPY", ModeZeroPage, 3, false, opCPY},
	0xC5: {"CMP", ModeZeroPage, 3, false, opCMP},
	0xC6: {"DEC", ModeZeroPage, 5, false, opDEC},
	0xC7: {"DCP", ModeZeroPage, 5, false, opDCP},
	0xC8: {"INY", ModeImplied, 2, false, opINY},
	0xC9: {"CMP", ModeImmediate, 2, false, opCMP},
	0xCA: {"DEX", ModeImplied, 2, false, opDEX},
	0xCB: {"AXS", ModeImmediate, 2, false, opAXS},
	0xCC: {"CPY", ModeAbsolute, 4, false, opCPY},
	0xCD: {"CMP", ModeAbsolute, 4, false, opCMP},
	0xCE: {"DEC", ModeAbsolute, 6, false, opDEC},
	0xCF: {"DCP", ModeAbsolute, 6, false, opDCP},

	0xD0: {"BNE", ModeRelative, 2, false, opBNE},
	0xD1: {"CMP", ModeIndirectIndexed, 5, true, opCMP},
	0xD2: {"JAM", ModeImplied, 2, false, opJAM},
	0xD3: {"DCP", ModeIndirectIndexed, 8, false, opDCP},
	0xD4: {"NOP", ModeZeroPageX, 4, false, opNOPRead},
	0xD5: {"CMP", ModeZeroPageX, 4, false, opCMP},
	0xD6: {"DEC", ModeZeroPageX, 6, false, opDEC},
	0xD7: {"DCP", ModeZeroPageX, 6, false, opDCP},
	0xD8: {"CLD", ModeImplied, 2, false, opCLD},
	0xD9: {"CMP", ModeAbsoluteY, 4, true, opCMP},
	0xDA: {"NOP", ModeImplied, 2, false, opNOP},
	0xDB: {"DCP", ModeAbsoluteY, 7, false, opDCP},
	0xDC: {"NOP", ModeAbsoluteX, 4, true, opNOPRead},
	0xDD: {"CMP", ModeAbsoluteX, 4, true, opCMP},
	0xDE: {"DEC", ModeAbsoluteX, 7, false, opDEC},
	0xDF: {"DCP", ModeAbsoluteX, 7, false, opDCP},

	0xE0: {"CPX", ModeImmediate, 2, false, opCPX},
	0xE1: {"SBC", ModeIndexedIndirect, 6, false, opSBC},
	0xE2: {"NOP", ModeImmediate, 2, false, opNOPRead},
	0xE3: {"ISC", ModeIndexedIndirect, 8, false, opISC},
	0xE4: {"CPX", ModeZeroPage, 3, false, opCPX},
	0xE5: {"SBC", ModeZeroPage, 3, false, opSBC},
	0xE6: {"INC", ModeZeroPage, 5, false, opINC},
	0xE7: {"ISC", ModeZeroPage, 5, false, opISC},
	0xE8: {"INX", ModeImplied, 2, false, opINX},
	0xE9: {"SBC", ModeImmediate, 2, false, opSBC},
	0xEA: {"NOP", ModeImplied, 2, false, opNOP},
	0xEB: {"SBC", ModeImmediate, 2, false, opSBC},
	0xEC: {"CPX", ModeAbsolute, 4, false, opCPX},
	0xED: {"SBC", ModeAbsolute, 4, false, opSBC},
	0xEE: {"INC", ModeAbsolute, 6, false, opINC},
	0xEF: {"ISC", ModeAbsolute, 6, false, opISC},

	0xF0: {"BEQ", ModeRelative, 2, false, opBEQ},
	0xF1: {"SBC", ModeIndirectIndexed, 5, true, opSBC},
	0xF2: {"JAM", ModeImplied, 2, false, opJAM},
	0xF3: {"ISC", ModeIndirectIndexed, 8, false, opISC},
	0xF4: {"NOP", ModeZeroPageX, 4, false, opNOPRead},
	0xF5: {"SBC", ModeZeroPageX, 4, false, opSBC},
	0xF6: {"INC", ModeZeroPageX, 6, false, opINC},
	0xF7: {"ISC", ModeZeroPageX, 6, false, opISC},
	0xF8: {"SED", ModeImplied, 2, false, opSED},
	0xF9: {"SBC", ModeAbsoluteY, 4, true, opSBC},
	0xFA: {"NOP", ModeImplied, 2, false, opNOP},
	0xFB: {"ISC", ModeAbsoluteY, 7, false, opISC},
	0xFC: {"NOP", ModeAbsoluteX, 4, true, opNOPRead},
	0xFD: {"SBC", ModeAbsoluteX, 4, true, opSBC},
	0xFE: {"INC", ModeAbsoluteX, 7, false, opINC},
	0xFF: {"ISC", ModeAbsoluteX, 7, false, opISC},
}
