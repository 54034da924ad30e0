package cpu

// Mode identifies a 6502 addressing mode.
type Mode int

const (
	ModeImplied Mode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndexedIndirect // (d,X)
	ModeIndirectIndexed // (d),Y
	ModeRelative
)

func (c *CPU) fetch8() uint8 {
	v := c.read8(c.PC)
	c.PC++
	return v
}

// resolveOperand consumes the instruction's operand bytes from the stream
// and returns the effective address together with whether an indexed
// addressing mode crossed a page boundary computing it. For Implied and
// Accumulator the address is unused.
func (c *CPU) resolveOperand(mode Mode) (addr uint16, pageCrossed bool) {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return 0, false

	case ModeImmediate:
		addr = c.PC
		c.PC++
		return addr, false

	case ModeZeroPage:
		return uint16(c.fetch8()), false

	case ModeZeroPageX:
		return uint16(c.fetch8() + c.X), false

	case ModeZeroPageY:
		return uint16(c.fetch8() + c.Y), false

	case ModeAbsolute:
		lo := uint16(c.fetch8())
		hi := uint16(c.fetch8())
		return hi<<8 | lo, false

	case ModeAbsoluteX:
		base := c.fetch16()
		addr = base + uint16(c.X)
		return addr, pageCross(base, addr)

	case ModeAbsoluteY:
		base := c.fetch16()
		addr = base + uint16(c.Y)
		return addr, pageCross(base, addr)

	case ModeIndirect:
		ptr := c.fetch16()
		return c.read16bug(ptr), false

	case ModeIndexedIndirect:
		zp := c.fetch8() + c.X
		lo := uint16(c.read8(uint16(zp)))
		hi := uint16(c.read8(uint16(zp + 1)))
		return hi<<8 | lo, false

	case ModeIndirectIndexed:
		zp := c.fetch8()
		lo := uint16(c.read8(uint16(zp)))
		hi := uint16(c.read8(uint16(zp + 1)))
		base := hi<<8 | lo
		addr = base + uint16(c.Y)
		return addr, pageCross(base, addr)

	case ModeRelative:
		off := int8(c.fetch8())
		addr = uint16(int32(c.PC) + int32(off))
		return addr, false

	default:
		panic("cpu: unknown addressing mode")
	}
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch8())
	hi := uint16(c.fetch8())
	return hi<<8 | lo
}

func pageCross(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}
