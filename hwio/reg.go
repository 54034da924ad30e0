package hwio

import "fmt"

type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = 1 << iota
	WriteOnlyFlag
)

// Reg8 is a single byte register, optionally backed by read/write/peek
// callbacks. It is the building block for CPU/PPU/APU/mapper register banks
// mapped onto a Table through struct tags (see mustInitRegs).
type Reg8 struct {
	Name  string
	Value uint8

	// RWMask selects which bits are writable by the CPU; the rest keep
	// whatever the device last drove onto them (used for status registers
	// with hardwired bits).
	RWMask uint8
	Reset  uint8

	Flags   RWFlags
	ReadCb  func(val uint8) uint8
	PeekCb  func(val uint8) uint8
	WriteCb func(old, val uint8)
}

func (reg Reg8) String() string {
	return fmt.Sprintf("%s{%02x}", reg.Name, reg.Value)
}

func (reg *Reg8) init() {
	mask := reg.RWMask
	if mask == 0 {
		mask = 0xFF
	}
	reg.RWMask = mask
	reg.Value = reg.Reset
}

func (reg *Reg8) Write8(addr uint16, val uint8) {
	if reg.Flags&ReadOnlyFlag != 0 {
		return
	}
	old := reg.Value
	reg.Value = (reg.Value &^ reg.RWMask) | (val & reg.RWMask)
	if reg.WriteCb != nil {
		reg.WriteCb(old, reg.Value)
	}
}

func (reg *Reg8) Read8(addr uint16) uint8 {
	if reg.Flags&WriteOnlyFlag != 0 {
		return 0
	}
	if reg.ReadCb != nil {
		return reg.ReadCb(reg.Value)
	}
	return reg.Value
}

func (reg *Reg8) Peek8(addr uint16) uint8 {
	if reg.PeekCb != nil {
		return reg.PeekCb(reg.Value)
	}
	return reg.Value
}

// SetBit/ClearBit/GetBit read and mutate Value directly, bypassing the
// read/write callbacks - used by owners that need to flip status bits
// outside of a CPU-driven bus access (e.g. PPU vblank flag).
func (reg *Reg8) SetBit(n uint)           { SetBit8(&reg.Value, n) }
func (reg *Reg8) ClearBit(n uint)         { ClearBit8(&reg.Value, n) }
func (reg *Reg8) ClearBits(mask uint8)    { ClearBits8(&reg.Value, mask) }
func (reg Reg8) GetBit(n uint) bool       { return GetBit8(reg.Value, n) }
func (reg Reg8) GetBiti(n uint) uint8     { return GetBiti8(reg.Value, n) }
