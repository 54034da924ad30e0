package hwio

import "fmt"

// BankIO8 is anything that can be mapped onto a Table: Reg8, Mem, Device, or
// a user type implementing the interface directly.
type BankIO8 interface {
	Read8(addr uint16) uint8
	Peek8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

type entry struct {
	io       BankIO8
	name     string
	base     uint16
	end      uint16 // inclusive
}

// Table is a 16-bit memory-mapped bus: a set of non-overlapping (or
// overlapping-by-design, first-registration-wins) address ranges, each backed
// by a BankIO8. CPU, PPU and mappers are all built on top of one or more
// Tables.
type Table struct {
	Name string

	entries []*entry

	// Unmapped is consulted when no entry covers an address. It models
	// open-bus behaviour: the last byte value driven onto the bus.
	Unmapped func(addr uint16) uint8
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

func (t *Table) find(addr uint16) *entry {
	for _, e := range t.entries {
		if addr >= e.base && addr <= e.end {
			return e
		}
	}
	return nil
}

func (t *Table) add(base, end uint16, io BankIO8, name string) {
	t.entries = append(t.entries, &entry{io: io, name: name, base: base, end: end})
}

// MapReg8 maps a single register at addr.
func (t *Table) MapReg8(addr uint16, reg *Reg8) {
	reg.init()
	t.add(addr, addr, reg, reg.Name)
}

// MapMem maps a Mem area starting at addr. The visible span is VSize when set
// (mirroring), otherwise len(Data).
func (t *Table) MapMem(addr uint16, m *Mem) {
	m.base = addr
	span := m.VSize
	if span == 0 {
		span = len(m.Data)
	}
	if span == 0 {
		panic(fmt.Sprintf("hwio: Mem %q mapped with zero size", m.Name))
	}
	t.add(addr, addr+uint16(span-1), m, m.Name)
}

// MapDevice maps a Device covering [addr, addr+Size).
func (t *Table) MapDevice(addr uint16, d *Device) {
	if d.Size <= 0 {
		panic(fmt.Sprintf("hwio: Device %q mapped with zero size", d.Name))
	}
	t.add(addr, addr+uint16(d.Size-1), d, d.Name)
}

// MapMemorySlice maps a raw []byte directly between [first, last] with no
// mirroring, no callbacks, and relative indexing handled internally.
func (t *Table) MapMemorySlice(first, last uint16, data []byte, readonly bool) {
	if int(last-first)+1 != len(data) {
		panic(fmt.Sprintf("hwio: slice span %d..%d does not match data length %d", first, last, len(data)))
	}
	t.add(first, last, &sliceMem{base: first, data: data, readonly: readonly}, "slice")
}

// MapBank maps every hwio-tagged field of bank at the given base address.
// bankNum is passed through to mustInitRegs (see tags.go), which does not
// interpret it.
func (t *Table) MapBank(addr uint16, bank any, bankNum int) {
	mustInitRegs(t, addr, bank, bankNum)
}

// Unmap removes every entry covering addr (exact-match start address).
func (t *Table) Unmap(addr uint16) {
	out := t.entries[:0]
	for _, e := range t.entries {
		if e.base != addr {
			out = append(out, e)
		}
	}
	t.entries = out
}

func (t *Table) Read8(addr uint16) uint8 {
	if e := t.find(addr); e != nil {
		return e.io.Read8(addr)
	}
	if t.Unmapped != nil {
		return t.Unmapped(addr)
	}
	return 0
}

func (t *Table) Peek8(addr uint16) uint8 {
	if e := t.find(addr); e != nil {
		return e.io.Peek8(addr)
	}
	if t.Unmapped != nil {
		return t.Unmapped(addr)
	}
	return 0
}

func (t *Table) Write8(addr uint16, val uint8) {
	if e := t.find(addr); e != nil {
		e.io.Write8(addr, val)
	}
}
