package mapper

// unrom is mapper 2 (UNROM/UOROM): a single 16 KiB switchable bank at
// $8000-$BFFF, the last 16 KiB bank fixed at $C000-$FFFF, 8 KiB CHR-RAM.
// Writing anywhere in $8000-$FFFF selects the bank; when busConflicts is set
// the written value is ANDed against the ROM byte at that address (bus
// conflict). New never sets busConflicts.
type unrom struct {
	*base
	busConflicts bool
}

func newUNROM(b *base) *unrom {
	m := &unrom{base: b}
	m.selectPRGPage16KB(0, 0)
	m.selectPRGPage16KB(1, -1)
	m.selectCHRROMPage8KB(0)
	return m
}

func (m *unrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.cpuReadPRG(addr)
	case addr >= 0x6000:
		return m.cpuReadPRGRAM(addr)
	}
	return 0
}

func (m *unrom) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		if m.busConflicts {
			val &= m.cpuReadPRG(addr)
		}
		m.selectPRGPage16KB(0, int(val&0x0F))
	case addr >= 0x6000:
		m.cpuWritePRGRAM(addr, val)
	}
}

func (m *unrom) ReadCHR(addr uint16) uint8        { return m.readCHR(addr) }
func (m *unrom) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }
