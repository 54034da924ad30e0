package mapper

import "nescore/ppu"

// axrom is mapper 7: a single switchable 32 KiB PRG-ROM bank, 8 KiB CHR-RAM,
// and single-screen mirroring selected by bit 4 of the bank register (one
// physical nametable, picked between the two halves of VRAM).
type axrom struct {
	*base
	busConflicts bool
}

func newAxROM(b *base) *axrom {
	m := &axrom{base: b}
	m.selectPRGPage32KB(0)
	m.selectCHRROMPage8KB(0)
	m.setMirroring(ppu.MirrorSingleA)
	return m
}

func (m *axrom) CPURead(addr uint16) uint8 {
	if addr >= 0x8000 {
		return m.cpuReadPRG(addr)
	}
	return 0
}

func (m *axrom) CPUWrite(addr uint16, val uint8) {
	if addr < 0x8000 {
		return
	}
	if m.busConflicts {
		val &= m.cpuReadPRG(addr)
	}
	m.selectPRGPage32KB(int(val & 0x07))
	if val&0x10 != 0 {
		m.setMirroring(ppu.MirrorSingleB)
	} else {
		m.setMirroring(ppu.MirrorSingleA)
	}
}

func (m *axrom) ReadCHR(addr uint16) uint8        { return m.readCHR(addr) }
func (m *axrom) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }
