package mapper

import (
	"nescore/cpu"
	"nescore/ppu"
)

// mmc3 is mapper 4 (TxROM/MMC3), also covering MMC6 (mapper 9, a variant
// with finer-grained PRG-RAM write protection this port doesn't model
// separately) and DxROM (mapper 206, MMC3 hardware with the IRQ counter and
// WRAM simply unused by any game that shipped on it).
//
// Eight PRG/CHR bank-select registers (indexed by the low 3 bits of the
// last value written to an even $8000-$9FFF address) cover two swappable 8
// KiB PRG windows, two swappable 2 KiB CHR windows, and four swappable 1
// KiB CHR windows; the remaining PRG/CHR windows are fixed per the current
// prgMode/chrMode bit. A 8-bit down counter clocked on the PPU address
// bus's A12 rising edge drives a scanline IRQ.
type mmc3 struct {
	*base

	bankSelect uint8
	registers  [8]uint8
	prgMode    uint8
	chrMode    uint8

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool

	isMMC6 bool
}

func newMMC3(b *base, isMMC6 bool) *mmc3 {
	m := &mmc3{base: b, isMMC6: isMMC6}
	m.remap()
	return m
}

func newMMC6(b *base) *mmc3 { return newMMC3(b, true) }
func newDxROM(b *base) *mmc3 { return newMMC3(b, false) }

func (m *mmc3) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.cpuReadPRG(addr)
	case addr >= 0x6000:
		return m.cpuReadPRGRAM(addr)
	}
	return 0
}

func (m *mmc3) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.cpuWritePRGRAM(addr, val)
	case addr >= 0x8000 && addr <= 0x9FFF:
		if addr&1 == 0 {
			m.bankSelect = val
			m.prgMode = (val >> 6) & 0x01
			m.chrMode = (val >> 7) & 0x01
		} else {
			m.registers[m.bankSelect&0x07] = val
		}
		m.remap()
	case addr >= 0xA000 && addr <= 0xBFFF:
		if addr&1 == 0 {
			if val&0x01 != 0 {
				m.setMirroring(ppu.MirrorHorizontal)
			} else {
				m.setMirroring(ppu.MirrorVertical)
			}
		}
		// odd address: PRG-RAM protect/enable, not modeled (no game relies
		// on write-protecting WRAM against itself).
	case addr >= 0xC000 && addr <= 0xDFFF:
		if addr&1 == 0 {
			m.irqLatch = val
		} else {
			m.irqCounter = 0
			m.irqReload = true
		}
	case addr >= 0xE000:
		if addr&1 == 0 {
			m.irqEnabled = false
			if m.cpu != nil {
				m.cpu.ClearIRQ(cpu.IRQMapper)
			}
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mmc3) remap() {
	last8 := m.prgBankCount(8) - 1
	switch m.prgMode {
	case 0:
		m.selectPRGPage8KB(0, int(m.registers[6]))
		m.selectPRGPage8KB(1, int(m.registers[7]))
		m.selectPRGPage8KB(2, last8-1)
		m.selectPRGPage8KB(3, last8)
	case 1:
		m.selectPRGPage8KB(0, last8-1)
		m.selectPRGPage8KB(1, int(m.registers[7]))
		m.selectPRGPage8KB(2, int(m.registers[6]))
		m.selectPRGPage8KB(3, last8)
	}

	switch m.chrMode {
	case 0:
		m.selectCHRROMPage2KB(0, int(m.registers[0]>>1))
		m.selectCHRROMPage2KB(1, int(m.registers[1]>>1))
		m.selectCHRROMPage1KB(4, int(m.registers[2]))
		m.selectCHRROMPage1KB(5, int(m.registers[3]))
		m.selectCHRROMPage1KB(6, int(m.registers[4]))
		m.selectCHRROMPage1KB(7, int(m.registers[5]))
	case 1:
		m.selectCHRROMPage1KB(0, int(m.registers[2]))
		m.selectCHRROMPage1KB(1, int(m.registers[3]))
		m.selectCHRROMPage1KB(2, int(m.registers[4]))
		m.selectCHRROMPage1KB(3, int(m.registers[5]))
		m.selectCHRROMPage2KB(2, int(m.registers[0]>>1))
		m.selectCHRROMPage2KB(3, int(m.registers[1]>>1))
	}
}

func (m *mmc3) ReadCHR(addr uint16) uint8        { return m.readCHR(addr) }
func (m *mmc3) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }

// OnA12Rising clocks the scanline counter, called by the PPU whenever its
// VRAM address bus transitions A12 low-to-high (background/sprite pattern
// fetches at $1000+ do this once per scanline in the common case).
func (m *mmc3) OnA12Rising() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled && m.cpu != nil {
		m.cpu.RequestIRQ(cpu.IRQMapper)
	}
}

func (m *mmc3) SaveState() []byte {
	out := make([]byte, 0, 16)
	out = append(out, m.bankSelect, m.prgMode, m.chrMode, m.irqLatch, m.irqCounter,
		boolToByte(m.irqReload), boolToByte(m.irqEnabled))
	out = append(out, m.registers[:]...)
	return out
}

func (m *mmc3) LoadState(data []byte) error {
	if len(data) < 15 {
		return errShortState
	}
	m.bankSelect, m.prgMode, m.chrMode = data[0], data[1], data[2]
	m.irqLatch, m.irqCounter = data[3], data[4]
	m.irqReload, m.irqEnabled = data[5] != 0, data[6] != 0
	copy(m.registers[:], data[7:15])
	m.remap()
	return nil
}
