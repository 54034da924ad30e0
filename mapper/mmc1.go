package mapper

import "nescore/ppu"

// mmc1 is mapper 1: a 5-bit serial shift register feeding four internal
// registers (control, CHR bank 0, CHR bank 1, PRG bank), written one bit at
// a time via any $8000-$FFFF address with bit 7 set on the written value
// resetting the shift register instead of shifting in a bit.
type mmc1 struct {
	*base

	shift   uint8
	shiftN  uint8
	ctrl    uint8
	chr0    uint8
	chr1    uint8
	prg     uint8
	wramOff bool
}

func newMMC1(b *base) *mmc1 {
	m := &mmc1{base: b, ctrl: 0x0C}
	m.applyCtrl(m.ctrl)
	m.remap()
	return m
}

func (m *mmc1) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.cpuReadPRG(addr)
	case addr >= 0x6000:
		if m.wramOff {
			return 0
		}
		return m.cpuReadPRGRAM(addr)
	}
	return 0
}

func (m *mmc1) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		m.shiftWrite(addr, val)
	case addr >= 0x6000:
		if !m.wramOff {
			m.cpuWritePRGRAM(addr, val)
		}
	}
}

func (m *mmc1) shiftWrite(addr uint16, val uint8) {
	if val&0x80 != 0 {
		m.shift = 0
		m.shiftN = 0
		m.ctrl |= 0x0C
		m.applyCtrl(m.ctrl)
		m.remap()
		return
	}
	m.shift = (m.shift >> 1) | ((val & 0x01) << 4)
	m.shiftN++
	if m.shiftN < 5 {
		return
	}
	m.writeRegister(addr, m.shift)
	m.shift = 0
	m.shiftN = 0
}

func (m *mmc1) writeRegister(addr uint16, val uint8) {
	switch (addr >> 13) & 0x03 {
	case 0:
		m.ctrl = val
		m.applyCtrl(val)
	case 1:
		m.chr0 = val
	case 2:
		m.chr1 = val
	case 3:
		m.prg = val & 0x1F
		m.wramOff = val&0x10 != 0
	}
	m.remap()
}

func (m *mmc1) applyCtrl(val uint8) {
	switch val & 0x03 {
	case 0:
		m.setMirroring(ppu.MirrorSingleA)
	case 1:
		m.setMirroring(ppu.MirrorSingleB)
	case 2:
		m.setMirroring(ppu.MirrorVertical)
	case 3:
		m.setMirroring(ppu.MirrorHorizontal)
	}
}

func (m *mmc1) remap() {
	chrMode := (m.ctrl >> 4) & 0x01
	prgMode := (m.ctrl >> 2) & 0x03

	switch prgMode {
	case 0, 1:
		m.selectPRGPage32KB(int(m.prg >> 1))
	case 2:
		m.selectPRGPage16KB(0, 0)
		m.selectPRGPage16KB(1, int(m.prg))
	case 3:
		m.selectPRGPage16KB(0, int(m.prg))
		m.selectPRGPage16KB(1, -1)
	}

	if chrMode == 0 {
		m.selectCHRROMPage8KB(int(m.chr0 >> 1))
	} else {
		m.selectCHRROMPage4KB(0, int(m.chr0))
		m.selectCHRROMPage4KB(1, int(m.chr1))
	}
}

func (m *mmc1) ReadCHR(addr uint16) uint8        { return m.readCHR(addr) }
func (m *mmc1) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }

func (m *mmc1) SaveState() []byte {
	return []byte{m.shift, m.shiftN, m.ctrl, m.chr0, m.chr1, m.prg, boolToByte(m.wramOff)}
}

func (m *mmc1) LoadState(data []byte) error {
	if len(data) < 7 {
		return errShortState
	}
	m.shift, m.shiftN, m.ctrl, m.chr0, m.chr1, m.prg = data[0], data[1], data[2], data[3], data[4], data[5]
	m.wramOff = data[6] != 0
	m.applyCtrl(m.ctrl)
	m.remap()
	return nil
}
