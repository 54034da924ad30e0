package mapper

// gxrom is mapper 66: a single register at $8000-$FFFF packs both a 32 KiB
// PRG bank select (bits 4-5) and an 8 KiB CHR bank select (bits 0-1).
type gxrom struct{ *base }

func newGxROM(b *base) *gxrom {
	m := &gxrom{base: b}
	m.selectPRGPage32KB(0)
	m.selectCHRROMPage8KB(0)
	return m
}

func (m *gxrom) CPURead(addr uint16) uint8 {
	if addr >= 0x8000 {
		return m.cpuReadPRG(addr)
	}
	return 0
}

func (m *gxrom) CPUWrite(addr uint16, val uint8) {
	if addr < 0x8000 {
		return
	}
	m.selectCHRROMPage8KB(int(val & 0x03))
	m.selectPRGPage32KB(int((val >> 4) & 0x03))
}

func (m *gxrom) ReadCHR(addr uint16) uint8        { return m.readCHR(addr) }
func (m *gxrom) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }

// colorDreams is mapper 11: like GxROM but with a wider PRG field (bits
// 0-1, up to 4 x 32 KiB banks) and CHR field (bits 4-7, up to 16 x 8 KiB
// banks) and no bus-conflict handling (the board uses a proper latch).
type colorDreams struct{ *base }

func newColorDreams(b *base) *colorDreams {
	m := &colorDreams{base: b}
	m.selectPRGPage32KB(0)
	m.selectCHRROMPage8KB(0)
	return m
}

func (m *colorDreams) CPURead(addr uint16) uint8 {
	if addr >= 0x8000 {
		return m.cpuReadPRG(addr)
	}
	return 0
}

func (m *colorDreams) CPUWrite(addr uint16, val uint8) {
	if addr < 0x8000 {
		return
	}
	m.selectPRGPage32KB(int(val & 0x03))
	m.selectCHRROMPage8KB(int((val >> 4) & 0x0F))
}

func (m *colorDreams) ReadCHR(addr uint16) uint8        { return m.readCHR(addr) }
func (m *colorDreams) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }

// bnromOrNINA is mapper 34, handled as BNROM only: a 32 KiB PRG bank select
// via any $8000-$FFFF write, with a fixed 8 KiB CHR bank. The NINA-001
// variant's separate PRG/CHR latches at $7FFD-$7FFF are not implemented.
// Most iNES dumps in the wild are BNROM under mapper 34; true NINA-001 carts
// are vanishingly rare and would need submapper info this port doesn't track.
type bnromOrNINA struct{ *base }

func newBNROMorNINA(b *base) *bnromOrNINA {
	m := &bnromOrNINA{base: b}
	m.selectPRGPage32KB(0)
	m.selectCHRROMPage8KB(0)
	return m
}

func (m *bnromOrNINA) CPURead(addr uint16) uint8 {
	if addr >= 0x8000 {
		return m.cpuReadPRG(addr)
	}
	return 0
}

func (m *bnromOrNINA) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x8000 {
		m.selectPRGPage32KB(int(val))
	}
}

func (m *bnromOrNINA) ReadCHR(addr uint16) uint8        { return m.readCHR(addr) }
func (m *bnromOrNINA) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }

// nina03 is mappers 79/113 (NINA-03/NINA-06): an 8-bit latch written at any
// address in $4100-$5FFF or $6000-$7FFF, packing a 32 KiB PRG select (bit 3) and 8 KiB CHR select (bits 0-2).
type nina03 struct{ *base }

func newNINA03(b *base) *nina03 {
	m := &nina03{base: b}
	m.selectPRGPage32KB(0)
	m.selectCHRROMPage8KB(0)
	return m
}

func (m *nina03) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.cpuReadPRG(addr)
	case addr >= 0x6000:
		return m.cpuReadPRGRAM(addr)
	}
	return 0
}

func (m *nina03) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		return
	case addr >= 0x4100 && addr <= 0x5FFF, addr >= 0x6000 && addr < 0x8000:
		m.selectCHRROMPage8KB(int(val & 0x07))
		m.selectPRGPage32KB(int((val >> 3) & 0x01))
	}
}

func (m *nina03) ReadCHR(addr uint16) uint8        { return m.readCHR(addr) }
func (m *nina03) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }
