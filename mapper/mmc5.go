package mapper

import (
	"nescore/apu"
	"nescore/cpu"
	"nescore/ppu"
)

// mmc5 is mapper 5: the most elaborate board in this framework. PRG and CHR
// each have four independent bank-size modes; ExRAM serves one of four
// roles (extra nametable source, extended attribute table, plain RW RAM, or
// read-only RAM); a scanline counter (driven by the orchestrator's
// once-per-scanline OnPPUScanline poll rather than A12, since MMC5 carts
// don't wire A12 to the IRQ the way MMC3 does)
// raises an IRQ at a configured target scanline; an 8x8 unsigned multiplier
// sits at $5205/$5206; its two extra pulse channels and PCM register
// ($5000-$5011, $5015) are forwarded to an apu.ExpansionAudio. The
// vertical-split renderer is still outside this package's scope (it needs
// PPU-side cooperation this simplified per-scanline composite doesn't
// model) and is left as a documented gap rather than silently mis-emulated.
type mmc5 struct {
	*base

	snd *apu.ExpansionAudio

	prgMode uint8
	chrMode uint8

	prgRAMProtect1 uint8
	prgRAMProtect2 uint8

	prgRegs [5]uint8 // $5113-$5117, slot 0 is PRG-RAM only
	chrRegs [12]uint8
	chrHigh uint8 // upper CHR bank bits, $5130

	exramMode  uint8
	nametable  [4]uint8 // $5105: 2 bits per logical nametable -> source select
	fillTile   uint8
	fillColor  uint8
	exram      [1024]byte

	multiplicand uint8
	multiplier   uint8

	irqTarget   uint8
	irqEnabled  bool
	irqPending  bool
	inFrame     bool
	scanline    int
}

func newMMC5(b *base, snd *apu.APU) *mmc5 {
	m := &mmc5{base: b, snd: apu.NewExpansionAudio(snd)}
	m.selectPRGPage8KB(3, -1) // last bank fixed at $E000-$FFFF on power-up
	return m
}

func (m *mmc5) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.cpuReadPRG(addr)
	case addr >= 0x6000:
		return m.readExtendedRAM(addr)
	case addr >= 0x5C00:
		return m.readExtendedRAM(addr)
	case addr == 0x5204:
		status := uint8(0)
		if m.irqPending {
			status |= 0x80
		}
		if m.inFrame {
			status |= 0x40
		}
		m.irqPending = false
		m.cpu.ClearIRQ(cpu.IRQMapper)
		return status
	case addr == 0x5205:
		return uint8(uint16(m.multiplicand) * uint16(m.multiplier))
	case addr == 0x5206:
		return uint8((uint16(m.multiplicand) * uint16(m.multiplier)) >> 8)
	case addr == 0x5015:
		return m.snd.ReadStatus()
	}
	return 0
}

func (m *mmc5) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		return // PRG-ROM: read-only from the CPU's side
	case addr >= 0x6000:
		m.writeExtendedRAM(addr, val)
	case addr >= 0x5C00:
		m.writeExtendedRAM(addr, val)
	case addr == 0x5100:
		m.prgMode = val & 0x03
	case addr == 0x5101:
		m.chrMode = val & 0x03
	case addr == 0x5102:
		m.prgRAMProtect1 = val & 0x03
	case addr == 0x5103:
		m.prgRAMProtect2 = val & 0x03
	case addr == 0x5104:
		m.exramMode = val & 0x03
	case addr == 0x5000, addr == 0x5002, addr == 0x5003, addr == 0x5004,
		addr == 0x5006, addr == 0x5007, addr == 0x5010, addr == 0x5011, addr == 0x5015:
		m.snd.WriteRegister(addr, val)
	case addr == 0x5105:
		for i := 0; i < 4; i++ {
			m.nametable[i] = (val >> (uint(i) * 2)) & 0x03
		}
	case addr == 0x5106:
		m.fillTile = val
	case addr == 0x5107:
		m.fillColor = val & 0x03
	case addr >= 0x5113 && addr <= 0x5117:
		m.prgRegs[addr-0x5113] = val
		m.remapPRG()
	case addr >= 0x5120 && addr <= 0x512B:
		m.chrRegs[addr-0x5120] = val
		m.remapCHR()
	case addr == 0x5130:
		m.chrHigh = val & 0x03
	case addr == 0x5203:
		m.irqTarget = val
	case addr == 0x5204:
		m.irqEnabled = val&0x80 != 0
		if !m.irqEnabled {
			m.cpu.ClearIRQ(cpu.IRQMapper)
		}
	case addr == 0x5205:
		m.multiplicand = val
	case addr == 0x5206:
		m.multiplier = val
	}
}

func (m *mmc5) readExtendedRAM(addr uint16) uint8 {
	if addr >= 0x5C00 && addr < 0x6000 {
		return m.exram[addr-0x5C00]
	}
	if addr >= 0x6000 && addr < 0x8000 {
		return m.cpuReadPRGRAM(addr & 0x1FFF)
	}
	return 0
}

func (m *mmc5) writeExtendedRAM(addr uint16, val uint8) {
	if addr >= 0x5C00 && addr < 0x6000 {
		if m.exramMode != 3 {
			m.exram[addr-0x5C00] = val
		}
		return
	}
	if addr >= 0x6000 && addr < 0x8000 {
		m.cpuWritePRGRAM(addr&0x1FFF, val)
	}
}

func (m *mmc5) remapPRG() {
	switch m.prgMode {
	case 0:
		m.selectPRGPage32KB(int(m.prgRegs[4]>>2) & 0x07)
	case 1:
		m.selectPRGPage16KB(0, int(m.prgRegs[2]>>1))
		m.selectPRGPage16KB(1, int(m.prgRegs[4]>>1))
	case 2:
		m.selectPRGPage16KB(0, int(m.prgRegs[2]>>1))
		m.selectPRGPage8KB(2, int(m.prgRegs[3]))
		m.selectPRGPage8KB(3, int(m.prgRegs[4]))
	case 3:
		m.selectPRGPage8KB(0, int(m.prgRegs[1]))
		m.selectPRGPage8KB(1, int(m.prgRegs[2]))
		m.selectPRGPage8KB(2, int(m.prgRegs[3]))
		m.selectPRGPage8KB(3, int(m.prgRegs[4]))
	}
}

func (m *mmc5) remapCHR() {
	switch m.chrMode {
	case 0:
		m.selectCHRROMPage8KB(int(m.chrRegs[7]))
	case 1:
		m.selectCHRROMPage4KB(0, int(m.chrRegs[3]))
		m.selectCHRROMPage4KB(1, int(m.chrRegs[7]))
	case 2:
		m.selectCHRROMPage2KB(0, int(m.chrRegs[1]))
		m.selectCHRROMPage2KB(1, int(m.chrRegs[3]))
		m.selectCHRROMPage2KB(2, int(m.chrRegs[5]))
		m.selectCHRROMPage2KB(3, int(m.chrRegs[7]))
	case 3:
		for i := 0; i < 8; i++ {
			m.selectCHRROMPage1KB(i, int(m.chrRegs[i]))
		}
	}
}

// Tick advances the expansion-audio pulses and PCM output by one CPU cycle.
// The orchestrator polls for this alongside its own APU.Tick() for any
// mapper that implements it.
func (m *mmc5) Tick() { m.snd.Tick() }

func (m *mmc5) ReadCHR(addr uint16) uint8        { return m.readCHR(addr) }
func (m *mmc5) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }

// Mirroring always reports horizontal: MMC5's real nametable source select
// is per-nametable (ExRAM/fill/CIRAM-A/CIRAM-B), finer-grained than the
// ppu.Mirroring enum models. NametableOverride below supplies ExRAM and
// fill-mode reads; nametables selected as CIRAM A or B, and all nametable
// writes, go to the PPU's own VRAM folded with this horizontal mirroring.
func (m *mmc5) Mirroring() ppu.Mirroring { return ppu.MirrorHorizontal }

// NametableOverride implements ppu.NametableOverrider: MMC5 selects each of
// the four logical nametables' source independently via $5105.
func (m *mmc5) NametableOverride(addr uint16) (uint8, bool) {
	addr &= 0x0FFF
	nt := addr / 0x400
	offset := addr % 0x400
	switch m.nametable[nt] {
	case 2:
		return m.exram[offset], true
	case 3:
		if offset >= 0x3C0 {
			return m.fillColor, true
		}
		return m.fillTile, true
	default:
		return 0, false // CIRAM A/B: let the PPU's own VRAM handle it
	}
}

// OnPPUScanline is polled by the orchestrator once per PPU scanline so the
// IRQ counter can track frame position directly instead of A12 (MMC5
// doesn't monitor A12 the way MMC3 does).
func (m *mmc5) OnPPUScanline(scanline int, renderingEnabled bool) {
	if !renderingEnabled {
		m.inFrame = false
		return
	}
	if scanline == 0 {
		m.inFrame = true
		m.scanline = 0
	}
	m.scanline++
	if m.inFrame && uint8(m.scanline) == m.irqTarget && m.irqTarget != 0 {
		m.irqPending = true
		if m.irqEnabled {
			m.cpu.RequestIRQ(cpu.IRQMapper)
		}
	}
}

func (m *mmc5) SaveState() []byte {
	out := []byte{m.prgMode, m.chrMode, m.exramMode, m.fillTile, m.fillColor, m.chrHigh,
		m.irqTarget, boolToByte(m.irqEnabled), boolToByte(m.irqPending), boolToByte(m.inFrame),
		m.multiplicand, m.multiplier}
	out = append(out, m.prgRegs[:]...)
	out = append(out, m.chrRegs[:]...)
	out = append(out, m.nametable[:]...)
	out = append(out, m.exram[:]...)
	return out
}

func (m *mmc5) LoadState(data []byte) error {
	const fixed = 12 + 5 + 12 + 4
	if len(data) < fixed+1024 {
		return errShortState
	}
	m.prgMode, m.chrMode, m.exramMode = data[0], data[1], data[2]
	m.fillTile, m.fillColor, m.chrHigh = data[3], data[4], data[5]
	m.irqTarget = data[6]
	m.irqEnabled, m.irqPending, m.inFrame = data[7] != 0, data[8] != 0, data[9] != 0
	m.multiplicand, m.multiplier = data[10], data[11]
	i := 12
	copy(m.prgRegs[:], data[i:i+5])
	i += 5
	copy(m.chrRegs[:], data[i:i+12])
	i += 12
	copy(m.nametable[:], data[i:i+4])
	i += 4
	copy(m.exram[:], data[i:i+1024])
	m.remapPRG()
	m.remapCHR()
	return nil
}
