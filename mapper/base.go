package mapper

import (
	"fmt"

	"nescore/ines"
	"nescore/ppu"
)

const prgRAMSize = 0x2000 // 8 KiB, the common case; boards needing more override it.

// base holds the cartridge image and bank-selection state shared by every
// mapper: PRG-ROM/CHR-ROM/CHR-RAM slices plus 16 KiB/8 KiB/4 KiB/2 KiB/1 KiB
// page tables recomputed whenever a board writes its bank-select registers.
type base struct {
	cpu CPU
	rom *ines.ROM

	prg    []byte
	chr    []byte
	chrRAM bool

	prgRAM  []byte
	battery bool

	mirroring ppu.Mirroring

	// prgPage/chrPage hold, for each 1 KiB window of the CPU's 32 KiB
	// $8000-$FFFF space / the PPU's 8 KiB pattern-table space, the absolute
	// byte offset into prg/chr currently mapped there. Indexing is coarser
	// than 1 KiB in practice (mappers always select at least 8 KiB PRG / 1
	// KiB CHR granularity) but a uniform 1 KiB table keeps bank math
	// identical across every board regardless of its native granularity.
	prgPage [32]int
	chrPage [8]int
}

func newBase(rom *ines.ROM, c CPU) (*base, error) {
	b := &base{
		cpu:       c,
		rom:       rom,
		prg:       rom.PRG,
		mirroring: convertMirroring(rom.Mirroring),
		battery:   rom.Battery,
		prgRAM:    make([]byte, prgRAMSize),
	}
	if len(rom.CHR) == 0 {
		b.chr = make([]byte, 0x2000)
		b.chrRAM = true
	} else {
		b.chr = rom.CHR
	}
	if len(b.prg) == 0 {
		return nil, fmt.Errorf("mapper: ROM has no PRG data")
	}
	return b, nil
}

func convertMirroring(m ines.Mirroring) ppu.Mirroring {
	switch m {
	case ines.MirrorVertical:
		return ppu.MirrorVertical
	case ines.MirrorFourScreen:
		return ppu.MirrorFourScreen
	default:
		return ppu.MirrorHorizontal
	}
}

func (b *base) Mirroring() ppu.Mirroring { return b.mirroring }

func (b *base) setMirroring(m ppu.Mirroring) { b.mirroring = m }

func (b *base) BatteryRAM() []byte {
	if !b.battery {
		return nil
	}
	return b.prgRAM
}

// --- PRG bank selection ---
// page/windowKB select which `windowKB`-sized slice of prg (indexed in
// windowKB units, or -1 for "last bank") is visible starting at `slot`
// windowKB-sized slots into the $8000-$FFFF CPU window.

func (b *base) prgBankCount(windowKB int) int {
	return len(b.prg) / (windowKB * 1024)
}

func (b *base) selectPRG(slot, windowKB, page int) {
	count := b.prgBankCount(windowKB)
	if count == 0 {
		return
	}
	if page < 0 {
		page = count + page
	}
	page %= count
	base := page * windowKB
	for i := 0; i < windowKB; i++ {
		b.prgPage[slot*windowKB+i] = (base + i) * 1024
	}
}

func (b *base) selectPRGPage32KB(page int) { b.selectPRG(0, 32, page) }
func (b *base) selectPRGPage16KB(slot, page int) { b.selectPRG(slot, 16, page) }
func (b *base) selectPRGPage8KB(slot, page int)  { b.selectPRG(slot, 8, page) }

// cpuReadPRG reads from the $8000-$FFFF CPU window through the 1 KiB page
// table, honoring whatever granularity the last selectPRG* call established.
func (b *base) cpuReadPRG(addr uint16) uint8 {
	offset := addr - 0x8000
	slot := int(offset / 1024)
	within := int(offset % 1024)
	base := b.prgPage[slot]
	idx := base + within
	if idx < 0 || idx >= len(b.prg) {
		return 0
	}
	return b.prg[idx]
}

func (b *base) cpuReadPRGRAM(addr uint16) uint8 { return b.prgRAM[addr-0x6000] }
func (b *base) cpuWritePRGRAM(addr uint16, val uint8) { b.prgRAM[addr-0x6000] = val }

// --- CHR bank selection ---

func (b *base) chrBankCount(windowKB int) int {
	size := len(b.chr)
	if size == 0 {
		return 0
	}
	return size / (windowKB * 1024)
}

func (b *base) selectCHR(slot, windowKB, page int) {
	count := b.chrBankCount(windowKB)
	if count == 0 {
		return
	}
	if page < 0 {
		page = count + page
	}
	page %= count
	base := page * windowKB
	for i := 0; i < windowKB; i++ {
		b.chrPage[slot*windowKB+i] = (base + i) * 1024
	}
}

func (b *base) selectCHRROMPage8KB(page int) { b.selectCHR(0, 8, page) }
func (b *base) selectCHRROMPage4KB(slot, page int) { b.selectCHR(slot, 4, page) }
func (b *base) selectCHRROMPage2KB(slot, page int) { b.selectCHR(slot, 2, page) }
func (b *base) selectCHRROMPage1KB(slot, page int) { b.selectCHR(slot, 1, page) }

func (b *base) readCHR(addr uint16) uint8 {
	slot := int(addr / 1024)
	within := int(addr % 1024)
	base := b.chrPage[slot]
	idx := base + within
	if idx < 0 || idx >= len(b.chr) {
		return 0
	}
	return b.chr[idx]
}

func (b *base) writeCHR(addr uint16, val uint8) {
	if !b.chrRAM {
		return
	}
	slot := int(addr / 1024)
	within := int(addr % 1024)
	idx := b.chrPage[slot] + within
	if idx >= 0 && idx < len(b.chr) {
		b.chr[idx] = val
	}
}
