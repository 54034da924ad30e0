// Package mapper implements NES cartridge mappers: the bank-switching and
// IRQ logic that turns a flat iNES PRG/CHR image into whatever memory map a
// given board presents to the CPU and PPU.
package mapper

import (
	"fmt"

	"nescore/apu"
	"nescore/cpu"
	"nescore/ines"
	"nescore/log"
	"nescore/ppu"
)

var mod = log.NewModule("mapper")

// CPU is the mapper's view of the CPU: enough to drive a scanline/cycle IRQ
// line (MMC3/MMC5/VRC4). Bus-conflict emulation reads the mapper's own PRG
// data directly instead of peeking the real CPU bus, which is equivalent
// for every board in this package (the conflict is always against the same
// ROM the write's address already selects).
type CPU interface {
	RequestIRQ(src cpu.IRQSource)
	ClearIRQ(src cpu.IRQSource)
}

// Mapper is implemented by every cartridge board. It satisfies ppu.Mapper
// directly (ReadCHR/WriteCHR) so a Mapper can be handed straight to
// ppu.PPU.Mapper.
type Mapper interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)

	// Mirroring reports the current nametable mirroring mode.
	Mirroring() ppu.Mirroring

	// BatteryRAM returns the battery-backed PRG-RAM contents to persist
	// between sessions, or nil if the board has none.
	BatteryRAM() []byte
}

// Snapshotter is implemented by mappers with internal state beyond bank
// registers that snapshot/restore needs (shift registers, IRQ counters).
type Snapshotter interface {
	SaveState() []byte
	LoadState([]byte) error
}

// New constructs the Mapper for rom, dispatching on its iNES mapper number.
// snd is where mapper 5 (MMC5) registers its expansion-audio channels;
// every other board ignores it.
func New(rom *ines.ROM, cpu CPU, snd *apu.APU) (Mapper, error) {
	b, err := newBase(rom, cpu)
	if err != nil {
		return nil, err
	}
	switch rom.Mapper {
	case 0:
		return newNROM(b), nil
	case 1:
		return newMMC1(b), nil
	case 2:
		return newUNROM(b), nil
	case 3:
		return newCNROM(b), nil
	case 4:
		return newMMC3(b, false), nil
	case 5:
		return newMMC5(b, snd), nil
	case 7:
		return newAxROM(b), nil
	case 9:
		return newMMC6(b), nil
	case 11:
		return newColorDreams(b), nil
	case 21, 23, 25:
		return newVRC4(b), nil
	case 34:
		return newBNROMorNINA(b), nil
	case 66:
		return newGxROM(b), nil
	case 79, 113:
		return newNINA03(b), nil
	case 206:
		return newDxROM(b), nil
	default:
		return nil, fmt.Errorf("mapper: unsupported mapper number %d", rom.Mapper)
	}
}
