// Package nes wires the cpu, ppu, apu, mapper, and input packages onto a
// single CPU bus and drives them frame by frame. Each of those packages only
// knows its own corner of the NES's address space and timing; this package
// is where the whole machine comes together, grounded on the teacher's
// emu.Emulator/emu.NES wiring shape and hw.CPU.InitBus's register-mapping
// order.
package nes

import (
	"fmt"

	"nescore/apu"
	"nescore/config"
	"nescore/cpu"
	"nescore/hwio"
	"nescore/ines"
	"nescore/input"
	"nescore/log"
	"nescore/mapper"
	"nescore/ppu"
)

// Console is a complete NES: CPU, PPU, APU, the currently inserted
// cartridge's mapper, and the two controller ports, all wired onto one
// CPU-facing bus.
type Console struct {
	CPU *cpu.CPU
	PPU *ppu.PPU
	APU *apu.APU

	Controller1 *input.Controller
	Controller2 *input.Controller
	Zapper      *input.Zapper
	Input       *input.Ports

	Mapper mapper.Mapper
	rom    *ines.ROM

	cfg config.EmulationConfig

	bus *hwio.Table
	ram hwio.Mem

	scanlineMapper scanlineMapper
	tickableMapper tickableMapper
	frameDone      bool
}

// scanlineMapper is implemented by mappers (MMC5) that track their IRQ
// counter from PPU scanline position directly rather than the A12 line.
type scanlineMapper interface {
	OnPPUScanline(scanline int, renderingEnabled bool)
}

// New creates a Console with no cartridge inserted; call InsertCartridge
// before PowerOn.
func New(cfg config.EmulationConfig) *Console {
	c := &Console{cfg: cfg}

	c.bus = hwio.NewTable("cpu")
	c.PPU = ppu.New()
	c.CPU = cpu.New(c.bus)
	c.APU = apu.New(c.CPU, c.bus, cfg.Audio.SampleRate)

	c.Input = input.New()
	c.Controller1 = input.NewController()
	c.Input.Port1 = c.Controller1
	if cfg.Input.ZapperEnabled {
		c.Zapper = input.NewZapper(c.PPU)
		c.Input.Port2 = c.Zapper
	} else {
		c.Controller2 = input.NewController()
		c.Input.Port2 = c.Controller2
	}

	c.CPU.OnCycle = c.catchUp
	c.PPU.FrameDone = func() { c.frameDone = true }
	c.PPU.OnNMI = c.CPU.RequestNMI

	c.initBus()
	return c
}

// initBus maps every fixed (cartridge-independent) region of the CPU's
// address space. The cartridge window ($4020-$FFFF) is (re)mapped by
// InsertCartridge, since it depends on which mapper is plugged in.
func (c *Console) initBus() {
	c.ram = hwio.Mem{Name: "RAM", Data: make([]byte, 0x800), VSize: 0x2000}
	c.bus.MapMem(0x0000, &c.ram)

	c.PPU.InitBus(c.bus)

	c.APU.InitBus(c.bus)
	c.bus.MapDevice(0x4014, &hwio.Device{
		Name:    "OAMDMA",
		Size:    1,
		WriteCb: c.writeOAMDMA,
	})

	c.Input.InitBus(c.bus)
	c.bus.MapDevice(0x4017, &hwio.Device{
		Name:    "JOY2_FRAMECOUNTER",
		Size:    1,
		ReadCb:  func(uint16) uint8 { return c.Input.ReadPort2() },
		WriteCb: func(_ uint16, val uint8) { c.APU.WriteFrameCounter(val) },
	})

	c.bus.Unmapped = func(addr uint16) uint8 { return c.CPU.OpenBus }
}

// InsertCartridge constructs the mapper for rom, replacing any
// cartridge already loaded. Call PowerOn afterward.
func (c *Console) InsertCartridge(rom *ines.ROM) error {
	m, err := mapper.New(rom, c.CPU, c.APU)
	if err != nil {
		return fmt.Errorf("nes: %w", err)
	}

	c.rom = rom
	c.Mapper = m
	c.scanlineMapper, _ = m.(scanlineMapper)
	c.tickableMapper, _ = m.(tickableMapper)

	c.PPU.Mapper = m
	c.PPU.Mirroring = m.Mirroring()

	c.bus.Unmap(0x4020)
	c.bus.MapDevice(0x4020, &hwio.Device{
		Name:    "CART",
		Size:    0xFFFF - 0x4020 + 1,
		ReadCb:  c.cartRead,
		WriteCb: c.cartWrite,
	})

	log.ModCore.InfoZ("cartridge inserted").Uint8("mapper", rom.Mapper).Hex32("crc32", rom.CRC32).End()
	return nil
}

func (c *Console) cartRead(addr uint16) uint8 { return c.Mapper.CPURead(addr) }

func (c *Console) cartWrite(addr uint16, val uint8) {
	c.Mapper.CPUWrite(addr, val)
	// A cartridge register write is exactly when mirroring can change
	// (MMC1/MMC3 runtime bank-switched mirroring); the PPU reads Mirroring
	// as a plain field on every nametable access, so refresh it here.
	c.PPU.Mirroring = c.Mapper.Mirroring()
}

// BatteryRAM returns the cartridge's battery-backed PRG-RAM contents for the
// host to persist between sessions, or nil if the cartridge has none (or no
// cartridge is loaded).
func (c *Console) BatteryRAM() []byte {
	if c.Mapper == nil {
		return nil
	}
	return c.Mapper.BatteryRAM()
}

// PowerOn resets every component to its documented power-on state.
func (c *Console) PowerOn() {
	c.PPU.PowerOn()
	c.APU.PowerOn()
	c.CPU.PowerOn()
	log.ModCore.InfoZ("console power on").End()
}

// Reset performs a soft reset (the console's RESET line), leaving most
// state intact.
func (c *Console) Reset() {
	c.CPU.Reset()
}
