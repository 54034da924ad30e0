package mapper

import (
	"testing"

	"nescore/cpu"
	"nescore/ines"
	"nescore/ppu"
)

// testCPU is a minimal mapper.CPU recording the last IRQ request/clear.
type testCPU struct {
	lines cpu.IRQSource
}

func (c *testCPU) RequestIRQ(src cpu.IRQSource) { c.lines |= src }
func (c *testCPU) ClearIRQ(src cpu.IRQSource)   { c.lines &^= src }
func (c *testCPU) asserted(src cpu.IRQSource) bool { return c.lines&src != 0 }

func romWith(mapperNum uint8, prgKB, chrKB int) *ines.ROM {
	prg := make([]byte, prgKB*1024)
	for i := range prg {
		prg[i] = uint8(i) // distinguishable contents per bank
	}
	var chr []byte
	if chrKB > 0 {
		chr = make([]byte, chrKB*1024)
		for i := range chr {
			chr[i] = uint8(i)
		}
	}
	return &ines.ROM{Mapper: mapperNum, PRG: prg, CHR: chr}
}

func TestNewDispatchesKnownMappers(t *testing.T) {
	cases := []uint8{0, 1, 2, 3, 4, 5, 7, 9, 11, 21, 23, 25, 34, 66, 79, 113, 206}
	for _, num := range cases {
		rom := romWith(num, 32, 8)
		c := &testCPU{}
		m, err := New(rom, c, nil)
		if err != nil {
			t.Fatalf("mapper %d: New returned error: %v", num, err)
		}
		if m == nil {
			t.Fatalf("mapper %d: New returned nil Mapper", num)
		}
	}
}

func TestNewRejectsUnknownMapper(t *testing.T) {
	rom := romWith(255, 32, 8)
	if _, err := New(rom, &testCPU{}, nil); err == nil {
		t.Fatal("expected an error for an unsupported mapper number")
	}
}

func TestNROMMirrors16KiBPRG(t *testing.T) {
	rom := romWith(0, 16, 8)
	m, err := New(rom, &testCPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := m.CPURead(0x8000), rom.PRG[0]; got != want {
		t.Fatalf("$8000 = %#x, want %#x", got, want)
	}
	if got, want := m.CPURead(0xC000), rom.PRG[0]; got != want {
		t.Fatalf("$C000 should mirror $8000's bank: got %#x, want %#x", got, want)
	}
}

func TestUNROMBankSwitch(t *testing.T) {
	rom := romWith(2, 64, 0) // 4 x 16 KiB PRG banks, CHR-RAM
	m, err := New(rom, &testCPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Last bank is fixed at $C000-$FFFF regardless of the switchable slot.
	lastBankFirstByte := rom.PRG[3*16384]
	if got := m.CPURead(0xC000); got != lastBankFirstByte {
		t.Fatalf("$C000 = %#x, want fixed last bank's first byte %#x", got, lastBankFirstByte)
	}
	// Select bank 2 at the switchable $8000-$BFFF window.
	m.CPUWrite(0x8000, 0x02)
	if got, want := m.CPURead(0x8000), rom.PRG[2*16384]; got != want {
		t.Fatalf("$8000 after bank select = %#x, want %#x", got, want)
	}
}

func TestUNROMBusConflictMasksWrittenValue(t *testing.T) {
	rom := romWith(2, 64, 0)
	m, err := New(rom, &testCPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	um := m.(*unrom)
	um.busConflicts = true
	// The byte actually on the PRG bus at $8000 (bank 0) is rom.PRG[0] == 0.
	// Writing 0x02 should be ANDed against that, selecting bank 0, not 2.
	m.CPUWrite(0x8000, 0x02)
	if got, want := m.CPURead(0x8000), rom.PRG[0]; got != want {
		t.Fatalf("$8000 after conflicting write = %#x, want bank 0's byte %#x", got, want)
	}
}

func TestCNROMBankSwitchesCHR(t *testing.T) {
	rom := romWith(3, 32, 16) // 2 x 8 KiB CHR banks
	m, err := New(rom, &testCPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	m.CPUWrite(0x8000, 0x01)
	if got, want := m.ReadCHR(0x0000), rom.CHR[8192]; got != want {
		t.Fatalf("CHR $0000 after bank select = %#x, want %#x", got, want)
	}
}

func TestAxROMSingleScreenMirroring(t *testing.T) {
	rom := romWith(7, 128, 0)
	m, err := New(rom, &testCPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	m.CPUWrite(0x8000, 0x10) // bit 4 selects single-screen B
	if got := m.Mirroring(); got != ppu.MirrorSingleB {
		t.Fatalf("Mirroring() = %v, want MirrorSingleB", got)
	}
	m.CPUWrite(0x8000, 0x00)
	if got := m.Mirroring(); got != ppu.MirrorSingleA {
		t.Fatalf("Mirroring() = %v, want MirrorSingleA", got)
	}
}

func TestMMC1ShiftRegisterAndBitSevenReset(t *testing.T) {
	rom := romWith(1, 128, 0)
	m, err := New(rom, &testCPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	mm := m.(*mmc1)

	// Mid-shift, a bit-7-set write resets the shift register and forces
	// 16 KiB PRG mode with $8000 switchable ($0C in the control register),
	// regardless of the in-progress shift.
	mm.CPUWrite(0x8000, 0x01)
	mm.CPUWrite(0x8000, 0x80)
	if mm.shift != 0 || mm.shiftN != 0 {
		t.Fatalf("shift register not reset: shift=%#x shiftN=%d", mm.shift, mm.shiftN)
	}
	if mm.ctrl&0x0C != 0x0C {
		t.Fatalf("ctrl = %#x, want bits 2-3 set after reset", mm.ctrl)
	}
}

func TestMMC1SelectsPRGBank(t *testing.T) {
	rom := romWith(1, 128, 0) // 8 x 16 KiB PRG banks
	m, err := New(rom, &testCPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Write control = 0x0C (16 KiB mode, $8000 switchable) through 5 shifts.
	writeMMC1(m, 0x9000, 0x0C)
	// Select PRG bank 3 into the switchable $8000-$BFFF window.
	writeMMC1(m, 0xE000, 0x03)
	if got, want := m.CPURead(0x8000), rom.PRG[3*16384]; got != want {
		t.Fatalf("$8000 = %#x, want %#x", got, want)
	}
	// $C000-$FFFF stays fixed to the last bank in this PRG mode.
	if got, want := m.CPURead(0xC000), rom.PRG[7*16384]; got != want {
		t.Fatalf("$C000 = %#x, want last-bank byte %#x", got, want)
	}
}

// writeMMC1 shifts a 5-bit value into an MMC1 register one bit at a time,
// least-significant bit first, as the real shift register expects.
func writeMMC1(m Mapper, addr uint16, val uint8) {
	for i := 0; i < 5; i++ {
		m.CPUWrite(addr, (val>>uint(i))&0x01)
	}
}

func TestMMC3IRQFiresOnCounterReachingZero(t *testing.T) {
	rom := romWith(4, 128, 128)
	c := &testCPU{}
	m, err := New(rom, c, nil)
	if err != nil {
		t.Fatal(err)
	}
	mm := m.(*mmc3)

	m.CPUWrite(0xC000, 2) // IRQ latch = 2
	m.CPUWrite(0xC001, 0) // reload on next clock
	m.CPUWrite(0xE001, 0) // enable IRQ

	mm.OnA12Rising() // reload: counter = 2
	if c.asserted(cpu.IRQMapper) {
		t.Fatal("IRQ should not fire on reload")
	}
	mm.OnA12Rising() // counter = 1
	if c.asserted(cpu.IRQMapper) {
		t.Fatal("IRQ should not fire before counter reaches 0")
	}
	mm.OnA12Rising() // counter = 0, fires
	if !c.asserted(cpu.IRQMapper) {
		t.Fatal("IRQ should fire once the counter reaches 0")
	}
}

func TestMMC3IRQDisableClearsLine(t *testing.T) {
	rom := romWith(4, 128, 128)
	c := &testCPU{}
	m, err := New(rom, c, nil)
	if err != nil {
		t.Fatal(err)
	}
	mm := m.(*mmc3)
	mm.irqEnabled = true
	mm.irqCounter = 0
	c.RequestIRQ(cpu.IRQMapper)

	m.CPUWrite(0xE000, 0) // disable
	if c.asserted(cpu.IRQMapper) {
		t.Fatal("disabling the IRQ should clear the mapper IRQ line")
	}
}

func TestVRC4PRGModeSwapsSwitchableWindow(t *testing.T) {
	rom := romWith(21, 128, 128) // 16 x 8 KiB PRG banks
	m, err := New(rom, &testCPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	m.CPUWrite(0x8000, 0x05) // select PRG bank 5 into reg0

	// prgMode 0: reg0 goes to $8000-$9FFF.
	if got, want := m.CPURead(0x8000), rom.PRG[5*8192]; got != want {
		t.Fatalf("prgMode 0: $8000 = %#x, want %#x", got, want)
	}

	// Flip prgMode to 1 via $9002 bit 1: reg0 now appears at $C000-$DFFF.
	m.CPUWrite(0x9002, 0x02)
	if got, want := m.CPURead(0xC000), rom.PRG[5*8192]; got != want {
		t.Fatalf("prgMode 1: $C000 = %#x, want %#x", got, want)
	}
}

func TestVRC4IRQCycleModeFiresOnOverflow(t *testing.T) {
	rom := romWith(23, 32, 32)
	c := &testCPU{}
	m, err := New(rom, c, nil)
	if err != nil {
		t.Fatal(err)
	}
	mm := m.(*vrc4)

	m.CPUWrite(0xE000, 0xFE) // latch low nibble
	m.CPUWrite(0xE002, 0x0F) // latch high nibble -> latch = 0xFE
	m.CPUWrite(0xF000, 0x06) // enable (bit1) + cycle mode (bit2)

	if mm.irqCounter != 0xFE {
		t.Fatalf("counter after enable = %#x, want 0xFE (reloaded from latch)", mm.irqCounter)
	}
	mm.OnCPUCycle() // 0xFE -> 0xFF
	if c.asserted(cpu.IRQMapper) {
		t.Fatal("IRQ should not fire before the counter overflows past 0xFF")
	}
	mm.OnCPUCycle() // 0xFF -> reload, fires
	if !c.asserted(cpu.IRQMapper) {
		t.Fatal("IRQ should fire when the counter overflows past 0xFF")
	}
	if mm.irqCounter != 0xFE {
		t.Fatalf("counter after overflow = %#x, want reloaded to latch 0xFE", mm.irqCounter)
	}
}

func TestMMC5Multiplier(t *testing.T) {
	rom := romWith(5, 128, 128)
	m, err := New(rom, &testCPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	m.CPUWrite(0x5205, 12)
	m.CPUWrite(0x5206, 10)
	lo := m.CPURead(0x5205)
	hi := m.CPURead(0x5206)
	product := uint16(hi)<<8 | uint16(lo)
	if product != 120 {
		t.Fatalf("multiplier result = %d, want 120", product)
	}
}

func TestGxROMPacksPRGAndCHRSelect(t *testing.T) {
	rom := romWith(66, 128, 32) // 4 x 32 KiB PRG, 4 x 8 KiB CHR
	m, err := New(rom, &testCPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	m.CPUWrite(0x8000, 0x23) // CHR bank 3, PRG bank 2
	if got, want := m.CPURead(0x8000), rom.PRG[2*32768]; got != want {
		t.Fatalf("PRG select: $8000 = %#x, want %#x", got, want)
	}
	if got, want := m.ReadCHR(0x0000), rom.CHR[3*8192]; got != want {
		t.Fatalf("CHR select: $0000 = %#x, want %#x", got, want)
	}
}
