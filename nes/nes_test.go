package nes

import (
	"bytes"
	"testing"

	"nescore/config"
	"nescore/ines"
	"nescore/snapshot"
)

// newTestROM builds a minimal NROM (mapper 0) image: 32 KiB of PRG, CHR-RAM,
// an infinite JMP loop at the reset vector.
func newTestROM(t *testing.T) *ines.ROM {
	t.Helper()

	prg := make([]byte, 0x8000)
	for i := range prg {
		prg[i] = 0xEA // NOP
	}
	prg[0], prg[1], prg[2] = 0x4C, 0x00, 0x80 // JMP $8000

	setVector := func(addr, target uint16) {
		off := addr - 0x8000
		prg[off] = uint8(target)
		prg[off+1] = uint8(target >> 8)
	}
	setVector(0xFFFA, 0x8000) // NMI
	setVector(0xFFFC, 0x8000) // RESET
	setVector(0xFFFE, 0x8000) // IRQ

	header := []byte{'N', 'E', 'S', 0x1A, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	data := append(header, prg...)

	rom, err := ines.Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ines.Load: %v", err)
	}
	return rom
}

func newTestConsole(t *testing.T) *Console {
	t.Helper()
	c := New(config.Default())
	if err := c.InsertCartridge(newTestROM(t)); err != nil {
		t.Fatalf("InsertCartridge: %v", err)
	}
	c.PowerOn()
	return c
}

func TestRunFrameAdvancesPPUFrameCounter(t *testing.T) {
	c := newTestConsole(t)
	// PowerOn starts the PPU on the pre-render line, so the first RunFrame
	// reaches vblank before the first 260 -> pre-render wrap increments Frame.
	for i := uint64(1); i <= 3; i++ {
		c.RunFrame()
		if c.PPU.Frame != i-1 {
			t.Fatalf("after %d RunFrame calls, PPU.Frame = %d, want %d", i, c.PPU.Frame, i-1)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := newTestConsole(t)
	for i := 0; i < 5; i++ {
		c.RunFrame()
	}

	var buf bytes.Buffer
	if err := c.SaveSnapshot(&buf); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	before := c.CPU.PC
	beforeCycles := c.CPU.Cycles

	// Advance further, then restore: state should jump back.
	for i := 0; i < 5; i++ {
		c.RunFrame()
	}
	if err := c.LoadSnapshot(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if c.CPU.PC != before {
		t.Fatalf("PC after restore = %#x, want %#x", c.CPU.PC, before)
	}
	if c.CPU.Cycles != beforeCycles {
		t.Fatalf("Cycles after restore = %d, want %d", c.CPU.Cycles, beforeCycles)
	}
}

func TestRestoreRejectsWrongROM(t *testing.T) {
	c := newTestConsole(t)
	c.RunFrame()

	var buf bytes.Buffer
	if err := c.SaveSnapshot(&buf); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	other := newTestConsole(t)
	other.rom.CRC32 ^= 0xFFFFFFFF // force a mismatch without rebuilding the ROM

	s, err := snapshot.DecodeFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeFrom: %v", err)
	}
	if err := other.Restore(s); err == nil {
		t.Fatal("Restore with mismatched ROM CRC32 should have failed")
	}
}
