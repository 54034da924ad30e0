package ppu

import (
	"nescore/hwio"
	"testing"
)

type testMapper struct {
	chr       [0x2000]byte
	a12Rising int
}

func (m *testMapper) ReadCHR(addr uint16) uint8        { return m.chr[addr&0x1FFF] }
func (m *testMapper) WriteCHR(addr uint16, val uint8) { m.chr[addr&0x1FFF] = val }
func (m *testMapper) OnA12Rising()                     { m.a12Rising++ }

func newTestPPU() (*PPU, *hwio.Table, *testMapper) {
	p := New()
	m := &testMapper{}
	p.Mapper = m
	p.Mirroring = MirrorHorizontal
	p.PowerOn()
	bus := hwio.NewTable("cpu")
	p.InitBus(bus)
	return p, bus, m
}

func TestPPUSTATUSClearsVblankAndLatch(t *testing.T) {
	p, bus, _ := newTestPPU()
	p.vblank = true
	p.w = true
	v := bus.Read8(0x2002)
	if v&0x80 == 0 {
		t.Fatal("PPUSTATUS should report vblank set")
	}
	if p.vblank {
		t.Fatal("reading PPUSTATUS should clear vblank")
	}
	if p.w {
		t.Fatal("reading PPUSTATUS should clear the write latch")
	}
}

func TestPPUADDRWritesHighThenLowByte(t *testing.T) {
	p, bus, _ := newTestPPU()
	bus.Write8(0x2006, 0x21) // high byte
	bus.Write8(0x2006, 0x08) // low byte -> v = 0x2108
	if p.v != 0x2108 {
		t.Fatalf("v = %#x, want 0x2108", p.v)
	}
}

func TestPPUDATAReadIsBuffered(t *testing.T) {
	p, bus, _ := newTestPPU()
	p.Nametables[0] = 0x55
	bus.Write8(0x2006, 0x20)
	bus.Write8(0x2006, 0x00) // v = 0x2000
	first := bus.Read8(0x2007)
	if first != 0 {
		t.Fatalf("first PPUDATA read should return stale buffer (0), got %#x", first)
	}
	second := bus.Read8(0x2007)
	if second != 0x55 {
		t.Fatalf("second PPUDATA read = %#x, want 0x55", second)
	}
}

func TestPPUDATAPaletteReadIsNotBuffered(t *testing.T) {
	p, bus, _ := newTestPPU()
	p.Palette[0] = 0x20
	bus.Write8(0x2006, 0x3F)
	bus.Write8(0x2006, 0x00)
	v := bus.Read8(0x2007)
	if v != 0x20 {
		t.Fatalf("palette PPUDATA read = %#x, want 0x20 (immediate)", v)
	}
}

func TestOAMDATARoundTrip(t *testing.T) {
	p, bus, _ := newTestPPU()
	bus.Write8(0x2003, 0x10)
	bus.Write8(0x2004, 0x42)
	if p.OAM[0x10] != 0x42 {
		t.Fatalf("OAM[0x10] = %#x, want 0x42", p.OAM[0x10])
	}
	if p.Regs.oamAddrValue != 0x11 {
		t.Fatal("OAMADDR should auto-increment after OAMDATA write")
	}
}

func TestNMIFiresOnVblankEntry(t *testing.T) {
	p, bus, _ := newTestPPU()
	bus.Write8(0x2000, 0x80) // enable NMI output
	var fired bool
	p.OnNMI = func(on bool) { fired = fired || on }

	p.Scanline, p.Cycle = vblankStartLine, 0
	p.Step() // dot 0 -> 1
	p.Step() // processes dot 1, where vblank sets
	if !p.vblank {
		t.Fatal("vblank flag should be set entering scanline 241")
	}
	if !fired {
		t.Fatal("NMI should fire when PPUCTRL bit 7 is set and vblank begins")
	}
}

func TestScanlineWrapAdvancesFrame(t *testing.T) {
	p, _, _ := newTestPPU()
	p.Scanline, p.Cycle = 260, 340
	startFrame := p.Frame
	p.Step()
	if p.Scanline != preRenderLine {
		t.Fatalf("scanline = %d, want %d (pre-render wrap)", p.Scanline, preRenderLine)
	}
	if p.Frame != startFrame+1 {
		t.Fatal("frame counter should increment on wrap")
	}
}

func TestSpriteOverflowFlag(t *testing.T) {
	p, _, _ := newTestPPU()
	for i := 0; i < 9; i++ {
		p.OAM[i*4+0] = 10 // all on scanline 10
	}
	p.evaluateSprites(10)
	if !p.spriteOverflow {
		t.Fatal("9 sprites in range on one scanline should set the overflow flag")
	}
	if p.secOAMLen != 8 {
		t.Fatalf("secondary OAM should hold exactly 8 sprites, got %d", p.secOAMLen)
	}
}

func TestNametableMirroringHorizontal(t *testing.T) {
	p, _, _ := newTestPPU()
	p.Mirroring = MirrorHorizontal
	a := p.nametableAddr(0x2000)
	b := p.nametableAddr(0x2400)
	if a != b {
		t.Fatal("horizontal mirroring should alias nametables 0 and 1")
	}
	c := p.nametableAddr(0x2800)
	if a == c {
		t.Fatal("horizontal mirroring should not alias nametables 0 and 2")
	}
}
