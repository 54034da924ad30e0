package input

import "testing"

func TestControllerLatchesOnFallingEdge(t *testing.T) {
	c := &Controller{}
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonStart, true)
	c.Strobe(true)
	c.Strobe(false) // falling edge latches A and Start

	if c.Read() != 1 {
		t.Fatal("first read after latch should report A pressed")
	}
	for i := 0; i < 2; i++ {
		c.Read() // B, Select
	}
	if c.Read() != 1 {
		t.Fatal("fourth read should report Start pressed")
	}
}

func TestControllerReportsOneAfterEightReads(t *testing.T) {
	c := &Controller{}
	c.Strobe(true)
	c.Strobe(false)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	for i := 0; i < 4; i++ {
		if c.Read() != 1 {
			t.Fatal("reads past the eighth bit should always report 1")
		}
	}
}

func TestControllerUpDownMutuallyExclusive(t *testing.T) {
	c := &Controller{}
	c.SetButton(ButtonUp, true)
	c.SetButton(ButtonDown, true)
	if c.held&(1<<ButtonUp) != 0 {
		t.Fatal("pressing Down should release Up")
	}
	if c.held&(1<<ButtonDown) == 0 {
		t.Fatal("Down should be held")
	}
}

func TestControllerLeftRightMutuallyExclusive(t *testing.T) {
	c := &Controller{}
	c.SetButton(ButtonRight, true)
	c.SetButton(ButtonLeft, true)
	if c.held&(1<<ButtonRight) != 0 {
		t.Fatal("pressing Left should release Right")
	}
}

func TestControllerHeldHighKeepsReloadingBitZero(t *testing.T) {
	c := &Controller{}
	c.SetButton(ButtonA, true)
	c.Strobe(true)
	if c.Read() != 1 {
		t.Fatal("while strobe is held high, every read should report A's live state")
	}
	if c.Read() != 1 {
		t.Fatal("register keeps reloading while strobe is high")
	}
}

type fakeFrame struct {
	dot, scanline int
	lit           uint32
}

func (f fakeFrame) BeamPosition() (int, int) { return f.dot, f.scanline }
func (f fakeFrame) Pixel(x, y int) uint32 {
	if x == 100 && y == 50 {
		return f.lit
	}
	return 0xFF000000
}

func TestZapperNotLitBeforeBeamArrives(t *testing.T) {
	fb := fakeFrame{dot: 0, scanline: 0, lit: 0xFFFFFFFF}
	z := NewZapper(fb)
	z.SetAim(100, 50)
	z.Strobe(true)
	z.Strobe(false)
	if z.Read()&0x08 == 0 {
		t.Fatal("light bit should read 'not lit' (set) before the beam reaches the aim point")
	}
}

func TestZapperSensesLightAfterBeamPasses(t *testing.T) {
	fb := fakeFrame{dot: 150, scanline: 50, lit: 0xFFFFFFFF}
	z := NewZapper(fb)
	z.SetAim(100, 50)
	z.Strobe(true)
	z.Strobe(false)
	if z.Read()&0x08 != 0 {
		t.Fatal("light bit should read 'lit' (clear) once the beam has passed a bright aim point")
	}
}

func TestZapperTriggerBit(t *testing.T) {
	fb := fakeFrame{dot: 0, scanline: 0}
	z := NewZapper(fb)
	z.SetTrigger(true)
	z.Strobe(true)
	z.Strobe(false)
	if z.Read()&0x10 == 0 {
		t.Fatal("trigger bit should be set while the trigger is held")
	}
}

func TestPortsReadOpenBusBits(t *testing.T) {
	p := New()
	p.Port1 = &Controller{}
	if v := p.ReadPort1(); v&0xC0 != 0x40 {
		t.Fatalf("ReadPort1 open bus bits = %#x, want 0x40", v&0xC0)
	}
}

func TestControllerSnapshotRoundTrip(t *testing.T) {
	c := &Controller{}
	c.SetButton(ButtonB, true)
	c.Strobe(true)
	c.Strobe(false)
	c.Read()
	data := c.SaveState()

	other := &Controller{}
	other.LoadState(data)
	if other.shift != c.shift || other.held != c.held {
		t.Fatal("LoadState should restore shift register and held state")
	}
}
