package apu

import (
	"testing"

	"nescore/cpu"
)

// testCPU is a minimal apu.CPU recording asserted IRQ lines and stall
// cycles requested.
type testCPU struct {
	lines   cpu.IRQSource
	stalled int
	cycle   uint64
}

func (c *testCPU) RequestIRQ(src cpu.IRQSource) { c.lines |= src }
func (c *testCPU) ClearIRQ(src cpu.IRQSource)   { c.lines &^= src }
func (c *testCPU) Stall(n int)                  { c.stalled += n }
func (c *testCPU) CurrentCycle() uint64         { return c.cycle }
func (c *testCPU) asserted(src cpu.IRQSource) bool { return c.lines&src != 0 }

// testBus hands back a fixed byte pattern so DMC sample-fetch tests have
// something distinguishable to read.
type testBus struct{}

func (testBus) Read8(addr uint16) uint8 { return uint8(addr) }

func newTestAPU() (*APU, *testCPU) {
	c := &testCPU{}
	a := New(c, testBus{}, 44100)
	a.PowerOn()
	return a, c
}

func TestLengthCounterTableLookup(t *testing.T) {
	l := lengthCounter{enabled: true}
	l.load(0) // index 0 -> 10
	if l.counter != 10 {
		t.Fatalf("counter = %d, want 10", l.counter)
	}
	l.load(1) // index 1 -> 254
	if l.counter != 254 {
		t.Fatalf("counter = %d, want 254", l.counter)
	}
}

func TestLengthCounterDisabledChannelIgnoresLoad(t *testing.T) {
	l := lengthCounter{enabled: false}
	l.load(0)
	if l.counter != 0 {
		t.Fatalf("counter = %d, want 0 (channel disabled)", l.counter)
	}
}

func TestLengthCounterHaltPreventsDecrement(t *testing.T) {
	l := lengthCounter{enabled: true, halt: true}
	l.load(0)
	l.tick()
	if l.counter != 10 {
		t.Fatalf("counter = %d, want 10 (halted, should not decrement)", l.counter)
	}
}

func TestEnvelopeConstantVolume(t *testing.T) {
	e := envelope{}
	e.write(0x1A) // constant volume, value 0xA
	if !e.constant || e.volume != 0x0A {
		t.Fatalf("constant=%v volume=%#x, want true/0xA", e.constant, e.volume)
	}
	if e.output() != 0x0A {
		t.Fatalf("output() = %d, want 10", e.output())
	}
}

func TestEnvelopeDecaysToZeroWithoutLoop(t *testing.T) {
	e := envelope{}
	e.write(0x00) // decaying, period 0, no loop
	e.restart()
	e.tick() // start flag consumed: counter=15, divider=0
	for i := 0; i < 15; i++ {
		e.tick() // divider already 0 each time -> decrements counter
	}
	if e.output() != 0 {
		t.Fatalf("output() = %d, want 0 after 15 decrements", e.output())
	}
	e.tick() // counter already 0, no loop -> stays 0
	if e.output() != 0 {
		t.Fatal("envelope should not loop without the loop/halt flag set")
	}
}

func TestPulseSweepMutesOnLowPeriod(t *testing.T) {
	a, _ := newTestAPU()
	p := a.square1
	p.writeTimerLow(0x04)
	p.writeTimerHigh(0x00) // realPeriod = 4, below the mute threshold of 8
	if !p.isMuted() {
		t.Fatal("pulse with period < 8 should be muted")
	}
}

func TestPulseSweepTargetOverflowMutes(t *testing.T) {
	a, _ := newTestAPU()
	p := a.square2 // non-negate overflow check; channel 2 has no -1 quirk
	p.writeTimerLow(0xFF)
	p.writeTimerHigh(0x07) // realPeriod = 0x7FF, max
	p.writeSweep(0x81)     // enabled, shift=1, no negate -> target overflows
	if !p.isMuted() {
		t.Fatal("sweep target exceeding 0x7FF without negate should mute")
	}
}

func TestPulseChannel1SweepNegateMinusOne(t *testing.T) {
	a, _ := newTestAPU()
	p := a.square1
	p.writeTimerLow(0x20)
	p.writeTimerHigh(0x00) // realPeriod = 0x20
	p.writeSweep(0x8B)     // enabled, negate, shift=3
	want := uint16(0x20) - (0x20 >> 3) - 1
	if p.sweepTarget != want {
		t.Fatalf("sweepTarget = %#x, want %#x (channel 1's minus-one quirk)", p.sweepTarget, want)
	}
}

func TestTriangleLinearCounterReload(t *testing.T) {
	a, _ := newTestAPU()
	tr := a.triangle
	tr.writeLinear(0x7F) // control clear, reload value 0x7F
	tr.writeTimerHigh(0x00)
	tr.tickLinearCounter()
	if tr.linearCounter != 0x7F {
		t.Fatalf("linearCounter = %#x, want 0x7F", tr.linearCounter)
	}
	// Without the control flag set, the reload flag clears after one tick.
	tr.tickLinearCounter()
	if tr.linearCounter != 0x7E {
		t.Fatalf("linearCounter = %#x, want 0x7E after second tick", tr.linearCounter)
	}
}

func TestTriangleBelowPeriodTwoSuppressed(t *testing.T) {
	a, _ := newTestAPU()
	tr := a.triangle
	tr.realPeriod = 1
	tr.linearCounter = 5
	tr.len.counter = 5
	pos := tr.pos
	tr.tmr.value = 0
	tr.run()
	if tr.pos != pos {
		t.Fatal("triangle sequencer should not advance below period 2")
	}
}

func TestNoisePeriodLUT(t *testing.T) {
	a, _ := newTestAPU()
	n := a.noise
	n.writePeriod(0x0F) // index 15 -> 4068
	if n.tmr.period != 4068 {
		t.Fatalf("period = %d, want 4068", n.tmr.period)
	}
}

func TestNoiseModeBitSelectsTap(t *testing.T) {
	a, _ := newTestAPU()
	n := a.noise
	n.writePeriod(0x80) // mode bit set -> tap at bit 6
	if !n.mode {
		t.Fatal("mode flag should be set")
	}
}

func TestNoiseShiftRegisterMutesOnBitZeroSet(t *testing.T) {
	a, _ := newTestAPU()
	n := a.noise
	n.shiftReg |= 1
	if !n.isMuted() {
		t.Fatal("noise channel should be muted when shift register bit 0 is set")
	}
}

func TestDMCSampleAddressAndLengthFormulas(t *testing.T) {
	a, _ := newTestAPU()
	d := a.dmc
	d.writeSampleAddr(0x01) // 0xC000 | (1 << 6)
	if d.sampleAddr != 0xC040 {
		t.Fatalf("sampleAddr = %#x, want 0xC040", d.sampleAddr)
	}
	d.writeSampleLen(0x01) // (1 << 4) | 1
	if d.sampleLen != 0x11 {
		t.Fatalf("sampleLen = %#x, want 0x11", d.sampleLen)
	}
}

func TestDMCFetchStallsCPU(t *testing.T) {
	a, c := newTestAPU()
	d := a.dmc
	d.writeSampleAddr(0x00)
	d.writeSampleLen(0x00) // length = 1
	d.restart()
	if c.stalled == 0 {
		t.Fatal("fetching a DMC sample byte should stall the CPU")
	}
}

func TestDMCExhaustionFiresIRQWithoutLoop(t *testing.T) {
	a, c := newTestAPU()
	d := a.dmc
	d.irqEnabled = true
	d.writeSampleAddr(0x00)
	d.writeSampleLen(0x00) // length = 1: the single restart fetch exhausts it
	d.restart()
	if !c.asserted(cpu.IRQDMC) {
		t.Fatal("DMC should assert its IRQ once the sample buffer is exhausted")
	}
}

func TestDMCLoopRestartsInsteadOfIRQ(t *testing.T) {
	a, c := newTestAPU()
	d := a.dmc
	d.irqEnabled = true
	d.loop = true
	d.writeSampleAddr(0x00)
	d.writeSampleLen(0x00)
	d.restart()
	if c.asserted(cpu.IRQDMC) {
		t.Fatal("a looping DMC sample should restart instead of firing an IRQ")
	}
	if d.bytesRemaining == 0 {
		t.Fatal("looping should have reloaded bytesRemaining")
	}
}

func TestFrameCounterFourStepFiresIRQ(t *testing.T) {
	a, c := newTestAPU()
	a.WriteFrameCounter(0x00) // 4-step mode, IRQ not inhibited
	// The write takes effect after a 3-4 cycle delay; run well past it,
	// then through one full 4-step sequence (29830 cycles).
	for i := 0; i < 29840; i++ {
		a.Tick()
	}
	if !c.asserted(cpu.IRQFrameCounter) {
		t.Fatal("4-step frame counter should assert its IRQ by the end of the sequence")
	}
}

func TestFrameCounterFiveStepNeverFiresIRQ(t *testing.T) {
	a, c := newTestAPU()
	a.WriteFrameCounter(0x80) // 5-step mode
	for i := 0; i < 37290; i++ {
		a.Tick()
	}
	if c.asserted(cpu.IRQFrameCounter) {
		t.Fatal("5-step frame counter should never assert the frame IRQ")
	}
}

func TestFrameCounterInhibitBitClearsIRQImmediately(t *testing.T) {
	a, c := newTestAPU()
	c.RequestIRQ(cpu.IRQFrameCounter)
	a.WriteFrameCounter(0x40) // inhibit bit set
	if c.asserted(cpu.IRQFrameCounter) {
		t.Fatal("setting the inhibit bit should clear the frame IRQ immediately")
	}
}

func TestStatusReadClearsFrameIRQButNotDMC(t *testing.T) {
	a, c := newTestAPU()
	a.frameCounter.irqFlag = true
	a.dmc.irqFlag = true
	c.RequestIRQ(cpu.IRQFrameCounter | cpu.IRQDMC)

	status := a.ReadStatus()
	if status&0x40 == 0 {
		t.Fatal("status byte should report the frame IRQ flag")
	}
	if status&0x80 == 0 {
		t.Fatal("status byte should report the DMC IRQ flag")
	}
	if a.frameCounter.irqFlag {
		t.Fatal("reading status should clear the frame IRQ flag")
	}
	if !a.dmc.irqFlag {
		t.Fatal("reading status should not clear the DMC IRQ flag")
	}
}

func TestWriteStatusClearsDMCIRQAndSetsEnables(t *testing.T) {
	a, c := newTestAPU()
	a.dmc.irqFlag = true
	c.RequestIRQ(cpu.IRQDMC)

	a.WriteStatus(0x01) // enable square1 only
	if c.asserted(cpu.IRQDMC) {
		t.Fatal("any $4015 write should clear the DMC IRQ")
	}
	if !a.square1.len.enabled {
		t.Fatal("square1 should be enabled")
	}
	if a.square2.len.enabled {
		t.Fatal("square2 should remain disabled")
	}
}

func TestSaveStateRoundTrip(t *testing.T) {
	a, _ := newTestAPU()
	a.square1.writeTimerLow(0x55)
	a.square1.writeTimerHigh(0x03)
	a.noise.writePeriod(0x09)
	data := a.SaveState()

	b, _ := newTestAPU()
	if err := b.LoadState(data); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if b.square1.realPeriod != a.square1.realPeriod {
		t.Fatalf("realPeriod = %#x, want %#x", b.square1.realPeriod, a.square1.realPeriod)
	}
	if b.noise.tmr.period != a.noise.tmr.period {
		t.Fatalf("noise period = %d, want %d", b.noise.tmr.period, a.noise.tmr.period)
	}
}
