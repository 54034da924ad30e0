package apu

import (
	"nescore/cpu"
	"nescore/hwio"
	"nescore/log"
)

// APU is the NES's audio pipeline: two pulse channels, a triangle, a noise
// channel, a DMC sample channel, and the frame-counter sequencer that
// clocks their envelopes/sweeps/length counters. Tick is called once per
// CPU cycle by the orchestrator; unlike the Mesen-derived catch-up
// scheduler this is grounded on, every channel advances immediately on
// every Tick rather than lazily batching until a register read/IRQ needs
// the state to be current. That trades a (here irrelevant) constant-factor
// performance cost for a much simpler, still cycle-accurate, model.
type APU struct {
	cpu CPU
	bus Bus

	square1      *pulse
	square2      *pulse
	triangle     *triangle
	noise        *noise
	dmc          *dmc
	frameCounter *frameCounter
	mixer        *Mixer

	regs regs

	curCycle uint32
}

// New creates an APU driven by c (IRQ lines, DMA stalls) and reading DMC
// sample bytes from bus. sampleRate is the host's desired output rate in Hz.
func New(c CPU, bus Bus, sampleRate int) *APU {
	a := &APU{cpu: c, bus: bus}
	a.square1 = &pulse{apu: a, channel: ChannelSquare1, channel1: true}
	a.square2 = &pulse{apu: a, channel: ChannelSquare2}
	a.triangle = &triangle{apu: a}
	a.noise = newNoise(a)
	a.dmc = newDMC(a, c, bus)
	a.frameCounter = newFrameCounter(a, c)
	a.mixer = newMixer(sampleRate)
	a.regs.apu = a
	return a
}

// PowerOn resets every channel and the frame counter to their documented
// power-on state.
func (a *APU) PowerOn() {
	*a.square1 = pulse{apu: a, channel: ChannelSquare1, channel1: true}
	*a.square2 = pulse{apu: a, channel: ChannelSquare2}
	*a.triangle = triangle{apu: a}
	a.noise = newNoise(a)
	a.dmc = newDMC(a, a.cpu, a.bus)
	a.frameCounter = newFrameCounter(a, a.cpu)
	a.curCycle = 0
	log.ModAPU.DebugZ("apu power on").End()
}

// InitBus maps the APU's non-conflicting register windows onto bus. $4017's
// write side (frame counter) is wired by the orchestrator directly via
// WriteFrameCounter, since its read side belongs to the input package.
func (a *APU) InitBus(bus *hwio.Table) {
	bus.MapDevice(0x4000, a.regs.channelsDevice())
	bus.MapDevice(0x4015, a.regs.statusDevice())
}

// run is a no-op: this port's channels are always caught up to the current
// cycle (see the type doc), so there is never backlog for a register write
// to flush first. Kept so every channel's write handlers read the same as
// the cycle-batched design they are grounded on.
func (a *APU) run() {}

// Tick advances every channel, and the frame sequencer, by one CPU cycle.
func (a *APU) Tick() {
	a.frameCounter.tick()
	a.square1.run()
	a.square2.run()
	a.triangle.run()
	a.noise.run()
	a.dmc.run()
	a.curCycle++
}

func (a *APU) clockQuarterFrame() {
	a.square1.tickEnvelope()
	a.square2.tickEnvelope()
	a.noise.tickEnvelope()
	a.triangle.tickLinearCounter()
}

func (a *APU) clockHalfFrame() {
	a.square1.tickLength()
	a.square2.tickLength()
	a.triangle.tickLength()
	a.noise.tickLength()
	a.square1.tickSweep()
	a.square2.tickSweep()
}

// WriteFrameCounter handles a $4017 write; the orchestrator calls this
// directly rather than through InitBus's hwio mapping (see InitBus).
func (a *APU) WriteFrameCounter(val uint8) {
	a.frameCounter.write(val, a.cpu.CurrentCycle())
}

// ReadStatus implements the $4015 read: per-channel length-counter-active
// bits plus the frame-counter and DMC IRQ flags, clearing the frame-counter
// flag as a read side effect.
func (a *APU) ReadStatus() uint8 {
	var v uint8
	if a.square1.status() {
		v |= 0x01
	}
	if a.square2.status() {
		v |= 0x02
	}
	if a.triangle.status() {
		v |= 0x04
	}
	if a.noise.status() {
		v |= 0x08
	}
	if a.dmc.status() {
		v |= 0x10
	}
	if a.frameCounter.readStatus() {
		v |= 0x40
	}
	if a.dmc.irqFlag {
		v |= 0x80
	}
	return v
}

// WriteStatus implements the $4015 write: per-channel enable bits, plus
// clearing the DMC's IRQ flag (real hardware does this unconditionally on
// any $4015 write, not just when disabling the channel).
func (a *APU) WriteStatus(val uint8) {
	a.dmc.irqFlag = false
	a.cpu.ClearIRQ(cpu.IRQDMC)
	a.square1.setEnabled(val&0x01 != 0)
	a.square2.setEnabled(val&0x02 != 0)
	a.triangle.setEnabled(val&0x04 != 0)
	a.noise.setEnabled(val&0x08 != 0)
	a.dmc.setEnabled(val&0x10 != 0)
}

// EndFrame flushes the current frame's accumulated deltas through the
// resampler and resets the per-frame cycle counter.
func (a *APU) EndFrame() {
	a.mixer.endFrame(int(a.curCycle))
	a.curCycle = 0
}

// PullSamples drains whatever resampled audio has accumulated since the
// last call, for the host to feed to its audio output.
func (a *APU) PullSamples() []int16 { return a.mixer.PullSamples() }

