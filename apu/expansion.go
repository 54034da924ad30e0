package apu

// ExpansionAudio is cartridge-side audio that sums into the console's output
// independently of the APU's own five channels: MMC5's two extra pulse
// channels (register-compatible with $4000/$4004 but with no sweep unit) and
// its one-byte PCM register at $5011. The mapper owns the bus wiring for
// $5000-$5015; this type only owns the sound generation and mixing.
type ExpansionAudio struct {
	apu *APU

	pulse1 pulse
	pulse2 pulse

	pcmWriteMode bool // $5010 bit 0 clear: $5011 writes feed the DAC directly
	pcmLevel     int8

	// A self-contained quarter/half-frame sequencer at the standard 4-step
	// NTSC cadence (see apu/frame_counter.go's stepCycles), since MMC5's
	// pulses aren't clocked by the console APU's own $4017 frame counter and
	// generate no frame IRQ of their own.
	seqCycle int32
	seqStep  int
}

// NewExpansionAudio creates expansion audio that mixes into a.
func NewExpansionAudio(a *APU) *ExpansionAudio {
	e := &ExpansionAudio{apu: a}
	e.pulse1 = pulse{apu: a, channel: ChannelExpansion, noSweep: true}
	e.pulse2 = pulse{apu: a, channel: ChannelExpansion, noSweep: true}
	return e
}

// WriteRegister handles a write to one of MMC5's audio registers
// ($5000-$5015); addr is the full CPU address, unmasked.
func (e *ExpansionAudio) WriteRegister(addr uint16, val uint8) {
	switch addr {
	case 0x5000:
		e.pulse1.writeDuty(val)
	case 0x5002:
		e.pulse1.writeTimerLow(val)
	case 0x5003:
		e.pulse1.writeTimerHigh(val)
	case 0x5004:
		e.pulse2.writeDuty(val)
	case 0x5006:
		e.pulse2.writeTimerLow(val)
	case 0x5007:
		e.pulse2.writeTimerHigh(val)
	case 0x5010:
		e.pcmWriteMode = val&0x01 == 0
	case 0x5011:
		if e.pcmWriteMode {
			e.writePCM(val)
		}
	case 0x5015:
		e.pulse1.setEnabled(val&0x01 != 0)
		e.pulse2.setEnabled(val&0x02 != 0)
	}
}

// ReadStatus handles a $5015 read: each pulse's length-counter-active bit,
// the same shape as the console APU's own $4015.
func (e *ExpansionAudio) ReadStatus() uint8 {
	var v uint8
	if e.pulse1.status() {
		v |= 0x01
	}
	if e.pulse2.status() {
		v |= 0x02
	}
	return v
}

func (e *ExpansionAudio) writePCM(val uint8) {
	out := int8(val >> 1) // 7-bit unsigned sample, halved to share headroom with the pulses
	if delta := out - e.pcmLevel; delta != 0 {
		e.apu.mixer.addDelta(ChannelExpansion, e.apu.curCycle, int16(delta))
		e.pcmLevel = out
	}
}

// Tick advances both pulse channels and the quarter/half-frame sequencer by
// one CPU cycle. The mapper calls this from the same per-cycle catch-up the
// orchestrator drives the console APU with.
func (e *ExpansionAudio) Tick() {
	e.pulse1.run()
	e.pulse2.run()

	e.seqCycle++
	if e.seqCycle != stepCycles[0][e.seqStep] {
		return
	}
	switch frameType[0][e.seqStep] {
	case quarterFrame:
		e.pulse1.tickEnvelope()
		e.pulse2.tickEnvelope()
	case halfFrame:
		e.pulse1.tickEnvelope()
		e.pulse2.tickEnvelope()
		e.pulse1.tickLength()
		e.pulse2.tickLength()
	}
	e.seqStep++
	if e.seqStep == 6 {
		e.seqStep = 0
		e.seqCycle = 0
	}
}
