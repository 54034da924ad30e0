package apu

// squareDuty holds the 8-step waveform for each of the four duty settings,
// high being "loud" (low being the 25%-duty-but-negated waveform that reads
// oddly as a table but matches real hardware).
var squareDuty = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

// pulse is one of the two square-wave channels. channel1 enables the extra
// "minus one" term real hardware's channel-1 sweep subtracts, a quirk of
// the one's-complement adder Channel 1 reuses from Channel 2's circuit.
type pulse struct {
	apu      *APU
	channel  Channel
	channel1 bool
	noSweep  bool // true for MMC5's expansion pulses, which have no sweep unit at all

	env envelope
	len lengthCounter
	tmr timer

	dutyIndex uint8
	dutyPos   uint8

	realPeriod uint16

	sweepEnabled  bool
	sweepPeriod   uint8
	sweepNegate   bool
	sweepShift    uint8
	sweepDivider  uint8
	sweepReload   bool
	sweepTarget   uint16

	lastOutput int8
}

func (p *pulse) writeDuty(val uint8) {
	p.apu.run()
	p.dutyIndex = (val >> 6) & 0x03
	p.env.write(val)
	p.len.halt = p.env.loop
}

func (p *pulse) writeSweep(val uint8) {
	p.apu.run()
	p.sweepEnabled = val&0x80 != 0
	p.sweepPeriod = (val >> 4) & 0x07
	p.sweepNegate = val&0x08 != 0
	p.sweepShift = val & 0x07
	p.sweepReload = true
	p.updateSweepTarget()
}

func (p *pulse) writeTimerLow(val uint8) {
	p.apu.run()
	p.realPeriod = (p.realPeriod &^ 0x00FF) | uint16(val)
	p.setPeriod()
}

func (p *pulse) writeTimerHigh(val uint8) {
	p.apu.run()
	p.realPeriod = (p.realPeriod &^ 0x0700) | (uint16(val&0x07) << 8)
	p.setPeriod()
	p.len.load(val >> 3)
	p.dutyPos = 0
	p.env.restart()
}

func (p *pulse) setPeriod() {
	p.tmr.period = uint32(p.realPeriod)*2 + 1
	p.updateSweepTarget()
}

func (p *pulse) updateSweepTarget() {
	change := p.realPeriod >> p.sweepShift
	if p.sweepNegate {
		if p.channel1 {
			p.sweepTarget = p.realPeriod - change - 1
		} else {
			p.sweepTarget = p.realPeriod - change
		}
	} else {
		p.sweepTarget = p.realPeriod + change
	}
}

func (p *pulse) isMuted() bool {
	if p.noSweep {
		return p.realPeriod < 8
	}
	return p.realPeriod < 8 || (!p.sweepNegate && p.sweepTarget > 0x7FF)
}

func (p *pulse) tickSweep() {
	if p.sweepDivider == 0 && p.sweepEnabled && p.sweepShift != 0 && !p.isMuted() {
		p.realPeriod = p.sweepTarget
		p.setPeriod()
	}
	if p.sweepDivider == 0 || p.sweepReload {
		p.sweepDivider = p.sweepPeriod
		p.sweepReload = false
	} else {
		p.sweepDivider--
	}
}

func (p *pulse) tickEnvelope() { p.env.tick() }
func (p *pulse) tickLength()   { p.len.tick() }

func (p *pulse) setEnabled(enabled bool) { p.len.setEnabled(enabled) }
func (p *pulse) status() bool            { return !p.len.silenced() }

// run advances the timer/sequencer by one CPU cycle and reports the current
// amplitude the mixer should add a delta for.
func (p *pulse) run() {
	if p.tmr.tick() {
		p.dutyPos = (p.dutyPos + 1) & 0x07
	}
	out := p.output()
	if out != p.lastOutput {
		p.apu.mixer.addDelta(p.channel, p.apu.curCycle, int16(out-p.lastOutput))
		p.lastOutput = out
	}
}

func (p *pulse) output() int8 {
	if p.len.silenced() || p.isMuted() || squareDuty[p.dutyIndex][p.dutyPos] == 0 {
		return 0
	}
	return int8(p.env.output())
}
