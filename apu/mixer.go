package apu

import "github.com/arl/blip"

// pulseTable and tndTable implement the NES's documented nonlinear DAC
// mixing: the two pulse channels share one DAC (0-30), and the
// triangle/noise/DMC channels share a second, weighted 3:2:1 (0-202).
var pulseTable [31]float64
var tndTable [203]float64

func init() {
	for i := 1; i < len(pulseTable); i++ {
		pulseTable[i] = 95.88 / (8128/float64(i) + 100)
	}
	for i := 1; i < len(tndTable); i++ {
		tndTable[i] = 159.79 / (22638/float64(i) + 100)
	}
}

// Mixer combines the five channels' instantaneous levels into one
// band-limited PCM stream via blip's resampler, and hands the host a
// pull-based buffer of signed 16-bit samples (in place of the teacher's
// direct-to-SDL2 push model, which this port has no audio backend for).
type Mixer struct {
	buf *blip.Buffer

	level      [int(numChannels)]int8
	lastOutput int32

	sampleBuf []int16
}

func newMixer(sampleRate int) *Mixer {
	const clockRate = 1789773 // NTSC CPU clock, Hz
	buf := blip.NewBuffer(sampleRate / 10)
	buf.SetRates(float64(clockRate), float64(sampleRate))
	return &Mixer{buf: buf}
}

func (m *Mixer) addDelta(ch Channel, time uint32, delta int16) {
	m.level[ch] += int8(delta)

	sq1, sq2 := m.level[ChannelSquare1], m.level[ChannelSquare2]
	tri, noi, dmc := m.level[ChannelTriangle], m.level[ChannelNoise], m.level[ChannelDMC]

	pulseOut := pulseTable[clampIndex(int(sq1)+int(sq2), len(pulseTable)-1)]
	tndOut := tndTable[clampIndex(int(tri)*3+int(noi)*2+int(dmc), len(tndTable)-1)]

	// Expansion audio (cartridge pulses/PCM) sums in linearly rather than
	// through either documented DAC table, approximating the real hardware's
	// analog summing at the edge connector rather than a second shared
	// nonlinear network this port has no measured curve for.
	expansionOut := int32(m.level[ChannelExpansion]) * 120

	mixed := int32((pulseOut+tndOut)*32767) + expansionOut
	if mixed != m.lastOutput {
		m.buf.AddDelta(uint64(time), mixed-m.lastOutput)
		m.lastOutput = mixed
	}
}

func clampIndex(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// endFrame flushes clockDuration CPU cycles' worth of deltas through blip's
// resampler and appends the resulting samples to the pull buffer.
func (m *Mixer) endFrame(clockDuration int) {
	m.buf.EndFrame(clockDuration)
	for m.buf.SamplesAvailable() > 0 {
		out := make([]int16, 512)
		n := m.buf.ReadSamples(out, len(out), false)
		if n == 0 {
			break
		}
		m.sampleBuf = append(m.sampleBuf, out[:n]...)
	}
}

// PullSamples drains and returns whatever mono samples have accumulated
// since the last call, for the host to feed to its audio output.
func (m *Mixer) PullSamples() []int16 {
	out := m.sampleBuf
	m.sampleBuf = nil
	return out
}
