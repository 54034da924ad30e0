// Package apu implements the NES Audio Processing Unit: two pulse channels,
// a triangle, a noise channel, a delta-modulation sample channel, and the
// frame-counter sequencer that ticks their envelopes/sweeps/length counters
// on a fixed NTSC schedule. Mixing follows the documented nonlinear NES
// mixing formulas and feeds github.com/arl/blip's band-limited resampler.
package apu

import "nescore/cpu"

// Channel identifies one of the five audio generators, used to key the
// mixer's per-channel delta accumulation.
type Channel uint8

const (
	ChannelSquare1 Channel = iota
	ChannelSquare2
	ChannelTriangle
	ChannelNoise
	ChannelDMC
	// ChannelExpansion is cartridge expansion audio (MMC5's two extra pulse
	// channels plus its PCM register), mixed in linearly rather than through
	// the console APU's documented nonlinear DACs: on real hardware expansion
	// audio sums into the final analog output at the cartridge edge
	// connector, outside the APU's own mixing network entirely.
	ChannelExpansion
	numChannels
)

// CPU is the APU's view of the CPU: IRQ lines it can assert (frame counter,
// DMC buffer-empty) and the DMA stall it imposes while fetching DMC sample
// bytes.
type CPU interface {
	RequestIRQ(src cpu.IRQSource)
	ClearIRQ(src cpu.IRQSource)
	Stall(cycles int)
	CurrentCycle() uint64
}

// Bus is the APU's view of CPU address space, used only by the DMC channel
// to fetch sample bytes starting in $C000-$FFFF (a fetch past $FFFF
// wraps to $8000).
type Bus interface {
	Read8(addr uint16) uint8
}

