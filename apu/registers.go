package apu

import "nescore/hwio"

// regs wraps the two contiguous CPU-facing register blocks the APU owns
// outright: $4000-$4013 (the four channels and the DMC) and $4015 (status).
// $4017 is also the APU's (the frame-counter write), but it shares its
// address with controller 2's data line on read; since that is a
// cross-package conflict this package can't resolve on its own, the
// orchestrator wires $4017's write side to WriteFrameCounter directly
// instead of through a hwio.Table mapping here.
type regs struct {
	apu *APU
}

func (r *regs) channelsDevice() *hwio.Device {
	return &hwio.Device{
		Name:    "APU",
		Size:    0x14,
		ReadCb:  r.readChannel,
		WriteCb: r.writeChannel,
	}
}

func (r *regs) statusDevice() *hwio.Device {
	return &hwio.Device{
		Name:    "APU_STATUS",
		Size:    1,
		ReadCb:  func(uint16) uint8 { return r.apu.ReadStatus() },
		WriteCb: func(_ uint16, val uint8) { r.apu.WriteStatus(val) },
	}
}

func (r *regs) readChannel(addr uint16) uint8 {
	// Every register in this block is write-only except the DMC's, and the
	// DMC itself only exposes state through $4015; reads return 0 (the
	// CPU's open-bus latch is not consulted).
	return 0
}

func (r *regs) writeChannel(addr uint16, val uint8) {
	a := r.apu
	switch addr & 0x1F {
	case 0x00:
		a.square1.writeDuty(val)
	case 0x01:
		a.square1.writeSweep(val)
	case 0x02:
		a.square1.writeTimerLow(val)
	case 0x03:
		a.square1.writeTimerHigh(val)
	case 0x04:
		a.square2.writeDuty(val)
	case 0x05:
		a.square2.writeSweep(val)
	case 0x06:
		a.square2.writeTimerLow(val)
	case 0x07:
		a.square2.writeTimerHigh(val)
	case 0x08:
		a.triangle.writeLinear(val)
	case 0x0A:
		a.triangle.writeTimerLow(val)
	case 0x0B:
		a.triangle.writeTimerHigh(val)
	case 0x0C:
		a.noise.writeVolume(val)
	case 0x0E:
		a.noise.writePeriod(val)
	case 0x0F:
		a.noise.writeLength(val)
	case 0x10:
		a.dmc.writeFlags(val)
	case 0x11:
		a.dmc.writeLoad(val)
	case 0x12:
		a.dmc.writeSampleAddr(val)
	case 0x13:
		a.dmc.writeSampleLen(val)
	}
}
