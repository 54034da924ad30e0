package apu

import (
	"encoding/binary"
	"errors"
)

var errShortState = errors.New("apu: snapshot data too short")

// SaveState and LoadState serialize the channels' and frame counter's
// internal state beyond what register writes alone would let a restore
// recompute: sweep dividers, shift registers, sequencer position, the DMC's
// in-flight DMA, and so on.
func (a *APU) SaveState() []byte {
	buf := make([]byte, 0, 160)
	buf = appendPulse(buf, a.square1)
	buf = appendPulse(buf, a.square2)
	buf = appendTriangle(buf, a.triangle)
	buf = appendNoise(buf, a.noise)
	buf = appendDMC(buf, a.dmc)
	buf = appendFrameCounter(buf, a.frameCounter)
	buf = appendU32(buf, a.curCycle)
	return buf
}

func (a *APU) LoadState(data []byte) error {
	r := stateReader{data: data}
	readPulse(&r, a.square1)
	readPulse(&r, a.square2)
	readTriangle(&r, a.triangle)
	readNoise(&r, a.noise)
	readDMC(&r, a.dmc)
	readFrameCounter(&r, a.frameCounter)
	a.curCycle = r.u32()
	return r.err
}

type stateReader struct {
	data []byte
	pos  int
	err  error
}

func (r *stateReader) u8() uint8 {
	if r.err != nil || r.pos >= len(r.data) {
		r.err = errShortState
		return 0
	}
	v := r.data[r.pos]
	r.pos++
	return v
}

func (r *stateReader) b() bool { return r.u8() != 0 }

func (r *stateReader) u16() uint16 {
	if r.err != nil || r.pos+2 > len(r.data) {
		r.err = errShortState
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

func (r *stateReader) u32() uint32 {
	if r.err != nil || r.pos+4 > len(r.data) {
		r.err = errShortState
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func appendU16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func appendPulse(buf []byte, p *pulse) []byte {
	buf = append(buf, boolByte(p.env.startFlag), p.env.divider, p.env.counter,
		p.env.volume, boolByte(p.env.constant), boolByte(p.env.loop))
	buf = append(buf, boolByte(p.len.enabled), boolByte(p.len.halt), p.len.counter)
	buf = appendU32(buf, p.tmr.period)
	buf = appendU32(buf, p.tmr.value)
	buf = append(buf, p.dutyIndex, p.dutyPos)
	buf = appendU16(buf, p.realPeriod)
	buf = append(buf, boolByte(p.sweepEnabled), p.sweepPeriod, boolByte(p.sweepNegate),
		p.sweepShift, p.sweepDivider, boolByte(p.sweepReload))
	buf = appendU16(buf, p.sweepTarget)
	return buf
}

func readPulse(r *stateReader, p *pulse) {
	p.env.startFlag, p.env.divider, p.env.counter = r.b(), r.u8(), r.u8()
	p.env.volume, p.env.constant, p.env.loop = r.u8(), r.b(), r.b()
	p.len.enabled, p.len.halt, p.len.counter = r.b(), r.b(), r.u8()
	p.tmr.period = r.u32()
	p.tmr.value = r.u32()
	p.dutyIndex, p.dutyPos = r.u8(), r.u8()
	p.realPeriod = r.u16()
	p.sweepEnabled, p.sweepPeriod, p.sweepNegate = r.b(), r.u8(), r.b()
	p.sweepShift, p.sweepDivider, p.sweepReload = r.u8(), r.u8(), r.b()
	p.sweepTarget = r.u16()
}

func appendTriangle(buf []byte, t *triangle) []byte {
	buf = append(buf, boolByte(t.len.enabled), boolByte(t.len.halt), t.len.counter)
	buf = appendU32(buf, t.tmr.period)
	buf = appendU32(buf, t.tmr.value)
	buf = appendU16(buf, t.realPeriod)
	buf = append(buf, t.pos, t.linearCounter, t.linearReloadValue,
		boolByte(t.linearReloadFlag), boolByte(t.linearControl))
	return buf
}

func readTriangle(r *stateReader, t *triangle) {
	t.len.enabled, t.len.halt, t.len.counter = r.b(), r.b(), r.u8()
	t.tmr.period = r.u32()
	t.tmr.value = r.u32()
	t.realPeriod = r.u16()
	t.pos, t.linearCounter, t.linearReloadValue = r.u8(), r.u8(), r.u8()
	t.linearReloadFlag, t.linearControl = r.b(), r.b()
}

func appendNoise(buf []byte, n *noise) []byte {
	buf = append(buf, boolByte(n.env.startFlag), n.env.divider, n.env.counter,
		n.env.volume, boolByte(n.env.constant), boolByte(n.env.loop))
	buf = append(buf, boolByte(n.len.enabled), boolByte(n.len.halt), n.len.counter)
	buf = appendU32(buf, n.tmr.period)
	buf = appendU32(buf, n.tmr.value)
	buf = append(buf, boolByte(n.mode))
	buf = appendU16(buf, n.shiftReg)
	return buf
}

func readNoise(r *stateReader, n *noise) {
	n.env.startFlag, n.env.divider, n.env.counter = r.b(), r.u8(), r.u8()
	n.env.volume, n.env.constant, n.env.loop = r.u8(), r.b(), r.b()
	n.len.enabled, n.len.halt, n.len.counter = r.b(), r.b(), r.u8()
	n.tmr.period = r.u32()
	n.tmr.value = r.u32()
	n.mode = r.b()
	n.shiftReg = r.u16()
}

func appendDMC(buf []byte, d *dmc) []byte {
	buf = append(buf, boolByte(d.irqEnabled), boolByte(d.irqFlag), boolByte(d.loop))
	buf = appendU32(buf, d.tmr.period)
	buf = appendU32(buf, d.tmr.value)
	buf = appendU16(buf, d.sampleAddr)
	buf = appendU16(buf, d.sampleLen)
	buf = appendU16(buf, d.curAddr)
	buf = appendU16(buf, d.bytesRemaining)
	buf = append(buf, d.sampleBuffer, boolByte(d.bufferEmpty), d.shiftReg,
		d.bitsRemaining, boolByte(d.silence), d.outputLevel)
	return buf
}

func readDMC(r *stateReader, d *dmc) {
	d.irqEnabled, d.irqFlag, d.loop = r.b(), r.b(), r.b()
	d.tmr.period = r.u32()
	d.tmr.value = r.u32()
	d.sampleAddr = r.u16()
	d.sampleLen = r.u16()
	d.curAddr = r.u16()
	d.bytesRemaining = r.u16()
	d.sampleBuffer, d.bufferEmpty, d.shiftReg = r.u8(), r.b(), r.u8()
	d.bitsRemaining, d.silence, d.outputLevel = r.u8(), r.b(), r.u8()
}

func appendFrameCounter(buf []byte, f *frameCounter) []byte {
	buf = append(buf, f.mode, boolByte(f.inhibitIRQ), boolByte(f.irqFlag))
	buf = appendU32(buf, uint32(f.cycle))
	buf = append(buf, uint8(f.step))
	buf = append(buf, f.pendingMode, boolByte(f.pendingInhibit), uint8(f.writeDelay))
	return buf
}

func readFrameCounter(r *stateReader, f *frameCounter) {
	f.mode, f.inhibitIRQ, f.irqFlag = r.u8(), r.b(), r.b()
	f.cycle = int32(r.u32())
	f.step = int(r.u8())
	f.pendingMode, f.pendingInhibit = r.u8(), r.b()
	f.writeDelay = int8(r.u8())
}
