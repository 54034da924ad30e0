package cpu

import (
	"encoding/binary"
	"errors"
)

var errShortState = errors.New("cpu: snapshot data too short")

// SaveState captures every register, the interrupt lines, and any in-flight
// DMA stall, enough to resume execution mid-instruction-boundary exactly
// where it left off.
func (c *CPU) SaveState() []byte {
	buf := make([]byte, 0, 24)
	buf = append(buf, c.A, c.X, c.Y, c.SP)
	buf = appendU16(buf, c.PC)
	buf = append(buf, c.statusByte(c.B))
	buf = appendU64(buf, c.Cycles)
	buf = append(buf, c.OpenBus, uint8(c.irqLines))
	buf = append(buf, boolByte(c.nmiLine), boolByte(c.nmiPrev), boolByte(c.nmiEdge), boolByte(c.halted))
	buf = appendU32(buf, uint32(c.StallCycles))
	return buf
}

// LoadState restores state saved by SaveState. Bus and OnCycle are left
// untouched; the caller is expected to have already wired those before
// restoring.
func (c *CPU) LoadState(data []byte) error {
	r := stateReader{data: data}
	c.A, c.X, c.Y, c.SP = r.u8(), r.u8(), r.u8(), r.u8()
	c.PC = r.u16()
	c.setStatusByte(r.u8())
	c.Cycles = r.u64()
	c.OpenBus, c.irqLines = r.u8(), IRQSource(r.u8())
	c.nmiLine, c.nmiPrev, c.nmiEdge, c.halted = r.b(), r.b(), r.b(), r.b()
	c.StallCycles = int(int32(r.u32()))
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

func (r *stateReader) u64() uint64 {
	if r.err != nil || r.pos+8 > len(r.data) {
		r.err = errShortState
		return 0
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
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

func appendU64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
