package ppu

import (
	"encoding/binary"
	"errors"
)

var errShortState = errors.New("ppu: snapshot data too short")

// SaveState captures every piece of PPU state a restore needs to resume
// rendering exactly where it left off: VRAM, OAM, palette, the loopy scroll
// registers, and the dot/scanline/frame counters. The framebuffer itself is
// not included — it is fully reconstructed by the remainder of the frame
// that follows a restore, and omitting it keeps snapshots far smaller.
func (p *PPU) SaveState() []byte {
	buf := make([]byte, 0, 2600)
	buf = append(buf, p.OAM[:]...)
	buf = append(buf, p.secOAM[:]...)
	buf = append(buf, uint8(p.secOAMLen))
	buf = append(buf, p.Palette[:]...)
	buf = append(buf, p.Nametables[:]...)
	buf = appendU16(buf, p.v)
	buf = appendU16(buf, p.t)
	buf = append(buf, p.x, boolByte(p.w), p.readBuffer)
	buf = appendU32(buf, uint32(int32(p.Cycle)))
	buf = appendU32(buf, uint32(int32(p.Scanline)))
	buf = appendU64(buf, p.Frame)
	buf = append(buf, boolByte(p.OddFrame))
	buf = append(buf, boolByte(p.vblank), boolByte(p.sprite0Hit), boolByte(p.spriteOverflow))
	buf = append(buf, boolByte(p.nmiOutput), boolByte(p.nmiOccurred))
	buf = append(buf, boolByte(p.spriteHeight16))
	buf = appendU16(buf, p.bgPatternBase)
	buf = appendU16(buf, p.spPatternBase)
	buf = appendU16(buf, p.vramIncrement)
	buf = append(buf, boolByte(p.grayscale), boolByte(p.showBgLeft), boolByte(p.showSpLeft))
	buf = append(buf, boolByte(p.showBg), boolByte(p.showSp), p.emphasis)
	buf = append(buf, boolByte(p.a12Prev))
	return buf
}

func (p *PPU) LoadState(data []byte) error {
	r := stateReader{data: data}
	r.bytes(p.OAM[:])
	r.bytes(p.secOAM[:])
	p.secOAMLen = int(r.u8())
	r.bytes(p.Palette[:])
	r.bytes(p.Nametables[:])
	p.v = r.u16()
	p.t = r.u16()
	p.x, p.w, p.readBuffer = r.u8(), r.b(), r.u8()
	p.Cycle = int(int32(r.u32()))
	p.Scanline = int(int32(r.u32()))
	p.Frame = r.u64()
	p.OddFrame = r.b()
	p.vblank, p.sprite0Hit, p.spriteOverflow = r.b(), r.b(), r.b()
	p.nmiOutput, p.nmiOccurred = r.b(), r.b()
	p.spriteHeight16 = r.b()
	p.bgPatternBase = r.u16()
	p.spPatternBase = r.u16()
	p.vramIncrement = r.u16()
	p.grayscale, p.showBgLeft, p.showSpLeft = r.b(), r.b(), r.b()
	p.showBg, p.showSp, p.emphasis = r.b(), r.b(), r.u8()
	p.a12Prev = r.b()
	return r.err
}

type stateReader struct {
	data []byte
	pos  int
	err  error
}

func (r *stateReader) bytes(dst []byte) {
	if r.err != nil || r.pos+len(dst) > len(r.data) {
		r.err = errShortState
		return
	}
	copy(dst, r.data[r.pos:])
	r.pos += len(dst)
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
