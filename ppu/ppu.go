// Package ppu implements the NES Picture Processing Unit: the 341x262 NTSC
// dot/scanline scheduler, background and sprite pipelines, the loopy
// v/t/x/w scroll state machine, and A12-edge reporting for mappers.
package ppu

import (
	"nescore/hwio"
	"nescore/log"
)

// Mapper is the PPU's view of the cartridge: pattern-table access. A mapper
// may also implement A12Notifier, for the A12 rising-edge notification its
// IRQ counter keys off (MMC3), and NametableOverrider, to intercept
// nametable fetches before the PPU's own mirroring logic runs (MMC5
// ExRAM/fill mode).
type Mapper interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)
}

// A12Notifier is implemented by mappers with a scanline IRQ counter clocked
// by the PPU address bus's bit 12 (MMC3, MMC6, DxROM).
type A12Notifier interface {
	OnA12Rising()
}

// NametableOverrider is implemented by mappers that supply nametable bytes
// directly instead of going through the PPU's own VRAM (MMC5).
type NametableOverrider interface {
	NametableOverride(addr uint16) (value uint8, ok bool)
}

// Mirroring selects how the four logical nametables alias onto 2 KiB of
// physical VRAM.
type Mirroring int

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorSingleA
	MirrorSingleB
	MirrorFourScreen
)

const (
	dotsPerScanline  = 341
	scanlinesPerFrame = 262
	visibleScanlines  = 240
	postRenderLine    = 240
	vblankStartLine   = 241
	preRenderLine     = -1
)

// PPU renders one NTSC frame (256x240, packed ARGB) at a time, driving NMI
// on vblank and exposing $2000-$2007 with its documented quirks.
type PPU struct {
	Mapper    Mapper
	Mirroring Mirroring

	Regs Regs

	OAM       [256]byte
	secOAM    [32]byte // 8 sprites x 4 bytes
	secOAMLen int

	Palette    [32]byte
	Nametables [2048]byte

	// Loopy scroll registers.
	v, t uint16
	x    uint8
	w    bool

	readBuffer uint8 // PPUDATA read buffer

	Cycle    int // dot, 0-340
	Scanline int // -1 (pre-render) .. 260
	Frame    uint64
	OddFrame bool

	vblank         bool
	sprite0Hit     bool
	spriteOverflow bool
	nmiOutput      bool // PPUCTRL bit 7
	nmiOccurred    bool

	spriteHeight16 bool
	bgPatternBase  uint16
	spPatternBase  uint16
	vramIncrement  uint16
	grayscale      bool
	showBgLeft     bool
	showSpLeft     bool
	showBg         bool
	showSp         bool
	emphasis       uint8

	a12Prev bool

	Framebuffer [256 * 240]uint32

	// OnNMI is invoked with true when NMI should be asserted to the CPU and
	// false when it should be deasserted; the CPU treats it as an
	// edge-triggered line via its own RequestNMI.
	OnNMI func(bool)

	// FrameDone is invoked once per completed frame, after the scanline
	// 240->241 transition produces the final pixel. Used by the
	// orchestrator's RunFrame to know when to stop.
	FrameDone func()
}

// New creates a PPU. Call InitBus to expose the CPU-facing register window,
// and set Mapper before PowerOn.
func New() *PPU {
	p := &PPU{}
	return p
}

func (p *PPU) PowerOn() {
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.Cycle, p.Scanline, p.Frame, p.OddFrame = 0, preRenderLine, 0, false
	p.vblank, p.sprite0Hit, p.spriteOverflow = false, false, false
	p.nmiOutput, p.nmiOccurred = false, false
	p.a12Prev = false
	p.Regs.ppu = p
	log.ModPPU.DebugZ("ppu power on").End()
}

// InitBus maps the 8-register CPU-facing window, mirrored every 8 bytes
// across $2000-$3FFF, onto bus.
func (p *PPU) InitBus(bus *hwio.Table) {
	p.Regs.ppu = p
	bus.MapDevice(0x2000, p.Regs.device())
}

// BeamPosition reports the electron beam's current position, for peripherals
// (the Zapper) that need to know where on screen the PPU is currently
// drawing.
func (p *PPU) BeamPosition() (dot, scanline int) { return p.Cycle, p.Scanline }

// Pixel returns the rendered color at (x, y) in the current framebuffer, or 0
// if out of bounds.
func (p *PPU) Pixel(x, y int) uint32 {
	if x < 0 || x >= 256 || y < 0 || y >= 240 {
		return 0
	}
	return p.Framebuffer[y*256+x]
}

// RenderingEnabled reports whether background or sprite rendering is
// currently on, for mappers (MMC5) that need to know whether the PPU is
// actively drawing a frame.
func (p *PPU) RenderingEnabled() bool { return p.renderingEnabled() }

// Step advances the PPU by one PPU cycle (dot). The caller (the
// orchestrator's catch-up logic) calls this three times per CPU cycle on
// NTSC.
func (p *PPU) Step() {
	p.processDot()

	p.Cycle++
	if p.Cycle > 340 {
		p.Cycle = 0
		p.Scanline++
		if p.Scanline > 260 {
			p.Scanline = preRenderLine
			p.Frame++
			p.OddFrame = !p.OddFrame
			if p.OddFrame && p.renderingEnabled() {
				// Skip the idle dot on odd frames when rendering is on.
				p.Cycle = 1
			}
		}
	}
}

func (p *PPU) renderingEnabled() bool { return p.showBg || p.showSp }

func (p *PPU) processDot() {
	switch {
	case p.Scanline >= 0 && p.Scanline < visibleScanlines:
		p.visibleScanlineDot()
	case p.Scanline == postRenderLine:
		// idle
	case p.Scanline == vblankStartLine && p.Cycle == 1:
		p.enterVblank()
	case p.Scanline == preRenderLine:
		p.preRenderDot()
	}

	if p.Scanline >= 0 && p.Scanline < visibleScanlines && p.Cycle == 0 {
		p.renderScanline(p.Scanline)
	}
}

func (p *PPU) enterVblank() {
	p.vblank = true
	p.nmiOccurred = true
	p.fireNMI()
	if p.FrameDone != nil {
		p.FrameDone()
	}
}

func (p *PPU) fireNMI() {
	if p.OnNMI != nil {
		p.OnNMI(p.nmiOutput && p.nmiOccurred)
	}
}

func (p *PPU) preRenderDot() {
	switch p.Cycle {
	case 1:
		p.vblank = false
		p.sprite0Hit = false
		p.spriteOverflow = false
		p.nmiOccurred = false
		p.fireNMI()
	case 280, 281, 282, 283, 284, 285, 286, 287, 288, 289, 290, 291, 292, 293, 294, 295, 296, 297, 298, 299, 300, 301, 302, 303, 304:
		if p.renderingEnabled() {
			// copy vertical bits of t into v, dots 280-304
			p.v = (p.v & 0x041F) | (p.t &^ 0x041F)
		}
	}
	if p.Cycle == 257 && p.renderingEnabled() {
		p.v = (p.v & 0x7BE0) | (p.t &^ 0x7BE0)
	}
}

func (p *PPU) visibleScanlineDot() {
	switch {
	case p.Cycle == 1:
		if p.Scanline == 0 {
			p.clearSecondaryOAM()
		}
	case p.Cycle == 256:
		if p.renderingEnabled() {
			p.incrementY()
		}
	case p.Cycle == 257:
		if p.renderingEnabled() {
			p.v = (p.v & 0x7BE0) | (p.t &^ 0x7BE0)
		}
	case p.Cycle >= 1 && p.Cycle <= 256 && p.Cycle%8 == 0:
		p.clockA12ForPatternFetch()
	case p.Cycle >= 257 && p.Cycle <= 320:
		p.clockA12ForSpritePatternFetch()
	}

	if p.Cycle == 65 {
		p.evaluateSprites(p.Scanline)
	}
}

// clockA12ForPatternFetch reproduces the A12 rising edge the background
// pattern fetch naturally produces when the background pattern table is at
// $1000 (bit 12 set): MMC3-style counters key off this transition.
func (p *PPU) clockA12ForPatternFetch() {
	p.touchA12(p.bgPatternBase)
}

func (p *PPU) clockA12ForSpritePatternFetch() {
	base := p.spPatternBase
	if p.spriteHeight16 {
		base = 0 // 8x16 sprites take their pattern table from OAM byte 1's low bit
	}
	p.touchA12(base)
}

func (p *PPU) touchA12(patternBase uint16) {
	a12 := patternBase&0x1000 != 0
	if a12 && !p.a12Prev {
		if notifier, ok := p.Mapper.(A12Notifier); ok {
			notifier.OnA12Rising()
		}
	}
	p.a12Prev = a12
}

func (p *PPU) clearSecondaryOAM() {
	for i := range p.secOAM {
		p.secOAM[i] = 0xFF
	}
	p.secOAMLen = 0
}

func (p *PPU) spriteSize() int {
	if p.spriteHeight16 {
		return 16
	}
	return 8
}

// evaluateSprites copies up to 8 in-range sprites for the NEXT scanline into
// secondary OAM, and sets the overflow flag reproducing the hardware's
// documented off-by-one bug: evaluation keeps reading OAM with a
// non-resetting low counter once 8 sprites have already been found, so it
// can skip over in-range sprites (false negative) or flag on an unrelated
// byte (false positive).
func (p *PPU) evaluateSprites(scanline int) {
	p.clearSecondaryOAM()
	height := p.spriteSize()
	n := 0
	m := 0
	count := 0
	for n < 64 {
		y := int(p.OAM[n*4+m])
		inRange := scanline >= y && scanline < y+height
		if count < 8 {
			if inRange {
				copy(p.secOAM[count*4:count*4+4], p.OAM[n*4:n*4+4])
				count++
			}
			n++
			continue
		}
		// Past 8 matches: the real evaluator keeps scanning with the same
		// buggy incrementing logic, checking Y at an ever-advancing offset
		// within each 4-byte entry instead of resetting to offset 0.
		if inRange {
			p.spriteOverflow = true
			n++
			continue
		}
		n++
		m = (m + 1) & 0x03
	}
	p.secOAMLen = count
}
