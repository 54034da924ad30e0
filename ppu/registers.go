package ppu

import "nescore/hwio"

// Regs is the CPU-facing $2000-$2007 register window, mirrored every 8
// bytes through $3FFF. It is a thin hwio.Device wrapper: the real state
// lives on the PPU itself so the rendering pipeline can read it directly
// without bouncing through callbacks.
type Regs struct {
	ppu          *PPU
	oamAddrValue uint8
}

func (r *Regs) device() *hwio.Device {
	return &hwio.Device{
		Name:    "PPU",
		Size:    0x2000,
		ReadCb:  r.read,
		PeekCb:  r.peek,
		WriteCb: r.write,
	}
}

func (r *Regs) read(addr uint16) uint8 {
	p := r.ppu
	switch addr & 7 {
	case 2:
		return p.readPPUSTATUS()
	case 4:
		return p.readOAMDATA()
	case 7:
		return p.readPPUDATA()
	default:
		// $2000,1,3,5,6 are write-only and read back as 0. The PPU models
		// no open-bus latch: the CPU's open-bus value is not consulted
		// here, and the low 5 bits of PPUSTATUS also read as 0.
		return 0
	}
}

func (r *Regs) peek(addr uint16) uint8 {
	p := r.ppu
	switch addr & 7 {
	case 2:
		status := uint8(0)
		if p.vblank {
			status |= 1 << 7
		}
		if p.sprite0Hit {
			status |= 1 << 6
		}
		if p.spriteOverflow {
			status |= 1 << 5
		}
		return status
	case 4:
		return p.OAM[p.Regs.oamAddrValue]
	case 7:
		return p.readBuffer
	default:
		return 0
	}
}

func (r *Regs) write(addr uint16, val uint8) {
	p := r.ppu
	switch addr & 7 {
	case 0:
		p.writePPUCTRL(val)
	case 1:
		p.writePPUMASK(val)
	case 3:
		p.writeOAMADDR(val)
	case 4:
		p.writeOAMDATA(val)
	case 5:
		p.writePPUSCROLL(val)
	case 6:
		p.writePPUADDR(val)
	case 7:
		p.writePPUDATA(val)
	}
}

// --- PPUCTRL ($2000, write-only) ---

func (p *PPU) writePPUCTRL(val uint8) {
	p.nmiOutput = val&0x80 != 0
	p.spriteHeight16 = val&0x20 != 0
	if val&0x10 != 0 {
		p.bgPatternBase = 0x1000
	} else {
		p.bgPatternBase = 0x0000
	}
	if val&0x08 != 0 {
		p.spPatternBase = 0x1000
	} else {
		p.spPatternBase = 0x0000
	}
	if val&0x04 != 0 {
		p.vramIncrement = 32
	} else {
		p.vramIncrement = 1
	}
	nt := uint16(val & 0x03)
	p.t = (p.t &^ 0x0C00) | (nt << 10)
	p.fireNMI()
}

// --- PPUMASK ($2001, write-only) ---

func (p *PPU) writePPUMASK(val uint8) {
	p.grayscale = val&0x01 != 0
	p.showBgLeft = val&0x02 != 0
	p.showSpLeft = val&0x04 != 0
	p.showBg = val&0x08 != 0
	p.showSp = val&0x10 != 0
	p.emphasis = (val >> 5) & 0x07
}

// --- PPUSTATUS ($2002, read-only) ---

func (p *PPU) readPPUSTATUS() uint8 {
	status := uint8(0)
	if p.vblank {
		status |= 1 << 7
	}
	if p.sprite0Hit {
		status |= 1 << 6
	}
	if p.spriteOverflow {
		status |= 1 << 5
	}
	p.vblank = false
	p.nmiOccurred = false
	p.w = false
	p.fireNMI()
	return status
}

// --- OAMADDR/OAMDATA ($2003/$2004) ---

func (p *PPU) writeOAMADDR(val uint8) { p.Regs.oamAddrValue = val }

func (p *PPU) writeOAMDATA(val uint8) {
	p.OAM[p.Regs.oamAddrValue] = val
	p.Regs.oamAddrValue++
}

func (p *PPU) readOAMDATA() uint8 { return p.OAM[p.Regs.oamAddrValue] }

// --- PPUSCROLL ($2005, write x2) ---

func (p *PPU) writePPUSCROLL(val uint8) {
	if !p.w {
		p.t = (p.t &^ 0x001F) | uint16(val>>3)
		p.x = val & 0x07
	} else {
		p.t = (p.t &^ 0x73E0) | (uint16(val&0x07) << 12) | (uint16(val&0xF8) << 2)
	}
	p.w = !p.w
}

// --- PPUADDR ($2006, write x2) ---

func (p *PPU) writePPUADDR(val uint8) {
	if !p.w {
		p.t = (p.t &^ 0x7F00) | (uint16(val&0x3F) << 8)
	} else {
		p.t = (p.t &^ 0x00FF) | uint16(val)
		p.v = p.t
	}
	p.w = !p.w
}

// --- PPUDATA ($2007) ---

func (p *PPU) readPPUDATA() uint8 {
	addr := p.v & 0x3FFF
	var val uint8
	if addr >= 0x3F00 {
		val = p.readPalette(addr)
		// Palette reads bypass the read-buffer delay, but the buffer is
		// still refilled from the nametable that would sit "behind" the
		// palette mirror, per documented hardware behaviour.
		p.readBuffer = p.readVRAM(addr - 0x1000)
	} else {
		val = p.readBuffer
		p.readBuffer = p.readVRAM(addr)
	}
	p.v += p.vramIncrement
	return val
}

func (p *PPU) writePPUDATA(val uint8) {
	addr := p.v & 0x3FFF
	if addr >= 0x3F00 {
		p.writePalette(addr, val)
	} else {
		p.writeVRAM(addr, val)
	}
	p.v += p.vramIncrement
}
