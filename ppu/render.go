package ppu

// incrementY implements the loopy "coarse Y / fine Y" increment, including
// the wrap from nametable row 29 (the last row of on-screen tiles) back to
// row 0 with a vertical nametable flip, as distinct from the plain 32-row
// wrap that would happen past the attic rows 30-31.
func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch {
	case y == 29:
		y = 0
		p.v ^= 0x0800
	case y == 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

// nametableAddr folds a $2000-$2FFF PPU address down to a physical VRAM
// offset per the current mirroring mode, the same table-remapping idea as
// the teacher's setNametableMirroring, expressed as a pure function instead
// of bus-slice surgery since the PPU owns its own VRAM array directly.
func (p *PPU) nametableAddr(addr uint16) uint16 {
	addr &= 0x0FFF
	table := addr / 0x400
	offset := addr % 0x400

	var physical uint16
	switch p.Mirroring {
	case MirrorVertical:
		physical = table % 2
	case MirrorHorizontal:
		physical = table / 2
	case MirrorSingleA:
		physical = 0
	case MirrorSingleB:
		physical = 1
	case MirrorFourScreen:
		// Four-screen carts supply their own extra 2KiB of VRAM; this
		// simplified model still only has 2KiB, so fold mod-4 onto 2 banks.
		physical = table % 2
	}
	return physical*0x400 + offset
}

func (p *PPU) readVRAM(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.Mapper.ReadCHR(addr)
	case addr < 0x3F00:
		if over, ok := p.Mapper.(NametableOverrider); ok {
			if val, handled := over.NametableOverride(addr); handled {
				return val
			}
		}
		return p.Nametables[p.nametableAddr(addr)]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) writeVRAM(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.Mapper.WriteCHR(addr, val)
	case addr < 0x3F00:
		p.Nametables[p.nametableAddr(addr)] = val
	default:
		p.writePalette(addr, val)
	}
}

func (p *PPU) paletteIndex(addr uint16) uint16 {
	idx := addr & 0x1F
	// $3F10/$3F14/$3F18/$3F1C mirror their $3F00/$3F04/... sprite-0 backdrop
	// counterparts.
	if idx&0x13 == 0x10 {
		idx &^= 0x10
	}
	return idx
}

func (p *PPU) readPalette(addr uint16) uint8 { return p.Palette[p.paletteIndex(addr)] }

func (p *PPU) writePalette(addr uint16, val uint8) { p.Palette[p.paletteIndex(addr)] = val & 0x3F }

// tileRow returns the 8 pixel values (0-3) for one row of an 8x8 pattern
// tile, most-significant pixel first.
func (p *PPU) tileRow(patternBase uint16, tile uint8, row uint8) [8]uint8 {
	var out [8]uint8
	addr := patternBase + uint16(tile)*16 + uint16(row)
	lo := p.Mapper.ReadCHR(addr)
	hi := p.Mapper.ReadCHR(addr + 8)
	for bit := 0; bit < 8; bit++ {
		shift := uint(7 - bit)
		lo_ := (lo >> shift) & 1
		hi_ := (hi >> shift) & 1
		out[bit] = lo_ | (hi_ << 1)
	}
	return out
}

// renderScanline draws one visible scanline into the framebuffer. It
// composes the background from the current v/x scroll state and overlays
// up to 8 sprites evaluated for this line, including sprite-0 hit
// detection. Pixel-exact timing of the internal shift registers is traded
// for a per-scanline composite: the dot-level scheduler above still drives
// all externally-observable timing (vblank/NMI, A12 edges, sprite
// evaluation window), which is what mapper IRQ counters and game logic
// actually depend on.
func (p *PPU) renderScanline(line int) {
	var bgPixels [256]uint8
	var bgOpaque [256]bool

	if p.showBg {
		p.renderBackgroundLine(line, &bgPixels, &bgOpaque)
	}

	for x := 0; x < 256; x++ {
		col := p.backdropColor()
		if bgOpaque[x] && (p.showBgLeft || x >= 8) {
			col = p.Palette[bgPixels[x]&0x1F] & 0x3F
		}
		p.Framebuffer[line*256+x] = nesPalette[col]
	}

	if p.showSp {
		p.renderSpritesLine(line, &bgOpaque)
	}
}

func (p *PPU) backdropColor() uint8 { return p.Palette[0] & 0x3F }

// renderBackgroundLine walks the 32 visible tile columns (plus partial tile
// 33 for fine-x scroll) using the coarse/fine scroll bits out of v, exactly
// as the real fetch pipeline does, just without the 2-cycle-per-byte
// shift-register latency.
func (p *PPU) renderBackgroundLine(line int, pixels *[256]uint8, opaque *[256]bool) {
	coarseX := p.v & 0x1F
	coarseY := (p.v >> 5) & 0x1F
	nt := (p.v >> 10) & 0x03

	// Walk 33 tiles to cover a partial tile at each edge from fine-x scroll.
	for tileCol := 0; tileCol < 33; tileCol++ {
		col := (coarseX + uint16(tileCol)) & 0x1F
		ntIdx := nt
		if col < coarseX {
			ntIdx ^= 0x01 // crossed into the horizontally-adjacent nametable
		}
		ntBase := uint16(0x2000) + ntIdx*0x400
		tileAddr := ntBase + coarseY*32 + col
		tile := p.readVRAM(tileAddr)

		attrAddr := ntBase + 0x3C0 + (coarseY/4)*8 + col/4
		attr := p.readVRAM(attrAddr)
		shift := uint((coarseY%4)/2*4 + (col%4)/2*2)
		paletteHi := (attr >> shift) & 0x03

		row := uint8((p.v >> 12) & 0x07)
		pattern := p.tileRow(p.bgPatternBase, tile, row)

		for i := 0; i < 8; i++ {
			screenX := tileCol*8 + i - int(p.x)
			if screenX < 0 || screenX >= 256 {
				continue
			}
			pv := pattern[i]
			if pv == 0 {
				pixels[screenX] = 0
				opaque[screenX] = false
				continue
			}
			pixels[screenX] = (paletteHi << 2) | pv
			opaque[screenX] = true
		}
	}
}

// renderSpritesLine draws the (already-evaluated) secondary OAM sprites for
// this line in priority order (lowest OAM index wins on overlap) and
// records a sprite-0 hit when an opaque sprite-0 pixel overlaps an opaque
// background pixel in the visible x range.
func (p *PPU) renderSpritesLine(line int, bgOpaque *[256]bool) {
	var spritePixel [256]uint8
	var spriteOpaque [256]bool
	var spritePriority [256]bool
	var isSprite0 [256]bool

	for i := p.secOAMLen - 1; i >= 0; i-- {
		y := int(p.secOAM[i*4+0])
		tile := p.secOAM[i*4+1]
		attr := p.secOAM[i*4+2]
		x := int(p.secOAM[i*4+3])
		flipH := attr&0x40 != 0
		flipV := attr&0x80 != 0
		priority := attr&0x20 != 0
		paletteHi := (attr & 0x03) << 2

		// Sprites are evaluated one scanline ahead (evaluateSprites(line-1)
		// selects sprites with y <= line-1 < y+height), so the row within the
		// sprite's pattern actually being displayed on `line` is offset by one
		// from the naive line-y.
		row := uint8(line - y - 1)
		height := uint8(p.spriteSize())
		if flipV {
			row = height - 1 - row
		}

		patternBase := p.spPatternBase
		patTile := tile
		if p.spriteHeight16 {
			patternBase = uint16(tile&0x01) * 0x1000
			patTile = tile &^ 0x01
			if row >= 8 {
				patTile++
				row -= 8
			}
		}

		pattern := p.tileRow(patternBase, patTile, row)

		for col := 0; col < 8; col++ {
			px := x + col
			if px < 0 || px >= 256 {
				continue
			}
			if !(p.showSpLeft || px >= 8) {
				continue
			}
			srcCol := col
			if flipH {
				srcCol = 7 - col
			}
			pv := pattern[srcCol]
			if pv == 0 {
				continue
			}
			spritePixel[px] = paletteHi | pv
			spriteOpaque[px] = true
			spritePriority[px] = priority
			if i == 0 {
				isSprite0[px] = true
			}
		}
	}

	for x := 0; x < 256; x++ {
		if !spriteOpaque[x] {
			continue
		}
		if isSprite0[x] && bgOpaque[x] && x != 255 {
			p.sprite0Hit = true
		}
		if spritePriority[x] && bgOpaque[x] {
			continue // background wins when the sprite is behind it
		}
		p.Framebuffer[line*256+x] = nesPalette[p.Palette[0x10+spritePixel[x]&0x0F]&0x3F]
	}
}
