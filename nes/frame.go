package nes

// tickableMapper is implemented by mappers with their own per-CPU-cycle
// state (MMC5's expansion-audio pulses/PCM register, VRC4's IRQ prescaler).
type tickableMapper interface {
	Tick()
}

// catchUp is the CPU's OnCycle hook: it advances the PPU three dots and the
// APU one tick per elapsed CPU cycle (the NTSC 3:1 ratio), and polls any
// mapper that tracks its IRQ counter from scanline position (MMC5) rather
// than the A12 line, or that needs its own per-cycle tick (MMC5's expansion
// audio).
func (c *Console) catchUp(n int) {
	for i := 0; i < n; i++ {
		c.stepPPU()
		c.stepPPU()
		c.stepPPU()
		c.APU.Tick()
		if c.tickableMapper != nil {
			c.tickableMapper.Tick()
		}
	}
}

func (c *Console) stepPPU() {
	before := c.PPU.Scanline
	c.PPU.Step()
	if c.scanlineMapper != nil {
		if after := c.PPU.Scanline; after != before {
			c.scanlineMapper.OnPPUScanline(after, c.PPU.RenderingEnabled())
		}
	}
}

// writeOAMDMA handles a $4014 write: a direct 256-byte copy into OAM through
// $2004, followed by a flat cycle stall. Real hardware interleaves this
// transfer with DMC DMA and CPU-visible open-bus effects on a per-cycle
// basis (see _examples/arl-nestor/hw/dma.go); this core charges the
// documented 513/514-cycle total without reproducing that interleaving,
// consistent with the DMC fetch stall's own flat-cost simplification.
func (c *Console) writeOAMDMA(_ uint16, val uint8) {
	base := uint16(val) << 8
	for i := 0; i < 256; i++ {
		b := c.bus.Read8(base + uint16(i))
		c.bus.Write8(0x2004, b)
	}
	cycles := 513
	if c.CPU.CurrentCycle()%2 != 0 {
		cycles = 514
	}
	c.CPU.Stall(cycles)
}

// RunFrame runs the console until the PPU completes one full frame (the
// scanline 240 -> 241 vblank transition), then returns. It does not block on
// real time; the host is responsible for frame pacing.
func (c *Console) RunFrame() {
	c.frameDone = false
	for !c.frameDone {
		c.CPU.Step()
	}
	c.APU.EndFrame()
}

// PullAudio drains whatever resampled audio has accumulated since the last
// call, for the host to feed to its audio output.
func (c *Console) PullAudio() []int16 { return c.APU.PullSamples() }

// Framebuffer returns the most recently rendered frame (256x240, packed
// 0xAARRGGBB).
func (c *Console) Framebuffer() *[256 * 240]uint32 { return &c.PPU.Framebuffer }
