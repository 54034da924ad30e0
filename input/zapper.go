package input

// lightRadius is how many framebuffer pixels around the aim point the
// sensor's photodiode is sensitive to; real hardware has no sharp cutoff, but
// a small square window reproduces the effect well enough to register hits.
const lightRadius = 3

// brightThreshold is the per-channel intensity (out of 0xFF) above which a
// pixel counts as "lit". The Zapper's actual photodiode responds to total
// light intensity, not a fixed RGB threshold, but NES games only ever flash
// white or near-white at the gun, so a simple channel-sum threshold suffices.
const brightThreshold = 0x60 * 3

// Zapper is the NES light gun: it reports whether its aim point is
// currently lit by the CRT beam, and whether its trigger is pulled.
//
// spec.md's Open Question flags that the original exhibits Zapper behavior
// tied to a thin timing window relative to the PPU's beam position, and
// warns against guessing whether that is intentional hardware behavior or an
// artifact of the original's internal scheduling. This implementation takes
// the documented, deliberately simplified reading: the sensor is considered
// "over" a pixel once the beam has passed it this frame (reproducing CRT
// phosphor persistence) and stays lit for the rest of the frame once it
// detects brightness there, rather than attempting to reproduce the
// original's exact per-cycle window. It is gated behind
// config.EmulationConfig.Input.ZapperEnabled and never wired in otherwise.
type Zapper struct {
	fb FrameSource

	x, y      int
	triggered bool
	strobe    bool

	latchedLight   bool
	latchedTrigger bool
}

// NewZapper creates a Zapper sampling frames from fb.
func NewZapper(fb FrameSource) *Zapper {
	return &Zapper{fb: fb}
}

// SetAim updates the gun's screen-space aim point, in framebuffer pixels.
func (z *Zapper) SetAim(x, y int) { z.x, z.y = x, y }

// SetTrigger updates whether the trigger is currently pulled.
func (z *Zapper) SetTrigger(down bool) { z.triggered = down }

func (z *Zapper) Strobe(on bool) {
	wasOn := z.strobe
	z.strobe = on
	if wasOn && !on {
		z.latchedTrigger = z.triggered
		z.latchedLight = z.senseLight()
	}
	if on {
		z.latchedTrigger = z.triggered
		z.latchedLight = z.senseLight()
	}
}

func (z *Zapper) senseLight() bool {
	if z.x < 0 || z.x >= 256 || z.y < 0 || z.y >= 240 {
		return false
	}
	dot, scanline := z.fb.BeamPosition()
	if scanline < z.y || (scanline == z.y && dot < z.x) {
		// The beam hasn't reached the aim point yet this frame.
		return false
	}
	for dy := -lightRadius; dy <= lightRadius; dy++ {
		yy := z.y + dy
		for dx := -lightRadius; dx <= lightRadius; dx++ {
			xx := z.x + dx
			if brightness(z.fb.Pixel(xx, yy)) >= brightThreshold {
				return true
			}
		}
	}
	return false
}

func brightness(argb uint32) int {
	r := int((argb >> 16) & 0xFF)
	g := int((argb >> 8) & 0xFF)
	b := int(argb & 0xFF)
	return r + g + b
}

// Read reports D3 (light sense, active low: 0 = light detected) and D4
// (trigger, active high: 1 = pulled); all other bits are open bus (0 here,
// OR'd with 0x40 by the caller).
func (z *Zapper) Read() uint8 {
	var v uint8
	if !z.latchedLight {
		v |= 0x08
	}
	if z.latchedTrigger {
		v |= 0x10
	}
	return v
}
