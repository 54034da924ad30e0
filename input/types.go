// Package input implements the standard NES controller and Zapper light gun,
// latched through the $4016/$4017 serial shift-register protocol.
package input

// Button identifies one of the eight standard-controller buttons, numbered to
// match the bit each occupies in a latched report byte.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Device is anything that can sit in a controller port and respond to the
// strobe/shift protocol: a standard controller or a Zapper.
type Device interface {
	// Strobe is called on every $4016 write with the strobe bit (D0). A
	// device latches its live state on the 1->0 edge.
	Strobe(on bool)
	// Read returns the bits this device reports for the current read: D0 for
	// a standard controller's next shifted-out bit, D3/D4 for a Zapper's
	// light/trigger sense.
	Read() uint8
}

// FrameSource is the subset of the PPU the Zapper needs to sense whether its
// aim point is currently lit: the beam's raster position and the rendered
// framebuffer. *ppu.PPU satisfies this directly.
type FrameSource interface {
	BeamPosition() (dot, scanline int)
	Pixel(x, y int) uint32
}
