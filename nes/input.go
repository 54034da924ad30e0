package nes

import "nescore/input"

// SetButton1 updates controller port 1's button state.
func (c *Console) SetButton1(b input.Button, down bool) {
	if c.Controller1 != nil {
		c.Controller1.SetButton(b, down)
	}
}

// SetButton2 updates controller port 2's button state. It is a no-op when
// the Zapper is plugged into port 2 instead.
func (c *Console) SetButton2(b input.Button, down bool) {
	if c.Controller2 != nil {
		c.Controller2.SetButton(b, down)
	}
}

// SetZapperAim updates the Zapper's aim point, in framebuffer pixel
// coordinates. A no-op when the Zapper isn't enabled (see
// config.EmulationConfig.Input.ZapperEnabled).
func (c *Console) SetZapperAim(x, y int) {
	if c.Zapper != nil {
		c.Zapper.SetAim(x, y)
	}
}

// SetZapperTrigger updates the Zapper's trigger state. A no-op when the
// Zapper isn't enabled.
func (c *Console) SetZapperTrigger(down bool) {
	if c.Zapper != nil {
		c.Zapper.SetTrigger(down)
	}
}
