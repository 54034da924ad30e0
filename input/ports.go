package input

import "nescore/hwio"

// Ports is the console's two controller ports. It owns $4016 (strobe write,
// port 1 read) outright, but only the read side of $4017: the frame counter
// at that address is the APU's (see apu/registers.go), so the orchestrator
// maps Ports' $4017 device only for reads, alongside its own write-side
// mapping for the APU.
type Ports struct {
	Port1 Device
	Port2 Device

	strobe bool
}

// New creates a Ports with both ports disconnected; plug in a *Controller or
// *Zapper via Port1/Port2 before use.
func New() *Ports { return &Ports{} }

func (p *Ports) strobeDevices(on bool) {
	if p.Port1 != nil {
		p.Port1.Strobe(on)
	}
	if p.Port2 != nil {
		p.Port2.Strobe(on)
	}
}

// WriteStrobe handles a $4016 write: D0 is the strobe line shared by both
// ports. Each device tracks its own edge and keeps reloading its latch while
// the line is held high.
func (p *Ports) WriteStrobe(val uint8) {
	p.strobe = val&0x01 != 0
	p.strobeDevices(p.strobe)
}

// ReadPort1 handles a $4016 read.
func (p *Ports) ReadPort1() uint8 {
	if p.strobe {
		p.strobeDevices(true)
	}
	return 0x40 | p.readDevice(p.Port1)
}

// ReadPort2 handles a $4017 read (the APU handles that address's write
// side; the orchestrator returns this value as the whole $4017 read byte,
// with no APU bits ORed in).
func (p *Ports) ReadPort2() uint8 {
	if p.strobe {
		p.strobeDevices(true)
	}
	return 0x40 | p.readDevice(p.Port2)
}

func (p *Ports) readDevice(d Device) uint8 {
	if d == nil {
		return 0
	}
	return d.Read()
}

// InitBus maps $4016 (strobe write + port 1 read). $4017 has no mapping
// here: the orchestrator maps it, sending reads to ReadPort2 and writes to
// the APU frame counter.
func (p *Ports) InitBus(bus *hwio.Table) {
	bus.MapDevice(0x4016, &hwio.Device{
		Name:    "JOY1",
		Size:    1,
		ReadCb:  func(uint16) uint8 { return p.ReadPort1() },
		WriteCb: func(_ uint16, val uint8) { p.WriteStrobe(val) },
	})
}
