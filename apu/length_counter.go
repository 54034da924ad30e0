package apu

// lengthCounterLUT maps a 5-bit length-load field (written to the high
// byte of a channel's timer register) to the number of half-frame clocks
// the channel keeps playing.
var lengthCounterLUT = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// lengthCounter gates a channel's output to silence once it reaches zero,
// unless the channel's halt flag (shared with the envelope's loop flag on
// pulse/noise, or the linear-counter control flag on triangle) is set.
type lengthCounter struct {
	enabled bool
	halt    bool
	counter uint8
}

func (l *lengthCounter) setEnabled(enabled bool) {
	l.enabled = enabled
	if !enabled {
		l.counter = 0
	}
}

// load sets the counter from the length-load LUT; real hardware suppresses
// this when the channel is disabled.
func (l *lengthCounter) load(index uint8) {
	if !l.enabled {
		return
	}
	l.counter = lengthCounterLUT[index&0x1F]
}

func (l *lengthCounter) tick() {
	if l.counter > 0 && !l.halt {
		l.counter--
	}
}

func (l *lengthCounter) silenced() bool { return l.counter == 0 }
