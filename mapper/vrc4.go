package mapper

import (
	"nescore/cpu"
	"nescore/ppu"
)

// vrc4 covers mappers 21/23/25: Konami's VRC4 family. The board decodes its
// register index from two address-pin bits whose position varies per
// physical revision/submapper (VRC4a/VRC4c use A1/A6, VRC4b/VRC4d use A0/A1,
// VRC4e uses A2/A3); this port always reads bits 0 and 1 of the address,
// which covers the common VRC4b/VRC4d wiring used by most dumps tagged with
// these mapper numbers. PRG comes in two 8 KiB-granularity layouts selected
// by a mode bit; CHR is eight independently-selectable 1 KiB banks, each
// written through one of two sub-addresses (bit 1) within its $A000-$DFFF
// address group. The $E000 group sets the IRQ latch's low/high nibble; the
// $F000 group's low sub-address is the IRQ control write (enable, cycle vs.
// scanline mode, re-enable-on-acknowledge) and its high sub-address is the
// acknowledge write. Once enabled, the counter free-runs either once per
// scanline (prescaled by a /341 cycle counter) or once per CPU cycle,
// reloading from the latch and firing an IRQ on overflow past 0xFF.
type vrc4 struct {
	*base

	prgMode uint8
	prgReg  [2]uint8 // $8000/$9000-ish "select 8KB PRG bank" registers
	chrReg  [8]uint8

	irqLatch    uint8
	irqCounter  uint8
	irqEnabled  bool
	irqAckOnAck bool
	irqCycleMode bool
	prescaler   int
}

func newVRC4(b *base) *vrc4 {
	m := &vrc4{base: b}
	m.selectPRGPage8KB(2, -2)
	m.selectPRGPage8KB(3, -1)
	m.remapPRG()
	return m
}

// regIndex decodes the low/high-nibble register selector from the low 2
// address bits, per the VRC4b/VRC4d pin wiring.
func regIndex(addr uint16) (group uint16, nibbleHi bool) {
	return addr & 0xF000, addr&0x02 != 0
}

func (m *vrc4) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.cpuReadPRG(addr)
	case addr >= 0x6000:
		return m.cpuReadPRGRAM(addr)
	}
	return 0
}

func (m *vrc4) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.cpuWritePRGRAM(addr, val)
		return
	}
	if addr < 0x8000 {
		return
	}

	group, hi := regIndex(addr)
	switch group {
	case 0x8000, 0x9000:
		if group == 0x8000 {
			m.prgReg[0] = val & 0x1F
		} else if !hi {
			m.prgReg[1] = val & 0x1F
		} else {
			switch val & 0x03 {
			case 0:
				m.setMirroring(ppu.MirrorVertical)
			case 1:
				m.setMirroring(ppu.MirrorHorizontal)
			case 2:
				m.setMirroring(ppu.MirrorSingleA)
			case 3:
				m.setMirroring(ppu.MirrorSingleB)
			}
			m.prgMode = (val >> 1) & 0x01
		}
		m.remapPRG()
	case 0xA000, 0xB000, 0xC000, 0xD000:
		m.writeCHRReg(group, hi, val)
	case 0xE000:
		if !hi {
			m.irqLatch = (m.irqLatch &^ 0x0F) | (val & 0x0F)
		} else {
			m.irqLatch = (m.irqLatch & 0x0F) | (val << 4)
		}
	case 0xF000:
		if !hi {
			m.irqCycleMode = val&0x04 != 0
			m.irqAckOnAck = val&0x01 != 0
			m.irqEnabled = val&0x02 != 0
			if m.irqEnabled {
				m.prescaler = 341
				m.irqCounter = m.irqLatch
			}
			if m.cpu != nil {
				m.cpu.ClearIRQ(cpu.IRQMapper)
			}
		} else {
			m.irqEnabled = m.irqAckOnAck
			if m.cpu != nil {
				m.cpu.ClearIRQ(cpu.IRQMapper)
			}
		}
	}
}

func (m *vrc4) writeCHRReg(group uint16, hi bool, val uint8) {
	// CHR registers 0-7 are written in pairs through the $A000-$DFFF
	// groups: each group's even address sets a bank's low nibble, its
	// "+2" address the high nibble, of two consecutive registers.
	pair := int((group - 0xA000) / 0x1000) * 2
	idx := pair
	if hi {
		idx++
	}
	m.chrReg[idx] = val
	m.remapCHR()
}

func (m *vrc4) remapPRG() {
	last8 := m.prgBankCount(8) - 1
	if m.prgMode == 0 {
		m.selectPRGPage8KB(0, int(m.prgReg[0]))
		m.selectPRGPage8KB(1, int(m.prgReg[1]))
		m.selectPRGPage8KB(2, last8-1)
	} else {
		m.selectPRGPage8KB(2, int(m.prgReg[0]))
		m.selectPRGPage8KB(1, int(m.prgReg[1]))
		m.selectPRGPage8KB(0, last8-1)
	}
}

func (m *vrc4) remapCHR() {
	for i, v := range m.chrReg {
		m.selectCHRROMPage1KB(i, int(v))
	}
}

func (m *vrc4) ReadCHR(addr uint16) uint8        { return m.readCHR(addr) }
func (m *vrc4) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }

// Tick is called once per CPU cycle by the orchestrator when this mapper is
// active; it advances the IRQ prescaler through OnCPUCycle.
func (m *vrc4) Tick() { m.OnCPUCycle() }

// OnCPUCycle advances the IRQ prescaler by one CPU cycle.
func (m *vrc4) OnCPUCycle() {
	if !m.irqEnabled {
		return
	}
	if m.irqCycleMode {
		m.clockIRQCounter()
		return
	}
	m.prescaler -= 3
	if m.prescaler <= 0 {
		m.prescaler += 341
		m.clockIRQCounter()
	}
}

func (m *vrc4) clockIRQCounter() {
	if m.irqCounter == 0xFF {
		m.irqCounter = m.irqLatch
		if m.cpu != nil {
			m.cpu.RequestIRQ(cpu.IRQMapper)
		}
	} else {
		m.irqCounter++
	}
}

func (m *vrc4) SaveState() []byte {
	out := []byte{m.prgMode, m.irqLatch, m.irqCounter,
		boolToByte(m.irqEnabled), boolToByte(m.irqAckOnAck), boolToByte(m.irqCycleMode)}
	out = append(out, m.prgReg[:]...)
	out = append(out, m.chrReg[:]...)
	return out
}

func (m *vrc4) LoadState(data []byte) error {
	if len(data) < 6+2+8 {
		return errShortState
	}
	m.prgMode, m.irqLatch, m.irqCounter = data[0], data[1], data[2]
	m.irqEnabled, m.irqAckOnAck, m.irqCycleMode = data[3] != 0, data[4] != 0, data[5] != 0
	copy(m.prgReg[:], data[6:8])
	copy(m.chrReg[:], data[8:16])
	m.remapPRG()
	m.remapCHR()
	return nil
}
