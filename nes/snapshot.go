package nes

import (
	"errors"
	"fmt"
	"io"

	"nescore/mapper"
	"nescore/snapshot"
)

// Snapshot captures the full machine state into a versioned, opaque blob the
// host can persist however it likes.
func (c *Console) Snapshot() *snapshot.Snapshot {
	s := &snapshot.Snapshot{
		FormatVersion: snapshot.FormatVersion,
		CPU:           c.CPU.SaveState(),
		PPU:           c.PPU.SaveState(),
		APU:           c.APU.SaveState(),
		Input:         c.saveInputState(),
	}
	if c.rom != nil {
		s.ROMCRC32 = c.rom.CRC32
	}
	if snapper, ok := c.Mapper.(mapper.Snapshotter); ok {
		s.Mapper = snapper.SaveState()
	}
	return s
}

// Restore reinstates state previously captured by Snapshot, returning
// snapshot.ErrROMMismatch if s was taken against a different cartridge than
// the one currently inserted.
func (c *Console) Restore(s *snapshot.Snapshot) error {
	if c.rom == nil {
		return errors.New("nes: no cartridge inserted")
	}
	if s.ROMCRC32 != c.rom.CRC32 {
		return fmt.Errorf("%w: snapshot is for crc32 %08x, loaded rom is %08x", snapshot.ErrROMMismatch, s.ROMCRC32, c.rom.CRC32)
	}
	if err := c.CPU.LoadState(s.CPU); err != nil {
		return fmt.Errorf("nes: cpu: %w", err)
	}
	if err := c.PPU.LoadState(s.PPU); err != nil {
		return fmt.Errorf("nes: ppu: %w", err)
	}
	if err := c.APU.LoadState(s.APU); err != nil {
		return fmt.Errorf("nes: apu: %w", err)
	}
	if loader, ok := c.Mapper.(mapper.Snapshotter); ok {
		if err := loader.LoadState(s.Mapper); err != nil {
			return fmt.Errorf("nes: mapper: %w", err)
		}
	}
	c.loadInputState(s.Input)
	return nil
}

// SaveSnapshot encodes Snapshot() and writes it to w.
func (c *Console) SaveSnapshot(w io.Writer) error {
	return c.Snapshot().EncodeTo(w)
}

// LoadSnapshot decodes a snapshot from r and applies it via Restore.
func (c *Console) LoadSnapshot(r io.Reader) error {
	s, err := snapshot.DecodeFrom(r)
	if err != nil {
		return err
	}
	return c.Restore(s)
}

// saveInputState packs Controller1, Controller2-or-zeros, and
// Zapper-or-zeros into one fixed-layout blob: each sub-state is always
// exactly 3 bytes, so no length prefixing is needed.
func (c *Console) saveInputState() []byte {
	buf := make([]byte, 0, 9)
	buf = append(buf, c.Controller1.SaveState()...)
	if c.Controller2 != nil {
		buf = append(buf, c.Controller2.SaveState()...)
	} else {
		buf = append(buf, 0, 0, 0)
	}
	if c.Zapper != nil {
		buf = append(buf, c.Zapper.SaveState()...)
	} else {
		buf = append(buf, 0, 0, 0)
	}
	return buf
}

func (c *Console) loadInputState(data []byte) {
	if len(data) < 9 {
		return
	}
	c.Controller1.LoadState(data[0:3])
	if c.Controller2 != nil {
		c.Controller2.LoadState(data[3:6])
	}
	if c.Zapper != nil {
		c.Zapper.LoadState(data[6:9])
	}
}
