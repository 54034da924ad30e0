// Package snapshot defines the core's save-state envelope: a versioned,
// opaque blob wrapping each component's own SaveState/LoadState byte slices,
// encoded with github.com/go-faster/jx rather than encoding/json.
package snapshot

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-faster/jx"
)

// FormatVersion is bumped whenever the envelope's own shape changes (field
// additions/removals), independent of any single component's internal state
// layout.
const FormatVersion = 1

// ErrVersionMismatch is returned by DecodeFrom when the blob was written by
// an incompatible format version.
var ErrVersionMismatch = errors.New("snapshot: unsupported format version")

// ErrROMMismatch is returned by a caller-side CRC32 check (see
// nes.Console.Restore) when a snapshot was taken against a different ROM
// than the one currently loaded.
var ErrROMMismatch = errors.New("snapshot: rom does not match snapshot")

// Snapshot is the full emulator state at a point in time, opaque to callers
// beyond FormatVersion/ROMCRC32: every other field is a component's own
// SaveState() output, round-tripped verbatim through LoadState().
type Snapshot struct {
	FormatVersion uint32
	ROMCRC32      uint32

	CPU    []byte
	PPU    []byte
	APU    []byte
	Mapper []byte
	Input  []byte
}

// EncodeTo writes s as a compact JSON object (field values are the raw
// component bytes, base64-encoded by jx).
func (s *Snapshot) EncodeTo(w io.Writer) error {
	var e jx.Encoder
	e.ObjStart()

	e.FieldStart("format_version")
	e.UInt32(s.FormatVersion)

	e.FieldStart("rom_crc32")
	e.UInt32(s.ROMCRC32)

	e.FieldStart("cpu")
	e.Base64(s.CPU)

	e.FieldStart("ppu")
	e.Base64(s.PPU)

	e.FieldStart("apu")
	e.Base64(s.APU)

	e.FieldStart("mapper")
	e.Base64(s.Mapper)

	e.FieldStart("input")
	e.Base64(s.Input)

	e.ObjEnd()
	_, err := w.Write(e.Bytes())
	return err
}

// DecodeFrom reads and validates a Snapshot previously written by EncodeTo.
// It does not check ROMCRC32 against any currently-loaded cartridge; that
// comparison belongs to the caller (nes.Console.Restore), which has the
// cartridge in hand.
func DecodeFrom(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read: %w", err)
	}

	s := &Snapshot{}
	d := jx.DecodeBytes(data)
	err = d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "format_version":
			s.FormatVersion, err = d.UInt32()
		case "rom_crc32":
			s.ROMCRC32, err = d.UInt32()
		case "cpu":
			s.CPU, err = d.Base64()
		case "ppu":
			s.PPU, err = d.Base64()
		case "apu":
			s.APU, err = d.Base64()
		case "mapper":
			s.Mapper, err = d.Base64()
		case "input":
			s.Input, err = d.Base64()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if s.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, s.FormatVersion, FormatVersion)
	}
	return s, nil
}
