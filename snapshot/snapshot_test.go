package snapshot

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := &Snapshot{
		FormatVersion: FormatVersion,
		ROMCRC32:      0xDEADBEEF,
		CPU:           []byte{1, 2, 3},
		PPU:           []byte{4, 5},
		APU:           []byte{0},
		Mapper:        []byte{9, 9, 9, 9},
		Input:         []byte{7},
	}

	var buf bytes.Buffer
	if err := s.EncodeTo(&buf); err != nil {
		t.Fatalf("EncodeTo: %v", err)
	}

	got, err := DecodeFrom(&buf)
	if err != nil {
		t.Fatalf("DecodeFrom: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	s := &Snapshot{FormatVersion: FormatVersion + 1}
	var buf bytes.Buffer
	if err := s.EncodeTo(&buf); err != nil {
		t.Fatalf("EncodeTo: %v", err)
	}
	_, err := DecodeFrom(&buf)
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("DecodeFrom error = %v, want ErrVersionMismatch", err)
	}
}
