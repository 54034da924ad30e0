package cpu

import (
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"
)

// operandLength returns how many bytes of operand follow the opcode byte
// itself for mode, so the matrix test can build a minimal valid instruction
// stream for every entry in opcodeTable.
func operandLength(mode Mode) int {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return 0
	case ModeImmediate, ModeZeroPage, ModeZeroPageX, ModeZeroPageY,
		ModeIndexedIndirect, ModeIndirectIndexed, ModeRelative:
		return 1
	default: // Absolute, AbsoluteX, AbsoluteY, Indirect
		return 2
	}
}

// TestOpcodeMatrix exercises every one of the 256 opcode table entries, each
// in its own isolated CPU and bus, concurrently: one goroutine per entry,
// fanned out through an errgroup so a single bad addressing mode or exec
// func fails the whole run with its opcode attached. Every entry's own CPU
// and bus instance is touched only by that goroutine, so there's no shared
// mutable state to race on.
func TestOpcodeMatrix(t *testing.T) {
	var g errgroup.Group

	for opcode := 0; opcode < 256; opcode++ {
		opcode := opcode
		g.Go(func() error {
			op := opcodeTable[opcode]

			// A zeroed operand keeps a relative branch's target inside the
			// test program rather than off in unmapped memory.
			prg := make([]byte, 1+operandLength(op.mode))
			prg[0] = uint8(opcode)

			c, _ := newTestCPU(prg, 0x8000)
			elapsed := c.Step()

			if elapsed < op.cycles {
				return fmt.Errorf("opcode %#02x (%s, mode %d): Step took %d cycles, want >= %d",
					opcode, op.name, op.mode, elapsed, op.cycles)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
