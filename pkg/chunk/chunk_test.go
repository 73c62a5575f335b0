package chunk

import (
	"strings"
	"testing"

	"github.com/kristofer/chef/pkg/value"
)

func TestWriteTracksLinesParallelToCode(t *testing.T) {
	c := New()
	c.WriteOp(OpNil, 1)
	c.WriteOp(OpTrue, 2)
	if len(c.Code) != len(c.Lines) {
		t.Fatalf("Code and Lines length mismatch: %d vs %d", len(c.Code), len(c.Lines))
	}
	if c.Lines[0] != 1 || c.Lines[1] != 2 {
		t.Errorf("unexpected line table: %v", c.Lines)
	}
}

func TestAddConstantInterns(t *testing.T) {
	c := New()
	i1, err := c.AddConstant(value.Number(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i2, err := c.AddConstant(value.Number(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i1 != i2 {
		t.Errorf("expected equal constants to be interned to the same index, got %d and %d", i1, i2)
	}
	if c.ConstantCount() != 1 {
		t.Errorf("expected 1 interned constant, got %d", c.ConstantCount())
	}
}

func TestAddConstantFullReturnsError(t *testing.T) {
	c := New()
	for i := 0; i < MaxConstants; i++ {
		if _, err := c.AddConstant(value.Number(float64(i))); err != nil {
			t.Fatalf("unexpected error filling pool at %d: %v", i, err)
		}
	}
	if _, err := c.AddConstant(value.Number(999)); err != ErrConstantsFull {
		t.Errorf("expected ErrConstantsFull, got %v", err)
	}
}

func TestUint16RoundTrip(t *testing.T) {
	c := New()
	c.WriteUint16(0xBEEF, 1)
	if got := c.ReadUint16(0); got != 0xBEEF {
		t.Errorf("ReadUint16 = %#x, want 0xBEEF", got)
	}
	c.PatchUint16(0, 0x1234)
	if got := c.ReadUint16(0); got != 0x1234 {
		t.Errorf("after patch, ReadUint16 = %#x, want 0x1234", got)
	}
}

func TestDisassembleCollapsesRepeatedLines(t *testing.T) {
	c := New()
	idx, _ := c.AddConstant(value.Number(1))
	c.WriteOp(OpConstant, 1)
	c.Write(idx, 1)
	c.WriteOp(OpPop, 1)

	out := c.Disassemble("test")
	for _, want := range []string{"OP_CONSTANT", "OP_POP", "   | "} {
		if !strings.Contains(out, want) {
			t.Errorf("expected disassembly to contain %q:\n%s", want, out)
		}
	}
}
