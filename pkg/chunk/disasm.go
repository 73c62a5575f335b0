// Disassembly support, in the spirit of the teacher's
// pkg/bytecode/format.go: a debug-only human-readable dump of a
// Chunk's instructions and constant pool. Never used by the VM's
// dispatch loop itself.
package chunk

import (
	"fmt"
	"strings"
)

// Disassemble renders every instruction in c under the given name,
// one per line: offset, source line (collapsed to "|" when unchanged
// from the previous instruction), mnemonic, and decoded operand.
func (c *Chunk) Disassemble(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		line, next := c.DisassembleInstruction(offset)
		b.WriteString(line)
		b.WriteByte('\n')
		offset = next
	}
	return b.String()
}

// DisassembleInstruction formats the single instruction at offset and
// returns it alongside the offset of the next instruction.
func (c *Chunk) DisassembleInstruction(offset int) (string, int) {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d ", offset)

	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		b.WriteString("   | ")
	} else {
		fmt.Fprintf(&b, "%4d ", c.Lines[offset])
	}

	op := OpCode(c.Code[offset])
	switch op {
	case OpConstant, OpDefineGlobal, OpGetGlobal, OpSetGlobal, OpFunction:
		return c.constantInstruction(op, offset, &b)
	case OpGetLocal, OpSetLocal, OpCall:
		return c.byteInstruction(op, offset, &b)
	case OpJump, OpJumpIfFalse:
		return c.jumpInstruction(op, offset, &b, 1)
	case OpLoop:
		return c.jumpInstruction(op, offset, &b, -1)
	default:
		b.WriteString(op.String())
		return b.String(), offset + 1
	}
}

func (c *Chunk) constantInstruction(op OpCode, offset int, b *strings.Builder) (string, int) {
	idx := c.Code[offset+1]
	fmt.Fprintf(b, "%-16s %4d '%s'", op.String(), idx, c.Constant(idx).String())
	return b.String(), offset + 2
}

func (c *Chunk) byteInstruction(op OpCode, offset int, b *strings.Builder) (string, int) {
	slot := c.Code[offset+1]
	fmt.Fprintf(b, "%-16s %4d", op.String(), slot)
	return b.String(), offset + 2
}

func (c *Chunk) jumpInstruction(op OpCode, offset int, b *strings.Builder, sign int) (string, int) {
	jump := int(c.ReadUint16(offset + 1))
	target := offset + 3 + sign*jump
	fmt.Fprintf(b, "%-16s %4d -> %d", op.String(), offset, target)
	return b.String(), offset + 3
}
