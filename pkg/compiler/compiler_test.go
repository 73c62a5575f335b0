package compiler

import (
	"strings"
	"testing"

	"github.com/kristofer/chef/pkg/chunk"
)

func mustCompile(t *testing.T, src string) *chunk.Function {
	t.Helper()
	fn, err := Compile(src)
	if err != nil {
		t.Fatalf("Compile(%q) returned error: %v", src, err)
	}
	return fn
}

func ops(fn *chunk.Function) []chunk.OpCode {
	c := fn.Chunk
	var out []chunk.OpCode
	for i := 0; i < len(c.Code); {
		out = append(out, chunk.OpCode(c.Code[i]))
		_, next := c.DisassembleInstruction(i)
		i = next
	}
	return out
}

func TestCompileNumberLiteral(t *testing.T) {
	fn := mustCompile(t, "42;")
	got := ops(fn)
	if len(got) < 2 || got[0] != chunk.OpConstant || got[1] != chunk.OpPop {
		t.Fatalf("expected [OP_CONSTANT OP_POP ...], got %v", got)
	}
}

func TestCompileGlobalVariable(t *testing.T) {
	fn := mustCompile(t, "ingredient a = 1; garnish a;")
	got := ops(fn)
	want := []chunk.OpCode{chunk.OpConstant, chunk.OpDefineGlobal, chunk.OpGetGlobal, chunk.OpPrint}
	for i, op := range want {
		if got[i] != op {
			t.Fatalf("op %d: want %s, got %s (full: %v)", i, op, got[i], got)
		}
	}
}

func TestCompileLocalVariableUsesSlots(t *testing.T) {
	fn := mustCompile(t, "{ ingredient a = 1; ingredient b = 2; garnish a pairs_with b; }")
	got := ops(fn)
	for _, op := range got {
		if op == chunk.OpDefineGlobal || op == chunk.OpGetGlobal {
			t.Fatalf("expected no global ops for block-scoped locals, got %v", got)
		}
	}
}

func TestCompileIfElseProducesJumps(t *testing.T) {
	fn := mustCompile(t, `taste (delicious) { garnish 1; } needs_more_salt { garnish 2; }`)
	got := ops(fn)
	var sawJumpIfFalse, sawJump bool
	for _, op := range got {
		if op == chunk.OpJumpIfFalse {
			sawJumpIfFalse = true
		}
		if op == chunk.OpJump {
			sawJump = true
		}
	}
	if !sawJumpIfFalse || !sawJump {
		t.Fatalf("expected both OP_JUMP_IF_FALSE and OP_JUMP in if/else, got %v", got)
	}
}

func TestCompileWhileEmitsLoop(t *testing.T) {
	fn := mustCompile(t, `mix_while (bland) { garnish 1; }`)
	got := ops(fn)
	var sawLoop bool
	for _, op := range got {
		if op == chunk.OpLoop {
			sawLoop = true
		}
	}
	if !sawLoop {
		t.Fatalf("expected OP_LOOP in while body, got %v", got)
	}
}

func TestCompileForEmitsLoop(t *testing.T) {
	fn := mustCompile(t, `stir (ingredient i = 0; i < 3; i = i + 1) { garnish i; }`)
	got := ops(fn)
	var sawLoop bool
	for _, op := range got {
		if op == chunk.OpLoop {
			sawLoop = true
		}
	}
	if !sawLoop {
		t.Fatalf("expected OP_LOOP in for body, got %v", got)
	}
}

func TestCompileFunctionDeclarationEmitsConstant(t *testing.T) {
	fn, err := Compile(`recipe add(a, b) { plate_up a pairs_with b; }`)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	found := false
	for i := 0; i < fn.Chunk.ConstantCount(); i++ {
		if fn.Chunk.Constant(byte(i)).IsFunction() {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a function constant to be interned")
	}
}

func TestCompileErrorReturnOutsideFunction(t *testing.T) {
	_, err := Compile(`plate_up 1;`)
	if err == nil {
		t.Fatal("expected an error compiling a top-level plate_up")
	}
}

func TestCompileErrorDuplicateLocal(t *testing.T) {
	_, err := Compile(`{ ingredient a = 1; ingredient a = 2; }`)
	if err == nil {
		t.Fatal("expected an error for redeclaring a local in the same scope")
	}
}

func TestCompileErrorSelfReferentialInitializer(t *testing.T) {
	_, err := Compile(`{ ingredient a = a; }`)
	if err == nil {
		t.Fatal("expected an error reading a local in its own initializer")
	}
}

func TestCompileErrorUnsupportedClass(t *testing.T) {
	_, err := Compile(`dish Oven {}`)
	if err == nil {
		t.Fatal("expected an error for dish declarations")
	}
}

func TestCompileErrorUnclosedParen(t *testing.T) {
	_, err := Compile(`garnish (1;`)
	if err == nil {
		t.Fatal("expected a parse error for the missing ')'")
	}
}

func TestDisassembleContainsMnemonics(t *testing.T) {
	fn := mustCompile(t, `ingredient a = 1 + 2; garnish a;`)
	out := fn.Chunk.Disassemble("test")
	if !strings.Contains(out, "OP_ADD") {
		t.Fatalf("expected disassembly to mention OP_ADD, got:\n%s", out)
	}
}
