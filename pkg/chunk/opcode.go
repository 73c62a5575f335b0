package chunk

// OpCode identifies a bytecode instruction. Every instruction is a
// single opcode byte, optionally followed by inline little-endian
// operand bytes, per the wire contract between the compiler and the
// VM described in the instruction-set table below.
//
// The original design reinterpreted raw bytes directly as this
// enumeration at dispatch time. Here the VM instead reads the opcode
// byte and decodes it into this tagged OpCode before switching on it
// — an out-of-range byte becomes a detectable runtime error rather
// than undefined behavior, at no measurable cost.
type OpCode byte

const (
	// OpConstant pushes pool[operand] onto the stack.
	// Operand: 1-byte constant pool index.
	OpConstant OpCode = iota

	// OpNil, OpTrue, OpFalse push their literal value. No operand.
	OpNil
	OpTrue
	OpFalse

	// OpPop discards the top of the stack. No operand.
	OpPop

	// OpGetLocal reads stack[frame.base+operand] and pushes it.
	// Operand: 1-byte slot index.
	OpGetLocal

	// OpSetLocal writes the top of the stack to stack[frame.base+operand],
	// leaving the value on the stack. Operand: 1-byte slot index.
	OpSetLocal

	// OpDefineGlobal pops the top of the stack and binds it to
	// globals[pool[operand]]. Operand: 1-byte name-constant index.
	OpDefineGlobal

	// OpGetGlobal pushes globals[pool[operand]]; runtime error if
	// absent. Operand: 1-byte name-constant index.
	OpGetGlobal

	// OpSetGlobal assigns globals[pool[operand]] from the top of the
	// stack without popping it; runtime error if the name is
	// undefined. Operand: 1-byte name-constant index.
	OpSetGlobal

	// OpEqual, OpGreater, OpLess pop two values and push a Boolean.
	OpEqual
	OpGreater
	OpLess

	// OpAdd, OpSubtract, OpMultiply, OpDivide pop two values and push
	// the arithmetic (or, for OpAdd, string concatenation) result.
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide

	// OpNot, OpNegate pop one value and push the unary result.
	OpNot
	OpNegate

	// OpPrint pops the top of the stack, writes its String() form
	// followed by a newline to stdout.
	OpPrint

	// OpJump unconditionally advances ip by its operand.
	// Operand: 2-byte little-endian offset.
	OpJump

	// OpJumpIfFalse peeks the top of the stack (does not pop it) and
	// advances ip by its operand if the value is falsey.
	// Operand: 2-byte little-endian offset.
	OpJumpIfFalse

	// OpLoop subtracts its operand from ip — a backward jump.
	// Operand: 2-byte little-endian offset.
	OpLoop

	// OpCall invokes the callable at stack depth operand below the
	// top (the arguments above it). Operand: 1-byte argument count.
	OpCall

	// OpReturn pops the return value, pops the current call frame,
	// and pushes the return value onto the caller's stack. Ending the
	// top-level frame this way ends execution.
	OpReturn

	// OpFunction pushes pool[operand] — a compiled Function constant
	// — onto the stack. Emitted once, at the end of compiling each
	// nested `recipe`. Operand: 1-byte constant pool index.
	OpFunction
)

// String renders a human-readable mnemonic, used by the disassembler.
func (op OpCode) String() string {
	switch op {
	case OpConstant:
		return "OP_CONSTANT"
	case OpNil:
		return "OP_NIL"
	case OpTrue:
		return "OP_TRUE"
	case OpFalse:
		return "OP_FALSE"
	case OpPop:
		return "OP_POP"
	case OpGetLocal:
		return "OP_GET_LOCAL"
	case OpSetLocal:
		return "OP_SET_LOCAL"
	case OpDefineGlobal:
		return "OP_DEFINE_GLOBAL"
	case OpGetGlobal:
		return "OP_GET_GLOBAL"
	case OpSetGlobal:
		return "OP_SET_GLOBAL"
	case OpEqual:
		return "OP_EQUAL"
	case OpGreater:
		return "OP_GREATER"
	case OpLess:
		return "OP_LESS"
	case OpAdd:
		return "OP_ADD"
	case OpSubtract:
		return "OP_SUBTRACT"
	case OpMultiply:
		return "OP_MULTIPLY"
	case OpDivide:
		return "OP_DIVIDE"
	case OpNot:
		return "OP_NOT"
	case OpNegate:
		return "OP_NEGATE"
	case OpPrint:
		return "OP_PRINT"
	case OpJump:
		return "OP_JUMP"
	case OpJumpIfFalse:
		return "OP_JUMP_IF_FALSE"
	case OpLoop:
		return "OP_LOOP"
	case OpCall:
		return "OP_CALL"
	case OpReturn:
		return "OP_RETURN"
	case OpFunction:
		return "OP_FUNCTION"
	default:
		return "OP_UNKNOWN"
	}
}
