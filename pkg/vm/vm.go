// Package vm implements the bytecode virtual machine for chef.
//
// The VM is a stack-based interpreter: one shared value stack across
// every call frame, and one CallFrame per active function invocation.
// Each CallFrame owns its own *chunk.Function (and therefore its own
// *chunk.Chunk and constant pool) plus a base index into the shared
// stack where its locals begin — there is no separate locals array,
// unlike the message-send VM this package used to run.
//
//	Source -> Scanner -> Compiler -> Chunk -> VM -> side effects
//
// Execution is a straight byte-at-a-time dispatch loop reading one
// opcode at a time from the current frame's chunk, decoding its
// operand bytes inline, and either mutating the stack in place or
// pushing/popping a CallFrame for OpCall/OpReturn. There is no
// separate instruction decode pass: the dispatch loop below is the
// implementation of the instruction set documented in pkg/chunk.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/kristofer/chef/pkg/chunk"
	"github.com/kristofer/chef/pkg/value"
)

// maxFrames bounds call nesting depth; exceeding it is a runtime
// "Stack overflow." error rather than a Go stack crash.
const maxFrames = 64

// stackMax bounds the shared value stack, sized the way the book VM
// this is descended from sizes it: enough slots for maxFrames frames
// of up to 256 locals each.
const stackMax = maxFrames * 256

// CallFrame is one live invocation: which function is running, where
// its bytecode cursor is, and where its stack window begins.
type CallFrame struct {
	function *chunk.Function
	ip       int
	base     int
}

// VM is a single chef bytecode interpreter. It is not safe for
// concurrent use; callers running multiple scripts concurrently should
// each construct their own VM.
type VM struct {
	frames     [maxFrames]CallFrame
	frameCount int

	stack    [stackMax]value.Value
	stackTop int

	globals map[string]value.Value

	// Stdout is where OpPrint writes; Stderr is where Trace lines go.
	// Runtime errors are not written here: Interpret returns them.
	// Defaulted to os.Stdout/os.Stderr by New, and overridable so
	// tests (and an embedding REPL) can capture output.
	Stdout io.Writer
	Stderr io.Writer

	// Trace, when set, writes a disassembled line for every
	// instruction to Stderr before it executes. The CLI sets it when
	// CHEF_DEBUG_TRACE is set; its -disasm flag does not touch it.
	Trace bool
}

// New returns a VM with an empty global namespace and natives
// registered by the caller via Define.
func New() *VM {
	return &VM{
		globals: make(map[string]value.Value),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Define binds a global ahead of running any script — how native
// functions and REPL-injected constants reach user code.
func (vm *VM) Define(name string, v value.Value) {
	vm.globals[name] = v
}

// Interpret runs fn (normally the script-level function Compile
// returned) to completion. Returned errors are always *RuntimeError.
func (vm *VM) Interpret(fn *chunk.Function) error {
	vm.frameCount = 0
	vm.stackTop = 0
	vm.push(chunk.Wrap(fn))
	if err := vm.call(fn, 0); err != nil {
		return err
	}
	return vm.run()
}

func (vm *VM) push(v value.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(depth int) value.Value {
	return vm.stack[vm.stackTop-1-depth]
}

func (vm *VM) frame() *CallFrame {
	return &vm.frames[vm.frameCount-1]
}

// run is the dispatch loop. It returns nil on a clean OpReturn from
// the outermost (script) frame, or a *RuntimeError the first time an
// instruction faults.
func (vm *VM) run() error {
	for {
		f := vm.frame()
		c := f.function.Chunk

		if vm.Trace {
			line, _ := c.DisassembleInstruction(f.ip)
			fmt.Fprintln(vm.Stderr, line)
		}

		op := chunk.OpCode(c.Code[f.ip])
		f.ip++

		switch op {
		case chunk.OpConstant:
			idx := c.Code[f.ip]
			f.ip++
			vm.push(c.Constant(idx))

		case chunk.OpNil:
			vm.push(value.Nil)

		case chunk.OpTrue:
			vm.push(value.Bool(true))

		case chunk.OpFalse:
			vm.push(value.Bool(false))

		case chunk.OpPop:
			vm.pop()

		case chunk.OpGetLocal:
			slot := c.Code[f.ip]
			f.ip++
			vm.push(vm.stack[f.base+int(slot)])

		case chunk.OpSetLocal:
			slot := c.Code[f.ip]
			f.ip++
			vm.stack[f.base+int(slot)] = vm.peek(0)

		case chunk.OpDefineGlobal:
			idx := c.Code[f.ip]
			f.ip++
			name := c.Constant(idx).AsString()
			vm.globals[name] = vm.pop()

		case chunk.OpGetGlobal:
			idx := c.Code[f.ip]
			f.ip++
			name := c.Constant(idx).AsString()
			v, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name)
			}
			vm.push(v)

		case chunk.OpSetGlobal:
			idx := c.Code[f.ip]
			f.ip++
			name := c.Constant(idx).AsString()
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError("Undefined variable '%s'.", name)
			}
			vm.globals[name] = vm.peek(0)

		case chunk.OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))

		case chunk.OpGreater:
			if err := vm.numericBinary(func(a, b float64) value.Value { return value.Bool(a > b) }); err != nil {
				return err
			}

		case chunk.OpLess:
			if err := vm.numericBinary(func(a, b float64) value.Value { return value.Bool(a < b) }); err != nil {
				return err
			}

		case chunk.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}

		case chunk.OpSubtract:
			if err := vm.numericBinary(func(a, b float64) value.Value { return value.Number(a - b) }); err != nil {
				return err
			}

		case chunk.OpMultiply:
			if err := vm.numericBinary(func(a, b float64) value.Value { return value.Number(a * b) }); err != nil {
				return err
			}

		case chunk.OpDivide:
			if err := vm.numericBinary(func(a, b float64) value.Value { return value.Number(a / b) }); err != nil {
				return err
			}

		case chunk.OpNot:
			vm.push(value.Bool(vm.pop().IsFalsey()))

		case chunk.OpNegate:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(value.Number(-vm.pop().AsNumber()))

		case chunk.OpPrint:
			fmt.Fprintln(vm.Stdout, vm.pop().String())

		case chunk.OpJump:
			offset := c.ReadUint16(f.ip)
			f.ip += 2 + int(offset)

		case chunk.OpJumpIfFalse:
			offset := c.ReadUint16(f.ip)
			f.ip += 2
			if vm.peek(0).IsFalsey() {
				f.ip += int(offset)
			}

		case chunk.OpLoop:
			offset := c.ReadUint16(f.ip)
			f.ip += 2 - int(offset)

		case chunk.OpCall:
			argCount := int(c.Code[f.ip])
			f.ip++
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return err
			}

		case chunk.OpFunction:
			idx := c.Code[f.ip]
			f.ip++
			vm.push(c.Constant(idx))

		case chunk.OpReturn:
			result := vm.pop()
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop() // the top-level script function itself
				return nil
			}
			vm.stackTop = f.base
			vm.push(result)

		default:
			return vm.runtimeError("Unknown opcode %d.", byte(op))
		}
	}
}

func (vm *VM) numericBinary(op func(a, b float64) value.Value) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b, a := vm.pop(), vm.pop()
	vm.push(op(a.AsNumber(), b.AsNumber()))
	return nil
}

func (vm *VM) add() error {
	if vm.peek(0).IsString() && vm.peek(1).IsString() {
		b, a := vm.pop(), vm.pop()
		vm.push(value.String(a.AsString() + b.AsString()))
		return nil
	}
	if vm.peek(0).IsNumber() && vm.peek(1).IsNumber() {
		b, a := vm.pop(), vm.pop()
		vm.push(value.Number(a.AsNumber() + b.AsNumber()))
		return nil
	}
	return vm.runtimeError("Operands must be two numbers or two strings.")
}

// callValue dispatches OpCall's callee: a compiled function pushes a
// new CallFrame, a native runs to completion immediately.
func (vm *VM) callValue(callee value.Value, argCount int) error {
	switch {
	case callee.IsFunction():
		fn := chunk.Unwrap(callee)
		return vm.call(fn, argCount)
	case callee.IsNative():
		n := callee.AsNative()
		args := vm.stack[vm.stackTop-argCount : vm.stackTop]
		result, err := n.Impl(args)
		if err != nil {
			return vm.runtimeError("%s", err.Error())
		}
		vm.stackTop -= argCount + 1
		vm.push(result)
		return nil
	default:
		return vm.runtimeError("Can only call functions.")
	}
}

func (vm *VM) call(fn *chunk.Function, argCount int) error {
	if argCount != fn.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", fn.Arity, argCount)
	}
	if vm.frameCount == maxFrames {
		return vm.runtimeError("Stack overflow.")
	}
	vm.frames[vm.frameCount] = CallFrame{function: fn, ip: 0, base: vm.stackTop - argCount - 1}
	vm.frameCount++
	return nil
}

// runtimeError builds a *RuntimeError carrying the current call stack,
// innermost frame first, each tagged with the source line its ip was
// on at the moment of failure.
func (vm *VM) runtimeError(format string, args ...interface{}) error {
	trace := make([]StackFrame, 0, vm.frameCount)
	for i := vm.frameCount - 1; i >= 0; i-- {
		f := &vm.frames[i]
		line := 0
		if f.ip-1 >= 0 && f.ip-1 < len(f.function.Chunk.Lines) {
			line = f.function.Chunk.Lines[f.ip-1]
		}
		trace = append(trace, StackFrame{FuncName: f.function.Name, Line: line})
	}
	return newRuntimeError(fmt.Sprintf(format, args...), trace)
}
