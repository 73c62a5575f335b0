package chunk

import "github.com/kristofer/chef/pkg/value"

// Function is a compiled chef function: its name, declared parameter
// count, and the Chunk holding its body's bytecode. The top-level
// program is itself a Function with an empty Name and zero Arity.
// Functions are immutable once the Compiler that produced them
// returns.
type Function struct {
	Name  string
	Arity int
	Chunk *Chunk
}

// NewFunction allocates an empty Function with a fresh Chunk.
func NewFunction(name string) *Function {
	return &Function{Name: name, Chunk: New()}
}

// FuncName implements value.Namer so pkg/value can print a function
// value without importing this package.
func (f *Function) FuncName() string { return f.Name }

// Wrap boxes a *Function as a value.Value.
func Wrap(fn *Function) value.Value {
	return value.FunctionValue(fn)
}

// Unwrap recovers the *Function boxed in v. Panics if v does not hold
// a function — callers must check v.IsFunction() first, exactly like
// every other Value accessor.
func Unwrap(v value.Value) *Function {
	return v.AsFunction().(*Function)
}
