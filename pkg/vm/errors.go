// Package vm - error handling with stack traces.
package vm

import (
	"fmt"
	"strings"
)

// StackFrame captures one call frame at the moment a runtime error was
// raised, innermost first, for rendering a trace back to the script.
type StackFrame struct {
	FuncName string // empty for the top-level script frame
	Line     int
}

// RuntimeError is returned when a bytecode instruction faults: a type
// error, an undefined global, an arity mismatch, a call-frame
// overflow ("Stack overflow."). The message matches what the failing operation reported;
// the trace is the call stack at the moment of failure.
type RuntimeError struct {
	Message string
	Trace   []StackFrame
}

// Error renders the message followed by one "[line N] in NAME()" line
// per frame ("[line N] in script" for the top level), innermost first, pointing at exactly where execution was
// when things went wrong.
func (e *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for _, f := range e.Trace {
		b.WriteByte('\n')
		if f.FuncName == "" {
			fmt.Fprintf(&b, "[line %d] in script", f.Line)
		} else {
			fmt.Fprintf(&b, "[line %d] in %s()", f.Line, f.FuncName)
		}
	}
	return b.String()
}

func newRuntimeError(message string, trace []StackFrame) *RuntimeError {
	return &RuntimeError{Message: message, Trace: trace}
}
