// Package value defines the tagged value domain shared by the
// compiler and the VM, and its arithmetic/equality contracts.
//
// A Value is a tagged union over Nil, Boolean, Number, String,
// Function, and NativeFunction. Numbers, booleans, and nil are held
// by value; strings and functions are held by reference. Go's garbage
// collector retires the manual reference-counting the original
// implementation used for heap values — there is no user-visible
// difference, since identity is never observable from the language
// (see Equal).
package value

import "fmt"

// Kind tags which alternative of the Value union is populated.
type Kind int

const (
	KindNil Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindFunction
	KindNative
)

// Namer is the sliver of chunk.Function that pkg/value needs in order
// to print a function value without importing pkg/chunk (which itself
// must import pkg/value for its constant pool — see Value.fn below).
type Namer interface {
	FuncName() string
}

// Native is a built-in callable exposed as a Value. Impl receives the
// VM-visible argument slice (length == argc) and returns either a
// result Value or an error describing a runtime fault; the VM surfaces
// that error exactly like any other runtime error.
type Native struct {
	Name string
	Impl func(args []Value) (Value, error)
}

// Value is the tagged union of every runtime value in chef.
//
// The Function alternative is held through the Namer interface rather
// than a concrete type, because the compiled function wraps a Chunk
// and Chunk in turn needs a constant pool of Values — defining
// Function here would create an import cycle between pkg/value and
// pkg/chunk. pkg/chunk defines the concrete Function type and provides
// Wrap/Unwrap to move between the two.
type Value struct {
	kind   Kind
	number float64
	str    string
	fn     Namer
	native *Native
}

// Nil is the singular nil value.
var Nil = Value{kind: KindNil}

// Bool constructs a Boolean value.
func Bool(b bool) Value {
	v := Value{kind: KindBoolean}
	if b {
		v.number = 1
	}
	return v
}

// Number constructs a Number value.
func Number(n float64) Value {
	return Value{kind: KindNumber, number: n}
}

// String constructs a String value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// FunctionValue wraps a compiled function as a Value. Use chunk.Wrap
// instead of calling this directly outside pkg/chunk.
func FunctionValue(fn Namer) Value {
	return Value{kind: KindFunction, fn: fn}
}

// NativeValue wraps a Native as a Value.
func NativeValue(n *Native) Value {
	return Value{kind: KindNative, native: n}
}

// Kind reports which alternative is populated.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNil() bool      { return v.kind == KindNil }
func (v Value) IsBoolean() bool  { return v.kind == KindBoolean }
func (v Value) IsNumber() bool   { return v.kind == KindNumber }
func (v Value) IsString() bool   { return v.kind == KindString }
func (v Value) IsFunction() bool { return v.kind == KindFunction }
func (v Value) IsNative() bool   { return v.kind == KindNative }

// AsBoolean returns the underlying bool. Only valid when IsBoolean().
func (v Value) AsBoolean() bool { return v.number != 0 }

// AsNumber returns the underlying float64. Only valid when IsNumber().
func (v Value) AsNumber() float64 { return v.number }

// AsString returns the underlying string. Only valid when IsString().
func (v Value) AsString() string { return v.str }

// AsFunction returns the underlying function value. Only valid when
// IsFunction(); use chunk.Unwrap to recover the concrete *chunk.Function.
func (v Value) AsFunction() Namer { return v.fn }

// AsNative returns the underlying *Native. Only valid when IsNative().
func (v Value) AsNative() *Native { return v.native }

// IsFalsey reports chef's truthiness rule: only nil and false are
// falsey, everything else — including the number 0 — is truthy.
func (v Value) IsFalsey() bool {
	return v.kind == KindNil || (v.kind == KindBoolean && v.number == 0)
}

// Equal implements chef's equality contract: same-variant structural
// compare for primitives and strings, identity compare for functions
// and natives. Values of different kinds are never equal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBoolean:
		return a.AsBoolean() == b.AsBoolean()
	case KindNumber:
		return a.number == b.number
	case KindString:
		return a.str == b.str
	case KindFunction:
		return a.fn == b.fn
	case KindNative:
		return a.native == b.native
	default:
		return false
	}
}

// String renders a Value the way `garnish` writes it to stdout:
// numbers use Go's shortest round-trippable decimal with trailing
// zeroes suppressed, booleans as delicious/bland, nil as
// missing_ingredient, strings raw, functions as <fn NAME>, and natives
// as <native fn NAME>.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "missing_ingredient"
	case KindBoolean:
		if v.AsBoolean() {
			return "delicious"
		}
		return "bland"
	case KindNumber:
		return formatNumber(v.number)
	case KindString:
		return v.str
	case KindFunction:
		name := v.fn.FuncName()
		if name == "" {
			name = "script"
		}
		return fmt.Sprintf("<fn %s>", name)
	case KindNative:
		return fmt.Sprintf("<native fn %s>", v.native.Name)
	default:
		return "<unknown>"
	}
}

// formatNumber mirrors the platform default double formatting chef
// promises: trailing zeroes and a dangling decimal point are
// suppressed for integral values.
func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}
