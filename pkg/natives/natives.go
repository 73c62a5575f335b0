// Package natives registers chef's built-in native functions: the
// handful of host-provided callables every script gets for free
// without a recipe declaration.
package natives

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/kristofer/chef/pkg/value"
)

// Register defines every native in the VM's global namespace. define
// is typically *vm.VM.Define; it's a plain function value here so this
// package doesn't need to import pkg/vm.
func Register(define func(name string, v value.Value)) {
	for _, n := range all {
		define(n.Name, value.NativeValue(n))
	}
}

var all = []*value.Native{
	{Name: "clock", Impl: clock},
	{Name: "type_of", Impl: typeOf},
	{Name: "str_len", Impl: strLen},
}

// clock returns seconds elapsed since the Unix epoch as a float, the
// same resolution the original timing native exposed, for scripts
// that want to measure their own running time.
func clock(args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Nil, fmt.Errorf("clock takes no arguments")
	}
	return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
}

// typeOf names the dynamic kind of its single argument, as one of the
// lowercase culinary-neutral kind names: nil, boolean, number,
// string, function, native.
func typeOf(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Nil, fmt.Errorf("type_of takes exactly one argument")
	}
	switch args[0].Kind() {
	case value.KindNil:
		return value.String("nil"), nil
	case value.KindBoolean:
		return value.String("boolean"), nil
	case value.KindNumber:
		return value.String("number"), nil
	case value.KindString:
		return value.String("string"), nil
	case value.KindFunction:
		return value.String("function"), nil
	case value.KindNative:
		return value.String("native"), nil
	default:
		return value.String("unknown"), nil
	}
}

// strLen returns the rune length of a string argument, so scripts can
// inspect ingredient lists without a full standard library.
func strLen(args []value.Value) (value.Value, error) {
	if len(args) != 1 || !args[0].IsString() {
		return value.Nil, fmt.Errorf("Argument must be a string.")
	}
	return value.Number(float64(utf8.RuneCountInString(args[0].AsString()))), nil
}
