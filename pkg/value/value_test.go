package value

import "testing"

func TestIsFalsey(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Nil, true},
		{Bool(false), true},
		{Bool(true), false},
		{Number(0), false},
		{String(""), false},
	}
	for _, c := range cases {
		if got := c.v.IsFalsey(); got != c.want {
			t.Errorf("IsFalsey(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestEqualStructuralForPrimitives(t *testing.T) {
	if !Equal(Number(1), Number(1)) {
		t.Error("expected equal numbers to compare equal")
	}
	if Equal(Number(1), Number(2)) {
		t.Error("expected different numbers to compare unequal")
	}
	if !Equal(String("soup"), String("soup")) {
		t.Error("expected equal strings to compare equal")
	}
	if Equal(Number(1), String("1")) {
		t.Error("expected different kinds to never compare equal")
	}
	if !Equal(Nil, Nil) {
		t.Error("expected nil to equal nil")
	}
}

func TestStringRendering(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Nil, "missing_ingredient"},
		{Bool(true), "delicious"},
		{Bool(false), "bland"},
		{Number(3), "3"},
		{Number(3.5), "3.5"},
		{String("soup"), "soup"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

type fakeNamer string

func (f fakeNamer) FuncName() string { return string(f) }

func TestFunctionStringDefaultsNameToScript(t *testing.T) {
	v := FunctionValue(fakeNamer(""))
	if v.String() != "<fn script>" {
		t.Errorf("expected unnamed function to render as <fn script>, got %q", v.String())
	}
	v2 := FunctionValue(fakeNamer("fib"))
	if v2.String() != "<fn fib>" {
		t.Errorf("expected named function to render as <fn fib>, got %q", v2.String())
	}
}

func TestNativeString(t *testing.T) {
	n := &Native{Name: "clock", Impl: func(args []Value) (Value, error) { return Nil, nil }}
	v := NativeValue(n)
	if v.String() != "<native fn clock>" {
		t.Errorf("expected native rendering, got %q", v.String())
	}
}
