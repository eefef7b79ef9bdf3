package sharpscript

import "testing"

func Test_FormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{-7, "-7"},
		{3.5, "3.5"},
		{0.1, "0.1"},
		{1e20, "1e+20"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func Test_DisplayString(t *testing.T) {
	m := NewMapObject()
	m.Set("a", NumberVal(1))
	m.Set("b", StringVal("x"))

	cases := []struct {
		in   Value
		want string
	}{
		{Null, "null"},
		{NumberVal(2.5), "2.5"},
		{StringVal("plain"), "plain"},
		{BooleanVal(true), "true"},
		{ArrayVal([]Value{NumberVal(1), StringVal("two"), Null}), "[1, two, null]"},
		{MapVal(m), "{a: 1, b: x}"},
		{FunctionVal(&FunctionValue{Name: "f"}), "<function>"},
		{ErrorVal("Bad", "oops", 7), "Bad: oops (code 7)"},
	}
	for _, c := range cases {
		if got := DisplayString(c.in); got != c.want {
			t.Errorf("DisplayString(%#v) = %q, want %q", c.in, got, c.want)
		}
	}
}
