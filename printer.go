// printer.go: display formatting for runtime values.
package sharpscript

import (
	"math"
	"strconv"
	"strings"
)

// DisplayString renders a value the way system.print shows it and the way
// `+` stringifies non-string operands: numbers in their shortest decimal
// form, booleans as true/false, null as "null", strings unquoted.
func DisplayString(v Value) string {
	switch v.Kind {
	case VNumber:
		return FormatNumber(v.Num())
	case VString:
		return v.Str()
	case VBoolean:
		if v.Boolean() {
			return "true"
		}
		return "false"
	case VArray:
		parts := make([]string, 0, len(v.Array()))
		for _, e := range v.Array() {
			parts = append(parts, DisplayString(e))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case VMap:
		m := v.MapObject()
		parts := make([]string, 0, len(m.Keys))
		for _, k := range m.Keys {
			parts = append(parts, k+": "+DisplayString(m.Entries[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case VFunction:
		return "<function>"
	case VNamespace:
		return "<namespace>"
	case VClass:
		return "<class>"
	case VEnum:
		return "<enum>"
	case VError:
		e := v.Error()
		return e.Name + ": " + e.Message + " (code " + FormatNumber(e.Code) + ")"
	default:
		return "null"
	}
}

// FormatNumber prints whole numbers without a decimal point and everything
// else in shortest round-trip form.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
