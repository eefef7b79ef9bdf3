// builtin_math.go: calculator builtins.
//
// Trigonometry and logarithms, the fixed unit-conversion table, the
// persistent named-value memory (system.store/recall/memclear) and nothing
// else: the reference is a calculator at heart and this is its core table.
package sharpscript

import "math"

func registerMathBuiltins(ip *Interpreter) {
	unary := func(name string, fn func(float64) float64) {
		ip.RegisterBuiltin(name, func(ip *Interpreter, env *Environment, args []Node) Value {
			x := 0.0
			if len(args) > 0 {
				if v := ip.Eval(args[0], env); v.Kind == VNumber {
					x = v.Num()
				}
			}
			return NumberVal(fn(x))
		})
	}

	unary("system.sin", math.Sin)
	unary("system.cos", math.Cos)
	unary("system.tan", math.Tan)
	unary("system.asin", math.Asin)
	unary("system.acos", math.Acos)
	unary("system.atan", math.Atan)
	unary("system.log", math.Log10) // system.log is base 10; system.ln is natural
	unary("system.ln", math.Log)
	unary("system.exp", math.Exp)
	unary("system.sqrt", math.Sqrt)

	ip.RegisterBuiltin("system.pow", func(ip *Interpreter, env *Environment, args []Node) Value {
		a, b := 0.0, 0.0
		if len(args) > 0 {
			if v := ip.Eval(args[0], env); v.Kind == VNumber {
				a = v.Num()
			}
		}
		if len(args) > 1 {
			if v := ip.Eval(args[1], env); v.Kind == VNumber {
				b = v.Num()
			}
		}
		return NumberVal(math.Pow(a, b))
	})

	// --- calculator memory ------------------------------------------------

	ip.RegisterBuiltin("system.store", func(ip *Interpreter, env *Environment, args []Node) Value {
		if len(args) < 2 {
			ip.diagf("system.store expects a name and a value")
			return Null
		}
		name := ip.Eval(args[0], env)
		if name.Kind != VString {
			return Null
		}
		value := ip.Eval(args[1], env).Clone()
		if ip.Memory.Has(name.Str()) {
			if err := ip.Memory.Set(name.Str(), value); err != nil {
				ip.diagf("%v", err)
			}
		} else if err := ip.Memory.Declare(name.Str(), value, false, ""); err != nil {
			ip.diagf("%v", err)
		}
		return Null
	})

	ip.RegisterBuiltin("system.recall", func(ip *Interpreter, env *Environment, args []Node) Value {
		if len(args) < 1 {
			return Null
		}
		name := ip.Eval(args[0], env)
		if name.Kind != VString {
			return Null
		}
		if v, ok := ip.Memory.Lookup(name.Str()); ok {
			return v.Clone()
		}
		return Null
	})

	ip.RegisterBuiltin("system.memclear", func(ip *Interpreter, env *Environment, args []Node) Value {
		ip.Memory = NewEnvironment(nil)
		return Null
	})

	// --- unit conversion --------------------------------------------------

	ip.RegisterBuiltin("system.convert", func(ip *Interpreter, env *Environment, args []Node) Value {
		if len(args) < 3 {
			ip.diagf("system.convert expects value, from-unit, to-unit")
			return Null
		}
		num := ip.Eval(args[0], env).Num()
		from := ip.Eval(args[1], env).Str()
		to := ip.Eval(args[2], env).Str()
		out, ok := convertUnit(num, from, to)
		if !ok {
			return Null
		}
		return NumberVal(out)
	})
}

// convertUnit implements the fixed table: length m/km/mi, mass kg/lb,
// temperature C/F/K. Unknown pairs report not-ok.
func convertUnit(num float64, from, to string) (float64, bool) {
	switch from + ">" + to {
	case "m>km":
		return num / 1000.0, true
	case "km>m":
		return num * 1000.0, true
	case "m>mi":
		return num / 1609.344, true
	case "mi>m":
		return num * 1609.344, true
	case "kg>lb":
		return num * 2.20462, true
	case "lb>kg":
		return num / 2.20462, true
	case "C>F":
		return num*9.0/5.0 + 32.0, true
	case "F>C":
		return (num - 32.0) * 5.0 / 9.0, true
	case "C>K":
		return num + 273.15, true
	case "K>C":
		return num - 273.15, true
	}
	return 0, false
}
