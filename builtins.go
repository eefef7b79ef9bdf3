// builtins.go: the system.* console and introspection builtins.
//
// Builtins receive their arguments as unevaluated AST nodes (see Builtin in
// interp.go) and evaluate them in the caller's environment. Registration
// follows the register*Builtins convention; the registry is keyed by exact
// dotted name and is consulted before any user-defined function.
package sharpscript

import (
	"fmt"
	"strings"
)

func registerSystemBuiltins(ip *Interpreter) {
	// system.print / system.output: space-separated display forms, newline
	// terminated. The two names are aliases in the reference.
	echo := func(ip *Interpreter, env *Environment, args []Node) Value {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, DisplayString(ip.Eval(a, env)))
		}
		fmt.Fprintln(ip.Stdout, strings.Join(parts, " "))
		return Null
	}
	ip.RegisterBuiltin("system.print", echo)
	ip.RegisterBuiltin("system.output", echo)

	ip.RegisterBuiltin("system.error", func(ip *Interpreter, env *Environment, args []Node) Value {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, DisplayString(ip.Eval(a, env)))
		}
		fmt.Fprintln(ip.Stderr, "Error: "+strings.Join(parts, " "))
		return Null
	})

	ip.RegisterBuiltin("system.warning", func(ip *Interpreter, env *Environment, args []Node) Value {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, DisplayString(ip.Eval(a, env)))
		}
		fmt.Fprintln(ip.Stdout, "Warning: "+strings.Join(parts, " "))
		return Null
	})

	ip.RegisterBuiltin("system.input", func(ip *Interpreter, env *Environment, args []Node) Value {
		if len(args) > 0 {
			fmt.Fprint(ip.Stdout, DisplayString(ip.Eval(args[0], env)))
		}
		line, err := ip.reader().ReadString('\n')
		if err != nil && line == "" {
			return StringVal("")
		}
		return StringVal(strings.TrimRight(line, "\r\n"))
	})

	ip.RegisterBuiltin("system.help", func(ip *Interpreter, env *Environment, args []Node) Value {
		topic := "help"
		if len(args) > 0 {
			if t := ip.Eval(args[0], env); t.Kind == VString {
				topic = t.Str()
			}
		}
		fmt.Fprintln(ip.Stdout, HelpTopic(topic))
		return Null
	})

	ip.RegisterBuiltin("system.len", func(ip *Interpreter, env *Environment, args []Node) Value {
		if len(args) == 0 {
			ip.diagf("system.len expects 1 argument")
			return Null
		}
		switch v := ip.Eval(args[0], env); v.Kind {
		case VString:
			return NumberVal(float64(len(v.Str())))
		case VArray:
			return NumberVal(float64(len(v.Array())))
		case VMap:
			return NumberVal(float64(len(v.MapObject().Keys)))
		default:
			return NumberVal(0)
		}
	})

	ip.RegisterBuiltin("system.type", func(ip *Interpreter, env *Environment, args []Node) Value {
		if len(args) == 0 {
			ip.diagf("system.type expects 1 argument")
			return Null
		}
		return StringVal(ip.Eval(args[0], env).TypeName())
	})

	// system.annotate(value, note): returns the value; the note goes to the
	// diagnostic sink so a host can surface it.
	ip.RegisterBuiltin("system.annotate", func(ip *Interpreter, env *Environment, args []Node) Value {
		if len(args) == 0 {
			return Null
		}
		v := ip.Eval(args[0], env)
		if len(args) > 1 {
			ip.diagf("note: %s", DisplayString(ip.Eval(args[1], env)))
		}
		return v
	})

	// system.throw(name, message, code): raise through the exception
	// channel to the nearest try frame.
	ip.RegisterBuiltin("system.throw", func(ip *Interpreter, env *Environment, args []Node) Value {
		name, message, code := "Error", "", 0.0
		if len(args) > 0 {
			if v := ip.Eval(args[0], env); v.Kind == VString {
				name = v.Str()
			}
		}
		if len(args) > 1 {
			if v := ip.Eval(args[1], env); v.Kind == VString {
				message = v.Str()
			}
		}
		if len(args) > 2 {
			if v := ip.Eval(args[2], env); v.Kind == VNumber {
				code = v.Num()
			}
		}
		ip.Throw(name, message, code)
		return Null // unreachable
	})

	// History is interpreter state, not a global: see Interpreter.History.
	ip.RegisterBuiltin("system.history.add", func(ip *Interpreter, env *Environment, args []Node) Value {
		if len(args) == 0 {
			return Null
		}
		ip.History = append(ip.History, ip.Eval(args[0], env))
		return Null
	})
	ip.RegisterBuiltin("system.history.get", func(ip *Interpreter, env *Environment, args []Node) Value {
		out := make([]Value, 0, len(ip.History))
		for _, v := range ip.History {
			out = append(out, v.Clone())
		}
		return ArrayVal(out)
	})
	ip.RegisterBuiltin("system.history.clear", func(ip *Interpreter, env *Environment, args []Node) Value {
		ip.History = nil
		return Null
	})
}
