// builtin_file.go: file.read and file.write.
//
// Soft I/O failures follow the language's error model: a diagnostic on the
// sink plus a Null result, never a crash.
package sharpscript

import "os"

func registerFileBuiltins(ip *Interpreter) {
	ip.RegisterBuiltin("file.read", func(ip *Interpreter, env *Environment, args []Node) Value {
		if len(args) < 1 {
			ip.diagf("file.read expects a path")
			return Null
		}
		path := ip.Eval(args[0], env)
		if path.Kind != VString {
			ip.diagf("file.read expects a string path")
			return Null
		}
		data, err := os.ReadFile(path.Str())
		if err != nil {
			ip.diagf("file.read: %v", err)
			return Null
		}
		return StringVal(string(data))
	})

	ip.RegisterBuiltin("file.write", func(ip *Interpreter, env *Environment, args []Node) Value {
		if len(args) < 2 {
			ip.diagf("file.write expects a path and text")
			return Null
		}
		path := ip.Eval(args[0], env)
		text := ip.Eval(args[1], env)
		if path.Kind != VString {
			ip.diagf("file.write expects a string path")
			return Null
		}
		if err := os.WriteFile(path.Str(), []byte(DisplayString(text)), 0o644); err != nil {
			ip.diagf("file.write: %v", err)
			return BooleanVal(false)
		}
		return BooleanVal(true)
	})
}
