// interp.go: the Interpreter instance and its public entry points.
//
// An Interpreter owns everything that outlives a single evaluation: the
// global environment, the calculator memory, the history list, the builtin
// registry and the diagnostic sink. Nothing here is package-level state;
// independent interpreters do not observe each other, and Reset gives a
// defined lifecycle between program runs.
//
// Entry points:
//   - EvalSource(src)  — parse and evaluate; parse diagnostics are soft.
//   - EvalProgram(ast) — evaluate an already-built tree in the globals.
//   - Eval(node, env)  — raw recursive evaluation; may raise a thrown error
//     through the exception channel (callers inside the engine only).
//
// A thrown script error that reaches EvalSource/EvalProgram uncaught is
// returned as *UncaughtError; soft diagnostics never become Go errors.
package sharpscript

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Builtin is an entry in the registry. It receives the calling environment
// and the pre-evaluation argument nodes, so it controls evaluation order and
// laziness itself.
type Builtin func(ip *Interpreter, env *Environment, args []Node) Value

// Interpreter is a single-threaded, synchronous SharpScript engine.
type Interpreter struct {
	Globals *Environment

	// Calculator memory (system.store/recall/memclear) and expression
	// history (system.history.*). Both persist across evaluations until
	// Reset.
	Memory  *Environment
	History []Value

	// I/O used by the console builtins; replaceable by hosts and tests.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	builtins map[string]Builtin
	diag     DiagnosticHandler
	stdin    *bufio.Reader
}

func NewInterpreter() *Interpreter {
	ip := &Interpreter{
		Globals: NewEnvironment(nil),
		Memory:  NewEnvironment(nil),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
	}
	ip.diag = func(msg string) { fmt.Fprintln(ip.Stderr, msg) }
	ip.builtins = map[string]Builtin{}
	registerSystemBuiltins(ip)
	registerMathBuiltins(ip)
	registerFileBuiltins(ip)
	return ip
}

// Reset discards all user state: globals, calculator memory and history.
// The builtin registry and I/O wiring survive.
func (ip *Interpreter) Reset() {
	ip.Globals = NewEnvironment(nil)
	ip.Memory = NewEnvironment(nil)
	ip.History = nil
}

// SetDiagnosticHandler replaces the soft-diagnostic sink.
func (ip *Interpreter) SetDiagnosticHandler(h DiagnosticHandler) {
	if h != nil {
		ip.diag = h
	}
}

// RegisterBuiltin installs (or overrides) a registry entry under a dotted
// name such as "system.print".
func (ip *Interpreter) RegisterBuiltin(name string, fn Builtin) {
	ip.builtins[name] = fn
}

func (ip *Interpreter) diagf(format string, args ...interface{}) {
	ip.diag(fmt.Sprintf(format, args...))
}

// reader returns the buffered stdin, rebuilding it if the host swapped Stdin.
func (ip *Interpreter) reader() *bufio.Reader {
	if ip.stdin == nil {
		ip.stdin = bufio.NewReader(ip.Stdin)
	}
	return ip.stdin
}

// EvalSource parses and evaluates src against the interpreter's globals.
// Parse errors are reported to the diagnostic sink (caret snippets included)
// and the partial tree still evaluates, so a REPL stays usable on broken
// input. The returned error is non-nil only for an uncaught script throw.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	prog, errs := ParseSource(src)
	for _, pe := range errs {
		ip.diag(WrapErrorWithSource(pe, src).Error())
	}
	return ip.EvalProgram(prog)
}

// ParseSource builds the AST for src. The block is never nil; diagnostics
// accompany a partial tree.
func ParseSource(src string) (*Block, []*ParseError) {
	p := NewParser(src)
	return p.Parse(), p.Errors()
}

// EvalProgram evaluates an AST in the global environment, converting an
// uncaught thrown error into *UncaughtError.
func (ip *Interpreter) EvalProgram(node Node) (v Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			te, ok := r.(thrownError)
			if !ok {
				panic(r)
			}
			v = Null
			err = &UncaughtError{Err: te.value}
		}
	}()
	v = ip.Eval(node, ip.Globals)
	switch v.Kind {
	case VReturn: // top-level return unwraps like a function body
		if inner, _ := v.Data.(*Value); inner != nil {
			v = *inner
		} else {
			v = Null
		}
	case VBreak, VContinue: // sentinels never escape to the host
		v = Null
	}
	return v, nil
}

// Throw raises a script error through the exception channel. It does not
// return.
func (ip *Interpreter) Throw(name, message string, code float64) {
	panic(thrownError{value: &ErrorValue{Name: name, Message: message, Code: code}})
}
