// errors.go: error surfaces.
//
// SharpScript distinguishes two error classes:
//
//   - Soft diagnostics (undefined name, const violation, type mismatch, bad
//     for-in collection, unknown function): reported on the interpreter's
//     diagnostic sink, evaluation continues with a Null substitute. The
//     evaluator never halts the host on a scripting-level mistake.
//   - Thrown errors (system.throw): carried to the nearest active try frame
//     as a name/message/code triple. Uncaught throws surface to the caller
//     of Run/EvalProgram as an *UncaughtError.
//
// This file also renders caret-style snippets for lexer/parser diagnostics:
//
//	PARSE ERROR at 3:12: unexpected token ')'
//
//	   2 | &insert x = (1 + 2
//	   3 |              )
//	     |             ^
//
// The snippet shows one line of context on either side and places the caret
// under the 1-based column.
package sharpscript

import (
	"fmt"
	"strings"
)

// DiagnosticHandler receives soft diagnostics. The default sink writes to
// stderr; hosts (REPL, tests) may replace it.
type DiagnosticHandler func(msg string)

// ParseError is a soft front-end diagnostic with a 1-based position.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// UncaughtError is returned by the public entry points when a thrown script
// error reaches the top level without a catch.
type UncaughtError struct {
	Err *ErrorValue
}

func (e *UncaughtError) Error() string {
	return fmt.Sprintf("uncaught %s: %s (code %g)", e.Err.Name, e.Err.Message, e.Err.Code)
}

// thrownError is the panic payload of the exception channel. Only the
// evaluator's try frames recover it; any other panic value is rethrown.
type thrownError struct {
	value *ErrorValue
}

// WrapErrorWithSource augments a *ParseError with a caret-annotated snippet
// of the source text. Other errors are returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	pe, ok := err.(*ParseError)
	if !ok {
		return err
	}
	return fmt.Errorf("%s", caretSnippet(src, "PARSE ERROR", pe.Line, pe.Col, pe.Msg))
}

func caretSnippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
