package sharpscript

import (
	"os"
	"path/filepath"
	"testing"
)

func parseOK(t *testing.T, src string) *Block {
	t.Helper()
	p := NewParser(src)
	prog := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v\nsource:\n%s", p.Errors(), src)
	}
	return prog
}

func onlyStmt(t *testing.T, src string) Node {
	t.Helper()
	prog := parseOK(t, src)
	if len(prog.Statements) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Statements))
	}
	return prog.Statements[0]
}

func Test_Parser_Declaration_With_Type(t *testing.T) {
	a, ok := onlyStmt(t, `&insert x: number = 10;`).(*Assign)
	if !ok {
		t.Fatalf("want *Assign")
	}
	if a.Name != "x" || a.Op != KW_INSERT || a.TypeName != "number" {
		t.Fatalf("got %+v", a)
	}
	if n, ok := a.Value.(*NumberLit); !ok || n.Value != 10 {
		t.Fatalf("want NumberLit 10, got %#v", a.Value)
	}
}

func Test_Parser_Const_Declaration(t *testing.T) {
	a := onlyStmt(t, `const PI = 3.14;`).(*Assign)
	if a.Op != KW_CONST || a.Name != "PI" || a.TypeName != "" {
		t.Fatalf("got %+v", a)
	}
}

func Test_Parser_Precedence_Shape(t *testing.T) {
	b, ok := onlyStmt(t, "1 + 2 * 3").(*Binary)
	if !ok || b.Op != PLUS {
		t.Fatalf("want PLUS at root, got %#v", b)
	}
	r, ok := b.Right.(*Binary)
	if !ok || r.Op != STAR {
		t.Fatalf("want STAR on the right, got %#v", b.Right)
	}
}

func Test_Parser_Function_With_Defaults(t *testing.T) {
	fn := onlyStmt(t, "function add(a, b = 1) { return a + b; }").(*Function)
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("got %+v", fn)
	}
	if fn.Defaults[0] != nil {
		t.Fatalf("a must have no default")
	}
	if n, ok := fn.Defaults[1].(*NumberLit); !ok || n.Value != 1 {
		t.Fatalf("want default 1 for b, got %#v", fn.Defaults[1])
	}
}

func Test_Parser_Void_Params(t *testing.T) {
	fn := onlyStmt(t, "function f(void) { }").(*Function)
	if len(fn.Params) != 0 {
		t.Fatalf("void param list must be empty, got %v", fn.Params)
	}
}

func Test_Parser_Anonymous_Function_Is_Lambda(t *testing.T) {
	if _, ok := onlyStmt(t, "function (x) { return x; }").(*Lambda); !ok {
		t.Fatalf("want *Lambda in statement position")
	}
}

func Test_Parser_Optional_Arrow_Before_Blocks(t *testing.T) {
	parseOK(t, "if (1) => { } else => { }")
	parseOK(t, "while (0) => { }")
	parseOK(t, "function f(void) => { }")
	parseOK(t, "for (x in []) => { }")
}

func Test_Parser_For_In_Detection(t *testing.T) {
	fi := onlyStmt(t, "for (item in [1, 2]) { }").(*ForIn)
	if fi.Var != "item" {
		t.Fatalf("got %+v", fi)
	}

	f := onlyStmt(t, "for (i = 0; i < 3; i++) { }").(*For)
	if f.Init == nil || f.Cond == nil || f.Post == nil {
		t.Fatalf("want all three clauses, got %+v", f)
	}
}

func Test_Parser_For_Empty_Clauses(t *testing.T) {
	f := onlyStmt(t, "for (;;) { break; }").(*For)
	if f.Init != nil || f.Cond != nil || f.Post != nil {
		t.Fatalf("want empty clauses, got %+v", f)
	}
}

func Test_Parser_Enum_Folds_Values(t *testing.T) {
	en := onlyStmt(t, "enum E { A, B, C = 5, D, N = -2, M }").(*Enum)
	wantM := []string{"A", "B", "C", "D", "N", "M"}
	wantV := []float64{0, 1, 5, 6, -2, -1}
	if len(en.Members) != len(wantM) {
		t.Fatalf("got %+v", en)
	}
	for i := range wantM {
		if en.Members[i] != wantM[i] || en.Values[i] != wantV[i] {
			t.Fatalf("member %d: want %s=%g, got %s=%g", i, wantM[i], wantV[i], en.Members[i], en.Values[i])
		}
	}
}

func Test_Parser_Class_With_Base(t *testing.T) {
	c := onlyStmt(t, "class Dog : Animal { }").(*Class)
	if c.Name != "Dog" || c.Base != "Animal" {
		t.Fatalf("got %+v", c)
	}
	c = onlyStmt(t, "struct Point { }").(*Class)
	if c.Name != "Point" || c.Base != "" {
		t.Fatalf("got %+v", c)
	}
}

func Test_Parser_Match_Shape(t *testing.T) {
	m := onlyStmt(t, `match (x) { case 1: { a() } case 2: b() default: { c() } }`).(*Match)
	if len(m.Cases) != 2 || len(m.Bodies) != 2 || m.Default == nil {
		t.Fatalf("got %+v", m)
	}
	// A bare statement body is wrapped in a block.
	if _, ok := m.Bodies[1].(*Block); !ok {
		t.Fatalf("want single-statement body wrapped in *Block, got %#v", m.Bodies[1])
	}
}

func Test_Parser_Try_Shapes(t *testing.T) {
	tr := onlyStmt(t, "try { } catch (e) { } finally { }").(*Try)
	if tr.ErrVar != "e" || tr.Catch == nil || tr.Finally == nil {
		t.Fatalf("got %+v", tr)
	}

	tr = onlyStmt(t, "try { } finally { }").(*Try)
	if tr.Catch != nil || tr.Finally == nil {
		t.Fatalf("got %+v", tr)
	}

	tr = onlyStmt(t, "try { } catch { }").(*Try)
	if tr.ErrVar != "" || tr.Catch == nil {
		t.Fatalf("got %+v", tr)
	}
}

func Test_Parser_Map_Literal_Keys(t *testing.T) {
	a := onlyStmt(t, `&insert m = {a: 1, "b c": 2};`).(*Assign)
	ml := a.Value.(*MapLit)
	if len(ml.Keys) != 2 {
		t.Fatalf("got %+v", ml)
	}
	if k := ml.Keys[1].(*StringLit); k.Value != "b c" {
		t.Fatalf("want string key, got %#v", ml.Keys[1])
	}
}

func Test_Parser_Increment_Desugars(t *testing.T) {
	a := onlyStmt(t, "i++").(*Assign)
	if a.Op != PLUS_ASSIGN {
		t.Fatalf("got %+v", a)
	}
	a = onlyStmt(t, "i--").(*Assign)
	if a.Op != MINUS_ASSIGN {
		t.Fatalf("got %+v", a)
	}
}

func Test_Parser_Soft_Errors_Keep_Partial_Tree(t *testing.T) {
	p := NewParser("&insert = 5; &insert ok = 1;")
	prog := p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatalf("want parse errors")
	}
	// The good declaration after the bad one still parses.
	found := false
	for _, s := range prog.Statements {
		if a, ok := s.(*Assign); ok && a.Name == "ok" {
			found = true
		}
	}
	if !found {
		t.Fatalf("recovery lost the following statement: %#v", prog.Statements)
	}
}

func Test_Parser_Include_Splices_And_Dedupes(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "inc.sharp")
	if err := os.WriteFile(lib, []byte("counter += 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewParser("&insert counter = 0;\n#include \"inc.sharp\"\n#include \"inc.sharp\"\ncounter")
	p.Dir = dir
	prog := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}

	ip, _, _ := testInterp()
	v, err := ip.EvalProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The second inclusion is a no-op, so the increment ran once.
	wantNum(t, v, 1)
}

func Test_Parser_Missing_Include_Is_Soft(t *testing.T) {
	p := NewParser(`#include "nope.sharp"` + "\n1")
	p.Dir = t.TempDir()
	prog := p.Parse()
	if len(p.Errors()) != 1 {
		t.Fatalf("want one parse error, got %v", p.Errors())
	}
	ip, _, _ := testInterp()
	v, err := ip.EvalProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantNum(t, v, 1)
}
