// ast.go: the SharpScript abstract syntax tree.
//
// A closed set of node structs behind the Node interface. The parser is the
// only producer; the evaluator dispatches on the concrete type. Composite
// nodes own their children exclusively and the tree is immutable once built.
package sharpscript

// Node is implemented by every AST variant.
type Node interface {
	node()
}

// --- literals --------------------------------------------------------------

type NumberLit struct {
	Value float64
}

type StringLit struct {
	Value string
}

type BooleanLit struct {
	Value bool
}

type NullLit struct{}

// Identifier references a binding by name. Names may be dotted
// ("math.square", "Color.RED") since namespaces and enums flatten into the
// parent scope under dotted keys.
type Identifier struct {
	Name string
}

// --- expressions -----------------------------------------------------------

type Binary struct {
	Op    TokenType
	Left  Node
	Right Node
}

type Unary struct {
	Op      TokenType
	Operand Node
}

// Assign covers every store form, discriminated by Op:
//
//	ASSIGN                      plain assignment (target must exist)
//	PLUS_ASSIGN .. PCT_ASSIGN   compound read-modify-write
//	KW_INSERT                   new mutable binding
//	KW_CONST                    new immutable binding
//
// TypeName is the optional declared-type annotation on the two declaration
// forms ("" when absent).
type Assign struct {
	Name     string
	Op       TokenType
	TypeName string
	Value    Node
}

// Call invokes a builtin (resolved first, by exact dotted name) or a
// user-defined function.
type Call struct {
	Name string
	Args []Node
}

type ArrayLit struct {
	Elements []Node
}

// MapLit preserves source order; Keys[i] pairs with Values[i].
type MapLit struct {
	Keys   []Node
	Values []Node
}

type Index struct {
	Object Node
	Index  Node
}

// Lambda is an anonymous function expression.
type Lambda struct {
	Params   []string
	Defaults []Node // nil entry = no default
	Body     Node
}

// --- statements ------------------------------------------------------------

type Block struct {
	Statements []Node
}

type If struct {
	Cond Node
	Then Node
	Else Node // nil when absent
}

type While struct {
	Cond Node
	Body Node
}

// For is the C-style loop; Init, Cond and Post may each be nil.
type For struct {
	Init Node
	Cond Node
	Post Node
	Body Node
}

type ForIn struct {
	Var        string
	Collection Node
	Body       Node
}

// Function is a named declaration. Defaults[i] is the default expression for
// Params[i], nil when the parameter has none.
type Function struct {
	Name     string
	Params   []string
	Defaults []Node
	Body     Node
}

type Return struct {
	Value Node // nil for a bare return
}

type Break struct{}

type Continue struct{}

type Namespace struct {
	Name string
	Body Node
}

// Enum member values are folded at parse time: explicit initializers are
// taken literally, unspecified members continue from the previous value + 1.
type Enum struct {
	Name    string
	Members []string
	Values  []float64
}

// Class parses (with optional base) but has no evaluation rule; the
// interpreter treats it as a no-op.
type Class struct {
	Name string
	Base string
	Body Node
}

// Match tests Subject against each case expression in order by value
// equality and runs the first matching body, else the default body.
type Match struct {
	Subject Node
	Cases   []Node
	Bodies  []Node
	Default Node // nil when absent
}

// Try runs its block under a handler frame. ErrVar names the catch binding
// ("" when the catch clause binds nothing). Catch and Finally may be nil.
type Try struct {
	Block   Node
	ErrVar  string
	Catch   Node
	Finally Node
}

func (*NumberLit) node()  {}
func (*StringLit) node()  {}
func (*BooleanLit) node() {}
func (*NullLit) node()    {}
func (*Identifier) node() {}
func (*Binary) node()     {}
func (*Unary) node()      {}
func (*Assign) node()     {}
func (*Call) node()       {}
func (*ArrayLit) node()   {}
func (*MapLit) node()     {}
func (*Index) node()      {}
func (*Lambda) node()     {}
func (*Block) node()      {}
func (*If) node()         {}
func (*While) node()      {}
func (*For) node()        {}
func (*ForIn) node()      {}
func (*Function) node()   {}
func (*Return) node()     {}
func (*Break) node()      {}
func (*Continue) node()   {}
func (*Namespace) node()  {}
func (*Enum) node()       {}
func (*Class) node()      {}
func (*Match) node()      {}
func (*Try) node()        {}
