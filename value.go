// value.go: the SharpScript runtime value model.
//
// Value is a tagged union in the teacher-of-record style: a kind tag plus an
// untyped payload whose concrete type is fixed by the tag. Three of the kinds
// (VBreak, VContinue, VReturn) are control sentinels: only the evaluator
// constructs them, they are never operands, and they must be intercepted at
// the nearest loop/function/try boundary.
//
// Values are copy-on-read: reading a variable, array element or map entry
// yields a deep clone, never a live reference. This is a language-level
// guarantee (programs may rely on it), not an implementation convenience.
package sharpscript

// ValueKind enumerates all runtime kinds a Value may hold.
type ValueKind int

const (
	VNull      ValueKind = iota // no payload
	VNumber                     // float64
	VString                     // string
	VBoolean                    // bool
	VFunction                   // *FunctionValue
	VArray                      // []Value
	VMap                        // *MapObject
	VNamespace                  // *Environment
	VClass                      // *Environment
	VEnum                       // *Environment
	VError                      // *ErrorValue
	VBreak                      // no payload (control sentinel)
	VContinue                   // no payload (control sentinel)
	VReturn                     // *Value, possibly nil (control sentinel)
)

// Value is the universal runtime carrier. Kind determines the dynamic type
// of Data.
type Value struct {
	Kind ValueKind
	Data interface{}
}

// Null is the singleton null Value.
var Null = Value{Kind: VNull}

func NumberVal(f float64) Value { return Value{Kind: VNumber, Data: f} }
func StringVal(s string) Value  { return Value{Kind: VString, Data: s} }
func BooleanVal(b bool) Value   { return Value{Kind: VBoolean, Data: b} }
func ArrayVal(xs []Value) Value { return Value{Kind: VArray, Data: xs} }

func breakVal() Value    { return Value{Kind: VBreak} }
func continueVal() Value { return Value{Kind: VContinue} }

func returnVal(inner *Value) Value { return Value{Kind: VReturn, Data: inner} }

// FunctionValue pairs a function or lambda node with the environment active
// at its definition site. This is the sole closure mechanism.
type FunctionValue struct {
	Name     string // "" for lambdas
	Params   []string
	Defaults []Node
	Body     Node
	Closure  *Environment
}

func FunctionVal(fn *FunctionValue) Value { return Value{Kind: VFunction, Data: fn} }

// MapObject is an insertion-ordered string-keyed map. Keys holds the unique
// key order; Entries the storage.
type MapObject struct {
	Keys    []string
	Entries map[string]Value
}

func NewMapObject() *MapObject {
	return &MapObject{Entries: map[string]Value{}}
}

// Set inserts or replaces; new keys append to the order.
func (m *MapObject) Set(key string, v Value) {
	if _, ok := m.Entries[key]; !ok {
		m.Keys = append(m.Keys, key)
	}
	m.Entries[key] = v
}

func (m *MapObject) Get(key string) (Value, bool) {
	v, ok := m.Entries[key]
	return v, ok
}

func MapVal(m *MapObject) Value { return Value{Kind: VMap, Data: m} }

// ErrorValue is the payload of a thrown error: name, message and numeric
// code, per system.throw(name, message, code).
type ErrorValue struct {
	Name    string
	Message string
	Code    float64
}

func ErrorVal(name, message string, code float64) Value {
	return Value{Kind: VError, Data: &ErrorValue{Name: name, Message: message, Code: code}}
}

// --- accessors -------------------------------------------------------------

func (v Value) Num() float64 {
	if v.Kind != VNumber {
		return 0
	}
	return v.Data.(float64)
}

func (v Value) Str() string {
	if v.Kind != VString {
		return ""
	}
	return v.Data.(string)
}

func (v Value) Boolean() bool {
	if v.Kind != VBoolean {
		return false
	}
	return v.Data.(bool)
}

func (v Value) Array() []Value {
	if v.Kind != VArray {
		return nil
	}
	return v.Data.([]Value)
}

func (v Value) MapObject() *MapObject {
	if v.Kind != VMap {
		return nil
	}
	return v.Data.(*MapObject)
}

func (v Value) Function() *FunctionValue {
	if v.Kind != VFunction {
		return nil
	}
	return v.Data.(*FunctionValue)
}

func (v Value) Error() *ErrorValue {
	if v.Kind != VError {
		return nil
	}
	return v.Data.(*ErrorValue)
}

func (v Value) isSentinel() bool {
	return v.Kind == VBreak || v.Kind == VContinue || v.Kind == VReturn
}

// --- semantics helpers -----------------------------------------------------

// Truthy: null and sentinels are false, booleans are themselves, numbers are
// false only at exactly 0, strings only when empty, everything else is true.
func (v Value) Truthy() bool {
	switch v.Kind {
	case VNull, VBreak, VContinue, VReturn:
		return false
	case VBoolean:
		return v.Data.(bool)
	case VNumber:
		return v.Data.(float64) != 0
	case VString:
		return v.Data.(string) != ""
	default:
		return true
	}
}

// TypeName is the runtime kind tag used by system.type and by declared-type
// checks at store time.
func (v Value) TypeName() string {
	switch v.Kind {
	case VNumber:
		return "number"
	case VString:
		return "string"
	case VBoolean:
		return "boolean"
	case VArray:
		return "array"
	case VMap:
		return "map"
	case VFunction:
		return "function"
	case VNamespace:
		return "namespace"
	case VClass:
		return "class"
	case VEnum:
		return "enum"
	case VError:
		return "error"
	default:
		return "null"
	}
}

// Equal implements value equality as the language defines it: primitives of
// matching kind by value, null equals null, arrays/maps/functions by
// identity. Mismatched kinds are never equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case VNull:
		return true
	case VNumber:
		return v.Data.(float64) == o.Data.(float64)
	case VString:
		return v.Data.(string) == o.Data.(string)
	case VBoolean:
		return v.Data.(bool) == o.Data.(bool)
	case VArray:
		a, b := v.Data.([]Value), o.Data.([]Value)
		return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
	default:
		// Maps, functions, namespaces, errors: pointer identity.
		return v.Data == o.Data
	}
}

// Clone returns a structurally independent deep copy. Functions keep their
// identity (the closure pair is shared); environments wrapped by
// namespace/class/enum values are shared as well, since those wrappers are
// handles rather than data.
func (v Value) Clone() Value {
	switch v.Kind {
	case VArray:
		src := v.Data.([]Value)
		dst := make([]Value, len(src))
		for i, e := range src {
			dst[i] = e.Clone()
		}
		return Value{Kind: VArray, Data: dst}
	case VMap:
		src := v.Data.(*MapObject)
		dst := NewMapObject()
		for _, k := range src.Keys {
			dst.Set(k, src.Entries[k].Clone())
		}
		return Value{Kind: VMap, Data: dst}
	case VError:
		e := *v.Data.(*ErrorValue)
		return Value{Kind: VError, Data: &e}
	case VReturn:
		if inner, _ := v.Data.(*Value); inner != nil {
			c := inner.Clone()
			return Value{Kind: VReturn, Data: &c}
		}
		return v
	default:
		return v
	}
}
