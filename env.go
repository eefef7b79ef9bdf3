// env.go: lexical environments.
//
// An Environment is an ordered list of (name, value, const, declared-type)
// entries plus a parent link. Order is observable: namespace flattening
// copies bindings out in declaration order.
package sharpscript

import "fmt"

type binding struct {
	name     string
	value    Value
	isConst  bool
	typeName string // "" or "unknown" disables the store-time check
}

// Environment maps names to values along a parent chain. Names are unique
// within one environment; shadowing a parent name is allowed.
type Environment struct {
	bindings []binding
	parent   *Environment
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent}
}

func (e *Environment) find(name string) *binding {
	for i := range e.bindings {
		if e.bindings[i].name == name {
			return &e.bindings[i]
		}
	}
	return nil
}

// Declare creates a new binding in this scope. It fails if the name already
// exists here (the parent chain is not consulted).
func (e *Environment) Declare(name string, v Value, isConst bool, typeName string) error {
	if e.find(name) != nil {
		return fmt.Errorf("variable already declared: %s", name)
	}
	e.bindings = append(e.bindings, binding{name: name, value: v, isConst: isConst, typeName: typeName})
	return nil
}

// Set assigns to the nearest existing binding along the chain. It fails when
// no binding exists, when the binding is const, or when a declared type tag
// rejects the new value's runtime kind.
func (e *Environment) Set(name string, v Value) error {
	for env := e; env != nil; env = env.parent {
		b := env.find(name)
		if b == nil {
			continue
		}
		if b.isConst {
			return fmt.Errorf("cannot assign to const variable: %s", name)
		}
		if b.typeName != "" && b.typeName != "unknown" && b.typeName != v.TypeName() {
			return fmt.Errorf("type mismatch for %s: declared %s, got %s", name, b.typeName, v.TypeName())
		}
		b.value = v
		return nil
	}
	return fmt.Errorf("assignment to undeclared variable: %s", name)
}

// Lookup walks the chain and reports whether the name is bound anywhere.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if b := env.find(name); b != nil {
			return b.value, true
		}
	}
	return Null, false
}

func (e *Environment) Has(name string) bool {
	_, ok := e.Lookup(name)
	return ok
}

// Len reports the number of bindings in this scope only.
func (e *Environment) Len() int { return len(e.bindings) }

// Each visits this scope's bindings in declaration order. Used by namespace
// flattening and by the REPL's :env listing.
func (e *Environment) Each(fn func(name string, v Value, isConst bool)) {
	for i := range e.bindings {
		fn(e.bindings[i].name, e.bindings[i].value, e.bindings[i].isConst)
	}
}
