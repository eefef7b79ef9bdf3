// eval.go: the recursive node-dispatch engine.
//
// Eval maps every AST variant to exactly one rule. The environment is
// threaded through the recursion; function calls evaluate their body in a
// fresh child of the closure's defining environment, and the caller's
// environment is untouched no matter how the body terminates.
//
// Break/Continue/Return travel as sentinel Values through ordinary returns
// and are intercepted at the nearest loop or call boundary. Thrown errors
// travel through the exception channel (panic with a thrownError payload)
// and are intercepted by the nearest try frame; the frames nest as a stack,
// so nested try/catch blocks compose.
package sharpscript

import "math"

// Eval evaluates node in env. A nil or unknown node yields Null; scripting
// mistakes produce soft diagnostics and a Null substitute, never a hard
// failure.
func (ip *Interpreter) Eval(node Node, env *Environment) Value {
	if node == nil {
		return Null
	}

	switch n := node.(type) {
	case *NumberLit:
		return NumberVal(n.Value)
	case *StringLit:
		return StringVal(n.Value)
	case *BooleanLit:
		return BooleanVal(n.Value)
	case *NullLit:
		return Null

	case *Identifier:
		v, ok := env.Lookup(n.Name)
		if !ok {
			ip.diagf("Undefined variable: %s", n.Name)
			return Null
		}
		return v.Clone() // copy-on-read

	case *Binary:
		return ip.evalBinary(n, env)

	case *Unary:
		return ip.evalUnary(n, env)

	case *Assign:
		return ip.evalAssign(n, env)

	case *If:
		if ip.Eval(n.Cond, env).Truthy() {
			return ip.Eval(n.Then, env)
		}
		if n.Else != nil {
			return ip.Eval(n.Else, env)
		}
		return Null

	case *While:
		for ip.Eval(n.Cond, env).Truthy() {
			res := ip.Eval(n.Body, env)
			if res.Kind == VBreak {
				return Null
			}
			if res.Kind == VReturn {
				return res
			}
			// VContinue and plain values both re-check the condition.
		}
		return Null

	case *For:
		if n.Init != nil {
			ip.Eval(n.Init, env)
		}
		for {
			if n.Cond != nil && !ip.Eval(n.Cond, env).Truthy() {
				break
			}
			res := ip.Eval(n.Body, env)
			if res.Kind == VBreak {
				return Null
			}
			if res.Kind == VReturn {
				return res
			}
			if n.Post != nil {
				ip.Eval(n.Post, env)
			}
		}
		return Null

	case *ForIn:
		return ip.evalForIn(n, env)

	case *Function:
		fn := FunctionVal(&FunctionValue{
			Name:     n.Name,
			Params:   n.Params,
			Defaults: n.Defaults,
			Body:     n.Body,
			Closure:  env,
		})
		ip.bind(env, n.Name, fn)
		return Null

	case *Lambda:
		return FunctionVal(&FunctionValue{
			Params:   n.Params,
			Defaults: n.Defaults,
			Body:     n.Body,
			Closure:  env,
		})

	case *Call:
		return ip.evalCall(n, env)

	case *Return:
		if n.Value == nil {
			return returnVal(nil)
		}
		inner := ip.Eval(n.Value, env)
		return returnVal(&inner)

	case *Break:
		return breakVal()

	case *Continue:
		return continueVal()

	case *Block:
		result := Null
		for _, stmt := range n.Statements {
			result = ip.Eval(stmt, env)
			if result.isSentinel() {
				return result
			}
		}
		return result

	case *Namespace:
		return ip.evalNamespace(n, env)

	case *Enum:
		for i, member := range n.Members {
			full := n.Name + "." + member
			if err := env.Declare(full, NumberVal(n.Values[i]), true, ""); err != nil {
				ip.diagf("%v", err)
			}
		}
		return Null

	case *Class:
		// Classes parse but have no evaluation rule (no runtime class
		// object, no inheritance).
		return Null

	case *ArrayLit:
		elems := make([]Value, 0, len(n.Elements))
		for _, e := range n.Elements {
			elems = append(elems, ip.Eval(e, env))
		}
		return ArrayVal(elems)

	case *MapLit:
		m := NewMapObject()
		for i, kn := range n.Keys {
			key := ip.Eval(kn, env)
			m.Set(key.Str(), ip.Eval(n.Values[i], env))
		}
		return MapVal(m)

	case *Index:
		obj := ip.Eval(n.Object, env)
		idx := ip.Eval(n.Index, env)
		if obj.Kind == VArray && idx.Kind == VNumber {
			elems := obj.Array()
			i := int(idx.Num())
			if i >= 0 && i < len(elems) {
				return elems[i].Clone() // copy-on-read
			}
		}
		return Null

	case *Match:
		return ip.evalMatch(n, env)

	case *Try:
		return ip.evalTry(n, env)
	}

	// Unknown node: stay resilient for the REPL.
	return Null
}

// bind installs a function binding in the current scope, replacing an
// existing non-const binding of the same name (re-declaring a function is
// allowed).
func (ip *Interpreter) bind(env *Environment, name string, v Value) {
	if b := env.find(name); b != nil {
		if b.isConst {
			ip.diagf("Cannot assign to const variable: %s", name)
			return
		}
		b.value = v
		return
	}
	env.bindings = append(env.bindings, binding{name: name, value: v})
}

// --- operators -------------------------------------------------------------

func (ip *Interpreter) evalBinary(n *Binary, env *Environment) Value {
	left := ip.Eval(n.Left, env)
	right := ip.Eval(n.Right, env)

	switch n.Op {
	case PLUS:
		// `+` is overloaded: any string operand turns the operation into
		// stringify-and-concatenate.
		if left.Kind == VString || right.Kind == VString {
			return StringVal(DisplayString(left) + DisplayString(right))
		}
		return ip.arith(n.Op, left, right)
	case MINUS, STAR, SLASH, PERCENT:
		return ip.arith(n.Op, left, right)

	case EQ:
		return BooleanVal(left.Equal(right))
	case NEQ:
		return BooleanVal(!left.Equal(right))

	case LT, GT, LTE, GTE:
		if left.Kind != VNumber || right.Kind != VNumber {
			ip.diagf("Type mismatch: comparison requires numbers, got %s and %s", left.TypeName(), right.TypeName())
			return BooleanVal(false)
		}
		a, b := left.Num(), right.Num()
		switch n.Op {
		case LT:
			return BooleanVal(a < b)
		case GT:
			return BooleanVal(a > b)
		case LTE:
			return BooleanVal(a <= b)
		default:
			return BooleanVal(a >= b)
		}

	case AND:
		// Both sides evaluate; there is no short circuit in SharpScript.
		return BooleanVal(left.Truthy() && right.Truthy())
	case OR:
		return BooleanVal(left.Truthy() || right.Truthy())
	}

	return Null
}

func (ip *Interpreter) arith(op TokenType, left, right Value) Value {
	if left.Kind != VNumber || right.Kind != VNumber {
		ip.diagf("Type mismatch: arithmetic requires numbers, got %s and %s", left.TypeName(), right.TypeName())
		return Null
	}
	a, b := left.Num(), right.Num()
	switch op {
	case PLUS:
		return NumberVal(a + b)
	case MINUS:
		return NumberVal(a - b)
	case STAR:
		return NumberVal(a * b)
	case SLASH:
		return NumberVal(a / b)
	case PERCENT:
		return NumberVal(math.Mod(a, b))
	}
	return Null
}

func (ip *Interpreter) evalUnary(n *Unary, env *Environment) Value {
	operand := ip.Eval(n.Operand, env)
	switch n.Op {
	case NOT:
		return BooleanVal(!operand.Truthy())
	case MINUS:
		if operand.Kind != VNumber {
			ip.diagf("Type mismatch: negation requires a number, got %s", operand.TypeName())
			return Null
		}
		return NumberVal(-operand.Num())
	}
	return Null
}

// --- assignment ------------------------------------------------------------

var compoundOps = map[TokenType]TokenType{
	PLUS_ASSIGN:  PLUS,
	MINUS_ASSIGN: MINUS,
	STAR_ASSIGN:  STAR,
	SLASH_ASSIGN: SLASH,
	PCT_ASSIGN:   PERCENT,
}

func (ip *Interpreter) evalAssign(n *Assign, env *Environment) Value {
	value := ip.Eval(n.Value, env)

	switch n.Op {
	case KW_INSERT, KW_CONST:
		if n.TypeName != "" && n.TypeName != "unknown" && n.TypeName != value.TypeName() {
			ip.diagf("Type mismatch for %s: declared %s, got %s", n.Name, n.TypeName, value.TypeName())
			return Null
		}
		if err := env.Declare(n.Name, value, n.Op == KW_CONST, n.TypeName); err != nil {
			ip.diagf("%v", err)
		}
		return Null

	case ASSIGN:
		if err := env.Set(n.Name, value); err != nil {
			ip.diagf("%v", err)
		}
		return Null
	}

	if op, ok := compoundOps[n.Op]; ok {
		// Read-modify-write only when both sides are numeric; otherwise the
		// new right-hand value is stored as-is (documented leniency, not an
		// error).
		if old, found := env.Lookup(n.Name); found && old.Kind == VNumber && value.Kind == VNumber {
			value = ip.arith(op, old, value)
		}
		if err := env.Set(n.Name, value); err != nil {
			ip.diagf("%v", err)
		}
	}
	return Null
}

// --- loops over collections ------------------------------------------------

func (ip *Interpreter) evalForIn(n *ForIn, env *Environment) Value {
	coll := ip.Eval(n.Collection, env)

	var items []Value
	switch coll.Kind {
	case VArray:
		items = coll.Array()
	case VMap:
		// Each pair becomes a synthetic {key, value} record.
		m := coll.MapObject()
		for _, k := range m.Keys {
			rec := NewMapObject()
			rec.Set("key", StringVal(k))
			rec.Set("value", m.Entries[k].Clone())
			items = append(items, MapVal(rec))
		}
	default:
		ip.diagf("for-in requires an array or map, got %s", coll.TypeName())
		return Null
	}

	if !env.Has(n.Var) {
		if err := env.Declare(n.Var, Null, false, ""); err != nil {
			ip.diagf("%v", err)
			return Null
		}
	}

	for _, item := range items {
		if err := env.Set(n.Var, item.Clone()); err != nil {
			ip.diagf("%v", err)
			return Null
		}
		res := ip.Eval(n.Body, env)
		if res.Kind == VBreak {
			return Null
		}
		if res.Kind == VReturn {
			return res
		}
	}
	return Null
}

// --- calls -----------------------------------------------------------------

func (ip *Interpreter) evalCall(n *Call, env *Environment) Value {
	// Builtins win by exact dotted name before any user lookup.
	if fn, ok := ip.builtins[n.Name]; ok {
		return fn(ip, env, n.Args)
	}

	fv, ok := env.Lookup(n.Name)
	if !ok || fv.Kind != VFunction {
		ip.diagf("Undefined function: %s", n.Name)
		return Null
	}
	fn := fv.Function()

	// Fresh scope parented at the closure's defining environment. Each
	// parameter binds from the supplied argument, else its default
	// expression (evaluated in the caller's environment), else Null.
	callEnv := NewEnvironment(fn.Closure)
	for i, param := range fn.Params {
		var arg Value
		switch {
		case i < len(n.Args):
			arg = ip.Eval(n.Args[i], env)
		case i < len(fn.Defaults) && fn.Defaults[i] != nil:
			arg = ip.Eval(fn.Defaults[i], env)
		default:
			arg = Null
		}
		if err := callEnv.Declare(param, arg, false, ""); err != nil {
			ip.diagf("%v", err)
		}
	}
	if len(n.Args) > len(fn.Params) {
		ip.diagf("Too many arguments in call to %s: want %d, got %d", n.Name, len(fn.Params), len(n.Args))
	}

	result := ip.Eval(fn.Body, callEnv)

	// Only `return` produces a usable result; break/continue and plain
	// fall-through yield Null.
	if result.Kind == VReturn {
		if inner, _ := result.Data.(*Value); inner != nil {
			return *inner
		}
	}
	return Null
}

// Apply invokes a function value with already-evaluated arguments. Hosts and
// builtins use it for callbacks.
func (ip *Interpreter) Apply(fv Value, args []Value) Value {
	fn := fv.Function()
	if fn == nil {
		ip.diagf("Cannot call a %s value", fv.TypeName())
		return Null
	}
	callEnv := NewEnvironment(fn.Closure)
	for i, param := range fn.Params {
		arg := Null
		if i < len(args) {
			arg = args[i]
		}
		if err := callEnv.Declare(param, arg, false, ""); err != nil {
			ip.diagf("%v", err)
		}
	}
	result := ip.Eval(fn.Body, callEnv)
	if result.Kind == VReturn {
		if inner, _ := result.Data.(*Value); inner != nil {
			return *inner
		}
	}
	return Null
}

// --- namespaces ------------------------------------------------------------

func (ip *Interpreter) evalNamespace(n *Namespace, env *Environment) Value {
	nsEnv := NewEnvironment(env)
	ip.Eval(n.Body, nsEnv)

	// Flatten: every binding created in the namespace body lands in the
	// parent under "namespace.name", keeping its const flag. The temporary
	// scope is then discarded.
	nsEnv.Each(func(name string, v Value, isConst bool) {
		full := n.Name + "." + name
		if err := env.Declare(full, v.Clone(), isConst, ""); err != nil {
			ip.diagf("%v", err)
		}
	})
	return Null
}

// --- match -----------------------------------------------------------------

func (ip *Interpreter) evalMatch(n *Match, env *Environment) Value {
	subject := ip.Eval(n.Subject, env)

	for i, caseExpr := range n.Cases {
		if subject.Equal(ip.Eval(caseExpr, env)) {
			return ip.Eval(n.Bodies[i], env)
		}
	}
	if n.Default != nil {
		return ip.Eval(n.Default, env)
	}
	return Null
}

// --- try/catch/finally -----------------------------------------------------

// evalTry establishes one handler frame for the duration of the try block.
// Frames stack with the recursion, so nested try blocks each catch their
// own errors. The finally body always runs and its result is discarded.
func (ip *Interpreter) evalTry(n *Try, env *Environment) Value {
	if n.Finally != nil {
		defer ip.Eval(n.Finally, env)
	}

	var result Value
	caught := func() (te *thrownError) {
		defer func() {
			if r := recover(); r != nil {
				t, ok := r.(thrownError)
				if !ok {
					panic(r)
				}
				te = &t
			}
		}()
		result = ip.Eval(n.Block, env)
		return nil
	}()

	if caught == nil {
		return result
	}
	if n.Catch == nil {
		// No handler here: re-raise for an enclosing frame.
		panic(*caught)
	}
	if n.ErrVar != "" {
		errVal := Value{Kind: VError, Data: caught.value}
		if env.Has(n.ErrVar) {
			if err := env.Set(n.ErrVar, errVal); err != nil {
				ip.diagf("%v", err)
			}
		} else if err := env.Declare(n.ErrVar, errVal, false, ""); err != nil {
			ip.diagf("%v", err)
		}
	}
	return ip.Eval(n.Catch, env)
}
