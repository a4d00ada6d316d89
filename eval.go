// The recursive evaluator and the public API surface.
//
// Internals signal fatal conditions by panicking with rtErr (see errors.go)
// and unwind straight to the public entry points, which recover exactly
// once and hand back a structured *EvalError. Pattern-match failure during
// clause search is the one recoverable condition and travels as a plain
// boolean (match.go), never as a panic.
package miniml

import "fmt"

// evalExpr evaluates e in env. It is total over the closed Expr set;
// every failure is raised through fail/failErr.
func evalExpr(env *Env, e Expr) Value {
	switch e := e.(type) {
	case *Const:
		return e.Value

	case *Var:
		v, err := env.Lookup(e.Name)
		if err != nil {
			failErr(err)
		}
		return v

	case *Binary:
		left := evalExpr(env, e.Left)
		right := evalExpr(env, e.Right)
		return applyBinary(e.Op, left, right)

	case *Unary:
		return applyUnary(e.Op, evalExpr(env, e.Operand))

	case *ListLit:
		return List(evalElems(env, e.Elems))

	case *TupleLit:
		return Tuple(evalElems(env, e.Elems))

	case *ConsExpr:
		head := evalExpr(env, e.Head)
		tail := evalExpr(env, e.Tail)
		if tail.Tag == VTList {
			xs := tail.Data.([]Value)
			out := make([]Value, 0, len(xs)+1)
			out = append(out, head)
			out = append(out, xs...)
			return List(out)
		}
		// Cons onto a non-list tail yields the two-element list
		// [head, tail] rather than a type error.
		return List([]Value{head, tail})

	case *If:
		cond := evalExpr(env, e.Cond)
		if cond.Tag != VTBool {
			fail(ErrCondType, "if condition must be a boolean, got %s", cond)
		}
		if cond.Data.(bool) {
			return evalExpr(env, e.Then)
		}
		return evalExpr(env, e.Else)

	case *Let:
		cur := env
		for _, b := range e.Binds {
			cur = evalBind(cur, b.Rec, b.Pat, b.RHS)
		}
		return evalExpr(cur, e.Body)

	case *FunLit:
		// Closures capture the current environment eagerly, at evaluation
		// time, not at first call.
		return FunVal(&Closure{Param: e.Param, Body: e.Body, Env: env})

	case *Apply:
		fn := evalExpr(env, e.Fn)
		arg := evalExpr(env, e.Arg)
		if fn.Tag != VTFun {
			fail(ErrNotFunction, "cannot apply %s", fn)
		}
		c := fn.Data.(*Closure)
		binds, ok := matchPattern(c.Param, arg)
		if !ok {
			fail(ErrBindMatch, "argument %s does not match the parameter pattern", arg)
		}
		// The body runs in the closure's captured environment, not the
		// call site's; that is what gives lexical scoping.
		callEnv := c.Env
		for _, b := range binds {
			callEnv = callEnv.Extend(b.Name, b.Value)
		}
		return evalExpr(callEnv, c.Body)

	case *MatchExpr:
		scrut := evalExpr(env, e.Scrutinee)
		for _, cl := range e.Clauses {
			binds, ok := matchPattern(cl.Pat, scrut)
			if !ok {
				continue
			}
			clauseEnv := env
			for _, b := range binds {
				clauseEnv = clauseEnv.Extend(b.Name, b.Value)
			}
			return evalExpr(clauseEnv, cl.Body)
		}
		fail(ErrMatchExhausted, "no clause matched %s", scrut)
	}

	fail(ErrRuntime, "unknown expression node %T", e)
	return Value{}
}

func evalElems(env *Env, elems []Expr) []Value {
	out := make([]Value, len(elems))
	for i, el := range elems {
		out[i] = evalExpr(env, el)
	}
	return out
}

// evalBind applies the binding protocol. Non-recursive bindings evaluate
// the right-hand side in the incoming environment (it must not see its
// own binding) and extend. Recursive bindings reserve every name the
// pattern binds first, evaluate the right-hand side in the reserved
// environment so closures created there capture the cells, then emplace
// the matched results into those same cells.
func evalBind(env *Env, rec bool, pat Pattern, rhs Expr) *Env {
	if !rec {
		v := evalExpr(env, rhs)
		binds, ok := matchPattern(pat, v)
		if !ok {
			fail(ErrBindMatch, "pattern did not match bound value %s", v)
		}
		for _, b := range binds {
			env = env.Extend(b.Name, b.Value)
		}
		return env
	}

	names, err := collectPatternNames(pat)
	if err != nil {
		failErr(err)
	}
	for _, n := range names {
		env = env.Reserve(n)
	}
	v := evalExpr(env, rhs)
	binds, ok := matchPattern(pat, v)
	if !ok {
		fail(ErrBindMatch, "pattern did not match bound value %s", v)
	}
	for _, b := range binds {
		env.Emplace(b.Name, b.Value)
	}
	return env
}

// evalDecl folds one declaration into env. Only binding declarations are
// supported.
func evalDecl(env *Env, d Decl) *Env {
	switch d := d.(type) {
	case *LetDecl:
		return evalBind(env, d.Rec, d.Pat, d.RHS)
	default:
		fail(ErrUnsupportedDecl, "unsupported declaration %T", d)
		return nil
	}
}

// recoverEval converts the internal panic payload into the public error.
// Host panics that are not rtErr (integer division by zero, for one)
// surface as ErrRuntime.
func recoverEval(err *error) {
	if r := recover(); r != nil {
		switch sig := r.(type) {
		case rtErr:
			*err = &EvalError{Kind: sig.kind, Msg: sig.msg}
		case error:
			*err = &EvalError{Kind: ErrRuntime, Msg: sig.Error()}
		default:
			*err = &EvalError{Kind: ErrRuntime, Msg: fmt.Sprintf("runtime panic: %v", r)}
		}
	}
}

// EvalExpression evaluates e in env. On failure the returned error is a
// *EvalError carrying the condition kind.
func EvalExpression(env *Env, e Expr) (v Value, err error) {
	defer recoverEval(&err)
	return evalExpr(env, e), nil
}

// EvalDeclaration folds one declaration into env, returning the extended
// environment.
func EvalDeclaration(env *Env, d Decl) (out *Env, err error) {
	defer recoverEval(&err)
	return evalDecl(env, d), nil
}

// RunProgram evaluates decls in order, starting from the empty
// environment, and renders the final environment (see RenderEnvironment).
func RunProgram(decls []Decl) (s string, err error) {
	defer recoverEval(&err)
	var env *Env
	for _, d := range decls {
		env = evalDecl(env, d)
	}
	out, rerr := RenderEnvironment(env)
	if rerr != nil {
		failErr(rerr)
	}
	return out, nil
}

// RunSource parses src as a declaration sequence and runs it.
func RunSource(src string) (string, error) {
	decls, err := ParseProgram(src)
	if err != nil {
		return "", err
	}
	return RunProgram(decls)
}
