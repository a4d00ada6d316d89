package miniml

// Operator semantics. Both operands reach applyBinary already evaluated:
// the evaluator is strict left-to-right, and && / || deliberately do not
// short-circuit.

func applyBinary(op BinOp, a, b Value) Value {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		if a.Tag != VTInt || b.Tag != VTInt {
			fail(ErrOperatorMismatch, "operator %s expects integers, got %s and %s", op, a, b)
		}
		x, y := a.Data.(int64), b.Data.(int64)
		switch op {
		case OpAdd:
			return Int(x + y)
		case OpSub:
			return Int(x - y)
		case OpMul:
			return Int(x * y)
		default:
			// Division by zero panics in the host and is recovered at the
			// public boundary; it is not handled specially here.
			return Int(x / y)
		}

	case OpEq:
		return Bool(structuralEqual(a, b, true))
	case OpNe:
		return Bool(!structuralEqual(a, b, true))

	case OpLt, OpLe, OpGt, OpGe:
		c := compareValues(a, b)
		switch op {
		case OpLt:
			return Bool(c < 0)
		case OpLe:
			return Bool(c <= 0)
		case OpGt:
			return Bool(c > 0)
		default:
			return Bool(c >= 0)
		}

	case OpAnd, OpOr:
		if a.Tag != VTBool || b.Tag != VTBool {
			fail(ErrOperatorMismatch, "operator %s expects booleans, got %s and %s", op, a, b)
		}
		x, y := a.Data.(bool), b.Data.(bool)
		if op == OpAnd {
			return Bool(x && y)
		}
		return Bool(x || y)
	}

	fail(ErrOperatorMismatch, "unknown operator %s", op)
	return Value{}
}

func applyUnary(op UnOp, v Value) Value {
	switch op {
	case OpNeg:
		if v.Tag != VTInt {
			fail(ErrUnaryOperand, "unary - expects an integer, got %s", v)
		}
		return Int(-v.Data.(int64))
	case OpNot:
		if v.Tag != VTBool {
			fail(ErrUnaryOperand, "not expects a boolean, got %s", v)
		}
		return Bool(!v.Data.(bool))
	}
	fail(ErrUnaryOperand, "unknown unary operator %s", op)
	return Value{}
}

// structuralEqual implements = / != over same-typed pairs. Unlike the
// ordering comparison it has no tuple-arity precondition: tuples or lists
// of different size are simply unequal. Elements of differing runtime type
// are likewise unequal rather than an error. Functions are not comparable.
// top marks the outermost pair, where a type mismatch between the operands
// themselves is an operator error rather than plain inequality.
func structuralEqual(a, b Value, top bool) bool {
	if a.Tag == VTFun || b.Tag == VTFun {
		fail(ErrOperatorMismatch, "functions are not comparable")
	}
	if a.Tag != b.Tag {
		if top {
			fail(ErrOperatorMismatch, "cannot compare %s with %s", a, b)
		}
		return false
	}
	switch a.Tag {
	case VTInt:
		return a.Data.(int64) == b.Data.(int64)
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	case VTTuple, VTList:
		xs, ys := a.Data.([]Value), b.Data.([]Value)
		if len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if !structuralEqual(xs[i], ys[i], false) {
				return false
			}
		}
		return true
	}
	return false
}

// compareValues is the total structural order over the value variants:
// negative, zero, or positive like a three-way comparison. It is defined
// only for same-typed pairs; bools order false < true; tuples and lists
// order lexicographically by paired elements. Ordering two tuples of
// different arity is a distinguished error, since lexicographic order is
// ill-defined across arities. Lists of different length compare by common
// prefix, shorter first.
func compareValues(a, b Value) int {
	if a.Tag == VTFun || b.Tag == VTFun {
		fail(ErrOperatorMismatch, "functions are not comparable")
	}
	if a.Tag != b.Tag {
		fail(ErrOperatorMismatch, "cannot compare %s with %s", a, b)
	}
	switch a.Tag {
	case VTInt:
		x, y := a.Data.(int64), b.Data.(int64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case VTBool:
		x, y := a.Data.(bool), b.Data.(bool)
		switch {
		case !x && y:
			return -1
		case x && !y:
			return 1
		}
		return 0
	case VTStr:
		x, y := a.Data.(string), b.Data.(string)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case VTTuple:
		xs, ys := a.Data.([]Value), b.Data.([]Value)
		if len(xs) != len(ys) {
			fail(ErrTupleArity, "cannot order tuples of arity %d and %d", len(xs), len(ys))
		}
		for i := range xs {
			if c := compareValues(xs[i], ys[i]); c != 0 {
				return c
			}
		}
		return 0
	case VTList:
		xs, ys := a.Data.([]Value), b.Data.([]Value)
		n := len(xs)
		if len(ys) < n {
			n = len(ys)
		}
		for i := 0; i < n; i++ {
			if c := compareValues(xs[i], ys[i]); c != 0 {
				return c
			}
		}
		switch {
		case len(xs) < len(ys):
			return -1
		case len(xs) > len(ys):
			return 1
		}
		return 0
	}
	fail(ErrOperatorMismatch, "cannot compare %s with %s", a, b)
	return 0
}
