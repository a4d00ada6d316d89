package miniml

import "testing"

// catching converts the internal unwind into the public error shape so the
// comparison primitives can be exercised directly.
func catching(fn func()) (err error) {
	defer recoverEval(&err)
	fn()
	return nil
}

func Test_Compare_Ints(t *testing.T) {
	if c := compareValues(Int(1), Int(2)); c >= 0 {
		t.Fatalf("want negative, got %d", c)
	}
	if c := compareValues(Int(2), Int(2)); c != 0 {
		t.Fatalf("want zero, got %d", c)
	}
	if c := compareValues(Int(3), Int(2)); c <= 0 {
		t.Fatalf("want positive, got %d", c)
	}
}

func Test_Compare_BoolsFalseBeforeTrue(t *testing.T) {
	if c := compareValues(Bool(false), Bool(true)); c >= 0 {
		t.Fatalf("want negative, got %d", c)
	}
	if c := compareValues(Bool(true), Bool(true)); c != 0 {
		t.Fatalf("want zero, got %d", c)
	}
}

func Test_Compare_TuplesLexicographic(t *testing.T) {
	a := Tuple([]Value{Int(1), Int(2)})
	b := Tuple([]Value{Int(1), Int(3)})
	if c := compareValues(a, b); c >= 0 {
		t.Fatalf("want negative, got %d", c)
	}
}

func Test_Compare_TupleArityIsAnError(t *testing.T) {
	a := Tuple([]Value{Int(1), Int(2)})
	b := Tuple([]Value{Int(1), Int(2), Int(3)})
	err := catching(func() { compareValues(a, b) })
	if err == nil {
		t.Fatal("want error, got none")
	}
	wantKind(t, err.(*EvalError), ErrTupleArity)
}

func Test_Compare_ListsByPrefixThenLength(t *testing.T) {
	short := List([]Value{Int(1), Int(2)})
	long := List([]Value{Int(1), Int(2), Int(0)})
	if c := compareValues(short, long); c >= 0 {
		t.Fatalf("want negative, got %d", c)
	}
	bigger := List([]Value{Int(2)})
	if c := compareValues(bigger, long); c <= 0 {
		t.Fatalf("want positive, got %d", c)
	}
}

func Test_Compare_FunctionsRejected(t *testing.T) {
	f := FunVal(&Closure{Param: &PVar{Name: "x"}, Body: &Var{Name: "x"}})
	err := catching(func() { compareValues(f, f) })
	if err == nil {
		t.Fatal("want error, got none")
	}
	wantKind(t, err.(*EvalError), ErrOperatorMismatch)
}

func Test_Equal_NestedTypeMismatchIsFalseNotError(t *testing.T) {
	// At top level a type mismatch is an operator error; nested inside a
	// structure it is plain inequality.
	a := List([]Value{Int(1)})
	b := List([]Value{Str("1")})
	if structuralEqual(a, b, true) {
		t.Fatal("want unequal")
	}

	err := catching(func() { structuralEqual(Int(1), Str("1"), true) })
	if err == nil {
		t.Fatal("want error, got none")
	}
	wantKind(t, err.(*EvalError), ErrOperatorMismatch)
}

func Test_Equal_DeepStructures(t *testing.T) {
	a := Tuple([]Value{Int(1), List([]Value{Str("x"), Bool(true)})})
	b := Tuple([]Value{Int(1), List([]Value{Str("x"), Bool(true)})})
	if !structuralEqual(a, b, true) {
		t.Fatal("want equal")
	}
	c := Tuple([]Value{Int(1), List([]Value{Str("x"), Bool(false)})})
	if structuralEqual(a, c, true) {
		t.Fatal("want unequal")
	}
}

func Test_ApplyBinary_Arithmetic(t *testing.T) {
	wantInt(t, applyBinary(OpAdd, Int(2), Int(3)), 5)
	wantInt(t, applyBinary(OpSub, Int(2), Int(3)), -1)
	wantInt(t, applyBinary(OpMul, Int(2), Int(3)), 6)
	wantInt(t, applyBinary(OpDiv, Int(7), Int(2)), 3)
}

func Test_ApplyUnary(t *testing.T) {
	wantInt(t, applyUnary(OpNeg, Int(3)), -3)
	wantBool(t, applyUnary(OpNot, Bool(true)), false)
}
