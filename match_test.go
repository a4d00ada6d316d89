package miniml

import "testing"

func mustMatch(t *testing.T, p Pattern, v Value) []Binding {
	t.Helper()
	binds, ok := matchPattern(p, v)
	if !ok {
		t.Fatalf("pattern %#v should match %v", p, v)
	}
	return binds
}

func mustNotMatch(t *testing.T, p Pattern, v Value) {
	t.Helper()
	if _, ok := matchPattern(p, v); ok {
		t.Fatalf("pattern %#v should not match %v", p, v)
	}
}

func Test_Match_WildcardAndVar(t *testing.T) {
	if binds := mustMatch(t, &PWild{}, Int(1)); len(binds) != 0 {
		t.Fatalf("wildcard bound names: %v", binds)
	}
	binds := mustMatch(t, &PVar{Name: "x"}, Str("hi"))
	if len(binds) != 1 || binds[0].Name != "x" {
		t.Fatalf("want one binding for x, got %v", binds)
	}
	wantStr(t, binds[0].Value, "hi")
}

func Test_Match_Const(t *testing.T) {
	mustMatch(t, &PConst{Value: Int(3)}, Int(3))
	mustNotMatch(t, &PConst{Value: Int(3)}, Int(4))
	mustNotMatch(t, &PConst{Value: Int(3)}, Str("3"))
	mustMatch(t, &PConst{Value: Bool(true)}, Bool(true))
	mustMatch(t, &PConst{Value: Str("a")}, Str("a"))
}

func Test_Match_Cons(t *testing.T) {
	p := &PCons{Head: &PVar{Name: "h"}, Tail: &PVar{Name: "t"}}

	binds := mustMatch(t, p, List([]Value{Int(1), Int(2), Int(3)}))
	if len(binds) != 2 {
		t.Fatalf("want 2 bindings, got %v", binds)
	}
	wantInt(t, binds[0].Value, 1)
	wantIntList(t, binds[1].Value, 2, 3)

	// The tail of a one-element list is the empty list, not a failure.
	binds = mustMatch(t, p, List([]Value{Int(9)}))
	wantIntList(t, binds[1].Value)

	mustNotMatch(t, p, List(nil))
	mustNotMatch(t, p, Int(1))
}

func Test_Match_TupleAndList(t *testing.T) {
	pt := &PTuple{Elems: []Pattern{&PVar{Name: "a"}, &PConst{Value: Int(2)}}}
	binds := mustMatch(t, pt, Tuple([]Value{Int(1), Int(2)}))
	wantInt(t, binds[0].Value, 1)
	mustNotMatch(t, pt, Tuple([]Value{Int(1), Int(3)}))
	mustNotMatch(t, pt, Tuple([]Value{Int(1), Int(2), Int(3)}))
	mustNotMatch(t, pt, List([]Value{Int(1), Int(2)}))

	pl := &PList{Elems: []Pattern{&PWild{}, &PVar{Name: "b"}}}
	binds = mustMatch(t, pl, List([]Value{Int(1), Int(2)}))
	wantInt(t, binds[0].Value, 2)
	mustNotMatch(t, pl, List([]Value{Int(1)}))
}

func Test_Match_NestedBindingOrder(t *testing.T) {
	// ((a, b) :: rest) binds left to right in structural order.
	p := &PCons{
		Head: &PTuple{Elems: []Pattern{&PVar{Name: "a"}, &PVar{Name: "b"}}},
		Tail: &PVar{Name: "rest"},
	}
	v := List([]Value{Tuple([]Value{Int(1), Int(2)})})
	binds := mustMatch(t, p, v)
	names := []string{"a", "b", "rest"}
	for i, n := range names {
		if binds[i].Name != n {
			t.Fatalf("binding %d: want %q, got %q", i, n, binds[i].Name)
		}
	}
}

func Test_CollectPatternNames(t *testing.T) {
	p := &PCons{
		Head: &PTuple{Elems: []Pattern{&PVar{Name: "a"}, &PWild{}}},
		Tail: &PVar{Name: "rest"},
	}
	names, err := collectPatternNames(p)
	if err != nil {
		t.Fatalf("collectPatternNames: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "rest" {
		t.Fatalf("want [a rest], got %v", names)
	}
}

func Test_CollectPatternNames_ConstRejected(t *testing.T) {
	// A constant pattern anywhere in the shape disqualifies it for a
	// recursive binding.
	_, err := collectPatternNames(&PConst{Value: Int(1)})
	if err == nil {
		t.Fatal("want error, got none")
	}
	wantKind(t, err.(*EvalError), ErrPatternNames)

	nested := &PTuple{Elems: []Pattern{&PVar{Name: "a"}, &PConst{Value: Int(1)}}}
	_, err = collectPatternNames(nested)
	if err == nil {
		t.Fatal("want error, got none")
	}
	wantKind(t, err.(*EvalError), ErrPatternNames)
}
