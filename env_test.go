package miniml

import "testing"

func mustLookup(t *testing.T, env *Env, name string) Value {
	t.Helper()
	v, err := env.Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	return v
}

func Test_Env_ExtendAndLookup(t *testing.T) {
	var env *Env
	env = env.Extend("x", Int(1))
	env = env.Extend("y", Int(2))
	wantInt(t, mustLookup(t, env, "x"), 1)
	wantInt(t, mustLookup(t, env, "y"), 2)

	_, err := env.Lookup("z")
	if err == nil {
		t.Fatal("want lookup miss, got none")
	}
	wantKind(t, err.(*EvalError), ErrUnboundVariable)
}

func Test_Env_ShadowingPicksNewest(t *testing.T) {
	var env *Env
	env = env.Extend("x", Int(1))
	env = env.Extend("x", Int(2))
	wantInt(t, mustLookup(t, env, "x"), 2)
}

func Test_Env_ExtendIsPersistent(t *testing.T) {
	var base *Env
	base = base.Extend("x", Int(1))
	// Extending must not disturb an environment captured earlier.
	_ = base.Extend("x", Int(99))
	wantInt(t, mustLookup(t, base, "x"), 1)
}

func Test_Env_ReserveEmplace(t *testing.T) {
	var env *Env
	env = env.Reserve("f")

	// Another frame stacked on top still reaches the shared cell.
	inner := env.Extend("x", Int(1))
	env.Emplace("f", Int(42))

	wantInt(t, mustLookup(t, env, "f"), 42)
	wantInt(t, mustLookup(t, inner, "f"), 42)
}

func Test_Env_LookupOfReservedCellPanics(t *testing.T) {
	var env *Env
	env = env.Reserve("f")
	defer func() {
		if recover() == nil {
			t.Fatal("want panic on reserved-cell lookup")
		}
	}()
	_, _ = env.Lookup("f")
}

func Test_Env_EmplaceTwicePanics(t *testing.T) {
	var env *Env
	env = env.Reserve("f")
	env.Emplace("f", Int(1))
	defer func() {
		if recover() == nil {
			t.Fatal("want panic on double emplace")
		}
	}()
	env.Emplace("f", Int(2))
}

func Test_Env_BindingsOrderAndShadowing(t *testing.T) {
	var env *Env
	env = env.Extend("a", Int(1))
	env = env.Extend("b", Int(2))
	env = env.Extend("a", Int(3))

	got := env.bindings()
	want := []Binding{{"b", Int(2)}, {"a", Int(3)}}
	if len(got) != len(want) {
		t.Fatalf("want %d bindings, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].Name != want[i].Name {
			t.Fatalf("binding %d: want name %q, got %q", i, want[i].Name, got[i].Name)
		}
		wantInt(t, got[i].Value, want[i].Value.Data.(int64))
	}
}
