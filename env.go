package miniml

// Env is a persistent environment: each frame binds exactly one name to a
// cell and points at its parent, so extending never mutates structure that
// a closure may already hold. The empty environment is the nil *Env.
//
// Recursive bindings use the two-phase cell protocol: Reserve adds an
// unfilled cell before the right-hand side is evaluated, and Emplace fills
// it in place afterwards. Every holder of the frame, including any
// closure created while evaluating the right-hand side, observes the
// filled value through the shared cell pointer.
type Env struct {
	name   string
	cell   *cell
	parent *Env
}

// cell is the two-phase binding slot. filled is false only between
// Reserve and Emplace of the same recursive binding group.
type cell struct {
	v      Value
	filled bool
}

// Extend returns a new environment with name immediately bound to v.
func (e *Env) Extend(name string, v Value) *Env {
	return &Env{name: name, cell: &cell{v: v, filled: true}, parent: e}
}

// Reserve returns a new environment holding an unfilled cell for name.
func (e *Env) Reserve(name string) *Env {
	return &Env{name: name, cell: &cell{}, parent: e}
}

// Lookup returns the value bound to the nearest visible cell for name.
func (e *Env) Lookup(name string) (Value, error) {
	for f := e; f != nil; f = f.parent {
		if f.name == name {
			if !f.cell.filled {
				// A reserved cell is only visible while the evaluator is
				// mid-way through a recursive binding group; reading one is
				// a bug in the evaluator, not a user-reachable state.
				panic("miniml: lookup of reserved binding cell: " + name)
			}
			return f.cell.v, nil
		}
	}
	return Value{}, &EvalError{Kind: ErrUnboundVariable, Msg: "unbound variable: " + name}
}

// Emplace fills the nearest reserved cell for name in place.
func (e *Env) Emplace(name string, v Value) {
	for f := e; f != nil; f = f.parent {
		if f.name == name {
			if f.cell.filled {
				panic("miniml: emplace into an already filled cell: " + name)
			}
			f.cell.v = v
			f.cell.filled = true
			return
		}
	}
	panic("miniml: emplace into an unreserved name: " + name)
}

// bindings returns the visible (name, value) pairs in insertion order.
// The spine is newest-first, so the first cell seen for a name is the one
// that survives shadowing; older duplicates are skipped, then the walk is
// reversed to restore insertion order.
func (e *Env) bindings() []Binding {
	seen := map[string]struct{}{}
	var out []Binding
	for f := e; f != nil; f = f.parent {
		if _, ok := seen[f.name]; ok {
			continue
		}
		seen[f.name] = struct{}{}
		if !f.cell.filled {
			panic("miniml: traversal of reserved binding cell: " + f.name)
		}
		out = append(out, Binding{Name: f.name, Value: f.cell.v})
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
