package miniml

// Binding is one (name, value) pair produced by a successful pattern match.
type Binding struct {
	Name  string
	Value Value
}

// matchPattern destructures v against p, yielding the bound names in
// left-to-right structural order. The boolean result is the internal
// match-failure signal: callers decide whether a failed match is fatal
// (bindings, parameter passing) or means "try the next clause" (match
// expressions). It is never surfaced to users directly.
func matchPattern(p Pattern, v Value) ([]Binding, bool) {
	switch p := p.(type) {
	case *PWild:
		return nil, true

	case *PVar:
		return []Binding{{Name: p.Name, Value: v}}, true

	case *PConst:
		if p.Value.Tag != v.Tag {
			return nil, false
		}
		switch v.Tag {
		case VTInt:
			return nil, p.Value.Data.(int64) == v.Data.(int64)
		case VTBool:
			return nil, p.Value.Data.(bool) == v.Data.(bool)
		case VTStr:
			return nil, p.Value.Data.(string) == v.Data.(string)
		}
		return nil, false

	case *PCons:
		if v.Tag != VTList {
			return nil, false
		}
		xs := v.Data.([]Value)
		if len(xs) == 0 {
			return nil, false
		}
		head, ok := matchPattern(p.Head, xs[0])
		if !ok {
			return nil, false
		}
		tail, ok := matchPattern(p.Tail, List(xs[1:]))
		if !ok {
			return nil, false
		}
		return append(head, tail...), true

	case *PTuple:
		if v.Tag != VTTuple {
			return nil, false
		}
		return matchElems(p.Elems, v.Data.([]Value))

	case *PList:
		if v.Tag != VTList {
			return nil, false
		}
		return matchElems(p.Elems, v.Data.([]Value))
	}
	return nil, false
}

func matchElems(pats []Pattern, vals []Value) ([]Binding, bool) {
	if len(pats) != len(vals) {
		return nil, false
	}
	var out []Binding
	for i, sub := range pats {
		binds, ok := matchPattern(sub, vals[i])
		if !ok {
			return nil, false
		}
		out = append(out, binds...)
	}
	return out, true
}

// collectPatternNames enumerates the names p binds, in left-to-right
// structural order; it is used to pre-reserve the cells of a recursive
// binding. A constant pattern binds no names and is not a valid shape for
// a recursive binding, which is the one case this rejects.
func collectPatternNames(p Pattern) ([]string, error) {
	switch p := p.(type) {
	case *PWild:
		return nil, nil
	case *PVar:
		return []string{p.Name}, nil
	case *PConst:
		return nil, &EvalError{Kind: ErrPatternNames, Msg: "constant pattern binds no names"}
	case *PCons:
		head, err := collectPatternNames(p.Head)
		if err != nil {
			return nil, err
		}
		tail, err := collectPatternNames(p.Tail)
		if err != nil {
			return nil, err
		}
		return append(head, tail...), nil
	case *PTuple:
		return collectElemNames(p.Elems)
	case *PList:
		return collectElemNames(p.Elems)
	}
	return nil, &EvalError{Kind: ErrPatternNames, Msg: "unknown pattern shape"}
}

func collectElemNames(pats []Pattern) ([]string, error) {
	var out []string
	for _, sub := range pats {
		names, err := collectPatternNames(sub)
		if err != nil {
			return nil, err
		}
		out = append(out, names...)
	}
	return out, nil
}
