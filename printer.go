package miniml

import (
	"strconv"
	"strings"
)

// The fixed display convention: basic values as their literal text, tuples
// and lists as their elements' renderings joined by single spaces (lossy,
// nesting is not recoverable), and functions as the name of their parameter
// when it is a plain variable.

const errorToken = "error"

// Stringify renders v in the display convention.
func Stringify(v Value) (string, error) {
	if v.Tag == VTFun {
		c := v.Data.(*Closure)
		if p, ok := c.Param.(*PVar); ok {
			return p.Name, nil
		}
		return "", &EvalError{Kind: ErrNotBasicType, Msg: "function parameter is not a simple name"}
	}
	var b strings.Builder
	if err := writeBasic(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeBasic(b *strings.Builder, v Value) error {
	switch v.Tag {
	case VTInt:
		b.WriteString(strconv.FormatInt(v.Data.(int64), 10))
	case VTBool:
		b.WriteString(strconv.FormatBool(v.Data.(bool)))
	case VTStr:
		b.WriteString(v.Data.(string))
	case VTTuple, VTList:
		for i, el := range v.Data.([]Value) {
			if i > 0 {
				b.WriteByte(' ')
			}
			if err := writeBasic(b, el); err != nil {
				return err
			}
		}
	default:
		return &EvalError{Kind: ErrNotBasicType, Msg: "not a basic type: " + v.String()}
	}
	return nil
}

// FormatValue renders an optional value for display. An absent value, or
// one outside the display convention, renders as the fixed error token.
func FormatValue(v *Value) string {
	if v == nil {
		return errorToken
	}
	s, err := Stringify(*v)
	if err != nil {
		return errorToken
	}
	return s
}

// RenderEnvironment emits "<name> -> <value> " for every visible binding,
// in insertion order, with a trailing space after each entry. Names
// shadowed by a later rebind do not reappear.
func RenderEnvironment(env *Env) (string, error) {
	var b strings.Builder
	for _, bind := range env.bindings() {
		s, err := Stringify(bind.Value)
		if err != nil {
			return "", err
		}
		b.WriteString(bind.Name)
		b.WriteString(" -> ")
		b.WriteString(s)
		b.WriteByte(' ')
	}
	return b.String(), nil
}
