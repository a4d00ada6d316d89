package miniml

import (
	"fmt"
	"strconv"
)

// ValueTag enumerates the runtime kinds a Value may hold.
// The tag determines which Go type Value.Data carries.
type ValueTag int

const (
	VTInt   ValueTag = iota // int64
	VTBool                  // bool
	VTStr                   // string
	VTTuple                 // []Value
	VTList                  // []Value
	VTFun                   // *Closure
)

// Value is the universal runtime carrier. Values are immutable once
// constructed; the element slices of tuples and lists are never written
// after construction, so sharing them is safe.
type Value struct {
	Tag  ValueTag
	Data any
}

// Constructors.
func Int(n int64) Value       { return Value{Tag: VTInt, Data: n} }
func Bool(b bool) Value       { return Value{Tag: VTBool, Data: b} }
func Str(s string) Value      { return Value{Tag: VTStr, Data: s} }
func Tuple(xs []Value) Value  { return Value{Tag: VTTuple, Data: xs} }
func List(xs []Value) Value   { return Value{Tag: VTList, Data: xs} }
func FunVal(c *Closure) Value { return Value{Tag: VTFun, Data: c} }

// Closure is a function value: one parameter pattern, a body, and the
// environment captured at the definition site. The captured Env is shared,
// not copied: emplacing a reserved cell after the closure is built is
// observable through it, which is what makes `let rec` work.
type Closure struct {
	Param Pattern
	Body  Expr
	Env   *Env
}

// String renders a short debug representation; the user-facing display
// convention lives in printer.go.
func (v Value) String() string {
	switch v.Tag {
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTStr:
		return fmt.Sprintf("%q", v.Data.(string))
	case VTTuple:
		return fmt.Sprintf("<tuple len=%d>", len(v.Data.([]Value)))
	case VTList:
		return fmt.Sprintf("<list len=%d>", len(v.Data.([]Value)))
	case VTFun:
		return "<fun>"
	default:
		return "<unknown>"
	}
}
