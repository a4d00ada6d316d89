package miniml

import "fmt"

// ErrKind classifies evaluation failures. Every kind aborts the whole
// evaluation; the pattern-trial signal used for match-clause backtracking
// is a plain boolean (see match.go) and never appears here.
type ErrKind int

const (
	ErrRuntime         ErrKind = iota // recovered host panic (e.g. division by zero)
	ErrUnboundVariable                // variable lookup miss
	ErrOperatorMismatch
	ErrTupleArity // ordering comparison between tuples of different arity
	ErrMatchExhausted
	ErrNotFunction
	ErrCondType
	ErrUnaryOperand
	ErrUnsupportedDecl
	ErrPatternNames // bound-name collection on a pattern that binds none
	ErrBindMatch    // refutable binding/parameter pattern did not match
	ErrNotBasicType // stringify of a shape outside the display convention
)

var errKindNames = [...]string{
	ErrRuntime:          "runtime error",
	ErrUnboundVariable:  "unbound variable",
	ErrOperatorMismatch: "operator type mismatch",
	ErrTupleArity:       "tuple arity mismatch",
	ErrMatchExhausted:   "match exhausted",
	ErrNotFunction:      "application of non-function",
	ErrCondType:         "invalid condition type",
	ErrUnaryOperand:     "invalid operand type",
	ErrUnsupportedDecl:  "unsupported declaration",
	ErrPatternNames:     "pattern name collection",
	ErrBindMatch:        "binding match failure",
	ErrNotBasicType:     "not a basic type",
}

func (k ErrKind) String() string {
	if int(k) >= 0 && int(k) < len(errKindNames) {
		return errKindNames[k]
	}
	return "unknown error"
}

// EvalError is the structured error returned by every public Eval* entry
// point. Kind identifies the condition; Msg carries the specifics.
type EvalError struct {
	Kind ErrKind
	Msg  string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// rtErr is the internal panic payload used to unwind out of the recursive
// evaluator. It is converted to *EvalError exactly once, at the public API
// boundary (see eval.go). Always raise it through fail or failErr.
type rtErr struct {
	kind ErrKind
	msg  string
}

func fail(kind ErrKind, format string, args ...any) {
	panic(rtErr{kind: kind, msg: fmt.Sprintf(format, args...)})
}

// failErr re-raises an already-structured error without losing its kind.
func failErr(err error) {
	if ee, ok := err.(*EvalError); ok {
		panic(rtErr{kind: ee.Kind, msg: ee.Msg})
	}
	panic(rtErr{kind: ErrRuntime, msg: err.Error()})
}
