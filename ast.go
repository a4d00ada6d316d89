package miniml

// The abstract syntax consumed by the evaluator. The parser (parser.go)
// produces exactly these nodes; the evaluator requires nothing richer.

// BinOp enumerates the infix operators.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
)

var binOpNames = [...]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
	OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpEq: "=", OpNe: "!=", OpAnd: "&&", OpOr: "||",
}

func (op BinOp) String() string {
	if int(op) >= 0 && int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return "?"
}

// UnOp enumerates the prefix operators.
type UnOp int

const (
	OpNeg UnOp = iota // integer negation
	OpNot             // boolean not
)

func (op UnOp) String() string {
	if op == OpNeg {
		return "-"
	}
	return "not"
}

// Expr is the closed expression node set.
type Expr interface{ exprNode() }

type (
	// Const is a literal Int/Bool/Str constant carried as a ready Value.
	Const struct{ Value Value }

	// Var is a variable reference.
	Var struct{ Name string }

	// Binary applies an infix operator; both operands are evaluated
	// strictly, left to right.
	Binary struct {
		Op          BinOp
		Left, Right Expr
	}

	// Unary applies a prefix operator.
	Unary struct {
		Op      UnOp
		Operand Expr
	}

	// ListLit and TupleLit evaluate their elements in source order.
	ListLit  struct{ Elems []Expr }
	TupleLit struct{ Elems []Expr }

	// ConsExpr prepends Head to a List tail; a non-List tail becomes the
	// second element of a fresh two-element list.
	ConsExpr struct{ Head, Tail Expr }

	// If requires a Bool condition.
	If struct{ Cond, Then, Else Expr }

	// Bind is one binding of a let expression, individually flagged
	// recursive or not.
	Bind struct {
		Rec bool
		Pat Pattern
		RHS Expr
	}

	// Let evaluates its bindings left to right, threading the growing
	// environment, then evaluates Body in the final environment.
	Let struct {
		Binds []Bind
		Body  Expr
	}

	// FunLit is a single-parameter function literal; multi-argument
	// functions are curried chains of these.
	FunLit struct {
		Param Pattern
		Body  Expr
	}

	// Apply applies Fn to one argument.
	Apply struct{ Fn, Arg Expr }

	// Clause is one (pattern, branch) pair of a match expression.
	Clause struct {
		Pat  Pattern
		Body Expr
	}

	// MatchExpr evaluates the scrutinee once and tries clauses in source
	// order; the first structurally matching clause wins.
	MatchExpr struct {
		Scrutinee Expr
		Clauses   []Clause
	}
)

func (*Const) exprNode()     {}
func (*Var) exprNode()       {}
func (*Binary) exprNode()    {}
func (*Unary) exprNode()     {}
func (*ListLit) exprNode()   {}
func (*TupleLit) exprNode()  {}
func (*ConsExpr) exprNode()  {}
func (*If) exprNode()        {}
func (*Let) exprNode()       {}
func (*FunLit) exprNode()    {}
func (*Apply) exprNode()     {}
func (*MatchExpr) exprNode() {}

// Pattern is the closed pattern node set.
type Pattern interface{ patNode() }

type (
	// PWild matches anything and binds nothing.
	PWild struct{}

	// PVar binds the whole value to Name.
	PVar struct{ Name string }

	// PConst matches a basic value of the same type and equal content.
	PConst struct{ Value Value }

	// PCons matches a non-empty list; Tail matches the remainder
	// re-wrapped as a list.
	PCons struct{ Head, Tail Pattern }

	// PTuple matches a tuple of equal arity, positionally.
	PTuple struct{ Elems []Pattern }

	// PList matches a list of equal length, positionally.
	PList struct{ Elems []Pattern }
)

func (*PWild) patNode()  {}
func (*PVar) patNode()   {}
func (*PConst) patNode() {}
func (*PCons) patNode()  {}
func (*PTuple) patNode() {}
func (*PList) patNode()  {}

// Decl is a top-level declaration. The only supported shape is *LetDecl;
// the declaration evaluator rejects anything else.
type Decl interface{ declNode() }

// LetDecl is a top-level binding declaration.
type LetDecl struct {
	Rec bool
	Pat Pattern
	RHS Expr
}

func (*LetDecl) declNode() {}
