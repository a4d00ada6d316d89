// Recursive-descent parser producing the ast.go node set.
//
// Precedence, loosest to tightest:
//
//	|| ; && ; = != < <= > >= ; :: (right) ; + - ; * / ; unary - not ;
//	application (juxtaposition, left) ; atoms
//
// The prefix forms (let-in, fun, if, match) start an expression and extend
// as far right as possible; use parentheses to embed them as operands.
// Top-level programs are declarations separated by ';', each optionally
// prefixed with 'let' / 'let rec', with the usual function sugar:
// 'f x y = e' binds f to 'fun x -> fun y -> e'.
package miniml

import "fmt"

// ParseError is a positioned syntax failure. Line is 1-based, Col 0-based.
type ParseError struct {
	Line  int
	Col   int
	Msg   string
	atEOF bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether err is a parse failure caused by running
// out of input; the REPL uses it to prompt for a continuation line.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.atEOF
}

type parseSig struct{ err *ParseError }

// Parser consumes a token stream produced by the lexer.
type Parser struct {
	toks []Token
	pos  int
}

// ParseProgram parses src as a sequence of top-level declarations.
func ParseProgram(src string) (decls []Decl, err error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	defer recoverParse(&err)
	return p.parseProgram(), nil
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string) (e Expr, err error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	defer recoverParse(&err)
	expr := p.parseExpr()
	p.expect(EOF, "end of input")
	return expr, nil
}

func newParser(src string) (*Parser, error) {
	toks, err := NewLexer(src).Tokenize()
	if err != nil {
		return nil, err
	}
	return &Parser{toks: toks}, nil
}

func recoverParse(err *error) {
	if r := recover(); r != nil {
		sig, ok := r.(parseSig)
		if !ok {
			panic(r)
		}
		*err = sig.err
	}
}

func (p *Parser) peek() Token { return p.toks[p.pos] }

func (p *Parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) accept(tt TokenType) bool {
	if p.peek().Type == tt {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(tt TokenType, what string) Token {
	if p.peek().Type != tt {
		p.fail("expected %s", what)
	}
	return p.next()
}

func (p *Parser) fail(format string, args ...any) {
	tok := p.peek()
	msg := fmt.Sprintf(format, args...)
	if tok.Type == EOF {
		msg += ", found end of input"
	} else {
		msg += fmt.Sprintf(", found %q", tok.Lexeme)
	}
	panic(parseSig{&ParseError{Line: tok.Line, Col: tok.Col, Msg: msg, atEOF: tok.Type == EOF}})
}

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

func (p *Parser) parseProgram() []Decl {
	var decls []Decl
	for p.peek().Type != EOF {
		d := p.parseDecl()
		decls = append(decls, d)
		if !p.accept(SEMI) {
			break
		}
	}
	p.expect(EOF, "';' or end of program")
	return decls
}

func (p *Parser) parseDecl() Decl {
	p.accept(LET)
	rec := p.accept(REC)
	pat, rhs := p.parseBindingCore(rec)
	return &LetDecl{Rec: rec, Pat: pat, RHS: rhs}
}

// parseBindingCore parses "pattern = expr" with function sugar: when the
// pattern is a bare identifier followed by parameter atoms, the right-hand
// side is wrapped into a curried chain of function literals.
func (p *Parser) parseBindingCore(rec bool) (Pattern, Expr) {
	pat := p.parsePattern()
	var params []Pattern
	if _, ok := pat.(*PVar); ok {
		for p.peek().Type != EQ && startsPatternAtom(p.peek().Type) {
			params = append(params, p.parsePatternAtom())
		}
	}
	p.expect(EQ, "'='")
	rhs := p.parseExpr()
	for i := len(params) - 1; i >= 0; i-- {
		rhs = &FunLit{Param: params[i], Body: rhs}
	}
	return pat, rhs
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func (p *Parser) parseExpr() Expr {
	switch p.peek().Type {
	case LET:
		return p.parseLetExpr()
	case FUN:
		return p.parseFunExpr()
	case IF:
		return p.parseIfExpr()
	case MATCH:
		return p.parseMatchExpr()
	}
	return p.parseOr()
}

func (p *Parser) parseLetExpr() Expr {
	p.expect(LET, "'let'")
	rec := p.accept(REC)
	var binds []Bind
	pat, rhs := p.parseBindingCore(rec)
	binds = append(binds, Bind{Rec: rec, Pat: pat, RHS: rhs})
	for p.accept(KWAND) {
		pat, rhs := p.parseBindingCore(rec)
		binds = append(binds, Bind{Rec: rec, Pat: pat, RHS: rhs})
	}
	p.expect(IN, "'in'")
	body := p.parseExpr()
	return &Let{Binds: binds, Body: body}
}

func (p *Parser) parseFunExpr() Expr {
	p.expect(FUN, "'fun'")
	var params []Pattern
	for startsPatternAtom(p.peek().Type) {
		params = append(params, p.parsePatternAtom())
	}
	if len(params) == 0 {
		p.fail("expected a parameter pattern")
	}
	p.expect(ARROW, "'->'")
	body := p.parseExpr()
	for i := len(params) - 1; i >= 0; i-- {
		body = &FunLit{Param: params[i], Body: body}
	}
	return body
}

func (p *Parser) parseIfExpr() Expr {
	p.expect(IF, "'if'")
	cond := p.parseExpr()
	p.expect(THEN, "'then'")
	then := p.parseExpr()
	p.expect(ELSE, "'else'")
	els := p.parseExpr()
	return &If{Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseMatchExpr() Expr {
	p.expect(MATCH, "'match'")
	scrut := p.parseExpr()
	p.expect(WITH, "'with'")
	p.accept(PIPE) // optional leading '|'
	var clauses []Clause
	for {
		pat := p.parsePattern()
		p.expect(ARROW, "'->'")
		body := p.parseExpr()
		clauses = append(clauses, Clause{Pat: pat, Body: body})
		if !p.accept(PIPE) {
			break
		}
	}
	return &MatchExpr{Scrutinee: scrut, Clauses: clauses}
}

func (p *Parser) parseOr() Expr {
	left := p.parseAnd()
	for p.peek().Type == OR {
		p.next()
		left = &Binary{Op: OpOr, Left: left, Right: p.parseAnd()}
	}
	return left
}

func (p *Parser) parseAnd() Expr {
	left := p.parseCmp()
	for p.peek().Type == AND {
		p.next()
		left = &Binary{Op: OpAnd, Left: left, Right: p.parseCmp()}
	}
	return left
}

var cmpOps = map[TokenType]BinOp{
	EQ:         OpEq,
	NEQ:        OpNe,
	LESS:       OpLt,
	LESS_EQ:    OpLe,
	GREATER:    OpGt,
	GREATER_EQ: OpGe,
}

func (p *Parser) parseCmp() Expr {
	left := p.parseCons()
	for {
		op, ok := cmpOps[p.peek().Type]
		if !ok {
			return left
		}
		p.next()
		left = &Binary{Op: op, Left: left, Right: p.parseCons()}
	}
}

func (p *Parser) parseCons() Expr {
	head := p.parseAdd()
	if p.accept(CONS) {
		return &ConsExpr{Head: head, Tail: p.parseCons()}
	}
	return head
}

func (p *Parser) parseAdd() Expr {
	left := p.parseMul()
	for {
		switch p.peek().Type {
		case PLUS:
			p.next()
			left = &Binary{Op: OpAdd, Left: left, Right: p.parseMul()}
		case MINUS:
			p.next()
			left = &Binary{Op: OpSub, Left: left, Right: p.parseMul()}
		default:
			return left
		}
	}
}

func (p *Parser) parseMul() Expr {
	left := p.parseUnary()
	for {
		switch p.peek().Type {
		case STAR:
			p.next()
			left = &Binary{Op: OpMul, Left: left, Right: p.parseUnary()}
		case SLASH:
			p.next()
			left = &Binary{Op: OpDiv, Left: left, Right: p.parseUnary()}
		default:
			return left
		}
	}
}

func (p *Parser) parseUnary() Expr {
	switch p.peek().Type {
	case MINUS:
		p.next()
		return &Unary{Op: OpNeg, Operand: p.parseUnary()}
	case NOT:
		p.next()
		return &Unary{Op: OpNot, Operand: p.parseUnary()}
	}
	return p.parseApply()
}

func startsAtom(tt TokenType) bool {
	switch tt {
	case IDENT, INT, STRING, TRUE, FALSE, LPAREN, LBRACKET:
		return true
	}
	return false
}

func (p *Parser) parseApply() Expr {
	fn := p.parseAtom()
	for startsAtom(p.peek().Type) {
		fn = &Apply{Fn: fn, Arg: p.parseAtom()}
	}
	return fn
}

func (p *Parser) parseAtom() Expr {
	switch p.peek().Type {
	case INT:
		tok := p.next()
		return &Const{Value: Int(tok.Literal.(int64))}
	case STRING:
		tok := p.next()
		return &Const{Value: Str(tok.Literal.(string))}
	case TRUE:
		p.next()
		return &Const{Value: Bool(true)}
	case FALSE:
		p.next()
		return &Const{Value: Bool(false)}
	case IDENT:
		tok := p.next()
		return &Var{Name: tok.Lexeme}
	case LPAREN:
		p.next()
		first := p.parseExpr()
		if p.peek().Type == COMMA {
			elems := []Expr{first}
			for p.accept(COMMA) {
				elems = append(elems, p.parseExpr())
			}
			p.expect(RPAREN, "')'")
			return &TupleLit{Elems: elems}
		}
		p.expect(RPAREN, "')'")
		return first
	case LBRACKET:
		p.next()
		if p.accept(RBRACKET) {
			return &ListLit{}
		}
		elems := []Expr{p.parseExpr()}
		for p.accept(SEMI) {
			elems = append(elems, p.parseExpr())
		}
		p.expect(RBRACKET, "']'")
		return &ListLit{Elems: elems}
	}
	p.fail("expected an expression")
	return nil
}

// ---------------------------------------------------------------------------
// Patterns
// ---------------------------------------------------------------------------

func startsPatternAtom(tt TokenType) bool {
	switch tt {
	case UNDERSCORE, IDENT, INT, STRING, TRUE, FALSE, MINUS, LPAREN, LBRACKET:
		return true
	}
	return false
}

func (p *Parser) parsePattern() Pattern {
	head := p.parsePatternAtom()
	if p.accept(CONS) {
		return &PCons{Head: head, Tail: p.parsePattern()}
	}
	return head
}

func (p *Parser) parsePatternAtom() Pattern {
	switch p.peek().Type {
	case UNDERSCORE:
		p.next()
		return &PWild{}
	case IDENT:
		tok := p.next()
		return &PVar{Name: tok.Lexeme}
	case INT:
		tok := p.next()
		return &PConst{Value: Int(tok.Literal.(int64))}
	case MINUS:
		p.next()
		tok := p.expect(INT, "an integer literal")
		return &PConst{Value: Int(-tok.Literal.(int64))}
	case STRING:
		tok := p.next()
		return &PConst{Value: Str(tok.Literal.(string))}
	case TRUE:
		p.next()
		return &PConst{Value: Bool(true)}
	case FALSE:
		p.next()
		return &PConst{Value: Bool(false)}
	case LPAREN:
		p.next()
		first := p.parsePattern()
		if p.peek().Type == COMMA {
			elems := []Pattern{first}
			for p.accept(COMMA) {
				elems = append(elems, p.parsePattern())
			}
			p.expect(RPAREN, "')'")
			return &PTuple{Elems: elems}
		}
		p.expect(RPAREN, "')'")
		return first
	case LBRACKET:
		p.next()
		if p.accept(RBRACKET) {
			return &PList{}
		}
		elems := []Pattern{p.parsePattern()}
		for p.accept(SEMI) {
			elems = append(elems, p.parsePattern())
		}
		p.expect(RBRACKET, "']'")
		return &PList{Elems: elems}
	}
	p.fail("expected a pattern")
	return nil
}
