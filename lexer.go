package miniml

import (
	"fmt"
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LPAREN     // "("
	RPAREN     // ")"
	LBRACKET   // "["
	RBRACKET   // "]"
	COMMA      // ","
	SEMI       // ";"
	PIPE       // "|"
	ARROW      // "->"
	UNDERSCORE // "_"

	// Operators
	PLUS       // "+"
	MINUS      // "-"
	STAR       // "*"
	SLASH      // "/"
	CONS       // "::"
	EQ         // "="
	NEQ        // "!="
	LESS       // "<"
	LESS_EQ    // "<="
	GREATER    // ">"
	GREATER_EQ // ">="
	AND        // "&&"
	OR         // "||"

	// Literals & identifiers
	IDENT
	INT
	STRING

	// Keywords
	LET
	REC
	IN
	FUN
	MATCH
	WITH
	IF
	THEN
	ELSE
	NOT
	TRUE
	FALSE
	KWAND // "and", joins bindings of one let expression
)

// Token is a lexical token with an optional parsed literal value.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any // int64 for INT, string for STRING
	Line    int // 1-based
	Col     int // 0-based
}

var keywords = map[string]TokenType{
	"let":   LET,
	"rec":   REC,
	"in":    IN,
	"fun":   FUN,
	"match": MATCH,
	"with":  WITH,
	"if":    IF,
	"then":  THEN,
	"else":  ELSE,
	"not":   NOT,
	"true":  TRUE,
	"false": FALSE,
	"and":   KWAND,
}

// LexError is a positioned tokenization failure. Line is 1-based, Col is
// 0-based, matching Token.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Lexer scans a source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of the current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType, lit any) {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	})
	l.start = l.cur
}

func (l *Lexer) errorf(format string, args ...any) *LexError {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: fmt.Sprintf(format, args...)}
}

// match consumes the next byte if it equals want.
func (l *Lexer) match(want byte) bool {
	if ch, ok := l.peek(); ok && ch == want {
		l.advance()
		return true
	}
	return false
}

// skipWhitespace also skips (* ... *) comments, which nest.
func (l *Lexer) skipWhitespace() error {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '(':
			if nxt, ok := l.peekN(1); ok && nxt == '*' {
				if err := l.skipComment(); err != nil {
					return err
				}
				continue
			}
			l.start = l.cur
			return nil
		default:
			l.start = l.cur
			return nil
		}
	}
	l.start = l.cur
	return nil
}

func (l *Lexer) skipComment() error {
	l.tokStartLine, l.tokStartCol = l.line, l.col
	l.advance() // "("
	l.advance() // "*"
	depth := 1
	for depth > 0 {
		if l.isAtEnd() {
			return l.errorf("unterminated comment")
		}
		ch, _ := l.advance()
		if ch == '(' {
			if nxt, ok := l.peek(); ok && nxt == '*' {
				l.advance()
				depth++
			}
		} else if ch == '*' {
			if nxt, ok := l.peek(); ok && nxt == ')' {
				l.advance()
				depth--
			}
		}
	}
	return nil
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
func isAlpha(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
func isAlnum(ch byte) bool { return isAlpha(ch) || isDigit(ch) }

// Tokenize scans the whole source, ending the stream with an EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		if err := l.skipWhitespace(); err != nil {
			return nil, err
		}
		if l.isAtEnd() {
			break
		}
		l.tokStartLine, l.tokStartCol = l.line, l.col
		ch, _ := l.advance()

		switch {
		case isDigit(ch):
			if err := l.scanInt(); err != nil {
				return nil, err
			}
		case isAlpha(ch):
			l.scanIdent()
		case ch == '"':
			if err := l.scanString(); err != nil {
				return nil, err
			}
		case ch == '(':
			l.addToken(LPAREN, nil)
		case ch == ')':
			l.addToken(RPAREN, nil)
		case ch == '[':
			l.addToken(LBRACKET, nil)
		case ch == ']':
			l.addToken(RBRACKET, nil)
		case ch == ',':
			l.addToken(COMMA, nil)
		case ch == ';':
			l.addToken(SEMI, nil)
		case ch == '+':
			l.addToken(PLUS, nil)
		case ch == '*':
			l.addToken(STAR, nil)
		case ch == '/':
			l.addToken(SLASH, nil)
		case ch == '-':
			if l.match('>') {
				l.addToken(ARROW, nil)
			} else {
				l.addToken(MINUS, nil)
			}
		case ch == ':':
			if l.match(':') {
				l.addToken(CONS, nil)
			} else {
				return nil, l.errorf("unexpected character ':'")
			}
		case ch == '=':
			l.addToken(EQ, nil)
		case ch == '!':
			if l.match('=') {
				l.addToken(NEQ, nil)
			} else {
				return nil, l.errorf("unexpected character '!'")
			}
		case ch == '<':
			if l.match('=') {
				l.addToken(LESS_EQ, nil)
			} else {
				l.addToken(LESS, nil)
			}
		case ch == '>':
			if l.match('=') {
				l.addToken(GREATER_EQ, nil)
			} else {
				l.addToken(GREATER, nil)
			}
		case ch == '&':
			if l.match('&') {
				l.addToken(AND, nil)
			} else {
				return nil, l.errorf("unexpected character '&'")
			}
		case ch == '|':
			if l.match('|') {
				l.addToken(OR, nil)
			} else {
				l.addToken(PIPE, nil)
			}
		default:
			return nil, l.errorf("unexpected character %q", string(ch))
		}
	}

	l.tokStartLine, l.tokStartCol = l.line, l.col
	l.addToken(EOF, nil)
	return l.tokens, nil
}

func (l *Lexer) scanInt() error {
	for {
		ch, ok := l.peek()
		if !ok || !isDigit(ch) {
			break
		}
		l.advance()
	}
	if ch, ok := l.peek(); ok && isAlpha(ch) {
		return l.errorf("malformed integer literal")
	}
	n, err := strconv.ParseInt(l.src[l.start:l.cur], 10, 64)
	if err != nil {
		return l.errorf("integer literal out of range")
	}
	l.addToken(INT, n)
	return nil
}

func (l *Lexer) scanIdent() {
	for {
		ch, ok := l.peek()
		if !ok || !isAlnum(ch) {
			break
		}
		l.advance()
	}
	word := l.src[l.start:l.cur]
	if word == "_" {
		l.addToken(UNDERSCORE, nil)
		return
	}
	if tt, ok := keywords[word]; ok {
		l.addToken(tt, nil)
		return
	}
	l.addToken(IDENT, nil)
}

func (l *Lexer) scanString() error {
	var out []byte
	for {
		ch, ok := l.advance()
		if !ok {
			return l.errorf("unterminated string literal")
		}
		switch ch {
		case '"':
			l.addToken(STRING, string(out))
			return nil
		case '\\':
			esc, ok := l.advance()
			if !ok {
				return l.errorf("unterminated string literal")
			}
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '\\':
				out = append(out, '\\')
			case '"':
				out = append(out, '"')
			default:
				return l.errorf("unknown escape \\%s", string(esc))
			}
		case '\n':
			return l.errorf("unterminated string literal")
		default:
			out = append(out, ch)
		}
	}
}
