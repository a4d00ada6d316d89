package miniml

import "testing"

func lex(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := NewLexer(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return toks
}

func wantTypes(t *testing.T, toks []Token, types ...TokenType) {
	t.Helper()
	if len(toks) != len(types) {
		t.Fatalf("want %d tokens, got %d: %v", len(types), len(toks), toks)
	}
	for i, tt := range types {
		if toks[i].Type != tt {
			t.Fatalf("token %d: want type %d, got %d (%q)", i, tt, toks[i].Type, toks[i].Lexeme)
		}
	}
}

func Test_Lexer_Operators(t *testing.T) {
	toks := lex(t, "+ - * / :: = != < <= > >= && || -> | _")
	wantTypes(t, toks,
		PLUS, MINUS, STAR, SLASH, CONS, EQ, NEQ,
		LESS, LESS_EQ, GREATER, GREATER_EQ, AND, OR,
		ARROW, PIPE, UNDERSCORE, EOF)
}

func Test_Lexer_KeywordsAndIdents(t *testing.T) {
	toks := lex(t, "let rec in fun match with if then else not true false and letx")
	wantTypes(t, toks,
		LET, REC, IN, FUN, MATCH, WITH, IF, THEN, ELSE,
		NOT, TRUE, FALSE, KWAND, IDENT, EOF)
	if toks[13].Lexeme != "letx" {
		t.Fatalf("got %q", toks[13].Lexeme)
	}
}

func Test_Lexer_IntLiterals(t *testing.T) {
	toks := lex(t, "0 42 123456789")
	wantTypes(t, toks, INT, INT, INT, EOF)
	if toks[1].Literal.(int64) != 42 {
		t.Fatalf("got %v", toks[1].Literal)
	}

	if _, err := NewLexer("12ab").Tokenize(); err == nil {
		t.Fatal("want error for malformed int")
	}
	if _, err := NewLexer("99999999999999999999").Tokenize(); err == nil {
		t.Fatal("want error for out-of-range int")
	}
}

func Test_Lexer_StringLiterals(t *testing.T) {
	toks := lex(t, `"a\nb\t\"q\""`)
	wantTypes(t, toks, STRING, EOF)
	if got := toks[0].Literal.(string); got != "a\nb\t\"q\"" {
		t.Fatalf("got %q", got)
	}

	if _, err := NewLexer(`"open`).Tokenize(); err == nil {
		t.Fatal("want error for unterminated string")
	}
	if _, err := NewLexer("\"line\nbreak\"").Tokenize(); err == nil {
		t.Fatal("want error for newline in string")
	}
	if _, err := NewLexer(`"bad \q"`).Tokenize(); err == nil {
		t.Fatal("want error for unknown escape")
	}
}

func Test_Lexer_CommentsNest(t *testing.T) {
	toks := lex(t, "1 (* outer (* inner *) still out *) 2")
	wantTypes(t, toks, INT, INT, EOF)

	if _, err := NewLexer("(* never closed").Tokenize(); err == nil {
		t.Fatal("want error for unterminated comment")
	}
}

func Test_Lexer_Positions(t *testing.T) {
	toks := lex(t, "let\n  x = 1")
	// Line is 1-based, Col 0-based.
	if toks[0].Line != 1 || toks[0].Col != 0 {
		t.Fatalf("let at %d:%d", toks[0].Line, toks[0].Col)
	}
	if toks[1].Line != 2 || toks[1].Col != 2 {
		t.Fatalf("x at %d:%d", toks[1].Line, toks[1].Col)
	}
}

func Test_Lexer_StrayCharacters(t *testing.T) {
	for _, src := range []string{":", "!", "&", "#", "@"} {
		if _, err := NewLexer(src).Tokenize(); err == nil {
			t.Fatalf("want error for %q", src)
		}
	}
}
