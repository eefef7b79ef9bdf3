package sharpscript

import "testing"

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer(src)
	var toks []Token
	for {
		tok := l.Next()
		if tok.Type == EOF {
			return toks
		}
		toks = append(toks, tok)
		if len(toks) > 1000 {
			t.Fatalf("lexer did not terminate on %q", src)
		}
	}
}

func wantTokens(t *testing.T, src string, want []Token) {
	t.Helper()
	got := lexAll(t, src)
	if len(got) != len(want) {
		t.Fatalf("want %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].Type != want[i].Type || got[i].Literal != want[i].Literal {
			t.Fatalf("token %d: want {%d %q}, got {%d %q}", i, want[i].Type, want[i].Literal, got[i].Type, got[i].Literal)
		}
	}
}

func Test_Lexer_Declaration(t *testing.T) {
	wantTokens(t, `&insert x: number = 10;`, []Token{
		{Type: KW_INSERT, Literal: "&insert"},
		{Type: IDENT, Literal: "x"},
		{Type: COLON, Literal: ":"},
		{Type: IDENT, Literal: "number"},
		{Type: ASSIGN, Literal: "="},
		{Type: NUMBER, Literal: "10"},
		{Type: SEMICOLON, Literal: ";"},
	})
}

func Test_Lexer_Dotted_Identifier_Is_One_Token(t *testing.T) {
	wantTokens(t, `system.print("hi")`, []Token{
		{Type: IDENT, Literal: "system.print"},
		{Type: LPAREN, Literal: "("},
		{Type: STRING, Literal: "hi"},
		{Type: RPAREN, Literal: ")"},
	})
}

func Test_Lexer_Numbers(t *testing.T) {
	wantTokens(t, "3.14 42 0.5", []Token{
		{Type: NUMBER, Literal: "3.14"},
		{Type: NUMBER, Literal: "42"},
		{Type: NUMBER, Literal: "0.5"},
	})

	// A trailing dot is not part of the number.
	got := lexAll(t, "1.x")
	if got[0].Type != NUMBER || got[0].Literal != "1" {
		t.Fatalf("want NUMBER 1, got %v", got[0])
	}
}

func Test_Lexer_String_Escapes(t *testing.T) {
	wantTokens(t, `"a\nb\t\"q\"\\"`, []Token{
		{Type: STRING, Literal: "a\nb\t\"q\"\\"},
	})
}

func Test_Lexer_Unterminated_String_Is_Illegal(t *testing.T) {
	got := lexAll(t, `"open`)
	if got[0].Type != ILLEGAL {
		t.Fatalf("want ILLEGAL, got %v", got[0])
	}
}

func Test_Lexer_Operators(t *testing.T) {
	wantTokens(t, "+ += ++ - -= -- * *= / /= % %= = == => ! != < <= > >= && ||", []Token{
		{Type: PLUS, Literal: "+"}, {Type: PLUS_ASSIGN, Literal: "+="}, {Type: INC, Literal: "++"},
		{Type: MINUS, Literal: "-"}, {Type: MINUS_ASSIGN, Literal: "-="}, {Type: DEC, Literal: "--"},
		{Type: STAR, Literal: "*"}, {Type: STAR_ASSIGN, Literal: "*="},
		{Type: SLASH, Literal: "/"}, {Type: SLASH_ASSIGN, Literal: "/="},
		{Type: PERCENT, Literal: "%"}, {Type: PCT_ASSIGN, Literal: "%="},
		{Type: ASSIGN, Literal: "="}, {Type: EQ, Literal: "=="}, {Type: ARROW, Literal: "=>"},
		{Type: NOT, Literal: "!"}, {Type: NEQ, Literal: "!="},
		{Type: LT, Literal: "<"}, {Type: LTE, Literal: "<="},
		{Type: GT, Literal: ">"}, {Type: GTE, Literal: ">="},
		{Type: AND, Literal: "&&"}, {Type: OR, Literal: "||"},
	})
}

func Test_Lexer_Keywords(t *testing.T) {
	for word, typ := range keywords {
		got := lexAll(t, word)
		if len(got) != 1 || got[0].Type != typ {
			t.Fatalf("keyword %q: got %v", word, got)
		}
	}
	// Keywords embedded in larger identifiers stay identifiers.
	got := lexAll(t, "iffy")
	if got[0].Type != IDENT {
		t.Fatalf("want IDENT iffy, got %v", got[0])
	}
}

func Test_Lexer_Comments_Skip_To_EOL(t *testing.T) {
	wantTokens(t, "1 # everything here is ignored\n2", []Token{
		{Type: NUMBER, Literal: "1"},
		{Type: NUMBER, Literal: "2"},
	})
}

func Test_Lexer_Include_Directive(t *testing.T) {
	got := lexAll(t, `#include "lib.sharp"`)
	if len(got) != 1 || got[0].Type != INCLUDE || got[0].Literal != "lib.sharp" {
		t.Fatalf("want INCLUDE lib.sharp, got %v", got)
	}

	// Malformed directive without a quoted path.
	got = lexAll(t, "#include 42")
	if got[0].Type != ILLEGAL {
		t.Fatalf("want ILLEGAL, got %v", got[0])
	}
}

func Test_Lexer_Ampersand_Forms(t *testing.T) {
	got := lexAll(t, "&insert && &")
	want := []TokenType{KW_INSERT, AND, ILLEGAL}
	for i, typ := range want {
		if got[i].Type != typ {
			t.Fatalf("token %d: want type %d, got %v", i, typ, got[i])
		}
	}
}

func Test_Lexer_Positions(t *testing.T) {
	toks := lexAll(t, "a\n  b")
	if toks[0].Line != 1 || toks[0].Col != 1 {
		t.Fatalf("a at %d:%d", toks[0].Line, toks[0].Col)
	}
	if toks[1].Line != 2 || toks[1].Col != 3 {
		t.Fatalf("b at %d:%d", toks[1].Line, toks[1].Col)
	}
}
