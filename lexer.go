// lexer.go: SharpScript tokenizer.
//
// Turns source text into a stream of tokens. Identifiers may contain dots
// (`system.print` is a single identifier token), `#` starts a line comment,
// and the special directive `#include "path"` is surfaced as a single INCLUDE
// token whose literal is the quoted path.
package sharpscript

import (
	"strings"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Literals & identifiers
	IDENT
	NUMBER
	STRING

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	ASSIGN       // "="
	PLUS_ASSIGN  // "+="
	MINUS_ASSIGN // "-="
	STAR_ASSIGN  // "*="
	SLASH_ASSIGN // "/="
	PCT_ASSIGN   // "%="
	EQ           // "=="
	NEQ          // "!="
	LT
	GT
	LTE
	GTE
	AND // "&&"
	OR  // "||"
	NOT // "!"
	INC // "++"
	DEC // "--"

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	ARROW // "=>"
	COMMA
	COLON
	SEMICOLON

	// Keywords
	KW_IF
	KW_ELSE
	KW_WHILE
	KW_FOR
	KW_IN
	KW_FUNCTION
	KW_RETURN
	KW_BREAK
	KW_CONTINUE
	KW_INSERT // "&insert"
	KW_CONST
	KW_VOID
	KW_NAMESPACE
	KW_ENUM
	KW_CLASS
	KW_STRUCT
	KW_MATCH
	KW_CASE
	KW_DEFAULT
	KW_TRY
	KW_CATCH
	KW_FINALLY
	KW_TRUE
	KW_FALSE
	KW_NULL

	// Directives
	INCLUDE // `#include "path"`; literal carries the path
)

var keywords = map[string]TokenType{
	"if":        KW_IF,
	"else":      KW_ELSE,
	"while":     KW_WHILE,
	"for":       KW_FOR,
	"in":        KW_IN,
	"function":  KW_FUNCTION,
	"return":    KW_RETURN,
	"break":     KW_BREAK,
	"continue":  KW_CONTINUE,
	"const":     KW_CONST,
	"void":      KW_VOID,
	"namespace": KW_NAMESPACE,
	"enum":      KW_ENUM,
	"class":     KW_CLASS,
	"struct":    KW_STRUCT,
	"match":     KW_MATCH,
	"case":      KW_CASE,
	"default":   KW_DEFAULT,
	"try":       KW_TRY,
	"catch":     KW_CATCH,
	"finally":   KW_FINALLY,
	"true":      KW_TRUE,
	"false":     KW_FALSE,
	"null":      KW_NULL,
}

// Token is a lexeme with its 1-based source position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

// Lexer scans SharpScript source one token at a time.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '#':
			// `#include` is a directive, not a comment.
			if strings.HasPrefix(l.src[l.pos:], "#include") {
				return
			}
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '.'
}

func (l *Lexer) tok(t TokenType, lit string, line, col int) Token {
	return Token{Type: t, Literal: lit, Line: line, Col: col}
}

// Next returns the next token, or an EOF token at end of input.
func (l *Lexer) Next() Token {
	l.skipSpaceAndComments()
	line, col := l.line, l.col

	if l.pos >= len(l.src) {
		return l.tok(EOF, "", line, col)
	}

	c := l.peek()

	if c == '#' { // only #include survives skipSpaceAndComments
		return l.readInclude(line, col)
	}

	if isDigit(c) {
		return l.readNumber(line, col)
	}

	if c == '"' {
		return l.readString(line, col)
	}

	if isIdentStart(c) {
		return l.readIdentifier(line, col)
	}

	l.advance()
	switch c {
	case '+':
		if l.peek() == '+' {
			l.advance()
			return l.tok(INC, "++", line, col)
		}
		if l.peek() == '=' {
			l.advance()
			return l.tok(PLUS_ASSIGN, "+=", line, col)
		}
		return l.tok(PLUS, "+", line, col)
	case '-':
		if l.peek() == '-' {
			l.advance()
			return l.tok(DEC, "--", line, col)
		}
		if l.peek() == '=' {
			l.advance()
			return l.tok(MINUS_ASSIGN, "-=", line, col)
		}
		return l.tok(MINUS, "-", line, col)
	case '*':
		if l.peek() == '=' {
			l.advance()
			return l.tok(STAR_ASSIGN, "*=", line, col)
		}
		return l.tok(STAR, "*", line, col)
	case '/':
		if l.peek() == '=' {
			l.advance()
			return l.tok(SLASH_ASSIGN, "/=", line, col)
		}
		return l.tok(SLASH, "/", line, col)
	case '%':
		if l.peek() == '=' {
			l.advance()
			return l.tok(PCT_ASSIGN, "%=", line, col)
		}
		return l.tok(PERCENT, "%", line, col)
	case '=':
		if l.peek() == '=' {
			l.advance()
			return l.tok(EQ, "==", line, col)
		}
		if l.peek() == '>' {
			l.advance()
			return l.tok(ARROW, "=>", line, col)
		}
		return l.tok(ASSIGN, "=", line, col)
	case '!':
		if l.peek() == '=' {
			l.advance()
			return l.tok(NEQ, "!=", line, col)
		}
		return l.tok(NOT, "!", line, col)
	case '<':
		if l.peek() == '=' {
			l.advance()
			return l.tok(LTE, "<=", line, col)
		}
		return l.tok(LT, "<", line, col)
	case '>':
		if l.peek() == '=' {
			l.advance()
			return l.tok(GTE, ">=", line, col)
		}
		return l.tok(GT, ">", line, col)
	case '&':
		if l.peek() == '&' {
			l.advance()
			return l.tok(AND, "&&", line, col)
		}
		// `&insert` declaration keyword
		if strings.HasPrefix(l.src[l.pos:], "insert") {
			for i := 0; i < len("insert"); i++ {
				l.advance()
			}
			return l.tok(KW_INSERT, "&insert", line, col)
		}
		return l.tok(ILLEGAL, "&", line, col)
	case '|':
		if l.peek() == '|' {
			l.advance()
			return l.tok(OR, "||", line, col)
		}
		return l.tok(ILLEGAL, "|", line, col)
	case '(':
		return l.tok(LPAREN, "(", line, col)
	case ')':
		return l.tok(RPAREN, ")", line, col)
	case '{':
		return l.tok(LBRACE, "{", line, col)
	case '}':
		return l.tok(RBRACE, "}", line, col)
	case '[':
		return l.tok(LBRACKET, "[", line, col)
	case ']':
		return l.tok(RBRACKET, "]", line, col)
	case ',':
		return l.tok(COMMA, ",", line, col)
	case ':':
		return l.tok(COLON, ":", line, col)
	case ';':
		return l.tok(SEMICOLON, ";", line, col)
	}

	return l.tok(ILLEGAL, string(c), line, col)
}

func (l *Lexer) readNumber(line, col int) Token {
	start := l.pos
	for l.pos < len(l.src) && (isDigit(l.peek()) || l.peek() == '.') {
		// A dot only belongs to the number when followed by a digit.
		if l.peek() == '.' && !isDigit(l.peekAt(1)) {
			break
		}
		l.advance()
	}
	return l.tok(NUMBER, l.src[start:l.pos], line, col)
}

func (l *Lexer) readString(line, col int) Token {
	l.advance() // opening quote
	var b strings.Builder
	for l.pos < len(l.src) && l.peek() != '"' {
		c := l.advance()
		if c == '\\' && l.pos < len(l.src) {
			esc := l.advance()
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(esc)
			}
			continue
		}
		b.WriteByte(c)
	}
	if l.pos >= len(l.src) {
		return l.tok(ILLEGAL, b.String(), line, col)
	}
	l.advance() // closing quote
	return l.tok(STRING, b.String(), line, col)
}

func (l *Lexer) readIdentifier(line, col int) Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.peek()) {
		l.advance()
	}
	word := l.src[start:l.pos]
	if t, ok := keywords[word]; ok {
		return l.tok(t, word, line, col)
	}
	return l.tok(IDENT, word, line, col)
}

// readInclude consumes `#include "path"` and returns an INCLUDE token whose
// literal is the path. A malformed directive yields ILLEGAL.
func (l *Lexer) readInclude(line, col int) Token {
	for i := 0; i < len("#include"); i++ {
		l.advance()
	}
	for l.pos < len(l.src) && (l.peek() == ' ' || l.peek() == '\t') {
		l.advance()
	}
	if l.peek() != '"' {
		return l.tok(ILLEGAL, "#include", line, col)
	}
	path := l.readString(l.line, l.col)
	if path.Type != STRING {
		return l.tok(ILLEGAL, "#include", line, col)
	}
	return l.tok(INCLUDE, path.Literal, line, col)
}
