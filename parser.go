// parser.go: recursive-descent parser for SharpScript.
//
// Precedence climbing for expressions (|| < && < == != < < > <= >= < + - <
// * / % < unary < index < primary), statement dispatch on the leading token.
// Parse errors are soft: they are recorded on the parser, the offending
// token is skipped, and a Null node stands in so evaluation of the rest of
// the program can proceed.
//
// `#include "path"` splices the included file's statements in at parse time;
// a guard shared across nested parsers keeps each file to one inclusion.
package sharpscript

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Parser consumes a token stream and produces the AST.
type Parser struct {
	lex  *Lexer
	cur  Token
	peek Token

	// Dir resolves relative #include paths; empty means the process cwd.
	Dir string

	errors   []*ParseError
	included map[string]bool
}

func NewParser(src string) *Parser {
	p := &Parser{lex: NewLexer(src), included: map[string]bool{}}
	p.next()
	p.next()
	return p
}

// Errors returns the parse diagnostics collected so far.
func (p *Parser) Errors() []*ParseError { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) errorf(tok Token, format string, args ...interface{}) {
	p.errors = append(p.errors, &ParseError{Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf(format, args...)})
}

// expect consumes the current token when it matches, otherwise records a
// diagnostic and leaves the token in place.
func (p *Parser) expect(t TokenType) bool {
	if p.cur.Type != t {
		p.errorf(p.cur, "unexpected token %q", p.cur.Literal)
		return false
	}
	p.next()
	return true
}

// Parse consumes the whole token stream and returns the program block.
func (p *Parser) Parse() *Block {
	prog := &Block{}
	for p.cur.Type != EOF {
		prog.Statements = append(prog.Statements, p.parseStatement())
		if p.cur.Type == SEMICOLON {
			p.next()
		}
	}
	return prog
}

// --- statements ------------------------------------------------------------

func (p *Parser) parseStatement() Node {
	switch p.cur.Type {
	case SEMICOLON:
		p.next()
		return &NullLit{}
	case ILLEGAL:
		p.errorf(p.cur, "invalid token %q", p.cur.Literal)
		p.next()
		return &NullLit{}
	case INCLUDE:
		return p.parseInclude()
	case KW_NAMESPACE:
		return p.parseNamespace()
	case KW_ENUM:
		return p.parseEnum()
	case KW_CLASS, KW_STRUCT:
		return p.parseClass()
	case KW_CONST:
		return p.parseDeclaration(KW_CONST)
	case KW_INSERT:
		return p.parseDeclaration(KW_INSERT)
	case KW_IF:
		return p.parseIf()
	case KW_WHILE:
		return p.parseWhile()
	case KW_FOR:
		return p.parseFor()
	case KW_FUNCTION:
		if p.peek.Type == LPAREN {
			// Anonymous function in statement position is just an expression.
			return p.parseExpression()
		}
		return p.parseFunction()
	case KW_RETURN:
		return p.parseReturn()
	case KW_BREAK:
		p.next()
		return &Break{}
	case KW_CONTINUE:
		p.next()
		return &Continue{}
	case KW_MATCH:
		return p.parseMatch()
	case KW_TRY:
		return p.parseTry()
	case LBRACE:
		return p.parseBlock()
	case IDENT:
		switch p.peek.Type {
		case ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN, PCT_ASSIGN:
			name := p.cur.Literal
			op := p.peek.Type
			p.next()
			p.next()
			return &Assign{Name: name, Op: op, Value: p.parseExpression()}
		case INC, DEC:
			name := p.cur.Literal
			op := PLUS_ASSIGN
			if p.peek.Type == DEC {
				op = MINUS_ASSIGN
			}
			p.next()
			p.next()
			return &Assign{Name: name, Op: op, Value: &NumberLit{Value: 1}}
		}
	}
	return p.parseExpression()
}

func (p *Parser) parseBlock() *Block {
	blk := &Block{}
	p.expect(LBRACE)
	for p.cur.Type != RBRACE && p.cur.Type != EOF {
		blk.Statements = append(blk.Statements, p.parseStatement())
		if p.cur.Type == SEMICOLON {
			p.next()
		}
	}
	p.expect(RBRACE)
	return blk
}

// skipArrow eats the optional "=>" the grammar tolerates before bodies.
func (p *Parser) skipArrow() {
	if p.cur.Type == ARROW {
		p.next()
	}
}

// parseDeclaration handles `&insert name[: type] = expr` and
// `const name[: type] = expr`.
func (p *Parser) parseDeclaration(kind TokenType) Node {
	p.next()
	if p.cur.Type != IDENT {
		p.errorf(p.cur, "expected identifier after %s", map[TokenType]string{KW_CONST: "const", KW_INSERT: "&insert"}[kind])
		return &NullLit{}
	}
	name := p.cur.Literal
	p.next()

	typeName := ""
	if p.cur.Type == COLON {
		p.next()
		if p.cur.Type != IDENT {
			p.errorf(p.cur, "expected type name after ':'")
		} else {
			typeName = p.cur.Literal
			p.next()
		}
	}

	p.expect(ASSIGN)
	return &Assign{Name: name, Op: kind, TypeName: typeName, Value: p.parseExpression()}
}

func (p *Parser) parseIf() Node {
	p.next()
	p.expect(LPAREN)
	cond := p.parseExpression()
	p.expect(RPAREN)
	p.skipArrow()
	then := p.parseBlock()

	var els Node
	if p.cur.Type == KW_ELSE {
		p.next()
		p.skipArrow()
		if p.cur.Type == KW_IF {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
	}
	return &If{Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() Node {
	p.next()
	p.expect(LPAREN)
	cond := p.parseExpression()
	p.expect(RPAREN)
	p.skipArrow()
	return &While{Cond: cond, Body: p.parseBlock()}
}

func (p *Parser) parseFor() Node {
	p.next()
	p.expect(LPAREN)

	// `for (name in collection)` vs the C-style triple.
	if p.cur.Type == IDENT && p.peek.Type == KW_IN {
		name := p.cur.Literal
		p.next()
		p.next()
		coll := p.parseExpression()
		p.expect(RPAREN)
		p.skipArrow()
		return &ForIn{Var: name, Collection: coll, Body: p.parseBlock()}
	}

	var init, cond, post Node
	if p.cur.Type != SEMICOLON {
		init = p.parseStatement()
	}
	p.expect(SEMICOLON)
	if p.cur.Type != SEMICOLON {
		cond = p.parseExpression()
	}
	p.expect(SEMICOLON)
	if p.cur.Type != RPAREN {
		post = p.parseStatement()
	}
	p.expect(RPAREN)
	p.skipArrow()
	return &For{Init: init, Cond: cond, Post: post, Body: p.parseBlock()}
}

// parseParams reads `(a, b = expr, ...)` or `(void)`.
func (p *Parser) parseParams() (names []string, defaults []Node) {
	p.expect(LPAREN)
	if p.cur.Type == KW_VOID {
		p.next()
		p.expect(RPAREN)
		return nil, nil
	}
	for p.cur.Type == IDENT {
		names = append(names, p.cur.Literal)
		p.next()
		if p.cur.Type == ASSIGN {
			p.next()
			defaults = append(defaults, p.parseExpression())
		} else {
			defaults = append(defaults, nil)
		}
		if p.cur.Type == COMMA {
			p.next()
		}
	}
	p.expect(RPAREN)
	return names, defaults
}

func (p *Parser) parseFunction() Node {
	p.next()
	if p.cur.Type != IDENT {
		p.errorf(p.cur, "expected function name")
		return &NullLit{}
	}
	name := p.cur.Literal
	p.next()
	params, defaults := p.parseParams()
	p.skipArrow()
	return &Function{Name: name, Params: params, Defaults: defaults, Body: p.parseBlock()}
}

func (p *Parser) parseReturn() Node {
	p.next()
	if p.cur.Type == SEMICOLON || p.cur.Type == RBRACE || p.cur.Type == EOF {
		return &Return{}
	}
	return &Return{Value: p.parseExpression()}
}

func (p *Parser) parseNamespace() Node {
	p.next()
	if p.cur.Type != IDENT {
		p.errorf(p.cur, "expected namespace name")
		return &NullLit{}
	}
	name := p.cur.Literal
	p.next()
	return &Namespace{Name: name, Body: p.parseBlock()}
}

// parseEnum folds member values during parsing: an explicit `= number`
// initializer restarts the auto-increment from that value.
func (p *Parser) parseEnum() Node {
	p.next()
	if p.cur.Type != IDENT {
		p.errorf(p.cur, "expected enum name")
		return &NullLit{}
	}
	en := &Enum{Name: p.cur.Literal}
	p.next()
	p.expect(LBRACE)

	next := 0.0
	for p.cur.Type != RBRACE && p.cur.Type != EOF {
		if p.cur.Type != IDENT {
			p.errorf(p.cur, "expected enum member")
			p.next()
			continue
		}
		member := p.cur.Literal
		p.next()

		val := next
		if p.cur.Type == ASSIGN {
			p.next()
			expr := p.parseExpression()
			if n, ok := expr.(*NumberLit); ok {
				val = n.Value
			} else if u, ok := expr.(*Unary); ok && u.Op == MINUS {
				if n, ok := u.Operand.(*NumberLit); ok {
					val = -n.Value
				}
			}
		}
		next = val + 1

		en.Members = append(en.Members, member)
		en.Values = append(en.Values, val)
		if p.cur.Type == COMMA {
			p.next()
		}
	}
	p.expect(RBRACE)
	return en
}

func (p *Parser) parseClass() Node {
	p.next()
	if p.cur.Type != IDENT {
		p.errorf(p.cur, "expected class name")
		return &NullLit{}
	}
	name := p.cur.Literal
	p.next()
	base := ""
	if p.cur.Type == COLON {
		p.next()
		if p.cur.Type == IDENT {
			base = p.cur.Literal
			p.next()
		}
	}
	return &Class{Name: name, Base: base, Body: p.parseBlock()}
}

func (p *Parser) parseMatch() Node {
	p.next()
	p.expect(LPAREN)
	m := &Match{Subject: p.parseExpression()}
	p.expect(RPAREN)
	p.expect(LBRACE)

	for p.cur.Type != RBRACE && p.cur.Type != EOF {
		switch p.cur.Type {
		case KW_CASE:
			p.next()
			expr := p.parseExpression()
			p.expect(COLON)
			m.Cases = append(m.Cases, expr)
			m.Bodies = append(m.Bodies, p.parseCaseBody())
		case KW_DEFAULT:
			p.next()
			p.expect(COLON)
			m.Default = p.parseCaseBody()
		default:
			p.errorf(p.cur, "expected case or default in match")
			p.next()
		}
	}
	p.expect(RBRACE)
	return m
}

// parseCaseBody accepts either a block or a single statement after the colon.
func (p *Parser) parseCaseBody() Node {
	if p.cur.Type == LBRACE {
		return p.parseBlock()
	}
	stmt := p.parseStatement()
	if p.cur.Type == SEMICOLON {
		p.next()
	}
	return &Block{Statements: []Node{stmt}}
}

func (p *Parser) parseTry() Node {
	p.next()
	t := &Try{Block: p.parseBlock()}
	if p.cur.Type == KW_CATCH {
		p.next()
		if p.cur.Type == LPAREN {
			p.next()
			if p.cur.Type == IDENT {
				t.ErrVar = p.cur.Literal
				p.next()
			}
			p.expect(RPAREN)
		}
		t.Catch = p.parseBlock()
	}
	if p.cur.Type == KW_FINALLY {
		p.next()
		t.Finally = p.parseBlock()
	}
	return t
}

// parseInclude reads and parses the referenced file, splicing its program
// block in place. The inclusion guard is shared with nested parsers so a
// file is only spliced once per parse.
func (p *Parser) parseInclude() Node {
	path := p.cur.Literal
	tok := p.cur
	p.next()

	full := path
	if p.Dir != "" && !filepath.IsAbs(path) {
		full = filepath.Join(p.Dir, path)
	}
	if p.included[full] {
		return &NullLit{}
	}
	p.included[full] = true

	src, err := os.ReadFile(full)
	if err != nil {
		p.errorf(tok, "could not open include %q", path)
		return &NullLit{}
	}

	inc := NewParser(string(src))
	inc.Dir = filepath.Dir(full)
	inc.included = p.included
	block := inc.Parse()
	p.errors = append(p.errors, inc.errors...)
	return block
}

// --- expressions -----------------------------------------------------------

func (p *Parser) parseExpression() Node {
	return p.parseOr()
}

func (p *Parser) parseOr() Node {
	left := p.parseAnd()
	for p.cur.Type == OR {
		op := p.cur.Type
		p.next()
		left = &Binary{Op: op, Left: left, Right: p.parseAnd()}
	}
	return left
}

func (p *Parser) parseAnd() Node {
	left := p.parseEquality()
	for p.cur.Type == AND {
		op := p.cur.Type
		p.next()
		left = &Binary{Op: op, Left: left, Right: p.parseEquality()}
	}
	return left
}

func (p *Parser) parseEquality() Node {
	left := p.parseComparison()
	for p.cur.Type == EQ || p.cur.Type == NEQ {
		op := p.cur.Type
		p.next()
		left = &Binary{Op: op, Left: left, Right: p.parseComparison()}
	}
	return left
}

func (p *Parser) parseComparison() Node {
	left := p.parseAdditive()
	for p.cur.Type == LT || p.cur.Type == GT || p.cur.Type == LTE || p.cur.Type == GTE {
		op := p.cur.Type
		p.next()
		left = &Binary{Op: op, Left: left, Right: p.parseAdditive()}
	}
	return left
}

func (p *Parser) parseAdditive() Node {
	left := p.parseMultiplicative()
	for p.cur.Type == PLUS || p.cur.Type == MINUS {
		op := p.cur.Type
		p.next()
		left = &Binary{Op: op, Left: left, Right: p.parseMultiplicative()}
	}
	return left
}

func (p *Parser) parseMultiplicative() Node {
	left := p.parseUnary()
	for p.cur.Type == STAR || p.cur.Type == SLASH || p.cur.Type == PERCENT {
		op := p.cur.Type
		p.next()
		left = &Binary{Op: op, Left: left, Right: p.parseUnary()}
	}
	return left
}

func (p *Parser) parseUnary() Node {
	if p.cur.Type == NOT || p.cur.Type == MINUS {
		op := p.cur.Type
		p.next()
		return &Unary{Op: op, Operand: p.parseUnary()}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() Node {
	left := p.parsePrimary()
	for p.cur.Type == LBRACKET {
		p.next()
		idx := p.parseExpression()
		p.expect(RBRACKET)
		left = &Index{Object: left, Index: idx}
	}
	return left
}

func (p *Parser) parsePrimary() Node {
	switch p.cur.Type {
	case NUMBER:
		f, err := strconv.ParseFloat(p.cur.Literal, 64)
		if err != nil {
			p.errorf(p.cur, "bad number literal %q", p.cur.Literal)
		}
		p.next()
		return &NumberLit{Value: f}
	case STRING:
		s := p.cur.Literal
		p.next()
		return &StringLit{Value: s}
	case KW_TRUE:
		p.next()
		return &BooleanLit{Value: true}
	case KW_FALSE:
		p.next()
		return &BooleanLit{Value: false}
	case KW_NULL:
		p.next()
		return &NullLit{}
	case LBRACKET:
		return p.parseArrayLit()
	case LBRACE:
		return p.parseMapLit()
	case KW_FUNCTION:
		return p.parseLambda()
	case IDENT:
		name := p.cur.Literal
		p.next()
		if p.cur.Type == LPAREN {
			return &Call{Name: name, Args: p.parseArgs()}
		}
		return &Identifier{Name: name}
	case LPAREN:
		p.next()
		expr := p.parseExpression()
		p.expect(RPAREN)
		return expr
	}

	p.errorf(p.cur, "unexpected token %q", p.cur.Literal)
	p.next()
	return &NullLit{}
}

func (p *Parser) parseArgs() []Node {
	p.expect(LPAREN)
	var args []Node
	for p.cur.Type != RPAREN && p.cur.Type != EOF {
		args = append(args, p.parseExpression())
		if p.cur.Type == COMMA {
			p.next()
		}
	}
	p.expect(RPAREN)
	return args
}

func (p *Parser) parseArrayLit() Node {
	p.expect(LBRACKET)
	arr := &ArrayLit{}
	for p.cur.Type != RBRACKET && p.cur.Type != EOF {
		arr.Elements = append(arr.Elements, p.parseExpression())
		if p.cur.Type == COMMA {
			p.next()
		}
	}
	p.expect(RBRACKET)
	return arr
}

// parseMapLit reads `{ key: expr, ... }`. Keys may be identifiers or string
// literals; both become string keys at runtime.
func (p *Parser) parseMapLit() Node {
	p.expect(LBRACE)
	m := &MapLit{}
	for p.cur.Type != RBRACE && p.cur.Type != EOF {
		var key Node
		switch p.cur.Type {
		case IDENT:
			key = &StringLit{Value: p.cur.Literal}
			p.next()
		case STRING:
			key = &StringLit{Value: p.cur.Literal}
			p.next()
		default:
			p.errorf(p.cur, "expected map key")
			p.next()
			continue
		}
		p.expect(COLON)
		m.Keys = append(m.Keys, key)
		m.Values = append(m.Values, p.parseExpression())
		if p.cur.Type == COMMA {
			p.next()
		}
	}
	p.expect(RBRACE)
	return m
}

func (p *Parser) parseLambda() Node {
	p.next()
	params, defaults := p.parseParams()
	p.skipArrow()
	return &Lambda{Params: params, Defaults: defaults, Body: p.parseBlock()}
}
