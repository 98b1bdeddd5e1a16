package syntax

import "fmt"

// Maximum number of call arguments and function parameters.
const maxArgs = 255

// Error represents a syntax error.
type Error struct {
	Tok Token
	Msg string
}

func (e *Error) Error() string {
	if e.Tok.Kind == _EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Tok.Line, e.Msg)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Tok.Line, e.Tok.Lexeme, e.Msg)
}

// TokenErrorHandler is called for each syntax error with the offending token.
type TokenErrorHandler func(tok Token, msg string)

// bailout unwinds the parser from a failed expectation back to the
// enclosing declaration, which then synchronizes.
type bailout struct{}

// Parser performs syntax analysis on a token sequence.
type Parser struct {
	toks []Token
	cur  int // index of the current (not yet consumed) token

	// Error handling
	errh  TokenErrorHandler
	first error // first error encountered
}

// NewParser creates a Parser over toks. A missing trailing EOF token is
// supplied so the parser never runs off the end of the slice.
func NewParser(toks []Token, errh TokenErrorHandler) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Kind != _EOF {
		line := 1
		if n > 0 {
			line = toks[n-1].Line
		}
		toks = append(toks[:n:n], Token{Kind: _EOF, Line: line})
	}
	return &Parser{toks: toks, errh: errh}
}

// Parse parses tokens into a statement list. Statements that fail to parse
// are reported through errh and dropped; the rest are still returned. The
// error is the first syntax error, as an *Error.
func Parse(toks []Token, errh TokenErrorHandler) ([]Stmt, error) {
	return NewParser(toks, errh).Parse()
}

// Parse parses the whole token sequence.
func (p *Parser) Parse() ([]Stmt, error) {
	var stmts []Stmt
	for !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts, p.first
}

// ----------------------------------------------------------------------------
// Token navigation

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	return p.toks[p.cur]
}

// previous returns the most recently consumed token.
func (p *Parser) previous() Token {
	return p.toks[p.cur-1]
}

// atEnd reports whether the current token is EOF.
func (p *Parser) atEnd() bool {
	return p.peek().Kind.IsEOF()
}

// at reports whether the current token has kind k.
func (p *Parser) at(k Kind) bool {
	return p.peek().Kind == k
}

// next consumes the current token and returns it.
func (p *Parser) next() Token {
	if !p.atEnd() {
		p.cur++
	}
	return p.previous()
}

// got consumes the current token if it has one of the given kinds.
func (p *Parser) got(kinds ...Kind) bool {
	for _, k := range kinds {
		if p.at(k) {
			p.next()
			return true
		}
	}
	return false
}

// want consumes and returns the current token if it has kind k.
// Otherwise it reports msg at the current token and bails out.
func (p *Parser) want(k Kind, msg string) Token {
	if p.at(k) {
		return p.next()
	}
	p.fail(p.peek(), msg)
	panic("unreachable")
}

// ----------------------------------------------------------------------------
// Error handling

// errorAt reports a syntax error at tok without unwinding.
func (p *Parser) errorAt(tok Token, msg string) {
	if p.first == nil {
		p.first = &Error{Tok: tok, Msg: msg}
	}

	if p.errh != nil {
		p.errh(tok, msg)
	}
}

// fail reports a syntax error at tok and unwinds to the enclosing declaration.
func (p *Parser) fail(tok Token, msg string) {
	p.errorAt(tok, msg)
	panic(bailout{})
}

// syncKinds are the kinds that start a new statement.
var syncKinds = map[Kind]bool{
	_Class:  true,
	_Fun:    true,
	_Var:    true,
	_For:    true,
	_If:     true,
	_While:  true,
	_Print:  true,
	_Return: true,
}

// synchronize discards tokens until a statement boundary: just past a ';'
// or right before a keyword that starts a statement.
func (p *Parser) synchronize() {
	p.next()
	for !p.atEnd() {
		if p.previous().Kind == _Semi {
			return
		}
		if syncKinds[p.peek().Kind] {
			return
		}
		p.next()
	}
}

// ----------------------------------------------------------------------------
// Declarations

// declaration parses a declaration or statement. On a syntax error it
// recovers, synchronizes and returns nil.
func (p *Parser) declaration() (s Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.synchronize()
			s = nil
		}
	}()

	switch {
	case p.got(_Class):
		return p.classDecl()
	case p.got(_Fun):
		return p.function("function")
	case p.got(_Var):
		return p.varDecl()
	}
	return p.statement()
}

// classDecl parses: class Name [< Super] { methods... }
func (p *Parser) classDecl() Stmt {
	c := &Class{}
	c.line = p.previous().Line
	c.Name = p.want(_Identifier, "Expect class name.")

	if p.got(_Less) {
		tok := p.want(_Identifier, "Expect superclass name.")
		c.Superclass = &Variable{Name: tok}
		c.Superclass.line = tok.Line
	}

	p.want(_Lbrace, "Expect '{' before class body.")
	for !p.at(_Rbrace) && !p.atEnd() {
		c.Methods = append(c.Methods, p.function("method"))
	}
	p.want(_Rbrace, "Expect '}' after class body.")

	return c
}

// function parses a function or method after "fun" (or at a method name):
// Name(params) { body }
func (p *Parser) function(kind string) *Function {
	f := &Function{}
	f.Name = p.want(_Identifier, "Expect "+kind+" name.")
	f.line = f.Name.Line

	p.want(_Lparen, "Expect '(' after "+kind+" name.")
	if !p.at(_Rparen) {
		for {
			if len(f.Params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			f.Params = append(f.Params, p.want(_Identifier, "Expect parameter name."))
			if !p.got(_Comma) {
				break
			}
		}
	}
	p.want(_Rparen, "Expect ')' after parameters.")

	p.want(_Lbrace, "Expect '{' before "+kind+" body.")
	f.Body = p.blockStmts()
	return f
}

// varDecl parses: var Name [= Init];
func (p *Parser) varDecl() Stmt {
	d := &Var{}
	d.line = p.previous().Line
	d.Name = p.want(_Identifier, "Expect variable name.")

	if p.got(_Equal) {
		d.Init = p.expression()
	}

	p.want(_Semi, "Expect ';' after variable declaration.")
	return d
}

// ----------------------------------------------------------------------------
// Statements

// statement parses a non-declaration statement.
func (p *Parser) statement() Stmt {
	switch {
	case p.got(_For):
		return p.forStmt()
	case p.got(_If):
		return p.ifStmt()
	case p.got(_Print):
		return p.printStmt()
	case p.got(_Return):
		return p.returnStmt()
	case p.got(_While):
		return p.whileStmt()
	case p.got(_Lbrace):
		b := &Block{}
		b.line = p.previous().Line
		b.Stmts = p.blockStmts()
		return b
	}
	return p.exprStmt()
}

// forStmt parses a C-style for loop and desugars it:
//
//	{ init; while (cond) { body; incr; } }
//
// The outer block scopes the loop variable; each pass through the inner
// body block gets a fresh environment.
func (p *Parser) forStmt() Stmt {
	line := p.previous().Line
	p.want(_Lparen, "Expect '(' after 'for'.")

	var init Stmt
	switch {
	case p.got(_Semi):
		// no initializer
	case p.got(_Var):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond Expr
	if !p.at(_Semi) {
		cond = p.expression()
	}
	p.want(_Semi, "Expect ';' after loop condition.")

	var incr Expr
	if !p.at(_Rparen) {
		incr = p.expression()
	}
	p.want(_Rparen, "Expect ')' after for clauses.")

	body := p.statement()

	if incr != nil {
		inc := &ExprStmt{X: incr}
		inc.line = incr.Line()
		blk := &Block{Stmts: []Stmt{body, inc}}
		blk.line = body.Line()
		body = blk
	}

	if cond == nil {
		lit := &Literal{Value: true}
		lit.line = line
		cond = lit
	}
	loop := &While{Cond: cond, Body: body}
	loop.line = line
	body = loop

	if init != nil {
		blk := &Block{Stmts: []Stmt{init, body}}
		blk.line = line
		body = blk
	}

	return body
}

// ifStmt parses: if (Cond) Then [else Else]
func (p *Parser) ifStmt() Stmt {
	s := &If{}
	s.line = p.previous().Line

	p.want(_Lparen, "Expect '(' after 'if'.")
	s.Cond = p.expression()
	p.want(_Rparen, "Expect ')' after if condition.")

	s.Then = p.statement()
	if p.got(_Else) {
		s.Else = p.statement()
	}
	return s
}

// printStmt parses: print X;
func (p *Parser) printStmt() Stmt {
	s := &Print{}
	s.line = p.previous().Line
	s.X = p.expression()
	p.want(_Semi, "Expect ';' after value.")
	return s
}

// returnStmt parses: return [Value];
func (p *Parser) returnStmt() Stmt {
	s := &Return{Keyword: p.previous()}
	s.line = s.Keyword.Line

	if !p.at(_Semi) {
		s.Value = p.expression()
	}

	p.want(_Semi, "Expect ';' after return value.")
	return s
}

// whileStmt parses: while (Cond) Body
func (p *Parser) whileStmt() Stmt {
	s := &While{}
	s.line = p.previous().Line

	p.want(_Lparen, "Expect '(' after 'while'.")
	s.Cond = p.expression()
	p.want(_Rparen, "Expect ')' after condition.")
	s.Body = p.statement()
	return s
}

// blockStmts parses the statements of a block after its opening brace.
func (p *Parser) blockStmts() []Stmt {
	var stmts []Stmt
	for !p.at(_Rbrace) && !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.want(_Rbrace, "Expect '}' after block.")
	return stmts
}

// exprStmt parses: X;
func (p *Parser) exprStmt() Stmt {
	x := p.expression()
	s := &ExprStmt{X: x}
	s.line = x.Line()
	p.want(_Semi, "Expect ';' after expression.")
	return s
}

// ----------------------------------------------------------------------------
// Expressions

// expression parses an expression.
func (p *Parser) expression() Expr {
	return p.assignment()
}

// assignment parses a right-associative assignment. The target is parsed
// as an ordinary expression first and then converted.
func (p *Parser) assignment() Expr {
	x := p.binaryExpr(0)

	if p.got(_Equal) {
		equals := p.previous()
		value := p.assignment()

		switch t := x.(type) {
		case *Variable:
			a := &Assign{Name: t.Name, Value: value}
			a.line = t.line
			return a
		case *Get:
			s := &Set{Object: t.Object, Name: t.Name, Value: value}
			s.line = t.line
			return s
		}

		// Not fatal: the parser is not confused, so no need to synchronize.
		p.errorAt(equals, "Invalid assignment target.")
	}

	return x
}

// binaryExpr parses a binary or logical expression with minimum
// precedence prec using precedence climbing. All levels are left
// associative.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unary()

	for {
		oprec := p.peek().Kind.Precedence()
		if oprec <= prec {
			return x
		}

		op := p.next()
		y := p.binaryExpr(oprec)

		if op.Kind.IsLogical() {
			l := &Logical{X: x, Op: op, Y: y}
			l.line = x.Line()
			x = l
		} else {
			b := &Binary{X: x, Op: op, Y: y}
			b.line = x.Line()
			x = b
		}
	}
}

// unary parses: ! X | - X | call
func (p *Parser) unary() Expr {
	if p.got(_Bang, _Minus) {
		u := &Unary{Op: p.previous()}
		u.line = u.Op.Line
		u.X = p.unary()
		return u
	}
	return p.call()
}

// call parses a primary expression followed by any number of call
// argument lists and property accesses: a.b(c).d
func (p *Parser) call() Expr {
	x := p.primary()

	for {
		switch {
		case p.got(_Lparen):
			x = p.finishCall(x)

		case p.got(_Dot):
			g := &Get{Object: x}
			g.line = x.Line()
			g.Name = p.want(_Identifier, "Expect property name after '.'.")
			x = g

		default:
			return x
		}
	}
}

// finishCall parses the argument list after '('.
func (p *Parser) finishCall(callee Expr) Expr {
	c := &Call{Callee: callee}
	c.line = callee.Line()

	if !p.at(_Rparen) {
		for {
			if len(c.Args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			c.Args = append(c.Args, p.expression())
			if !p.got(_Comma) {
				break
			}
		}
	}

	c.Paren = p.want(_Rparen, "Expect ')' after arguments.")
	return c
}

// primary parses literals, names, this, super and parenthesized expressions.
func (p *Parser) primary() Expr {
	tok := p.peek()

	switch {
	case p.got(_False):
		return p.literal(tok, false)
	case p.got(_True):
		return p.literal(tok, true)
	case p.got(_Nil):
		return p.literal(tok, nil)
	case p.got(_Number, _String):
		return p.literal(tok, tok.Literal)

	case p.got(_Super):
		s := &Super{Keyword: tok}
		s.line = tok.Line
		p.want(_Dot, "Expect '.' after 'super'.")
		s.Method = p.want(_Identifier, "Expect superclass method name.")
		return s

	case p.got(_This):
		t := &This{Keyword: tok}
		t.line = tok.Line
		return t

	case p.got(_Identifier):
		v := &Variable{Name: tok}
		v.line = tok.Line
		return v

	case p.got(_Lparen):
		g := &Grouping{}
		g.line = tok.Line
		g.X = p.expression()
		p.want(_Rparen, "Expect ')' after expression.")
		return g
	}

	p.fail(tok, "Expect expression.")
	panic("unreachable")
}

// literal builds a Literal node for tok.
func (p *Parser) literal(tok Token, v any) Expr {
	lit := &Literal{Value: v}
	lit.line = tok.Line
	return lit
}
