// Package parser implements the recursive-descent, operator-precedence
// parser that turns a token stream into a sequence of statement trees.
package parser

import (
	"go/scanner"
	gotoken "go/token"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

// ErrorList is the standard library's go/scanner error aggregator, reused
// the same way lang/scanner reuses it: parse errors are collected as the
// parser goes, instead of aborting on the first one, so panic-mode recovery
// can report more than one error per run.
type ErrorList = scanner.ErrorList

const maxArgs = 255

// Parse parses the full token stream produced by lang/scanner for a file
// named filename (used only for error messages) into a sequence of
// statements. The returned error, if non-nil, is an ErrorList; execution of
// the returned statements should be skipped when it is non-nil, per this
// language's static-error semantics.
func Parse(filename string, toks []token.Token) ([]ast.Stmt, error) {
	p := &parser{filename: filename, toks: toks}
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.errors.Sort()
	return stmts, p.errors.Err()
}

// parseError is a sentinel used internally to unwind out of a broken
// production so synchronize() can run; it is never returned to the caller
// of Parse.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

type parser struct {
	filename string
	toks     []token.Token
	current  int
	errors   ErrorList
}

func (p *parser) isAtEnd() bool { return p.peek().Kind == token.EOF }
func (p *parser) peek() token.Token { return p.toks[p.current] }
func (p *parser) previous() token.Token { return p.toks[p.current-1] }

func (p *parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) check(k token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == k
}

func (p *parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past the expected kind or reports a syntax error and
// panics with parseError so the caller can recover via synchronize.
func (p *parser) consume(k token.Kind, msg string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), msg))
}

// errorAt records a diagnostic at tok's position and returns a parseError to
// unwind the current production. The location portion of the message
// follows the "at end" / "at 'LEXEME'" convention.
func (p *parser) errorAt(tok token.Token, msg string) parseError {
	loc := " at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		loc = " at end"
	}
	p.errors.Add(gotoken.Position{Filename: p.filename, Line: tok.Line}, "Error"+loc+": "+msg)
	return parseError{}
}

// errorAtNoPanic is like errorAt but does not unwind the current
// production: used for non-fatal diagnostics such as exceeding the
// parameter/argument count limit, where parsing can safely continue.
func (p *parser) errorAtNoPanic(tok token.Token, msg string) {
	loc := " at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		loc = " at end"
	}
	p.errors.Add(gotoken.Position{Filename: p.filename, Line: tok.Line}, "Error"+loc+": "+msg)
}

// synchronize discards tokens after a parse error until it reaches a likely
// statement boundary: the token after a ';', or a keyword that starts a new
// statement.
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.SEMI {
			return
		}
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

// declaration parses a top-level or block-level declaration, recovering via
// panic-mode synchronize on a parse error so subsequent declarations can
// still be parsed (and their errors reported) in the same run.
func (p *parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(token.VAR):
		return p.varDecl()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.CLASS):
		panic(p.errorAt(p.previous(), "class declarations are not supported"))
	default:
		return p.statement()
	}
}

func (p *parser) varDecl() ast.Stmt {
	name := p.consume(token.IDENT, "Expect variable name.")

	var init ast.Expr = &ast.LiteralExpr{Value: nil, Line: name.Line}
	if p.match(token.EQ) {
		init = p.expression()
	}
	p.consume(token.SEMI, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: init}
}

func (p *parser) function(kind string) ast.Stmt {
	name := p.consume(token.IDENT, "Expect "+kind+" name.")
	p.consume(token.LPAREN, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAtNoPanic(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENT, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after parameters.")
	p.consume(token.LBRACE, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.LBRACE):
		return &ast.BlockStmt{Stmts: p.block()}
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	default:
		return p.exprStmt()
	}
}

func (p *parser) printStmt() ast.Stmt {
	val := p.expression()
	p.consume(token.SEMI, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: val}
}

func (p *parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMI, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: expr}
}

func (p *parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.consume(token.RBRACE, "Expect '}' after block.")
	return stmts
}

func (p *parser) ifStmt() ast.Stmt {
	p.consume(token.LPAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RPAREN, "Expect ')' after if condition.")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els}
}

func (p *parser) whileStmt() ast.Stmt {
	p.consume(token.LPAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RPAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Cond: cond, Body: body}
}

// forStmt desugars `for (init; cond; incr) body` into:
//
//	{ init; while (cond) { body; incr; } }
//
// as specified in spec.md §4.1.
func (p *parser) forStmt() ast.Stmt {
	p.consume(token.LPAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMI):
		init = nil
	case p.match(token.VAR):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.SEMI) {
		cond = p.expression()
	}
	p.consume(token.SEMI, "Expect ';' after loop condition.")

	var incr ast.Expr
	if !p.check(token.RPAREN) {
		incr = p.expression()
	}
	p.consume(token.RPAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if incr != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{body, &ast.ExpressionStmt{Expr: incr}}}
	} else {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{body}}
	}
	if cond == nil {
		cond = &ast.LiteralExpr{Value: true}
	}
	body = &ast.WhileStmt{Cond: cond, Body: body}

	if init != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{init, body}}
	}
	return body
}

func (p *parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var val ast.Expr
	if !p.check(token.SEMI) {
		val = p.expression()
	}
	p.consume(token.SEMI, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: val}
}

func (p *parser) expression() ast.Expr { return p.assignment() }

// assignment is right-associative: it first parses an r-value expression,
// and if an '=' follows, validates that the left side is a Variable. An
// invalid assignment target is a non-fatal diagnostic: the '=' and its
// right-hand side are still parsed so the rest of the expression survives.
func (p *parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQ) {
		eq := p.previous()
		value := p.assignment()

		if v, ok := expr.(*ast.VariableExpr); ok {
			return &ast.AssignExpr{Name: v.Name, Value: value}
		}
		p.errorAtNoPanic(eq, "Invalid assignment target.")
	}
	return expr
}

func (p *parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQ, token.EQ_EQ) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.LT, token.LT_EQ, token.GT, token.GT_EQ) {
		op := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.PLUS, token.MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

// factor does not accept '%': the closed token set in spec.md §6 reserves
// the punctuation character, but no grammar production in §4.1 uses it.
func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.STAR, token.SLASH) {
		op := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Op: op, Right: right}
	}
	return p.call()
}

func (p *parser) call() ast.Expr {
	expr := p.primary()
	for {
		if p.match(token.LPAREN) {
			expr = p.finishCall(expr)
		} else {
			break
		}
	}
	return expr
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAtNoPanic(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RPAREN, "Expect ')' after arguments.")
	return &ast.CallExpr{Callee: callee, ClosingParen: paren, Args: args}
}

func (p *parser) primary() ast.Expr {
	tok := p.peek()
	switch {
	case p.match(token.FALSE):
		return &ast.LiteralExpr{Value: false, Line: tok.Line}
	case p.match(token.TRUE):
		return &ast.LiteralExpr{Value: true, Line: tok.Line}
	case p.match(token.NIL):
		return &ast.LiteralExpr{Value: nil, Line: tok.Line}
	case p.match(token.NUMBER, token.STRING):
		return &ast.LiteralExpr{Value: p.previous().Literal, Line: tok.Line}
	case p.match(token.SUPER, token.THIS):
		panic(p.errorAt(tok, "class declarations are not supported"))
	case p.match(token.IDENT):
		return &ast.VariableExpr{Name: p.previous()}
	case p.match(token.LPAREN):
		expr := p.expression()
		p.consume(token.RPAREN, "Expect ')' after expression.")
		return &ast.GroupingExpr{Inner: expr}
	}
	panic(p.errorAt(tok, "Expect expression."))
}
