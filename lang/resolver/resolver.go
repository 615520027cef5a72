// Package resolver implements the static variable-resolution pass: it walks
// a parsed AST and computes, for every local variable use, the number of
// lexical-environment hops between the use site and the environment holding
// its binding. The interpreter consults this side table instead of doing a
// dynamic, name-based scope search, so a read of a global inside ten nested
// blocks costs the same as a read of a true global.
package resolver

import (
	"go/scanner"
	gotoken "go/token"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

// ErrorList aggregates resolver diagnostics the same way lang/scanner and
// lang/parser do, so a single resolve pass can report more than one static
// error (duplicate declaration, self-referencing initializer, ...).
type ErrorList = scanner.ErrorList

// Table maps a Variable or Assign expression's identity to the number of
// environment hops to its binding. An expression absent from Table resolves
// against the globals environment at runtime. Distance 0 means "the current
// environment"; distance 1 means "the immediately enclosing one"; and so on.
type Table map[ast.Expr]int

// funcKind distinguishes being inside a function body from top level, so
// that `return` outside of any function can be flagged (the grammar alone
// does not forbid it, since `return` is just a statement production).
type funcKind int

const (
	funcNone funcKind = iota
	funcFunction
)

type resolver struct {
	filename    string
	scopes      []map[string]bool
	table       Table
	currentFunc funcKind
	errors      ErrorList
}

// Resolve walks stmts and returns the scope-distance table the interpreter
// should use to evaluate them. The returned error, if non-nil, is an
// ErrorList; execution should be skipped when it is non-nil.
func Resolve(filename string, stmts []ast.Stmt) (Table, error) {
	r := &resolver{filename: filename, table: make(Table)}
	r.resolveStmts(stmts)
	r.errors.Sort()
	return r.table, r.errors.Err()
}

func (r *resolver) errorAt(tok token.Token, msg string) {
	r.errors.Add(gotoken.Position{Filename: r.filename, Line: tok.Line}, "Error at '"+tok.Lexeme+"': "+msg)
}

func (r *resolver) beginScope() { r.scopes = append(r.scopes, make(map[string]bool)) }
func (r *resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *resolver) scopeDepth() int { return len(r.scopes) }

// declare inserts name into the innermost scope as "not yet defined". It is
// a no-op at the global scope: there is no local-scope tracking for
// top-level declarations (they always resolve dynamically against
// globals).
func (r *resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.errorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks the scope stack innermost-out looking for name. If
// found at depth i from the top, it records (top - i) in the table for
// expr's identity. If not found anywhere, expr is left unrecorded, which the
// interpreter treats as "resolves against globals".
func (r *resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.table[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)
	case *ast.VarStmt:
		r.declare(s.Name)
		r.resolveExpr(s.Initializer)
		r.define(s.Name)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *ast.FunctionStmt:
		// declare and define the name before resolving the body, so a function
		// may refer to itself recursively.
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, funcFunction)
	case *ast.ReturnStmt:
		if r.currentFunc == funcNone {
			r.errorAt(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *resolver) resolveFunction(fn *ast.FunctionStmt, kind funcKind) {
	enclosingFunc := r.currentFunc
	r.currentFunc = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunc = enclosingFunc
}

func (r *resolver) resolveExpr(e ast.Expr) {
	switch e := e.(type) {
	case nil:
		return
	case *ast.LiteralExpr:
		return
	case *ast.GroupingExpr:
		r.resolveExpr(e.Inner)
	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)
	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.VariableExpr:
		if r.scopeDepth() > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.errorAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	default:
		panic("resolver: unhandled expression type")
	}
}
