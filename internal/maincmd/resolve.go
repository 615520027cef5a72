package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/resolver"
)

// Resolve runs the scanner, parser and resolver phases and prints each
// statement's parenthesized form followed by the variable resolution
// distances the resolver recorded for it.
func (c *Cmd) Resolve(_ context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}

		stmts, err := compile(path, src)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}

		table, err := resolver.Resolve(path, stmts)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}

		for _, s := range stmts {
			fmt.Fprintln(stdio.Stdout, ast.Print(s))
			printDistances(stdio, table, s)
		}
	}
	return nil
}

// printDistances walks s and prints one line per name-resolving expression
// it contains that the resolver bound to a local scope: a distance of 0
// means the current scope, 1 its immediate enclosing scope, and so on.
// Expressions absent from table resolve against globals and are skipped.
func printDistances(stdio mainer.Stdio, table resolver.Table, s ast.Stmt) {
	var walkExpr func(ast.Expr)
	var walkStmt func(ast.Stmt)

	report := func(name string, e ast.Expr) {
		if d, ok := table[e]; ok {
			fmt.Fprintf(stdio.Stdout, "  %s -> %d\n", name, d)
		}
	}

	walkExpr = func(e ast.Expr) {
		switch e := e.(type) {
		case *ast.GroupingExpr:
			walkExpr(e.Inner)
		case *ast.UnaryExpr:
			walkExpr(e.Right)
		case *ast.BinaryExpr:
			walkExpr(e.Left)
			walkExpr(e.Right)
		case *ast.LogicalExpr:
			walkExpr(e.Left)
			walkExpr(e.Right)
		case *ast.VariableExpr:
			report(e.Name.Lexeme, e)
		case *ast.AssignExpr:
			report(e.Name.Lexeme, e)
			walkExpr(e.Value)
		case *ast.CallExpr:
			walkExpr(e.Callee)
			for _, a := range e.Args {
				walkExpr(a)
			}
		}
	}

	walkStmt = func(s ast.Stmt) {
		switch s := s.(type) {
		case *ast.ExpressionStmt:
			walkExpr(s.Expr)
		case *ast.PrintStmt:
			walkExpr(s.Expr)
		case *ast.VarStmt:
			walkExpr(s.Initializer)
		case *ast.BlockStmt:
			for _, st := range s.Stmts {
				walkStmt(st)
			}
		case *ast.IfStmt:
			walkExpr(s.Cond)
			walkStmt(s.Then)
			if s.Else != nil {
				walkStmt(s.Else)
			}
		case *ast.WhileStmt:
			walkExpr(s.Cond)
			walkStmt(s.Body)
		case *ast.FunctionStmt:
			for _, st := range s.Body {
				walkStmt(st)
			}
		case *ast.ReturnStmt:
			if s.Value != nil {
				walkExpr(s.Value)
			}
		}
	}

	walkStmt(s)
}
