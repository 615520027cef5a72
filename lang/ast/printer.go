package ast

import (
	"fmt"
	"strings"
)

// Print renders a Lisp-style parenthesized form of a single statement, the
// way a debugging AST dump traditionally looks for a recursive-descent
// parser. It is used by the CLI's `parse`/`resolve` subcommands and exercises
// the testable property that parsing-then-printing a valid program preserves
// its shape.
func Print(s Stmt) string {
	var b strings.Builder
	printStmt(&b, s)
	return b.String()
}

// PrintExpr renders a single expression in the same Lisp-style form.
func PrintExpr(e Expr) string {
	var b strings.Builder
	printExpr(&b, e)
	return b.String()
}

func printStmt(b *strings.Builder, s Stmt) {
	switch s := s.(type) {
	case *ExpressionStmt:
		parenthesize(b, ";", s.Expr)
	case *PrintStmt:
		parenthesize(b, "print", s.Expr)
	case *VarStmt:
		if s.Initializer != nil {
			parenthesize(b, "var "+s.Name.Lexeme, s.Initializer)
		} else {
			fmt.Fprintf(b, "(var %s)", s.Name.Lexeme)
		}
	case *BlockStmt:
		b.WriteString("(block")
		for _, st := range s.Stmts {
			b.WriteByte(' ')
			printStmt(b, st)
		}
		b.WriteByte(')')
	case *IfStmt:
		b.WriteString("(if ")
		printExpr(b, s.Cond)
		b.WriteByte(' ')
		printStmt(b, s.Then)
		if s.Else != nil {
			b.WriteByte(' ')
			printStmt(b, s.Else)
		}
		b.WriteByte(')')
	case *WhileStmt:
		b.WriteString("(while ")
		printExpr(b, s.Cond)
		b.WriteByte(' ')
		printStmt(b, s.Body)
		b.WriteByte(')')
	case *FunctionStmt:
		fmt.Fprintf(b, "(fun %s (", s.Name.Lexeme)
		for i, p := range s.Params {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(p.Lexeme)
		}
		b.WriteString(") ")
		for i, st := range s.Body {
			if i > 0 {
				b.WriteByte(' ')
			}
			printStmt(b, st)
		}
		b.WriteByte(')')
	case *ReturnStmt:
		if s.Value != nil {
			parenthesize(b, "return", s.Value)
		} else {
			b.WriteString("(return)")
		}
	default:
		fmt.Fprintf(b, "<unknown stmt %T>", s)
	}
}

func printExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *LiteralExpr:
		b.WriteString(stringifyLiteral(e.Value))
	case *GroupingExpr:
		parenthesize(b, "group", e.Inner)
	case *UnaryExpr:
		parenthesize(b, e.Op.Lexeme, e.Right)
	case *BinaryExpr:
		parenthesize(b, e.Op.Lexeme, e.Left, e.Right)
	case *LogicalExpr:
		parenthesize(b, e.Op.Lexeme, e.Left, e.Right)
	case *VariableExpr:
		b.WriteString(e.Name.Lexeme)
	case *AssignExpr:
		parenthesize(b, "= "+e.Name.Lexeme, e.Value)
	case *CallExpr:
		b.WriteString("(call ")
		printExpr(b, e.Callee)
		for _, a := range e.Args {
			b.WriteByte(' ')
			printExpr(b, a)
		}
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "<unknown expr %T>", e)
	}
}

func parenthesize(b *strings.Builder, name string, exprs ...Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		printExpr(b, e)
	}
	b.WriteByte(')')
}

func stringifyLiteral(v interface{}) string {
	if v == nil {
		return "nil"
	}
	switch v := v.(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
