package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

func TestPrintExpr(t *testing.T) {
	e := &ast.BinaryExpr{
		Left: &ast.UnaryExpr{
			Op:    token.Token{Kind: token.MINUS, Lexeme: "-"},
			Right: &ast.LiteralExpr{Value: 123.0},
		},
		Op: token.Token{Kind: token.STAR, Lexeme: "*"},
		Right: &ast.GroupingExpr{
			Inner: &ast.LiteralExpr{Value: 45.67},
		},
	}
	assert.Equal(t, "(* (- 123) (group 45.67))", ast.PrintExpr(e))
}

func TestPrintStmt(t *testing.T) {
	s := &ast.PrintStmt{Expr: &ast.LiteralExpr{Value: "hi"}}
	assert.Equal(t, "(print hi)", ast.Print(s))
}
