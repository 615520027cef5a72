package ast

import "github.com/mna/lox/lang/token"

type (
	// LiteralExpr is a constant value: a number, string, boolean, or nil.
	LiteralExpr struct {
		Value interface{}
		Line  int
	}

	// GroupingExpr is a parenthesized sub-expression, kept as its own node so
	// the source shape survives for the pretty-printer.
	GroupingExpr struct {
		Inner Expr
	}

	// UnaryExpr is `!right` or `-right`.
	UnaryExpr struct {
		Op    token.Token
		Right Expr
	}

	// BinaryExpr is an arithmetic, comparison or equality operation. `and`/`or`
	// are modeled separately as LogicalExpr since they short-circuit.
	BinaryExpr struct {
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// LogicalExpr is `left and right` or `left or right`.
	LogicalExpr struct {
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// VariableExpr is a use of an identifier.
	VariableExpr struct {
		Name token.Token
	}

	// AssignExpr is `name = value`; it yields the assigned value.
	AssignExpr struct {
		Name  token.Token
		Value Expr
	}

	// CallExpr is a function call `callee(args...)`. ClosingParen is kept for
	// error reporting (the line to blame for arity mismatches).
	CallExpr struct {
		Callee       Expr
		ClosingParen token.Token
		Args         []Expr
	}
)

func (*LiteralExpr) exprNode()  {}
func (*GroupingExpr) exprNode() {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*LogicalExpr) exprNode()  {}
func (*VariableExpr) exprNode() {}
func (*AssignExpr) exprNode()   {}
func (*CallExpr) exprNode()     {}
