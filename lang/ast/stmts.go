package ast

import "github.com/mna/lox/lang/token"

type (
	// ExpressionStmt evaluates an expression and discards the result.
	ExpressionStmt struct {
		Expr Expr
	}

	// PrintStmt evaluates an expression, renders it, and emits it.
	PrintStmt struct {
		Expr Expr
	}

	// VarStmt is a variable declaration. Initializer is never nil: an absent
	// initializer is represented as a LiteralExpr holding nil, matching the
	// data model's "implicit nil initializer" rule.
	VarStmt struct {
		Name        token.Token
		Initializer Expr
	}

	// BlockStmt is a lexical scope boundary.
	BlockStmt struct {
		Stmts []Stmt
	}

	// IfStmt is `if (Cond) Then [else Else]`. Else is nil when absent.
	IfStmt struct {
		Cond Expr
		Then Stmt
		Else Stmt
	}

	// WhileStmt is `while (Cond) Body`. The parser desugars `for` into this.
	WhileStmt struct {
		Cond Expr
		Body Stmt
	}

	// FunctionStmt is a named function declaration.
	FunctionStmt struct {
		Name   token.Token
		Params []token.Token
		Body   []Stmt
	}

	// ReturnStmt is `return [Value];`. Keyword is kept for line reporting.
	ReturnStmt struct {
		Keyword token.Token
		Value   Expr // nil if no value was given; interpreted as nil
	}
)

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
