// Package interp implements the tree-walking evaluator: it executes a
// resolved AST against a chain of lexical environments and emits output on
// `print` statements.
package interp

import (
	"fmt"
	"io"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/token"
)

// RuntimeError carries a message and the source line that caused it. Unlike
// static errors, a runtime error is fatal to the current run: it aborts
// execution of the remaining statements.
type RuntimeError struct {
	Tok token.Token
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Msg, e.Tok.Line)
}

// returnSignal is the distinguished, non-error control-flow signal used to
// unwind a `return` statement through nested blocks up to the enclosing
// call. It implements error only so it can travel through the same Go
// error-return plumbing as a RuntimeError; callers must type-assert for
// *returnSignal before treating a non-nil error as a genuine failure (see
// Function.Call and Interpreter.Interpret).
type returnSignal struct{ value Value }

func (*returnSignal) Error() string { return "return" }

// Interpreter executes a resolved AST. It holds a permanent handle to the
// global environment and a handle to the currently active one, which
// changes as blocks and function calls are entered and exited.
type Interpreter struct {
	globals *Environment
	env     *Environment
	table   resolver.Table
	out     io.Writer
}

// New creates an interpreter that writes `print` output to out and resolves
// variable references using table (as produced by lang/resolver.Resolve).
func New(out io.Writer, table resolver.Table) *Interpreter {
	globals := NewEnvironment(nil)
	defineNatives(globals)
	return &Interpreter{globals: globals, env: globals, table: table, out: out}
}

// SetTable replaces the resolver distance table used for subsequent
// variable lookups. The REPL calls this between lines, since each line it
// reads is resolved as its own top-level compilation unit but all lines
// share one running interpreter and one globals environment.
func (in *Interpreter) SetTable(table resolver.Table) {
	in.table = table
}

// Interpret executes stmts in order. It stops and returns the first runtime
// error encountered; a bare *returnSignal escaping to this top level (a
// `return` outside any function) is treated as a bug in the resolver, which
// is supposed to reject that statically, and is reported as a runtime error
// rather than silently ignored.
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			if rs, ok := err.(*returnSignal); ok {
				return &RuntimeError{Msg: fmt.Sprintf("unexpected return of %s outside a function", rs.value)}
			}
			return err
		}
	}
	return nil
}

func (in *Interpreter) runtimeError(tok token.Token, format string, args ...interface{}) error {
	return &RuntimeError{Tok: tok, Msg: fmt.Sprintf(format, args...)}
}

func (in *Interpreter) execute(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expr)
		return err

	case *ast.PrintStmt:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.out, v.String())
		return nil

	case *ast.VarStmt:
		v, err := in.evaluate(s.Initializer)
		if err != nil {
			return err
		}
		in.env.Define(s.Name.Lexeme, v)
		return nil

	case *ast.BlockStmt:
		return in.executeBlock(s.Stmts, NewEnvironment(in.env))

	case *ast.IfStmt:
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if truthy(cond) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(s.Cond)
			if err != nil {
				return err
			}
			if !truthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		fn := &Function{Decl: s, Closure: in.env}
		in.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var v Value = Nil
		if s.Value != nil {
			val, err := in.evaluate(s.Value)
			if err != nil {
				return err
			}
			v = val
		}
		return &returnSignal{value: v}

	default:
		panic(fmt.Sprintf("interp: unhandled statement type %T", s))
	}
}

// executeBlock runs stmts in env, restoring the interpreter's previous
// environment handle before returning, whether it exits normally, via a
// return signal, or via a runtime error.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) evaluate(e ast.Expr) (Value, error) {
	switch e := e.(type) {
	case *ast.LiteralExpr:
		return literalValue(e.Value), nil

	case *ast.GroupingExpr:
		return in.evaluate(e.Inner)

	case *ast.UnaryExpr:
		return in.evalUnary(e)

	case *ast.BinaryExpr:
		return in.evalBinary(e)

	case *ast.LogicalExpr:
		return in.evalLogical(e)

	case *ast.VariableExpr:
		return in.lookUpVariable(e.Name, e)

	case *ast.AssignExpr:
		return in.evalAssign(e)

	case *ast.CallExpr:
		return in.evalCall(e)

	default:
		panic(fmt.Sprintf("interp: unhandled expression type %T", e))
	}
}

func literalValue(v interface{}) Value {
	switch v := v.(type) {
	case nil:
		return Nil
	case bool:
		return Boolean(v)
	case float64:
		return Number(v)
	case string:
		return String(v)
	default:
		panic(fmt.Sprintf("interp: unrepresentable literal %#v", v))
	}
}

func (in *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := in.table[expr]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}
	if v, ok := in.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, in.runtimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

func (in *Interpreter) evalAssign(e *ast.AssignExpr) (Value, error) {
	v, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := in.table[e]; ok {
		in.env.AssignAt(distance, e.Name.Lexeme, v)
		return v, nil
	}
	if in.globals.Assign(e.Name.Lexeme, v) {
		return v, nil
	}
	return nil, in.runtimeError(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
}

func (in *Interpreter) evalLogical(e *ast.LogicalExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Op.Kind == token.OR {
		if truthy(left) {
			return left, nil
		}
	} else { // AND
		if !truthy(left) {
			return left, nil
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalUnary(e *ast.UnaryExpr) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, in.runtimeError(e.Op, "Operand must be a number.")
		}
		return -n, nil
	case token.BANG:
		return Boolean(!truthy(right)), nil
	default:
		panic("interp: unhandled unary operator " + e.Op.Kind.String())
	}
}

func (in *Interpreter) evalBinary(e *ast.BinaryExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.PLUS:
		if ln, ok := left.(Number); ok {
			if rn, ok := right.(Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(String); ok {
			if rs, ok := right.(String); ok {
				return ls + rs, nil
			}
		}
		return nil, in.runtimeError(e.Op, "Operands must be two numbers or two strings.")

	case token.MINUS:
		ln, rn, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil

	case token.STAR:
		ln, rn, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil

	case token.SLASH:
		ln, rn, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln / rn, nil // IEEE-754 handles division by zero (±Inf/NaN)

	case token.GT:
		ln, rn, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Boolean(ln > rn), nil

	case token.GT_EQ:
		ln, rn, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Boolean(ln >= rn), nil

	case token.LT:
		ln, rn, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Boolean(ln < rn), nil

	case token.LT_EQ:
		ln, rn, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Boolean(ln <= rn), nil

	case token.EQ_EQ:
		return Boolean(equal(left, right)), nil

	case token.BANG_EQ:
		return Boolean(!equal(left, right)), nil

	default:
		panic("interp: unhandled binary operator " + e.Op.Kind.String())
	}
}

func (in *Interpreter) numberOperands(op token.Token, left, right Value) (Number, Number, error) {
	ln, lok := left.(Number)
	rn, rok := right.(Number)
	if !lok || !rok {
		return 0, 0, in.runtimeError(op, "Operand must be a number.")
	}
	return ln, rn, nil
}

func (in *Interpreter) evalCall(e *ast.CallExpr) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, in.runtimeError(e.ClosingParen, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, in.runtimeError(e.ClosingParen, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(in, args)
}
