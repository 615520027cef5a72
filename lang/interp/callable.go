package interp

import "github.com/mna/lox/lang/ast"

// Callable is implemented by any Value that may appear as the callee of a
// call expression: user-defined Lox functions and host-provided natives.
type Callable interface {
	Value
	// Arity returns the number of parameters this callable expects.
	Arity() int
	// Call invokes the callable with already-evaluated arguments.
	Call(in *Interpreter, args []Value) (Value, error)
}

// Function is a user-defined function value: a reference to its
// declaration plus the environment that was active when the declaration
// was executed (its closure). Two Function values are equal only if they
// are the very same declaration instance, per the interpreter's
// identity-based callable equality.
type Function struct {
	Decl    *ast.FunctionStmt
	Closure *Environment
}

var (
	_ Value    = (*Function)(nil)
	_ Callable = (*Function)(nil)
)

func (f *Function) String() string { return "<fn " + f.Decl.Name.Lexeme + ">" }
func (f *Function) Type() string   { return "function" }
func (f *Function) Arity() int     { return len(f.Decl.Params) }

// Call binds each parameter to its argument in a fresh environment
// enclosing the function's captured closure, then executes the body as a
// block in that environment. A body that completes without hitting a
// return statement yields Nil.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.Closure)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.Decl.Body, env)
	if err == nil {
		return Nil, nil
	}
	if ret, ok := err.(*returnSignal); ok {
		return ret.value, nil
	}
	return nil, err
}

// Native is a callable implemented by the host rather than by Lox source.
type Native struct {
	NameStr string
	ArityN  int
	Fn      func(in *Interpreter, args []Value) (Value, error)
}

var (
	_ Value    = (*Native)(nil)
	_ Callable = (*Native)(nil)
)

func (n *Native) String() string { return "<native fn>" }
func (n *Native) Type() string   { return "native function" }
func (n *Native) Arity() int     { return n.ArityN }
func (n *Native) Call(in *Interpreter, args []Value) (Value, error) {
	return n.Fn(in, args)
}
