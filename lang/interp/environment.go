package interp

import "github.com/dolthub/swiss"

// Environment is a mapping from identifier text to Value, plus an optional
// reference to an enclosing Environment. Environments form a linear chain
// rooted at globals (never a DAG or cycle); a function value's closure is a
// shared reference to the environment that was current at its declaration,
// so environments may outlive the syntactic block that spawned them.
//
// Bindings are stored in a swiss.Map, an open-addressing hash table, rather
// than a native Go map.
type Environment struct {
	values    *swiss.Map[string, Value]
	enclosing *Environment
}

// NewEnvironment creates an environment enclosed by enclosing, or a
// top-level (globals) environment when enclosing is nil.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    swiss.NewMap[string, Value](8),
		enclosing: enclosing,
	}
}

// Define binds name to value in this environment, shadowing any binding of
// the same name in an enclosing environment. Redeclaring a name already
// bound in this same environment is permitted at runtime (the resolver is
// responsible for rejecting duplicate local declarations statically).
func (e *Environment) Define(name string, value Value) {
	e.values.Put(name, value)
}

// Get looks up name in this environment, then its enclosing chain.
func (e *Environment) Get(name string) (Value, bool) {
	if v, ok := e.values.Get(name); ok {
		return v, true
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, false
}

// GetAt fetches name from the environment distance hops up the chain from
// e, by exact name. The caller (the interpreter, guided by the resolver's
// scope-distance table) guarantees the name exists at exactly that depth.
func (e *Environment) GetAt(distance int, name string) Value {
	env := e.ancestor(distance)
	v, _ := env.values.Get(name)
	return v
}

// Assign rebinds an already-declared name to value, searching this
// environment then its enclosing chain. It reports false if name is not
// bound anywhere in the chain.
func (e *Environment) Assign(name string, value Value) bool {
	if _, ok := e.values.Get(name); ok {
		e.values.Put(name, value)
		return true
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return false
}

// AssignAt rebinds name in the environment distance hops up the chain from
// e.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	env := e.ancestor(distance)
	env.values.Put(name, value)
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}
