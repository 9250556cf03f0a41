package lang

import (
	"iter"
	"maps"
	"slices"
)

// binding is a mutable cell holding the value bound to a name.
type binding struct {
	value Value
}

// Env is a lexical scope: a set of bindings plus an optional parent.
//
// Env is not safe for concurrent use. Callers that share an environment
// across goroutines must serialize access themselves.
type Env struct {
	parent *Env
	vars   map[string]*binding
}

// NewEnv returns an empty root environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]*binding)}
}

// Child returns a new empty environment whose parent is e.
func (e *Env) Child() *Env {
	return &Env{parent: e, vars: make(map[string]*binding)}
}

// Parent returns the enclosing environment, or nil for a root.
func (e *Env) Parent() *Env { return e.parent }

func (e *Env) find(name string) *binding {
	for s := e; s != nil; s = s.parent {
		if b, ok := s.vars[name]; ok {
			return b
		}
	}

	return nil
}

// Get returns the value bound to name in e or its nearest ancestor.
func (e *Env) Get(name string) (Value, bool) {
	if b := e.find(name); b != nil {
		return b.value, true
	}

	return nil, false
}

// Lookup is like [Env.Get] but reports an unbound name as
// [ErrNoDefinition].
func (e *Env) Lookup(name string) (Value, error) {
	if v, ok := e.Get(name); ok {
		return v, nil
	}

	return nil, ErrNoDefinition.Wrap(nameError(name))
}

// Set assigns value to the nearest existing binding of name. If no
// environment in the chain binds name, a new binding is created in e.
func (e *Env) Set(name string, value Value) {
	if b := e.find(name); b != nil {
		b.value = value

		return
	}

	e.vars[name] = &binding{value: value}
}

// Define binds name in e, shadowing any binding in its ancestors.
func (e *Env) Define(name string, value Value) {
	if b, ok := e.vars[name]; ok {
		b.value = value

		return
	}

	e.vars[name] = &binding{value: value}
}

// Bind binds args to params in e.
//
// Without a trailing vararg the counts must match exactly. With one, the
// leading parameters must all be satisfied and the remaining arguments are
// collected into a new list.
func (e *Env) Bind(params ParameterList, args ArgumentList) error {
	fixed := len(params)
	if params.Variadic() {
		fixed--
	}

	switch {
	case len(args) < fixed:
		return invalidOperation("Not enough arguments for function")
	case len(args) > fixed && !params.Variadic():
		return invalidOperation("Too many arguments for function")
	}

	for i, p := range params[:fixed] {
		e.Define(p.Name, args[i])
	}

	if params.Variadic() {
		e.Define(params[fixed].Name, NewList(slices.Clone(args[fixed:])...))
	}

	return nil
}

// Register binds a builtin function to name in e.
func (e *Env) Register(name string, params ParameterList, native Native) error {
	fn, err := NewBuiltin(name, params, native)
	if err != nil {
		return err
	}

	e.Define(name, fn)

	return nil
}

// Names returns an iterator over every name visible from e, in sorted
// order. Shadowed names are reported once.
func (e *Env) Names() iter.Seq[string] {
	seen := make(map[string]struct{})
	for s := e; s != nil; s = s.parent {
		for name := range s.vars {
			seen[name] = struct{}{}
		}
	}

	return slices.Values(slices.Sorted(maps.Keys(seen)))
}

type nameError string

func (e nameError) Error() string { return string(e) }
