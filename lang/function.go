package lang

import (
	"context"
	"reflect"
	"slices"
	"strings"
)

// Native is the operation behind a builtin function. It receives a fresh
// root environment holding only the bound parameters.
type Native func(ctx context.Context, env *Env) (Value, error)

// Parameter is one entry of a [ParameterList]. A vararg parameter collects
// all remaining arguments into a [List].
type Parameter struct {
	Name   string
	Vararg bool
}

func (p Parameter) String() string {
	if p.Vararg {
		return "*" + p.Name
	}

	return p.Name
}

// ParameterList is the ordered parameter declaration of a function.
type ParameterList []Parameter

// Params builds a ParameterList from names. A leading "*" marks a name as
// vararg.
func Params(names ...string) ParameterList {
	pl := make(ParameterList, 0, len(names))

	for _, name := range names {
		if rest, ok := strings.CutPrefix(name, "*"); ok {
			pl = append(pl, Parameter{Name: rest, Vararg: true})
		} else {
			pl = append(pl, Parameter{Name: name})
		}
	}

	return pl
}

// Validate reports an error if a vararg marker appears anywhere but on the
// last parameter.
func (pl ParameterList) Validate() error {
	for i, p := range pl {
		if p.Vararg && i != len(pl)-1 {
			return invalidOperation(
				"Vararg definition not at the end of function parameterlist",
			)
		}
	}

	return nil
}

// Variadic reports whether the last parameter is vararg.
func (pl ParameterList) Variadic() bool {
	return len(pl) > 0 && pl[len(pl)-1].Vararg
}

// Names returns the parameter names without vararg markers.
func (pl ParameterList) Names() []string {
	names := make([]string, 0, len(pl))
	for _, p := range pl {
		names = append(names, p.Name)
	}

	return names
}

func (pl ParameterList) String() string {
	part := make([]string, 0, len(pl))
	for _, p := range pl {
		part = append(part, p.String())
	}

	return "(" + strings.Join(part, ", ") + ")"
}

// ArgumentList is the ordered list of evaluated call arguments.
type ArgumentList []Value

// Function is a callable value: either a builtin wrapping a [Native]
// operation or a user function closing over the environment it was defined
// in.
type Function struct {
	name   string
	params ParameterList

	native Native

	closure *Env
	body    Block
	interp  *interpreter
}

// NewBuiltin returns a builtin function.
func NewBuiltin(name string, params ParameterList, native Native) (*Function, error) {
	if native == nil {
		return nil, invalidOperation("builtin %q has no native operation", name)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Function{name: name, params: params, native: native}, nil
}

func (*Function) Kind() Kind { return KindFunction }

// Name returns the function's name, or the empty string if anonymous.
func (f *Function) Name() string { return f.name }

// Params returns the declared parameters.
func (f *Function) Params() ParameterList { return slices.Clone(f.params) }

// Builtin reports whether f wraps a native operation.
func (f *Function) Builtin() bool { return f.native != nil }

func (f *Function) String() string {
	kind := "function"
	if f.Builtin() {
		kind = "builtin"
	}

	if f.name != "" {
		kind += " " + f.name
	}

	return kind + f.params.String()
}

// Call invokes f with args. Builtins run in a fresh root environment; user
// functions run in a child of their closure.
func (f *Function) Call(ctx context.Context, args ArgumentList) (Value, error) {
	if f.Builtin() {
		env := NewEnv()
		if err := env.Bind(f.params, args); err != nil {
			return nil, err
		}

		v, err := f.native(ctx, env)
		if err != nil {
			return nil, err
		}

		if v == nil {
			return None{}, nil
		}

		return v, nil
	}

	env := f.closure.Child()
	if err := env.Bind(f.params, args); err != nil {
		return nil, err
	}

	return f.interp.body(ctx, f.body, env)
}

// Equal reports whether f and g are the same builtin operation, or user
// functions with structurally equal bodies. Closures are not compared.
func (f *Function) Equal(g *Function) bool {
	switch {
	case f == g:
		return true
	case f == nil || g == nil:
		return false
	case !slices.Equal(f.params, g.params):
		return false
	case f.Builtin() != g.Builtin():
		return false
	case f.Builtin():
		return reflect.ValueOf(f.native).Pointer() ==
			reflect.ValueOf(g.native).Pointer()
	default:
		return reflect.DeepEqual(f.body, g.body)
	}
}
