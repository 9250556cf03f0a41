package lang

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/santa/log"
)

// Evaluate runs prog against env and returns the value of its last
// statement, or the value of a top-level return.
func Evaluate(ctx context.Context, prog *Program, env *Env) (Value, error) {
	return prog.Evaluate(ctx, env)
}

// returnSignal carries the value of a return statement up to the nearest
// function body or program boundary.
type returnSignal struct {
	value Value
}

func (*returnSignal) Error() string { return "return outside of function" }

// interpreter walks the AST. User functions keep a reference to the
// interpreter that defined them so that calls made from outside an
// evaluation (network handlers) log through the same logger.
type interpreter struct {
	logger log.Logger
}

// body evaluates a function body or a whole program, turning a return
// signal into a normal result.
func (in *interpreter) body(ctx context.Context, stmts Block, env *Env) (Value, error) {
	v, err := in.block(ctx, stmts, env)
	if err == nil {
		return v, nil
	}

	var ret *returnSignal
	if errors.As(err, &ret) {
		return ret.value, nil
	}

	return nil, err
}

// block evaluates stmts in order and yields the last value, or None for an
// empty block. Any error, including a return signal, stops evaluation.
func (in *interpreter) block(ctx context.Context, stmts Block, env *Env) (Value, error) {
	var last Value = None{}

	for _, st := range stmts {
		v, err := in.eval(ctx, st, env)
		if err != nil {
			return nil, err
		}

		last = v
	}

	return last, nil
}

//nolint:cyclop,funlen
func (in *interpreter) eval(ctx context.Context, n Node, env *Env) (Value, error) {
	switch n := n.(type) {
	case *IntegerLit:
		return Integer(n.Value), nil

	case *FloatLit:
		return Float(n.Value), nil

	case *BooleanLit:
		return Boolean(n.Value), nil

	case *StringLit:
		return String(n.Value), nil

	case *Empty:
		return None{}, nil

	case *ListLit:
		items := make([]Value, 0, len(n.Elements))

		for _, e := range n.Elements {
			v, err := in.eval(ctx, e, env)
			if err != nil {
				return nil, err
			}

			items = append(items, v)
		}

		return NewList(items...), nil

	case *MapLit:
		m := NewMap()

		for _, p := range n.Pairs {
			k, err := in.eval(ctx, p.Key, env)
			if err != nil {
				return nil, err
			}

			v, err := in.eval(ctx, p.Value, env)
			if err != nil {
				return nil, err
			}

			if err := m.Put(k, v); err != nil {
				return nil, err
			}
		}

		return m, nil

	case *Name:
		return env.Lookup(n.Ident)

	case *FunctionLit:
		return in.function(n, env)

	case *IfStmt:
		return in.ifStatement(ctx, n, env)

	case *WhileLoop:
		return in.while(ctx, n, env)

	case *BinaryExpr:
		right, err := in.eval(ctx, n.Right, env)
		if err != nil {
			return nil, err
		}

		left, err := in.eval(ctx, n.Left, env)
		if err != nil {
			return nil, err
		}

		return Binary(n.Op, left, right)

	case *UnaryExpr:
		v, err := in.eval(ctx, n.Operand, env)
		if err != nil {
			return nil, err
		}

		if n.Op != OpNegate {
			return nil, invalidOperation("unknown unary operator %s", n.Op)
		}

		return Negate(v)

	case *Assignment:
		return in.assignment(ctx, n, env)

	case *Call:
		return in.call(ctx, n, env)

	case *Return:
		v, err := in.eval(ctx, n.Value, env)
		if err != nil {
			return nil, err
		}

		return nil, &returnSignal{value: v}

	case nil:
		return nil, ErrParseTree.Wrap(errors.New("nil node"))

	default:
		return nil, invalidOperation("cannot evaluate %s node", n.Type())
	}
}

func (in *interpreter) function(n *FunctionLit, env *Env) (Value, error) {
	if err := n.Params.Validate(); err != nil {
		return nil, err
	}

	fn := &Function{
		name:    n.Ident,
		params:  n.Params,
		closure: env,
		body:    n.Body,
		interp:  in,
	}

	if n.Ident != "" {
		env.Set(n.Ident, fn)
	}

	return fn, nil
}

func (in *interpreter) condition(ctx context.Context, n Node, env *Env) (bool, error) {
	v, err := in.eval(ctx, n, env)
	if err != nil {
		return false, err
	}

	b, ok := v.(Boolean)
	if !ok {
		return false, invalidOperation("condition must be a boolean, got %s", describe(v))
	}

	return bool(b), nil
}

func (in *interpreter) ifStatement(ctx context.Context, n *IfStmt, env *Env) (Value, error) {
	ok, err := in.condition(ctx, n.Cond, env)
	if err != nil {
		return nil, err
	}

	switch {
	case ok:
		return in.block(ctx, n.Then, env.Child())
	case n.Else != nil:
		return in.block(ctx, n.Else, env.Child())
	default:
		return None{}, nil
	}
}

func (in *interpreter) while(ctx context.Context, n *WhileLoop, env *Env) (Value, error) {
	for {
		if err := context.Cause(ctx); err != nil {
			return nil, err
		}

		ok, err := in.condition(ctx, n.Cond, env)
		if err != nil {
			return nil, err
		}

		if !ok {
			return None{}, nil
		}

		if _, err := in.block(ctx, n.Body, env.Child()); err != nil {
			return nil, err
		}
	}
}

func (in *interpreter) assignment(ctx context.Context, n *Assignment, env *Env) (Value, error) {
	value, err := in.eval(ctx, n.Value, env)
	if err != nil {
		return nil, err
	}

	if len(n.Indexes) == 0 {
		env.Set(n.Target, value)

		return value, nil
	}

	target, err := env.Lookup(n.Target)
	if err != nil {
		return nil, err
	}

	last := len(n.Indexes) - 1

	for _, e := range n.Indexes[:last] {
		idx, err := in.eval(ctx, e, env)
		if err != nil {
			return nil, err
		}

		if target, err = Index(target, idx); err != nil {
			return nil, err
		}
	}

	idx, err := in.eval(ctx, n.Indexes[last], env)
	if err != nil {
		return nil, err
	}

	if err := SetIndex(target, idx, value); err != nil {
		return nil, err
	}

	return value, nil
}

func (in *interpreter) call(ctx context.Context, n *Call, env *Env) (Value, error) {
	callee, err := in.eval(ctx, n.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make(ArgumentList, 0, len(n.Args))

	for _, a := range n.Args {
		v, err := in.eval(ctx, a, env)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	fn, ok := callee.(*Function)
	if !ok {
		return nil, invalidOperation("calling %s not supported", describe(callee))
	}

	if err := context.Cause(ctx); err != nil {
		return nil, err
	}

	in.logger.TraceContext(ctx, "call",
		slog.String("function", fn.String()),
		slog.Int("args", len(args)),
	)

	return fn.Call(ctx, args)
}
