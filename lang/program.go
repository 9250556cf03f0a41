package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/santa/log"
)

// Program is a parsed source text: its top-level statements plus the
// options it was parsed with.
type Program struct {
	Statements Block

	logger log.Logger
	opts   options
}

type options struct {
	maxDepth int
}

// Option configures parsing and evaluation of a [Program].
type Option func(*Program)

// WithMaxDepth sets the maximum syntactic nesting depth accepted by the
// parser. It does not bound evaluation depth.
func WithMaxDepth(depth int) Option {
	return func(p *Program) {
		p.opts.maxDepth = depth
	}
}

// WithLogger sets the logger used to trace parsing and evaluation.
func WithLogger(logger log.Logger) Option {
	return func(p *Program) {
		p.logger = logger
	}
}

// applyDefaults sets default option values on a program.
func applyDefaults(p *Program) {
	p.opts.maxDepth = DefaultMaxDepth
}

// applyOptions applies functional options to a program.
func applyOptions(p *Program, opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func newProgram(opts ...Option) *Program {
	p := new(Program)

	applyDefaults(p)
	applyOptions(p, opts...)

	return p
}

// Parse parses src into a [Program].
func Parse(ctx context.Context, src string, opts ...Option) (*Program, error) {
	p := newProgram(opts...)

	tree, err := parseTree(src, p.opts.maxDepth)
	if err != nil {
		p.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	if p.Statements, err = build(tree); err != nil {
		return nil, err
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("source_bytes", len(src)),
		slog.Int("statements", len(p.Statements)),
	)

	return p, nil
}

// ParseTree parses src and returns its concrete parse tree without
// lowering it.
func ParseTree(src string, opts ...Option) (*Tree, error) {
	return parseTree(src, newProgram(opts...).opts.maxDepth)
}

// Evaluate runs the program's statements in env. A top-level return ends
// the program early with the returned value.
func (p *Program) Evaluate(ctx context.Context, env *Env) (Value, error) {
	in := &interpreter{logger: p.logger}

	p.logger.TraceContext(ctx, "evaluate", slog.Int("statements", len(p.Statements)))

	v, err := in.body(ctx, p.Statements, env)
	if err != nil {
		p.logger.TraceContext(ctx, "evaluate failed", slog.Any("error", err))

		return nil, err
	}

	p.logger.TraceContext(ctx, "evaluate complete",
		slog.String("kind", v.Kind().String()),
	)

	return v, nil
}
