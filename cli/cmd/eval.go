package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/santa/lang"
)

// Eval evaluates santa source given on the command line and prints the
// display form of its result.
type Eval struct {
	Source string `arg:"" help:"Santa source text, e.g. 'db_records();'" name:"source"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	h := hostFrom(ctx)

	prog, err := lang.Parse(ctx, e.Source, lang.WithLogger(h.Logger))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	env, err := h.Env(h.output(), h.exit())
	if err != nil {
		return err
	}

	result, err := prog.Evaluate(ctx, env)
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "eval"),
				slog.String("source", e.Source),
			)
	}

	h.observe(ctx, prog, env)

	_, err = fmt.Fprintln(h.output(), result)

	return err
}
