package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/santa/lang"
)

// Run parses santa source files as one program and evaluates it.
type Run struct {
	Files []string `arg:"" default:"-" help:"Source file(s) or '-' for stdin" name:"file"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	h := hostFrom(ctx)

	prog, err := h.parse(ctx, r.Files...)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "run"))
	}

	env, err := h.Env(h.output(), h.exit())
	if err != nil {
		return err
	}

	result, err := prog.Evaluate(ctx, env)
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "run"),
				slog.Any("files", r.Files),
			)
	}

	h.observe(ctx, prog, env)

	h.Logger.DebugContext(ctx, "run complete",
		slog.String("result", result.String()),
	)

	return nil
}
