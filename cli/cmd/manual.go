package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/santa/cli/cmd/repl"
	"github.com/ardnew/santa/manual"
)

// Manual writes the tutorial manual for the current milestone and opens it
// in $EDITOR.
type Manual struct {
	Print bool `help:"Write the manual to stdout instead of opening an editor." short:"p"`
	HTML  bool `help:"Write the manual to stdout as HTML."                        name:"html"`
}

// Run executes the manual command.
func (m *Manual) Run(ctx context.Context) error {
	h := hostFrom(ctx)
	if h.Tutor == nil {
		return ErrNoTutor
	}

	level := h.Tutor.Milestone()

	switch {
	case m.HTML:
		return manual.HTML(h.output(), level)
	case m.Print:
		return manual.Markdown(h.output(), level)
	}

	if err := h.Tutor.WriteManual(); err != nil {
		return err
	}

	h.Logger.DebugContext(ctx, "open manual",
		slog.String("path", h.Tutor.Path()),
		slog.String("milestone", level.String()),
	)

	return repl.OpenEditor(ctx, h.input(), h.output(), h.stderr(), h.Tutor.Path())
}

// Reset moves the tutorial to a milestone and rewrites the manual.
type Reset struct {
	Milestone manual.Milestone `arg:"" help:"Milestone name or number." name:"milestone"`
}

// Run executes the reset command.
func (r *Reset) Run(ctx context.Context) error {
	h := hostFrom(ctx)
	if h.Tutor == nil {
		return ErrNoTutor
	}

	return h.Tutor.Reset(r.Milestone)
}
