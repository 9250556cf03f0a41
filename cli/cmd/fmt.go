package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/santa/lang"
)

// Fmt parses a santa program and prints it in the chosen format.
type Fmt struct {
	Src  Src  `cmd:"" default:"withargs" help:"Format as canonical santa source (default)."`
	AST  AST  `cmd:""                    help:"Format as an indented syntax tree."`
	JSON JSON `cmd:""                    help:"Format the syntax tree as JSON."`
	YAML YAML `cmd:""                    help:"Format the syntax tree as YAML."`
}

// parseFormat parses the source at path for the named format.
func parseFormat(ctx context.Context, path, format string) (*lang.Program, *Host, error) {
	h := hostFrom(ctx)

	prog, err := h.parse(ctx, path)
	if err != nil {
		return nil, h, lang.WrapError(err).
			With(slog.String("format", format))
	}

	return prog, h, nil
}

// Src formats input as canonical santa source.
type Src struct {
	Indent int `default:"2" help:"Indent width for formatted output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt src command.
func (f *Src) Run(ctx context.Context) error {
	prog, h, err := parseFormat(ctx, f.Source, "src")
	if err != nil {
		return err
	}

	return prog.Format(ctx, h.output(), f.Indent)
}

// AST formats input as an indented syntax tree.
type AST struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt ast command.
func (a *AST) Run(ctx context.Context) error {
	prog, h, err := parseFormat(ctx, a.Source, "ast")
	if err != nil {
		return err
	}

	return prog.Print(h.output())
}

// JSON formats the syntax tree as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context) error {
	prog, h, err := parseFormat(ctx, j.Source, "json")
	if err != nil {
		return err
	}

	if err := prog.FormatJSON(ctx, h.output(), j.Indent); err != nil {
		return ErrMarshal.With(slog.String("format", "json")).Wrap(err)
	}

	return nil
}

// YAML formats the syntax tree as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context) error {
	prog, h, err := parseFormat(ctx, y.Source, "yaml")
	if err != nil {
		return err
	}

	if err := prog.FormatYAML(ctx, h.output(), y.Indent); err != nil {
		return ErrMarshal.With(slog.String("format", "yaml")).Wrap(err)
	}

	return nil
}
