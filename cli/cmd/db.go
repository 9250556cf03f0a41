package cmd

import (
	"bufio"
	"context"
	"log/slog"
)

// DB inspects the database that santa programs start from.
type DB struct {
	Dump  Dump  `cmd:"" help:"Print every table."`
	Query Query `cmd:"" help:"Print records of the current table matching a filter."`
}

// Dump prints the whole database.
type Dump struct {
	Format string `default:"yaml" enum:"yaml,json" help:"Output format." short:"F"`
}

// Run executes the db dump command.
func (d *Dump) Run(ctx context.Context) error {
	h := hostFrom(ctx)
	db := h.database()

	var err error

	switch d.Format {
	case "json":
		err = db.WriteJSON(h.output())
	default:
		err = db.WriteYAML(h.output())
	}

	if err != nil {
		return ErrMarshal.With(slog.String("format", d.Format)).Wrap(err)
	}

	return nil
}

// Query prints matching records, one santa list per line.
type Query struct {
	Table  string `help:"Table to query instead of the current table." short:"t"`
	Filter string `arg:"" default:"" help:"Boolean expr-lang filter over column names, e.g. 'isnaughty && id > 40'." name:"filter"`
}

// Run executes the db query command.
func (q *Query) Run(ctx context.Context) error {
	h := hostFrom(ctx)
	db := h.database()

	if q.Table != "" {
		if err := db.SetCurrent(q.Table); err != nil {
			return err
		}
	}

	records, err := db.Query(q.Filter)
	if err != nil {
		return err
	}

	h.Logger.DebugContext(ctx, "query complete",
		slog.String("table", db.Current().Name),
		slog.String("filter", q.Filter),
		slog.Int("records", len(records)),
	)

	w := bufio.NewWriter(h.output())
	for _, r := range records {
		_, _ = w.WriteString(r.List().String())
		_ = w.WriteByte('\n')
	}

	return w.Flush()
}
