package database

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"

	"github.com/ardnew/santa/lang"
)

// columnRefs records the identifiers a filter expression refers to, so a
// failed compile can be reported against the column it names.
type columnRefs struct {
	columns []string
	unknown []string
}

// Visit implements ast.Visitor for columnRefs.
func (c *columnRefs) Visit(node *ast.Node) {
	ident, ok := (*node).(*ast.IdentifierNode)
	if !ok {
		return
	}

	if !slices.Contains(c.columns, ident.Value) &&
		!slices.Contains(c.unknown, ident.Value) {
		c.unknown = append(c.unknown, ident.Value)
	}
}

// env returns the expression environment for record r. Column values are
// converted to plain Go data.
func (t *Table) env(r Record) map[string]any {
	env := make(map[string]any, len(t.Columns))
	for i, name := range t.Columns {
		env[name] = nil
		if i < len(r) {
			env[name] = lang.ToNative(r[i])
		}
	}

	return env
}

// Query returns the records for which filter evaluates to true.
//
// Filter is an expr-lang expression whose variables are the column names,
// bound to each record's values in turn. An empty filter matches every
// record.
func (t *Table) Query(filter string) ([]Record, error) {
	if strings.TrimSpace(filter) == "" {
		return slices.Clone(t.Records), nil
	}

	refs := &columnRefs{columns: t.Columns}

	// Columns are declared untyped so that a column may hold values of
	// different kinds across records.
	program, err := expr.Compile(filter,
		expr.Env(t.env(nil)),
		expr.Patch(refs),
	)
	if err != nil {
		if len(refs.unknown) > 0 && strings.Contains(err.Error(), "unknown name") {
			return nil, ErrDatabase.Wrap(errNoColumn).With(
				slog.String("column", refs.unknown[0]),
				slog.String("filter", filter),
			)
		}

		return nil, ErrDatabase.Wrap(err).With(slog.String("filter", filter))
	}

	var out []Record

	for _, r := range t.Records {
		result, err := expr.Run(program, t.env(r))
		if err != nil {
			return nil, ErrDatabase.Wrap(err).With(slog.String("filter", filter))
		}

		match, ok := result.(bool)
		if !ok {
			return nil, ErrDatabase.Wrap(
				fmt.Errorf("filter %q produced %T, not a boolean", filter, result),
			)
		}

		if match {
			out = append(out, r)
		}
	}

	return out, nil
}
