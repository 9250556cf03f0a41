package database

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/ardnew/santa/lang"
)

// Record is one row of a [Table], holding one value per column.
type Record []lang.Value

// List returns the record as a new santa list.
func (r Record) List() *lang.List {
	return lang.NewList(slices.Clone(r)...)
}

// Native returns the record as plain Go data.
func (r Record) Native() []any {
	out := make([]any, 0, len(r))
	for _, v := range r {
		out = append(out, lang.ToNative(v))
	}

	return out
}

// Table is a named set of records sharing a column list.
//
// A Table performs no locking of its own. Use the methods of [Database] for
// access shared between goroutines.
type Table struct {
	Name    string
	Columns []string
	Records []Record
}

// NewTable returns an empty table with the given columns.
func NewTable(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: columns}
}

// AddRecord appends a record. Values beyond the column list are kept but
// are not addressable by name.
func (t *Table) AddRecord(values ...lang.Value) error {
	if len(values) < len(t.Columns) {
		return ErrDatabase.Wrap(errRecordSize).With(
			slog.String("table", t.Name),
			slog.Int("columns", len(t.Columns)),
			slog.Int("values", len(values)),
		)
	}

	t.Records = append(t.Records, Record(values))

	return nil
}

// Column returns the position of the named column.
func (t *Table) Column(name string) (int, error) {
	i := slices.Index(t.Columns, name)
	if i < 0 {
		return -1, ErrDatabase.Wrap(errNoColumn).With(slog.String("column", name))
	}

	return i, nil
}

// GetFirst returns the first record whose column equals value.
func (t *Table) GetFirst(column string, value lang.Value) (Record, error) {
	i, err := t.first(column, value)
	if err != nil {
		return nil, err
	}

	return t.Records[i], nil
}

// SetFirst finds the first record whose column equals value and stores
// newvalue in its newcolumn.
func (t *Table) SetFirst(column string, value lang.Value, newcolumn string, newvalue lang.Value) error {
	dst, err := t.Column(newcolumn)
	if err != nil {
		return err
	}

	i, err := t.first(column, value)
	if err != nil {
		return err
	}

	t.Records[i][dst] = newvalue

	return nil
}

// GetAll returns every record whose column equals value.
func (t *Table) GetAll(column string, value lang.Value) ([]Record, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	var out []Record

	for _, r := range t.Records {
		if lang.Equal(r[col], value) {
			out = append(out, r)
		}
	}

	return out, nil
}

func (t *Table) first(column string, value lang.Value) (int, error) {
	col, err := t.Column(column)
	if err != nil {
		return -1, err
	}

	i := slices.IndexFunc(t.Records, func(r Record) bool {
		return lang.Equal(r[col], value)
	})
	if i < 0 {
		return -1, ErrDatabase.Wrap(fmt.Errorf("Value %s not found in database", value)).
			With(slog.String("column", column))
	}

	return i, nil
}

// Clone returns a deep copy of t. Lists and maps held in records are
// shared.
func (t *Table) Clone() *Table {
	c := &Table{
		Name:    t.Name,
		Columns: slices.Clone(t.Columns),
		Records: make([]Record, 0, len(t.Records)),
	}

	for _, r := range t.Records {
		c.Records = append(c.Records, slices.Clone(r))
	}

	return c
}

// Equal reports whether t and u have the same name, columns and records.
func (t *Table) Equal(u *Table) bool {
	if t == nil || u == nil {
		return t == u
	}

	return t.Name == u.Name &&
		slices.Equal(t.Columns, u.Columns) &&
		slices.EqualFunc(t.Records, u.Records, func(a, b Record) bool {
			return slices.EqualFunc(a, b, lang.Equal)
		})
}
