package database

import (
	"context"
	"fmt"
	"slices"

	"github.com/ardnew/santa/lang"
)

// Register binds the db_* builtins operating on db into env.
func Register(env *lang.Env, db *Database) error {
	for _, b := range []struct {
		name   string
		params lang.ParameterList
		native lang.Native
	}{
		{"db_columns", nil, db.builtinColumns},
		{"db_get", lang.Params("column", "value"), db.builtinGet},
		{"db_set", lang.Params("column", "value", "newcolumn", "newvalue"), db.builtinSet},
		{"db_get_all", nil, db.builtinGetAll},
		{"db_records", nil, db.builtinRecords},
		{"db_query", lang.Params("filter"), db.builtinQuery},
		{"db_tables", nil, db.builtinTables},
		{"db_use", lang.Params("table"), db.builtinUse},
	} {
		if err := env.Register(b.name, b.params, b.native); err != nil {
			return err
		}
	}

	return nil
}

// stringParam returns the named parameter, which must be a String.
func stringParam(env *lang.Env, name string) (string, error) {
	v, err := env.Lookup(name)
	if err != nil {
		return "", err
	}

	s, ok := v.(lang.String)
	if !ok {
		return "", lang.ErrInvalidOperation.Wrap(
			fmt.Errorf("%s %s parameter not a string", name, v),
		)
	}

	return string(s), nil
}

func recordsList(recs []Record) *lang.List {
	list := lang.NewList()
	for _, r := range recs {
		list.Append(r.List())
	}

	return list
}

func stringsList(s []string) *lang.List {
	list := lang.NewList()
	for _, e := range s {
		list.Append(lang.String(e))
	}

	return list
}

func (db *Database) builtinColumns(context.Context, *lang.Env) (lang.Value, error) {
	return stringsList(db.Columns()), nil
}

func (db *Database) builtinGet(_ context.Context, env *lang.Env) (lang.Value, error) {
	column, err := stringParam(env, "column")
	if err != nil {
		return nil, err
	}

	if !slices.Contains(db.Columns(), column) {
		return nil, ErrDatabase.Wrap(fmt.Errorf("No column with name %s", column))
	}

	value, err := env.Lookup("value")
	if err != nil {
		return nil, err
	}

	r, err := db.GetFirst(column, value)
	if err != nil {
		return nil, err
	}

	return r.List(), nil
}

func (db *Database) builtinSet(_ context.Context, env *lang.Env) (lang.Value, error) {
	column, err := stringParam(env, "column")
	if err != nil {
		return nil, err
	}

	newcolumn, err := stringParam(env, "newcolumn")
	if err != nil {
		return nil, err
	}

	columns := db.Columns()

	switch {
	case !slices.Contains(columns, column):
		return nil, ErrDatabase.Wrap(fmt.Errorf("column '%s' not found", column))
	case !slices.Contains(columns, newcolumn):
		return nil, ErrDatabase.Wrap(fmt.Errorf("new column '%s' not found", newcolumn))
	}

	value, err := env.Lookup("value")
	if err != nil {
		return nil, err
	}

	newvalue, err := env.Lookup("newvalue")
	if err != nil {
		return nil, err
	}

	return nil, db.SetFirst(column, value, newcolumn, newvalue)
}

func (db *Database) builtinGetAll(context.Context, *lang.Env) (lang.Value, error) {
	return recordsList(db.Records()), nil
}

func (db *Database) builtinRecords(context.Context, *lang.Env) (lang.Value, error) {
	return lang.Integer(db.Len()), nil
}

func (db *Database) builtinQuery(_ context.Context, env *lang.Env) (lang.Value, error) {
	filter, err := stringParam(env, "filter")
	if err != nil {
		return nil, err
	}

	recs, err := db.Query(filter)
	if err != nil {
		return nil, err
	}

	return recordsList(recs), nil
}

func (db *Database) builtinTables(context.Context, *lang.Env) (lang.Value, error) {
	return stringsList(db.TableNames()), nil
}

func (db *Database) builtinUse(_ context.Context, env *lang.Env) (lang.Value, error) {
	name, err := stringParam(env, "table")
	if err != nil {
		return nil, err
	}

	return nil, db.SetCurrent(name)
}
