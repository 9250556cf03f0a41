package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/santa/lang"
)

func evalScript(t *testing.T, db *Database, src string) (lang.Value, error) {
	t.Helper()

	env := lang.NewEnv()
	require.NoError(t, Register(env, db))

	prog, err := lang.Parse(t.Context(), src)
	require.NoError(t, err)

	return prog.Evaluate(t.Context(), env)
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"records", `db_records();`, "52"},
		{"columns", `db_columns();`, `["id", "name", "isnaughty"]`},
		{"get", `db_get("id", 42)[1];`, "Tim Anema"},
		{"get by name", `db_get("name", "Vernie Goodale");`, `[1, "Vernie Goodale", false]`},
		{
			"set",
			`db_set("name", "Tim Anema", "isnaughty", false); db_get("id", 42)[2];`,
			"false",
		},
		{"get all", `db_get_all()[51][1];`, "Ethan Bowdoin"},
		{"query", `db_query("isnaughty && id > 40")[1][0];`, "50"},
		{"tables", `db_tables();`, `["default", "list"]`},
		{"use", `db_use("default"); db_records();`, "0"},
		{
			"count naughty",
			`
			n = 0;
			i = 0;
			all = db_get_all();
			while i < db_records() {
				if all[i][2] { n += 1; }
				i += 1;
			}
			n;
			`,
			"12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := evalScript(t, Default(), tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestBuiltins_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		target  error
		message string
	}{
		{
			"column not a string",
			`db_get(1, 2);`,
			lang.ErrInvalidOperation,
			"column 1 parameter not a string",
		},
		{"unknown column", `db_get("age", 1);`, ErrDatabase, "No column with name age"},
		{"missing value", `db_get("id", -1);`, ErrDatabase, "Value -1 not found in database"},
		{"unknown set column", `db_set("age", 1, "id", 2);`, ErrDatabase, "column 'age' not found"},
		{"unknown new column", `db_set("id", 1, "age", 2);`, ErrDatabase, "new column 'age' not found"},
		{"unknown table", `db_use("presents");`, ErrDatabase, "Table doesn't exist"},
		{"filter not a string", `db_query(5);`, lang.ErrInvalidOperation, "not a string"},
		{"bad filter", `db_query("height > 2");`, ErrDatabase, "Column doesn't exist"},
		{"arity", `db_records(1);`, lang.ErrInvalidOperation, "Too many arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evalScript(t, Default(), tt.src)
			require.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
