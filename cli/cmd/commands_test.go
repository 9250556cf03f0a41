package cmd

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/santa/database"
	"github.com/ardnew/santa/lang"
	"github.com/ardnew/santa/network"
)

type testHost struct {
	Host

	out   bytes.Buffer
	exits []int
}

func newTestHost(stdin string) *testHost {
	h := &testHost{}
	h.Input = strings.NewReader(stdin)
	h.Output = &h.out
	h.Exit = func(code int) { h.exits = append(h.exits, code) }
	h.Network = []network.Option{
		network.WithSeed(1),
		network.WithInterval(0),
		network.WithCount(5),
	}

	return h
}

func (h *testHost) ctx(t *testing.T) context.Context {
	t.Helper()

	return WithHost(t.Context(), &h.Host)
}

func TestHost_Env(t *testing.T) {
	h := newTestHost("")

	env, err := h.Env(&h.out, h.Exit)
	require.NoError(t, err)

	names := slices.Collect(env.Names())
	for _, name := range []string{
		"SANTA_VERSION", "print", "len", "assert", "exit", "path_prefix",
		"db_get", "db_set", "db_query", "db_records",
		"listen", "register_network_handler", "parse_update",
	} {
		assert.Contains(t, names, name)
	}
}

func TestHost_EnvIsolation(t *testing.T) {
	h := newTestHost("")
	h.Database = database.Default()

	env, err := h.Env(&h.out, h.Exit)
	require.NoError(t, err)

	prog, err := lang.Parse(t.Context(), `db_set("id", 42, "isnaughty", false);`)
	require.NoError(t, err)

	_, err = prog.Evaluate(t.Context(), env)
	require.NoError(t, err)

	assert.True(t, database.Default().Equal(h.Database), "environment modified the host database")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	lib := writeFile(t, dir, "lib.santa", `function double(x) { return x * 2; }`)
	main := writeFile(t, dir, "main.santa", `print(double(21)); exit(len(db_get_all()) - 50);`)

	h := newTestHost("")
	require.NoError(t, (&Run{Files: []string{lib, main}}).Run(h.ctx(t)))
	assert.Equal(t, "42 \n", h.out.String())
	assert.Equal(t, []int{2}, h.exits)
}

func TestRun_Stdin(t *testing.T) {
	h := newTestHost(`print("ho ho ho");`)
	require.NoError(t, (&Run{Files: []string{"-"}}).Run(h.ctx(t)))
	assert.Equal(t, "ho ho ho \n", h.out.String())
}

func TestRun_Network(t *testing.T) {
	src := `
		register_network_handler(function(msg) {
			u = parse_update(msg);
			db_set("id", u[0], u[1], u[2]);
			list_push(seen, msg);
		});
		seen = [];
		listen();
		print(len(seen));
	`

	h := newTestHost(src)
	require.NoError(t, (&Run{}).Run(h.ctx(t)))
	assert.Equal(t, "5 \n", h.out.String())
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		target error
	}{
		{"parse", "x = ;", lang.ErrParse},
		{"undefined", "y;", lang.ErrNoDefinition},
		{"assertion", "assert(false);", lang.ErrAssertion},
		{"database", `db_use("presents");`, database.ErrDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHost(tt.src)
			err := (&Run{}).Run(h.ctx(t))
			require.ErrorIs(t, err, tt.target)
		})
	}

	h := newTestHost("")
	err := (&Run{Files: []string{"/nonexistent/file.santa"}}).Run(h.ctx(t))
	require.ErrorIs(t, err, ErrReadSource)
}

func TestEval(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2;", "3\n"},
		{`db_get("id", 42)[1];`, "Tim Anema\n"},
		{`[1, "a"];`, "[1, \"a\"]\n"},
		{"SANTA_VERSION > 0;", "true\n"},
		{"function f() {}", "function f()\n"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			h := newTestHost("")
			require.NoError(t, (&Eval{Source: tt.src}).Run(h.ctx(t)))
			assert.Equal(t, tt.want, h.out.String())
		})
	}

	h := newTestHost("")
	err := (&Eval{Source: "1 +"}).Run(h.ctx(t))
	require.ErrorIs(t, err, lang.ErrParse)
}

func TestFmt(t *testing.T) {
	src := "a=1;function f(x){return x+a;}"

	t.Run("src", func(t *testing.T) {
		h := newTestHost(src)
		require.NoError(t, (&Src{Indent: 2, Source: "-"}).Run(h.ctx(t)))
		assert.Equal(t, "a = 1;\nfunction f(x) {\n  return x + a;\n}\n", h.out.String())
	})

	t.Run("ast", func(t *testing.T) {
		h := newTestHost(src)
		require.NoError(t, (&AST{Source: "-"}).Run(h.ctx(t)))
		assert.True(t, strings.HasPrefix(h.out.String(), "Assignment: a\n"))
	})

	t.Run("json", func(t *testing.T) {
		h := newTestHost(src)
		require.NoError(t, (&JSON{Indent: 2, Source: "-"}).Run(h.ctx(t)))
		assert.True(t, strings.HasPrefix(h.out.String(), "{"))
		assert.Contains(t, h.out.String(), `"a"`)
	})

	t.Run("yaml", func(t *testing.T) {
		h := newTestHost(src)
		require.NoError(t, (&YAML{Indent: 2, Source: "-"}).Run(h.ctx(t)))
		assert.NotEmpty(t, h.out.String())
		assert.NotContains(t, h.out.String(), "{\n")
	})

	t.Run("invalid", func(t *testing.T) {
		h := newTestHost("a = ;")
		require.ErrorIs(t, (&Src{Source: "-"}).Run(h.ctx(t)), lang.ErrParse)
	})
}

func TestDB(t *testing.T) {
	t.Run("dump yaml", func(t *testing.T) {
		h := newTestHost("")
		require.NoError(t, (&Dump{Format: "yaml"}).Run(h.ctx(t)))
		assert.Contains(t, h.out.String(), "current: list")
	})

	t.Run("dump json", func(t *testing.T) {
		h := newTestHost("")
		require.NoError(t, (&Dump{Format: "json"}).Run(h.ctx(t)))
		assert.Contains(t, h.out.String(), `"current": "list"`)
	})

	t.Run("query", func(t *testing.T) {
		h := newTestHost("")
		require.NoError(t, (&Query{Filter: "isnaughty && id > 40"}).Run(h.ctx(t)))
		assert.Equal(t, "[42, \"Tim Anema\", true]\n[50, \"Patty Antilla\", true]\n",
			h.out.String())
	})

	t.Run("query table", func(t *testing.T) {
		h := newTestHost("")
		require.NoError(t, (&Query{Table: "default"}).Run(h.ctx(t)))
		assert.Empty(t, h.out.String())

		err := (&Query{Table: "presents"}).Run(h.ctx(t))
		require.ErrorIs(t, err, database.ErrDatabase)
	})

	t.Run("query error", func(t *testing.T) {
		h := newTestHost("")
		err := (&Query{Filter: "height > 1"}).Run(h.ctx(t))
		require.ErrorIs(t, err, database.ErrDatabase)
	})
}

func TestNetworkOptionOverride(t *testing.T) {
	h := newTestHost(`register_network_handler(function(m) {}); listen();`)
	h.Network = append(h.Network, network.WithInterval(time.Hour), network.WithCount(1))

	require.NoError(t, (&Run{}).Run(h.ctx(t)))
}
