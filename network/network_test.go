package network

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/santa/database"
	"github.com/ardnew/santa/lang"
)

const syncScript = `
register_network_handler(function(msg) {
	u = parse_update(msg);
	db_set("id", u[0], u[1], u[2]);
});
listen();
`

func newEnv(t *testing.T, db *database.Database, l *Listener) *lang.Env {
	t.Helper()

	env := lang.NewEnv()
	require.NoError(t, database.Register(env, db))
	require.NoError(t, Register(env, l))

	return env
}

func handler(t *testing.T, native lang.Native) *lang.Function {
	t.Helper()

	fn, err := lang.NewBuiltin("handler", lang.Params("msg"), native)
	require.NoError(t, err)

	return fn
}

func run(t *testing.T, env *lang.Env, src string) (lang.Value, error) {
	t.Helper()

	prog, err := lang.Parse(t.Context(), src)
	require.NoError(t, err)

	return prog.Evaluate(t.Context(), env)
}

func TestUpdate_String(t *testing.T) {
	tests := []struct {
		update Update
		want   string
	}{
		{
			Update{lang.Integer(4), "isnaughty", lang.Boolean(true)},
			"update id 4; set isnaughty=<true>",
		},
		{
			Update{lang.Integer(42), "name", lang.String("Tim Anema")},
			"update id 42; set name=<Tim Anema>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.update.String())

			got, err := ParseUpdate(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.update, got)
		})
	}
}

func TestParseUpdate_Malformed(t *testing.T) {
	for _, msg := range []string{
		"",
		"update 4; set name=<x>",
		"update id 4 set name=<x>",
		"update id 4; set name=x",
		"update id 4; set =<x>",
		"update id 4; set name=<x",
	} {
		t.Run(msg, func(t *testing.T) {
			_, err := ParseUpdate(msg)
			require.ErrorIs(t, err, database.ErrDatabase)
			assert.Contains(t, err.Error(), "malformed update message")
		})
	}
}

func TestListener_Deterministic(t *testing.T) {
	a := New(WithSeed(7), WithInterval(0), WithCount(10))
	b := New(WithSeed(7), WithInterval(0), WithCount(10))

	var got [2][]string

	for i, l := range []*Listener{a, b} {
		l.Register(handler(t, func(_ context.Context, env *lang.Env) (lang.Value, error) {
			v, err := env.Lookup("msg")
			if err != nil {
				return nil, err
			}

			got[i] = append(got[i], v.String())

			return nil, nil
		}))

		require.NoError(t, l.Listen(t.Context()))
	}

	assert.Len(t, got[0], 10)
	assert.Equal(t, got[0], got[1])
	assert.True(t, a.Replica().Equal(b.Replica()))
}

func TestListener_ScriptStaysInSync(t *testing.T) {
	l := New(WithSeed(2023), WithInterval(0), WithCount(20))
	db := database.Default()

	_, err := run(t, newEnv(t, db, l), syncScript)
	require.NoError(t, err)

	assert.True(t, db.Equal(l.Replica()), "script database diverged from replica")
	assert.False(t, db.Equal(database.Default()), "no update was applied")
}

func TestListener_NoHandler(t *testing.T) {
	l := New(WithInterval(0))
	db := database.Default()

	got, err := run(t, newEnv(t, db, l), `listen();`)
	require.NoError(t, err)
	assert.Equal(t, lang.None{}, got)
	assert.True(t, l.Replica().Equal(database.Default()))
}

func TestListener_HandlerError(t *testing.T) {
	l := New(WithSeed(1), WithInterval(0))
	db := database.Default()

	_, err := run(t, newEnv(t, db, l), `
		register_network_handler(function(msg) { assert(false); });
		listen();
	`)
	require.ErrorIs(t, err, lang.ErrAssertion)
}

func TestListener_Cancel(t *testing.T) {
	l := New(WithInterval(time.Hour), WithCount(2))

	calls := 0
	l.Register(handler(t, func(context.Context, *lang.Env) (lang.Value, error) {
		calls++

		return nil, nil
	}))

	ctx, cancel := context.WithCancelCause(t.Context())
	cause := errors.New("shutdown")

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel(cause)
	}()

	err := l.Listen(ctx)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, 1, calls)
}

func TestListener_EmptyReplica(t *testing.T) {
	l := New(WithReplica(database.New()), WithInterval(0))
	l.Register(handler(t, func(context.Context, *lang.Env) (lang.Value, error) {
		return nil, nil
	}))

	err := l.Listen(t.Context())
	require.ErrorIs(t, err, database.ErrDatabase)
	assert.Contains(t, err.Error(), "replica has no records")
}

func TestRegister_Errors(t *testing.T) {
	env := newEnv(t, database.Default(), New())

	_, err := run(t, env, `register_network_handler(1);`)
	require.ErrorIs(t, err, database.ErrDatabase)
	assert.Contains(t, err.Error(), "register_network_handler expected a function as argument")

	_, err = run(t, env, `parse_update(1);`)
	require.ErrorIs(t, err, lang.ErrInvalidOperation)

	got, err := run(t, env, `parse_update("update id 3; set isnaughty=<false>");`)
	require.NoError(t, err)
	assert.Equal(t, `[3, "isnaughty", false]`, got.String())
}
