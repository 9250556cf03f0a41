package builtin

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/santa/lang"
)

type harness struct {
	out   bytes.Buffer
	exits []int
	env   *lang.Env
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	h := &harness{env: lang.NewEnv()}

	opts = append([]Option{
		WithOutput(&h.out),
		WithExit(func(code int) { h.exits = append(h.exits, code) }),
		WithVersion(10200),
	}, opts...)

	require.NoError(t, Register(h.env, opts...))

	return h
}

func (h *harness) run(t *testing.T, src string) (lang.Value, error) {
	t.Helper()

	prog, err := lang.Parse(t.Context(), src)
	require.NoError(t, err)

	return prog.Evaluate(t.Context(), h.env)
}

func TestPrint(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, `
		print("hello", 1, 2.5, true, [1, "a"], {"k": 1});
		print();
		x = print("x");
		print(x);
	`)
	require.NoError(t, err)

	want := "hello 1 2.5 true [1, \"a\"] {\"k\": 1} \n" +
		"\n" +
		"x \n" +
		"None \n"
	assert.Equal(t, want, h.out.String())
}

func TestLen(t *testing.T) {
	tests := []struct {
		src  string
		want lang.Value
	}{
		{`len("");`, lang.Integer(0)},
		{`len("santa");`, lang.Integer(5)},
		{`len("héllo");`, lang.Integer(5)},
		{`len([1, 2, [3]]);`, lang.Integer(3)},
		{`len({1: 2, "a": 3});`, lang.Integer(2)},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := newHarness(t).run(t, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := newHarness(t).run(t, `len(5);`)
	require.ErrorIs(t, err, lang.ErrInvalidOperation)
	assert.Contains(t, err.Error(), "length of 5 not defined")
}

func TestListPush(t *testing.T) {
	h := newHarness(t)

	got, err := h.run(t, `
		a = [1];
		b = a;
		list_push(a, 2);
		list_push(b, [3]);
		a;
	`)
	require.NoError(t, err)
	assert.Equal(t, `[1, 2, [3]]`, got.String())

	_, err = h.run(t, `list_push("a", 1);`)
	require.ErrorIs(t, err, lang.ErrInvalidOperation)
	assert.Contains(t, err.Error(), "First parameter to push not a list")
}

func TestAssert(t *testing.T) {
	h := newHarness(t)

	got, err := h.run(t, `assert(1 < 2);`)
	require.NoError(t, err)
	assert.Equal(t, lang.None{}, got)

	_, err = h.run(t, `assert(1 > 2);`)
	require.ErrorIs(t, err, lang.ErrAssertion)

	_, err = h.run(t, `assert(1);`)
	require.ErrorIs(t, err, lang.ErrInvalidOperation)
	assert.NotErrorIs(t, err, lang.ErrAssertion)
}

func TestExit(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, `exit(3); exit(0);`)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0}, h.exits)

	_, err = h.run(t, `exit("3");`)
	require.ErrorIs(t, err, lang.ErrInvalidOperation)
	assert.Equal(t, []int{3, 0}, h.exits)
}

func TestVersion(t *testing.T) {
	got, err := newHarness(t).run(t, `SANTA_VERSION;`)
	require.NoError(t, err)
	assert.Equal(t, lang.Integer(10200), got)

	got, err = newHarness(t, WithVersion(7)).run(t, `SANTA_VERSION >= 7;`)
	require.NoError(t, err)
	assert.Equal(t, lang.Boolean(true), got)
}

func TestPathPrefix(t *testing.T) {
	sep := string(os.PathListSeparator)

	got, err := newHarness(t).run(t, `path_prefix("/usr/bin", "/opt/santa/bin");`)
	require.NoError(t, err)

	s, ok := got.(lang.String)
	require.True(t, ok, "got %T", got)

	items := strings.Split(string(s), sep)
	assert.Equal(t, "/opt/santa/bin", items[0])
	assert.Contains(t, items, "/usr/bin")

	_, err = newHarness(t).run(t, `path_prefix(1, "/bin");`)
	require.ErrorIs(t, err, lang.ErrInvalidOperation)

	_, err = newHarness(t).run(t, `path_prefix("/bin", 1);`)
	require.ErrorIs(t, err, lang.ErrInvalidOperation)
}

func TestRegister_Names(t *testing.T) {
	h := newHarness(t)

	var names []string
	for name := range h.env.Names() {
		names = append(names, name)
	}

	assert.Equal(t, []string{
		"SANTA_VERSION", "assert", "exit", "len", "list_push", "path_prefix", "print",
	}, names)
}
