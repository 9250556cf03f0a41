package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/santa/lang"
	"github.com/ardnew/santa/log"
)

func TestSession_Eval(t *testing.T) {
	s, err := newSession(testEnv(t), log.Logger{})
	require.NoError(t, err)

	v, printed, err := s.eval(t.Context(), "x = naughty + 1;")
	require.NoError(t, err)
	assert.Equal(t, lang.Integer(13), v)
	assert.Empty(t, printed)

	v, printed, err = s.eval(t.Context(), `print("ho", x);`)
	require.NoError(t, err)
	assert.Equal(t, lang.None{}, v)
	assert.Equal(t, "[\"ho\", 13]\n", printed)

	_, _, err = s.eval(t.Context(), "y;")
	require.ErrorIs(t, err, lang.ErrNoDefinition)

	_, _, err = s.eval(t.Context(), "x = ;")
	require.ErrorIs(t, err, lang.ErrParse)

	assert.Equal(t, "x = naughty + 1;\nprint(\"ho\", x);\n", s.Source())

	_, _, err = s.eval(t.Context(), "exit(3);")
	require.NoError(t, err)
	assert.True(t, s.exited)
	assert.Equal(t, 3, s.code)
}

func TestSession_Replace(t *testing.T) {
	s, err := newSession(testEnv(t), log.Logger{})
	require.NoError(t, err)

	_, _, err = s.eval(t.Context(), "x = 1;")
	require.NoError(t, err)

	bad, err := lang.Parse(t.Context(), "x = missing;")
	require.NoError(t, err)

	_, _, err = s.replace(t.Context(), bad, "x = missing;")
	require.ErrorIs(t, err, lang.ErrNoDefinition)
	assert.Equal(t, "x = 1;\n", s.Source())

	good, err := lang.Parse(t.Context(), "y = nice;")
	require.NoError(t, err)

	v, _, err := s.replace(t.Context(), good, "y = nice;\n")
	require.NoError(t, err)
	assert.Equal(t, lang.Integer(40), v)
	assert.Equal(t, "y = nice;\n", s.Source())

	_, ok := s.env.Get("x")
	assert.False(t, ok, "replace kept the old environment")
}

func TestNewSession_NoEnv(t *testing.T) {
	_, err := newSession(nil, log.Logger{})
	require.ErrorIs(t, err, ErrNoEnv)
}

func TestBalanced(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"x = 1;", true},
		{"function f() {", false},
		{"function f() {\n return 1;\n}", true},
		{"xs = [1, [2,", false},
		{`s = "{";`, true},
		{`s = "unterminated`, false},
		{`s = "a\"{";`, true},
		{"x = 1; // {", true},
		{"x = 1; # (", true},
		{"/* { */ x;", true},
		{"/* open", false},
		{"f())", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, balanced(tt.src), "%q", tt.src)
	}
}
