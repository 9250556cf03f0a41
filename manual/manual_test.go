package manual

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/santa/builtin"
	"github.com/ardnew/santa/lang"
	"github.com/ardnew/santa/pkg"
)

func TestMilestone_Text(t *testing.T) {
	for m := Basics; m <= Graduated; m++ {
		text, err := m.MarshalText()
		require.NoError(t, err)

		var got Milestone
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, m, got)
		assert.NotEmpty(t, m.Goal())
	}

	var m Milestone
	require.NoError(t, m.UnmarshalText([]byte(" Loops ")))
	assert.Equal(t, Loops, m)

	require.NoError(t, m.UnmarshalText([]byte("3")))
	assert.Equal(t, Functions, m)

	require.ErrorIs(t, m.UnmarshalText([]byte("9")), ErrMilestone)
	require.ErrorIs(t, m.UnmarshalText([]byte("sleigh")), ErrMilestone)

	_, err := Milestone(-1).MarshalText()
	require.ErrorIs(t, err, ErrMilestone)
	assert.Equal(t, "Milestone(7)", Milestone(7).String())
}

func TestProgress(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "manual")

	m, err := LoadProgress(dir)
	require.NoError(t, err)
	assert.Equal(t, Basics, m)

	require.NoError(t, SaveProgress(dir, Loops))

	data, err := os.ReadFile(filepath.Join(dir, ProgressFile))
	require.NoError(t, err)
	assert.Equal(t, "milestone: loops\n", string(data))

	m, err = LoadProgress(dir)
	require.NoError(t, err)
	assert.Equal(t, Loops, m)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ProgressFile), []byte("milestone: elf\n"), 0o600))

	_, err = LoadProgress(dir)
	require.ErrorIs(t, err, ErrProgress)
}

func TestVersion(t *testing.T) {
	base := pkg.VersionCode() / 100 * 100

	assert.Equal(t, base, VersionCode(Basics))
	assert.Equal(t, base+int64(Graduated), VersionCode(Graduated))
	assert.True(t, strings.HasSuffix(Version(Loops), ".2"), Version(Loops))
	assert.Equal(t, VersionCode(Loops), pkg.ParseVersionCode(Version(Loops)))
}

func TestMarkdown(t *testing.T) {
	chapters := []struct {
		heading string
		from    Milestone
	}{
		{"## Basics", Basics},
		{"## Complex expressions", Conditionals},
		{"### Loops", Loops},
		{"## Database", Functions},
		{"## Functions", Functions},
		{"## Network", Graduated},
	}

	for m := Basics; m <= Graduated; m++ {
		t.Run(m.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Markdown(&buf, m))

			doc := buf.String()
			assert.Contains(t, doc, "manual version "+Version(m))
			assert.Contains(t, doc, m.Goal())

			for _, c := range chapters {
				if m >= c.from {
					assert.Contains(t, doc, c.heading+"\n")
				} else {
					assert.NotContains(t, doc, c.heading+"\n")
				}
			}
		})
	}

	require.ErrorIs(t, Markdown(io.Discard, Graduated+1), ErrMilestone)
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, Conditionals))

	doc := buf.String()
	assert.Contains(t, doc, "<h2>Complex expressions</h2>")
	assert.Contains(t, doc, "<code>print</code>")
	assert.NotContains(t, doc, "<h3>Loops</h3>")
}

type session struct {
	tutor  *Tutor
	notice bytes.Buffer
}

func newSession(t *testing.T, dir string) *session {
	t.Helper()

	s := &session{}

	var err error
	s.tutor, err = Open(dir, WithOutput(&s.notice))
	require.NoError(t, err)

	return s
}

func (s *session) run(t *testing.T, src string) bool {
	t.Helper()

	prog, err := lang.Parse(t.Context(), src)
	require.NoError(t, err)

	env := lang.NewEnv()
	require.NoError(t, builtin.Register(env, builtin.WithOutput(io.Discard)))

	_, err = prog.Evaluate(t.Context(), env)
	require.NoError(t, err)

	advanced, err := s.tutor.Observe(t.Context(), prog, env)
	require.NoError(t, err)

	return advanced
}

func TestTutor_Observe(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, dir)

	steps := []struct {
		src      string
		advances bool
	}{
		{`1 + 1;`, false},
		{`f = function() { print("ho"); }; f();`, true},
		{`while false { }`, false},
		{`x = if true { 1; } else { 2; };`, true},
		{`i = 0; while i < 2 { i = i + 1; }`, true},
		{`function assert_eq(a, b) { return 42; }`, false},
		{`function assert_eq(a, b) { assert(a == b); 42; }`, true},
		{`print("done");`, false},
	}

	for i, step := range steps {
		before := s.tutor.Milestone()

		assert.Equal(t, step.advances, s.run(t, step.src), "step %d: %s", i, step.src)

		if step.advances {
			assert.Equal(t, before+1, s.tutor.Milestone(), "step %d", i)
		} else {
			assert.Equal(t, before, s.tutor.Milestone(), "step %d", i)
		}
	}

	assert.Equal(t, Graduated, s.tutor.Milestone())
	assert.Equal(t, VersionCode(Graduated), s.tutor.VersionCode())
	assert.Equal(t, 4, strings.Count(s.notice.String(), "Good job!"))

	manual, err := os.ReadFile(s.tutor.Path())
	require.NoError(t, err)
	assert.Contains(t, string(manual), "## Network")

	resumed := newSession(t, dir)
	assert.Equal(t, Graduated, resumed.tutor.Milestone())
}

func TestTutor_Reset(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, dir)

	require.NoError(t, s.tutor.Reset(Loops))
	assert.Equal(t, Loops, s.tutor.Milestone())
	assert.Equal(t, "Manual was reset.\n", s.notice.String())
	assert.Equal(t, s.tutor.Version(), Version(Loops))

	manual, err := os.ReadFile(s.tutor.Path())
	require.NoError(t, err)
	assert.Contains(t, string(manual), "### Loops")
	assert.NotContains(t, string(manual), "## Functions")

	m, err := LoadProgress(dir)
	require.NoError(t, err)
	assert.Equal(t, Loops, m)

	require.ErrorIs(t, s.tutor.Reset(Milestone(12)), ErrMilestone)
	assert.Equal(t, Loops, s.tutor.Milestone())
}

func TestOpen_CorruptProgress(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProgressFile), []byte("milestone: [\n"), 0o600))

	_, err := Open(dir)
	require.ErrorIs(t, err, ErrProgress)
}
