package manual

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/santa/lang"
	"github.com/ardnew/santa/log"
)

// ManualFile is the name of the markdown manual a [Tutor] maintains.
const ManualFile = "main.md"

// Tutor tracks one user's tutorial progress in a directory it owns.
type Tutor struct {
	dir    string
	output io.Writer
	logger log.Logger

	mu        sync.Mutex
	milestone Milestone
}

// Option configures a [Tutor].
type Option func(*Tutor)

// WithOutput sets where congratulations are written. The default discards
// them.
func WithOutput(w io.Writer) Option {
	return func(t *Tutor) {
		if w != nil {
			t.output = w
		}
	}
}

// WithLogger sets the logger used to trace progress.
func WithLogger(logger log.Logger) Option {
	return func(t *Tutor) { t.logger = logger }
}

// Open returns a Tutor resuming the progress stored in dir.
func Open(dir string, opts ...Option) (*Tutor, error) {
	t := &Tutor{dir: dir, output: io.Discard}

	for _, opt := range opts {
		opt(t)
	}

	m, err := LoadProgress(dir)
	if err != nil {
		return nil, err
	}

	t.milestone = m

	return t, nil
}

// Milestone returns the current milestone.
func (t *Tutor) Milestone() Milestone {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.milestone
}

// VersionCode returns the value scripts see as SANTA_VERSION.
func (t *Tutor) VersionCode() int64 { return VersionCode(t.Milestone()) }

// Version returns the language version at the current milestone.
func (t *Tutor) Version() string { return Version(t.Milestone()) }

// Path returns the path of the markdown manual.
func (t *Tutor) Path() string { return filepath.Join(t.dir, ManualFile) }

// WriteManual writes the edition for the current milestone to [Tutor.Path].
func (t *Tutor) WriteManual() error {
	var buf bytes.Buffer
	if err := Markdown(&buf, t.Milestone()); err != nil {
		return err
	}

	if err := os.MkdirAll(t.dir, 0o700); err != nil {
		return ErrDocument.With(slog.String("dir", t.dir)).Wrap(err)
	}

	if err := os.WriteFile(t.Path(), buf.Bytes(), 0o600); err != nil {
		return ErrDocument.With(slog.String("path", t.Path())).Wrap(err)
	}

	return nil
}

// Reset moves the tutorial to m, saves it, and rewrites the manual.
func (t *Tutor) Reset(m Milestone) error {
	if !m.valid() {
		return ErrMilestone.With(slog.Int("milestone", int(m)))
	}

	if err := t.set(m); err != nil {
		return err
	}

	t.notice("Manual was reset.")

	return nil
}

// Observe checks the goal of the current milestone against a program that
// ran to completion in env. When the goal is met the tutorial advances one
// milestone, and Observe reports true.
func (t *Tutor) Observe(ctx context.Context, prog *lang.Program, env *lang.Env) (bool, error) {
	m := t.Milestone()

	if m >= Graduated || !reached(ctx, m, prog, env) {
		return false, nil
	}

	if err := t.set(m + 1); err != nil {
		return false, err
	}

	t.logger.DebugContext(ctx, "milestone reached",
		slog.String("milestone", m.String()),
		slog.String("version", Version(m+1)),
	)

	t.notice("Good job! You have advanced to santa " + Version(m+1) +
		". Check your manual!")

	return true, nil
}

func (t *Tutor) set(m Milestone) error {
	t.mu.Lock()
	t.milestone = m
	t.mu.Unlock()

	if err := SaveProgress(t.dir, m); err != nil {
		return err
	}

	return t.WriteManual()
}

func (t *Tutor) notice(msg string) {
	style := lipgloss.NewRenderer(t.output).NewStyle().
		Foreground(lipgloss.Color("1")).Bold(true)

	_, _ = io.WriteString(t.output, style.Render(msg)+"\n")
}

// reached reports whether prog, having run in env, meets the goal of m.
func reached(ctx context.Context, m Milestone, prog *lang.Program, env *lang.Env) bool {
	switch m {
	case Basics:
		return contains(prog, func(n lang.Node) bool {
			call, ok := n.(*lang.Call)
			if !ok {
				return false
			}

			name, ok := call.Callee.(*lang.Name)

			return ok && name.Ident == "print"
		})

	case Conditionals:
		return contains(prog, func(n lang.Node) bool {
			_, ok := n.(*lang.IfStmt)

			return ok
		})

	case Loops:
		return contains(prog, func(n lang.Node) bool {
			_, ok := n.(*lang.WhileLoop)

			return ok
		})

	case Functions:
		return assertsEqual(ctx, env)
	}

	return false
}

func contains(prog *lang.Program, match func(lang.Node) bool) bool {
	for n := range prog.Statements.Nodes() {
		if match(n) {
			return true
		}
	}

	return false
}

// assertsEqual reports whether env binds assert_eq to a function that fails
// an assertion for unequal arguments and returns 42 for equal ones.
func assertsEqual(ctx context.Context, env *lang.Env) bool {
	v, err := env.Lookup("assert_eq")
	if err != nil {
		return false
	}

	fn, ok := v.(*lang.Function)
	if !ok || fn.Builtin() {
		return false
	}

	if _, err := fn.Call(ctx, lang.ArgumentList{lang.Integer(1), lang.Integer(2)}); !errors.Is(err, lang.ErrAssertion) {
		return false
	}

	got, err := fn.Call(ctx, lang.ArgumentList{lang.Integer(1), lang.Integer(1)})

	return err == nil && got == lang.Integer(42)
}
