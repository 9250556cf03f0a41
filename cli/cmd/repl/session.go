package repl

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/ardnew/santa/lang"
	"github.com/ardnew/santa/log"
)

// EnvFunc builds a fresh environment whose builtins write to output and
// whose exit builtin calls exit.
type EnvFunc func(output io.Writer, exit func(code int)) (*lang.Env, error)

// session is the evaluation state shared by every copy of the model.
type session struct {
	build  EnvFunc
	logger log.Logger
	env    *lang.Env
	out    bytes.Buffer
	source []string

	exited bool
	code   int
}

func newSession(build EnvFunc, logger log.Logger) (*session, error) {
	if build == nil {
		return nil, ErrNoEnv
	}

	s := &session{build: build, logger: logger}

	env, err := build(&s.out, s.exit)
	if err != nil {
		return nil, err
	}

	s.env = env

	return s, nil
}

func (s *session) exit(code int) {
	s.exited, s.code = true, code
}

// eval parses and evaluates src in the session environment. It returns the
// result and anything the program printed. Source that evaluates without
// error is appended to the session source.
func (s *session) eval(ctx context.Context, src string) (lang.Value, string, error) {
	prog, err := lang.Parse(ctx, src, lang.WithLogger(s.logger))
	if err != nil {
		return nil, "", err
	}

	v, err := prog.Evaluate(ctx, s.env)

	printed := s.out.String()
	s.out.Reset()

	if err == nil {
		s.source = append(s.source, src)
	}

	return v, printed, err
}

// replace evaluates prog in a fresh environment. On success the fresh
// environment and src become the session state; otherwise the session is
// unchanged.
func (s *session) replace(ctx context.Context, prog *lang.Program, src string) (lang.Value, string, error) {
	env, err := s.build(&s.out, s.exit)
	if err != nil {
		return nil, "", err
	}

	v, err := prog.Evaluate(ctx, env)

	printed := s.out.String()
	s.out.Reset()

	if err != nil {
		return nil, printed, err
	}

	s.env, s.source = env, []string{strings.TrimRight(src, "\n")}

	return v, printed, nil
}

// Source returns the session source, one evaluated input per line.
func (s *session) Source() string {
	if len(s.source) == 0 {
		return ""
	}

	return strings.Join(s.source, "\n") + "\n"
}

// balanced reports whether every bracket opened in src is closed, ignoring
// string literals and comments. An unterminated string is unbalanced.
func balanced(src string) bool {
	depth := 0

	for i := 0; i < len(src); i++ {
		switch c := src[i]; {
		case c == '"':
			for i++; i < len(src) && src[i] != '"'; i++ {
				if src[i] == '\\' {
					i++
				}
			}

			if i >= len(src) {
				return false
			}
		case c == '#' || strings.HasPrefix(src[i:], "//"):
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return false
			}

			i += end + 3
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		}
	}

	return depth <= 0
}
