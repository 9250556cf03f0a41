package builtin

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/ardnew/mung"

	"github.com/ardnew/santa/lang"
)

// VersionName is the name SANTA_VERSION is bound to.
const VersionName = "SANTA_VERSION"

// Register binds the core builtins and SANTA_VERSION into env.
func Register(env *lang.Env, opts ...Option) error {
	c := makeConfig(opts...)

	env.Define(VersionName, lang.Integer(c.version))

	for _, b := range []struct {
		name   string
		params lang.ParameterList
		native lang.Native
	}{
		{"print", lang.Params("*args"), c.print},
		{"len", lang.Params("value"), length},
		{"list_push", lang.Params("list", "value"), listPush},
		{"assert", lang.Params("arg"), assertTrue},
		{"exit", lang.Params("code"), c.exitCode},
		{"path_prefix", lang.Params("subject", "*items"), pathPrefix},
	} {
		if err := env.Register(b.name, b.params, b.native); err != nil {
			return err
		}
	}

	c.logger.Trace("builtins registered", slog.Int64("version", c.version))

	return nil
}

func invalid(format string, args ...any) error {
	return lang.ErrInvalidOperation.Wrap(fmt.Errorf(format, args...))
}

func (c config) print(_ context.Context, env *lang.Env) (lang.Value, error) {
	v, err := env.Lookup("args")
	if err != nil {
		return nil, err
	}

	args, ok := v.(*lang.List)
	if !ok {
		return nil, invalid("No args found")
	}

	w := bufio.NewWriter(c.output)

	for _, a := range args.All() {
		_, _ = w.WriteString(a.String())
		_ = w.WriteByte(' ')
	}

	_ = w.WriteByte('\n')

	if err := w.Flush(); err != nil {
		return nil, lang.WrapError(err)
	}

	return nil, nil
}

func length(_ context.Context, env *lang.Env) (lang.Value, error) {
	v, err := env.Lookup("value")
	if err != nil {
		return nil, err
	}

	switch x := v.(type) {
	case lang.String:
		return lang.Integer(utf8.RuneCountInString(string(x))), nil
	case *lang.List:
		return lang.Integer(x.Len()), nil
	case *lang.Map:
		return lang.Integer(x.Len()), nil
	default:
		return nil, invalid("length of %s not defined", v)
	}
}

func listPush(_ context.Context, env *lang.Env) (lang.Value, error) {
	v, err := env.Lookup("list")
	if err != nil {
		return nil, err
	}

	list, ok := v.(*lang.List)
	if !ok {
		return nil, invalid("First parameter to push not a list")
	}

	value, err := env.Lookup("value")
	if err != nil {
		return nil, err
	}

	list.Append(value)

	return nil, nil
}

func assertTrue(_ context.Context, env *lang.Env) (lang.Value, error) {
	v, err := env.Lookup("arg")
	if err != nil {
		return nil, err
	}

	b, ok := v.(lang.Boolean)
	if !ok {
		return nil, invalid("The assert function expects a single boolean.")
	}

	if !b {
		return nil, lang.ErrAssertion
	}

	return nil, nil
}

func (c config) exitCode(ctx context.Context, env *lang.Env) (lang.Value, error) {
	v, err := env.Lookup("code")
	if err != nil {
		return nil, err
	}

	code, ok := v.(lang.Integer)
	if !ok {
		return nil, invalid("The exit function expects a single integer exit code.")
	}

	c.logger.DebugContext(ctx, "exit", slog.Int64("code", int64(code)))

	c.exit(int(code))

	return nil, nil
}

func pathPrefix(_ context.Context, env *lang.Env) (lang.Value, error) {
	v, err := env.Lookup("subject")
	if err != nil {
		return nil, err
	}

	subject, ok := v.(lang.String)
	if !ok {
		return nil, invalid("path_prefix subject %s is not a string", v)
	}

	v, err = env.Lookup("items")
	if err != nil {
		return nil, err
	}

	list, ok := v.(*lang.List)
	if !ok {
		return nil, invalid("path_prefix items %s are not a list", v)
	}

	items := make([]string, 0, list.Len())

	for i, item := range list.All() {
		s, ok := item.(lang.String)
		if !ok {
			return nil, invalid("path_prefix item %d is not a string", i)
		}

		items = append(items, string(s))
	}

	return lang.String(mung.Make(
		mung.WithSubjectItems(string(subject)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(items...),
	).String()), nil
}
