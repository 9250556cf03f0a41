package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/santa/lang"
	"github.com/ardnew/santa/log"
)

// resolve returns a [kong.ConfigurationLoader] for configuration files
// written in santa.
//
// The file is evaluated as a program in an empty environment, and each
// variable it binds provides the value of the flag with the same name.
// Hyphens in flag names are written as underscores:
//
//	log_level = "debug";
//	log_pretty = false;
//	net_count = 5;
//	net_interval = "1s";
//
// Functions and None bind nothing. A file that fails to parse or evaluate
// resolves no flags, and command-line flags always override it.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		prog, err := lang.ParseReader(ctx, r)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration", slog.Any("error", err))

			return config{}, nil
		}

		env := lang.NewEnv()

		if _, err := prog.Evaluate(ctx, env); err != nil {
			log.WarnContext(ctx, "ignoring configuration", slog.Any("error", err))

			return config{}, nil
		}

		return makeConfig(env), nil
	}
}

// config implements [kong.Resolver] over the bindings of a configuration
// program.
type config map[string]any

func makeConfig(env *lang.Env) config {
	c := config{}

	for name := range env.Names() {
		v, ok := env.Get(name)
		if !ok {
			continue
		}

		switch x := v.(type) {
		case *lang.Function, lang.None:
			continue

		// Kong parses numbers from their text.
		case lang.Integer:
			c[name] = strconv.FormatInt(int64(x), 10)

		case lang.Float:
			c[name] = strconv.FormatFloat(float64(x), 'f', -1, 64)

		default:
			c[name] = lang.ToNative(v)
		}
	}

	return c
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	if v, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return v, nil
	}

	return nil, nil
}
