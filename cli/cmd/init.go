package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/santa/lang"
	"github.com/ardnew/santa/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// ignoreFlags lists flag name prefixes never written to the configuration.
var ignoreFlags = []string{"help", "version", profile.Tag}

// Init writes the configuration file from the current flag values, one
// santa assignment per flag.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	confPath, ok := kongVar(ctx, ConfigIdentifier)
	if !ok {
		return ErrNoContext.With(slog.String("var", ConfigIdentifier))
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	prog, err := lang.Parse(ctx, i.source(ctx))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	if err := prog.Format(ctx, file, defaultConfigIndent); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	hostFrom(ctx).Logger.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// source renders every configurable flag as a santa assignment.
func (i *Init) source(ctx context.Context) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	var b strings.Builder

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignoreFlags, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		lit, ok := literal(ktx.FlagValue(flag))
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "%s = %s;\n", strings.ReplaceAll(flag.Name, "-", "_"), lit)
	}

	return b.String()
}

// literal returns v as a santa literal. Empty strings and lists, and nil,
// have no literal.
func literal(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false

	case bool:
		return strconv.FormatBool(v), true

	case string:
		if v == "" {
			return "", false
		}

		return strconv.Quote(v), true

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), true

	case float32:
		return literal(float64(v))

	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.ContainsRune(s, '.') {
			s += ".0"
		}

		return s, true

	case []string:
		if len(v) == 0 {
			return "", false
		}

		items := make([]string, len(v))
		for i, s := range v {
			items[i] = strconv.Quote(s)
		}

		return "[" + strings.Join(items, ", ") + "]", true

	case fmt.Stringer:
		return literal(v.String())

	default:
		return literal(fmt.Sprint(v))
	}
}
