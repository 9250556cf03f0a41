package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/santa/builtin"
	"github.com/ardnew/santa/database"
	"github.com/ardnew/santa/lang"
	"github.com/ardnew/santa/log"
	"github.com/ardnew/santa/manual"
	"github.com/ardnew/santa/network"
)

// Host is the process state that santa programs run against.
//
// The zero value reads stdin, writes stdout, exits the process, and starts
// every environment from [database.Default]. Tutorial progress is tracked
// only when Tutor is set.
type Host struct {
	Input    io.Reader
	Output   io.Writer
	Errors   io.Writer
	Exit     func(code int)
	Database *database.Database
	Network  []network.Option
	Tutor    *manual.Tutor
	Logger   log.Logger
}

type hostKey struct{}

// WithHost returns a new context.Context carrying h.
func WithHost(ctx context.Context, h *Host) context.Context {
	return context.WithValue(ctx, hostKey{}, h)
}

// hostFrom returns the Host stored in ctx, or a zero Host.
func hostFrom(ctx context.Context) *Host {
	if h, ok := ctx.Value(hostKey{}).(*Host); ok && h != nil {
		return h
	}

	return &Host{Logger: log.Default()}
}

func (h *Host) input() io.Reader {
	if h.Input == nil {
		return os.Stdin
	}

	return h.Input
}

func (h *Host) output() io.Writer {
	if h.Output == nil {
		return os.Stdout
	}

	return h.Output
}

func (h *Host) stderr() io.Writer {
	if h.Errors == nil {
		return os.Stderr
	}

	return h.Errors
}

func (h *Host) exit() func(int) {
	if h.Exit == nil {
		return os.Exit
	}

	return h.Exit
}

// database returns a copy of the host database, so that every environment
// starts from the same state.
func (h *Host) database() *database.Database {
	if h.Database == nil {
		return database.Default()
	}

	return h.Database.Clone()
}

// Env returns a fresh environment holding the core builtins, the database
// builtins over a copy of the host database, and the network builtins over a
// listener whose replica starts equal to that copy.
func (h *Host) Env(output io.Writer, exit func(code int)) (*lang.Env, error) {
	env := lang.NewEnv()

	opts := []builtin.Option{
		builtin.WithOutput(output),
		builtin.WithExit(exit),
		builtin.WithLogger(h.Logger),
	}

	if h.Tutor != nil {
		opts = append(opts, builtin.WithVersion(h.Tutor.VersionCode()))
	}

	err := builtin.Register(env, opts...)
	if err != nil {
		return nil, err
	}

	db := h.database()

	if err := database.Register(env, db); err != nil {
		return nil, err
	}

	netOpts := append([]network.Option{
		network.WithReplica(db.Clone()),
		network.WithLogger(h.Logger),
	}, h.Network...)

	if err := network.Register(env, network.New(netOpts...)); err != nil {
		return nil, err
	}

	return env, nil
}

// observe lets the tutor check a program that ran to completion. Tutorial
// bookkeeping never fails the program itself.
func (h *Host) observe(ctx context.Context, prog *lang.Program, env *lang.Env) {
	if h.Tutor == nil {
		return
	}

	if _, err := h.Tutor.Observe(ctx, prog, env); err != nil {
		h.Logger.WarnContext(ctx, "tutorial progress not saved", slog.Any("error", err))
	}
}

// parse reads one santa program from the named sources.
func (h *Host) parse(ctx context.Context, paths ...string) (*lang.Program, error) {
	src, err := openSources(paths, h.input())
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return lang.ParseReader(ctx, src, lang.WithLogger(h.Logger))
}
