package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/santa/cli/cmd"
	"github.com/ardnew/santa/log"
	"github.com/ardnew/santa/manual"
	"github.com/ardnew/santa/pkg"
)

// CLI is the top-level command-line interface for santa.
type CLI struct {
	Log      logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof    pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`
	Database dbConfig    `embed:"" group:"db"    prefix:"db-"`
	Net      netConfig   `embed:"" group:"net"   prefix:"net-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Run  cmd.Run  `cmd:"" default:"withargs" help:"Run santa source files"`
	Eval cmd.Eval `cmd:""                    help:"Evaluate santa source text"`
	Fmt  cmd.Fmt  `cmd:""                    help:"Format santa source"`
	DB   cmd.DB   `cmd:""                    help:"Inspect the database"             name:"db"`
	Repl cmd.Repl `cmd:""                    help:"Start an interactive session"`
	Init cmd.Init `cmd:""                    help:"Initialize configuration file"`

	Manual cmd.Manual `cmd:"" help:"Read the santa manual"`
	Reset  cmd.Reset  `cmd:"" help:"Reset tutorial progress" hidden:"" name:"RESET"`
}

// Run executes the santa CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	if err := mkdirAllRequired(); err != nil {
		return err
	}

	return process{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		exit:   exit,
		config: configPath(configFile),
		cache:  pkg.CacheDir(),
	}.run(ctx, args...)
}

// process holds the streams and paths one CLI invocation runs against.
type process struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	exit           func(code int)
	config         string // configuration file
	cache          string // cache directory
}

func (p process) run(ctx context.Context, args ...string) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tutor := p.tutor(ctx)

	version := strings.TrimSpace(pkg.Version)
	if tutor != nil {
		version = tutor.Version()
	}

	vars := kong.Vars{
		"version":            version,
		cmd.ConfigIdentifier: p.config,
		cmd.CacheIdentifier:  p.cache,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars(p.cache)).
		CloneWith(cli.Net.vars())

	// Logging flags take effect before kong reports any parse error.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(p.exit),
		kong.Writers(p.stdout, p.stderr),
		kong.ExplicitGroups([]kong.Group{
			cli.Log.group(),
			cli.Pprof.group(),
			cli.Database.group(),
			cli.Net.group(),
		}),
		// Commands receive ctx as it is when they run, carrying the host.
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve(ctx), p.config),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	// No-op unless built with the pprof tag and a mode is selected.
	defer cli.Pprof.start(ctx)()

	db, err := cli.Database.load(ctx)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithHost(ctx, &cmd.Host{
		Input:    p.stdin,
		Output:   p.stdout,
		Errors:   p.stderr,
		Exit:     p.exit,
		Database: db,
		Network:  cli.Net.options(),
		Tutor:    tutor,
		Logger:   log.Default(),
	})

	return ktx.Run()
}

// tutor resumes tutorial progress from the cache directory. Unreadable
// progress restarts the tutorial rather than failing the command, and a
// cache directory that cannot hold progress at all disables the tutorial.
func (p process) tutor(ctx context.Context) *manual.Tutor {
	dir := filepath.Join(p.cache, manualDir)
	opts := []manual.Option{
		manual.WithOutput(p.stderr),
		manual.WithLogger(log.Default()),
	}

	t, err := manual.Open(dir, opts...)
	if err != nil {
		log.WarnContext(ctx, "tutorial restarted", slog.Any("error", err))

		if err := os.Remove(filepath.Join(dir, manual.ProgressFile)); err != nil {
			log.DebugContext(ctx, "remove progress", slog.Any("error", err))
		}

		if t, err = manual.Open(dir, opts...); err != nil {
			return nil
		}
	}

	return t
}
