package builtin

import (
	"io"
	"os"

	"github.com/ardnew/santa/log"
	"github.com/ardnew/santa/pkg"
)

type config struct {
	output  io.Writer
	exit    func(code int)
	version int64
	logger  log.Logger
}

// Option applies a configuration option to config.
type Option func(config) config

func makeConfig(opts ...Option) config {
	c := config{
		output:  os.Stdout,
		exit:    os.Exit,
		version: pkg.VersionCode(),
	}

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// WithOutput sets the writer used by print. A nil writer discards output.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithExit sets the function called by exit. The default is [os.Exit].
func WithExit(fn func(code int)) Option {
	return func(c config) config {
		if fn != nil {
			c.exit = fn
		}

		return c
	}
}

// WithVersion sets the value bound to SANTA_VERSION.
func WithVersion(version int64) Option {
	return func(c config) config {
		c.version = version

		return c
	}
}

// WithLogger sets the logger used to trace builtin activity.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}
