package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/santa/cli/cmd/repl"
)

// Repl starts an interactive santa session.
type Repl struct {
	History bool `default:"true" help:"Persist input history in the cache directory." negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	h := hostFrom(ctx)

	var cacheDir string
	if r.History {
		cacheDir, _ = kongVar(ctx, CacheIdentifier)
	}

	code, err := repl.Run(ctx, h.Env, cacheDir, h.Logger)
	if err != nil {
		return err
	}

	h.Logger.DebugContext(ctx, "repl exit", slog.Int("code", code))

	if code != 0 {
		h.exit()(code)
	}

	return nil
}
