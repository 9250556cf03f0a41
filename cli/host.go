package cli

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ardnew/santa/database"
	"github.com/ardnew/santa/log"
	"github.com/ardnew/santa/network"
)

// dbConfig selects the database every program starts from.
type dbConfig struct {
	File string `help:"Load the database from a YAML file instead of the default." placeholder:"FILE" type:"existingfile"`
}

func (*dbConfig) group() kong.Group {
	return kong.Group{Key: "db", Title: "Database options"}
}

// load returns the database named by File, or the default database.
func (f *dbConfig) load(ctx context.Context) (*database.Database, error) {
	if f.File == "" {
		return database.Default(), nil
	}

	file, err := os.Open(f.File)
	if err != nil {
		return nil, database.ErrDatabase.Wrap(err).
			With(slog.String("file", f.File))
	}
	defer file.Close()

	db := database.New()

	if err := db.LoadYAML(file); err != nil {
		return nil, database.ErrDatabase.Wrap(err).
			With(slog.String("file", f.File))
	}

	log.DebugContext(ctx, "database loaded",
		slog.String("file", f.File),
		slog.Int("records", db.Len()),
	)

	return db, nil
}

// netConfig shapes the simulated update stream seen by listen().
type netConfig struct {
	Count    int           `default:"${netCount}"    help:"Updates delivered per listen() call."`
	Interval time.Duration `default:"${netInterval}" help:"Delay between updates."`
	Seed     uint64        `default:"0"              help:"Seed for a repeatable update stream (0 is random)."`
}

func (*netConfig) vars() kong.Vars {
	return kong.Vars{
		"netCount":    strconv.Itoa(network.DefaultCount),
		"netInterval": network.DefaultInterval.String(),
	}
}

func (*netConfig) group() kong.Group {
	return kong.Group{Key: "net", Title: "Network options"}
}

// options returns the listener options selected by the flags.
func (f *netConfig) options() []network.Option {
	opts := []network.Option{
		network.WithCount(f.Count),
		network.WithInterval(f.Interval),
	}

	if f.Seed != 0 {
		opts = append(opts, network.WithSeed(f.Seed))
	}

	return opts
}
