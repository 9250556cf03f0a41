package network

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/santa/database"
	"github.com/ardnew/santa/lang"
	"github.com/ardnew/santa/log"
)

const (
	// DefaultCount is the number of updates delivered by one call to Listen.
	DefaultCount = 20
	// DefaultInterval is the delay between consecutive updates.
	DefaultInterval = 420 * time.Millisecond
)

// Listener simulates a stream of database updates arriving over the
// network. Each update is applied to a replica database and then delivered
// to a santa handler function as its message string.
type Listener struct {
	mu      sync.Mutex
	handler *lang.Function
	rng     *rand.Rand

	count    int
	interval time.Duration
	names    []string
	replica  *database.Database
	logger   log.Logger
}

// Option applies a configuration option to a Listener.
type Option func(*Listener)

// WithCount sets the number of updates per Listen call.
func WithCount(n int) Option {
	return func(l *Listener) {
		if n >= 0 {
			l.count = n
		}
	}
}

// WithInterval sets the delay between updates. Zero delivers updates
// back to back.
func WithInterval(d time.Duration) Option {
	return func(l *Listener) {
		if d >= 0 {
			l.interval = d
		}
	}
}

// WithSeed makes the update sequence deterministic.
func WithSeed(seed uint64) Option {
	return func(l *Listener) {
		l.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithNames sets the names drawn from for rename updates.
func WithNames(names ...string) Option {
	return func(l *Listener) {
		if len(names) > 0 {
			l.names = names
		}
	}
}

// WithReplica sets the database updates are applied to. The default is a
// fresh [database.Default].
func WithReplica(db *database.Database) Option {
	return func(l *Listener) {
		if db != nil {
			l.replica = db
		}
	}
}

// WithLogger sets the logger used to trace delivered updates.
func WithLogger(logger log.Logger) Option {
	return func(l *Listener) {
		l.logger = logger
	}
}

// New returns a Listener with no handler registered.
func New(opts ...Option) *Listener {
	l := &Listener{
		count:    DefaultCount,
		interval: DefaultInterval,
		names:    DefaultNames,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.rng == nil {
		l.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if l.replica == nil {
		l.replica = database.Default()
	}

	return l
}

// Register sets the function called with each update message, replacing
// any previous handler.
func (l *Listener) Register(fn *lang.Function) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.handler = fn
}

// Handler returns the registered handler, or nil.
func (l *Listener) Handler() *lang.Function {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.handler
}

// Replica returns the database updates are applied to.
func (l *Listener) Replica() *database.Database { return l.replica }

// Listen delivers the configured number of updates to the registered
// handler, one at a time, and returns when all were handled.
//
// Listen returns nil immediately if no handler is registered. The first
// error from the handler, from applying an update, or from ctx ends
// listening and is returned.
func (l *Listener) Listen(ctx context.Context) error {
	fn := l.Handler()
	if fn == nil {
		l.logger.DebugContext(ctx, "listen without handler")

		return nil
	}

	g, ctx := errgroup.WithContext(ctx)

	updates := make(chan Update)

	g.Go(func() error {
		defer close(updates)

		return l.produce(ctx, updates)
	})

	g.Go(func() error {
		for u := range updates {
			msg := u.String()

			l.logger.TraceContext(ctx, "network update", slog.String("message", msg))

			if _, err := fn.Call(ctx, lang.ArgumentList{lang.String(msg)}); err != nil {
				return err
			}
		}

		return nil
	})

	return g.Wait()
}

// produce applies count random updates to the replica, sending each one
// after it is applied.
func (l *Listener) produce(ctx context.Context, out chan<- Update) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for i := range l.count {
		if i > 0 {
			timer.Reset(l.interval)

			select {
			case <-ctx.Done():
				return context.Cause(ctx)
			case <-timer.C:
			}
		}

		u, err := l.next()
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case out <- u:
		}
	}

	return nil
}

// next draws one update and applies it to the replica.
func (l *Listener) next() (Update, error) {
	records := l.replica.Records()
	if len(records) == 0 {
		return Update{}, database.ErrDatabase.Wrap(errNoRecords)
	}

	l.mu.Lock()

	record := records[l.rng.IntN(len(records))]

	var u Update
	if l.rng.IntN(2) == 0 {
		u = Update{
			Column: "isnaughty",
			Value:  lang.Boolean([]bool{true, false}[l.rng.IntN(2)]),
		}
	} else {
		u = Update{
			Column: "name",
			Value:  lang.String(l.names[l.rng.IntN(len(l.names))]),
		}
	}

	l.mu.Unlock()

	col := slices.Index(l.replica.Columns(), "id")
	if col < 0 || col >= len(record) {
		return Update{}, database.ErrDatabase.Wrap(errNoID)
	}

	u.ID = record[col]

	return u, l.replica.SetFirst("id", u.ID, u.Column, u.Value)
}
