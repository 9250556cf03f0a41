package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed statements keyed by a hash of the source text
// and the parse options. Statements are immutable and shared between every
// Program built from the same source.
var globalCache sync.Map

// state tracks the one-time parse of a cached source.
type state struct {
	once       sync.Once
	statements Block
	err        error
}

// hashOptions encodes options using gob and hashes with xxh3.
// Returns a hash that uniquely identifies the options configuration.
func hashOptions(opts options) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(opts.maxDepth)

	return xxh3.Hash(buf.Bytes())
}

// ParseReader parses input from an io.Reader and returns the program.
// Parse results are cached by content, so reading the same source twice
// parses it once.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Program, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	p := newProgram(opts...)

	p.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return parseCached(ctx, p, string(data))
}

// cacheKey identifies a parse by its source and options.
type cacheKey struct {
	source uint64
	opts   uint64
}

func makeCacheKey(source string, opts options) cacheKey {
	return cacheKey{
		source: xxh3.HashString(source),
		opts:   hashOptions(opts),
	}
}

// parseCached fills p with the statements of source, parsing it only if
// no earlier call has.
func parseCached(ctx context.Context, p *Program, source string) (*Program, error) {
	key := makeCacheKey(source, p.opts)

	value, cacheHit := globalCache.LoadOrStore(key, new(state))

	entry, ok := value.(*state)
	if !ok {
		return nil, ErrReadInput.
			With(slog.String("issue", "invalid entry type in cache"))
	}

	p.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(key.source, 16)),
		slog.String("opts_hash", strconv.FormatUint(key.opts, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	entry.once.Do(func() {
		tree, err := parseTree(source, p.opts.maxDepth)
		if err == nil {
			entry.statements, err = build(tree)
		}

		entry.err = err
	})

	if entry.err != nil {
		return nil, entry.err
	}

	p.Statements = entry.statements

	return p, nil
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
