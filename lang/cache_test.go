package lang

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
)

func TestParseReader_Cache(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	const src = "a = [1, 2]; a[0];"

	first, err := ParseReader(t.Context(), strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	second, err := ParseReader(t.Context(), strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Fatal("programs must be distinct values")
	}

	if first.Statements[0] != second.Statements[0] {
		t.Error("second parse did not reuse cached statements")
	}

	deeper, err := ParseReader(t.Context(), strings.NewReader(src), WithMaxDepth(64))
	if err != nil {
		t.Fatal(err)
	}

	if deeper.Statements[0] == first.Statements[0] {
		t.Error("different options shared a cache entry")
	}

	ClearCache()

	third, err := ParseReader(t.Context(), strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	if third.Statements[0] == first.Statements[0] {
		t.Error("cache survived ClearCache")
	}

	v, err := third.Evaluate(t.Context(), NewEnv())
	if err != nil {
		t.Fatal(err)
	}

	if v != Integer(1) {
		t.Errorf("got %s, want 1", v)
	}
}

func TestParseReader_CachedError(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	for range 2 {
		_, err := ParseReader(t.Context(), strings.NewReader("x = ;"))
		if !errors.Is(err, ErrParse) {
			t.Fatalf("expected ErrParse, got %v", err)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestParseReader_ReadError(t *testing.T) {
	_, err := ParseReader(t.Context(), failingReader{})
	if !errors.Is(err, ErrReadInput) {
		t.Fatalf("expected ErrReadInput, got %v", err)
	}

	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("read cause lost: %v", err)
	}
}

func TestParseReader_Concurrent(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	const src = "function f(n) { return n * 2; } f(21);"

	var wg sync.WaitGroup

	results := make([]*Program, 8)

	for i := range results {
		wg.Go(func() {
			p, err := ParseReader(t.Context(), strings.NewReader(src))
			if err != nil {
				t.Error(err)

				return
			}

			results[i] = p
		})
	}

	wg.Wait()

	if results[0] == nil {
		t.FailNow()
	}

	for _, p := range results {
		if p == nil {
			continue
		}

		if p.Statements[0] != results[0].Statements[0] {
			t.Error("concurrent parses did not share one cache entry")
		}
	}
}

func TestCacheKey(t *testing.T) {
	type input struct {
		src   string
		depth int
	}

	seen := make(map[cacheKey]input)

	for _, src := range []string{"", "1;", "2;", "a = [1, 2]; a[0];"} {
		for _, depth := range []int{1, 2, 64, DefaultMaxDepth} {
			key := makeCacheKey(src, options{maxDepth: depth})

			if prev, ok := seen[key]; ok {
				t.Errorf("%q depth %d shares a key with %q depth %d",
					src, depth, prev.src, prev.depth)
			}

			seen[key] = input{src, depth}
		}
	}

	if makeCacheKey("1;", options{maxDepth: 2}) != makeCacheKey("1;", options{maxDepth: 2}) {
		t.Error("equal inputs produced different keys")
	}
}
