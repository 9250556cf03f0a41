package lang

import (
	"context"
	"testing"
)

// BenchmarkEvaluate benchmarks evaluation of pre-parsed programs.
func BenchmarkEvaluate(b *testing.B) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "arithmetic",
			src:  `x = 10; y = 20; x * y + x / y - 3;`,
		},
		{
			name: "string_repetition",
			src:  `s = "ab" * 50; s + "!";`,
		},
		{
			name: "loop",
			src:  `i = 0; s = 0; while i < 100 { s = s + i; i = i + 1; } s;`,
		},
		{
			name: "recursion",
			src: `function fib(n) { if n < 2 { return n; } return fib(n - 1) + fib(n - 2); }
			      fib(15);`,
		},
		{
			name: "closures",
			src: `function make(n) { return function(x) { return x + n; }; }
			      add = make(1); i = 0; while i < 50 { i = add(i); } i;`,
		},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			prog, err := Parse(context.Background(), tt.src)
			if err != nil {
				b.Fatalf("parse error: %v", err)
			}

			b.ReportAllocs()

			for b.Loop() {
				if _, err := prog.Evaluate(context.Background(), NewEnv()); err != nil {
					b.Fatalf("eval error: %v", err)
				}
			}
		})
	}
}

// BenchmarkParse compares direct parsing with cached parsing.
func BenchmarkParse(b *testing.B) {
	const src = `
		function fib(n) {
			if n < 2 { return n; }
			return fib(n - 1) + fib(n - 2);
		}
		xs = [1, 2, 3, {"k": "v"}];
		xs[3]["k"] = fib(10);
	`

	b.Run("direct", func(b *testing.B) {
		b.ReportAllocs()

		for b.Loop() {
			if _, err := Parse(context.Background(), src); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("cached", func(b *testing.B) {
		b.Cleanup(ClearCache)
		b.ReportAllocs()

		p := newProgram()

		for b.Loop() {
			if _, err := parseCached(context.Background(), p, src); err != nil {
				b.Fatal(err)
			}
		}
	})
}
