package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// testEnv returns a root environment holding the helpers used by these
// tests: assert(cond) and peek(), a builtin that tries to read a caller
// local named "secret".
func testEnv(t *testing.T) *Env {
	t.Helper()

	env := NewEnv()

	err := env.Register("assert", Params("cond"),
		func(_ context.Context, env *Env) (Value, error) {
			v, err := env.Lookup("cond")
			if err != nil {
				return nil, err
			}

			if v != Boolean(true) {
				return nil, ErrAssertion
			}

			return None{}, nil
		})
	if err != nil {
		t.Fatalf("register assert: %v", err)
	}

	err = env.Register("peek", nil,
		func(_ context.Context, env *Env) (Value, error) {
			return env.Lookup("secret")
		})
	if err != nil {
		t.Fatalf("register peek: %v", err)
	}

	return env
}

func run(t *testing.T, src string) (Value, error) {
	t.Helper()

	prog, err := Parse(t.Context(), src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}

	return prog.Evaluate(t.Context(), testEnv(t))
}

func TestEvaluate_Values(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Value
	}{
		{"precedence", `3 + 4 / 2;`, Float(5)},
		{"parentheses", `(3 + 4) / 2;`, Float(3.5)},
		{"division promotes", `10 / 2;`, Float(5)},
		{"integer arithmetic", `2 * 3 - 4;`, Integer(2)},
		{"left associative", `10 - 4 - 3;`, Integer(3)},
		{"mixed promotes", `1 + 0.5;`, Float(1.5)},
		{"boolean addition", `true + true;`, Integer(2)},
		{"boolean ordering", `false > -1;`, Boolean(true)},
		{"boolean negation", `-true;`, Boolean(false)},
		{"double negation", `--3;`, Integer(3)},
		{"numeric equality", `1 == 1.0;`, Boolean(true)},
		{"boolean equality", `1 == true;`, Boolean(true)},
		{"string equality", `"a" != "b";`, Boolean(true)},
		{"none equality", `a = if false { 1; }; b = if false { 2; }; a == b;`, Boolean(true)},
		{"undefined operand", `a = 1; a == b;`, nil},
		{"deep list equality", `[1, [2]] == [1, [2]];`, Boolean(true)},
		{"strict nested equality", `[1] == [1.0];`, Boolean(false)},
		{"map equality", `{"a": 1} == {"a": 1};`, Boolean(true)},
		{"string concatenation", `"ab" + 1;`, String("ab1")},
		{"string concatenation left", `1.5 + "ab";`, String("1.5ab")},
		{"string repetition", `"ab" * 3;`, String("ababab")},
		{"string repetition left", `2 * "ab";`, String("abab")},
		{"negative repetition", `"ab" * -1;`, String("")},
		{"string index", `"héllo"[1];`, String("é")},
		{"boolean index", `[1, 2][true];`, Integer(2)},
		{"map boolean key", `m = {1: "one"}; m[true];`, String("one")},
		{"map boolean key overwrites", `{1: "a", true: "b"}[1];`, String("b")},
		{"map boolean set", `m = {}; m[false] = "zero"; m[0];`, String("zero")},
		{"empty list repetition", `[] * 4611686018427387904;`, NewList()},
		{"empty string repetition", `"" * 4611686018427387904;`, String("")},
		{"escapes", `"a\tb\n" + 'q\'s';`, String("a\tb\nq's")},
		{"upsert outer", `a = 3; if true { a = a + 2; } a;`, Integer(5)},
		{"if yields last", `if true { 1; 2; }`, Integer(2)},
		{"if false no else", `if false { 1; }`, None{}},
		{"if as expression", `x = if false { 3; } else { 5; }; x;`, Integer(5)},
		{"else if", `a = 2; if a == 1 { "one"; } else if a == 2 { "two"; } else { "many"; }`, String("two")},
		{"while yields none", `i = 0; while i < 3 { i = i + 1; }`, None{}},
		{"while mutates outer", `i = 0; while i < 3 { i = i + 1; } i;`, Integer(3)},
		{"assignment value", `a = 7;`, Integer(7)},
		{"empty program", ``, None{}},
		{"empty statement", `;`, None{}},
		{"top-level return", `1; return 2; 3;`, Integer(2)},
		{
			"closure",
			`function make(n) { return function(x) { return x + n; }; }
			 add5 = make(5);
			 add5(3);`,
			Integer(8),
		},
		{
			"closure mutation",
			`c = 0; function inc() { c = c + 1; } inc(); inc(); c;`,
			Integer(2),
		},
		{
			"recursion",
			`function fact(n) { if n <= 1 { return 1; } return n * fact(n - 1); }
			 fact(10);`,
			Integer(3628800),
		},
		{
			"return through loop",
			`function f() {
			   i = 0;
			   while true {
			     i = i + 1;
			     if i == 3 { return i; }
			   }
			   return -1;
			 }
			 r = f();
			 r + 10;`,
			Integer(13),
		},
		{"function without return", `function f() { 1; 2; } f();`, Integer(2)},
		{"empty function", `function f() {} f();`, None{}},
		{"chained call", `function k() { return function() { return 7; }; } k()();`, Integer(7)},
		{"chained index", `m = [[1, [2, 3]]]; m[0][1][1];`, Integer(3)},
		{"call then index", `function l() { return [4, 5]; } l()[1];`, Integer(5)},
		{"compound assignment", `a = [[1, 2]]; a[0][1] = 3; a[0][1];`, Integer(3)},
		{"compound assignment shape", `a = [[1, 2]]; a[0][1] = 3; a == [[1, 3]];`, Boolean(true)},
		{"map insert", `m = {}; m["k"] = 1; m["k"];`, Integer(1)},
		{"structural function equality", `f = function(x) { return x; }; g = function(x) { return x; }; f == g;`, Boolean(true)},
		{"function inequality", `f = function(x) { return x; }; g = function(y) { return y; }; f == g;`, Boolean(false)},
		{"comments", "# c\na = 1; // x\n/* y */ a;", Integer(1)},
		{"trailing commas", `function f(a, b,) { return [a, b,]; } f(1, 2,) == [1, 2];`, Boolean(true)},
		{"assert passes", `assert(1 < 2);`, None{}},
		{"named function yields itself", `function f() {} f == f;`, Boolean(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.src)

			if tt.want == nil {
				if !errors.Is(err, ErrNoDefinition) {
					t.Fatalf("expected ErrNoDefinition, got %v (%v)", err, got)
				}

				return
			}

			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}

			if !Equal(got, tt.want) {
				t.Errorf("got %s (%s), want %s (%s)",
					got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    error
		message string
	}{
		{"undefined name", `x;`, ErrNoDefinition, "x"},
		{"block local", `if true { b = 1; } b;`, ErrNoDefinition, "b"},
		{"loop local", `i = 0; while i < 1 { j = i; i = i + 1; } j;`, ErrNoDefinition, "j"},
		{"too many arguments", `function h(x) { return x; } h(1, 2, 3);`, ErrInvalidOperation, "Too many arguments for function"},
		{"not enough arguments", `function h(x) { return x; } h();`, ErrInvalidOperation, "Not enough arguments for function"},
		{"not enough before vararg", `function h(x, y, *z) { } h(1);`, ErrInvalidOperation, "Not enough arguments for function"},
		{"vararg not last", `function f(*a, b) { }`, ErrInvalidOperation, "Vararg definition not at the end of function parameterlist"},
		{"vararg not last anonymous", `f = function(*a, b) { };`, ErrInvalidOperation, "Vararg definition"},
		{"call non-function", `x = 5; x();`, ErrInvalidOperation, "calling integer(5)"},
		{"non-boolean if", `if 1 { 2; }`, ErrInvalidOperation, "condition"},
		{"non-boolean while", `while "x" { }`, ErrInvalidOperation, "condition"},
		{"string ordering", `"a" < "b";`, ErrInvalidOperation, "comparison"},
		{"mixed ordering", `1 < "a";`, ErrInvalidOperation, "comparison"},
		{"mixed equality", `1 == "1";`, ErrInvalidOperation, "comparison"},
		{"negate string", `-"a";`, ErrInvalidOperation, "negation"},
		{"subtract strings", `"a" - "b";`, ErrInvalidOperation, "subtraction"},
		{"list out of bounds", `[1, 2][5];`, ErrIndexOutOfBounds, "5"},
		{"negative index", `[1, 2][-1];`, ErrIndexOutOfBounds, "-1"},
		{"string out of bounds", `"ab"[2];`, ErrIndexOutOfBounds, "2"},
		{"missing key", `{"a": 1}["b"];`, ErrKey, `"b"`},
		{"unhashable key", `{[1]: 2};`, ErrInvalidOperation, "unhashable"},
		{"list repetition overflow", `[1, 2] * 4611686018427387904;`, ErrInvalidOperation, "repetition count 4611686018427387904 too large"},
		{"list repetition left overflow", `4611686018427387904 * [1];`, ErrInvalidOperation, "too large"},
		{"string repetition overflow", `"ho" * 4611686018427387904;`, ErrInvalidOperation, "repetition count 4611686018427387904 too large"},
		{"string repetition too long", `"ho" * 1073741824;`, ErrInvalidOperation, "too large"},
		{"index integer", `5[0];`, ErrInvalidOperation, "indexing"},
		{"set index string", `s = "ab"; s[0] = "c";`, ErrInvalidOperation, "assigning"},
		{"compound path missing", `a = [[1]]; a[3][0] = 1;`, ErrIndexOutOfBounds, "3"},
		{"assert fails", `assert(1 > 2);`, ErrAssertion, ""},
		{"builtin sandbox", `secret = 1; peek();`, ErrNoDefinition, "secret"},
		{"error inside function", `function f() { return y; } f();`, ErrNoDefinition, "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.src)
			if err == nil {
				t.Fatalf("expected error, got %s", got)
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err, tt.message)
			}

			var ret *returnSignal
			if errors.As(err, &ret) {
				t.Errorf("return signal escaped: %v", err)
			}
		})
	}
}

func TestEvaluate_RightOperandFirst(t *testing.T) {
	var order []Value

	env := NewEnv()

	err := env.Register("trace", Params("x"),
		func(_ context.Context, env *Env) (Value, error) {
			v, err := env.Lookup("x")
			if err != nil {
				return nil, err
			}

			order = append(order, v)

			return v, nil
		})
	if err != nil {
		t.Fatal(err)
	}

	prog, err := Parse(t.Context(), `trace(1) + trace(2) * trace(3);`)
	if err != nil {
		t.Fatal(err)
	}

	got, err := prog.Evaluate(t.Context(), env)
	if err != nil {
		t.Fatal(err)
	}

	if got != Integer(7) {
		t.Errorf("got %s, want 7", got)
	}

	want := []Value{Integer(3), Integer(2), Integer(1)}
	if !Equal(NewList(order...), NewList(want...)) {
		t.Errorf("evaluation order %v, want %v", order, want)
	}
}

func TestEvaluate_ReturnStopsSiblings(t *testing.T) {
	env := testEnv(t)

	prog, err := Parse(t.Context(), `
		after = 0;
		function f() {
			if true {
				while true {
					return 1;
				}
			}
			after = 99;
		}
		f();
		after = after + 1;
	`)
	if err != nil {
		t.Fatal(err)
	}

	got, err := prog.Evaluate(t.Context(), env)
	if err != nil {
		t.Fatal(err)
	}

	if got != Integer(1) {
		t.Errorf("got %s, want 1", got)
	}

	if v, _ := env.Get("after"); v != Integer(1) {
		t.Errorf("after = %s, want 1", v)
	}
}

func TestEvaluate_Varargs(t *testing.T) {
	tests := []struct {
		src  string
		want *List
	}{
		{`function f(*x) { return x; } f(5, 6);`, NewList(Integer(5), Integer(6))},
		{`function g(y, *x) { return x; } g(5);`, NewList()},
		{`function g(y, *x) { return x; } g(5, 6, 7);`, NewList(Integer(6), Integer(7))},
		{`function h(*x) { return x; } h();`, NewList()},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := run(t, tt.src)
			if err != nil {
				t.Fatal(err)
			}

			if !Equal(got, tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEvaluate_ListAliasing(t *testing.T) {
	env := testEnv(t)

	prog, err := Parse(t.Context(), `
		a = [1, 2];
		b = a;
		a = a + [3];
		c = [1, 2];
		d = c * 3;
	`)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := prog.Evaluate(t.Context(), env); err != nil {
		t.Fatal(err)
	}

	b, _ := env.Get("b")
	if got := b.String(); got != "[1, 2, 3]" {
		t.Errorf("alias b = %s, want [1, 2, 3]", got)
	}

	c, _ := env.Get("c")
	if got := c.String(); got != "[1, 2]" {
		t.Errorf("c = %s, want [1, 2]", got)
	}

	d, _ := env.Get("d")
	if got := d.String(); got != "[1, 2, 1, 2, 1, 2]" {
		t.Errorf("d = %s, want [1, 2, 1, 2, 1, 2]", got)
	}
}

func TestFunction_CallFromHost(t *testing.T) {
	env := testEnv(t)

	prog, err := Parse(t.Context(), `
		seen = [];
		function handler(msg) {
			seen = seen + [msg];
			return len_of_seen + 1;
		}
		len_of_seen = 41;
	`)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := prog.Evaluate(t.Context(), env); err != nil {
		t.Fatal(err)
	}

	v, _ := env.Get("handler")

	fn, ok := v.(*Function)
	if !ok {
		t.Fatalf("handler is %s", v)
	}

	got, err := fn.Call(t.Context(), ArgumentList{String("ping")})
	if err != nil {
		t.Fatal(err)
	}

	if got != Integer(42) {
		t.Errorf("got %s, want 42", got)
	}

	seen, _ := env.Get("seen")
	if seen.String() != `["ping"]` {
		t.Errorf("seen = %s", seen)
	}
}

func TestEvaluate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	prog, err := Parse(ctx, `while true { }`)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := prog.Evaluate(ctx, NewEnv()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
