// Package lang implements santa, a small dynamically-typed imperative
// scripting language: its lexer, parser, syntax tree, runtime values and a
// tree-walking evaluator.
//
// # Grammar
//
// Informal EBNF:
//
//	program     = { statement } EOF ;
//	statement   = function [";"] | if [";"] | while [";"]
//	            | assignment ";" | return ";" | comparison ";" | ";" ;
//	assignment  = NAME { "[" comparison "]" } "=" comparison ;
//	return      = "return" comparison ;
//	comparison  = sum [ ("=="|"!="|"<"|">"|"<="|">=") sum ] ;
//	sum         = product { ("+"|"-") product } ;
//	product     = unary { ("*"|"/") unary } ;
//	unary       = "-" unary | postfix ;
//	postfix     = atom { "(" [ args ] ")" | "[" comparison "]" } ;
//	args        = comparison { "," comparison } [","] ;
//	atom        = FLOAT | INTEGER | "true" | "false" | STRING | NAME
//	            | list | map | "(" comparison ")" | function | if ;
//	list        = "[" [ comparison { "," comparison } [","] ] "]" ;
//	map         = "{" [ pair { "," pair } [","] ] "}" ;
//	pair        = comparison ":" comparison ;
//	function    = "function" [ NAME ] [ "(" [ param { "," param } [","] ] ")" ] block ;
//	param       = [ "*" ] NAME ;
//	if          = "if" comparison block [ "else" ( block | if ) ] ;
//	while       = "while" comparison block ;
//	block       = "{" { statement } "}" ;
//
// Comments run from "//" or "#" to the end of the line, or between "/*"
// and "*/". Comparisons do not chain: a < b < c is a parse error.
//
// # Example
//
//	function make(n) {
//	    return function(x) { return x + n; };
//	}
//
//	add5 = make(5);
//	assert(add5(3) == 8);
//
//	xs = [1, 2];
//	xs[0] = xs[0] * 10;
//	print(xs, len(xs));    # [10, 2] 2
//
// # Evaluation
//
// Binary operators evaluate their right operand before their left one.
// Assignment updates the nearest enclosing binding of a name and only
// creates a new binding in the current scope if none exists. Every if
// branch and every while iteration runs in a fresh child scope.
//
// A return statement unwinds through any enclosing if and while blocks up
// to the body of the function being called. At top level it ends the
// program, and the returned value becomes the program's result.
//
// Lists and maps are references: assigning one copies the reference, and
// list + list appends the right list onto the left one in place.
//
// Evaluation depth is bounded only by the goroutine stack. A runaway
// recursion in a script is not reported as an error; it exhausts the stack
// and the Go runtime terminates the process. [WithMaxDepth] limits the
// nesting accepted by the parser, not the depth of calls.
//
// # Builtins
//
// The package defines no builtin functions itself. Hosts populate an
// [Env] with [Env.Register] before calling [Evaluate]; builtin calls run
// in a fresh root environment that holds only their parameters.
package lang
