package lang

import (
	"fmt"
	"slices"
)

// DefaultMaxDepth is the default limit on syntactic nesting.
const DefaultMaxDepth = 256

// parser holds the parser state. It consumes a fully tokenized input so
// that assignment targets can be recognized by looking ahead.
type parser struct {
	src      string
	toks     []Token
	pos      int
	depth    int
	maxDepth int
}

// parseTree tokenizes and parses src into a concrete parse tree.
func parseTree(src string, maxDepth int) (*Tree, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	p := &parser{src: src, toks: toks, maxDepth: maxDepth}

	return p.program()
}

// program : { statement } EOF.
func (p *parser) program() (*Tree, error) {
	t := node(RuleProgram)

	for p.peek().Kind != TokenEOF {
		st, err := p.statement()
		if err != nil {
			return nil, err
		}

		t.Children = append(t.Children, st)
	}

	return t, nil
}

// statement : function [";"] | if [";"] | while [";"] | assignment ";" |
// return ";" | comparison ";" | ";".
func (p *parser) statement() (*Tree, error) {
	var (
		body     *Tree
		err      error
		optional bool
	)

	switch {
	case p.at(";"):
		return node(RuleStatement, leaf(p.advance())), nil

	case p.at("function"):
		body, err = p.function()
		optional = true

	case p.at("if"):
		body, err = p.ifStatement()
		optional = true

	case p.at("while"):
		body, err = p.while()
		optional = true

	case p.at("return"):
		body, err = p.returnStatement()

	case p.assignmentAhead():
		body, err = p.assignment()

	default:
		body, err = p.comparison()
	}

	if err != nil {
		return nil, err
	}

	st := node(RuleStatement, body)

	if p.at(";") {
		st.Children = append(st.Children, leaf(p.advance()))
	} else if !optional {
		return nil, p.unexpected(";")
	}

	return st, nil
}

// assignmentAhead reports whether the tokens at the cursor have the shape
// NAME { "[" ... "]" } "=".
func (p *parser) assignmentAhead() bool {
	if p.peek().Kind != TokenName {
		return false
	}

	i := p.pos + 1

	for i < len(p.toks) && p.toks[i].Kind == TokenSymbol && p.toks[i].Text == "[" {
		nest := 0

		for ; i < len(p.toks) && p.toks[i].Kind != TokenEOF; i++ {
			if p.toks[i].Kind != TokenSymbol {
				continue
			}

			if p.toks[i].Text == "[" {
				nest++
			} else if p.toks[i].Text == "]" {
				nest--
			}

			if nest == 0 {
				break
			}
		}

		if nest != 0 {
			return false
		}

		i++
	}

	return i < len(p.toks) &&
		p.toks[i].Kind == TokenSymbol && p.toks[i].Text == "="
}

// assignment : NAME { "[" comparison "]" } "=" comparison.
func (p *parser) assignment() (*Tree, error) {
	name, err := p.expectKind(TokenName)
	if err != nil {
		return nil, err
	}

	t := node(RuleAssignment, name)

	for p.at("[") {
		open := leaf(p.advance())

		idx, err := p.comparison()
		if err != nil {
			return nil, err
		}

		closing, err := p.expect("]")
		if err != nil {
			return nil, err
		}

		t.Children = append(t.Children, open, idx, closing)
	}

	eq, err := p.expect("=")
	if err != nil {
		return nil, err
	}

	value, err := p.comparison()
	if err != nil {
		return nil, err
	}

	t.Children = append(t.Children, eq, value)

	return t, nil
}

// return : "return" comparison.
func (p *parser) returnStatement() (*Tree, error) {
	kw, err := p.expect("return")
	if err != nil {
		return nil, err
	}

	value, err := p.comparison()
	if err != nil {
		return nil, err
	}

	return node(RuleReturn, kw, value), nil
}

var comparisonOps = []string{"==", "!=", "<", ">", "<=", ">="}

// comparison : sum [ op sum ]. Comparisons do not chain.
func (p *parser) comparison() (*Tree, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.sum()
	if err != nil {
		return nil, err
	}

	t := node(RuleComparison, left)

	if p.atAny(comparisonOps...) {
		op := leaf(p.advance())

		right, err := p.sum()
		if err != nil {
			return nil, err
		}

		t.Children = append(t.Children, op, right)
	}

	return t, nil
}

// sum : product { ("+" | "-") product }.
func (p *parser) sum() (*Tree, error) {
	return p.binary(RuleSum, p.product, "+", "-")
}

// product : unary { ("*" | "/") unary }.
func (p *parser) product() (*Tree, error) {
	return p.binary(RuleProduct, p.unary, "*", "/")
}

func (p *parser) binary(
	rule Rule,
	operand func() (*Tree, error),
	ops ...string,
) (*Tree, error) {
	first, err := operand()
	if err != nil {
		return nil, err
	}

	t := node(rule, first)

	for p.atAny(ops...) {
		op := leaf(p.advance())

		next, err := operand()
		if err != nil {
			return nil, err
		}

		t.Children = append(t.Children, op, next)
	}

	return t, nil
}

// unary : "-" unary | postfix.
func (p *parser) unary() (*Tree, error) {
	if !p.at("-") {
		post, err := p.postfix()
		if err != nil {
			return nil, err
		}

		return node(RuleUnary, post), nil
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	op := leaf(p.advance())

	operand, err := p.unary()
	if err != nil {
		return nil, err
	}

	return node(RuleUnary, op, operand), nil
}

// postfix : atom { "(" [ args ] ")" | "[" comparison "]" }.
func (p *parser) postfix() (*Tree, error) {
	a, err := p.atom()
	if err != nil {
		return nil, err
	}

	t := node(RulePostfix, a)

	for {
		var suffix *Tree

		switch {
		case p.at("("):
			suffix, err = p.callSuffix()
		case p.at("["):
			suffix, err = p.indexSuffix()
		default:
			return t, nil
		}

		if err != nil {
			return nil, err
		}

		t.Children = append(t.Children, suffix)
	}
}

func (p *parser) callSuffix() (*Tree, error) {
	open, err := p.expect("(")
	if err != nil {
		return nil, err
	}

	t := node(RuleCallSuffix, open)

	if !p.at(")") {
		args, err := p.sequence(RuleArgs, ")", p.comparison)
		if err != nil {
			return nil, err
		}

		t.Children = append(t.Children, args)
	}

	closing, err := p.expect(")")
	if err != nil {
		return nil, err
	}

	t.Children = append(t.Children, closing)

	return t, nil
}

func (p *parser) indexSuffix() (*Tree, error) {
	open, err := p.expect("[")
	if err != nil {
		return nil, err
	}

	idx, err := p.comparison()
	if err != nil {
		return nil, err
	}

	closing, err := p.expect("]")
	if err != nil {
		return nil, err
	}

	return node(RuleIndexSuffix, open, idx, closing), nil
}

// sequence parses item { "," item } [","] up to, but not including, the
// closing token.
func (p *parser) sequence(
	rule Rule,
	closing string,
	item func() (*Tree, error),
) (*Tree, error) {
	first, err := item()
	if err != nil {
		return nil, err
	}

	t := node(rule, first)

	for p.at(",") {
		t.Children = append(t.Children, leaf(p.advance()))

		if p.at(closing) {
			break
		}

		next, err := item()
		if err != nil {
			return nil, err
		}

		t.Children = append(t.Children, next)
	}

	return t, nil
}

var atomStart = []string{
	"FLOAT", "INTEGER", "STRING", "NAME",
	"true", "false", "[", "{", "(", "function", "if", "-",
}

// atom : FLOAT | INTEGER | "true" | "false" | STRING | NAME | list | map |
// "(" comparison ")" | function | if.
func (p *parser) atom() (*Tree, error) {
	tok := p.peek()

	var (
		inner *Tree
		err   error
	)

	switch {
	case tok.Kind == TokenFloat, tok.Kind == TokenInteger,
		tok.Kind == TokenString, tok.Kind == TokenName,
		p.at("true"), p.at("false"):
		return node(RuleAtom, leaf(p.advance())), nil

	case p.at("["):
		inner, err = p.list()

	case p.at("{"):
		inner, err = p.mapLiteral()

	case p.at("("):
		return p.parenthesized()

	case p.at("function"):
		inner, err = p.function()

	case p.at("if"):
		inner, err = p.ifStatement()

	default:
		return nil, p.unexpected(atomStart...)
	}

	if err != nil {
		return nil, err
	}

	return node(RuleAtom, inner), nil
}

func (p *parser) parenthesized() (*Tree, error) {
	open := leaf(p.advance())

	inner, err := p.comparison()
	if err != nil {
		return nil, err
	}

	closing, err := p.expect(")")
	if err != nil {
		return nil, err
	}

	return node(RuleAtom, open, inner, closing), nil
}

// list : "[" [ comparison { "," comparison } [","] ] "]".
func (p *parser) list() (*Tree, error) {
	return p.bracketed(RuleList, "[", "]", p.comparison)
}

// map : "{" [ pair { "," pair } [","] ] "}".
func (p *parser) mapLiteral() (*Tree, error) {
	return p.bracketed(RuleMap, "{", "}", p.pair)
}

func (p *parser) bracketed(
	rule Rule,
	opening, closing string,
	item func() (*Tree, error),
) (*Tree, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	open, err := p.expect(opening)
	if err != nil {
		return nil, err
	}

	t := node(rule, open)

	if !p.at(closing) {
		items, err := p.sequence(rule, closing, item)
		if err != nil {
			return nil, err
		}

		t.Children = append(t.Children, items.Children...)
	}

	end, err := p.expect(closing)
	if err != nil {
		return nil, err
	}

	t.Children = append(t.Children, end)

	return t, nil
}

// pair : comparison ":" comparison.
func (p *parser) pair() (*Tree, error) {
	key, err := p.comparison()
	if err != nil {
		return nil, err
	}

	colon, err := p.expect(":")
	if err != nil {
		return nil, err
	}

	value, err := p.comparison()
	if err != nil {
		return nil, err
	}

	return node(RulePair, key, colon, value), nil
}

// function : "function" [ NAME ] [ params ] block.
func (p *parser) function() (*Tree, error) {
	kw, err := p.expect("function")
	if err != nil {
		return nil, err
	}

	t := node(RuleFunction, kw)

	if p.peek().Kind == TokenName {
		t.Children = append(t.Children, leaf(p.advance()))
	}

	if p.at("(") {
		params, err := p.params()
		if err != nil {
			return nil, err
		}

		t.Children = append(t.Children, params)
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	t.Children = append(t.Children, body)

	return t, nil
}

// params : "(" [ param { "," param } [","] ] ")".
func (p *parser) params() (*Tree, error) {
	return p.bracketed(RuleParams, "(", ")", p.param)
}

// param : [ "*" ] NAME.
func (p *parser) param() (*Tree, error) {
	t := node(RuleParam)

	if p.at("*") {
		t.Children = append(t.Children, leaf(p.advance()))
	}

	name, err := p.expectKind(TokenName)
	if err != nil {
		return nil, err
	}

	t.Children = append(t.Children, name)

	return t, nil
}

// if : "if" comparison block [ "else" ( block | if ) ].
func (p *parser) ifStatement() (*Tree, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	kw, err := p.expect("if")
	if err != nil {
		return nil, err
	}

	cond, err := p.comparison()
	if err != nil {
		return nil, err
	}

	then, err := p.block()
	if err != nil {
		return nil, err
	}

	t := node(RuleIf, kw, cond, then)

	if !p.at("else") {
		return t, nil
	}

	t.Children = append(t.Children, leaf(p.advance()))

	var alt *Tree

	switch {
	case p.at("if"):
		alt, err = p.ifStatement()
	case p.at("{"):
		alt, err = p.block()
	default:
		return nil, p.unexpected("{", "if")
	}

	if err != nil {
		return nil, err
	}

	t.Children = append(t.Children, alt)

	return t, nil
}

// while : "while" comparison block.
func (p *parser) while() (*Tree, error) {
	kw, err := p.expect("while")
	if err != nil {
		return nil, err
	}

	cond, err := p.comparison()
	if err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return node(RuleWhile, kw, cond, body), nil
}

// block : "{" { statement } "}".
func (p *parser) block() (*Tree, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	open, err := p.expect("{")
	if err != nil {
		return nil, err
	}

	t := node(RuleBlock, open)

	for !p.at("}") {
		if p.peek().Kind == TokenEOF {
			return nil, p.unexpected("}")
		}

		st, err := p.statement()
		if err != nil {
			return nil, err
		}

		t.Children = append(t.Children, st)
	}

	t.Children = append(t.Children, leaf(p.advance()))

	return t, nil
}

// Helper methods

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}

	return tok
}

func (p *parser) at(text string) bool {
	tok := p.peek()

	return (tok.Kind == TokenSymbol || tok.Kind == TokenKeyword) &&
		tok.Text == text
}

func (p *parser) atAny(texts ...string) bool {
	return slices.ContainsFunc(texts, p.at)
}

func (p *parser) expect(text string) (*Tree, error) {
	if !p.at(text) {
		return nil, p.unexpected(text)
	}

	return leaf(p.advance()), nil
}

func (p *parser) expectKind(kind TokenKind) (*Tree, error) {
	if p.peek().Kind != kind {
		return nil, p.unexpected(kind.String())
	}

	return leaf(p.advance()), nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		tok := p.peek()

		return &ParseError{
			Source: p.src,
			Cause:  fmt.Sprintf("nesting exceeds maximum depth %d", p.maxDepth),
			Line:   tok.Line,
			Column: tok.Column,
		}
	}

	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) unexpected(expected ...string) *ParseError {
	tok := p.peek()

	cause := "unexpected " + tok.String()
	if tok.Kind == TokenEOF {
		cause = "unexpected end of input"
	}

	return &ParseError{
		Source:   p.src,
		Cause:    cause,
		Expected: expected,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}
