package lang

import (
	"fmt"
	"strconv"
)

// build lowers a program parse tree into its statements.
func build(t *Tree) (Block, error) {
	if err := expectRule(t, RuleProgram); err != nil {
		return nil, err
	}

	return buildStatements(t.Children)
}

func buildStatements(trees []*Tree) (Block, error) {
	stmts := make(Block, 0, len(trees))

	for _, c := range trees {
		st, err := buildStatement(c)
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, st)
	}

	return stmts, nil
}

// statement : function [";"] | if [";"] | while [";"] | assignment ";" |
// return ";" | comparison ";" | ";".
func buildStatement(t *Tree) (Node, error) {
	if err := expectRule(t, RuleStatement); err != nil {
		return nil, err
	}

	if len(t.Children) == 0 {
		return nil, treeError(t, "empty statement")
	}

	body := t.Children[0]
	if body.IsToken(";") {
		return &Empty{}, nil
	}

	switch body.Rule {
	case RuleFunction:
		return buildFunction(body)
	case RuleIf:
		return buildIf(body)
	case RuleWhile:
		return buildWhile(body)
	case RuleAssignment:
		return buildAssignment(body)
	case RuleReturn:
		return buildReturn(body)
	case RuleComparison:
		return buildComparison(body)
	default:
		return nil, treeError(body, "not a statement")
	}
}

// assignment : NAME { "[" comparison "]" } "=" comparison.
func buildAssignment(t *Tree) (*Assignment, error) {
	n := len(t.Children)
	if n < 3 || (n-3)%3 != 0 {
		return nil, treeError(t, "malformed assignment")
	}

	name, err := tokenText(t.Children[0], TokenName)
	if err != nil {
		return nil, err
	}

	a := &Assignment{Target: name}

	for i := 1; i+2 < n-2; i += 3 {
		if !t.Children[i].IsToken("[") || !t.Children[i+2].IsToken("]") {
			return nil, treeError(t, "malformed index")
		}

		idx, err := buildComparison(t.Children[i+1])
		if err != nil {
			return nil, err
		}

		a.Indexes = append(a.Indexes, idx)
	}

	if !t.Children[n-2].IsToken("=") {
		return nil, treeError(t, "missing \"=\"")
	}

	a.Value, err = buildComparison(t.Children[n-1])
	if err != nil {
		return nil, err
	}

	return a, nil
}

// return : "return" comparison.
func buildReturn(t *Tree) (*Return, error) {
	if len(t.Children) != 2 || !t.Children[0].IsToken("return") {
		return nil, treeError(t, "malformed return")
	}

	value, err := buildComparison(t.Children[1])
	if err != nil {
		return nil, err
	}

	return &Return{Value: value}, nil
}

var binaryOps = map[string]BinaryOp{
	"+":  OpAdd,
	"-":  OpSubtract,
	"*":  OpMultiply,
	"/":  OpDivide,
	"==": OpEquals,
	"!=": OpNotEquals,
	"<":  OpLess,
	">":  OpGreater,
	"<=": OpLessEquals,
	">=": OpGreaterEquals,
}

// comparison : sum [ op sum ].
func buildComparison(t *Tree) (Node, error) {
	if err := expectRule(t, RuleComparison); err != nil {
		return nil, err
	}

	switch len(t.Children) {
	case 1:
		return buildSum(t.Children[0])
	case 3:
		return buildBinary(t, buildSum)
	default:
		return nil, treeError(t, "malformed comparison")
	}
}

// sum : product { ("+" | "-") product }.
func buildSum(t *Tree) (Node, error) {
	if err := expectRule(t, RuleSum); err != nil {
		return nil, err
	}

	return buildBinary(t, buildProduct)
}

// product : unary { ("*" | "/") unary }.
func buildProduct(t *Tree) (Node, error) {
	if err := expectRule(t, RuleProduct); err != nil {
		return nil, err
	}

	return buildBinary(t, buildUnary)
}

// buildBinary folds operand { op operand } into a left-associative chain.
func buildBinary(t *Tree, operand func(*Tree) (Node, error)) (Node, error) {
	if len(t.Children)%2 == 0 {
		return nil, treeError(t, "unbalanced operator chain")
	}

	left, err := operand(t.Children[0])
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(t.Children); i += 2 {
		sym := t.Children[i]
		if sym.Rule != RuleToken || sym.Token == nil {
			return nil, treeError(t, "missing operator")
		}

		op, ok := binaryOps[sym.Token.Text]
		if !ok {
			return nil, treeError(sym, "invalid operator "+strconv.Quote(sym.Token.Text))
		}

		right, err := operand(t.Children[i+1])
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}

	return left, nil
}

// unary : "-" unary | postfix.
func buildUnary(t *Tree) (Node, error) {
	if err := expectRule(t, RuleUnary); err != nil {
		return nil, err
	}

	switch {
	case len(t.Children) == 1:
		return buildPostfix(t.Children[0])
	case len(t.Children) == 2 && t.Children[0].IsToken("-"):
		operand, err := buildUnary(t.Children[1])
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{Op: OpNegate, Operand: operand}, nil
	default:
		return nil, treeError(t, "malformed unary expression")
	}
}

// postfix : atom { "(" [ args ] ")" | "[" comparison "]" }.
func buildPostfix(t *Tree) (Node, error) {
	if err := expectRule(t, RulePostfix); err != nil {
		return nil, err
	}

	if len(t.Children) == 0 {
		return nil, treeError(t, "missing atom")
	}

	cur, err := buildAtom(t.Children[0])
	if err != nil {
		return nil, err
	}

	for _, suffix := range t.Children[1:] {
		switch suffix.Rule {
		case RuleCallSuffix:
			args, err := buildArgs(suffix)
			if err != nil {
				return nil, err
			}

			cur = &Call{Callee: cur, Args: args}

		case RuleIndexSuffix:
			if len(suffix.Children) != 3 {
				return nil, treeError(suffix, "malformed index")
			}

			idx, err := buildComparison(suffix.Children[1])
			if err != nil {
				return nil, err
			}

			cur = &BinaryExpr{Op: OpIndex, Left: cur, Right: idx}

		default:
			return nil, treeError(suffix, "not a postfix suffix")
		}
	}

	return cur, nil
}

func buildArgs(t *Tree) ([]Node, error) {
	switch len(t.Children) {
	case 2:
		return nil, nil
	case 3:
		args := t.Children[1]
		if err := expectRule(args, RuleArgs); err != nil {
			return nil, err
		}

		return buildSeparated(args.Children, buildComparison)
	default:
		return nil, treeError(t, "malformed call")
	}
}

// buildSeparated lowers every non-comma child of a comma separated list.
func buildSeparated[T any](trees []*Tree, item func(*Tree) (T, error)) ([]T, error) {
	out := make([]T, 0, (len(trees)+1)/2)

	for i, c := range trees {
		if i%2 == 1 {
			if !c.IsToken(",") {
				return nil, treeError(c, "missing \",\"")
			}

			continue
		}

		v, err := item(c)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// atom : FLOAT | INTEGER | "true" | "false" | STRING | NAME | list | map |
// "(" comparison ")" | function | if.
func buildAtom(t *Tree) (Node, error) {
	if err := expectRule(t, RuleAtom); err != nil {
		return nil, err
	}

	if len(t.Children) == 3 && t.Children[0].IsToken("(") &&
		t.Children[2].IsToken(")") {
		return buildComparison(t.Children[1])
	}

	if len(t.Children) != 1 {
		return nil, treeError(t, "malformed atom")
	}

	c := t.Children[0]

	switch c.Rule {
	case RuleToken:
		return buildLiteral(c)
	case RuleList:
		return buildList(c)
	case RuleMap:
		return buildMap(c)
	case RuleFunction:
		return buildFunction(c)
	case RuleIf:
		return buildIf(c)
	default:
		return nil, treeError(c, "not an atom")
	}
}

func buildLiteral(t *Tree) (Node, error) {
	if t.Token == nil {
		return nil, treeError(t, "missing token")
	}

	text := t.Token.Text

	switch t.Token.Kind {
	case TokenInteger:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, treeError(t, "couldn't parse to integer")
		}

		return &IntegerLit{Value: v}, nil

	case TokenFloat:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, treeError(t, "couldn't parse to float")
		}

		return &FloatLit{Value: v}, nil

	case TokenString:
		s, ok := unquote(text)
		if !ok {
			return nil, treeError(t, "couldn't parse to string")
		}

		return &StringLit{Value: s}, nil

	case TokenName:
		return &Name{Ident: text}, nil

	case TokenKeyword:
		switch text {
		case "true":
			return &BooleanLit{Value: true}, nil
		case "false":
			return &BooleanLit{Value: false}, nil
		}
	}

	return nil, treeError(t, "couldn't parse literal "+strconv.Quote(text))
}

// bracketedItems returns the children between the opening and closing
// tokens of a list, map or parameter list.
func bracketedItems(t *Tree, opening, closing string) ([]*Tree, error) {
	n := len(t.Children)
	if n < 2 || !t.Children[0].IsToken(opening) || !t.Children[n-1].IsToken(closing) {
		return nil, treeError(t, "unbalanced "+opening+closing)
	}

	items := t.Children[1 : n-1]

	// Drop a trailing comma.
	if k := len(items); k > 0 && k%2 == 0 && items[k-1].IsToken(",") {
		items = items[:k-1]
	}

	return items, nil
}

// list : "[" [ comparison { "," comparison } [","] ] "]".
func buildList(t *Tree) (*ListLit, error) {
	items, err := bracketedItems(t, "[", "]")
	if err != nil {
		return nil, err
	}

	elems, err := buildSeparated(items, buildComparison)
	if err != nil {
		return nil, err
	}

	return &ListLit{Elements: elems}, nil
}

// map : "{" [ pair { "," pair } [","] ] "}".
func buildMap(t *Tree) (*MapLit, error) {
	items, err := bracketedItems(t, "{", "}")
	if err != nil {
		return nil, err
	}

	pairs, err := buildSeparated(items, buildPair)
	if err != nil {
		return nil, err
	}

	return &MapLit{Pairs: pairs}, nil
}

// pair : comparison ":" comparison.
func buildPair(t *Tree) (Pair, error) {
	if err := expectRule(t, RulePair); err != nil {
		return Pair{}, err
	}

	if len(t.Children) != 3 || !t.Children[1].IsToken(":") {
		return Pair{}, treeError(t, "malformed pair")
	}

	key, err := buildComparison(t.Children[0])
	if err != nil {
		return Pair{}, err
	}

	value, err := buildComparison(t.Children[2])
	if err != nil {
		return Pair{}, err
	}

	return Pair{Key: key, Value: value}, nil
}

// function : "function" [ NAME ] [ params ] block.
func buildFunction(t *Tree) (*FunctionLit, error) {
	n := len(t.Children)
	if n < 2 || !t.Children[0].IsToken("function") {
		return nil, treeError(t, "malformed function")
	}

	fn := &FunctionLit{}
	rest := t.Children[1 : n-1]

	if len(rest) > 0 && rest[0].Rule == RuleToken {
		name, err := tokenText(rest[0], TokenName)
		if err != nil {
			return nil, err
		}

		fn.Ident = name
		rest = rest[1:]
	}

	if len(rest) > 0 {
		params, err := buildParams(rest[0])
		if err != nil {
			return nil, err
		}

		if len(params) > 0 {
			fn.Params = params
		}

		rest = rest[1:]
	}

	if len(rest) > 0 {
		return nil, treeError(t, "unexpected function component")
	}

	body, err := buildBlock(t.Children[n-1])
	if err != nil {
		return nil, err
	}

	fn.Body = body

	return fn, nil
}

// params : "(" [ param { "," param } [","] ] ")".
func buildParams(t *Tree) (ParameterList, error) {
	if err := expectRule(t, RuleParams); err != nil {
		return nil, err
	}

	items, err := bracketedItems(t, "(", ")")
	if err != nil {
		return nil, err
	}

	return buildSeparated(items, buildParam)
}

// param : [ "*" ] NAME.
func buildParam(t *Tree) (Parameter, error) {
	if err := expectRule(t, RuleParam); err != nil {
		return Parameter{}, err
	}

	var p Parameter

	c := t.Children
	if len(c) == 2 && c[0].IsToken("*") {
		p.Vararg = true
		c = c[1:]
	}

	if len(c) != 1 {
		return Parameter{}, treeError(t, "parameter is not a plain name")
	}

	name, err := tokenText(c[0], TokenName)
	if err != nil {
		return Parameter{}, err
	}

	p.Name = name

	return p, nil
}

// if : "if" comparison block [ "else" ( block | if ) ].
func buildIf(t *Tree) (*IfStmt, error) {
	n := len(t.Children)
	if (n != 3 && n != 5) || !t.Children[0].IsToken("if") {
		return nil, treeError(t, "malformed if")
	}

	cond, err := buildComparison(t.Children[1])
	if err != nil {
		return nil, err
	}

	then, err := buildBlock(t.Children[2])
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Cond: cond, Then: then}

	if n == 3 {
		return stmt, nil
	}

	if !t.Children[3].IsToken("else") {
		return nil, treeError(t, "missing \"else\"")
	}

	switch alt := t.Children[4]; alt.Rule {
	case RuleBlock:
		stmt.Else, err = buildBlock(alt)
	case RuleIf:
		var nested *IfStmt

		nested, err = buildIf(alt)
		stmt.Else = Block{nested}
	default:
		return nil, treeError(alt, "else branch is neither block nor if")
	}

	if err != nil {
		return nil, err
	}

	return stmt, nil
}

// while : "while" comparison block.
func buildWhile(t *Tree) (*WhileLoop, error) {
	if len(t.Children) != 3 || !t.Children[0].IsToken("while") {
		return nil, treeError(t, "malformed while")
	}

	cond, err := buildComparison(t.Children[1])
	if err != nil {
		return nil, err
	}

	body, err := buildBlock(t.Children[2])
	if err != nil {
		return nil, err
	}

	return &WhileLoop{Cond: cond, Body: body}, nil
}

// block : "{" { statement } "}". The result is never nil, so an empty
// else branch stays distinguishable from a missing one.
func buildBlock(t *Tree) (Block, error) {
	if err := expectRule(t, RuleBlock); err != nil {
		return nil, err
	}

	n := len(t.Children)
	if n < 2 || !t.Children[0].IsToken("{") || !t.Children[n-1].IsToken("}") {
		return nil, treeError(t, "unbalanced {}")
	}

	return buildStatements(t.Children[1 : n-1])
}

func tokenText(t *Tree, kind TokenKind) (string, error) {
	if t == nil || t.Rule != RuleToken || t.Token == nil || t.Token.Kind != kind {
		return "", treeError(t, "expected "+kind.String())
	}

	return t.Token.Text, nil
}

func expectRule(t *Tree, rule Rule) error {
	if t == nil {
		return ErrParseTree.Wrap(fmt.Errorf("missing %s", rule))
	}

	if t.Rule != rule {
		return treeError(t, "expected "+rule.String())
	}

	return nil
}

func treeError(t *Tree, cause string) error {
	if t == nil {
		return ErrParseTree.Wrap(fmt.Errorf("%s", cause))
	}

	return ErrParseTree.Wrap(fmt.Errorf("%s: %s", t.Rule, cause))
}
