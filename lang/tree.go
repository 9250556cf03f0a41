package lang

import (
	"io"
	"strconv"
	"strings"
)

// Rule names the grammar production that produced a [Tree] node.
type Rule int

const (
	RuleToken Rule = iota
	RuleProgram
	RuleStatement
	RuleAssignment
	RuleReturn
	RuleComparison
	RuleSum
	RuleProduct
	RuleUnary
	RulePostfix
	RuleCallSuffix
	RuleIndexSuffix
	RuleArgs
	RuleAtom
	RuleList
	RuleMap
	RulePair
	RuleFunction
	RuleParams
	RuleParam
	RuleIf
	RuleWhile
	RuleBlock
)

func (r Rule) String() string {
	switch r {
	case RuleToken:
		return "token"
	case RuleProgram:
		return "program"
	case RuleStatement:
		return "statement"
	case RuleAssignment:
		return "assignment"
	case RuleReturn:
		return "return"
	case RuleComparison:
		return "comparison"
	case RuleSum:
		return "sum"
	case RuleProduct:
		return "product"
	case RuleUnary:
		return "unary"
	case RulePostfix:
		return "postfix"
	case RuleCallSuffix:
		return "call"
	case RuleIndexSuffix:
		return "index"
	case RuleArgs:
		return "args"
	case RuleAtom:
		return "atom"
	case RuleList:
		return "list"
	case RuleMap:
		return "map"
	case RulePair:
		return "pair"
	case RuleFunction:
		return "function"
	case RuleParams:
		return "params"
	case RuleParam:
		return "param"
	case RuleIf:
		return "if"
	case RuleWhile:
		return "while"
	case RuleBlock:
		return "block"
	default:
		return "Rule(" + strconv.Itoa(int(r)) + ")"
	}
}

// Tree is a node of the concrete parse tree. Leaves have Rule [RuleToken]
// and carry the matched token; interior nodes carry their children in
// source order, punctuation included.
type Tree struct {
	Rule     Rule
	Token    *Token
	Children []*Tree
}

func leaf(tok Token) *Tree {
	return &Tree{Rule: RuleToken, Token: &tok}
}

func node(rule Rule, children ...*Tree) *Tree {
	return &Tree{Rule: rule, Children: children}
}

// IsToken reports whether t is a leaf matching text.
func (t *Tree) IsToken(text string) bool {
	return t != nil && t.Rule == RuleToken && t.Token != nil &&
		(t.Token.Kind == TokenSymbol || t.Token.Kind == TokenKeyword) &&
		t.Token.Text == text
}

// Print writes an indented representation of the tree.
func (t *Tree) Print(w io.Writer) error {
	pw := &printer{w: w}
	t.print(pw, 0)

	return pw.err
}

func (t *Tree) print(pw *printer, indent int) {
	prefix := strings.Repeat("  ", indent)

	if t.Rule == RuleToken {
		pw.put("\n", prefix+t.Token.Kind.String(), strconv.Quote(t.Token.Text))

		return
	}

	pw.put("\n", prefix+t.Rule.String())

	for _, c := range t.Children {
		c.print(pw, indent+1)
	}
}

// printer writes lines of ": "-joined items, remembering the first write
// error and discarding everything after it.
type printer struct {
	w   io.Writer
	err error
}

func (pw *printer) put(eol string, item ...string) {
	if pw.err != nil {
		return
	}

	_, pw.err = io.WriteString(pw.w, strings.Join(item, ": ")+eol)
}
