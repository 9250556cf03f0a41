package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the program in canonical santa syntax. A positive indent
// lays blocks out over multiple lines indented by that many spaces per
// level; zero writes every statement on a single line.
func (p *Program) Format(_ context.Context, w io.Writer, indent int) error {
	f := &formatter{indent: indent}
	f.statements(p.Statements, 0)

	if f.b.Len() > 0 {
		f.b.WriteByte('\n')
	}

	_, err := io.WriteString(w, f.b.String())

	return err
}

// String returns the program in canonical santa syntax with two-space
// indentation.
func (p *Program) String() string {
	f := &formatter{indent: 2}
	f.statements(p.Statements, 0)

	return f.b.String()
}

// FormatJSON writes the program's syntax tree as JSON to the writer.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(p)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program's syntax tree as YAML to the writer.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, p.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// Print writes the program's syntax tree in an indented form.
func (p *Program) Print(w io.Writer) error {
	pw := &printer{w: w}

	for _, st := range p.Statements {
		printNode(pw, st, 0)
	}

	return pw.err
}

func printBlock(pw *printer, label string, b Block, indent int) {
	prefix := strings.Repeat("  ", indent)

	if len(b) == 0 {
		pw.put("\n", prefix+label, "(empty)")

		return
	}

	pw.put(":\n", prefix+label)

	for _, st := range b {
		printNode(pw, st, indent+1)
	}
}

//nolint:cyclop,funlen
func printNode(pw *printer, n Node, indent int) {
	prefix := strings.Repeat("  ", indent)

	switch n := n.(type) {
	case *IntegerLit:
		pw.put("\n", prefix+n.Type().String(), strconv.FormatInt(n.Value, 10))

	case *FloatLit:
		pw.put("\n", prefix+n.Type().String(), Float(n.Value).String())

	case *BooleanLit:
		pw.put("\n", prefix+n.Type().String(), strconv.FormatBool(n.Value))

	case *StringLit:
		pw.put("\n", prefix+n.Type().String(), strconv.Quote(n.Value))

	case *Name:
		pw.put("\n", prefix+n.Type().String(), n.Ident)

	case *Empty:
		pw.put("\n", prefix+n.Type().String())

	case *ListLit:
		pw.put("\n", prefix+n.Type().String(), strconv.Itoa(len(n.Elements)))

		for _, e := range n.Elements {
			printNode(pw, e, indent+1)
		}

	case *MapLit:
		pw.put("\n", prefix+n.Type().String(), strconv.Itoa(len(n.Pairs)))

		for _, p := range n.Pairs {
			pw.put(":\n", prefix+"  Key")
			printNode(pw, p.Key, indent+2)
			pw.put(":\n", prefix+"  Value")
			printNode(pw, p.Value, indent+2)
		}

	case *FunctionLit:
		name := n.Ident
		if name == "" {
			name = "(anonymous)"
		}

		pw.put("\n", prefix+n.Type().String(), name+n.Params.String())
		printBlock(pw, "  Body", n.Body, indent)

	case *IfStmt:
		pw.put(":\n", prefix+n.Type().String())
		pw.put(":\n", prefix+"  Condition")
		printNode(pw, n.Cond, indent+2)
		printBlock(pw, "  Then", n.Then, indent)

		if n.Else != nil {
			printBlock(pw, "  Else", n.Else, indent)
		}

	case *WhileLoop:
		pw.put(":\n", prefix+n.Type().String())
		pw.put(":\n", prefix+"  Condition")
		printNode(pw, n.Cond, indent+2)
		printBlock(pw, "  Body", n.Body, indent)

	case *BinaryExpr:
		pw.put("\n", prefix+n.Type().String(), n.Op.String())
		printNode(pw, n.Left, indent+1)
		printNode(pw, n.Right, indent+1)

	case *UnaryExpr:
		pw.put("\n", prefix+n.Type().String(), n.Op.String())
		printNode(pw, n.Operand, indent+1)

	case *Assignment:
		pw.put("\n", prefix+n.Type().String(), n.Target)

		for _, idx := range n.Indexes {
			pw.put(":\n", prefix+"  Index")
			printNode(pw, idx, indent+2)
		}

		pw.put(":\n", prefix+"  Value")
		printNode(pw, n.Value, indent+2)

	case *Call:
		pw.put("\n", prefix+n.Type().String(), strconv.Itoa(len(n.Args)))
		pw.put(":\n", prefix+"  Callee")
		printNode(pw, n.Callee, indent+2)

		for _, a := range n.Args {
			pw.put(":\n", prefix+"  Argument")
			printNode(pw, a, indent+2)
		}

	case *Return:
		pw.put(":\n", prefix+n.Type().String())
		printNode(pw, n.Value, indent+1)

	default:
		pw.put("\n", prefix+"(unknown)")
	}
}

// Binding strength of each expression form, weakest first.
const (
	precComparison = iota + 1
	precSum
	precProduct
	precUnary
	precPostfix
	precAtom
)

func precedence(n Node) int {
	switch n := n.(type) {
	case *BinaryExpr:
		switch n.Op {
		case OpAdd, OpSubtract:
			return precSum
		case OpMultiply, OpDivide:
			return precProduct
		case OpIndex:
			return precPostfix
		default:
			return precComparison
		}
	case *UnaryExpr:
		return precUnary
	case *Call:
		return precPostfix
	case *IntegerLit:
		if n.Value < 0 {
			return precUnary
		}
	case *FloatLit:
		switch {
		case math.IsInf(n.Value, 0) || math.IsNaN(n.Value):
			return precProduct
		case n.Value < 0:
			return precUnary
		}
	}

	return precAtom
}

// formatter renders nodes as santa source.
type formatter struct {
	b      strings.Builder
	indent int
}

func (f *formatter) newline(depth int) {
	if f.indent > 0 {
		f.b.WriteByte('\n')
		f.b.WriteString(strings.Repeat(" ", depth*f.indent))
	} else {
		f.b.WriteByte(' ')
	}
}

func (f *formatter) statements(b Block, depth int) {
	for i, st := range b {
		if i > 0 {
			f.newline(depth)
		}

		f.statement(st, depth)
	}
}

func (f *formatter) statement(n Node, depth int) {
	switch n := n.(type) {
	case *Empty:
		f.b.WriteByte(';')

	case *FunctionLit, *IfStmt, *WhileLoop:
		f.expr(n, depth, 0)

	case *Return:
		f.b.WriteString("return ")
		f.expr(n.Value, depth, precComparison)
		f.b.WriteByte(';')

	case *Assignment:
		f.b.WriteString(n.Target)

		for _, idx := range n.Indexes {
			f.b.WriteByte('[')
			f.expr(idx, depth, precComparison)
			f.b.WriteByte(']')
		}

		f.b.WriteString(" = ")
		f.expr(n.Value, depth, precComparison)
		f.b.WriteByte(';')

	default:
		// A statement opening with "function" or "if" would parse as a
		// definition or conditional rather than an expression.
		if leadsWithCompound(n) {
			f.b.WriteByte('(')
			f.expr(n, depth, precComparison)
			f.b.WriteByte(')')
		} else {
			f.expr(n, depth, precComparison)
		}

		f.b.WriteByte(';')
	}
}

func leadsWithCompound(n Node) bool {
	for {
		switch x := n.(type) {
		case *FunctionLit, *IfStmt:
			return true
		case *BinaryExpr:
			n = x.Left
		case *Call:
			n = x.Callee
		default:
			return false
		}
	}
}

func (f *formatter) block(b Block, depth int) {
	if len(b) == 0 {
		f.b.WriteString("{}")

		return
	}

	f.b.WriteByte('{')
	f.newline(depth + 1)
	f.statements(b, depth+1)
	f.newline(depth)
	f.b.WriteByte('}')
}

// expr writes n, parenthesized if it binds more loosely than minPrec.
//
//nolint:cyclop,funlen
func (f *formatter) expr(n Node, depth, minPrec int) {
	if precedence(n) < minPrec {
		f.b.WriteByte('(')
		f.expr(n, depth, 0)
		f.b.WriteByte(')')

		return
	}

	switch n := n.(type) {
	case *IntegerLit:
		f.b.WriteString(strconv.FormatInt(n.Value, 10))

	case *FloatLit:
		switch {
		case math.IsNaN(n.Value):
			f.b.WriteString("0.0 / 0.0")
		case math.IsInf(n.Value, 1):
			f.b.WriteString("1.0 / 0.0")
		case math.IsInf(n.Value, -1):
			f.b.WriteString("-1.0 / 0.0")
		default:
			f.b.WriteString(Float(n.Value).String())
		}

	case *BooleanLit:
		f.b.WriteString(strconv.FormatBool(n.Value))

	case *StringLit:
		f.b.WriteString(quote(n.Value))

	case *Name:
		f.b.WriteString(n.Ident)

	case *ListLit:
		f.b.WriteByte('[')

		for i, e := range n.Elements {
			if i > 0 {
				f.b.WriteString(", ")
			}

			f.expr(e, depth, precComparison)
		}

		f.b.WriteByte(']')

	case *MapLit:
		f.b.WriteByte('{')

		for i, p := range n.Pairs {
			if i > 0 {
				f.b.WriteString(", ")
			}

			f.expr(p.Key, depth, precComparison)
			f.b.WriteString(": ")
			f.expr(p.Value, depth, precComparison)
		}

		f.b.WriteByte('}')

	case *FunctionLit:
		f.b.WriteString("function")

		if n.Ident != "" {
			f.b.WriteByte(' ')
			f.b.WriteString(n.Ident)
		}

		f.b.WriteString(n.Params.String())
		f.b.WriteByte(' ')
		f.block(n.Body, depth)

	case *IfStmt:
		f.b.WriteString("if ")
		f.expr(n.Cond, depth, precComparison)
		f.b.WriteByte(' ')
		f.block(n.Then, depth)

		if n.Else == nil {
			return
		}

		f.b.WriteString(" else ")

		if len(n.Else) == 1 {
			if nested, ok := n.Else[0].(*IfStmt); ok {
				f.expr(nested, depth, 0)

				return
			}
		}

		f.block(n.Else, depth)

	case *WhileLoop:
		f.b.WriteString("while ")
		f.expr(n.Cond, depth, precComparison)
		f.b.WriteByte(' ')
		f.block(n.Body, depth)

	case *BinaryExpr:
		switch prec := precedence(n); n.Op {
		case OpIndex:
			f.expr(n.Left, depth, precPostfix)
			f.b.WriteByte('[')
			f.expr(n.Right, depth, precComparison)
			f.b.WriteByte(']')
		default:
			// Comparisons do not chain, so both sides must bind tighter.
			left := prec
			if prec == precComparison {
				left = prec + 1
			}

			f.expr(n.Left, depth, left)
			f.b.WriteString(" " + n.Op.String() + " ")
			f.expr(n.Right, depth, prec+1)
		}

	case *UnaryExpr:
		f.b.WriteString(n.Op.String())
		f.expr(n.Operand, depth, precUnary)

	case *Call:
		f.expr(n.Callee, depth, precPostfix)
		f.b.WriteByte('(')

		for i, a := range n.Args {
			if i > 0 {
				f.b.WriteString(", ")
			}

			f.expr(a, depth, precComparison)
		}

		f.b.WriteByte(')')

	default:
		f.b.WriteString("/* unknown */")
	}
}
