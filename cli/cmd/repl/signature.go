package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/santa/lang"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall is a call expression enclosing the cursor.
type functionCall struct {
	name     string // callee identifier
	argIndex int    // 0-based index of the argument under the cursor
	inCall   bool   // cursor is inside the argument list
}

// detectFunctionCall finds the innermost unclosed call whose argument list
// contains the cursor. Parentheses and commas inside string literals and
// nested brackets are ignored.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	// Stack of open bracket offsets, with the comma count of each.
	type frame struct {
		open  int
		char  byte
		comma int
	}

	var (
		stack []frame
		quote bool
	)

	for i := 0; i < cursor; i++ {
		c := input[i]

		if quote {
			switch c {
			case '\\':
				i++
			case '"':
				quote = false
			}

			continue
		}

		switch c {
		case '"':
			quote = true
		case '(', '[', '{':
			stack = append(stack, frame{open: i, char: c})
		case ')', ']', '}':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case ',':
			if len(stack) > 0 {
				stack[len(stack)-1].comma++
			}
		}
	}

	if quote || len(stack) == 0 || stack[len(stack)-1].char != '(' {
		return functionCall{}
	}

	top := stack[len(stack)-1]

	nameEnd := top.open
	for nameEnd > 0 && (input[nameEnd-1] == ' ' || input[nameEnd-1] == '\t') {
		nameEnd--
	}

	nameStart := nameEnd
	for nameStart > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:nameStart])
		if !isIdent(r) {
			break
		}

		nameStart -= size
	}

	name := input[nameStart:nameEnd]
	if name == "" || isKeyword(name) {
		return functionCall{}
	}

	return functionCall{name: name, argIndex: top.comma, inCall: true}
}

func isKeyword(name string) bool {
	for kw := range lang.Keywords() {
		if kw == name {
			return true
		}
	}

	return false
}

// lookupFunction returns the function bound to name in env, if any.
func lookupFunction(env *lang.Env, name string) (*lang.Function, bool) {
	if env == nil {
		return nil, false
	}

	v, ok := env.Get(name)
	if !ok {
		return nil, false
	}

	fn, ok := v.(*lang.Function)

	return fn, ok
}

// signature returns the display signature of the function bound to name
// and the display form of each parameter. The signature is empty if name is
// not bound to a function.
func signature(env *lang.Env, name string) (sig string, params []string) {
	fn, ok := lookupFunction(env, name)
	if !ok {
		return "", nil
	}

	pl := fn.Params()

	params = make([]string, len(pl))
	for i, p := range pl {
		params[i] = p.String()
	}

	return name + pl.String(), params
}

// renderSignatureHint renders a signature with the parameter at
// currentArgIdx highlighted. A vararg parameter stays highlighted for every
// argument index at or beyond its own.
func renderSignatureHint(
	signature string,
	params []string,
	currentArgIdx int,
) string {
	if signature == "" {
		return ""
	}

	openParen := strings.IndexByte(signature, '(')
	if openParen < 0 {
		return signatureStyle.Render(signature)
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(signature[:openParen]))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		vararg := strings.HasPrefix(param, "*")
		if currentArgIdx == i || (vararg && currentArgIdx > i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
