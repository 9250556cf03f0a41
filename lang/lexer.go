package lang

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenInteger
	TokenFloat
	TokenString
	TokenName
	TokenKeyword
	TokenSymbol
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenInteger:
		return "INTEGER"
	case TokenFloat:
		return "FLOAT"
	case TokenString:
		return "STRING"
	case TokenName:
		return "NAME"
	case TokenKeyword:
		return "keyword"
	case TokenSymbol:
		return "symbol"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is a lexeme with its source position. Text is the raw source
// text; string tokens keep their quotes and escapes.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
	Line   int
	Column int
}

// String returns the token as it appears in expected-token lists.
func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "EOF"
	case TokenKeyword, TokenSymbol:
		return t.Text
	default:
		return t.Kind.String() + " " + strconv.Quote(t.Text)
	}
}

var keywords = map[string]struct{}{
	"function": {},
	"if":       {},
	"else":     {},
	"while":    {},
	"return":   {},
	"true":     {},
	"false":    {},
}

// Keywords yields the reserved words in sorted order.
func Keywords() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(keywords)))
}

// symbols lists punctuation longest first so that "==" wins over "=".
var symbols = []string{
	"==", "!=", "<=", ">=",
	"(", ")", "[", "]", "{", "}",
	",", ":", ";", "=", "<", ">",
	"+", "-", "*", "/",
}

// lexer holds the tokenizer state.
type lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

// tokenize splits src into tokens terminated by a single EOF token.
func tokenize(src string) ([]Token, error) {
	lx := &lexer{input: []byte(src), line: 1, col: 1}

	var toks []Token

	for {
		if err := lx.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}

		tok, err := lx.next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)

		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

func (lx *lexer) next() (Token, error) {
	tok := Token{Offset: lx.pos, Line: lx.line, Column: lx.col}

	if lx.eof() {
		tok.Kind = TokenEOF

		return tok, nil
	}

	ch := lx.peek()

	switch {
	case ch == '"' || ch == '\'':
		if err := lx.skipString(ch); err != nil {
			return tok, err
		}

		tok.Kind = TokenString

	case isDigit(ch):
		tok.Kind = lx.skipNumber()

	case isNameStart(ch):
		for !lx.eof() && isNameContinue(lx.peek()) {
			lx.advance()
		}

		tok.Kind = TokenName
		if _, ok := keywords[string(lx.input[tok.Offset:lx.pos])]; ok {
			tok.Kind = TokenKeyword
		}

	default:
		for _, sym := range symbols {
			if lx.peekN(len(sym)) == sym {
				for range len(sym) {
					lx.advance()
				}

				tok.Kind = TokenSymbol
				tok.Text = sym

				return tok, nil
			}
		}

		return tok, lx.errorf("unexpected character %q", ch)
	}

	tok.Text = string(lx.input[tok.Offset:lx.pos])

	switch tok.Kind {
	case TokenInteger:
		if _, err := strconv.ParseInt(tok.Text, 10, 64); err != nil {
			return tok, lx.errorAt(tok, "integer literal out of range")
		}
	case TokenFloat:
		if _, err := strconv.ParseFloat(tok.Text, 64); err != nil {
			return tok, lx.errorAt(tok, "float literal out of range")
		}
	}

	return tok, nil
}

// skipNumber consumes digits with an optional fraction and exponent.
func (lx *lexer) skipNumber() TokenKind {
	kind := TokenInteger

	lx.skipDigits()

	if lx.peek() == '.' && lx.pos+1 < len(lx.input) &&
		isDigit(rune(lx.input[lx.pos+1])) {
		kind = TokenFloat

		lx.advance()
		lx.skipDigits()
	}

	if c := lx.peek(); c == 'e' || c == 'E' {
		n := 1
		if s := lx.peekN(2); len(s) == 2 && (s[1] == '+' || s[1] == '-') {
			n = 2
		}

		if lx.pos+n < len(lx.input) && isDigit(rune(lx.input[lx.pos+n])) {
			kind = TokenFloat

			for range n {
				lx.advance()
			}

			lx.skipDigits()
		}
	}

	return kind
}

func (lx *lexer) skipDigits() {
	for !lx.eof() && isDigit(lx.peek()) {
		lx.advance()
	}
}

func (lx *lexer) peek() rune {
	if lx.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(lx.input[lx.pos:])

	return r
}

func (lx *lexer) peekN(n int) string {
	if lx.pos+n > len(lx.input) {
		return string(lx.input[lx.pos:])
	}

	return string(lx.input[lx.pos : lx.pos+n])
}

func (lx *lexer) advance() {
	if lx.eof() {
		return
	}

	r, size := utf8.DecodeRune(lx.input[lx.pos:])

	lx.pos += size
	if r == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
}

func (lx *lexer) eof() bool {
	return lx.pos >= len(lx.input)
}

func (lx *lexer) skipWhitespaceAndComments() error {
	for {
		for !lx.eof() && unicode.IsSpace(lx.peek()) {
			lx.advance()
		}

		switch {
		case lx.eof():
			return nil

		case lx.peekN(2) == "//", lx.peek() == '#':
			for !lx.eof() && lx.peek() != '\n' {
				lx.advance()
			}

		case lx.peekN(2) == "/*":
			line, col := lx.line, lx.col

			lx.advance() // skip '/'
			lx.advance() // skip '*'

			for !lx.eof() && lx.peekN(2) != "*/" {
				lx.advance()
			}

			if lx.eof() {
				lx.line, lx.col = line, col

				return lx.errorf("unterminated block comment")
			}

			lx.advance() // skip '*'
			lx.advance() // skip '/'

		default:
			return nil
		}
	}
}

func (lx *lexer) skipString(quote rune) error {
	line, col := lx.line, lx.col

	lx.advance() // skip opening quote

	for !lx.eof() {
		ch := lx.peek()
		if ch == '\\' {
			lx.advance() // skip backslash

			if !lx.eof() {
				lx.advance() // skip escaped char
			}

			continue
		}

		lx.advance()

		if ch == quote {
			return nil
		}
	}

	lx.line, lx.col = line, col

	return lx.errorf("unterminated string")
}

func (lx *lexer) errorf(format string, args ...any) *ParseError {
	return &ParseError{
		Source: string(lx.input),
		Cause:  fmt.Sprintf(format, args...),
		Line:   lx.line,
		Column: lx.col,
	}
}

func (lx *lexer) errorAt(tok Token, cause string) *ParseError {
	return &ParseError{
		Source: string(lx.input),
		Cause:  cause,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// unquote strips the quotes from a string token and processes the escapes
// \n \t \r \\ \" and \'. Any other escaped character is kept verbatim,
// backslash included.
func unquote(text string) (string, bool) {
	if len(text) < 2 || text[0] != text[len(text)-1] ||
		(text[0] != '"' && text[0] != '\'') {
		return "", false
	}

	body := text[1 : len(text)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, true
	}

	var b strings.Builder

	b.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)

			continue
		}

		i++

		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\', '"', '\'':
			b.WriteByte(body[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}

	return b.String(), true
}

// quote renders s as a double-quoted string literal that [unquote]
// reverses.
func quote(s string) string {
	var b strings.Builder

	b.Grow(len(s) + 2)
	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteByte('"')

	return b.String()
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameContinue(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r)
}
