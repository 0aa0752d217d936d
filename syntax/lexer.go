package syntax

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"udbc/report"
)

// Lexer is responsible for tokenizing an IDL source unit.
type Lexer struct {
	src     *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer over the given source text.  lineOffset is the
// zero-based line within the enclosing document at which the unit begins, so
// that diagnostics for units embedded in larger records (eg. an instruction's
// operation field in a YAML file) report document-relative lines.
func NewLexer(src string, lineOffset int) *Lexer {
	return &Lexer{
		src:     bufio.NewReader(strings.NewReader(src)),
		tokBuff: &strings.Builder{},
		line:    lineOffset,
		col:     0,
	}
}

// NextToken retrieves the next token from the source.  If the source has
// ended, this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '#':
			if err := l.skipComment(); err != nil {
				return nil, err
			}
		case '"':
			return l.lexStringLit()
		case '\'':
			return l.lexUnsizedIntLit()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF), nil
}

// ReadRawBlock consumes a raw brace-balanced block, returning its contents
// with the outer braces trimmed.  The lexer must be positioned just before
// the opening `{`.  Used for `description { ... }` sections, whose contents
// are free text rather than IDL.
func (l *Lexer) ReadRawBlock() (string, error) {
	// Skip leading whitespace up to the opening brace.
	for {
		c, err := l.peek()
		if err != nil {
			return "", err
		}

		if c == '{' {
			break
		} else if c == -1 || !unicode.IsSpace(c) {
			l.mark()
			return "", report.Raise(report.KindSyntax, l.getSpan(), "expected `{`")
		}

		l.skip()
	}

	l.mark()
	l.skip() // opening brace

	depth := 1
	body := strings.Builder{}
	for {
		c, err := l.skip()
		if err != nil {
			return "", err
		}

		switch c {
		case -1:
			return "", report.Raise(report.KindSyntax, l.getSpan(), "unclosed block")
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return body.String(), nil
			}
		}

		body.WriteRune(c)
	}
}

// -----------------------------------------------------------------------------

// lexPunctOrOper lexes a punctuation or operator symbol, consuming the
// longest matching pattern.
func (l *Lexer) lexPunctOrOper() (*Token, error) {
	l.mark()
	l.eat()

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if !ok {
		return nil, report.Raise(report.KindSyntax, l.getSpan(), "unknown rune: `%s`", l.tokBuff.String())
	}

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if c == -1 {
			break
		}

		if _kind, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			l.eat()
			kind = _kind
		} else {
			break
		}
	}

	return l.makeToken(kind), nil
}

// lexIdentOrKeyword lexes an identifier or a keyword.  Identifiers may begin
// with `$` (runtime builtins) and may end with a single `?` (query-style
// names such as `implemented?`).
func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if !isIdentChar(c) {
			if c == '?' {
				// A trailing `?` belongs to the identifier only when it is
				// not the start of a ternary (ie. when directly adjacent).
				l.eat()
			}
			break
		}

		l.eat()
	}

	var kind int
	if _kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		kind = _kind
	} else {
		kind = TOK_IDENT
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// lexNumericLit lexes an integer literal: bare decimal digits, or a
// width-prefixed literal of the form `<width>'<s?><b|o|d|h><digits>`.
// Underscores are legal digit separators everywhere.
func (l *Lexer) lexNumericLit() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if isDecimalDigit(c) || c == '_' {
			l.eat()
		} else if c == '\'' {
			l.eat()
			return l.lexSizedIntLitTail()
		} else {
			break
		}
	}

	return l.makeToken(TOK_INTLIT), nil
}

// lexSizedIntLitTail lexes the remainder of a sized literal after the `'`:
// an optional `s`, a radix letter, and the digits.
func (l *Lexer) lexSizedIntLitTail() (*Token, error) {
	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	if c == 's' {
		l.eat()

		if c, err = l.peek(); err != nil {
			return nil, err
		}
	}

	switch c {
	case 'b', 'o', 'd', 'h':
		l.eat()
	default:
		return nil, report.Raise(report.KindSyntax, l.getSpan(), "expected radix (b, o, d, or h) in literal")
	}

	return l.lexLitDigits()
}

// lexUnsizedIntLit lexes a `'<digits>` or `'s<digits>` literal whose width is
// the architecture's register width.
func (l *Lexer) lexUnsizedIntLit() (*Token, error) {
	l.mark()
	l.eat()

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	if c == 's' {
		l.eat()
	}

	return l.lexLitDigits()
}

// lexLitDigits consumes the digit tail of a literal.  Hex digits are accepted
// for every radix; the parser validates digits against the declared radix
// when it decodes the token.
func (l *Lexer) lexLitDigits() (*Token, error) {
	sawDigit := false
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if isHexDigit(c) {
			sawDigit = true
			l.eat()
		} else if c == '_' {
			l.eat()
		} else {
			break
		}
	}

	if !sawDigit {
		return nil, report.Raise(report.KindSyntax, l.getSpan(), "incomplete integer literal")
	}

	return l.makeToken(TOK_INTLIT), nil
}

// -----------------------------------------------------------------------------

// lexStringLit lexes a string literal.
func (l *Lexer) lexStringLit() (*Token, error) {
	l.mark()
	l.skip()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1:
			return nil, report.Raise(report.KindSyntax, l.getSpan(), "unclosed string literal")
		case '"':
			l.skip()
			return l.makeToken(TOK_STRINGLIT), nil
		case '\n':
			return nil, report.Raise(report.KindSyntax, l.getSpan(), "string cannot contain a newline")
		default:
			l.eat()
		}
	}
}

// skipComment skips a `#` comment through the end of the line.
func (l *Lexer) skipComment() error {
	for {
		c, err := l.skip()
		if err != nil {
			return err
		}

		if c == -1 || c == '\n' {
			return nil
		}
	}
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start line and column to its current position.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Span:  l.getSpan(),
	}
}

// getSpan calculates a text span based on the lexer's current state.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token
// buffer.  If the lexer encounters an EOF, -1 is returned as the rune value.
func (l *Lexer) eat() (rune, error) {
	c, _, err := l.src.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)
	l.tokBuff.WriteRune(c)

	return c, nil
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.
func (l *Lexer) skip() (rune, error) {
	c, _, err := l.src.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)

	return c, nil
}

// peek returns the next rune without moving the lexer forward.
func (l *Lexer) peek() (rune, error) {
	c, _, err := l.src.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	if err = l.src.UnreadRune(); err != nil {
		return 0, err
	}

	return c, nil
}

// updatePos updates the lexer's position based on the input character.
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += 4
	default:
		l.col++
	}
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isHexDigit returns whether c is a hexadecimal digit.
func isHexDigit(c rune) bool {
	return isDecimalDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// isFirstIdentChar returns whether c could be the first rune of an
// identifier.
func isFirstIdentChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_' || c == '$'
}

// isIdentChar returns whether c could be an interior rune of an identifier.
func isIdentChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}
