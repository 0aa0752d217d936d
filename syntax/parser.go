package syntax

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"udbc/ast"
	"udbc/report"
)

// Parser is a recursive descent parser for IDL source units.  All parsing
// functions assume that they begin with the parser centered on the first
// token of their production and must consume all tokens (including the last)
// of their production, leaving the parser on the next token.  Parsing
// failures are raised as *report.Error panics and recovered at the public
// entry points.
type Parser struct {
	// unit is the diagnostic identity of the source unit being parsed.
	unit string

	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookahead is the single buffered token used by peek.
	lookahead *Token
}

// NewParser creates a new parser for the given unit name and source text.
// lineOffset shifts all spans for units embedded in a larger document.
func NewParser(unit, src string, lineOffset int) *Parser {
	return &Parser{
		unit:  unit,
		lexer: NewLexer(src, lineOffset),
	}
}

// -----------------------------------------------------------------------------

// ParseFile parses a full source unit: declarations, function definitions,
// include directives, and statements.
func ParseFile(unit, src string) (f *ast.File, err error) {
	defer report.Catch(unit, &err)

	p := NewParser(unit, src, 0)
	p.next()

	stmts := p.parseStmtsUntil(TOK_EOF)
	f = &ast.File{
		StmtBase: ast.NewStmtBase(&report.TextSpan{}),
		Unit:     unit,
		Stmts:    stmts,
	}

	return f, nil
}

// ParseExpr parses a bare expression; trailing input is an error.
func ParseExpr(unit, src string) (e ast.Expr, err error) {
	defer report.Catch(unit, &err)

	p := NewParser(unit, src, 0)
	p.next()

	e = p.parseExpr()
	p.assert(TOK_EOF)

	return e, nil
}

// ParseStmts parses a statement list: the root production for function
// bodies and instruction operation blocks.  lineOffset positions diagnostics
// for units embedded in larger documents.
func ParseStmts(unit, src string, lineOffset int) (stmts []ast.Stmt, err error) {
	defer report.Catch(unit, &err)

	p := NewParser(unit, src, lineOffset)
	p.next()

	return p.parseStmtsUntil(TOK_EOF), nil
}

// ParseForLoop parses a single for loop; trailing input is an error.
func ParseForLoop(unit, src string) (loop *ast.ForStmt, err error) {
	defer report.Catch(unit, &err)

	p := NewParser(unit, src, 0)
	p.next()

	p.assert(TOK_FOR)
	loop = p.parseForStmt()
	p.assert(TOK_EOF)

	return loop, nil
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	if p.lookahead != nil {
		p.tok = p.lookahead
		p.lookahead = nil
		return
	}

	tok, err := p.lexer.NextToken()
	if err != nil {
		panic(err)
	}

	p.tok = tok
}

// peek returns the token after the current one without advancing.
func (p *Parser) peek() *Token {
	if p.lookahead == nil {
		tok, err := p.lexer.NextToken()
		if err != nil {
			panic(err)
		}

		p.lookahead = tok
	}

	return p.lookahead
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// gotOneOf returns if the parser's current token kind is one of given kinds.
func (p *Parser) gotOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// assert checks that the parser is on a token of a given kind and rejects the
// token if not.
func (p *Parser) assert(kind int) {
	if !p.got(kind) {
		p.reject()
	}
}

// assertAndNext performs an assert operation and moves the parser forward.
func (p *Parser) assertAndNext(kind int) {
	p.assert(kind)
	p.next()
}

// reject raises an unexpected token error on the current token.
func (p *Parser) reject() {
	if p.got(TOK_EOF) {
		panic(report.Raise(report.KindSyntax, p.tok.Span, "unexpected end of input"))
	}

	panic(report.Raise(report.KindSyntax, p.tok.Span, "unexpected token: `%s`", p.tok.Value))
}

// rejectWithMsg raises a syntax error with a specific message on the current
// token.
func (p *Parser) rejectWithMsg(msg string, a ...interface{}) {
	panic(report.Raise(report.KindSyntax, p.tok.Span, fmt.Sprintf(msg, a...)))
}

// -----------------------------------------------------------------------------

// radixBases maps literal radix letters to their numeric base.
var radixBases = map[byte]int{'b': 2, 'o': 8, 'd': 10, 'h': 16}

// radixDigits restricts the digit alphabet of each radix.
var radixDigits = map[byte]string{
	'b': "01_",
	'o': "01234567_",
	'd': "0123456789_",
	'h': "0123456789abcdefABCDEF_",
}

// decodeIntLit decodes an INTLIT token into an IntLit node, validating the
// digits against the declared radix.
func (p *Parser) decodeIntLit(tok *Token) *ast.IntLit {
	lit := &ast.IntLit{ExprBase: ast.NewExprBase(tok.Span), Radix: 'd'}

	text := tok.Value
	if q := strings.IndexByte(text, '\''); q >= 0 {
		if q == 0 {
			lit.Unsized = true
		} else {
			lit.Sized = true

			width, err := strconv.Atoi(strings.ReplaceAll(text[:q], "_", ""))
			if err != nil {
				p.rejectWithMsg("malformed literal width: `%s`", text[:q])
			}

			lit.Width = width
		}

		text = text[q+1:]
		if strings.HasPrefix(text, "s") {
			lit.Signed = true
			text = text[1:]
		}

		if lit.Sized {
			lit.Radix = text[0]
			text = text[1:]
		}
	}

	lit.Digits = text

	for i := 0; i < len(text); i++ {
		if !strings.ContainsRune(radixDigits[lit.Radix], rune(text[i])) {
			p.rejectWithMsg("digit `%c` is not legal in a radix-%c literal", text[i], lit.Radix)
		}
	}

	val, ok := new(big.Int).SetString(strings.ReplaceAll(text, "_", ""), radixBases[lit.Radix])
	if !ok {
		p.rejectWithMsg("malformed integer literal: `%s`", tok.Value)
	}

	lit.Val = val
	return lit
}
