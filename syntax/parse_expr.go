package syntax

import (
	"udbc/ast"
	"udbc/report"
)

// binOpPrecTable orders binary operators by precedence: earlier rows bind
// tighter.  Rows of the same precedence are parsed left-associatively.
var binOpPrecTable = [][]int{
	{TOK_STAR, TOK_DIV, TOK_MOD},
	{TOK_PLUS, TOK_MINUS},
	{TOK_LSHIFT, TOK_RSHIFT},
	{TOK_LT, TOK_LTEQ, TOK_GT, TOK_GTEQ},
	{TOK_EQ, TOK_NEQ},
	{TOK_AMP},
	{TOK_CARET},
	{TOK_PIPE},
	{TOK_AND},
	{TOK_OR},
}

// shiftPrecLevel is the row index of the shift operators; width arguments to
// `Bits<...>` parse at this level so the closing `>` is never consumed as a
// comparison.
const shiftPrecLevel = 2

// parseExpr parses a full expression including the ternary conditional, which
// has the lowest precedence and is right-associative.
func (p *Parser) parseExpr() ast.Expr {
	cond := p.parseBinaryExpr()

	if !p.got(TOK_QUESTION) {
		return cond
	}

	p.next()
	then := p.parseExpr()
	p.assertAndNext(TOK_COLON)
	els := p.parseExpr()

	return &ast.TernaryExpr{
		ExprBase: ast.NewExprBase(report.NewSpanOver(cond.Span(), els.Span())),
		Cond:     cond,
		Then:     then,
		Else:     els,
	}
}

// parseBinaryExpr parses a binary operator expression at the lowest binary
// precedence (everything except the ternary).
func (p *Parser) parseBinaryExpr() ast.Expr {
	return p.parseBinOpAt(len(binOpPrecTable) - 1)
}

// parseBinOpAt parses a left-associative chain of binary operators at the
// given precedence row, recursing to tighter rows for the operands.
func (p *Parser) parseBinOpAt(prec int) ast.Expr {
	if prec < 0 {
		return p.parseUnaryExpr()
	}

	lhs := p.parseBinOpAt(prec - 1)

	for p.gotOneOf(binOpPrecTable[prec]...) {
		op := p.tok.Value
		p.next()

		rhs := p.parseBinOpAt(prec - 1)

		lhs = &ast.BinaryExpr{
			ExprBase: ast.NewExprBase(report.NewSpanOver(lhs.Span(), rhs.Span())),
			Op:       op,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	return lhs
}

// parseUnaryExpr parses a (possibly absent) prefix operator application.
func (p *Parser) parseUnaryExpr() ast.Expr {
	if p.gotOneOf(TOK_MINUS, TOK_NOT, TOK_COMPL) {
		opTok := p.tok
		p.next()

		operand := p.parseUnaryExpr()

		return &ast.UnaryExpr{
			ExprBase: ast.NewExprBase(report.NewSpanOver(opTok.Span, operand.Span())),
			Op:       opTok.Value,
			Operand:  operand,
		}
	}

	return p.parseAtomExpr()
}

// parseAtomExpr parses an atom followed by any number of trailers: indexing,
// bit slicing, and field access.
func (p *Parser) parseAtomExpr() ast.Expr {
	expr := p.parseAtom()

	for {
		switch p.tok.Kind {
		case TOK_LBRACKET:
			p.next()

			// No ternary inside brackets: the `:` separates the bounds.
			hi := p.parseBinaryExpr()

			var lo ast.Expr
			if p.got(TOK_COLON) {
				p.next()
				lo = p.parseBinaryExpr()
			}

			endSpan := p.tok.Span
			p.assertAndNext(TOK_RBRACKET)

			expr = &ast.IndexExpr{
				ExprBase: ast.NewExprBase(report.NewSpanOver(expr.Span(), endSpan)),
				Root:     expr,
				Hi:       hi,
				Lo:       lo,
			}
		case TOK_DOT:
			p.next()

			p.assert(TOK_IDENT)
			fieldTok := p.tok
			p.next()

			expr = &ast.FieldExpr{
				ExprBase: ast.NewExprBase(report.NewSpanOver(expr.Span(), fieldTok.Span)),
				Root:     expr,
				Field:    fieldTok.Value,
			}
		default:
			return expr
		}
	}
}

// parseAtom parses a leaf expression: a literal, a name, a call, or a
// parenthesized subexpression.
func (p *Parser) parseAtom() ast.Expr {
	switch p.tok.Kind {
	case TOK_INTLIT:
		lit := p.decodeIntLit(p.tok)
		p.next()
		return lit
	case TOK_TRUE, TOK_FALSE:
		lit := &ast.BoolLit{ExprBase: ast.NewExprBase(p.tok.Span), Val: p.got(TOK_TRUE)}
		p.next()
		return lit
	case TOK_STRINGLIT:
		lit := &ast.StringLit{ExprBase: ast.NewExprBase(p.tok.Span), Val: p.tok.Value}
		p.next()
		return lit
	case TOK_IDENT:
		nameTok := p.tok

		if p.peek().Kind == TOK_LPAREN {
			p.next()
			return p.parseCallTail(nameTok)
		}

		p.next()
		return &ast.Ident{ExprBase: ast.NewExprBase(nameTok.Span), Name: nameTok.Value}
	case TOK_LPAREN:
		p.next()

		expr := p.parseExpr()
		p.assertAndNext(TOK_RPAREN)

		return expr
	}

	p.reject()
	return nil
}

// parseCallTail parses the argument list of a call whose name token has
// already been consumed.  The parser is positioned on the `(`.
func (p *Parser) parseCallTail(nameTok *Token) ast.Expr {
	p.assertAndNext(TOK_LPAREN)

	var args []ast.Expr
	if !p.got(TOK_RPAREN) {
		args = append(args, p.parseExpr())

		for p.got(TOK_COMMA) {
			p.next()
			args = append(args, p.parseExpr())
		}
	}

	endSpan := p.tok.Span
	p.assertAndNext(TOK_RPAREN)

	return &ast.CallExpr{
		ExprBase: ast.NewExprBase(report.NewSpanOver(nameTok.Span, endSpan)),
		Name:     nameTok.Value,
		Args:     args,
	}
}
