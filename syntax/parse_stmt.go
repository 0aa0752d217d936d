package syntax

import (
	"udbc/ast"
	"udbc/report"
)

// parseStmtsUntil parses statements until the given terminator token kind is
// reached.  The terminator itself is not consumed.
func (p *Parser) parseStmtsUntil(end int) []ast.Stmt {
	var stmts []ast.Stmt

	for !p.got(end) {
		// Stray semicolons are harmless.
		if p.got(TOK_SEMI) {
			p.next()
			continue
		}

		stmts = append(stmts, p.parseStmt())
	}

	return stmts
}

// parseStmt parses a single statement or declaration.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Kind {
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_FOR:
		return p.parseForStmt()
	case TOK_RETURN:
		return p.parseReturnStmt()
	case TOK_FUNCTION:
		return p.parseFuncDecl()
	case TOK_ENUM:
		return p.parseEnumDecl()
	case TOK_BITFIELD:
		return p.parseBitfieldDecl()
	case TOK_STRUCT:
		return p.parseStructDecl()
	case TOK_INCLUDE:
		return p.parseIncludeStmt()
	case TOK_IDENT:
		if p.gotDeclStart() {
			return p.parseDeclStmt()
		}

		return p.parseSimpleStmt()
	default:
		return p.parseSimpleStmt()
	}
}

// gotDeclStart reports whether the current identifier begins a variable
// declaration rather than an expression statement: a type name followed by a
// variable name, or `Bits` followed by a width argument.
func (p *Parser) gotDeclStart() bool {
	if !p.got(TOK_IDENT) {
		return false
	}

	switch p.peek().Kind {
	case TOK_IDENT:
		return true
	case TOK_LT:
		return p.tok.Value == "Bits"
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

// parseDeclStmt parses `TypeSpec name [= init];`.
func (p *Parser) parseDeclStmt() ast.Stmt {
	startSpan := p.tok.Span
	spec := p.parseTypeSpec()

	p.assert(TOK_IDENT)
	name := p.tok.Value
	endSpan := p.tok.Span
	p.next()

	var init ast.Expr
	if p.got(TOK_ASSIGN) {
		p.next()

		init = p.parseExpr()
		endSpan = init.Span()
	}

	p.assertAndNext(TOK_SEMI)

	return &ast.DeclStmt{
		StmtBase: ast.NewStmtBase(report.NewSpanOver(startSpan, endSpan)),
		Spec:     spec,
		Name:     name,
		Init:     init,
	}
}

// parseTypeSpec parses a written type: a type name with an optional
// `<width>` argument.
func (p *Parser) parseTypeSpec() *ast.TypeSpec {
	p.assert(TOK_IDENT)
	nameTok := p.tok
	p.next()

	var widthExpr ast.Expr
	span := nameTok.Span

	if nameTok.Value == "Bits" && p.got(TOK_LT) {
		p.next()

		// Parse below comparison precedence so the closing `>` terminates
		// the width argument.
		widthExpr = p.parseBinOpAt(shiftPrecLevel)

		span = report.NewSpanOver(nameTok.Span, p.tok.Span)
		p.assertAndNext(TOK_GT)
	}

	return ast.NewTypeSpec(span, nameTok.Value, widthExpr)
}

// parseSimpleStmt parses an assignment, increment/decrement, or expression
// statement terminated by a semicolon.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	stmt := p.parseSimpleStmtNoSemi()
	p.assertAndNext(TOK_SEMI)
	return stmt
}

// parseSimpleStmtNoSemi parses the body of a simple statement without its
// terminating semicolon, for use in for-loop headers.
func (p *Parser) parseSimpleStmtNoSemi() ast.Stmt {
	lhs := p.parseExpr()

	switch p.tok.Kind {
	case TOK_ASSIGN:
		p.next()

		rhs := p.parseExpr()

		return &ast.AssignStmt{
			StmtBase: ast.NewStmtBase(report.NewSpanOver(lhs.Span(), rhs.Span())),
			Lhs:      lhs,
			Rhs:      rhs,
		}
	case TOK_INC, TOK_DEC:
		op := p.tok.Value
		span := report.NewSpanOver(lhs.Span(), p.tok.Span)
		p.next()

		return &ast.IncDecStmt{
			StmtBase: ast.NewStmtBase(span),
			Lhs:      lhs,
			Op:       op,
		}
	default:
		return &ast.ExprStmt{
			StmtBase: ast.NewStmtBase(lhs.Span()),
			Expr:     lhs,
		}
	}
}

// -----------------------------------------------------------------------------

// parseIfStmt parses an if statement including any `else if` chain, which is
// represented as an else branch containing a single nested if.
func (p *Parser) parseIfStmt() *ast.IfStmt {
	startSpan := p.tok.Span
	p.assertAndNext(TOK_IF)

	p.assertAndNext(TOK_LPAREN)
	cond := p.parseExpr()
	p.assertAndNext(TOK_RPAREN)

	then := p.parseBlock()

	var els []ast.Stmt
	if p.got(TOK_ELSE) {
		p.next()

		if p.got(TOK_IF) {
			els = []ast.Stmt{p.parseIfStmt()}
		} else {
			els = p.parseBlock()
		}
	}

	return &ast.IfStmt{
		StmtBase: ast.NewStmtBase(report.NewSpanOver(startSpan, cond.Span())),
		Cond:     cond,
		Then:     then,
		Else:     els,
	}
}

// parseForStmt parses a C-style for loop:
// `for (init; cond; update) { ... }`.
func (p *Parser) parseForStmt() *ast.ForStmt {
	startSpan := p.tok.Span
	p.assertAndNext(TOK_FOR)

	p.assertAndNext(TOK_LPAREN)

	var init ast.Stmt
	if p.gotDeclStart() {
		init = p.parseDeclStmt()
	} else {
		init = p.parseSimpleStmt()
	}

	cond := p.parseExpr()
	p.assertAndNext(TOK_SEMI)

	update := p.parseSimpleStmtNoSemi()
	p.assertAndNext(TOK_RPAREN)

	body := p.parseBlock()

	return &ast.ForStmt{
		StmtBase: ast.NewStmtBase(report.NewSpanOver(startSpan, cond.Span())),
		Init:     init,
		Cond:     cond,
		Update:   update,
		Body:     body,
	}
}

// parseReturnStmt parses a return statement with an optional value.
func (p *Parser) parseReturnStmt() ast.Stmt {
	span := p.tok.Span
	p.assertAndNext(TOK_RETURN)

	var expr ast.Expr
	if !p.got(TOK_SEMI) {
		expr = p.parseExpr()
		span = report.NewSpanOver(span, expr.Span())
	}

	p.assertAndNext(TOK_SEMI)

	return &ast.ReturnStmt{
		StmtBase: ast.NewStmtBase(span),
		Expr:     expr,
	}
}

// parseIncludeStmt parses an `include "path"` directive.
func (p *Parser) parseIncludeStmt() ast.Stmt {
	startSpan := p.tok.Span
	p.assertAndNext(TOK_INCLUDE)

	p.assert(TOK_STRINGLIT)
	path := p.tok.Value
	span := report.NewSpanOver(startSpan, p.tok.Span)
	p.next()

	if p.got(TOK_SEMI) {
		p.next()
	}

	return &ast.IncludeStmt{
		StmtBase: ast.NewStmtBase(span),
		Path:     path,
	}
}

// parseBlock parses a braced statement list.
func (p *Parser) parseBlock() []ast.Stmt {
	p.assertAndNext(TOK_LBRACE)

	stmts := p.parseStmtsUntil(TOK_RBRACE)
	p.next()

	return stmts
}
