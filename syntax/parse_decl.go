package syntax

import (
	"strings"

	"udbc/ast"
	"udbc/report"
)

// parseFuncDecl parses a function definition with its named sections:
//
//	function name {
//	  returns TypeSpec
//	  arguments TypeSpec a, TypeSpec b
//	  description { free text }
//	  body { ... }
//	}
//
// Sections may appear in any order; only `body` is required.
func (p *Parser) parseFuncDecl() ast.Stmt {
	startSpan := p.tok.Span
	p.assertAndNext(TOK_FUNCTION)

	p.assert(TOK_IDENT)
	name := p.tok.Value
	nameSpan := p.tok.Span
	p.next()

	p.assertAndNext(TOK_LBRACE)

	fd := &ast.FuncDecl{
		StmtBase: ast.NewStmtBase(report.NewSpanOver(startSpan, nameSpan)),
		Name:     name,
		Body:     nil,
	}

	sawBody := false
	for !p.got(TOK_RBRACE) {
		switch p.tok.Kind {
		case TOK_RETURNS:
			p.next()
			fd.ReturnSpec = p.parseTypeSpec()
		case TOK_ARGUMENTS:
			p.next()
			fd.Params = p.parseParams()
		case TOK_DESCRIPTION:
			// The section body is free text, not IDL: read it raw from the
			// lexer rather than tokenizing it.
			body, err := p.lexer.ReadRawBlock()
			if err != nil {
				panic(err)
			}

			fd.Description = strings.TrimSpace(body)
			p.next()
		case TOK_BODY:
			p.next()
			fd.Body = p.parseBlock()
			sawBody = true
		default:
			p.reject()
		}
	}

	p.next()

	if !sawBody {
		panic(report.Raise(report.KindSyntax, nameSpan, "function `%s` has no body section", name))
	}

	return fd
}

// parseParams parses a comma-separated `TypeSpec name` parameter list.
func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param

	for {
		spec := p.parseTypeSpec()

		p.assert(TOK_IDENT)
		params = append(params, ast.Param{Spec: spec, Name: p.tok.Value})
		p.next()

		if !p.got(TOK_COMMA) {
			return params
		}

		p.next()
	}
}

// -----------------------------------------------------------------------------

// parseEnumDecl parses an enum type declaration: a braced list of member
// names, each with an explicit value expression.
func (p *Parser) parseEnumDecl() ast.Stmt {
	startSpan := p.tok.Span
	p.assertAndNext(TOK_ENUM)

	p.assert(TOK_IDENT)
	name := p.tok.Value
	nameSpan := p.tok.Span
	p.next()

	p.assertAndNext(TOK_LBRACE)

	ed := &ast.EnumDecl{
		StmtBase: ast.NewStmtBase(report.NewSpanOver(startSpan, nameSpan)),
		Name:     name,
	}

	for !p.got(TOK_RBRACE) {
		p.assert(TOK_IDENT)
		ed.Members = append(ed.Members, p.tok.Value)
		p.next()

		ed.Values = append(ed.Values, p.parseExpr())

		if p.got(TOK_COMMA) {
			p.next()
		}
	}

	p.next()
	return ed
}

// parseBitfieldDecl parses a bitfield type declaration:
//
//	bitfield (width) Name {
//	  FIELD hi-lo
//	  FLAG bit
//	}
func (p *Parser) parseBitfieldDecl() ast.Stmt {
	startSpan := p.tok.Span
	p.assertAndNext(TOK_BITFIELD)

	p.assertAndNext(TOK_LPAREN)
	widthExpr := p.parseExpr()
	p.assertAndNext(TOK_RPAREN)

	p.assert(TOK_IDENT)
	name := p.tok.Value
	nameSpan := p.tok.Span
	p.next()

	p.assertAndNext(TOK_LBRACE)

	bd := &ast.BitfieldDecl{
		StmtBase:  ast.NewStmtBase(report.NewSpanOver(startSpan, nameSpan)),
		Name:      name,
		WidthExpr: widthExpr,
	}

	for !p.got(TOK_RBRACE) {
		p.assert(TOK_IDENT)
		field := ast.BitfieldFieldSpec{Name: p.tok.Value}
		p.next()

		// Bit ranges parse at unary precedence so the range `-` is never
		// consumed as subtraction.
		field.Hi = p.parseUnaryExpr()

		if p.got(TOK_MINUS) {
			p.next()
			field.Lo = p.parseUnaryExpr()
		}

		bd.Fields = append(bd.Fields, field)

		if p.got(TOK_COMMA) {
			p.next()
		}
	}

	p.next()
	return bd
}

// parseStructDecl parses a struct type declaration: a braced list of
// semicolon-terminated typed fields.
func (p *Parser) parseStructDecl() ast.Stmt {
	startSpan := p.tok.Span
	p.assertAndNext(TOK_STRUCT)

	p.assert(TOK_IDENT)
	name := p.tok.Value
	nameSpan := p.tok.Span
	p.next()

	p.assertAndNext(TOK_LBRACE)

	sd := &ast.StructDecl{
		StmtBase: ast.NewStmtBase(report.NewSpanOver(startSpan, nameSpan)),
		Name:     name,
	}

	for !p.got(TOK_RBRACE) {
		spec := p.parseTypeSpec()

		p.assert(TOK_IDENT)
		sd.Fields = append(sd.Fields, ast.StructFieldSpec{Spec: spec, Name: p.tok.Value})
		p.next()

		p.assertAndNext(TOK_SEMI)
	}

	p.next()
	return sd
}
