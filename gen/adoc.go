package gen

import (
	"fmt"
	"math/big"
	"strings"

	"udbc/ast"
	"udbc/types"
)

// OptionAdoc renders the conditional "when" structure of an implementation
// option as Asciidoc.  Each branch of an if/else-if/else chain becomes a
// bullet tagged with its governing condition rendered as source text; a chain
// with no explicit final else gets a synthesized complement branch built with
// operator-wise inversion, so `mstatus.TW == 1` complements to
// `mstatus.TW != 1` rather than a wrapped negation.  Ternary assignments
// render as two mutually exclusive branches under the same rule.
func OptionAdoc(node ast.Node) string {
	sb := &strings.Builder{}

	switch n := node.(type) {
	case *ast.File:
		adocStmts(sb, n.Stmts, 0)
	case ast.Expr:
		sb.WriteString(adocExpr(n))
	case ast.Stmt:
		adocStmt(sb, n, 0)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// OptionAdocStmts renders a statement list (an operation body).
func OptionAdocStmts(stmts []ast.Stmt) string {
	sb := &strings.Builder{}
	adocStmts(sb, stmts, 0)
	return strings.TrimRight(sb.String(), "\n")
}

// -----------------------------------------------------------------------------

func adocStmts(sb *strings.Builder, stmts []ast.Stmt, depth int) {
	for _, stmt := range stmts {
		adocStmt(sb, stmt, depth)
	}
}

func adocStmt(sb *strings.Builder, s ast.Stmt, depth int) {
	switch v := s.(type) {
	case *ast.IfStmt:
		adocIfChain(sb, v, depth)
	case *ast.AssignStmt:
		adocAssign(sb, v, depth)
	case *ast.ReturnStmt:
		if v.Expr != nil {
			writeBullet(sb, depth, "the value is %s", adocExpr(v.Expr))
		}
	case *ast.File:
		adocStmts(sb, v.Stmts, depth)
	default:
		writeBullet(sb, depth, "`%s`", s.Text())
	}
}

// adocIfChain renders an if/else-if/else chain, one bullet per branch.
func adocIfChain(sb *strings.Builder, is *ast.IfStmt, depth int) {
	cur := is
	for {
		writeBullet(sb, depth, "When %s:", adocExpr(cur.Cond))
		adocStmts(sb, cur.Then, depth+1)

		if len(cur.Else) == 1 {
			if elif, ok := cur.Else[0].(*ast.IfStmt); ok {
				cur = elif
				continue
			}
		}

		if len(cur.Else) > 0 {
			writeBullet(sb, depth, "When %s:", adocExpr(ast.Invert(cur.Cond)))
			adocStmts(sb, cur.Else, depth+1)
			return
		}

		// No explicit else: synthesize the complement branch so the option's
		// condition structure is total.
		writeBullet(sb, depth, "When %s: no effect.", adocExpr(ast.Invert(cur.Cond)))
		return
	}
}

// adocAssign renders an assignment; a ternary source expands into two
// exclusive branches.
func adocAssign(sb *strings.Builder, as *ast.AssignStmt, depth int) {
	if te, ok := as.Rhs.(*ast.TernaryExpr); ok {
		writeBullet(sb, depth, "When %s, %s is set to %s.", adocExpr(te.Cond), adocExpr(as.Lhs), adocExpr(te.Then))
		writeBullet(sb, depth, "When %s, %s is set to %s.", adocExpr(ast.Invert(te.Cond)), adocExpr(as.Lhs), adocExpr(te.Else))
		return
	}

	writeBullet(sb, depth, "%s is set to %s.", adocExpr(as.Lhs), adocExpr(as.Rhs))
}

// writeBullet writes one Asciidoc list item at the given nesting depth.
func writeBullet(sb *strings.Builder, depth int, msg string, args ...interface{}) {
	sb.WriteString(strings.Repeat("*", depth+1))
	sb.WriteRune(' ')
	fmt.Fprintf(sb, msg, args...)
	sb.WriteRune('\n')
}

// -----------------------------------------------------------------------------

// adocExpr renders an expression for documentation: source text, except that
// sentinel literals render symbolically and decode variables render
// emphasized.
func adocExpr(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.IntLit:
		if name, ok := sentinelName(v.Val); ok {
			return name
		}

		return "`" + v.Text() + "`"
	case *ast.Ident:
		if v.Decode {
			return "_" + v.Name + "_"
		}

		return "`" + v.Name + "`"
	case *ast.BinaryExpr:
		return fmt.Sprintf("%s %s %s", adocExpr(v.Lhs), v.Op, adocExpr(v.Rhs))
	case *ast.UnaryExpr:
		return v.Op + adocExpr(v.Operand)
	case *ast.IndexExpr:
		if v.Lo == nil {
			return fmt.Sprintf("%s[%s]", adocExpr(v.Root), adocExpr(v.Hi))
		}

		return fmt.Sprintf("%s[%s:%s]", adocExpr(v.Root), adocExpr(v.Hi), adocExpr(v.Lo))
	case *ast.FieldExpr:
		return "`" + v.Text() + "`"
	default:
		return "`" + e.Text() + "`"
	}
}

// sentinelName maps the two reserved sentinel values to their symbolic names.
func sentinelName(v *big.Int) (string, bool) {
	switch {
	case v.Cmp(types.UndefinedLegal) == 0:
		return "UNDEFINED_LEGAL", true
	case v.Cmp(types.UndefinedLegalDeterministic) == 0:
		return "UNDEFINED_LEGAL_DETERMINISTIC", true
	default:
		return "", false
	}
}
