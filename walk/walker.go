// Package walk implements the type-checking pass.  A Walker validates a
// frozen AST against a symbol table: it resolves every name, applies the
// width-reconciliation rules, and rejects illegal assignments.  Walking never
// mutates the frozen values of the tree, so a single frozen AST can be walked
// under many independently cloned tables.
package walk

import (
	"udbc/ast"
	"udbc/report"
	"udbc/symtab"
	"udbc/types"
)

// Walker traverses a frozen AST and type-checks it against a symbol table.
type Walker struct {
	unit  string
	table *symtab.Table

	// ret is the return type of the function body being walked; nil outside a
	// function (or inside a function returning nothing).
	ret types.Type

	// inFunc distinguishes "no return value" from "not in a function": a bare
	// `return` is legal in both, a valued one in neither.
	inFunc bool
}

// NewWalker creates a walker for the given unit over the given table.  The
// table is mutated as declarations register themselves; callers that need to
// keep the input table pristine pass a DeepClone.
func NewWalker(unit string, table *symtab.Table) *Walker {
	return &Walker{unit: unit, table: table}
}

// Table returns the table the walker resolves against.
func (w *Walker) Table() *symtab.Table { return w.table }

// -----------------------------------------------------------------------------

// CheckFile type-checks a full source unit.
func (w *Walker) CheckFile(f *ast.File) (err error) {
	defer report.Catch(w.unit, &err)

	w.walkStmts(f.Stmts)
	return nil
}

// CheckStmts type-checks a bare statement list (a function body or an
// instruction operation).
func (w *Walker) CheckStmts(stmts []ast.Stmt) (err error) {
	defer report.Catch(w.unit, &err)

	w.walkStmts(stmts)
	return nil
}

// CheckBody type-checks a statement list as the body of a function with the
// given return type (nil for none).
func (w *Walker) CheckBody(stmts []ast.Stmt, ret types.Type) (err error) {
	defer report.Catch(w.unit, &err)

	w.ret = ret
	w.inFunc = true
	w.walkStmts(stmts)
	return nil
}

// CheckExpr type-checks a bare expression and returns its type.
func (w *Walker) CheckExpr(e ast.Expr) (t types.Type, err error) {
	defer report.Catch(w.unit, &err)

	return w.walkExpr(e), nil
}

// -----------------------------------------------------------------------------

// raise aborts the walk with a compilation error.
func (w *Walker) raise(kind report.Kind, span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(kind, span, msg, args...))
}

// lookup resolves a name or aborts with a type error.
func (w *Walker) lookup(span *report.TextSpan, name string) *symtab.Var {
	v := w.table.Get(name)
	if v == nil {
		w.raise(report.KindType, span, "undefined symbol: `%s`", name)
	}

	return v
}

// checkAssign validates a value flowing into a fixed destination type.  A
// compile-time-constant integer source must fit the destination exactly; a
// non-constant source of any bit-vector shape is allowed and truncates to the
// destination width at runtime.
func (w *Walker) checkAssign(dest types.Type, src ast.Expr, what string) {
	srcType := src.Type()

	if iv, ok := src.Value().(types.IntValue); ok {
		db := types.OperandBits(dest)
		if db == nil {
			w.raise(report.KindType, src.Span(), "cannot %s %s to %s", what, srcType.Repr(), dest.Repr())
		}

		// Enum constants still may not cross into a different enum.
		if se, ok := srcType.(*types.EnumType); ok && !types.Assignable(dest, se) {
			w.raise(report.KindType, src.Span(), "cannot %s %s to %s", what, se.Repr(), dest.Repr())
		}

		if !types.FitsIn(iv.V, db.Width, db.Signed) {
			w.raise(
				report.KindType, src.Span(),
				"constant value %s does not fit in %s", iv.V, dest.Repr(),
			)
		}

		return
	}

	if !types.Assignable(dest, srcType) {
		w.raise(report.KindType, src.Span(), "cannot %s %s to %s", what, srcType.Repr(), dest.Repr())
	}
}

// checkCond validates a Boolean condition.  The condition must produce a
// value, so a call to a function returning nothing is rejected here rather
// than slipping through as a nil type.
func (w *Walker) checkCond(cond ast.Expr) {
	if !types.Equals(w.walkValueExpr(cond), types.BoolType{}) {
		w.raise(report.KindType, cond.Span(), "condition must be a Boolean, not %s", cond.Type().Repr())
	}
}
