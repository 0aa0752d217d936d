package compile

import (
	"udbc/ast"
	"udbc/report"
	"udbc/symtab"
	"udbc/syntax"
	"udbc/types"
	"udbc/walk"
)

// CompileExpression parses, freezes, and type-checks a bare expression.  The
// expression is checked against a clone of the compiler's table, so the
// compiler's own state is never mutated.  unit names the expression in
// diagnostics (the enclosing function or record); pass "" for a generic name.
func (c *Compiler) CompileExpression(unit, src string) (ast.Expr, error) {
	if unit == "" {
		unit = "<expression>"
	}

	e, err := syntax.ParseExpr(unit, src)
	if err != nil {
		return nil, err
	}

	table := c.table.DeepClone(false)
	if err := e.Freeze(table); err != nil {
		return nil, tagUnit(err, unit)
	}

	w := walk.NewWalker(unit, table)
	if _, err := w.CheckExpr(e); err != nil {
		return nil, err
	}

	return e, nil
}

// BodyOptions adjusts how CompileFunctionBody checks a body.
type BodyOptions struct {
	// Return is the body's expected return type; nil for none.
	Return types.Type

	// ExtraSyms are caller-supplied bindings visible to the body, eg. decode
	// variables of the enclosing instruction.
	ExtraSyms []*symtab.Var

	// InputLine is the zero-based line within the enclosing document at which
	// the body's source begins.
	InputLine int

	// SkipCheck freezes the body but skips type-checking, for callers that
	// run their own check step under their own tables.
	SkipCheck bool
}

// CompileFunctionBody parses a function body, freezes it against a cloned
// table augmented with the caller's extra symbols, and type-checks it against
// the expected return type.  The clone is discarded afterward: the compiler's
// own table is never mutated by a body check.
func (c *Compiler) CompileFunctionBody(unit, src string, opts BodyOptions) ([]ast.Stmt, error) {
	stmts, err := syntax.ParseStmts(unit, src, opts.InputLine)
	if err != nil {
		return nil, err
	}

	table := c.table.DeepClone(false)
	table.Push()

	for _, v := range opts.ExtraSyms {
		table.Add(v)
	}

	for _, stmt := range stmts {
		if err := stmt.Freeze(table); err != nil {
			return nil, tagUnit(err, unit)
		}
	}

	if !opts.SkipCheck {
		w := walk.NewWalker(unit, table)
		if err := w.CheckBody(stmts, opts.Return); err != nil {
			return nil, err
		}
	}

	table.Pop()
	return stmts, nil
}

// CompileInstructionOperation parses and freezes the textual operation block
// of an instruction record.  inputFile/inputLine position diagnostics within
// the enclosing document.  The caller runs its own type-check step (see
// TypeCheck) with its own table and decode variables.
func (c *Compiler) CompileInstructionOperation(src, inputFile string, inputLine int) ([]ast.Stmt, error) {
	stmts, err := syntax.ParseStmts(inputFile, src, inputLine)
	if err != nil {
		return nil, err
	}

	table := c.table.DeepClone(false)
	table.Push()

	for _, stmt := range stmts {
		if err := stmt.Freeze(table); err != nil {
			return nil, tagUnit(err, inputFile)
		}
	}

	return stmts, nil
}

// TypeCheck runs type-checking on an already-frozen AST against the given
// table.  what is a human-readable context description for diagnostics.
func TypeCheck(node ast.Node, table *symtab.Table, what string) error {
	w := walk.NewWalker(what, table)

	switch n := node.(type) {
	case *ast.File:
		return w.CheckFile(n)
	case ast.Expr:
		_, err := w.CheckExpr(n)
		return err
	case ast.Stmt:
		return w.CheckStmts([]ast.Stmt{n})
	default:
		return report.RaiseInternal(node.Span(), "cannot type-check node: %T", node)
	}
}

// -----------------------------------------------------------------------------

// tagUnit stamps the unit name onto a compilation error that does not carry
// one yet.
func tagUnit(err error, unit string) error {
	if cerr, ok := err.(*report.Error); ok && cerr.Unit == "" {
		cerr.Unit = unit
	}

	return err
}
