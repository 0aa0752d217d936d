package ast

import (
	"strings"

	"udbc/report"
	"udbc/symtab"
	"udbc/types"
)

// Node is the abstract interface for all AST nodes.
type Node interface {
	// Span returns the text span of the node within its source unit.
	Span() *report.TextSpan

	// Text re-renders the node as canonical IDL source, used for diagnostics
	// and pretty-printing.
	Text() string

	// Freeze attempts compile-time evaluation of literal and constant
	// subexpressions against the given symbol table, finalizes the node, and
	// recursively freezes children.  Freezing an already-frozen node is a
	// no-op; after freezing the tree is immutable and safe to share between
	// independent type-checking passes.
	Freeze(st *symtab.Table) error
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node

	// Type is the checked type of the expression.  Nil until the expression
	// has been type-checked.
	Type() types.Type

	// SetType sets the checked type of the expression.
	SetType(types.Type)

	// Value is the compile-time-known value of the expression, or nil if the
	// expression is not constant.
	Value() types.Value

	// Constant returns whether the expression folded to a known value.
	Constant() bool
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node

	stmtNode()

	// writeText renders the statement at the given indent level.
	writeText(sb *strings.Builder, indent int)
}

// -----------------------------------------------------------------------------

// ExprBase is the base struct for all expression nodes.
type ExprBase struct {
	span   *report.TextSpan
	typ    types.Type
	val    types.Value
	frozen bool
}

// NewExprBase creates a new expression base with the given span.
func NewExprBase(span *report.TextSpan) ExprBase {
	return ExprBase{span: span}
}

func (eb *ExprBase) Span() *report.TextSpan { return eb.span }

func (eb *ExprBase) Type() types.Type { return eb.typ }

func (eb *ExprBase) SetType(typ types.Type) { eb.typ = typ }

func (eb *ExprBase) Value() types.Value { return eb.val }

// SetValue records the folded compile-time value of the expression.
func (eb *ExprBase) SetValue(val types.Value) { eb.val = val }

func (eb *ExprBase) Constant() bool { return eb.val != nil }

// beginFreeze marks the expression frozen and reports whether it was frozen
// already.
func (eb *ExprBase) beginFreeze() bool {
	if eb.frozen {
		return false
	}

	eb.frozen = true
	return true
}

// StmtBase is the base struct for all statement nodes.
type StmtBase struct {
	span   *report.TextSpan
	frozen bool
}

// NewStmtBase creates a new statement base with the given span.
func NewStmtBase(span *report.TextSpan) StmtBase {
	return StmtBase{span: span}
}

func (sb *StmtBase) Span() *report.TextSpan { return sb.span }

func (sb *StmtBase) stmtNode() {}

func (sb *StmtBase) beginFreeze() bool {
	if sb.frozen {
		return false
	}

	sb.frozen = true
	return true
}

// -----------------------------------------------------------------------------

// freezeAll freezes a list of statements in order.
func freezeAll(st *symtab.Table, stmts []Stmt) error {
	for _, stmt := range stmts {
		if err := stmt.Freeze(st); err != nil {
			return err
		}
	}

	return nil
}
