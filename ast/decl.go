package ast

import (
	"fmt"
	"strings"

	"udbc/report"
	"udbc/symtab"
	"udbc/types"
)

// TypeSpec is the syntactic form of a type as written in source: a type name
// plus an optional width expression (`Bits<XLEN/2>`).  The width expression
// must constant-fold during freezing; the resolved types.Type is cached on
// the spec.
type TypeSpec struct {
	span *report.TextSpan

	// Name is the written type name: `Bits`, `XReg`, `Boolean`, `String`, or
	// a user-declared enum/bitfield/struct name.
	Name string

	// WidthExpr is the width argument for `Bits<...>`; nil otherwise.
	WidthExpr Expr

	resolved types.Type
}

// NewTypeSpec creates a new type spec.
func NewTypeSpec(span *report.TextSpan, name string, widthExpr Expr) *TypeSpec {
	return &TypeSpec{span: span, Name: name, WidthExpr: widthExpr}
}

func (ts *TypeSpec) Span() *report.TextSpan { return ts.span }

func (ts *TypeSpec) Text() string {
	if ts.WidthExpr != nil {
		return fmt.Sprintf("%s<%s>", ts.Name, ts.WidthExpr.Text())
	}

	return ts.Name
}

// Resolve produces the types.Type the spec denotes, folding the width
// expression against the given symbol table.  The result is cached: a frozen
// spec resolves to the same type under every later table.
func (ts *TypeSpec) Resolve(st *symtab.Table) (types.Type, error) {
	if ts.resolved != nil {
		return ts.resolved, nil
	}

	switch ts.Name {
	case "Boolean":
		ts.resolved = types.BoolType{}
	case "String":
		ts.resolved = types.StringType{}
	case "XReg":
		xlen, err := constWidth(st, ts.span, identExpr(ts.span, "XLEN"))
		if err != nil {
			return nil, err
		}

		ts.resolved = &types.BitsType{Width: xlen}
	case "Bits":
		if ts.WidthExpr == nil {
			return nil, report.Raise(report.KindType, ts.span, "Bits requires a width argument")
		}

		width, err := constWidth(st, ts.span, ts.WidthExpr)
		if err != nil {
			return nil, err
		}

		ts.resolved = &types.BitsType{Width: width}
	default:
		v := st.Get(ts.Name)
		if v == nil || !v.IsType {
			return nil, report.Raise(report.KindType, ts.span, "unknown type: `%s`", ts.Name)
		}

		ts.resolved = v.Type
	}

	return ts.resolved, nil
}

// identExpr builds a synthetic identifier reference used to resolve built-in
// width names like XLEN.
func identExpr(span *report.TextSpan, name string) Expr {
	return &Ident{ExprBase: NewExprBase(span), Name: name}
}

// constWidth freezes a width expression and extracts its constant integer
// value, validating that it is a legal width.
func constWidth(st *symtab.Table, span *report.TextSpan, e Expr) (int, error) {
	if err := e.Freeze(st); err != nil {
		return 0, err
	}

	iv, ok := e.Value().(types.IntValue)
	if !ok {
		return 0, report.Raise(report.KindValue, span, "width expression `%s` is not a compile-time constant", e.Text())
	}

	if !iv.V.IsInt64() || iv.V.Int64() <= 0 {
		return 0, report.Raise(report.KindType, span, "illegal width: %s", iv.V)
	}

	return int(iv.V.Int64()), nil
}

// -----------------------------------------------------------------------------

// Param is a single declared function parameter.
type Param struct {
	Spec *TypeSpec
	Name string
}

// FuncDecl is a user function definition with its section markers: returns,
// arguments, description, and body.
type FuncDecl struct {
	StmtBase

	Name        string
	Params      []Param
	ReturnSpec  *TypeSpec
	Description string
	Body        []Stmt

	// Sig is the resolved signature, built during freezing.
	Sig *types.FuncType
}

func (fd *FuncDecl) Text() string { return stmtText(fd) }

func (fd *FuncDecl) writeText(sb *strings.Builder, indent int) {
	writeIndent(sb, indent)
	sb.WriteString("function ")
	sb.WriteString(fd.Name)
	sb.WriteString(" {\n")

	if fd.ReturnSpec != nil {
		writeIndent(sb, indent+1)
		sb.WriteString("returns ")
		sb.WriteString(fd.ReturnSpec.Text())
		sb.WriteRune('\n')
	}

	if len(fd.Params) > 0 {
		writeIndent(sb, indent+1)
		sb.WriteString("arguments ")

		for i, param := range fd.Params {
			sb.WriteString(param.Spec.Text())
			sb.WriteRune(' ')
			sb.WriteString(param.Name)

			if i < len(fd.Params)-1 {
				sb.WriteString(", ")
			}
		}

		sb.WriteRune('\n')
	}

	if fd.Description != "" {
		writeIndent(sb, indent+1)
		sb.WriteString("description {")
		sb.WriteString(fd.Description)
		sb.WriteString("}\n")
	}

	writeIndent(sb, indent+1)
	sb.WriteString("body ")
	writeBlock(sb, fd.Body, indent+1)
	sb.WriteRune('\n')

	writeIndent(sb, indent)
	sb.WriteRune('}')
}

// -----------------------------------------------------------------------------

// EnumDecl declares an enumeration type.
type EnumDecl struct {
	StmtBase

	Name    string
	Members []string
	Values  []Expr

	// Type is the resolved enum type, built during freezing.
	Type *types.EnumType
}

func (ed *EnumDecl) Text() string { return stmtText(ed) }

func (ed *EnumDecl) writeText(sb *strings.Builder, indent int) {
	writeIndent(sb, indent)
	sb.WriteString("enum ")
	sb.WriteString(ed.Name)
	sb.WriteString(" {\n")

	for i, member := range ed.Members {
		writeIndent(sb, indent+1)
		sb.WriteString(member)
		sb.WriteRune(' ')
		sb.WriteString(ed.Values[i].Text())
		sb.WriteRune('\n')
	}

	writeIndent(sb, indent)
	sb.WriteRune('}')
}

// BitfieldFieldSpec is a single named bit range as written in source.
type BitfieldFieldSpec struct {
	Name string
	Hi   Expr
	Lo   Expr // nil for single-bit fields
}

// BitfieldDecl declares a bitfield type: a fixed-width vector of named bit
// ranges.
type BitfieldDecl struct {
	StmtBase

	Name      string
	WidthExpr Expr
	Fields    []BitfieldFieldSpec

	// Type is the resolved bitfield type, built during freezing.
	Type *types.BitfieldType
}

func (bd *BitfieldDecl) Text() string { return stmtText(bd) }

func (bd *BitfieldDecl) writeText(sb *strings.Builder, indent int) {
	writeIndent(sb, indent)
	sb.WriteString("bitfield (")
	sb.WriteString(bd.WidthExpr.Text())
	sb.WriteString(") ")
	sb.WriteString(bd.Name)
	sb.WriteString(" {\n")

	for _, field := range bd.Fields {
		writeIndent(sb, indent+1)
		sb.WriteString(field.Name)
		sb.WriteRune(' ')
		sb.WriteString(field.Hi.Text())

		if field.Lo != nil {
			sb.WriteRune('-')
			sb.WriteString(field.Lo.Text())
		}

		sb.WriteRune('\n')
	}

	writeIndent(sb, indent)
	sb.WriteRune('}')
}

// StructFieldSpec is a single typed struct field as written in source.
type StructFieldSpec struct {
	Spec *TypeSpec
	Name string
}

// StructDecl declares a struct type.
type StructDecl struct {
	StmtBase

	Name   string
	Fields []StructFieldSpec

	// Type is the resolved struct type, built during freezing.
	Type *types.StructType
}

func (sd *StructDecl) Text() string { return stmtText(sd) }

func (sd *StructDecl) writeText(sb *strings.Builder, indent int) {
	writeIndent(sb, indent)
	sb.WriteString("struct ")
	sb.WriteString(sd.Name)
	sb.WriteString(" {\n")

	for _, field := range sd.Fields {
		writeIndent(sb, indent+1)
		sb.WriteString(field.Spec.Text())
		sb.WriteRune(' ')
		sb.WriteString(field.Name)
		sb.WriteString(";\n")
	}

	writeIndent(sb, indent)
	sb.WriteRune('}')
}

// -----------------------------------------------------------------------------

// IncludeStmt is an `include "path"` directive.  The compiler resolves the
// path and splices the included file's statements at the directive's
// position; nodes built from the included file keep the included file's own
// unit identity for diagnostics.
type IncludeStmt struct {
	StmtBase

	Path string
}

func (is *IncludeStmt) Text() string { return stmtText(is) }

func (is *IncludeStmt) writeText(sb *strings.Builder, indent int) {
	writeIndent(sb, indent)
	sb.WriteString(fmt.Sprintf("include %q", is.Path))
}

// -----------------------------------------------------------------------------

// File is the root node of a parsed source unit.
type File struct {
	StmtBase

	// Unit is the unit identity used in diagnostics: a file path or a
	// caller-supplied description.
	Unit string

	Stmts []Stmt
}

func (f *File) Text() string { return stmtText(f) }

func (f *File) writeText(sb *strings.Builder, indent int) {
	for i, stmt := range f.Stmts {
		stmt.writeText(sb, indent)

		if i < len(f.Stmts)-1 {
			sb.WriteRune('\n')
		}
	}
}
