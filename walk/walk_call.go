package walk

import (
	"math/big"

	"udbc/ast"
	"udbc/report"
	"udbc/types"
)

// walkCall type-checks a call expression: a builtin or a user function.
func (w *Walker) walkCall(ce *ast.CallExpr) types.Type {
	switch ce.Name {
	case "implemented?":
		return w.walkImplemented(ce, 1)
	case "implemented_version?":
		return w.walkImplemented(ce, 2)
	case "ary_size":
		return w.walkArySize(ce)
	case "enum_size", "enum_element_size":
		return w.walkEnumQuery(ce)
	case "$signed", "$bits":
		return w.walkBitsCast(ce)
	}

	return w.walkUserCall(ce)
}

// requireArgs validates the argument count of a builtin call.
func (w *Walker) requireArgs(ce *ast.CallExpr, n int) {
	if len(ce.Args) != n {
		w.raise(
			report.KindType, ce.Span(),
			"%s expects %d argument(s), got %d", ce.Name, n, len(ce.Args),
		)
	}
}

// walkImplemented checks `implemented?(ExtensionName.X)` and
// `implemented_version?(ExtensionName.X, "version")`.
func (w *Walker) walkImplemented(ce *ast.CallExpr, n int) types.Type {
	w.requireArgs(ce, n)

	argType := w.walkValueExpr(ce.Args[0])
	et, ok := argType.(*types.EnumType)
	if !ok || et.Name != "ExtensionName" {
		w.raise(
			report.KindType, ce.Args[0].Span(),
			"%s expects an ExtensionName member, not %s", ce.Name, argType.Repr(),
		)
	}

	if n == 2 {
		if !types.Equals(w.walkValueExpr(ce.Args[1]), (types.StringType{})) {
			w.raise(report.KindType, ce.Args[1].Span(), "%s expects a version string", ce.Name)
		}
	}

	ce.SetType(types.BoolType{})
	return types.BoolType{}
}

// walkArySize checks `ary_size(array)`, which folds to the array's length.
func (w *Walker) walkArySize(ce *ast.CallExpr) types.Type {
	w.requireArgs(ce, 1)

	argType := w.walkValueExpr(ce.Args[0])
	at, ok := argType.(*types.ArrayType)
	if !ok {
		w.raise(report.KindType, ce.Args[0].Span(), "ary_size expects an array, not %s", argType.Repr())
	}

	return w.foldQuery(ce, int64(at.Len))
}

// walkEnumQuery checks `enum_size(Name)` (member count) and
// `enum_element_size(Name)` (backing width).  The argument names an enum type
// rather than producing a value.
func (w *Walker) walkEnumQuery(ce *ast.CallExpr) types.Type {
	w.requireArgs(ce, 1)

	id, ok := ce.Args[0].(*ast.Ident)
	if !ok {
		w.raise(report.KindType, ce.Args[0].Span(), "%s expects an enum type name", ce.Name)
	}

	v := w.lookup(id.Span(), id.Name)
	et, ok := v.Type.(*types.EnumType)
	if !v.IsType || !ok {
		w.raise(report.KindType, id.Span(), "%s expects an enum type name, not `%s`", ce.Name, id.Name)
	}

	if ce.Name == "enum_size" {
		return w.foldQuery(ce, int64(len(et.Members)))
	}

	return w.foldQuery(ce, int64(et.BackingWidth()))
}

// foldQuery records the constant result of a compile-time query builtin.
func (w *Walker) foldQuery(ce *ast.CallExpr, result int64) types.Type {
	v := big.NewInt(result)
	t := &types.BitsType{Width: types.MinWidth(v)}

	ce.SetType(t)
	if !ce.Constant() {
		ce.SetValue(types.NewIntValue(v))
	}

	return t
}

// walkBitsCast checks `$signed(x)` and `$bits(x)`: reinterpreting casts that
// keep the operand's width.
func (w *Walker) walkBitsCast(ce *ast.CallExpr) types.Type {
	w.requireArgs(ce, 1)

	bits := w.operand(ce.Args[0], w.walkValueExpr(ce.Args[0]))

	t := &types.BitsType{Width: bits.Width, Signed: ce.Name == "$signed"}
	ce.SetType(t)

	if iv, ok := ce.Args[0].Value().(types.IntValue); ok && !ce.Constant() {
		ce.SetValue(types.NewIntValue(types.Truncate(iv.V, t.Width, t.Signed)))
	}

	return t
}

// -----------------------------------------------------------------------------

// walkUserCall checks a call against a user-defined function's signature.
func (w *Walker) walkUserCall(ce *ast.CallExpr) types.Type {
	v := w.lookup(ce.Span(), ce.Name)

	ft, ok := v.Type.(*types.FuncType)
	if !ok || v.IsType {
		w.raise(report.KindType, ce.Span(), "`%s` is not a function", ce.Name)
	}

	if len(ce.Args) != len(ft.Params) {
		w.raise(
			report.KindType, ce.Span(),
			"%s expects %d argument(s), got %d", ce.Name, len(ft.Params), len(ce.Args),
		)
	}

	for i, arg := range ce.Args {
		w.walkValueExpr(arg)
		w.checkAssign(ft.Params[i].Type, arg, "pass")
	}

	ce.SetType(ft.Return)
	return ft.Return
}
