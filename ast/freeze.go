package ast

import (
	"math/big"

	"udbc/report"
	"udbc/symtab"
	"udbc/types"
)

// This file holds the Freeze implementations for every node.  Freezing fixes
// literal widths, bakes constant bindings out of the symbol table, and folds
// constant subexpressions to exact values.  Constant arithmetic is never
// truncated to an operand width: fit against a fixed-width destination is
// checked (or truncation applied) by the type checker at the point the value
// flows into the destination.

// maxShift bounds constant shift amounts so a malformed program cannot ask
// for an absurdly wide intermediate.
const maxShift = 1 << 20

// -----------------------------------------------------------------------------

func (il *IntLit) Freeze(st *symtab.Table) error {
	if !il.beginFreeze() {
		return nil
	}

	switch {
	case il.Sized:
		if il.Width <= 0 {
			return report.Raise(report.KindType, il.Span(), "literal width must be positive: %d", il.Width)
		}
	case il.Unsized:
		xlen := st.Get("XLEN")
		if xlen == nil {
			return report.Raise(report.KindType, il.Span(), "unsized literal requires XLEN in scope")
		}

		iv, ok := xlen.Value.(types.IntValue)
		if !ok {
			return report.Raise(report.KindValue, il.Span(), "XLEN is not a compile-time constant")
		}

		il.Width = int(iv.V.Int64())
	default:
		il.Width = types.MinWidth(il.Val)
	}

	if !types.FitsIn(il.Val, il.Width, il.Signed) {
		return report.Raise(
			report.KindType, il.Span(),
			"literal value %s does not fit in %d %s bits",
			il.Val, il.Width, signedness(il.Signed),
		)
	}

	il.SetType(&types.BitsType{Width: il.Width, Signed: il.Signed})
	il.SetValue(types.NewIntValue(il.Val))
	return nil
}

func signedness(signed bool) string {
	if signed {
		return "signed"
	}

	return "unsigned"
}

func (bl *BoolLit) Freeze(st *symtab.Table) error {
	if !bl.beginFreeze() {
		return nil
	}

	bl.SetType(types.BoolType{})
	bl.SetValue(types.BoolValue(bl.Val))
	return nil
}

func (sl *StringLit) Freeze(st *symtab.Table) error {
	if !sl.beginFreeze() {
		return nil
	}

	sl.SetType(types.StringType{})
	sl.SetValue(types.StringValue(sl.Val))
	return nil
}

func (id *Ident) Freeze(st *symtab.Table) error {
	if !id.beginFreeze() {
		return nil
	}

	// Bake constant bindings into the node.  Unresolved names are left for
	// the type checker, which reports them with full context.
	if v := st.Get(id.Name); v != nil && !v.IsType {
		id.SetType(v.Type)
		id.Decode = v.Decode

		if v.Const && v.Value != nil {
			id.SetValue(v.Value)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

func (be *BinaryExpr) Freeze(st *symtab.Table) error {
	if !be.beginFreeze() {
		return nil
	}

	if err := be.Lhs.Freeze(st); err != nil {
		return err
	}

	if err := be.Rhs.Freeze(st); err != nil {
		return err
	}

	if !be.Lhs.Constant() || !be.Rhs.Constant() {
		return nil
	}

	val, err := FoldBinary(be.Op, be.Lhs.Value(), be.Rhs.Value(), be.Span())
	if err != nil {
		return err
	}

	be.SetValue(val)
	return nil
}

// FoldBinary applies a binary operator to two compile-time values, yielding
// the exact (untruncated) result.  A nil result with nil error means the
// operand shapes do not fold (left for the type checker to reject).
func FoldBinary(op string, lhs, rhs types.Value, span *report.TextSpan) (types.Value, error) {
	if li, ok := lhs.(types.IntValue); ok {
		ri, ok := rhs.(types.IntValue)
		if !ok {
			return nil, nil
		}

		switch op {
		case "+":
			return types.NewIntValue(new(big.Int).Add(li.V, ri.V)), nil
		case "-":
			return types.NewIntValue(new(big.Int).Sub(li.V, ri.V)), nil
		case "*":
			return types.NewIntValue(new(big.Int).Mul(li.V, ri.V)), nil
		case "/":
			if ri.V.Sign() == 0 {
				return nil, report.Raise(report.KindValue, span, "division by zero in constant expression")
			}

			return types.NewIntValue(new(big.Int).Quo(li.V, ri.V)), nil
		case "%":
			if ri.V.Sign() == 0 {
				return nil, report.Raise(report.KindValue, span, "modulo by zero in constant expression")
			}

			return types.NewIntValue(new(big.Int).Rem(li.V, ri.V)), nil
		case "<<", ">>":
			if !ri.V.IsInt64() || ri.V.Int64() < 0 || ri.V.Int64() > maxShift {
				return nil, report.Raise(report.KindValue, span, "illegal constant shift amount: %s", ri.V)
			}

			if op == "<<" {
				return types.NewIntValue(new(big.Int).Lsh(li.V, uint(ri.V.Int64()))), nil
			}

			return types.NewIntValue(new(big.Int).Rsh(li.V, uint(ri.V.Int64()))), nil
		case "&":
			return types.NewIntValue(new(big.Int).And(li.V, ri.V)), nil
		case "|":
			return types.NewIntValue(new(big.Int).Or(li.V, ri.V)), nil
		case "^":
			return types.NewIntValue(new(big.Int).Xor(li.V, ri.V)), nil
		case "==":
			return types.BoolValue(li.V.Cmp(ri.V) == 0), nil
		case "!=":
			return types.BoolValue(li.V.Cmp(ri.V) != 0), nil
		case "<":
			return types.BoolValue(li.V.Cmp(ri.V) < 0), nil
		case "<=":
			return types.BoolValue(li.V.Cmp(ri.V) <= 0), nil
		case ">":
			return types.BoolValue(li.V.Cmp(ri.V) > 0), nil
		case ">=":
			return types.BoolValue(li.V.Cmp(ri.V) >= 0), nil
		}

		return nil, nil
	}

	if lb, ok := lhs.(types.BoolValue); ok {
		rb, ok := rhs.(types.BoolValue)
		if !ok {
			return nil, nil
		}

		switch op {
		case "&&":
			return types.BoolValue(bool(lb) && bool(rb)), nil
		case "||":
			return types.BoolValue(bool(lb) || bool(rb)), nil
		case "==":
			return types.BoolValue(lb == rb), nil
		case "!=":
			return types.BoolValue(lb != rb), nil
		}
	}

	return nil, nil
}

func (ue *UnaryExpr) Freeze(st *symtab.Table) error {
	if !ue.beginFreeze() {
		return nil
	}

	if err := ue.Operand.Freeze(st); err != nil {
		return err
	}

	if !ue.Operand.Constant() {
		return nil
	}

	val := FoldUnary(ue.Op, ue.Operand.Value(), ue.Operand.Type())
	ue.SetValue(val)

	// A unary minus applied to an unsigned literal promotes it to a signed
	// vector of the same width.
	if ue.Op == "-" {
		if ot, ok := ue.Operand.Type().(*types.BitsType); ok {
			ue.SetType(&types.BitsType{Width: ot.Width, Signed: true})
		}
	}

	return nil
}

// FoldUnary applies a unary operator to a compile-time value.  Complement
// requires the operand's width and therefore folds only when the operand
// type is known.  A nil result means the operand does not fold.
func FoldUnary(op string, v types.Value, typ types.Type) types.Value {
	switch op {
	case "-":
		if iv, ok := v.(types.IntValue); ok {
			return types.NewIntValue(new(big.Int).Neg(iv.V))
		}
	case "!":
		if bv, ok := v.(types.BoolValue); ok {
			return types.BoolValue(!bv)
		}
	case "~":
		iv, ok := v.(types.IntValue)
		if !ok {
			return nil
		}

		bt, ok := typ.(*types.BitsType)
		if !ok {
			return nil
		}

		mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bt.Width)), big.NewInt(1))
		return types.NewIntValue(new(big.Int).AndNot(mask, iv.V))
	}

	return nil
}

func (te *TernaryExpr) Freeze(st *symtab.Table) error {
	if !te.beginFreeze() {
		return nil
	}

	if err := te.Cond.Freeze(st); err != nil {
		return err
	}

	if err := te.Then.Freeze(st); err != nil {
		return err
	}

	if err := te.Else.Freeze(st); err != nil {
		return err
	}

	if cond, ok := te.Cond.Value().(types.BoolValue); ok {
		if cond {
			te.SetValue(te.Then.Value())
		} else {
			te.SetValue(te.Else.Value())
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

func (ie *IndexExpr) Freeze(st *symtab.Table) error {
	if !ie.beginFreeze() {
		return nil
	}

	if err := ie.Root.Freeze(st); err != nil {
		return err
	}

	if err := ie.Hi.Freeze(st); err != nil {
		return err
	}

	if ie.Lo != nil {
		if err := ie.Lo.Freeze(st); err != nil {
			return err
		}
	}

	// Fold constant bit slices and constant array indexing.
	hi, hiConst := ie.Hi.Value().(types.IntValue)
	if !hiConst || !hi.V.IsInt64() {
		return nil
	}

	switch root := ie.Root.Value().(type) {
	case types.ArrayValue:
		if ie.Lo == nil {
			idx := hi.V.Int64()
			if idx >= 0 && idx < int64(len(root)) {
				ie.SetValue(root[idx])
			}
		}
	case types.IntValue:
		lo := hi
		if ie.Lo != nil {
			var loConst bool
			lo, loConst = ie.Lo.Value().(types.IntValue)
			if !loConst || !lo.V.IsInt64() {
				return nil
			}
		}

		hiBit, loBit := hi.V.Int64(), lo.V.Int64()
		if loBit < 0 || hiBit < loBit {
			return report.Raise(report.KindType, ie.Span(), "illegal bit range [%d:%d]", hiBit, loBit)
		}

		shifted := new(big.Int).Rsh(root.V, uint(loBit))
		ie.SetValue(types.NewIntValue(types.Truncate(shifted, int(hiBit-loBit+1), false)))
	}

	return nil
}

func (fe *FieldExpr) Freeze(st *symtab.Table) error {
	if !fe.beginFreeze() {
		return nil
	}

	if err := fe.Root.Freeze(st); err != nil {
		return err
	}

	// Fold enum member references (`EnumName.Member`).
	if rootID, ok := fe.Root.(*Ident); ok {
		if v := st.Get(rootID.Name); v != nil && v.IsType {
			if et, ok := v.Type.(*types.EnumType); ok {
				if mv, ok := et.MemberValue(fe.Field); ok {
					fe.SetType(et)
					fe.SetValue(types.NewIntValue(mv))
				}
			}
		}
	}

	return nil
}

func (ce *CallExpr) Freeze(st *symtab.Table) error {
	if !ce.beginFreeze() {
		return nil
	}

	for _, arg := range ce.Args {
		if err := arg.Freeze(st); err != nil {
			return err
		}
	}

	// `implemented?` folds against the active extension set of the table's
	// configuration.
	if ce.Name == "implemented?" && len(ce.Args) == 1 && st.Config() != nil {
		if fe, ok := ce.Args[0].(*FieldExpr); ok {
			if rootID, ok := fe.Root.(*Ident); ok && rootID.Name == "ExtensionName" {
				active := false
				for _, ext := range st.Config().Extensions {
					if ext == fe.Field {
						active = true
						break
					}
				}

				ce.SetValue(types.BoolValue(active))
			}
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

func (ds *DeclStmt) Freeze(st *symtab.Table) error {
	if !ds.beginFreeze() {
		return nil
	}

	typ, err := ds.Spec.Resolve(st)
	if err != nil {
		return err
	}

	if ds.Init != nil {
		if err := ds.Init.Freeze(st); err != nil {
			return err
		}
	}

	// Make the declaration visible to later expressions in the unit while
	// freezing so references to it fold.  Uppercase-initial names with
	// constant initializers are constants; everything else is a mutable
	// local whose value is unknown at compile time.
	v := &symtab.Var{Name: ds.Name, Type: typ}
	if IsConstName(ds.Name) && ds.Init != nil && ds.Init.Constant() {
		v.Const = true
		v.Value = ds.Init.Value()
	}

	st.Add(v)
	return nil
}

// IsConstName reports whether a declared name denotes a constant: constants
// are written with a leading uppercase letter, ordinary locals are not.
func IsConstName(name string) bool {
	return len(name) > 0 && 'A' <= name[0] && name[0] <= 'Z'
}

func (as *AssignStmt) Freeze(st *symtab.Table) error {
	if !as.beginFreeze() {
		return nil
	}

	if err := as.Lhs.Freeze(st); err != nil {
		return err
	}

	return as.Rhs.Freeze(st)
}

func (ids *IncDecStmt) Freeze(st *symtab.Table) error {
	if !ids.beginFreeze() {
		return nil
	}

	return ids.Lhs.Freeze(st)
}

func (es *ExprStmt) Freeze(st *symtab.Table) error {
	if !es.beginFreeze() {
		return nil
	}

	return es.Expr.Freeze(st)
}

func (is *IfStmt) Freeze(st *symtab.Table) error {
	if !is.beginFreeze() {
		return nil
	}

	if err := is.Cond.Freeze(st); err != nil {
		return err
	}

	st.Push()
	if err := freezeAll(st, is.Then); err != nil {
		st.Pop()
		return err
	}
	st.Pop()

	st.Push()
	defer st.Pop()
	return freezeAll(st, is.Else)
}

func (fs *ForStmt) Freeze(st *symtab.Table) error {
	if !fs.beginFreeze() {
		return nil
	}

	st.Push()
	defer st.Pop()

	if err := fs.Init.Freeze(st); err != nil {
		return err
	}

	// The loop variable's value varies per iteration: drop any constant
	// binding the init registered so body references do not fold to the
	// initial value.
	if decl, ok := fs.Init.(*DeclStmt); ok {
		st.Add(&symtab.Var{Name: decl.Name, Type: decl.Spec.resolved})
	}

	if err := fs.Cond.Freeze(st); err != nil {
		return err
	}

	if err := fs.Update.Freeze(st); err != nil {
		return err
	}

	return freezeAll(st, fs.Body)
}

func (rs *ReturnStmt) Freeze(st *symtab.Table) error {
	if !rs.beginFreeze() {
		return nil
	}

	if rs.Expr != nil {
		return rs.Expr.Freeze(st)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (fd *FuncDecl) Freeze(st *symtab.Table) error {
	if !fd.beginFreeze() {
		return nil
	}

	sig := &types.FuncType{}
	for _, param := range fd.Params {
		pt, err := param.Spec.Resolve(st)
		if err != nil {
			return err
		}

		sig.Params = append(sig.Params, types.FuncParam{Name: param.Name, Type: pt})
	}

	if fd.ReturnSpec != nil {
		rt, err := fd.ReturnSpec.Resolve(st)
		if err != nil {
			return err
		}

		sig.Return = rt
	}

	fd.Sig = sig

	// Make the function visible to later statements in the unit while
	// freezing.  The type checker registers it again against its own table.
	st.Add(&symtab.Var{Name: fd.Name, Type: sig, Const: true})

	st.Push()
	defer st.Pop()

	for _, param := range sig.Params {
		st.Add(&symtab.Var{Name: param.Name, Type: param.Type})
	}

	return freezeAll(st, fd.Body)
}

func (ed *EnumDecl) Freeze(st *symtab.Table) error {
	if !ed.beginFreeze() {
		return nil
	}

	et := &types.EnumType{Name: ed.Name, Members: ed.Members}
	for _, valExpr := range ed.Values {
		if err := valExpr.Freeze(st); err != nil {
			return err
		}

		iv, ok := valExpr.Value().(types.IntValue)
		if !ok {
			return report.Raise(
				report.KindValue, valExpr.Span(),
				"enum member value `%s` is not a compile-time constant", valExpr.Text(),
			)
		}

		et.Values = append(et.Values, iv.V)
	}

	ed.Type = et
	st.Add(&symtab.Var{Name: ed.Name, Type: et, Const: true, IsType: true})
	return nil
}

func (bd *BitfieldDecl) Freeze(st *symtab.Table) error {
	if !bd.beginFreeze() {
		return nil
	}

	width, err := constWidth(st, bd.Span(), bd.WidthExpr)
	if err != nil {
		return err
	}

	bt := &types.BitfieldType{Name: bd.Name, Width: width}
	for _, field := range bd.Fields {
		hi, err := constBit(st, field.Hi)
		if err != nil {
			return err
		}

		lo := hi
		if field.Lo != nil {
			if lo, err = constBit(st, field.Lo); err != nil {
				return err
			}
		}

		if lo < 0 || hi < lo || hi >= width {
			return report.Raise(
				report.KindType, bd.Span(),
				"bitfield %s: field %s range [%d:%d] exceeds width %d",
				bd.Name, field.Name, hi, lo, width,
			)
		}

		bt.Fields = append(bt.Fields, types.BitfieldField{Name: field.Name, Hi: hi, Lo: lo})
	}

	bd.Type = bt
	st.Add(&symtab.Var{Name: bd.Name, Type: bt, Const: true, IsType: true})
	return nil
}

// constBit freezes a bit position expression and extracts its constant value.
func constBit(st *symtab.Table, e Expr) (int, error) {
	if err := e.Freeze(st); err != nil {
		return 0, err
	}

	iv, ok := e.Value().(types.IntValue)
	if !ok || !iv.V.IsInt64() {
		return 0, report.Raise(report.KindValue, e.Span(), "bit position `%s` is not a compile-time constant", e.Text())
	}

	return int(iv.V.Int64()), nil
}

func (sd *StructDecl) Freeze(st *symtab.Table) error {
	if !sd.beginFreeze() {
		return nil
	}

	stt := &types.StructType{Name: sd.Name}
	for _, field := range sd.Fields {
		ft, err := field.Spec.Resolve(st)
		if err != nil {
			return err
		}

		stt.Fields = append(stt.Fields, types.StructField{Name: field.Name, Type: ft})
	}

	sd.Type = stt
	st.Add(&symtab.Var{Name: sd.Name, Type: stt, Const: true, IsType: true})
	return nil
}

func (is *IncludeStmt) Freeze(st *symtab.Table) error {
	is.beginFreeze()
	return nil
}

func (f *File) Freeze(st *symtab.Table) error {
	if !f.beginFreeze() {
		return nil
	}

	// Tag the error with this file's identity: spliced include units nest as
	// File nodes, and their diagnostics must name the included file.
	if err := freezeAll(st, f.Stmts); err != nil {
		if cerr, ok := err.(*report.Error); ok && cerr.Unit == "" {
			cerr.Unit = f.Unit
		}

		return err
	}

	return nil
}
