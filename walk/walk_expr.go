package walk

import (
	"math/big"

	"udbc/ast"
	"udbc/report"
	"udbc/types"
)

// walkExpr type-checks an expression, records its type on the node, and
// returns the type.  A nil return means the expression produces no value
// (a call to a function that returns nothing).
func (w *Walker) walkExpr(e ast.Expr) types.Type {
	switch v := e.(type) {
	case *ast.IntLit, *ast.BoolLit, *ast.StringLit:
		// Literal types are fixed during freezing.
		if e.Type() == nil {
			panic(report.RaiseInternal(e.Span(), "literal `%s` was not frozen before walking", e.Text()))
		}

		return e.Type()
	case *ast.Ident:
		return w.walkIdent(v)
	case *ast.BinaryExpr:
		return w.walkBinary(v)
	case *ast.UnaryExpr:
		return w.walkUnary(v)
	case *ast.TernaryExpr:
		return w.walkTernary(v)
	case *ast.IndexExpr:
		return w.walkIndex(v)
	case *ast.FieldExpr:
		return w.walkField(v)
	case *ast.CallExpr:
		return w.walkCall(v)
	default:
		panic(report.RaiseInternal(e.Span(), "unsupported expression node: %T", e))
	}
}

// walkValueExpr walks an expression that must produce a value.
func (w *Walker) walkValueExpr(e ast.Expr) types.Type {
	t := w.walkExpr(e)
	if t == nil {
		w.raise(report.KindType, e.Span(), "expression `%s` produces no value", e.Text())
	}

	return t
}

// operand extracts the bit-vector view of an expression used as an arithmetic
// operand.
func (w *Walker) operand(e ast.Expr, t types.Type) *types.BitsType {
	bits := types.OperandBits(t)
	if bits == nil {
		w.raise(report.KindType, e.Span(), "`%s` is not a bit vector: %s", e.Text(), t.Repr())
	}

	return bits
}

// -----------------------------------------------------------------------------

func (w *Walker) walkIdent(id *ast.Ident) types.Type {
	v := w.lookup(id.Span(), id.Name)
	if v.IsType {
		w.raise(report.KindType, id.Span(), "type `%s` used as a value", id.Name)
	}

	id.Decode = v.Decode
	id.SetType(v.Type)
	return v.Type
}

func (w *Walker) walkBinary(be *ast.BinaryExpr) types.Type {
	lt := w.walkValueExpr(be.Lhs)
	rt := w.walkValueExpr(be.Rhs)

	var result types.Type
	switch be.Op {
	case "+", "-", "*", "/", "%", "&", "|", "^":
		result = types.Reconcile(w.operand(be.Lhs, lt), w.operand(be.Rhs, rt))
	case "<<", ">>":
		// Shifts keep the left operand's width and signedness.
		lb := w.operand(be.Lhs, lt)
		w.operand(be.Rhs, rt)
		result = &types.BitsType{Width: lb.Width, Signed: lb.Signed}
	case "<", "<=", ">", ">=":
		w.operand(be.Lhs, lt)
		w.operand(be.Rhs, rt)
		result = types.BoolType{}
	case "==", "!=":
		w.checkEquatable(be, lt, rt)
		result = types.BoolType{}
	case "&&", "||":
		if !types.Equals(lt, types.BoolType{}) || !types.Equals(rt, types.BoolType{}) {
			w.raise(
				report.KindType, be.Span(),
				"operands of `%s` must be Booleans, not %s and %s", be.Op, lt.Repr(), rt.Repr(),
			)
		}

		result = types.BoolType{}
	default:
		panic(report.RaiseInternal(be.Span(), "unsupported binary operator: `%s`", be.Op))
	}

	be.SetType(result)
	return result
}

// checkEquatable validates the operand types of `==`/`!=`: both Boolean, the
// same enum, or both bit vectors.
func (w *Walker) checkEquatable(be *ast.BinaryExpr, lt, rt types.Type) {
	if types.Equals(lt, types.BoolType{}) && types.Equals(rt, types.BoolType{}) {
		return
	}

	le, lIsEnum := lt.(*types.EnumType)
	re, rIsEnum := rt.(*types.EnumType)
	if lIsEnum && rIsEnum && le != re {
		w.raise(report.KindType, be.Span(), "cannot compare %s against %s", le.Repr(), re.Repr())
	}

	if types.OperandBits(lt) == nil || types.OperandBits(rt) == nil {
		w.raise(report.KindType, be.Span(), "cannot compare %s against %s", lt.Repr(), rt.Repr())
	}
}

func (w *Walker) walkUnary(ue *ast.UnaryExpr) types.Type {
	ot := w.walkValueExpr(ue.Operand)

	var result types.Type
	switch ue.Op {
	case "-":
		bits := w.operand(ue.Operand, ot)
		result = &types.BitsType{Width: bits.Width, Signed: true}
	case "~":
		bits := w.operand(ue.Operand, ot)
		result = &types.BitsType{Width: bits.Width, Signed: bits.Signed}
	case "!":
		if !types.Equals(ot, types.BoolType{}) {
			w.raise(report.KindType, ue.Span(), "operand of `!` must be a Boolean, not %s", ot.Repr())
		}

		result = types.BoolType{}
	default:
		panic(report.RaiseInternal(ue.Span(), "unsupported unary operator: `%s`", ue.Op))
	}

	ue.SetType(result)
	return result
}

func (w *Walker) walkTernary(te *ast.TernaryExpr) types.Type {
	w.checkCond(te.Cond)

	tt := w.walkValueExpr(te.Then)
	et := w.walkValueExpr(te.Else)

	var result types.Type
	switch {
	case types.Equals(tt, et):
		result = tt
	case types.OperandBits(tt) != nil && types.OperandBits(et) != nil:
		result = types.Reconcile(types.OperandBits(tt), types.OperandBits(et))
	default:
		w.raise(report.KindType, te.Span(), "branches have incompatible types: %s and %s", tt.Repr(), et.Repr())
	}

	te.SetType(result)
	return result
}

// -----------------------------------------------------------------------------

func (w *Walker) walkIndex(ie *ast.IndexExpr) types.Type {
	rt := w.walkValueExpr(ie.Root)

	if at, ok := rt.(*types.ArrayType); ok {
		if ie.Lo != nil {
			w.raise(report.KindType, ie.Span(), "cannot bit-slice an array")
		}

		w.operand(ie.Hi, w.walkValueExpr(ie.Hi))
		ie.SetType(at.Elem)
		return at.Elem
	}

	rootBits := w.operand(ie.Root, rt)

	if ie.Lo == nil {
		w.operand(ie.Hi, w.walkValueExpr(ie.Hi))

		// Reject constant indices outside the vector.
		if hi, ok := ie.Hi.Value().(types.IntValue); ok {
			w.checkBitBound(ie, hi.V, rootBits.Width)
		}

		one := &types.BitsType{Width: 1}
		ie.SetType(one)
		return one
	}

	// Slice bounds must be compile-time constants: the result width depends
	// on them.
	w.walkValueExpr(ie.Hi)
	w.walkValueExpr(ie.Lo)

	hi, hiOk := ie.Hi.Value().(types.IntValue)
	lo, loOk := ie.Lo.Value().(types.IntValue)
	if !hiOk || !loOk {
		w.raise(report.KindValue, ie.Span(), "bit range bounds must be compile-time constants")
	}

	w.checkBitBound(ie, hi.V, rootBits.Width)
	w.checkBitBound(ie, lo.V, rootBits.Width)

	if hi.V.Cmp(lo.V) < 0 {
		w.raise(report.KindType, ie.Span(), "illegal bit range [%s:%s]", hi.V, lo.V)
	}

	width := int(new(big.Int).Sub(hi.V, lo.V).Int64()) + 1
	sliced := &types.BitsType{Width: width}
	ie.SetType(sliced)
	return sliced
}

// checkBitBound validates a constant bit position against the vector width.
func (w *Walker) checkBitBound(ie *ast.IndexExpr, bit *big.Int, width int) {
	if bit.Sign() < 0 || !bit.IsInt64() || bit.Int64() >= int64(width) {
		w.raise(report.KindType, ie.Span(), "bit position %s is outside a %d-bit vector", bit, width)
	}
}

func (w *Walker) walkField(fe *ast.FieldExpr) types.Type {
	// An enum member reference roots at the enum type's name.
	if rootID, ok := fe.Root.(*ast.Ident); ok {
		if v := w.table.Get(rootID.Name); v != nil && v.IsType {
			et, ok := v.Type.(*types.EnumType)
			if !ok {
				w.raise(report.KindType, fe.Span(), "type `%s` has no members", rootID.Name)
			}

			if _, ok := et.MemberValue(fe.Field); !ok {
				w.raise(report.KindType, fe.Span(), "enum %s has no member `%s`", et.Name, fe.Field)
			}

			fe.SetType(et)
			return et
		}
	}

	rt := w.walkValueExpr(fe.Root)

	switch root := rt.(type) {
	case *types.BitfieldType:
		field, ok := root.Field(fe.Field)
		if !ok {
			w.raise(report.KindType, fe.Span(), "bitfield %s has no field `%s`", root.Name, fe.Field)
		}

		ft := &types.BitsType{Width: field.Width()}
		fe.SetType(ft)
		return ft
	case *types.StructType:
		field, ok := root.Field(fe.Field)
		if !ok {
			w.raise(report.KindType, fe.Span(), "struct %s has no field `%s`", root.Name, fe.Field)
		}

		fe.SetType(field.Type)
		return field.Type
	default:
		w.raise(report.KindType, fe.Span(), "%s has no fields", rt.Repr())
		return nil
	}
}
