package compile

import (
	"math/big"

	"udbc/ast"
	"udbc/report"
	"udbc/symtab"
	"udbc/types"
)

// MaxUnrollSteps bounds constant-time loop unrolling.  Loops over extension
// lists and register indices stay far below it; anything past it is treated
// as a non-terminating input.
const MaxUnrollSteps = 4096

// UnrollFor evaluates a frozen for loop at compile time, returning the value
// the loop variable takes on each iteration.  The loop must declare its
// variable with a constant initializer, and the condition and update must be
// expressions over the loop variable and compile-time constants.  Used when a
// constraint-style boolean expression must be lowered to a structured form
// with the loop expanded.
func UnrollFor(loop *ast.ForStmt, table *symtab.Table) ([]*big.Int, error) {
	decl, ok := loop.Init.(*ast.DeclStmt)
	if !ok {
		return nil, report.Raise(report.KindValue, loop.Span(), "loop init must declare the loop variable")
	}

	if decl.Init == nil {
		return nil, report.Raise(report.KindValue, decl.Span(), "loop variable `%s` has no initializer", decl.Name)
	}

	cur, err := evalConst(decl.Init, table, decl.Name, nil)
	if err != nil {
		return nil, err
	}

	var steps []*big.Int
	for {
		if len(steps) >= MaxUnrollSteps {
			return nil, report.Raise(
				report.KindValue, loop.Span(),
				"loop did not terminate within %d iterations", MaxUnrollSteps,
			)
		}

		cont, err := evalCond(loop.Cond, table, decl.Name, cur)
		if err != nil {
			return nil, err
		}

		if !cont {
			return steps, nil
		}

		steps = append(steps, cur)

		if cur, err = applyUpdate(loop.Update, table, decl.Name, cur); err != nil {
			return nil, err
		}
	}
}

// applyUpdate computes the loop variable's next value from the update
// statement: `i++`, `i--`, or `i = expr`.
func applyUpdate(update ast.Stmt, table *symtab.Table, loopVar string, cur *big.Int) (*big.Int, error) {
	switch u := update.(type) {
	case *ast.IncDecStmt:
		if !isLoopVarRef(u.Lhs, loopVar) {
			return nil, report.Raise(report.KindValue, u.Span(), "loop update must modify `%s`", loopVar)
		}

		if u.Op == "++" {
			return new(big.Int).Add(cur, big.NewInt(1)), nil
		}

		return new(big.Int).Sub(cur, big.NewInt(1)), nil
	case *ast.AssignStmt:
		if !isLoopVarRef(u.Lhs, loopVar) {
			return nil, report.Raise(report.KindValue, u.Span(), "loop update must modify `%s`", loopVar)
		}

		return evalConst(u.Rhs, table, loopVar, cur)
	default:
		return nil, report.Raise(report.KindValue, update.Span(), "loop update is not statically evaluatable")
	}
}

func isLoopVarRef(e ast.Expr, name string) bool {
	id, ok := e.(*ast.Ident)
	return ok && id.Name == name
}

// -----------------------------------------------------------------------------

// evalCond evaluates a loop condition with the loop variable bound.
func evalCond(cond ast.Expr, table *symtab.Table, loopVar string, cur *big.Int) (bool, error) {
	v, err := evalValue(cond, table, loopVar, cur)
	if err != nil {
		return false, err
	}

	b, ok := v.(types.BoolValue)
	if !ok {
		return false, report.Raise(report.KindType, cond.Span(), "loop condition `%s` is not a Boolean", cond.Text())
	}

	return bool(b), nil
}

// evalConst evaluates an expression to a constant integer with the loop
// variable bound to cur (nil when evaluating the initializer).
func evalConst(e ast.Expr, table *symtab.Table, loopVar string, cur *big.Int) (*big.Int, error) {
	v, err := evalValue(e, table, loopVar, cur)
	if err != nil {
		return nil, err
	}

	iv, ok := v.(types.IntValue)
	if !ok {
		return nil, report.Raise(report.KindValue, e.Span(), "`%s` is not a compile-time-constant integer", e.Text())
	}

	return iv.V, nil
}

// evalValue is a small interpreter over the constant-foldable expression
// subset: literals, baked constants, the loop variable, and operator
// applications.  Anything else makes the loop non-unrollable.
func evalValue(e ast.Expr, table *symtab.Table, loopVar string, cur *big.Int) (types.Value, error) {
	// Values baked during freezing take priority.
	if e.Constant() {
		return e.Value(), nil
	}

	switch v := e.(type) {
	case *ast.Ident:
		if v.Name == loopVar && cur != nil {
			return types.NewIntValue(cur), nil
		}

		if sym := table.Get(v.Name); sym != nil && sym.Const && sym.Value != nil {
			return sym.Value, nil
		}

		return nil, report.Raise(report.KindValue, v.Span(), "`%s` is not a compile-time constant", v.Name)
	case *ast.BinaryExpr:
		lhs, err := evalValue(v.Lhs, table, loopVar, cur)
		if err != nil {
			return nil, err
		}

		rhs, err := evalValue(v.Rhs, table, loopVar, cur)
		if err != nil {
			return nil, err
		}

		out, err := ast.FoldBinary(v.Op, lhs, rhs, v.Span())
		if err != nil {
			return nil, err
		}

		if out == nil {
			return nil, report.Raise(report.KindValue, v.Span(), "`%s` does not fold to a constant", v.Text())
		}

		return out, nil
	case *ast.UnaryExpr:
		operand, err := evalValue(v.Operand, table, loopVar, cur)
		if err != nil {
			return nil, err
		}

		if out := ast.FoldUnary(v.Op, operand, v.Operand.Type()); out != nil {
			return out, nil
		}

		return nil, report.Raise(report.KindValue, v.Span(), "`%s` does not fold to a constant", v.Text())
	case *ast.TernaryExpr:
		cond, err := evalValue(v.Cond, table, loopVar, cur)
		if err != nil {
			return nil, err
		}

		b, ok := cond.(types.BoolValue)
		if !ok {
			return nil, report.Raise(report.KindType, v.Cond.Span(), "condition `%s` is not a Boolean", v.Cond.Text())
		}

		if b {
			return evalValue(v.Then, table, loopVar, cur)
		}

		return evalValue(v.Else, table, loopVar, cur)
	default:
		return nil, report.Raise(report.KindValue, e.Span(), "`%s` is not statically evaluatable", e.Text())
	}
}
