package walk

import (
	"udbc/ast"
	"udbc/report"
	"udbc/symtab"
	"udbc/types"
)

// walkStmts type-checks a statement list in order.
func (w *Walker) walkStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		w.walkStmt(stmt)
	}
}

// walkStmt type-checks a single statement.
func (w *Walker) walkStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.DeclStmt:
		w.walkDecl(v)
	case *ast.AssignStmt:
		w.walkAssign(v)
	case *ast.IncDecStmt:
		w.walkIncDec(v)
	case *ast.ExprStmt:
		w.walkExpr(v.Expr)
	case *ast.IfStmt:
		w.walkIf(v)
	case *ast.ForStmt:
		w.walkFor(v)
	case *ast.ReturnStmt:
		w.walkReturn(v)
	case *ast.FuncDecl:
		w.walkFuncDecl(v)
	case *ast.EnumDecl:
		if v.Type == nil {
			panic(report.RaiseInternal(v.Span(), "enum `%s` was not frozen before walking", v.Name))
		}

		w.walkTypeDecl(v.Name, v.Type)
	case *ast.BitfieldDecl:
		if v.Type == nil {
			panic(report.RaiseInternal(v.Span(), "bitfield `%s` was not frozen before walking", v.Name))
		}

		w.walkTypeDecl(v.Name, v.Type)
	case *ast.StructDecl:
		if v.Type == nil {
			panic(report.RaiseInternal(v.Span(), "struct `%s` was not frozen before walking", v.Name))
		}

		w.walkTypeDecl(v.Name, v.Type)
	case *ast.IncludeStmt:
		// Includes are spliced before checking; reaching one is a compiler
		// defect, not an input error.
		panic(report.RaiseInternal(v.Span(), "include `%s` was not spliced before walking", v.Path))
	case *ast.File:
		// A spliced include unit: its diagnostics must name the included
		// file, not the includer.
		inner := &Walker{unit: v.Unit, table: w.table, ret: w.ret, inFunc: w.inFunc}
		if err := inner.CheckStmts(v.Stmts); err != nil {
			panic(err)
		}
	default:
		panic(report.RaiseInternal(s.Span(), "unsupported statement node: %T", s))
	}
}

// -----------------------------------------------------------------------------

func (w *Walker) walkDecl(ds *ast.DeclStmt) {
	typ, err := ds.Spec.Resolve(w.table)
	if err != nil {
		panic(err)
	}

	v := &symtab.Var{Name: ds.Name, Type: typ}

	if ds.Init != nil {
		w.walkValueExpr(ds.Init)
		w.checkAssign(typ, ds.Init, "assign")

		if ast.IsConstName(ds.Name) {
			if !ds.Init.Constant() {
				w.raise(
					report.KindValue, ds.Init.Span(),
					"constant `%s` requires a compile-time-constant initializer", ds.Name,
				)
			}

			v.Const = true
			v.Value = ds.Init.Value()
		}
	} else if ast.IsConstName(ds.Name) {
		w.raise(report.KindValue, ds.Span(), "constant `%s` requires an initializer", ds.Name)
	}

	w.table.Add(v)
}

func (w *Walker) walkAssign(as *ast.AssignStmt) {
	lhsType := w.walkLvalue(as.Lhs)

	w.walkValueExpr(as.Rhs)
	w.checkAssign(lhsType, as.Rhs, "assign")
}

func (w *Walker) walkIncDec(ids *ast.IncDecStmt) {
	lhsType := w.walkLvalue(ids.Lhs)
	w.operand(ids.Lhs, lhsType)
}

// walkLvalue type-checks an assignment target: a mutable name, or an
// index/slice/field path rooted at one.
func (w *Walker) walkLvalue(e ast.Expr) types.Type {
	root := e
	for {
		switch v := root.(type) {
		case *ast.IndexExpr:
			root = v.Root
			continue
		case *ast.FieldExpr:
			root = v.Root
			continue
		}

		break
	}

	id, ok := root.(*ast.Ident)
	if !ok {
		w.raise(report.KindType, e.Span(), "`%s` is not assignable", e.Text())
	}

	v := w.lookup(id.Span(), id.Name)
	if v.Const {
		w.raise(report.KindType, e.Span(), "cannot assign to constant `%s`", id.Name)
	}

	if v.IsType {
		w.raise(report.KindType, e.Span(), "cannot assign to type `%s`", id.Name)
	}

	return w.walkValueExpr(e)
}

// -----------------------------------------------------------------------------

func (w *Walker) walkIf(is *ast.IfStmt) {
	w.checkCond(is.Cond)

	w.table.Push()
	w.walkStmts(is.Then)
	w.table.Pop()

	w.table.Push()
	w.walkStmts(is.Else)
	w.table.Pop()
}

func (w *Walker) walkFor(fs *ast.ForStmt) {
	w.table.Push()
	defer w.table.Pop()

	w.walkStmt(fs.Init)

	// References to the loop variable in the header and body see a varying
	// value, never the folded initial one.
	if decl, ok := fs.Init.(*ast.DeclStmt); ok {
		if v := w.table.Get(decl.Name); v != nil {
			w.table.Add(&symtab.Var{Name: v.Name, Type: v.Type})
		}
	}

	w.checkCond(fs.Cond)
	w.walkStmt(fs.Update)
	w.walkStmts(fs.Body)
}

func (w *Walker) walkReturn(rs *ast.ReturnStmt) {
	if rs.Expr == nil {
		if w.ret != nil {
			w.raise(report.KindType, rs.Span(), "return requires a %s value", w.ret.Repr())
		}

		return
	}

	if w.ret == nil {
		if w.inFunc {
			w.raise(report.KindType, rs.Span(), "function does not return a value")
		}

		w.raise(report.KindType, rs.Span(), "cannot return a value here")
	}

	w.walkValueExpr(rs.Expr)
	w.checkAssign(w.ret, rs.Expr, "return")
}

// -----------------------------------------------------------------------------

func (w *Walker) walkFuncDecl(fd *ast.FuncDecl) {
	if fd.Sig == nil {
		panic(report.RaiseInternal(fd.Span(), "function `%s` was not frozen before walking", fd.Name))
	}

	w.table.Add(&symtab.Var{Name: fd.Name, Type: fd.Sig, Const: true})

	w.table.Push()
	defer w.table.Pop()

	for _, param := range fd.Sig.Params {
		w.table.Add(&symtab.Var{Name: param.Name, Type: param.Type})
	}

	outerRet, outerInFunc := w.ret, w.inFunc
	w.ret, w.inFunc = fd.Sig.Return, true
	defer func() { w.ret, w.inFunc = outerRet, outerInFunc }()

	w.walkStmts(fd.Body)
}

// walkTypeDecl registers a declared type built during freezing.
func (w *Walker) walkTypeDecl(name string, typ types.Type) {
	w.table.Add(&symtab.Var{Name: name, Type: typ, Const: true, IsType: true})
}
