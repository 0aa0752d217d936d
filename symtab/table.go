package symtab

import (
	"udbc/arch"
	"udbc/report"
)

// Table is the compiler's name-resolution environment: a stack of lexical
// scopes, outermost first.  The outermost (global) scope is created with the
// table and can never be popped.  A single parsed AST may be type-checked
// against several configurations by deep-cloning the table once per check so
// that no two checks share mutable state.
type Table struct {
	scopes []map[string]*Var

	// cfg is the architecture configuration the table was seeded from, or
	// nil for a bare table.
	cfg *arch.Config
}

// NewTable creates a new symbol table holding only an empty global scope.
func NewTable() *Table {
	return &Table{scopes: []map[string]*Var{make(map[string]*Var)}}
}

// Config returns the architecture configuration the table was seeded from,
// or nil for a bare table.
func (t *Table) Config() *arch.Config { return t.cfg }

// Push pushes a new innermost scope onto the stack.
func (t *Table) Push() {
	t.scopes = append(t.scopes, make(map[string]*Var))
}

// Pop removes the innermost scope.  Popping the global scope is a usage error
// in the compiler itself and panics.
func (t *Table) Pop() {
	if len(t.scopes) == 1 {
		panic("symtab: popped the global scope")
	}

	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Depth returns the number of scopes currently on the stack.
func (t *Table) Depth() int { return len(t.scopes) }

// -----------------------------------------------------------------------------

// Add binds the variable in the innermost scope, overwriting any binding of
// the same name already in that scope.  Bindings in outer scopes are shadowed,
// not touched.
func (t *Table) Add(v *Var) {
	t.scopes[len(t.scopes)-1][v.Name] = v
}

// AddStrict binds the variable in the innermost scope, returning a
// duplicate-symbol error if the name is already bound in any currently
// visible scope.
func (t *Table) AddStrict(v *Var) error {
	if t.Has(v.Name) {
		return report.Raise(report.KindDuplicateSym, nil, "symbol already defined: `%s`", v.Name)
	}

	t.Add(v)
	return nil
}

// AddAbove binds the variable in the parent of the innermost scope, returning
// a duplicate-symbol error if that scope already binds the name.  This is
// used when a called function's parameters must be visible one level up from
// the function body's own local scope.
func (t *Table) AddAbove(v *Var) error {
	return t.AddAt(len(t.scopes)-2, v)
}

// AddAt binds the variable in the scope at the given stack index (0 is the
// global scope), returning a duplicate-symbol error if that scope already
// binds the name.
func (t *Table) AddAt(level int, v *Var) error {
	if level < 0 || level >= len(t.scopes) {
		panic("symtab: scope level out of range")
	}

	if _, ok := t.scopes[level][v.Name]; ok {
		return report.Raise(report.KindDuplicateSym, nil, "symbol already defined: `%s`", v.Name)
	}

	t.scopes[level][v.Name] = v
	return nil
}

// Get searches the scopes innermost to outermost and returns the first
// binding for the name, or nil if no visible scope binds it.
func (t *Table) Get(name string) *Var {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if v, ok := t.scopes[i][name]; ok {
			return v
		}
	}

	return nil
}

// Has returns whether any visible scope binds the name.
func (t *Table) Has(name string) bool {
	return t.Get(name) != nil
}

// -----------------------------------------------------------------------------

// DeepClone produces an independent copy of the entire scope stack.  Each Var
// is copied; if cloneValues is set, the Vars' values are deep-copied as well,
// otherwise the values are shared between the clone and the original.
func (t *Table) DeepClone(cloneValues bool) *Table {
	clone := &Table{scopes: make([]map[string]*Var, len(t.scopes)), cfg: t.cfg}

	for i, scope := range t.scopes {
		cloneScope := make(map[string]*Var, len(scope))
		for name, v := range scope {
			cloneScope[name] = v.Clone(cloneValues)
		}

		clone.scopes[i] = cloneScope
	}

	return clone
}
