// Package compile holds the compiler's public entry points.  A Compiler owns
// the symbol table for one architecture configuration and moves source units
// through the unparsed -> parsed -> frozen -> type-checked pipeline.  The
// package never prints and never terminates the process: every failure is a
// *report.Error returned to the caller, and batch print-and-exit behavior
// belongs to the CLI wrapper.
package compile

import (
	"fmt"
	"os"
	"path/filepath"

	"udbc/arch"
	"udbc/ast"
	"udbc/report"
	"udbc/symtab"
	"udbc/syntax"
	"udbc/walk"
)

// UnitState tracks how far a source unit has moved through the pipeline.
type UnitState int

const (
	StateUnparsed = UnitState(iota)
	StateParsed
	StateFrozen
	StateChecked
)

// Unit is one compiled source unit: the root file plus all of its spliced
// includes.
type Unit struct {
	// Path is the root file's path, used as the unit identity in diagnostics.
	Path string

	// Src is the root file's raw source text, kept for error display.
	Src string

	// File is the parsed AST.  Include directives are replaced by the
	// included file's own AST, which keeps its own unit identity.
	File *ast.File

	// State is the unit's position in the pipeline.  Failure at any stage is
	// terminal for the unit.
	State UnitState
}

// Compiler compiles IDL source units against one architecture configuration.
type Compiler struct {
	table *symtab.Table
}

// New creates a compiler over an existing symbol table.
func New(table *symtab.Table) *Compiler {
	return &Compiler{table: table}
}

// NewFromConfig creates a compiler whose table is seeded from the given
// architecture configuration.
func NewFromConfig(cfg *arch.Config) (*Compiler, error) {
	table, err := symtab.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	return &Compiler{table: table}, nil
}

// Table returns the compiler's symbol table.  Global declarations from
// compiled files are registered into it.
func (c *Compiler) Table() *symtab.Table { return c.table }

// -----------------------------------------------------------------------------

// CompileFile parses a root unit, recursively splices its include directives,
// freezes the combined AST against the compiler's table, and type-checks it.
// Declarations the unit makes at global scope stay visible to later compiles.
func (c *Compiler) CompileFile(path string) (*Unit, error) {
	f, src, err := c.loadUnit(path, make(map[string]bool))
	if err != nil {
		return nil, err
	}

	unit := &Unit{Path: path, Src: src, File: f, State: StateParsed}

	if err := c.Freeze(unit); err != nil {
		return nil, err
	}

	if err := c.Check(unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// Freeze moves a parsed unit to the frozen state.  Freezing an already-frozen
// unit is a no-op.
func (c *Compiler) Freeze(unit *Unit) error {
	if unit.State >= StateFrozen {
		return nil
	}

	if err := unit.File.Freeze(c.table); err != nil {
		return err
	}

	unit.State = StateFrozen
	return nil
}

// Check type-checks a frozen unit against an independent clone of the
// compiler's table.  A frozen unit may be re-checked under many cloned tables.
func (c *Compiler) Check(unit *Unit) error {
	if err := c.Freeze(unit); err != nil {
		return err
	}

	w := walk.NewWalker(unit.Path, c.table.DeepClone(false))
	if err := w.CheckFile(unit.File); err != nil {
		return err
	}

	unit.State = StateChecked
	return nil
}

// -----------------------------------------------------------------------------

// loadUnit reads and parses one source file, recursively resolving include
// directives.  Each included file is parsed with its own path identity and
// spliced in as a nested File node; seen guards against include cycles.
func (c *Compiler) loadUnit(path string, seen map[string]bool) (*ast.File, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if seen[abs] {
		return nil, "", report.Raise(report.KindSyntax, nil, "include cycle through `%s`", path)
	}

	seen[abs] = true
	defer delete(seen, abs)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading source unit: %w", err)
	}

	f, err := syntax.ParseFile(path, string(data))
	if err != nil {
		return nil, "", err
	}

	for i, stmt := range f.Stmts {
		inc, ok := stmt.(*ast.IncludeStmt)
		if !ok {
			continue
		}

		if inc.Path == "" {
			return nil, "", &report.Error{
				Kind:    report.KindSyntax,
				Unit:    path,
				Span:    inc.Span(),
				Message: "include path is empty",
			}
		}

		target := inc.Path
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}

		sub, _, err := c.loadUnit(target, seen)
		if err != nil {
			return nil, "", err
		}

		f.Stmts[i] = sub
	}

	return f, string(data), nil
}
