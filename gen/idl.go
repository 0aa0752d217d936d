// Package gen holds the generator passes: tree walks over checked ASTs that
// lower them to derived textual forms.  Passes are free functions switching
// over the node kinds; they never mutate the tree.
package gen

import (
	"strings"

	"udbc/ast"
)

// Idl renders a node back to canonical pretty-printed IDL source.  Parsing
// the result yields a tree that evaluates identically (the round-trip
// property); exact byte equality with the input is not promised.
func Idl(node ast.Node) string {
	return node.Text()
}

// IdlStmts renders a statement list, one statement per line.
func IdlStmts(stmts []ast.Stmt) string {
	lines := make([]string, len(stmts))
	for i, stmt := range stmts {
		lines[i] = stmt.Text()
	}

	return strings.Join(lines, "\n")
}
