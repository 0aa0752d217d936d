package ast

import (
	"strings"
)

// stmtText renders a single statement at indent level zero.
func stmtText(s Stmt) string {
	sb := strings.Builder{}
	s.writeText(&sb, 0)
	return sb.String()
}

// writeIndent writes the leading indentation for one statement line.
func writeIndent(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
}

// writeBlock renders a braced statement list.
func writeBlock(sb *strings.Builder, stmts []Stmt, indent int) {
	sb.WriteString("{\n")

	for _, stmt := range stmts {
		stmt.writeText(sb, indent+1)
		sb.WriteRune('\n')
	}

	writeIndent(sb, indent)
	sb.WriteRune('}')
}

// -----------------------------------------------------------------------------

// DeclStmt is a variable declaration with an optional initializer.
type DeclStmt struct {
	StmtBase

	Spec *TypeSpec
	Name string
	Init Expr
}

func (ds *DeclStmt) Text() string { return stmtText(ds) }

func (ds *DeclStmt) writeText(sb *strings.Builder, indent int) {
	writeIndent(sb, indent)
	sb.WriteString(ds.Spec.Text())
	sb.WriteRune(' ')
	sb.WriteString(ds.Name)

	if ds.Init != nil {
		sb.WriteString(" = ")
		sb.WriteString(ds.Init.Text())
	}

	sb.WriteRune(';')
}

// AssignStmt is an assignment statement.
type AssignStmt struct {
	StmtBase

	Lhs Expr
	Rhs Expr
}

func (as *AssignStmt) Text() string { return stmtText(as) }

func (as *AssignStmt) writeText(sb *strings.Builder, indent int) {
	writeIndent(sb, indent)
	sb.WriteString(as.Lhs.Text())
	sb.WriteString(" = ")
	sb.WriteString(as.Rhs.Text())
	sb.WriteRune(';')
}

// IncDecStmt is an increment or decrement statement.
type IncDecStmt struct {
	StmtBase

	Lhs Expr

	// Op is `++` or `--`.
	Op string
}

func (ids *IncDecStmt) Text() string { return stmtText(ids) }

func (ids *IncDecStmt) writeText(sb *strings.Builder, indent int) {
	writeIndent(sb, indent)
	sb.WriteString(ids.Lhs.Text())
	sb.WriteString(ids.Op)
	sb.WriteRune(';')
}

// ExprStmt is a bare expression (a call) used as a statement.
type ExprStmt struct {
	StmtBase

	Expr Expr
}

func (es *ExprStmt) Text() string { return stmtText(es) }

func (es *ExprStmt) writeText(sb *strings.Builder, indent int) {
	writeIndent(sb, indent)
	sb.WriteString(es.Expr.Text())
	sb.WriteRune(';')
}

// -----------------------------------------------------------------------------

// IfStmt is a conditional statement.  An `else if` chain is represented as an
// Else list containing a single nested IfStmt.
type IfStmt struct {
	StmtBase

	Cond Expr
	Then []Stmt
	Else []Stmt
}

func (is *IfStmt) Text() string { return stmtText(is) }

func (is *IfStmt) writeText(sb *strings.Builder, indent int) {
	writeIndent(sb, indent)
	sb.WriteString("if (")
	sb.WriteString(is.Cond.Text())
	sb.WriteString(") ")
	writeBlock(sb, is.Then, indent)

	if len(is.Else) == 1 {
		if elif, ok := is.Else[0].(*IfStmt); ok {
			sb.WriteString(" else ")
			elifText := strings.Builder{}
			elif.writeText(&elifText, indent)
			sb.WriteString(strings.TrimLeft(elifText.String(), " "))
			return
		}
	}

	if len(is.Else) > 0 {
		sb.WriteString(" else ")
		writeBlock(sb, is.Else, indent)
	}
}

// ForStmt is a C-style for loop.
type ForStmt struct {
	StmtBase

	Init   Stmt
	Cond   Expr
	Update Stmt
	Body   []Stmt
}

func (fs *ForStmt) Text() string { return stmtText(fs) }

func (fs *ForStmt) writeText(sb *strings.Builder, indent int) {
	writeIndent(sb, indent)
	sb.WriteString("for (")

	initText := strings.Builder{}
	fs.Init.writeText(&initText, 0)
	sb.WriteString(initText.String())

	sb.WriteRune(' ')
	sb.WriteString(fs.Cond.Text())
	sb.WriteString("; ")

	updateText := strings.Builder{}
	fs.Update.writeText(&updateText, 0)
	sb.WriteString(strings.TrimSuffix(updateText.String(), ";"))

	sb.WriteString(") ")
	writeBlock(sb, fs.Body, indent)
}

// ReturnStmt is a return statement with an optional value.
type ReturnStmt struct {
	StmtBase

	Expr Expr
}

func (rs *ReturnStmt) Text() string { return stmtText(rs) }

func (rs *ReturnStmt) writeText(sb *strings.Builder, indent int) {
	writeIndent(sb, indent)
	sb.WriteString("return")

	if rs.Expr != nil {
		sb.WriteRune(' ')
		sb.WriteString(rs.Expr.Text())
	}

	sb.WriteRune(';')
}
