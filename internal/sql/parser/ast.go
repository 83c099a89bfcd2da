package parser

import (
	"strings"

	"docsql/internal/schema"
)

// Statement is the root interface for all SQL statements. The AST is data
// only; nodes are never mutated after parsing. String renders the node back
// to SQL text that re-parses to a structurally identical tree.
type Statement interface {
	stmtNode()
	String() string
}

// Expr is the interface for WHERE expression nodes.
type Expr interface {
	exprNode()
	String() string
}

// ----- Literal values -----

// LiteralKind tags the source form of a literal. No coercion happens at parse
// time; the evaluator resolves the value when the predicate runs.
type LiteralKind uint8

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralNull
)

// Literal is a constant value as written in the statement. Text holds the
// unquoted string content or the number lexeme verbatim; it is empty for NULL.
type Literal struct {
	Kind LiteralKind
	Text string
}

func (*Literal) exprNode() {}

func (l *Literal) String() string {
	switch l.Kind {
	case LiteralString:
		return "'" + escapeString(l.Text) + "'"
	case LiteralNumber:
		return l.Text
	default:
		return "NULL"
	}
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}

// Ident is a column reference inside an expression.
type Ident struct {
	Name string
}

func (*Ident) exprNode() {}

func (i *Ident) String() string { return i.Name }

// ----- Compound expressions -----

// CompareOp is a comparison operator, kept verbatim ("!=" and "<>" both parse).
type CompareOp string

// LogicalOp is AND or OR.
type LogicalOp string

const (
	OpAnd LogicalOp = "AND"
	OpOr  LogicalOp = "OR"
)

// Comparison is `left op right` with op in =, !=, <>, <, >, <=, >=, LIKE.
type Comparison struct {
	Left  Expr
	Op    CompareOp
	Right Expr
}

func (*Comparison) exprNode() {}

func (c *Comparison) String() string {
	return c.Left.String() + " " + string(c.Op) + " " + c.Right.String()
}

// Logical joins two predicates with AND or OR. Same-precedence chains fold
// left-to-right, so the left arm is the deeper one. Parentheses in the source
// shape the tree but are not retained as nodes; String re-adds them around
// both arms so precedence survives re-parsing.
type Logical struct {
	Left  Expr
	Op    LogicalOp
	Right Expr
}

func (*Logical) exprNode() {}

func (l *Logical) String() string {
	return "(" + l.Left.String() + ") " + string(l.Op) + " (" + l.Right.String() + ")"
}

// ----- CREATE TABLE -----

type CreateTableStmt struct {
	TableName string
	Columns   []schema.Column
}

func (*CreateTableStmt) stmtNode() {}

func (s *CreateTableStmt) String() string {
	defs := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		defs[i] = col.String()
	}
	return "CREATE TABLE " + s.TableName + " (" + strings.Join(defs, ", ") + ")"
}

// ----- INSERT -----

// InsertStmt holds one or more value rows. Columns is nil for the positional
// form (VALUES map to the full schema column list in order).
type InsertStmt struct {
	TableName string
	Columns   []string
	Rows      [][]Literal
}

func (*InsertStmt) stmtNode() {}

func (s *InsertStmt) String() string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(s.TableName)
	if len(s.Columns) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(s.Columns, ", "))
		b.WriteString(")")
	}
	b.WriteString(" VALUES ")
	for i, row := range s.Rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(row[j].String())
		}
		b.WriteString(")")
	}
	return b.String()
}

// ----- SELECT -----

// SelectStmt projects either all columns (Star) or the named Columns.
type SelectStmt struct {
	TableName string
	Columns   []string
	Star      bool
	Where     Expr
}

func (*SelectStmt) stmtNode() {}

func (s *SelectStmt) String() string {
	cols := "*"
	if !s.Star {
		cols = strings.Join(s.Columns, ", ")
	}
	out := "SELECT " + cols + " FROM " + s.TableName
	if s.Where != nil {
		out += " WHERE " + s.Where.String()
	}
	return out
}

// ----- UPDATE -----

type Assignment struct {
	Column string
	Value  Literal
}

type UpdateStmt struct {
	TableName   string
	Assignments []Assignment
	Where       Expr
}

func (*UpdateStmt) stmtNode() {}

func (s *UpdateStmt) String() string {
	sets := make([]string, len(s.Assignments))
	for i, a := range s.Assignments {
		sets[i] = a.Column + " = " + a.Value.String()
	}
	out := "UPDATE " + s.TableName + " SET " + strings.Join(sets, ", ")
	if s.Where != nil {
		out += " WHERE " + s.Where.String()
	}
	return out
}

// ----- DELETE -----

// DeleteStmt with a nil Where removes every record of the table. That is the
// documented behavior, not an error.
type DeleteStmt struct {
	TableName string
	Where     Expr
}

func (*DeleteStmt) stmtNode() {}

func (s *DeleteStmt) String() string {
	out := "DELETE FROM " + s.TableName
	if s.Where != nil {
		out += " WHERE " + s.Where.String()
	}
	return out
}
