package executor

import "fmt"

// SemanticErrorKind classifies statement validation failures that are not
// syntax errors.
type SemanticErrorKind uint8

const (
	TableNotFound SemanticErrorKind = iota
	TableExists
	ColumnNotFound
	ColumnCountMismatch
)

// SemanticError aborts the current statement before any write happens.
type SemanticError struct {
	Kind   SemanticErrorKind
	Table  string
	Column string
	Want   int
	Got    int
}

func (e *SemanticError) Error() string {
	switch e.Kind {
	case TableNotFound:
		return fmt.Sprintf("table '%s' does not exist", e.Table)
	case TableExists:
		return fmt.Sprintf("table '%s' already exists", e.Table)
	case ColumnNotFound:
		return fmt.Sprintf("column '%s' does not exist in table '%s'", e.Column, e.Table)
	case ColumnCountMismatch:
		return fmt.Sprintf("column count mismatch: expected %d, got %d", e.Want, e.Got)
	default:
		return "semantic error"
	}
}

// ConstraintKind classifies constraint violations.
type ConstraintKind uint8

const (
	NotNullViolation ConstraintKind = iota
	DuplicatePrimaryKey
	DuplicateUnique
)

// ConstraintError carries the offending column and value. It aborts only the
// in-flight statement; persisted state is untouched because writes happen
// after full validation.
type ConstraintError struct {
	Kind   ConstraintKind
	Column string
	Value  any
}

func (e *ConstraintError) Error() string {
	switch e.Kind {
	case NotNullViolation:
		return fmt.Sprintf("column '%s' cannot be NULL", e.Column)
	case DuplicatePrimaryKey:
		return fmt.Sprintf("duplicate value for primary key '%s': %v", e.Column, e.Value)
	case DuplicateUnique:
		return fmt.Sprintf("duplicate value for unique column '%s': %v", e.Column, e.Value)
	default:
		return "constraint violation"
	}
}
