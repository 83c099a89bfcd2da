package schema

import (
	"fmt"
	"strings"
	"time"
)

// Constraint is a column-level rule enforced on every write.
type Constraint string

const (
	PrimaryKey    Constraint = "PRIMARY KEY"
	Unique        Constraint = "UNIQUE"
	NotNull       Constraint = "NOT NULL"
	AutoIncrement Constraint = "AUTO_INCREMENT"
)

// DataType is a SQL column type with an optional size, e.g. VARCHAR(100).
type DataType struct {
	Name string `json:"type"`
	Size int    `json:"size,omitempty"`
}

func (t DataType) String() string {
	if t.Size > 0 {
		return fmt.Sprintf("%s(%d)", t.Name, t.Size)
	}
	return t.Name
}

// Column is one column definition of a table.
type Column struct {
	Name        string       `json:"name"`
	Type        DataType     `json:"data_type"`
	Constraints []Constraint `json:"constraints,omitempty"`
}

// Has reports whether the column carries the given constraint.
func (c Column) Has(con Constraint) bool {
	for _, x := range c.Constraints {
		if x == con {
			return true
		}
	}
	return false
}

func (c Column) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte(' ')
	b.WriteString(c.Type.String())
	for _, con := range c.Constraints {
		b.WriteByte(' ')
		b.WriteString(string(con))
	}
	return b.String()
}

// Schema describes one table: ordered column definitions plus a summary of
// the constraints the engine has to check on writes. The auto-increment
// counter is persisted here so generated values stay monotone even after
// the record holding the current maximum is deleted.
type Schema struct {
	TableName           string    `json:"table_name"`
	Columns             []Column  `json:"columns"`
	PrimaryKey          string    `json:"primary_key,omitempty"`
	UniqueColumns       []string  `json:"unique_columns,omitempty"`
	AutoIncrementColumn string    `json:"auto_increment_column,omitempty"`
	LastAutoIncrement   int64     `json:"last_auto_increment,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// New builds a Schema from parsed column definitions. It rejects duplicate
// column names, more than one PRIMARY KEY and more than one AUTO_INCREMENT
// column.
func New(table string, cols []Column, createdAt time.Time) (*Schema, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("schema: table %q has no columns", table)
	}

	s := &Schema{
		TableName: table,
		Columns:   cols,
		CreatedAt: createdAt,
	}

	seen := make(map[string]bool, len(cols))
	for _, col := range cols {
		if seen[col.Name] {
			return nil, fmt.Errorf("schema: duplicate column %q in table %q", col.Name, table)
		}
		seen[col.Name] = true

		if col.Has(PrimaryKey) {
			if s.PrimaryKey != "" {
				return nil, fmt.Errorf("schema: table %q has more than one PRIMARY KEY column", table)
			}
			s.PrimaryKey = col.Name
		}
		if col.Has(Unique) {
			s.UniqueColumns = append(s.UniqueColumns, col.Name)
		}
		if col.Has(AutoIncrement) {
			if s.AutoIncrementColumn != "" {
				return nil, fmt.Errorf("schema: table %q has more than one AUTO_INCREMENT column", table)
			}
			s.AutoIncrementColumn = col.Name
		}
	}

	return s, nil
}

// Column returns the definition of the named column.
func (s *Schema) Column(name string) (Column, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// HasColumn reports whether the named column is part of the table.
func (s *Schema) HasColumn(name string) bool {
	_, ok := s.Column(name)
	return ok
}

// ColumnNames returns the user column names in definition order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}
