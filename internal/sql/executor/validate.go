package executor

import (
	"docsql/internal/schema"
	"docsql/internal/sql/eval"
	"docsql/internal/storage"
)

// checkConstraints validates one record against the schema and the given
// record set. Checks run in order NOT NULL, PRIMARY KEY uniqueness, UNIQUE
// uniqueness. excludeIdx names the record's own position in existing so an
// update does not collide with itself; pass -1 for inserts.
func checkConstraints(sc *schema.Schema, rec storage.Record, existing []storage.Record, excludeIdx int) error {
	for _, col := range sc.Columns {
		if col.Has(schema.NotNull) && rec[col.Name] == nil {
			return &ConstraintError{Kind: NotNullViolation, Column: col.Name}
		}
	}

	if pk := sc.PrimaryKey; pk != "" {
		if hasDuplicate(pk, rec[pk], existing, excludeIdx) {
			return &ConstraintError{Kind: DuplicatePrimaryKey, Column: pk, Value: rec[pk]}
		}
	}

	for _, col := range sc.UniqueColumns {
		if hasDuplicate(col, rec[col], existing, excludeIdx) {
			return &ConstraintError{Kind: DuplicateUnique, Column: col, Value: rec[col]}
		}
	}
	return nil
}

// hasDuplicate scans the live records for an equal value in the given column.
// NULL never collides.
func hasDuplicate(col string, value any, existing []storage.Record, excludeIdx int) bool {
	if value == nil {
		return false
	}
	for i, r := range existing {
		if i == excludeIdx {
			continue
		}
		if eval.Equal(r[col], value) {
			return true
		}
	}
	return false
}
