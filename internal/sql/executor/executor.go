// Package executor orchestrates statement execution: it parses SQL text,
// validates it against the schema registry, applies the change in memory and
// persists the result with at most one record-file write-back per statement.
// A statement that fails validation never touches persisted state.
package executor

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"docsql/internal/schema"
	"docsql/internal/sql/eval"
	"docsql/internal/sql/parser"
	"docsql/internal/storage"
)

// Store is the persistence seam the executor runs against. Production code
// passes *storage.Store; tests can inject fakes.
type Store interface {
	LoadRecords(table string) ([]storage.Record, error)
	SaveRecords(table string, recs []storage.Record) error
	DeleteTable(table string) error
	LoadRegistry() (map[string]*schema.Schema, error)
	SaveRegistry(reg map[string]*schema.Schema) error
}

// Executor executes SQL statements against a Store. It is not safe for
// concurrent use: one statement runs to completion before the next starts.
type Executor struct {
	store    Store
	registry map[string]*schema.Schema

	// injectable for unit tests
	now   func() time.Time
	newID func() string
}

// New loads the schema registry and returns a ready Executor.
func New(store Store) (*Executor, error) {
	reg, err := store.LoadRegistry()
	if err != nil {
		return nil, err
	}
	return &Executor{
		store:    store,
		registry: reg,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// Execute parses and runs one SQL statement.
func (e *Executor) Execute(sql string) (*Result, error) {
	stmt, err := parser.Parse(sql)
	if err != nil {
		return nil, err
	}

	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		return e.execCreateTable(s)
	case *parser.InsertStmt:
		return e.execInsert(s)
	case *parser.SelectStmt:
		return e.execSelect(s)
	case *parser.UpdateStmt:
		return e.execUpdate(s)
	case *parser.DeleteStmt:
		return e.execDelete(s)
	default:
		return nil, fmt.Errorf("executor: unsupported statement %T", stmt)
	}
}

// ----- CREATE TABLE -----

func (e *Executor) execCreateTable(s *parser.CreateTableStmt) (*Result, error) {
	if _, exists := e.registry[s.TableName]; exists {
		return nil, &SemanticError{Kind: TableExists, Table: s.TableName}
	}

	sc, err := schema.New(s.TableName, s.Columns, e.now())
	if err != nil {
		return nil, err
	}

	e.registry[s.TableName] = sc
	if err := e.store.SaveRegistry(e.registry); err != nil {
		delete(e.registry, s.TableName)
		return nil, err
	}
	if err := e.store.SaveRecords(s.TableName, nil); err != nil {
		return nil, err
	}

	return &Result{Message: fmt.Sprintf("table '%s' created", s.TableName)}, nil
}

// ----- INSERT -----

func (e *Executor) execInsert(s *parser.InsertStmt) (*Result, error) {
	sc, ok := e.registry[s.TableName]
	if !ok {
		return nil, &SemanticError{Kind: TableNotFound, Table: s.TableName}
	}

	recs, err := e.store.LoadRecords(s.TableName)
	if err != nil {
		return nil, err
	}

	// Auto-increment base: the persisted counter, bumped to the stored
	// maximum in case the files were written by an older engine.
	next := sc.LastAutoIncrement
	if col := sc.AutoIncrementColumn; col != "" {
		for _, rec := range recs {
			if f, ok := numberOf(rec[col]); ok && int64(f) > next {
				next = int64(f)
			}
		}
	}

	// Validate every row before anything is persisted; the first violation
	// aborts the whole statement.
	combined := append([]storage.Record{}, recs...)
	staged := make([]storage.Record, 0, len(s.Rows))
	for _, row := range s.Rows {
		rec, err := buildRecord(sc, s.Columns, row)
		if err != nil {
			return nil, err
		}

		if col := sc.AutoIncrementColumn; col != "" {
			if rec[col] == nil {
				next++
				rec[col] = float64(next)
			} else if f, ok := numberOf(rec[col]); ok && int64(f) > next {
				next = int64(f)
			}
		}

		if err := checkConstraints(sc, rec, combined, -1); err != nil {
			return nil, err
		}
		combined = append(combined, rec)
		staged = append(staged, rec)
	}

	// A user-declared column shadows the reserved field of the same name;
	// the engine only fills the ones it owns.
	ts := e.timestamp()
	for _, rec := range staged {
		if !sc.HasColumn(storage.FieldID) {
			rec[storage.FieldID] = e.newID()
		}
		if !sc.HasColumn(storage.FieldCreatedAt) {
			rec[storage.FieldCreatedAt] = ts
		}
		if !sc.HasColumn(storage.FieldUpdatedAt) {
			rec[storage.FieldUpdatedAt] = ts
		}
		recs = append(recs, rec)
	}

	// Counter first: if the record write fails after it, the statement leaves
	// behind a few skipped values, never persisted rows.
	if next != sc.LastAutoIncrement {
		prev := sc.LastAutoIncrement
		sc.LastAutoIncrement = next
		if err := e.store.SaveRegistry(e.registry); err != nil {
			sc.LastAutoIncrement = prev
			return nil, err
		}
	}
	if err := e.store.SaveRecords(s.TableName, recs); err != nil {
		return nil, err
	}

	return &Result{
		Message:  fmt.Sprintf("inserted %d record(s) into '%s'", len(staged), s.TableName),
		Inserted: len(staged),
	}, nil
}

// buildRecord maps one VALUES tuple onto the schema columns. The named form
// leaves unspecified columns NULL; the positional form requires the row arity
// to match the full column count.
func buildRecord(sc *schema.Schema, cols []string, row []parser.Literal) (storage.Record, error) {
	rec := make(storage.Record, len(sc.Columns))

	if len(cols) > 0 {
		if len(row) != len(cols) {
			return nil, &SemanticError{Kind: ColumnCountMismatch, Table: sc.TableName, Want: len(cols), Got: len(row)}
		}
		for _, col := range cols {
			if !sc.HasColumn(col) {
				return nil, &SemanticError{Kind: ColumnNotFound, Table: sc.TableName, Column: col}
			}
		}
		for _, col := range sc.Columns {
			rec[col.Name] = nil
		}
		for i, col := range cols {
			rec[col] = literalValue(row[i])
		}
		return rec, nil
	}

	if len(row) != len(sc.Columns) {
		return nil, &SemanticError{Kind: ColumnCountMismatch, Table: sc.TableName, Want: len(sc.Columns), Got: len(row)}
	}
	for i, col := range sc.Columns {
		rec[col.Name] = literalValue(row[i])
	}
	return rec, nil
}

// ----- SELECT -----

func (e *Executor) execSelect(s *parser.SelectStmt) (*Result, error) {
	sc, ok := e.registry[s.TableName]
	if !ok {
		return nil, &SemanticError{Kind: TableNotFound, Table: s.TableName}
	}
	if !s.Star {
		for _, col := range s.Columns {
			if !sc.HasColumn(col) && !reservedField(col) {
				return nil, &SemanticError{Kind: ColumnNotFound, Table: s.TableName, Column: col}
			}
		}
	}

	recs, err := e.store.LoadRecords(s.TableName)
	if err != nil {
		return nil, err
	}

	var cols []string
	if s.Star {
		cols = sc.ColumnNames()
		for _, f := range []string{storage.FieldID, storage.FieldCreatedAt, storage.FieldUpdatedAt} {
			if !sc.HasColumn(f) {
				cols = append(cols, f)
			}
		}
	} else {
		cols = s.Columns
	}

	// Matched records keep storage (insertion) order; no implicit sorting.
	out := []storage.Record{}
	for _, rec := range recs {
		if s.Where != nil {
			match, err := eval.Evaluate(s.Where, rec)
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}
		if s.Star {
			out = append(out, rec.Clone())
			continue
		}
		selected := make(storage.Record, len(cols))
		for _, col := range cols {
			selected[col] = rec[col]
		}
		out = append(out, selected)
	}

	return &Result{Columns: cols, Records: out, Count: len(out)}, nil
}

// ----- UPDATE -----

func (e *Executor) execUpdate(s *parser.UpdateStmt) (*Result, error) {
	sc, ok := e.registry[s.TableName]
	if !ok {
		return nil, &SemanticError{Kind: TableNotFound, Table: s.TableName}
	}
	for _, a := range s.Assignments {
		if !sc.HasColumn(a.Column) {
			// Engine-owned fields are writable only when the table declares
			// a column of that name.
			if reservedField(a.Column) {
				return nil, fmt.Errorf("executor: column '%s' is read-only", a.Column)
			}
			return nil, &SemanticError{Kind: ColumnNotFound, Table: s.TableName, Column: a.Column}
		}
	}

	recs, err := e.store.LoadRecords(s.TableName)
	if err != nil {
		return nil, err
	}

	ts := e.timestamp()
	updated := 0
	for i, rec := range recs {
		if s.Where != nil {
			match, err := eval.Evaluate(s.Where, rec)
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}

		merged := rec.Clone()
		for _, a := range s.Assignments {
			merged[a.Column] = literalValue(a.Value)
		}

		// Re-validate the merged record; the record's own stored row is
		// excluded by index so it can keep its current unique values.
		if err := checkConstraints(sc, merged, recs, i); err != nil {
			return nil, err
		}

		if !sc.HasColumn(storage.FieldUpdatedAt) {
			merged[storage.FieldUpdatedAt] = ts
		}
		recs[i] = merged
		updated++
	}

	if updated > 0 {
		if err := e.store.SaveRecords(s.TableName, recs); err != nil {
			return nil, err
		}
	}

	return &Result{
		Message: fmt.Sprintf("updated %d record(s) in '%s'", updated, s.TableName),
		Updated: updated,
	}, nil
}

// ----- DELETE -----

func (e *Executor) execDelete(s *parser.DeleteStmt) (*Result, error) {
	if _, ok := e.registry[s.TableName]; !ok {
		return nil, &SemanticError{Kind: TableNotFound, Table: s.TableName}
	}

	recs, err := e.store.LoadRecords(s.TableName)
	if err != nil {
		return nil, err
	}

	// No WHERE clause removes every record; that is the documented contract.
	kept := make([]storage.Record, 0, len(recs))
	for _, rec := range recs {
		if s.Where != nil {
			match, err := eval.Evaluate(s.Where, rec)
			if err != nil {
				return nil, err
			}
			if !match {
				kept = append(kept, rec)
			}
		}
	}

	deleted := len(recs) - len(kept)
	if deleted > 0 {
		if err := e.store.SaveRecords(s.TableName, kept); err != nil {
			return nil, err
		}
	}

	return &Result{
		Message: fmt.Sprintf("deleted %d record(s) from '%s'", deleted, s.TableName),
		Deleted: deleted,
	}, nil
}

// ----- Catalog operations -----

// ListTables returns all registered table names, sorted.
func (e *Executor) ListTables() []string {
	names := make([]string, 0, len(e.registry))
	for name := range e.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DescribeTable returns the schema of the named table.
func (e *Executor) DescribeTable(name string) (*schema.Schema, error) {
	sc, ok := e.registry[name]
	if !ok {
		return nil, &SemanticError{Kind: TableNotFound, Table: name}
	}
	return sc, nil
}

// DropTable removes the table's schema entry and its record file.
func (e *Executor) DropTable(name string) error {
	if _, ok := e.registry[name]; !ok {
		return &SemanticError{Kind: TableNotFound, Table: name}
	}
	delete(e.registry, name)
	if err := e.store.SaveRegistry(e.registry); err != nil {
		return err
	}
	return e.store.DeleteTable(name)
}

// ----- helpers -----

func (e *Executor) timestamp() string {
	return e.now().Format(time.RFC3339Nano)
}

// literalValue resolves a parsed literal to its stored form: strings stay
// strings, numbers become float64 (the JSON-native kind), NULL becomes nil.
func literalValue(lit parser.Literal) any {
	switch lit.Kind {
	case parser.LiteralNull:
		return nil
	case parser.LiteralNumber:
		f, _ := strconv.ParseFloat(lit.Text, 64)
		return f
	default:
		return lit.Text
	}
}

func numberOf(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

func reservedField(name string) bool {
	return name == storage.FieldID || name == storage.FieldCreatedAt || name == storage.FieldUpdatedAt
}
