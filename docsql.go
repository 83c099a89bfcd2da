// Package docsql is the top-level facade for the docsql engine: a SQL front
// end executed against record collections stored as JSON documents.
package docsql

import (
	"docsql/internal/sql/executor"
	"docsql/internal/storage"
)

// Result is the outcome of one executed statement.
type Result = executor.Result

// Executor runs SQL statements against a data directory.
type Executor = executor.Executor

// Open builds an executor over a JSON store rooted at dataDir.
func Open(dataDir string, prettyPrint bool) (*Executor, error) {
	return executor.New(storage.NewStore(dataDir, prettyPrint))
}
