package executor

import "docsql/internal/storage"

// Result is the outcome of one successfully executed statement. Exactly the
// fields relevant to the statement kind are set; the JSON shape is what the
// wire server returns to clients.
type Result struct {
	Message string `json:"message,omitempty"`

	// SELECT
	Columns []string         `json:"columns,omitempty"`
	Records []storage.Record `json:"records,omitempty"`
	Count   int              `json:"count,omitempty"`

	// DML counters
	Inserted int `json:"inserted_count,omitempty"`
	Updated  int `json:"updated_count,omitempty"`
	Deleted  int `json:"deleted_count,omitempty"`
}
