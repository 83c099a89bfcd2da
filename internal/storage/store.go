package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"docsql/internal/schema"
)

const registryFile = "_schemas.json"

// Store persists record sets and the schema registry as JSON files: one file
// per table holding an array of record objects, plus one shared registry file
// keyed by table name. Every save replaces the file's entire content; there is
// no incremental persistence.
type Store struct {
	dir    string
	pretty bool
}

// NewStore returns a store rooted at dir. When pretty is set, files are
// written indented.
func NewStore(dir string, pretty bool) *Store {
	return &Store{dir: dir, pretty: pretty}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// TablePath returns the file backing the given table.
func (s *Store) TablePath(table string) string {
	return filepath.Join(s.dir, table+".json")
}

func (s *Store) registryPath() string {
	return filepath.Join(s.dir, registryFile)
}

// LoadRecords reads the full record set of a table in stored order. A missing
// or empty file yields an empty set.
func (s *Store) LoadRecords(table string) ([]Record, error) {
	data, err := os.ReadFile(s.TablePath(table))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("storage: read table %s: %w", table, err)
	}
	if len(data) == 0 {
		return []Record{}, nil
	}

	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("storage: decode table %s: %w", table, err)
	}
	return recs, nil
}

// SaveRecords replaces the table's entire stored content.
func (s *Store) SaveRecords(table string, recs []Record) error {
	if recs == nil {
		recs = []Record{}
	}
	data, err := s.marshal(recs)
	if err != nil {
		return fmt.Errorf("storage: encode table %s: %w", table, err)
	}
	return s.writeFile(s.TablePath(table), data)
}

// DeleteTable removes the table's file. Deleting a table that was never
// written is not an error.
func (s *Store) DeleteTable(table string) error {
	err := os.Remove(s.TablePath(table))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: delete table %s: %w", table, err)
	}
	return nil
}

// LoadRegistry reads the schema registry. A missing file yields an empty
// registry.
func (s *Store) LoadRegistry() (map[string]*schema.Schema, error) {
	data, err := os.ReadFile(s.registryPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]*schema.Schema{}, nil
		}
		return nil, fmt.Errorf("storage: read schema registry: %w", err)
	}
	if len(data) == 0 {
		return map[string]*schema.Schema{}, nil
	}

	var reg map[string]*schema.Schema
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("storage: decode schema registry: %w", err)
	}
	return reg, nil
}

// SaveRegistry replaces the entire schema registry.
func (s *Store) SaveRegistry(reg map[string]*schema.Schema) error {
	data, err := s.marshal(reg)
	if err != nil {
		return fmt.Errorf("storage: encode schema registry: %w", err)
	}
	return s.writeFile(s.registryPath(), data)
}

func (s *Store) marshal(v any) ([]byte, error) {
	if s.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func (s *Store) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("storage: create data dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", filepath.Base(path), err)
	}
	return nil
}
