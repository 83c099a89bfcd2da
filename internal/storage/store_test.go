package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsql/internal/schema"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), false)
}

func TestStore_LoadRecords_MissingFile(t *testing.T) {
	s := newTestStore(t)

	recs, err := s.LoadRecords("users")
	require.NoError(t, err)
	assert.Equal(t, []Record{}, recs)
}

func TestStore_LoadRecords_EmptyFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))
	require.NoError(t, os.WriteFile(s.TablePath("users"), nil, 0o644))

	recs, err := s.LoadRecords("users")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStore_SaveAndLoadRecords(t *testing.T) {
	s := newTestStore(t)

	in := []Record{
		{"id": "r1", "name": "Bob", "age": float64(30), "active": true},
		{"id": "r2", "name": "Eve", "age": nil, "active": false},
	}
	require.NoError(t, s.SaveRecords("users", in))

	out, err := s.LoadRecords("users")
	require.NoError(t, err)
	assert.Equal(t, in, out, "stored order and JSON-native values survive the round trip")
}

func TestStore_SaveRecords_NilWritesEmptyArray(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveRecords("users", nil))

	data, err := os.ReadFile(s.TablePath("users"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestStore_SaveReplacesWholeFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveRecords("users", []Record{{"id": "r1"}, {"id": "r2"}}))
	require.NoError(t, s.SaveRecords("users", []Record{{"id": "r2"}}))

	out, err := s.LoadRecords("users")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "r2", out[0]["id"])
}

func TestStore_LoadRecords_CorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))
	require.NoError(t, os.WriteFile(s.TablePath("users"), []byte("{not json"), 0o644))

	_, err := s.LoadRecords("users")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage: decode table users")
}

func TestStore_DeleteTable(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveRecords("users", []Record{{"id": "r1"}}))

	require.NoError(t, s.DeleteTable("users"))
	_, err := os.Stat(s.TablePath("users"))
	assert.True(t, os.IsNotExist(err))

	// deleting an unknown table is not an error
	require.NoError(t, s.DeleteTable("ghost"))
}

func TestStore_Registry(t *testing.T) {
	s := newTestStore(t)

	reg, err := s.LoadRegistry()
	require.NoError(t, err)
	assert.Empty(t, reg)

	sc, err := schema.New("users", []schema.Column{
		{Name: "id", Type: schema.DataType{Name: "INT"}, Constraints: []schema.Constraint{schema.PrimaryKey}},
		{Name: "name", Type: schema.DataType{Name: "VARCHAR", Size: 100}},
	}, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	sc.LastAutoIncrement = 7

	require.NoError(t, s.SaveRegistry(map[string]*schema.Schema{"users": sc}))

	loaded, err := s.LoadRegistry()
	require.NoError(t, err)
	require.Contains(t, loaded, "users")
	assert.Equal(t, sc, loaded["users"])
}

func TestStore_RegistryFileShape(t *testing.T) {
	s := newTestStore(t)
	sc, err := schema.New("users", []schema.Column{
		{Name: "id", Type: schema.DataType{Name: "INT"}},
	}, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, s.SaveRegistry(map[string]*schema.Schema{"users": sc}))

	data, err := os.ReadFile(filepath.Join(s.Dir(), "_schemas.json"))
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "users")
	assert.Equal(t, "users", raw["users"]["table_name"])
}

func TestStore_PrettyPrint(t *testing.T) {
	s := NewStore(t.TempDir(), true)
	require.NoError(t, s.SaveRecords("users", []Record{{"id": "r1"}}))

	data, err := os.ReadFile(s.TablePath("users"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ", "pretty mode writes indented JSON")
}

func TestRecord_Clone(t *testing.T) {
	rec := Record{"id": "r1", "age": float64(30)}
	cp := rec.Clone()
	cp["age"] = float64(31)
	assert.Equal(t, float64(30), rec["age"])
}
