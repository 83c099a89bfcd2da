package storage

// Reserved record fields, owned by the engine. They sit alongside the user
// columns unless the table declares a column of the same name, which takes
// precedence.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// Record is one stored row: user columns plus the reserved fields. Values are
// the JSON-native kinds (string, float64, bool, nil).
type Record map[string]any

// Clone returns a shallow copy. Values are scalars, so a shallow copy is a
// full copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
