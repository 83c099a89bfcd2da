package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsql/internal/sql/parser"
	"docsql/internal/storage"
)

// whereOf parses a SELECT with the given predicate and returns its WHERE tree.
func whereOf(t *testing.T, cond string) parser.Expr {
	t.Helper()
	stmt, err := parser.Parse("SELECT * FROM t WHERE " + cond)
	require.NoError(t, err)
	return stmt.(*parser.SelectStmt).Where
}

func evalOn(t *testing.T, cond string, rec storage.Record) bool {
	t.Helper()
	ok, err := Evaluate(whereOf(t, cond), rec)
	require.NoError(t, err)
	return ok
}

func TestEvaluate_Comparisons(t *testing.T) {
	rec := storage.Record{"age": float64(30), "name": "Bob"}

	assert.True(t, evalOn(t, "age = 30", rec))
	assert.False(t, evalOn(t, "age = 31", rec))
	assert.True(t, evalOn(t, "age != 31", rec))
	assert.True(t, evalOn(t, "age <> 31", rec))
	assert.True(t, evalOn(t, "age > 21", rec))
	assert.False(t, evalOn(t, "age < 21", rec))
	assert.True(t, evalOn(t, "age >= 30", rec))
	assert.True(t, evalOn(t, "age <= 30", rec))
	assert.True(t, evalOn(t, "name = 'Bob'", rec))
	assert.False(t, evalOn(t, "name = 'bob'", rec), "string comparison is case-sensitive")
}

func TestEvaluate_NumericNotLexicographic(t *testing.T) {
	rec := storage.Record{"age": float64(9)}
	// "9" > "10" lexicographically; numbers must compare numerically.
	assert.True(t, evalOn(t, "age < 10", rec))
}

func TestEvaluate_NumberFormsEqual(t *testing.T) {
	rec := storage.Record{"price": float64(100)}
	assert.True(t, evalOn(t, "price = 100.00", rec))
}

func TestEvaluate_StringOrdering(t *testing.T) {
	rec := storage.Record{"name": "Bob"}
	assert.True(t, evalOn(t, "name < 'Carol'", rec))
	assert.True(t, evalOn(t, "name > 'Alice'", rec))
}

func TestEvaluate_NullNeverMatches(t *testing.T) {
	rec := storage.Record{"city": nil}

	assert.False(t, evalOn(t, "city = 'Hanoi'", rec))
	assert.False(t, evalOn(t, "city != 'Hanoi'", rec))
	assert.False(t, evalOn(t, "city = NULL", rec), "NULL = NULL is false")
	assert.False(t, evalOn(t, "city != NULL", rec))
}

func TestEvaluate_MissingFieldIsNull(t *testing.T) {
	rec := storage.Record{"name": "Bob"}
	assert.False(t, evalOn(t, "ghost = 1", rec))
	assert.False(t, evalOn(t, "ghost != 1", rec))
}

func TestEvaluate_Logical(t *testing.T) {
	rec := storage.Record{"a": float64(1), "b": float64(2), "c": float64(3)}

	assert.True(t, evalOn(t, "a = 1 AND b = 2", rec))
	assert.False(t, evalOn(t, "a = 1 AND b = 9", rec))
	assert.True(t, evalOn(t, "a = 9 OR b = 2", rec))
	assert.False(t, evalOn(t, "a = 9 OR b = 9", rec))
}

func TestEvaluate_PrecedenceProperty(t *testing.T) {
	// a=1 OR b=2 AND c=3 must behave as a=1 OR (b=2 AND c=3).
	rec := storage.Record{"a": float64(1), "b": float64(0), "c": float64(0)}
	assert.True(t, evalOn(t, "a = 1 OR b = 2 AND c = 3", rec))

	rec = storage.Record{"a": float64(0), "b": float64(2), "c": float64(0)}
	assert.False(t, evalOn(t, "a = 1 OR b = 2 AND c = 3", rec))

	// Parenthesized form flips the second case.
	assert.False(t, evalOn(t, "(a = 1 OR b = 2) AND c = 3", rec))
	rec["c"] = float64(3)
	assert.True(t, evalOn(t, "(a = 1 OR b = 2) AND c = 3", rec))
}

func TestEvaluate_Like(t *testing.T) {
	rec := storage.Record{"name": "John Doe"}
	assert.True(t, evalOn(t, "name LIKE 'J%e'", rec))
	assert.False(t, evalOn(t, "name LIKE 'j%'", rec), "LIKE is case-sensitive")
}

func TestEvaluate_LikeNonStringValue(t *testing.T) {
	rec := storage.Record{"age": float64(30)}
	assert.False(t, evalOn(t, "age LIKE '3%'", rec))

	rec = storage.Record{"name": nil}
	assert.False(t, evalOn(t, "name LIKE '%'", rec))
}

func TestEvaluate_LikePatternMustBeString(t *testing.T) {
	_, err := Evaluate(whereOf(t, "name LIKE 30"), storage.Record{"name": "x"})
	require.Error(t, err)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(float64(1), float64(1)))
	assert.True(t, Equal(float64(1), int64(1)))
	assert.True(t, Equal("a", "a"))
	assert.False(t, Equal("a", "A"))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, "a"))
	assert.False(t, Equal(float64(1), "1x"))
}
