package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siso-ai/siso-database/internal/value"
)

// TestParseInsert_BatchTuples verifies a multi-tuple VALUES list splits
// on the depth-zero commas only.
func TestParseInsert_BatchTuples(t *testing.T) {
	spec, err := parseInsert("INSERT INTO users (id, name) VALUES (1, 'ada'), (2, 'grace')")
	require.NoError(t, err)

	assert.Equal(t, "users", spec.Table)
	assert.Equal(t, []string{"id", "name"}, spec.Columns)
	require.Len(t, spec.Rows, 2)
	assert.Equal(t, []value.Value{value.Int(1), value.String("ada")}, spec.Rows[0])
	assert.Equal(t, []value.Value{value.Int(2), value.String("grace")}, spec.Rows[1])
}

// TestParseInsert_NoColumnList verifies Columns stays nil so values
// bind to the schema in order at execution time.
func TestParseInsert_NoColumnList(t *testing.T) {
	spec, err := parseInsert("INSERT INTO users VALUES (1, 'ada')")
	require.NoError(t, err)
	assert.Equal(t, "users", spec.Table)
	assert.Nil(t, spec.Columns)
	require.Len(t, spec.Rows, 1)
}

// TestParseInsert_QuotedCommasAndLiterals verifies commas inside quoted
// values never split tuples, and literal inference runs per value.
func TestParseInsert_QuotedCommasAndLiterals(t *testing.T) {
	spec, err := parseInsert("INSERT INTO t (a, b, c, d) VALUES ('x, y', NULL, 3.5, '42')")
	require.NoError(t, err)

	require.Len(t, spec.Rows, 1)
	assert.Equal(t, []value.Value{
		value.String("x, y"), value.Null{}, value.Float(3.5), value.String("42"),
	}, spec.Rows[0])
}

// TestParseInsert_Errors covers the structural syntax failures.
func TestParseInsert_Errors(t *testing.T) {
	for _, text := range []string{
		"INSERT INTO users",
		"INSERT INTO users (id VALUES (1)",
		"INSERT INTO VALUES (1)",
		"INSERT INTO users VALUES 1, 2",
		"INSERT INTO users VALUES ()",
		"INSERT INTO users VALUES",
	} {
		_, err := parseInsert(text)
		assert.Error(t, err, "statement %q", text)
	}
}
