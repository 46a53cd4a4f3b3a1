package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siso-ai/siso-database/internal/value"
)

// TestParse_CompareLeaf verifies a simple comparison parses into one
// leaf with the inferred operand type.
func TestParse_CompareLeaf(t *testing.T) {
	tree, err := Parse("age >= 30")
	require.NoError(t, err)
	assert.Equal(t, Compare{Column: "age", Op: OpGe, Operand: value.Int(30)}, tree)
}

// TestParse_AllComparisonOps covers the six operators, including the
// <> alias for !=.
func TestParse_AllComparisonOps(t *testing.T) {
	cases := map[string]CompareOp{
		"x = 1":  OpEq,
		"x != 1": OpNe,
		"x <> 1": OpNe,
		"x < 1":  OpLt,
		"x <= 1": OpLe,
		"x > 1":  OpGt,
		"x >= 1": OpGe,
	}
	for clause, op := range cases {
		tree, err := Parse(clause)
		require.NoError(t, err, clause)
		cmp, ok := tree.(Compare)
		require.True(t, ok, clause)
		assert.Equal(t, op, cmp.Op, clause)
	}
}

// TestParse_BetweenConsumesItsOwnAnd verifies the range's internal AND
// never becomes a combinator: the whole clause is a single leaf.
func TestParse_BetweenConsumesItsOwnAnd(t *testing.T) {
	tree, err := Parse("age BETWEEN 28 AND 32")
	require.NoError(t, err)
	assert.Equal(t, Between{Column: "age", Low: value.Int(28), High: value.Int(32)}, tree)
}

// TestParse_BetweenFollowedByAnd verifies a range followed by a real
// combinator: the Between leaf ends up on the left of an AND branch.
func TestParse_BetweenFollowedByAnd(t *testing.T) {
	tree, err := Parse("age BETWEEN 28 AND 32 AND city = 'NYC'")
	require.NoError(t, err)

	branch, ok := tree.(Branch)
	require.True(t, ok)
	assert.Equal(t, CombAnd, branch.Op)
	assert.Equal(t, Between{Column: "age", Low: value.Int(28), High: value.Int(32)}, branch.Left)
	assert.Equal(t, Compare{Column: "city", Op: OpEq, Operand: value.String("NYC")}, branch.Right)
}

// TestParse_OrBindsLoosest verifies `a AND b OR c` parses as
// (a AND b) OR c.
func TestParse_OrBindsLoosest(t *testing.T) {
	tree, err := Parse("a = 1 AND b = 2 OR c = 3")
	require.NoError(t, err)

	or, ok := tree.(Branch)
	require.True(t, ok)
	require.Equal(t, CombOr, or.Op)

	and, ok := or.Left.(Branch)
	require.True(t, ok)
	assert.Equal(t, CombAnd, and.Op)
	assert.Equal(t, Compare{Column: "c", Op: OpEq, Operand: value.Int(3)}, or.Right)
}

// TestParse_ChainsAreRightLeaning verifies three AND-ed conditions
// split at the first combinator.
func TestParse_ChainsAreRightLeaning(t *testing.T) {
	tree, err := Parse("a = 1 AND b = 2 AND c = 3")
	require.NoError(t, err)

	outer, ok := tree.(Branch)
	require.True(t, ok)
	assert.Equal(t, Compare{Column: "a", Op: OpEq, Operand: value.Int(1)}, outer.Left)

	inner, ok := outer.Right.(Branch)
	require.True(t, ok)
	assert.Equal(t, Compare{Column: "b", Op: OpEq, Operand: value.Int(2)}, inner.Left)
	assert.Equal(t, Compare{Column: "c", Op: OpEq, Operand: value.Int(3)}, inner.Right)
}

// TestParse_InList verifies membership lists parse with inferred
// element types.
func TestParse_InList(t *testing.T) {
	tree, err := Parse("city IN ('NYC', 'LA', 3)")
	require.NoError(t, err)
	assert.Equal(t, In{Column: "city", Values: []value.Value{
		value.String("NYC"), value.String("LA"), value.Int(3),
	}}, tree)
}

// TestParse_Like verifies pattern leaves keep the raw pattern text.
func TestParse_Like(t *testing.T) {
	tree, err := Parse("name LIKE 'Jo%'")
	require.NoError(t, err)
	assert.Equal(t, Like{Column: "name", Pattern: "Jo%"}, tree)
}

// TestParse_NullTests covers IS NULL and IS NOT NULL.
func TestParse_NullTests(t *testing.T) {
	tree, err := Parse("age IS NULL")
	require.NoError(t, err)
	assert.Equal(t, NullTest{Column: "age"}, tree)

	tree, err = Parse("age IS NOT NULL")
	require.NoError(t, err)
	assert.Equal(t, NullTest{Column: "age", Negated: true}, tree)
}

// TestParse_QuotedOperandStaysText verifies a quoted numeric operand
// stays a string literal through the parse.
func TestParse_QuotedOperandStaysText(t *testing.T) {
	tree, err := Parse("code = '42'")
	require.NoError(t, err)
	assert.Equal(t, Compare{Column: "code", Op: OpEq, Operand: value.String("42")}, tree)
}

// TestParse_KeywordsInQuotesAreText verifies quoted AND/OR never act as
// combinators.
func TestParse_KeywordsInQuotesAreText(t *testing.T) {
	tree, err := Parse("name = 'rock AND roll'")
	require.NoError(t, err)
	assert.Equal(t, Compare{Column: "name", Op: OpEq, Operand: value.String("rock AND roll")}, tree)
}

// TestParse_Errors verifies malformed clauses abort with no partial
// tree.
func TestParse_Errors(t *testing.T) {
	for _, clause := range []string{
		"",
		"age >",
		"age BETWEEN 1",
		"age BETWEEN 1 OR 2",
		"city IN ()",
		"city IN ('a'",
		"age IS",
		"age IS SOMETHING",
		"= 5",
		"age = 5 extra",
		"age = 'unterminated",
		"AND age = 5",
	} {
		tree, err := Parse(clause)
		assert.Error(t, err, "clause %q", clause)
		assert.Nil(t, tree, "clause %q", clause)
	}
}

// TestColumns_FirstUseOrder verifies referenced columns come back
// deduplicated in first-use order.
func TestColumns_FirstUseOrder(t *testing.T) {
	tree, err := Parse("b = 1 AND a = 2 OR b = 3 AND c IS NULL")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, Columns(tree))
}
