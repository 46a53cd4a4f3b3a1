package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseLiteral_QuotingWins verifies quoted tokens stay strings even
// when their text looks like a number or the null marker.
func TestParseLiteral_QuotingWins(t *testing.T) {
	assert.Equal(t, String("42"), ParseLiteral("'42'"))
	assert.Equal(t, String("NULL"), ParseLiteral("'NULL'"))
	assert.Equal(t, String("hello world"), ParseLiteral(`"hello world"`))
}

// TestParseLiteral_Inference verifies the bare-token inference order:
// null marker, integer, decimal, then text.
func TestParseLiteral_Inference(t *testing.T) {
	assert.Equal(t, Null{}, ParseLiteral("NULL"))
	assert.Equal(t, Null{}, ParseLiteral("null"))
	assert.Equal(t, Int(42), ParseLiteral("42"))
	assert.Equal(t, Int(-7), ParseLiteral("-7"))
	assert.Equal(t, Float(3.5), ParseLiteral("3.5"))
	assert.Equal(t, String("bob"), ParseLiteral("bob"))
	assert.Equal(t, String("5a"), ParseLiteral("5a"))
}

// TestIsNull verifies both the explicit marker and a nil Value read as
// null, so absent row fields behave like NULL.
func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(Null{}))
	assert.True(t, IsNull(nil))
	assert.False(t, IsNull(Int(0)))
	assert.False(t, IsNull(String("")))
}

// TestRender covers the textual forms used in result output.
func TestRender(t *testing.T) {
	assert.Equal(t, "NULL", Render(Null{}))
	assert.Equal(t, "NULL", Render(nil))
	assert.Equal(t, "42", Render(Int(42)))
	assert.Equal(t, "3.5", Render(Float(3.5)))
	assert.Equal(t, "ada", Render(String("ada")))
}

// TestCompare_NumericPolicy verifies two values compare numerically when
// both have a numeric interpretation, including numeric strings.
func TestCompare_NumericPolicy(t *testing.T) {
	cmp, ok := Compare(Int(5), String("5"))
	require.True(t, ok)
	assert.Equal(t, 0, cmp)

	cmp, ok = Compare(String("05"), Int(5))
	require.True(t, ok)
	assert.Equal(t, 0, cmp)

	cmp, ok = Compare(Int(3), Float(3.5))
	require.True(t, ok)
	assert.Equal(t, -1, cmp)

	cmp, ok = Compare(Float(10), Int(2))
	require.True(t, ok)
	assert.Equal(t, 1, cmp)
}

// TestCompare_TextFallback verifies the collation fallback when either
// side has no numeric interpretation.
func TestCompare_TextFallback(t *testing.T) {
	cmp, ok := Compare(String("apple"), String("banana"))
	require.True(t, ok)
	assert.Equal(t, -1, cmp)

	// '5a' is text, so 5 renders as "5" and compares as text too.
	cmp, ok = Compare(String("5a"), Int(5))
	require.True(t, ok)
	assert.NotEqual(t, 0, cmp)
}

// TestCompare_NullNeverOrders verifies null refuses to compare on
// either side.
func TestCompare_NullNeverOrders(t *testing.T) {
	_, ok := Compare(Null{}, Int(1))
	assert.False(t, ok)
	_, ok = Compare(Int(1), Null{})
	assert.False(t, ok)
	_, ok = Compare(nil, Null{})
	assert.False(t, ok)
}

// TestEqual verifies equality under the policy: null equals null, and
// null never equals a value.
func TestEqual(t *testing.T) {
	assert.True(t, Equal(Null{}, Null{}))
	assert.True(t, Equal(nil, Null{}))
	assert.False(t, Equal(Null{}, Int(0)))
	assert.True(t, Equal(Int(5), String("5")))
	assert.True(t, Equal(String("x"), String("x")))
	assert.False(t, Equal(String("x"), String("y")))
}

// TestKey verifies values equal under the policy share a dedup key and
// unequal values do not.
func TestKey(t *testing.T) {
	assert.Equal(t, Key(Int(5)), Key(Float(5.0)))
	assert.Equal(t, Key(Int(5)), Key(String("5")))
	assert.Equal(t, Key(Null{}), Key(nil))
	assert.NotEqual(t, Key(Int(5)), Key(String("5a")))
	assert.NotEqual(t, Key(String("red")), Key(String("blue")))
}
