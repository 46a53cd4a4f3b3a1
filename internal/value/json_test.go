package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValueJSON_RoundTrip verifies each value type survives the
// marshal/unmarshal cycle with its exact type.
func TestValueJSON_RoundTrip(t *testing.T) {
	for _, v := range []Value{Null{}, String("text"), String("42"), Int(42), Float(3.5)} {
		data, err := MarshalValue(v)
		require.NoError(t, err)

		back, err := UnmarshalValue(data)
		require.NoError(t, err)
		assert.Equal(t, v, back, "round-trip of %#v", v)
	}
}

// TestUnmarshalValue_IntegralStaysInt verifies an integral JSON number
// comes back as Int, not Float.
func TestUnmarshalValue_IntegralStaysInt(t *testing.T) {
	v, err := UnmarshalValue([]byte("7"))
	require.NoError(t, err)
	assert.Equal(t, Int(7), v)
}

// TestUnmarshalValue_RejectsComposites verifies booleans, arrays, and
// objects are rejected - rows never contain them.
func TestUnmarshalValue_RejectsComposites(t *testing.T) {
	for _, data := range []string{"true", "false", "[1]", `{"a":1}`} {
		_, err := UnmarshalValue([]byte(data))
		assert.Error(t, err, "input %s", data)
	}
}
