package value

import (
	"encoding/json"
	"fmt"
)

// Persistence round-trips values through JSON exactly: null stays the null
// marker, integers stay integral, decimals stay decimals, text stays text.

// MarshalValue encodes a value as JSON.
func MarshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case nil, Null:
		return []byte("null"), nil
	case String:
		return json.Marshal(string(val))
	case Int:
		return json.Marshal(int64(val))
	case Float:
		return json.Marshal(float64(val))
	default:
		return nil, fmt.Errorf("unknown value type: %T", v)
	}
}

// UnmarshalValue decodes a JSON value into the matching Value type.
// Booleans, arrays, and objects are rejected - rows never contain them.
func UnmarshalValue(data []byte) (Value, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch data[0] {
	case 'n':
		return Null{}, nil

	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return String(s), nil

	case 't', 'f':
		return nil, fmt.Errorf("boolean is not a row value: %s", string(data))

	case '[', '{':
		return nil, fmt.Errorf("composite JSON is not a row value: %s", string(data))

	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		// Integral numbers stay Int so the round-trip is exact.
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("number out of range: %s", n)
		}
		return Float(f), nil
	}
}
