package value

import "strconv"

// Value is a sealed interface representing the literal types the engine
// understands. Only Null, String, Int, and Float implement it.
// Booleans do not exist at this layer - literal inference never produces one.
type Value interface {
	valueNode() // Sealed - only these types implement it
}

// Null represents the SQL NULL marker.
// Using an explicit type (rather than a nil Value) keeps type switches total.
type Null struct{}

func (Null) valueNode() {}

// String represents a text value.
type String string

func (String) valueNode() {}

// Int represents an integer value. Always int64.
type Int int64

func (Int) valueNode() {}

// Float represents a decimal value.
type Float float64

func (Float) valueNode() {}

// IsNull reports whether v is the null marker.
// A nil Value is treated as null as well, so absent row fields behave
// like NULL without callers having to special-case the lookup miss.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// Render returns the textual form of a value for result output.
// Null renders as the literal NULL marker.
func Render(v Value) string {
	switch val := v.(type) {
	case nil, Null:
		return "NULL"
	case String:
		return string(val)
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	default:
		return "NULL"
	}
}
