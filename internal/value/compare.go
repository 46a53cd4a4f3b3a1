package value

import (
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparison policy:
//
// Two values compare numerically when BOTH have a numeric interpretation -
// Int, Float, or a String whose text parses as a number. Otherwise both
// render as text and compare under Unicode collation. So '5' = 5 holds,
// '05' = 5 holds, and '5a' = 5 does not. Null never compares; callers
// handle the null marker before asking for an ordering.

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.Und)
)

// Numeric returns the numeric interpretation of a value, if it has one.
func Numeric(v Value) (float64, bool) {
	switch val := v.(type) {
	case Int:
		return float64(val), true
	case Float:
		return float64(val), true
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(val)), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Compare orders two non-null values under the comparison policy.
// Returns (-1|0|1, true), or (0, false) when either side is null.
func Compare(a, b Value) (int, bool) {
	if IsNull(a) || IsNull(b) {
		return 0, false
	}

	an, aNum := Numeric(a)
	bn, bNum := Numeric(b)
	if aNum && bNum {
		switch {
		case an < bn:
			return -1, true
		case an > bn:
			return 1, true
		default:
			return 0, true
		}
	}

	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(Render(a), Render(b)), true
}

// Equal reports structural equality under the comparison policy.
// Null equals null; null never equals a non-null value.
func Equal(a, b Value) bool {
	if IsNull(a) && IsNull(b) {
		return true
	}
	cmp, ok := Compare(a, b)
	return ok && cmp == 0
}

// Key returns a canonical signature for deduplication. Values that compare
// equal under the policy share a key: numerics collapse to one form, so
// Int(5), Float(5.0), and String("5") all map to the same signature.
func Key(v Value) string {
	if IsNull(v) {
		return "null"
	}
	if n, ok := Numeric(v); ok {
		return "n:" + strconv.FormatFloat(n, 'g', -1, 64)
	}
	return "s:" + Render(v)
}
