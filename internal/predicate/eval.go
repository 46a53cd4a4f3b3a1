package predicate

import (
	"regexp"
	"strings"
	"sync"

	"github.com/siso-ai/siso-database/internal/table"
	"github.com/siso-ai/siso-database/internal/value"
)

// Evaluate walks a predicate tree against one row. Pure - no side effects.
//
// Null semantics: a comparison, range, membership, or pattern test against
// a null field (or with a null operand) is false; only NullTest can be true
// for null values. A column absent from the row reads as NULL.
//
// Branch semantics: both children are always evaluated before combining.
// AND/OR are standard; short-circuiting is deliberately not relied on.
func Evaluate(t Tree, row table.Row) bool {
	switch node := t.(type) {
	case Compare:
		return evalCompare(node, row[node.Column])
	case In:
		return evalIn(node, row[node.Column])
	case Like:
		return evalLike(node, row[node.Column])
	case Between:
		return evalBetween(node, row[node.Column])
	case NullTest:
		if node.Negated {
			return !value.IsNull(row[node.Column])
		}
		return value.IsNull(row[node.Column])
	case Branch:
		left := Evaluate(node.Left, row)
		right := Evaluate(node.Right, row)
		if node.Op == CombAnd {
			return left && right
		}
		return left || right
	default:
		return false
	}
}

func evalCompare(node Compare, field value.Value) bool {
	cmp, ok := value.Compare(field, node.Operand)
	if !ok {
		return false
	}
	switch node.Op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	default:
		return false
	}
}

func evalIn(node In, field value.Value) bool {
	if value.IsNull(field) {
		return false
	}
	for _, v := range node.Values {
		if value.Equal(field, v) {
			return true
		}
	}
	return false
}

func evalBetween(node Between, field value.Value) bool {
	low, okLow := value.Compare(field, node.Low)
	high, okHigh := value.Compare(field, node.High)
	return okLow && okHigh && low >= 0 && high <= 0
}

func evalLike(node Like, field value.Value) bool {
	if value.IsNull(field) {
		return false
	}
	return likeRegexp(node.Pattern).MatchString(value.Render(field))
}

var (
	likeMu    sync.Mutex
	likeCache = map[string]*regexp.Regexp{}
)

// likeRegexp returns the compiled matcher for a pattern, compiling each
// distinct pattern once so filtering N rows costs one compilation.
// likePattern quotes every non-wildcard rune, so the translated
// expression always compiles.
func likeRegexp(pattern string) *regexp.Regexp {
	likeMu.Lock()
	defer likeMu.Unlock()
	if re, ok := likeCache[pattern]; ok {
		return re
	}
	re := regexp.MustCompile(likePattern(pattern))
	likeCache[pattern] = re
	return re
}

// likePattern translates a LIKE pattern into an anchored, case-insensitive
// regular expression: % becomes "any sequence", _ becomes "any character".
func likePattern(pattern string) string {
	var b strings.Builder
	b.WriteString("(?is)^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}
