package value

import (
	"strconv"
	"strings"
)

// ParseLiteral infers a Value from a raw statement token.
//
// The rules, in order:
//  1. A quoted token ('...' or "...") is always a String, quotes stripped.
//     Quoting wins over every other rule, so 'NULL' and '42' stay strings.
//  2. Bare NULL (any case) is the null marker.
//  3. A token that parses as a signed integer is an Int.
//  4. A token that parses as a decimal is a Float.
//  5. Anything else is a String.
func ParseLiteral(token string) Value {
	token = strings.TrimSpace(token)

	if quoted, ok := Unquote(token); ok {
		return String(quoted)
	}

	if strings.EqualFold(token, "NULL") {
		return Null{}
	}

	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return Int(n)
	}

	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return Float(f)
	}

	return String(token)
}

// Unquote strips a matching pair of single or double quotes.
// Returns the inner text and true when the token was quoted.
func Unquote(token string) (string, bool) {
	if len(token) < 2 {
		return token, false
	}
	first := token[0]
	last := token[len(token)-1]
	if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
		return token[1 : len(token)-1], true
	}
	return token, false
}
