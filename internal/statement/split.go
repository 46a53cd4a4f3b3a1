package statement

import (
	"strings"
	"unicode"
)

// Text-splitting helpers shared by the parser stages. All of them treat
// single- and double-quoted spans as opaque: a comma, keyword, or
// semicolon inside quotes is just text.

// SplitTop splits s on sep occurrences at paren depth zero, outside
// quotes. Batch tuple lists split correctly because the separating comma
// in `), (` is the only one at depth zero.
func SplitTop(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// SplitStatements splits a script into statements on semicolons outside
// quotes, dropping empty fragments.
func SplitStatements(script string) []string {
	var out []string
	for _, part := range SplitTop(script, ';') {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Fields splits s on whitespace outside quotes, keeping quoted spans
// (including their quotes) attached to the token they appear in. Used for
// column definitions, where DEFAULT 'two words' is one value token.
func Fields(s string) []string {
	var out []string
	var quote byte
	start := -1

	flush := func(end int) {
		if start >= 0 {
			out = append(out, s[start:end])
			start = -1
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch {
		case c == '\'' || c == '"':
			quote = c
			if start < 0 {
				start = i
			}
		case unicode.IsSpace(rune(c)):
			flush(i)
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(s))
	return out
}

// KeywordPrefix reports whether text starts with the keyword phrase,
// case-insensitively and followed by a boundary.
func KeywordPrefix(text, phrase string) bool {
	text = strings.TrimSpace(text)
	if len(text) < len(phrase) {
		return false
	}
	if !strings.EqualFold(text[:len(phrase)], phrase) {
		return false
	}
	if len(text) == len(phrase) {
		return true
	}
	next := text[len(phrase)]
	return unicode.IsSpace(rune(next)) || next == '('
}

// FindKeyword returns the index of the first occurrence of the keyword
// phrase at paren depth zero outside quotes, with word boundaries on both
// sides. Returns -1 when absent. Internal spaces in the phrase match any
// run of whitespace in the text.
func FindKeyword(s, phrase string) int {
	depth := 0
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
			continue
		case '(':
			depth++
			continue
		case ')':
			depth--
			continue
		}
		if depth != 0 {
			continue
		}
		if end, ok := matchPhrase(s, i, phrase); ok {
			if boundedBefore(s, i) && boundedAfter(s, end) {
				return i
			}
		}
	}
	return -1
}

// matchPhrase matches phrase at s[i:], case-insensitive, with each space
// in the phrase matching one or more whitespace characters. Returns the
// end index on success.
func matchPhrase(s string, i int, phrase string) (int, bool) {
	pos := i
	for j := 0; j < len(phrase); j++ {
		if phrase[j] == ' ' {
			if pos >= len(s) || !unicode.IsSpace(rune(s[pos])) {
				return 0, false
			}
			for pos < len(s) && unicode.IsSpace(rune(s[pos])) {
				pos++
			}
			continue
		}
		if pos >= len(s) || toUpper(s[pos]) != toUpper(phrase[j]) {
			return 0, false
		}
		pos++
	}
	return pos, true
}

func boundedBefore(s string, i int) bool {
	return i == 0 || !isWordChar(s[i-1])
}

func boundedAfter(s string, end int) bool {
	return end >= len(s) || !isWordChar(s[end])
}

func isWordChar(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

func toUpper(c byte) byte {
	if 'a' <= c && 'z' >= c {
		return c - 'a' + 'A'
	}
	return c
}

// parseValueList parses a comma-separated literal list (quote-aware).
func parseValueList(s string) []string {
	return SplitTop(s, ',')
}
