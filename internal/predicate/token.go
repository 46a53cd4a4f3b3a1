package predicate

import (
	"fmt"
	"strings"
	"unicode"
)

// tokenKind distinguishes the lexical classes of a clause.
type tokenKind int

const (
	tokWord   tokenKind = iota + 1 // bare word: column name, keyword, or literal
	tokString                      // quoted string literal, quotes stripped
	tokSymbol                      // operator or punctuation: = != <> <= >= < > ( ) ,
)

// token is one lexical unit of a WHERE clause.
type token struct {
	kind tokenKind
	text string
}

// isKeyword reports whether the token is the given bare keyword.
// Keywords are case-insensitive; a quoted 'and' is never a keyword.
func (t token) isKeyword(kw string) bool {
	return t.kind == tokWord && strings.EqualFold(t.text, kw)
}

func (t token) isSymbol(sym string) bool {
	return t.kind == tokSymbol && t.text == sym
}

// symbols in match order: longer operators before their prefixes,
// so <= wins over < and <> wins over <.
var symbols = []string{"!=", "<=", ">=", "<>", "=", "<", ">", "(", ")", ","}

// tokenize splits a clause into tokens. Quoted literals keep their content
// verbatim (a comma or AND inside quotes is just text). The tokenizer is
// the reason BETWEEN disambiguation is structural here instead of the
// string-offset arithmetic a regex approach needs.
func tokenize(clause string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(clause) {
		c := clause[i]

		if unicode.IsSpace(rune(c)) {
			i++
			continue
		}

		if c == '\'' || c == '"' {
			end := strings.IndexByte(clause[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("unterminated string literal at %q", clause[i:])
			}
			toks = append(toks, token{kind: tokString, text: clause[i+1 : i+1+end]})
			i += end + 2
			continue
		}

		if sym, ok := matchSymbol(clause[i:]); ok {
			toks = append(toks, token{kind: tokSymbol, text: sym})
			i += len(sym)
			continue
		}

		start := i
		for i < len(clause) && !isWordBoundary(clause[i]) {
			i++
		}
		if i == start {
			return nil, fmt.Errorf("unexpected character %q in clause", string(clause[i]))
		}
		toks = append(toks, token{kind: tokWord, text: clause[start:i]})
	}
	return toks, nil
}

func matchSymbol(s string) (string, bool) {
	for _, sym := range symbols {
		if strings.HasPrefix(s, sym) {
			return sym, true
		}
	}
	return "", false
}

func isWordBoundary(c byte) bool {
	if unicode.IsSpace(rune(c)) || c == '\'' || c == '"' {
		return true
	}
	switch c {
	case '=', '!', '<', '>', '(', ')', ',':
		return true
	}
	return false
}
