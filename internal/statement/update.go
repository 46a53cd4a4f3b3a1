package statement

import (
	"fmt"
	"strings"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/predicate"
	"github.com/siso-ai/siso-database/internal/value"
)

const updateGrammar = "UPDATE name SET col = v [, ...] [WHERE clause]"

// UpdateParser recognizes UPDATE statements.
type UpdateParser struct{}

func (UpdateParser) ID() string { return "parse-update" }

func (UpdateParser) Applies(u *engine.Unit) bool {
	raw, ok := u.Body.(Raw)
	return ok && KeywordPrefix(raw.Text, "UPDATE")
}

func (UpdateParser) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	raw := u.Body.(Raw)
	spec, err := parseUpdate(raw.Text)
	if err != nil {
		d.Submit(engine.NewUnit(engine.Errorf("syntax error in UPDATE: %v (expected: %s)", err, updateGrammar)))
		return nil
	}
	d.Submit(engine.NewUnit(spec))
	return nil
}

func parseUpdate(text string) (*Update, error) {
	rest := strings.TrimSpace(strings.TrimSpace(text)[len("UPDATE"):])

	setAt := FindKeyword(rest, "SET")
	if setAt < 0 {
		return nil, fmt.Errorf("missing SET in %q", rest)
	}

	spec := &Update{Table: strings.TrimSpace(rest[:setAt])}
	if spec.Table == "" || len(strings.Fields(spec.Table)) != 1 {
		return nil, fmt.Errorf("invalid table name %q", spec.Table)
	}

	rest = strings.TrimSpace(rest[setAt+len("SET"):])

	setPart := rest
	if whereAt := FindKeyword(rest, "WHERE"); whereAt >= 0 {
		setPart = strings.TrimSpace(rest[:whereAt])
		clause := strings.TrimSpace(rest[whereAt+len("WHERE"):])
		tree, err := predicate.Parse(clause)
		if err != nil {
			return nil, fmt.Errorf("WHERE %s: %v", clause, err)
		}
		spec.Where = tree
	}

	for _, assign := range SplitTop(setPart, ',') {
		eq := indexUnquoted(assign, '=')
		if eq < 0 {
			return nil, fmt.Errorf("assignment %q is missing =", assign)
		}
		col := strings.TrimSpace(assign[:eq])
		val := strings.TrimSpace(assign[eq+1:])
		if col == "" || val == "" {
			return nil, fmt.Errorf("invalid assignment %q", assign)
		}
		spec.Set = append(spec.Set, Assignment{Column: col, Value: value.ParseLiteral(val)})
	}
	if len(spec.Set) == 0 {
		return nil, fmt.Errorf("SET requires at least one assignment")
	}
	return spec, nil
}

// indexUnquoted returns the index of the first c outside quotes, or -1.
func indexUnquoted(s string, c byte) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		if quote != 0 {
			if s[i] == quote {
				quote = 0
			}
			continue
		}
		switch s[i] {
		case '\'', '"':
			quote = s[i]
		case c:
			return i
		}
	}
	return -1
}
