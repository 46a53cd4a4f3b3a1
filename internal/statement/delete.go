package statement

import (
	"fmt"
	"strings"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/predicate"
)

const deleteGrammar = "DELETE FROM name [WHERE clause]"

// DeleteParser recognizes DELETE statements.
type DeleteParser struct{}

func (DeleteParser) ID() string { return "parse-delete" }

func (DeleteParser) Applies(u *engine.Unit) bool {
	raw, ok := u.Body.(Raw)
	return ok && KeywordPrefix(raw.Text, "DELETE FROM")
}

func (DeleteParser) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	raw := u.Body.(Raw)
	spec, err := parseDelete(raw.Text)
	if err != nil {
		d.Submit(engine.NewUnit(engine.Errorf("syntax error in DELETE: %v (expected: %s)", err, deleteGrammar)))
		return nil
	}
	d.Submit(engine.NewUnit(spec))
	return nil
}

func parseDelete(text string) (*Delete, error) {
	rest := strings.TrimSpace(strings.TrimSpace(text)[len("DELETE FROM"):])

	spec := &Delete{Table: rest}
	if whereAt := FindKeyword(rest, "WHERE"); whereAt >= 0 {
		spec.Table = strings.TrimSpace(rest[:whereAt])
		clause := strings.TrimSpace(rest[whereAt+len("WHERE"):])
		tree, err := predicate.Parse(clause)
		if err != nil {
			return nil, fmt.Errorf("WHERE %s: %v", clause, err)
		}
		spec.Where = tree
	}

	if spec.Table == "" || len(strings.Fields(spec.Table)) != 1 {
		return nil, fmt.Errorf("invalid table name %q", spec.Table)
	}
	return spec, nil
}
