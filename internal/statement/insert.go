package statement

import (
	"fmt"
	"strings"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/value"
)

const insertGrammar = "INSERT INTO name [(cols)] VALUES (v, ...) [, (v, ...) ...]"

// InsertParser recognizes INSERT statements.
type InsertParser struct{}

func (InsertParser) ID() string { return "parse-insert" }

func (InsertParser) Applies(u *engine.Unit) bool {
	raw, ok := u.Body.(Raw)
	return ok && KeywordPrefix(raw.Text, "INSERT INTO")
}

func (InsertParser) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	raw := u.Body.(Raw)
	spec, err := parseInsert(raw.Text)
	if err != nil {
		d.Submit(engine.NewUnit(engine.Errorf("syntax error in INSERT: %v (expected: %s)", err, insertGrammar)))
		return nil
	}
	d.Submit(engine.NewUnit(spec))
	return nil
}

func parseInsert(text string) (*Insert, error) {
	rest := strings.TrimSpace(strings.TrimSpace(text)[len("INSERT INTO"):])

	valuesAt := FindKeyword(rest, "VALUES")
	if valuesAt < 0 {
		return nil, fmt.Errorf("missing VALUES in %q", rest)
	}

	head := strings.TrimSpace(rest[:valuesAt])
	tuplesText := strings.TrimSpace(rest[valuesAt+len("VALUES"):])

	spec := &Insert{}

	// Head is `name` or `name (col, ...)`.
	if open := strings.IndexByte(head, '('); open >= 0 {
		if !strings.HasSuffix(head, ")") {
			return nil, fmt.Errorf("unclosed column list in %q", head)
		}
		spec.Table = strings.TrimSpace(head[:open])
		for _, col := range SplitTop(head[open+1:len(head)-1], ',') {
			if col == "" {
				return nil, fmt.Errorf("empty column name in column list")
			}
			spec.Columns = append(spec.Columns, col)
		}
	} else {
		spec.Table = head
	}
	if spec.Table == "" || len(strings.Fields(spec.Table)) != 1 {
		return nil, fmt.Errorf("invalid table name %q", spec.Table)
	}

	// Tuples split on the `) , (` boundary: only the commas between
	// parenthesized groups sit at depth zero.
	for _, tuple := range SplitTop(tuplesText, ',') {
		if !strings.HasPrefix(tuple, "(") || !strings.HasSuffix(tuple, ")") {
			return nil, fmt.Errorf("value tuple %q is not parenthesized", tuple)
		}
		var row []value.Value
		for _, tok := range parseValueList(tuple[1 : len(tuple)-1]) {
			if tok == "" {
				return nil, fmt.Errorf("empty value in tuple %q", tuple)
			}
			row = append(row, value.ParseLiteral(tok))
		}
		if len(row) == 0 {
			return nil, fmt.Errorf("empty value tuple")
		}
		spec.Rows = append(spec.Rows, row)
	}
	if len(spec.Rows) == 0 {
		return nil, fmt.Errorf("VALUES requires at least one tuple")
	}
	return spec, nil
}
