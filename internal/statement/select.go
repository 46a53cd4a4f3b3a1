package statement

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/predicate"
)

const selectGrammar = "SELECT [DISTINCT] cols|* FROM name [WHERE clause] [ORDER BY col [ASC|DESC]] [LIMIT n [OFFSET m]]"

// SelectParser recognizes SELECT statements. The WHERE clause is parsed
// here, so a malformed predicate surfaces as a syntax error before any
// execution stage runs.
type SelectParser struct{}

func (SelectParser) ID() string { return "parse-select" }

func (SelectParser) Applies(u *engine.Unit) bool {
	raw, ok := u.Body.(Raw)
	return ok && KeywordPrefix(raw.Text, "SELECT")
}

func (SelectParser) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	raw := u.Body.(Raw)
	spec, err := parseSelect(raw.Text)
	if err != nil {
		d.Submit(engine.NewUnit(engine.Errorf("syntax error in SELECT: %v (expected: %s)", err, selectGrammar)))
		return nil
	}
	d.Submit(engine.NewUnit(spec))
	return nil
}

func parseSelect(text string) (*Select, error) {
	rest := strings.TrimSpace(strings.TrimSpace(text)[len("SELECT"):])

	spec := &Select{}
	if KeywordPrefix(rest, "DISTINCT") {
		spec.Distinct = true
		rest = strings.TrimSpace(rest[len("DISTINCT"):])
	}

	fromAt := FindKeyword(rest, "FROM")
	if fromAt < 0 {
		return nil, fmt.Errorf("missing FROM in %q", rest)
	}

	colsPart := strings.TrimSpace(rest[:fromAt])
	if colsPart == "" {
		return nil, fmt.Errorf("missing column list")
	}
	if colsPart != "*" {
		for _, col := range SplitTop(colsPart, ',') {
			if col == "" || len(strings.Fields(col)) != 1 {
				return nil, fmt.Errorf("invalid column %q", col)
			}
			spec.Columns = append(spec.Columns, col)
		}
	}

	rest = strings.TrimSpace(rest[fromAt+len("FROM"):])

	// Locate the trailing clauses; everything keys off depth-zero,
	// quote-aware keyword positions.
	whereAt := FindKeyword(rest, "WHERE")
	orderAt := FindKeyword(rest, "ORDER BY")
	limitAt := FindKeyword(rest, "LIMIT")

	end := len(rest)
	if limitAt >= 0 {
		end = limitAt
	}
	if orderAt >= 0 && orderAt < end {
		end = orderAt
	}
	if whereAt >= 0 && whereAt < end {
		end = whereAt
	}

	spec.Table = strings.TrimSpace(rest[:end])
	if spec.Table == "" || len(strings.Fields(spec.Table)) != 1 {
		return nil, fmt.Errorf("invalid table name %q", spec.Table)
	}

	if whereAt >= 0 {
		clauseEnd := len(rest)
		if orderAt > whereAt && orderAt < clauseEnd {
			clauseEnd = orderAt
		}
		if limitAt > whereAt && limitAt < clauseEnd {
			clauseEnd = limitAt
		}
		clause := strings.TrimSpace(rest[whereAt+len("WHERE") : clauseEnd])
		tree, err := predicate.Parse(clause)
		if err != nil {
			return nil, fmt.Errorf("WHERE %s: %v", clause, err)
		}
		spec.Where = tree
	}

	if orderAt >= 0 {
		clauseEnd := len(rest)
		if limitAt > orderAt {
			clauseEnd = limitAt
		}
		if err := parseOrderBy(strings.TrimSpace(rest[orderAt+len("ORDER BY"):clauseEnd]), spec); err != nil {
			return nil, err
		}
	}

	if limitAt >= 0 {
		if err := parseLimit(strings.TrimSpace(rest[limitAt+len("LIMIT"):]), spec); err != nil {
			return nil, err
		}
	}

	return spec, nil
}

func parseOrderBy(clause string, spec *Select) error {
	toks := strings.Fields(clause)
	switch len(toks) {
	case 1:
		spec.OrderBy = toks[0]
	case 2:
		spec.OrderBy = toks[0]
		switch {
		case strings.EqualFold(toks[1], "ASC"):
		case strings.EqualFold(toks[1], "DESC"):
			spec.Desc = true
		default:
			return fmt.Errorf("invalid sort direction %q", toks[1])
		}
	default:
		return fmt.Errorf("invalid ORDER BY clause %q", clause)
	}
	return nil
}

func parseLimit(clause string, spec *Select) error {
	toks := strings.Fields(clause)
	if len(toks) != 1 && len(toks) != 3 {
		return fmt.Errorf("invalid LIMIT clause %q", clause)
	}

	n, err := strconv.Atoi(toks[0])
	if err != nil || n < 0 {
		return fmt.Errorf("invalid LIMIT count %q", toks[0])
	}
	spec.Limit = n
	spec.HasLimit = true

	if len(toks) == 3 {
		if !strings.EqualFold(toks[1], "OFFSET") {
			return fmt.Errorf("expected OFFSET, found %q", toks[1])
		}
		m, err := strconv.Atoi(toks[2])
		if err != nil || m < 0 {
			return fmt.Errorf("invalid OFFSET count %q", toks[2])
		}
		spec.Offset = m
	}
	return nil
}
