package statement

import (
	"fmt"
	"strings"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/table"
	"github.com/siso-ai/siso-database/internal/value"
)

const createGrammar = "CREATE TABLE [IF NOT EXISTS] name (col [TYPE] [PRIMARY KEY] [NOT NULL] [DEFAULT v], ...)"

// CreateParser recognizes CREATE TABLE statements.
type CreateParser struct{}

func (CreateParser) ID() string { return "parse-create" }

func (CreateParser) Applies(u *engine.Unit) bool {
	raw, ok := u.Body.(Raw)
	return ok && KeywordPrefix(raw.Text, "CREATE TABLE")
}

func (CreateParser) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	raw := u.Body.(Raw)
	spec, err := parseCreate(raw.Text)
	if err != nil {
		d.Submit(engine.NewUnit(engine.Errorf("syntax error in CREATE TABLE: %v (expected: %s)", err, createGrammar)))
		return nil
	}
	d.Submit(engine.NewUnit(spec))
	return nil
}

func parseCreate(text string) (*CreateTable, error) {
	rest := strings.TrimSpace(text)[len("CREATE TABLE"):]
	rest = strings.TrimSpace(rest)

	spec := &CreateTable{}
	if KeywordPrefix(rest, "IF NOT EXISTS") {
		spec.IfNotExists = true
		rest = strings.TrimSpace(rest[len("IF NOT EXISTS"):])
	}

	open := strings.IndexByte(rest, '(')
	if open < 0 || !strings.HasSuffix(rest, ")") {
		return nil, fmt.Errorf("missing parenthesized column list in %q", rest)
	}

	name := strings.TrimSpace(rest[:open])
	if name == "" || len(strings.Fields(name)) != 1 {
		return nil, fmt.Errorf("invalid table name %q", name)
	}

	body := rest[open+1 : len(rest)-1]
	defs := SplitTop(body, ',')

	schema := table.Schema{Name: name}
	for _, def := range defs {
		col, err := parseColumnDef(def)
		if err != nil {
			return nil, err
		}
		schema.Columns = append(schema.Columns, col)
	}

	// Structural checks (duplicate columns, duplicate primary key) are
	// semantic errors and belong to execution, not parsing.
	spec.Schema = schema
	return spec, nil
}

// parseColumnDef parses one `name [TYPE] [PRIMARY KEY] [NOT NULL]
// [DEFAULT v]` fragment.
func parseColumnDef(def string) (table.Column, error) {
	toks := Fields(def)
	if len(toks) == 0 {
		return table.Column{}, fmt.Errorf("empty column definition")
	}

	col := table.Column{Name: toks[0]}
	toks = toks[1:]

	// Optional type name: the first token that is not a constraint keyword.
	if len(toks) > 0 && !isConstraintKeyword(toks[0]) {
		col.Type = strings.ToUpper(toks[0])
		toks = toks[1:]
	}

	for len(toks) > 0 {
		switch {
		case strings.EqualFold(toks[0], "PRIMARY"):
			if len(toks) < 2 || !strings.EqualFold(toks[1], "KEY") {
				return table.Column{}, fmt.Errorf("column %s: expected KEY after PRIMARY", col.Name)
			}
			col.PrimaryKey = true
			toks = toks[2:]

		case strings.EqualFold(toks[0], "NOT"):
			if len(toks) < 2 || !strings.EqualFold(toks[1], "NULL") {
				return table.Column{}, fmt.Errorf("column %s: expected NULL after NOT", col.Name)
			}
			col.NotNull = true
			toks = toks[2:]

		case strings.EqualFold(toks[0], "DEFAULT"):
			if len(toks) < 2 {
				return table.Column{}, fmt.Errorf("column %s: DEFAULT requires a value", col.Name)
			}
			col.Default = value.ParseLiteral(toks[1])
			toks = toks[2:]

		default:
			return table.Column{}, fmt.Errorf("column %s: unexpected token %q", col.Name, toks[0])
		}
	}
	return col, nil
}

func isConstraintKeyword(tok string) bool {
	return strings.EqualFold(tok, "PRIMARY") ||
		strings.EqualFold(tok, "NOT") ||
		strings.EqualFold(tok, "DEFAULT")
}
