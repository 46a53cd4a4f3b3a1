package statement

import (
	"fmt"
	"strings"

	"github.com/siso-ai/siso-database/internal/engine"
)

const dropGrammar = "DROP TABLE [IF EXISTS] name"

// DropParser recognizes DROP TABLE statements.
type DropParser struct{}

func (DropParser) ID() string { return "parse-drop" }

func (DropParser) Applies(u *engine.Unit) bool {
	raw, ok := u.Body.(Raw)
	return ok && KeywordPrefix(raw.Text, "DROP TABLE")
}

func (DropParser) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	raw := u.Body.(Raw)
	spec, err := parseDrop(raw.Text)
	if err != nil {
		d.Submit(engine.NewUnit(engine.Errorf("syntax error in DROP TABLE: %v (expected: %s)", err, dropGrammar)))
		return nil
	}
	d.Submit(engine.NewUnit(spec))
	return nil
}

func parseDrop(text string) (*DropTable, error) {
	rest := strings.TrimSpace(strings.TrimSpace(text)[len("DROP TABLE"):])

	spec := &DropTable{}
	if KeywordPrefix(rest, "IF EXISTS") {
		spec.IfExists = true
		rest = strings.TrimSpace(rest[len("IF EXISTS"):])
	}

	if rest == "" || len(strings.Fields(rest)) != 1 {
		return nil, fmt.Errorf("invalid table name %q", rest)
	}
	spec.Name = rest
	return spec, nil
}
