package exec

import (
	"strings"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/table"
	"github.com/siso-ai/siso-database/internal/value"
)

// Distinct removes duplicate rows over the projected columns, keeping
// the first occurrence of each. It waits for the projection so the
// dedup signature covers exactly the columns the caller asked for.
type Distinct struct{}

func (x *Distinct) ID() string { return "exec-distinct" }

func (x *Distinct) Applies(u *engine.Unit) bool {
	rs, ok := u.Body.(*RowSet)
	return ok && rs.Spec.Distinct && rs.Passed(PhaseProject) && !rs.Passed(PhaseDistinct)
}

func (x *Distinct) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	rs := u.Body.(*RowSet)

	seen := make(map[string]bool, len(rs.Rows))
	kept := rs.Rows[:0:0]
	for _, row := range rs.Rows {
		sig := rowSignature(row, rs.Columns)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		kept = append(kept, row)
	}

	d.Submit(engine.NewUnit(rs.next(PhaseDistinct, kept)))
	return nil
}

// rowSignature builds a canonical key over the given columns. The unit
// separator keeps adjacent values from colliding.
func rowSignature(row table.Row, columns []string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = value.Key(row[col])
	}
	return strings.Join(parts, "\x1f")
}
