package exec

import (
	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/table"
)

// Project narrows every row to the selected columns. It waits for the
// filter and the sort: predicates and ORDER BY may reference columns
// that the projection drops.
type Project struct{}

func (p *Project) ID() string { return "exec-project" }

func (p *Project) Applies(u *engine.Unit) bool {
	rs, ok := u.Body.(*RowSet)
	if !ok || rs.Passed(PhaseProject) {
		return false
	}
	// Wait for the filter when one is pending.
	if rs.Spec.Where != nil && !rs.Passed(PhaseFilter) {
		return false
	}
	// Wait for ordering too: the sort column need not be selected.
	if rs.Spec.HasOrder() && !rs.Passed(PhaseOrder) {
		return false
	}
	return true
}

func (p *Project) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	rs := u.Body.(*RowSet)

	projected := make([]table.Row, len(rs.Rows))
	for i, row := range rs.Rows {
		narrow := make(table.Row, len(rs.Columns))
		for _, col := range rs.Columns {
			narrow[col] = row[col]
		}
		projected[i] = narrow
	}

	d.Submit(engine.NewUnit(rs.next(PhaseProject, projected)))
	return nil
}
