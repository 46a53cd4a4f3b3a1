// Package exec contains the execution stages: the statement executors that
// mutate the row store and the relational operator chain that refines a
// row-set into the final rendered result.
package exec

import (
	"github.com/siso-ai/siso-database/internal/statement"
	"github.com/siso-ai/siso-database/internal/table"
)

// Phase tags the relational operators a row-set has already passed
// through, so no operator ever reprocesses its own output.
type Phase string

const (
	PhaseFilter   Phase = "filter"
	PhaseProject  Phase = "project"
	PhaseOrder    Phase = "order"
	PhaseLimit    Phase = "limit"
	PhaseDistinct Phase = "distinct"
)

// RowSet is the body of a unit traveling through the operator chain.
//
// Rows holds references to external row records - operators only subset
// or reorder the slice, never mutate a row in place. Columns is the active
// projection list. Spec is a back-reference to the originating select, so
// later stages consult order/limit/distinct settings without re-parsing.
type RowSet struct {
	Rows    []table.Row
	Columns []string
	Spec    *statement.Select

	phases map[Phase]bool
}

// Passed reports whether the row-set has been through the given phase.
func (rs *RowSet) Passed(p Phase) bool {
	return rs.phases[p]
}

// next builds the successor row-set: same spec and columns unless
// overridden, phase history extended with p.
func (rs *RowSet) next(p Phase, rows []table.Row) *RowSet {
	phases := make(map[Phase]bool, len(rs.phases)+1)
	for k, v := range rs.phases {
		phases[k] = v
	}
	phases[p] = true

	return &RowSet{
		Rows:    rows,
		Columns: rs.Columns,
		Spec:    rs.Spec,
		phases:  phases,
	}
}
