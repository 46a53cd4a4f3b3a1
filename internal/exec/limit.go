package exec

import (
	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/table"
)

// Limit applies OFFSET and LIMIT to an already ordered and filtered
// row-set. An offset past the end yields an empty set, never an error.
type Limit struct{}

func (l *Limit) ID() string { return "exec-limit" }

func (l *Limit) Applies(u *engine.Unit) bool {
	rs, ok := u.Body.(*RowSet)
	if !ok || !rs.Spec.HasLimit || rs.Passed(PhaseLimit) {
		return false
	}
	if rs.Spec.Where != nil && !rs.Passed(PhaseFilter) {
		return false
	}
	if rs.Spec.HasOrder() && !rs.Passed(PhaseOrder) {
		return false
	}
	if rs.Spec.Distinct && !rs.Passed(PhaseDistinct) {
		return false
	}
	return true
}

func (l *Limit) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	rs := u.Body.(*RowSet)

	start := rs.Spec.Offset
	if start > len(rs.Rows) {
		start = len(rs.Rows)
	}
	end := start + rs.Spec.Limit
	if end > len(rs.Rows) {
		end = len(rs.Rows)
	}

	window := make([]table.Row, end-start)
	copy(window, rs.Rows[start:end])

	d.Submit(engine.NewUnit(rs.next(PhaseLimit, window)))
	return nil
}
