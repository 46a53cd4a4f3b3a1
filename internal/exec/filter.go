package exec

import (
	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/predicate"
)

// Filter keeps the rows accepted by the WHERE predicate, preserving
// their order. Declines row-sets with no predicate and row-sets it has
// already filtered.
type Filter struct{}

func (f *Filter) ID() string { return "exec-filter" }

func (f *Filter) Applies(u *engine.Unit) bool {
	rs, ok := u.Body.(*RowSet)
	return ok && rs.Spec.Where != nil && !rs.Passed(PhaseFilter)
}

func (f *Filter) Transform(u *engine.Unit, d *engine.Dispatcher) error {
	rs := u.Body.(*RowSet)

	kept := rs.Rows[:0:0]
	for _, row := range rs.Rows {
		if predicate.Evaluate(rs.Spec.Where, row) {
			kept = append(kept, row)
		}
	}

	d.Submit(engine.NewUnit(rs.next(PhaseFilter, kept)))
	return nil
}
